package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newLsCmd(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List secrets at a path",
		Long: `List the entries directly below a path. Directories keep their
trailing slash. With --recursive every secret below the path is
printed with its full path instead.

Without a path the mount points of the namespace root are listed.

Example:
  vc ls secret/myapp

  vc ls secret/myapp -r

  vc ls`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			store, err := a.store()
			if err != nil {
				return err
			}
			return runLs(cmd.Context(), store, cmd.OutOrStdout(), path, recursive)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "list all secrets below the path")

	return cmd
}

func runLs(ctx context.Context, store secretStore, out io.Writer, path string, recursive bool) error {
	var entries []string
	var err error
	if recursive {
		entries, err = store.Traverse(ctx, path)
	} else {
		entries, err = store.List(ctx, path)
	}
	if err != nil {
		return pathError(err, "Path", path)
	}

	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}

	return nil
}
