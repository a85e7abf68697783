package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a secret",
		Long: `Remove the secret at the given path.

Example:
  vc rm secret/myapp/old-token`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			return runRm(cmd.Context(), store, cmd.OutOrStdout(), args[0])
		},
	}
}

func runRm(ctx context.Context, store secretStore, out io.Writer, path string) error {
	if _, err := store.Get(ctx, path); err != nil {
		return pathError(err, "Path", path)
	}

	if err := store.Delete(ctx, path); err != nil {
		return pathError(err, "Path", path)
	}

	fmt.Fprintln(out, "Secret successfully deleted")
	return nil
}
