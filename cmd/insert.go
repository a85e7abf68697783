package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newInsertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <path> <key=value>",
		Short: "Insert a secret from a key/value pair",
		Long: `Write a secret with a single key/value pair at the given path.

An existing secret at the path is replaced.

Example:
  vc insert secret/myapp/api token=4bb1b86b2aba105d0cc2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			return runInsert(cmd.Context(), store, cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runInsert(ctx context.Context, store secretStore, out io.Writer, path, pair string) error {
	parts := strings.Split(pair, "=")
	if len(parts) != 2 {
		return usageError(fmt.Sprintf("Data %q is not a valid key/value pair.", pair))
	}

	if err := store.Put(ctx, path, map[string]any{parts[0]: parts[1]}); err != nil {
		return pathError(err, "Path", path)
	}

	fmt.Fprintln(out, "Secret successfully inserted!")
	return nil
}
