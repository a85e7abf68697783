package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <source> <destination>",
		Short: "Copy a secret to another path",
		Long: `Copy the secret at the source path to the destination path.

If the destination already holds a secret you are asked before it is
overwritten.

Example:
  vc cp secret/myapp/config secret/staging/config`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			ask := func(prompt string) bool {
				return confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			}
			return runCp(cmd.Context(), store, cmd.OutOrStdout(), ask, args[0], args[1])
		},
	}
}

func runCp(ctx context.Context, store secretStore, out io.Writer, ask confirmFunc, src, dest string) error {
	if err := transferSecret(ctx, store, out, ask, src, dest); err != nil {
		return err
	}

	fmt.Fprintln(out, "Secret successfully copied!")
	return nil
}
