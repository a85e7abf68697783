package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// confirmFunc answers a yes/no prompt. Tests inject a canned answer.
type confirmFunc func(prompt string) bool

func newMvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <source> <destination>",
		Short: "Move a secret to another path",
		Long: `Move the secret at the source path to the destination path.

If the destination already holds a secret you are asked before it is
overwritten.

Example:
  vc mv secret/myapp/config secret/myapp/config-backup`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			ask := func(prompt string) bool {
				return confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			}
			return runMv(cmd.Context(), store, cmd.OutOrStdout(), ask, args[0], args[1])
		},
	}
}

func runMv(ctx context.Context, store secretStore, out io.Writer, ask confirmFunc, src, dest string) error {
	if err := transferSecret(ctx, store, out, ask, src, dest); err != nil {
		return err
	}

	if err := store.Delete(ctx, src); err != nil {
		return pathError(err, "Source path", src)
	}

	fmt.Fprintln(out, "Secret successfully moved!")
	return nil
}

// transferSecret writes a copy of the source secret to the destination,
// asking before an existing destination is replaced.
func transferSecret(ctx context.Context, store secretStore, out io.Writer, ask confirmFunc, src, dest string) error {
	data, err := store.Get(ctx, src)
	if err != nil {
		return pathError(err, "Source path", src)
	}

	_, err = store.Get(ctx, dest)
	switch {
	case err == nil:
		fmt.Fprintln(out, "The destination secret already exists.")
		if !ask("Do you want to overwrite it?") {
			return errAborted
		}
		if err := store.Delete(ctx, dest); err != nil {
			return pathError(err, "Destination path", dest)
		}
	case !isPathNotFound(err):
		return pathError(err, "Destination path", dest)
	}

	if err := store.Put(ctx, dest, data); err != nil {
		return pathError(err, "Destination path", dest)
	}

	return nil
}
