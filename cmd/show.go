package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Show the content of a secret",
		Long: `Show the content of the secret at the given path as YAML.

Example:
  vc show secret/myapp/database`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			return runShow(cmd.Context(), store, cmd.OutOrStdout(), args[0])
		},
	}
}

func runShow(ctx context.Context, store secretStore, out io.Writer, path string) error {
	data, err := store.Get(ctx, path)
	if err != nil {
		return pathError(err, "Path", path)
	}

	return renderYAML(out, data)
}
