package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export secrets to YAML",
		Long: `Export every secret below a path as a single YAML document mapping
full paths to their content.

The document is written to stdout, or to a file with --output. Without
a path the whole namespace is exported.

Example:
  vc export secret/myapp

  vc export -o backup.yaml`,
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
			return runExport(cmd.Context(), store, cmd.OutOrStdout(), path, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExport(ctx context.Context, store secretStore, out io.Writer, path, outputFile string) error {
	secrets, err := store.Export(ctx, path)
	if err != nil {
		return pathError(err, "Path", path)
	}

	yamlData, err := yaml.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if outputFile == "" {
		fmt.Fprint(out, string(yamlData))
		return nil
	}

	// Restrictive permissions, the file holds secrets.
	if err := os.WriteFile(outputFile, yamlData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(out, "Exported %d secrets to %s\n", len(secrets), outputFile)
	return nil
}
