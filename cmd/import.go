package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/getsops/sops/v3/decrypt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newImportCmd(a *app) *cobra.Command {
	var sopsEncrypted bool

	cmd := &cobra.Command{
		Use:   "import <yaml-file>",
		Short: "Import secrets from a YAML file",
		Long: `Import secrets from a YAML document mapping full paths to their
content, as produced by export.

With --sops the file is decrypted with SOPS before importing.

Example:
  vc import backup.yaml

  vc import --sops secrets.enc.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), store, cmd.OutOrStdout(), args[0], sopsEncrypted)
		},
	}

	cmd.Flags().BoolVar(&sopsEncrypted, "sops", false, "decrypt SOPS-encrypted file before importing")

	return cmd
}

func runImport(ctx context.Context, store secretStore, out io.Writer, yamlFile string, sopsEncrypted bool) error {
	var content []byte
	var err error

	if sopsEncrypted {
		content, err = decrypt.File(yamlFile, "yaml")
		if err != nil {
			return fmt.Errorf("failed to decrypt SOPS file: %w", err)
		}
	} else {
		content, err = os.ReadFile(yamlFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
	}

	var secrets map[string]map[string]any
	if err := yaml.Unmarshal(content, &secrets); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	count, err := store.Import(ctx, secrets)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Successfully wrote %d secrets\n", count)
	return nil
}
