package cmd

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// editFunc takes the current content and returns the edited content.
// Tests inject a canned edit instead of spawning an editor.
type editFunc func(content []byte) ([]byte, error)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <path>",
		Short: "Edit a secret in your editor",
		Long: `Open the secret at the given path as YAML in $EDITOR (or $VISUAL, or
vi). After you save and close the editor, the changes are written back
to Vault.

If the path does not exist yet, the editor starts blank and a new
secret is created from what you save.

Example:
  vc edit secret/myapp/config

  EDITOR=nano vc edit secret/myapp/config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			return runEdit(cmd.Context(), store, cmd.OutOrStdout(), openInEditor, args[0])
		},
	}
}

func runEdit(ctx context.Context, store secretStore, out io.Writer, edit editFunc, path string) error {
	var original []byte

	data, err := store.Get(ctx, path)
	switch {
	case err == nil:
		original, err = yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal secret: %w", err)
		}
	case isPathNotFound(err):
		fmt.Fprintf(out, "Path %q does not yet exist. Creating a new secret.\n", path)
	default:
		return pathError(err, "Path", path)
	}

	modified, err := edit(original)
	if err != nil {
		return err
	}

	if hashBytes(modified) == hashBytes(original) || len(bytes.TrimSpace(modified)) == 0 {
		fmt.Fprintln(out, "No changes made.")
		return nil
	}

	var newData map[string]any
	if err := yaml.Unmarshal(modified, &newData); err != nil {
		return fmt.Errorf("failed to parse modified YAML: %w", err)
	}
	if len(newData) == 0 {
		fmt.Fprintln(out, "No changes made.")
		return nil
	}

	if err := store.Put(ctx, path, newData); err != nil {
		return pathError(err, "Path", path)
	}

	fmt.Fprintln(out, "Secret successfully edited!")
	return nil
}

func openInEditor(content []byte) ([]byte, error) {
	// Restrictive permissions, the file holds secrets.
	tmpFile, err := os.CreateTemp("", "vc-edit-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := os.Chmod(tmpPath, 0600); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to set temp file permissions: %w", err)
	}

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	cmd := exec.Command(getEditor(), tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}

	return os.ReadFile(tmpPath)
}

// getEditor returns the editor to use, checking $EDITOR, $VISUAL, then common defaults
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	editors := []string{"vim", "vi", "nano", "notepad"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return filepath.Base(path)
		}
	}

	return "vi"
}

func hashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return fmt.Sprintf("%x", h[:])
}
