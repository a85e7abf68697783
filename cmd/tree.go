package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/winpat/vault-client/pkg/vault"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [path]",
		Short: "Display secrets in a tree view",
		Long: `Display the secret hierarchy below a path as a tree.

Without a path the whole namespace is rendered, starting at the mount
points.

Example:
  vc tree secret/myapp

  vc tree`,
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
			return runTree(cmd.Context(), store, cmd.OutOrStdout(), path)
		},
	}
}

func runTree(ctx context.Context, store secretStore, out io.Writer, path string) error {
	tree, err := store.GetTree(ctx, path)
	if err != nil {
		return pathError(err, "Path", path)
	}

	printTree(out, tree)

	fmt.Fprintf(out, "\n%d directories, %d secrets\n", tree.CountDirs(), tree.CountSecrets())

	return nil
}

// printTree prints the tree with box-drawing characters
func printTree(out io.Writer, tree *vault.TreeNode) {
	// Track the prefix for each level
	var prefixes []string

	tree.Walk(func(node *vault.TreeNode, depth int, isLast bool) {
		if depth == 0 {
			fmt.Fprintln(out, node.Name)
			prefixes = []string{}
			return
		}

		var prefix strings.Builder
		for i := 0; i < depth-1; i++ {
			if i < len(prefixes) {
				prefix.WriteString(prefixes[i])
			}
		}

		if isLast {
			prefix.WriteString("└── ")
		} else {
			prefix.WriteString("├── ")
		}

		fmt.Fprintf(out, "%s%s\n", prefix.String(), node.Name)

		// Update prefixes for children
		for len(prefixes) < depth {
			prefixes = append(prefixes, "")
		}
		if isLast {
			prefixes[depth-1] = "    "
		} else {
			prefixes[depth-1] = "│   "
		}
	})
}
