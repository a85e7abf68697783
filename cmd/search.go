package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search secret paths for a term",
		Long: `Walk every configured mount point and print the paths of all secrets
whose path contains the given term.

A single match is printed with its content, multiple matches as a list
of paths.

Example:
  vc search database

  vc search myapp/prod`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), store, cmd.OutOrStdout(), args[0])
		},
	}
}

func runSearch(ctx context.Context, store secretStore, out io.Writer, term string) error {
	var matches []string
	err := store.Walk(ctx, "/", func(path string) error {
		if strings.Contains(path, term) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	switch len(matches) {
	case 0:
		fmt.Fprintln(out, "No search results.")
	case 1:
		data, err := store.Get(ctx, matches[0])
		if err != nil {
			return pathError(err, "Path", matches[0])
		}
		fmt.Fprintf(out, "# %s\n", matches[0])
		return renderYAML(out, data)
	default:
		for _, path := range matches {
			fmt.Fprintln(out, path)
		}
	}

	return nil
}
