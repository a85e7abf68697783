package vault

import (
	"context"
	"fmt"
	"sort"
)

// Export collects every secret below path into a map keyed by full
// logical path. Exporting the namespace root captures all configured
// mounts.
func (c *Client) Export(ctx context.Context, path string) (map[string]map[string]any, error) {
	secrets := make(map[string]map[string]any)

	err := c.Walk(ctx, path, func(secretPath string) error {
		data, err := c.Get(ctx, secretPath)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", secretPath, err)
		}
		secrets[secretPath] = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	return secrets, nil
}

// Import writes every secret in the map to its logical path and returns
// the number written. Paths are processed in sorted order so repeated
// runs fail at the same place.
func (c *Client) Import(ctx context.Context, secrets map[string]map[string]any) (int, error) {
	paths := make([]string, 0, len(secrets))
	for path := range secrets {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := c.Put(ctx, path, secrets[path]); err != nil {
			return 0, fmt.Errorf("failed to import %s: %w", path, err)
		}
	}

	return len(paths), nil
}
