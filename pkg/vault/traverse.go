package vault

import (
	"context"
	"errors"
	"io/fs"
)

// WalkFunc is called by Walk once per leaf secret with its full logical
// path. Returning fs.SkipAll stops the walk early without error; any
// other error aborts the walk and is returned to the caller.
type WalkFunc func(path string) error

// Walk visits every leaf secret below root in depth-first order using an
// explicit worklist. Directory entries (names with a trailing slash) are
// pushed onto the stack, leaves are reported to fn as they are seen.
// Walking the namespace root covers all configured mounts.
func (c *Client) Walk(ctx context.Context, root string, fn WalkFunc) error {
	stack := []string{NormalizePath(root)}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		names, err := c.List(ctx, dir)
		if err != nil {
			return err
		}

		for _, name := range names {
			full := joinLogicalPath(dir, name)
			if isDirEntry(name) {
				stack = append(stack, full)
				continue
			}
			if err := fn(full); err != nil {
				if errors.Is(err, fs.SkipAll) {
					return nil
				}
				return err
			}
		}
	}

	return nil
}

// Traverse collects the full logical paths of every leaf secret below
// root, in the order Walk visits them.
func (c *Client) Traverse(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := c.Walk(ctx, root, func(path string) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func isDirEntry(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '/'
}

func joinLogicalPath(dir, name string) string {
	if dir == "" {
		return NormalizePath(name)
	}
	return dir + "/" + NormalizePath(name)
}
