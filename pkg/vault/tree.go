package vault

import (
	"context"
	"sort"
	"strings"
)

// TreeNode represents a node in the secret tree hierarchy
type TreeNode struct {
	Name     string
	FullPath string
	IsDir    bool
	Children []*TreeNode
}

// GetTree builds a tree structure of all secrets under a path. An empty
// path roots the tree at the namespace root, spanning every configured
// mount.
func (c *Client) GetTree(ctx context.Context, path string) (*TreeNode, error) {
	path = NormalizePath(path)

	secretPaths, err := c.Traverse(ctx, path)
	if err != nil {
		return nil, err
	}

	name := "/"
	if path != "" {
		parts := strings.Split(path, "/")
		name = parts[len(parts)-1] + "/"
	}
	root := &TreeNode{
		Name:     name,
		FullPath: path,
		IsDir:    true,
		Children: make([]*TreeNode, 0),
	}

	// Traverse reports full logical paths; the tree is built from the
	// remainder below the starting path.
	for _, secretPath := range secretPaths {
		relPath := secretPath
		if path != "" {
			relPath = strings.TrimPrefix(secretPath, path+"/")
		}
		addPathToTree(root, path, relPath)
	}

	// Sort children at each level
	sortTree(root)

	return root, nil
}

// addPathToTree adds a relative path to the tree structure
func addPathToTree(root *TreeNode, basePath, relPath string) {
	parts := strings.Split(relPath, "/")
	current := root

	for i, part := range parts {
		isLast := i == len(parts)-1

		// Look for existing child
		var found *TreeNode
		for _, child := range current.Children {
			childName := child.Name
			if child.IsDir {
				childName = strings.TrimSuffix(childName, "/")
			}
			if childName == part {
				found = child
				break
			}
		}

		if found == nil {
			fullPath := strings.Join(parts[:i+1], "/")
			if basePath != "" {
				fullPath = basePath + "/" + fullPath
			}
			newNode := &TreeNode{
				Name:     part,
				FullPath: fullPath,
				IsDir:    !isLast,
				Children: make([]*TreeNode, 0),
			}
			if newNode.IsDir {
				newNode.Name = part + "/"
			}
			current.Children = append(current.Children, newNode)
			found = newNode
		}

		current = found
	}
}

// sortTree recursively sorts all children alphabetically (directories first)
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		// Directories come first
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})

	for _, child := range node.Children {
		if child.IsDir {
			sortTree(child)
		}
	}
}

// Walk traverses the tree and calls the callback for each node
// The callback receives the node, depth, and whether it's the last child at its level
func (t *TreeNode) Walk(callback func(node *TreeNode, depth int, isLast bool)) {
	if t == nil {
		return
	}
	t.walkRecursive(callback, 0, true)
}

func (t *TreeNode) walkRecursive(callback func(node *TreeNode, depth int, isLast bool), depth int, isLast bool) {
	callback(t, depth, isLast)
	for i, child := range t.Children {
		child.walkRecursive(callback, depth+1, i == len(t.Children)-1)
	}
}

// CountSecrets returns the total number of secrets (non-directory nodes) in the tree
func (t *TreeNode) CountSecrets() int {
	if t == nil {
		return 0
	}
	if !t.IsDir {
		return 1
	}
	count := 0
	for _, child := range t.Children {
		count += child.CountSecrets()
	}
	return count
}

// CountDirs returns the total number of directories in the tree (excluding root)
func (t *TreeNode) CountDirs() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, child := range t.Children {
		if child.IsDir {
			count += 1 + child.CountDirs()
		}
	}
	return count
}
