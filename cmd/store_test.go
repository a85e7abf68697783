package cmd

import (
	"context"
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/winpat/vault-client/pkg/vault"
)

// fakeStore implements secretStore on top of a plain map. It records
// every call so tests can assert what a command actually did, and can
// force errors for individual paths.
type fakeStore struct {
	secrets map[string]map[string]any
	errs    map[string]error
	calls   []string

	tree       *vault.TreeNode
	loginToken string
	loginErr   error
}

func newFakeStore(secrets map[string]map[string]any) *fakeStore {
	if secrets == nil {
		secrets = map[string]map[string]any{}
	}
	return &fakeStore{secrets: secrets, errs: map[string]error{}}
}

func (f *fakeStore) Get(ctx context.Context, path string) (map[string]any, error) {
	f.calls = append(f.calls, "get "+path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	data, ok := f.secrets[path]
	if !ok {
		return nil, &vault.PathNotFoundError{Path: path}
	}
	return data, nil
}

func (f *fakeStore) Put(ctx context.Context, path string, data map[string]any) error {
	f.calls = append(f.calls, "put "+path)
	if err := f.errs[path]; err != nil {
		return err
	}
	f.secrets[path] = data
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, path string) error {
	f.calls = append(f.calls, "delete "+path)
	if err := f.errs[path]; err != nil {
		return err
	}
	delete(f.secrets, path)
	return nil
}

func (f *fakeStore) List(ctx context.Context, path string) ([]string, error) {
	f.calls = append(f.calls, "list "+path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}

	prefix := strings.Trim(path, "/")
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	var entries []string
	for secretPath := range f.secrets {
		if !strings.HasPrefix(secretPath, prefix) {
			continue
		}
		rest := strings.TrimPrefix(secretPath, prefix)
		name, _, nested := strings.Cut(rest, "/")
		if nested {
			name += "/"
		}
		if !seen[name] {
			seen[name] = true
			entries = append(entries, name)
		}
	}
	if len(entries) == 0 {
		return nil, &vault.PathNotFoundError{Path: path}
	}
	sort.Strings(entries)
	return entries, nil
}

func (f *fakeStore) Walk(ctx context.Context, root string, fn vault.WalkFunc) error {
	f.calls = append(f.calls, "walk "+root)
	for _, path := range f.paths(root) {
		if err := fn(path); err != nil {
			if errors.Is(err, fs.SkipAll) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (f *fakeStore) Traverse(ctx context.Context, root string) ([]string, error) {
	f.calls = append(f.calls, "traverse "+root)
	if err := f.errs[root]; err != nil {
		return nil, err
	}
	paths := f.paths(root)
	if len(paths) == 0 {
		return nil, &vault.PathNotFoundError{Path: root}
	}
	return paths, nil
}

func (f *fakeStore) Export(ctx context.Context, path string) (map[string]map[string]any, error) {
	f.calls = append(f.calls, "export "+path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	secrets := map[string]map[string]any{}
	for _, secretPath := range f.paths(path) {
		secrets[secretPath] = f.secrets[secretPath]
	}
	return secrets, nil
}

func (f *fakeStore) Import(ctx context.Context, secrets map[string]map[string]any) (int, error) {
	paths := make([]string, 0, len(secrets))
	for path := range secrets {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := f.Put(ctx, path, secrets[path]); err != nil {
			return 0, err
		}
	}
	return len(paths), nil
}

func (f *fakeStore) GetTree(ctx context.Context, path string) (*vault.TreeNode, error) {
	f.calls = append(f.calls, "tree "+path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	if f.tree == nil {
		return nil, &vault.PathNotFoundError{Path: path}
	}
	return f.tree, nil
}

func (f *fakeStore) Login(ctx context.Context, authPath, username, password string) (string, error) {
	f.calls = append(f.calls, "login "+authPath+" "+username)
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeStore) paths(root string) []string {
	root = strings.Trim(root, "/")
	var out []string
	for path := range f.secrets {
		if root == "" || path == root || strings.HasPrefix(path, root+"/") {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// fakeCreds records saved tokens.
type fakeCreds struct {
	token string
	saved []string
}

func (f *fakeCreds) Load() (string, error) { return f.token, nil }

func (f *fakeCreds) Save(token string) error {
	f.saved = append(f.saved, token)
	f.token = token
	return nil
}
