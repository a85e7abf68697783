package vault

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/hashicorp/vault/api"

	"github.com/winpat/vault-client/pkg/config"
)

// Client talks to the Vault HTTP API on behalf of the commands. Every
// operation resolves the logical path against the configured mount table
// before touching the backend, so a path outside all mounts never turns
// into a network call.
type Client struct {
	api    *api.Client
	mounts *MountTable
}

// NewClient builds a client from the loaded configuration and the token
// obtained from the credential store. An empty token is allowed; login
// itself needs none.
func NewClient(cfg *config.Config, token string) (*Client, error) {
	apiConfig := api.DefaultConfig()
	if cfg.Address != "" {
		apiConfig.Address = cfg.Address
	}

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if token != "" {
		client.SetToken(token)
	}

	mounts, err := NewMountTable(cfg.Mounts)
	if err != nil {
		return nil, err
	}

	return &Client{api: client, mounts: mounts}, nil
}

// Get reads the secret at path wholesale.
func (c *Client) Get(ctx context.Context, path string) (map[string]any, error) {
	mount, rel, err := c.mounts.Resolve(path)
	if err != nil {
		return nil, err
	}

	clog.FromContext(ctx).Debugf("reading %s", path)

	secret, err := c.api.Logical().ReadWithContext(ctx, mount.dataPath(rel))
	if err != nil {
		if isNotFoundResponse(err) {
			return nil, &PathNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, &PathNotFoundError{Path: path}
	}

	if mount.Engine == EngineKV1 {
		return secret.Data, nil
	}

	// KV v2 nests the payload one level down. A soft-deleted secret still
	// answers with metadata but a nil data field.
	data, ok := secret.Data["data"].(map[string]any)
	if !ok || data == nil {
		return nil, &PathNotFoundError{Path: path}
	}
	return data, nil
}

// Put writes data wholesale to path, replacing whatever was stored there.
func (c *Client) Put(ctx context.Context, path string, data map[string]any) error {
	mount, rel, err := c.mounts.Resolve(path)
	if err != nil {
		return err
	}

	clog.FromContext(ctx).Debugf("writing %s", path)

	payload := data
	if mount.Engine == EngineKV2 {
		payload = map[string]any{"data": data}
	}

	if _, err := c.api.Logical().WriteWithContext(ctx, mount.dataPath(rel), payload); err != nil {
		if isNotFoundResponse(err) {
			return &PathNotFoundError{Path: path}
		}
		return fmt.Errorf("failed to write secret: %w", err)
	}
	return nil
}

// Delete removes the secret at path. On KV v2 this deletes the metadata
// entry and with it every version. The backend does not report whether
// anything was there; callers that care probe with Get first.
func (c *Client) Delete(ctx context.Context, path string) error {
	mount, rel, err := c.mounts.Resolve(path)
	if err != nil {
		return err
	}

	clog.FromContext(ctx).Debugf("deleting %s", path)

	if _, err := c.api.Logical().DeleteWithContext(ctx, mount.metadataPath(rel)); err != nil {
		if isNotFoundResponse(err) {
			return &PathNotFoundError{Path: path}
		}
		return fmt.Errorf("failed to delete secret: %w", err)
	}
	return nil
}

// List returns the immediate child names below path, exactly as the
// backend reports them: a name ending in "/" is directory-like, one
// without is a leaf secret. Listing the namespace root returns the
// configured mount prefixes.
func (c *Client) List(ctx context.Context, path string) ([]string, error) {
	if NormalizePath(path) == "" {
		prefixes := c.mounts.Prefixes()
		names := make([]string, len(prefixes))
		for i, p := range prefixes {
			names[i] = p + "/"
		}
		return names, nil
	}

	mount, rel, err := c.mounts.Resolve(path)
	if err != nil {
		return nil, err
	}

	clog.FromContext(ctx).Debugf("listing %s", path)

	secret, err := c.api.Logical().ListWithContext(ctx, mount.metadataPath(rel))
	if err != nil {
		if isNotFoundResponse(err) {
			return nil, &PathNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, &PathNotFoundError{Path: path}
	}

	raw, ok := secret.Data["keys"].([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected list response at %q", path)
	}

	names := make([]string, 0, len(raw))
	for _, key := range raw {
		if name, ok := key.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Login authenticates against the auth backend mounted at authPath and
// returns the issued client token. The client does not retain the token;
// persisting it is the credential store's job.
func (c *Client) Login(ctx context.Context, authPath, username, password string) (string, error) {
	loginPath := fmt.Sprintf("auth/%s/login/%s", authPath, username)

	clog.FromContext(ctx).Debugf("logging in via %s", loginPath)

	secret, err := c.api.Logical().WriteWithContext(ctx, loginPath, map[string]any{
		"password": password,
	})
	if err != nil {
		if isNotFoundResponse(err) {
			return "", &PathNotFoundError{Path: loginPath}
		}
		return "", fmt.Errorf("login failed: %w", err)
	}
	// The api package turns a bare 404 into a nil secret instead of an
	// error; both shapes mean the auth backend is not there.
	if secret == nil {
		return "", &PathNotFoundError{Path: loginPath}
	}
	if secret.Auth == nil || secret.Auth.ClientToken == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return secret.Auth.ClientToken, nil
}

// dataPath builds the backend path for reads and writes. KV v2 routes
// them through data/, KV v1 addresses the secret directly.
func (m Mount) dataPath(rel string) string {
	if m.Engine == EngineKV1 {
		return joinBackendPath(m.Prefix, rel)
	}
	return joinBackendPath(m.Prefix+"/data", rel)
}

// metadataPath builds the backend path for lists and deletes. KV v1 has
// no metadata tree; both address the secret path itself.
func (m Mount) metadataPath(rel string) string {
	if m.Engine == EngineKV1 {
		return joinBackendPath(m.Prefix, rel)
	}
	return joinBackendPath(m.Prefix+"/metadata", rel)
}

func joinBackendPath(base, rel string) string {
	if rel == "" {
		return base
	}
	return base + "/" + rel
}
