package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration, by default ~/.vc.yaml. A missing
// file is fine; every field has a workable default.
type Config struct {
	Address        string            `yaml:"address"`
	Authentication *Authentication   `yaml:"authentication"`
	Mounts         map[string]string `yaml:"mounts"`
	TokenStore     string            `yaml:"token_store"`
	TokenFile      string            `yaml:"token_file"`
}

// Authentication describes the auth backend login talks to.
type Authentication struct {
	Type string `yaml:"type"`
	User string `yaml:"user"`
	Path string `yaml:"path"`
}

// AuthBackend is the validated authentication target: backend type, user
// and the auth mount path (implied for userpass).
type AuthBackend struct {
	Type string
	User string
	Path string
}

// Error describes a configuration problem the user has to fix. Setting
// names the offending key.
type Error struct {
	Setting string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Load reads the configuration file. The path argument (from --config)
// wins over $VC_CONFIG; with neither set the default ~/.vc.yaml is
// consulted and may be absent. $VAULT_ADDR overrides the configured
// address either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := true
	if path == "" {
		path = os.Getenv("VC_CONFIG")
	}
	if path == "" {
		explicit = false
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".vc.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// Defaults apply.
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if addr := os.Getenv("VAULT_ADDR"); addr != "" {
		cfg.Address = addr
	}

	if len(cfg.Mounts) == 0 {
		// Vault's dev-server default mount.
		cfg.Mounts = map[string]string{"secret": "kv2"}
	}

	return cfg, nil
}

// ResolveAuth validates the authentication section and returns the
// backend to log in against.
func (c *Config) ResolveAuth() (AuthBackend, error) {
	auth := c.Authentication
	if auth == nil {
		return AuthBackend{}, &Error{
			Setting: "authentication",
			Message: "Please configure the 'authentication' section in your config file",
		}
	}
	if auth.User == "" {
		return AuthBackend{}, &Error{
			Setting: "authentication.user",
			Message: "Please specify a user with which to authenticate against Vault ('user' setting)",
		}
	}
	if auth.Type == "" {
		return AuthBackend{}, &Error{
			Setting: "authentication.type",
			Message: "Please specify the type of the authentication backend",
		}
	}

	switch auth.Type {
	case "userpass":
		path := auth.Path
		if path == "" {
			path = "userpass"
		}
		return AuthBackend{Type: auth.Type, User: auth.User, Path: path}, nil
	case "ldap":
		if auth.Path == "" {
			return AuthBackend{}, &Error{
				Setting: "authentication.path",
				Message: "Please specify the path to the authentication backend",
			}
		}
		return AuthBackend{Type: auth.Type, User: auth.User, Path: auth.Path}, nil
	default:
		return AuthBackend{}, &Error{
			Setting: "authentication.type",
			Message: fmt.Sprintf("Unsupported authentication type %q", auth.Type),
		}
	}
}

// expandHome rewrites a leading ~/ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
