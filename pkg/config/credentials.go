package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

// keyringService namespaces vc tokens in the OS keychain.
const keyringService = "vc"

// CredentialStore persists the Vault token between invocations. Load
// returns an empty token when none is stored; "not logged in" is a state,
// not an error.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
}

// NewCredentialStore picks the store selected by token_store. The file
// store is the default.
func NewCredentialStore(cfg *Config) (CredentialStore, error) {
	switch cfg.TokenStore {
	case "", "file":
		path, err := resolveTokenFile(cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		return &TokenFileStore{Path: path}, nil
	case "keyring":
		account := cfg.Address
		if account == "" {
			account = "default"
		}
		return &KeyringStore{Service: keyringService, Account: account}, nil
	default:
		return nil, &Error{
			Setting: "token_store",
			Message: fmt.Sprintf("Unsupported token store %q (expected file or keyring)", cfg.TokenStore),
		}
	}
}

// resolveTokenFile picks the token file location: the configured
// token_file, else $VAULT_TOKEN_FILE, else the Vault CLI's ~/.vault-token.
func resolveTokenFile(configured string) (string, error) {
	if configured != "" {
		return expandHome(configured), nil
	}
	if path := os.Getenv("VAULT_TOKEN_FILE"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".vault-token"), nil
}

// TokenFileStore keeps the token in a plain file.
type TokenFileStore struct {
	Path string
}

func (s *TokenFileStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *TokenFileStore) Save(token string) error {
	if err := os.WriteFile(s.Path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// KeyringStore keeps the token in the operating system keychain, one
// entry per Vault address.
type KeyringStore struct {
	Service string
	Account string
}

func (s *KeyringStore) Load() (string, error) {
	token, err := keyring.Get(s.Service, s.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return token, nil
}

func (s *KeyringStore) Save(token string) error {
	if err := keyring.Set(s.Service, s.Account, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}
