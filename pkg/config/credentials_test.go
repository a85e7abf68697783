package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestTokenFileStoreRoundTrip(t *testing.T) {
	store := &TokenFileStore{Path: filepath.Join(t.TempDir(), "token")}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load() of a missing file returned error: %v", err)
	}
	if token != "" {
		t.Errorf("Load() of a missing file = %q, want empty", token)
	}

	if err := store.Save("s.1234567890"); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if token != "s.1234567890" {
		t.Errorf("Load() = %q, want s.1234567890", token)
	}

	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatalf("failed to stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestTokenFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  s.abc\n"), 0600); err != nil {
		t.Fatalf("failed to write token file: %v", err)
	}

	store := &TokenFileStore{Path: path}
	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if token != "s.abc" {
		t.Errorf("Load() = %q, want s.abc", token)
	}
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	keyring.MockInit()

	store := &KeyringStore{Service: keyringService, Account: "https://vault.example.org:8200"}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load() with no stored token returned error: %v", err)
	}
	if token != "" {
		t.Errorf("Load() with no stored token = %q, want empty", token)
	}

	if err := store.Save("s.keyring"); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if token != "s.keyring" {
		t.Errorf("Load() = %q, want s.keyring", token)
	}
}

func TestNewCredentialStore(t *testing.T) {
	t.Setenv("VAULT_TOKEN_FILE", "")

	t.Run("default is the file store", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		store, err := NewCredentialStore(&Config{})
		if err != nil {
			t.Fatalf("NewCredentialStore() returned error: %v", err)
		}
		fileStore, ok := store.(*TokenFileStore)
		if !ok {
			t.Fatalf("NewCredentialStore() = %T, want *TokenFileStore", store)
		}
		if filepath.Base(fileStore.Path) != ".vault-token" {
			t.Errorf("Path = %q, want ~/.vault-token", fileStore.Path)
		}
	})

	t.Run("configured token_file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")

		store, err := NewCredentialStore(&Config{TokenFile: path})
		if err != nil {
			t.Fatalf("NewCredentialStore() returned error: %v", err)
		}
		fileStore, ok := store.(*TokenFileStore)
		if !ok {
			t.Fatalf("NewCredentialStore() = %T, want *TokenFileStore", store)
		}
		if fileStore.Path != path {
			t.Errorf("Path = %q, want %q", fileStore.Path, path)
		}
	})

	t.Run("VAULT_TOKEN_FILE fallback", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		t.Setenv("VAULT_TOKEN_FILE", path)

		store, err := NewCredentialStore(&Config{})
		if err != nil {
			t.Fatalf("NewCredentialStore() returned error: %v", err)
		}
		fileStore, ok := store.(*TokenFileStore)
		if !ok {
			t.Fatalf("NewCredentialStore() = %T, want *TokenFileStore", store)
		}
		if fileStore.Path != path {
			t.Errorf("Path = %q, want %q", fileStore.Path, path)
		}
	})

	t.Run("keyring store keyed by address", func(t *testing.T) {
		store, err := NewCredentialStore(&Config{
			Address:    "https://vault.example.org:8200",
			TokenStore: "keyring",
		})
		if err != nil {
			t.Fatalf("NewCredentialStore() returned error: %v", err)
		}
		keyringStore, ok := store.(*KeyringStore)
		if !ok {
			t.Fatalf("NewCredentialStore() = %T, want *KeyringStore", store)
		}
		if keyringStore.Account != "https://vault.example.org:8200" {
			t.Errorf("Account = %q, want the vault address", keyringStore.Account)
		}
	})

	t.Run("unsupported store", func(t *testing.T) {
		_, err := NewCredentialStore(&Config{TokenStore: "vault"})
		var cfgErr *Error
		if !errors.As(err, &cfgErr) {
			t.Fatalf("NewCredentialStore() error = %v, want *Error", err)
		}
		if cfgErr.Setting != "token_store" {
			t.Errorf("Setting = %q, want token_store", cfgErr.Setting)
		}
	})
}
