package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/winpat/vault-client/pkg/config"
	"github.com/winpat/vault-client/pkg/vault"
)

// secretStore is the slice of the vault client the command handlers
// depend on. Tests drive the handlers with a recording fake.
type secretStore interface {
	Get(ctx context.Context, path string) (map[string]any, error)
	Put(ctx context.Context, path string, data map[string]any) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, path string) ([]string, error)
	Walk(ctx context.Context, root string, fn vault.WalkFunc) error
	Traverse(ctx context.Context, root string) ([]string, error)
	Export(ctx context.Context, path string) (map[string]map[string]any, error)
	Import(ctx context.Context, secrets map[string]map[string]any) (int, error)
	GetTree(ctx context.Context, path string) (*vault.TreeNode, error)
	Login(ctx context.Context, authPath, username, password string) (string, error)
}

// app carries what the commands need: the loaded configuration, the
// credential store and a lazily built vault client. Commands receive it
// through their constructors instead of reaching for globals.
type app struct {
	cfg   *config.Config
	creds config.CredentialStore

	configFile string
	debug      bool

	client *vault.Client
}

// store builds the vault client on first use. The token comes from
// $VAULT_TOKEN, else from the credential store; an empty token is fine
// for login.
func (a *app) store() (secretStore, error) {
	if a.client != nil {
		return a.client, nil
	}

	token := os.Getenv("VAULT_TOKEN")
	if token == "" {
		var err error
		token, err = a.creds.Load()
		if err != nil {
			return nil, err
		}
	}

	client, err := vault.NewClient(a.cfg, token)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "vc",
		Short:        "vc is a command line client for Vault",
		Long:         `vc is a command line client for browsing, searching and editing secrets in HashiCorp Vault.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			cmd.SetContext(clog.WithLogger(cmd.Context(), clog.New(slog.Default().Handler())))

			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			creds, err := config.NewCredentialStore(cfg)
			if err != nil {
				return err
			}
			a.creds = creds

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ~/.vc.yaml)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newLoginCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newLsCmd(a),
		newRmCmd(a),
		newMvCmd(a),
		newCpCmd(a),
		newEditCmd(a),
		newInsertCmd(a),
		newTreeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)

	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
