package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/winpat/vault-client/pkg/config"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against Vault",
		Long: `Authenticate against the configured authentication backend and store
the issued token in the credential store.

The authentication section of the config file names the backend type
(userpass or ldap), the user and the mount path of the backend.

Example:
  vc login

  vc login --password hunter2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.cfg.ResolveAuth()
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			store, err := a.store()
			if err != nil {
				return err
			}
			return runLogin(cmd.Context(), store, a.creds, backend, password)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password of the configured user")

	return cmd
}

func runLogin(ctx context.Context, store secretStore, creds config.CredentialStore, backend config.AuthBackend, password string) error {
	token, err := store.Login(ctx, backend.Path, backend.User, password)
	if err != nil {
		if isPathNotFound(err) {
			return errors.New("The configured authentication backend does not exist.")
		}
		return err
	}

	return creds.Save(token)
}
