package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vs-portfolio/portfolio/internal/auth"
	"github.com/vs-portfolio/portfolio/internal/server"
	"github.com/vs-portfolio/portfolio/internal/service"
	"github.com/vs-portfolio/portfolio/internal/validate"
)

func newCreateAdminCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account with a bcrypt-hashed password",
		Long: `Create an admin account in the configured store.

Without --password the password is read from the first line of stdin, which
keeps it out of the shell history:

  printf '%s\n' "$ADMIN_PASSWORD" | portfolioctl create-admin --username owner`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given: use --password or pipe it on stdin")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			authn := service.NewAuthService(
				server.AdminRepository(a.cfg, store),
				auth.NewPasswordService(),
				validate.New(),
				a.logger,
			)
			admin, err := authn.CreateAdmin(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q.\n", admin.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (case-sensitive)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
