package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/user/pkg/request"
)

func newLoginCommand() *cobra.Command {
	var username string
	var password string

	command := &cobra.Command{
		Use:   "login",
		Short: "Log in to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			user, err := app.users.Login(c, request.LoginRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				if errors.Is(err, inErrors.ErrAlreadyAuthed) {
					fmt.Fprintln(cmd.OutOrStdout(), "already logged in, logout first")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.Username)

			// carry over whatever the store already has in this user's cart
			if err := app.cart.PullRemote(c); err != nil {
				zerolog.Ctx(c).
					Warn().
					Err(err).
					Str(log.KeyTag, "main newLoginCommand").
					Msg("failed pulling remote cart, keeping local cart")
			}
			return nil
		},
	}
	command.Flags().StringVar(&username, "username", "", "store account username")
	command.Flags().StringVar(&password, "password", "", "store account password")
	_ = command.MarkFlagRequired("username")
	_ = command.MarkFlagRequired("password")
	return command
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			return app.users.Logout(c)
		},
	}
}
