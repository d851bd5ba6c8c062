package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/mindease/internal/auth"
)

func newLoginCmd() *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in, creating the account on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := bootstrap()
			if err != nil {
				return err
			}
			defer e.Close()

			sess, user, err := e.auth.Login(cmd.Context(), email, name)
			if err != nil {
				return err
			}
			if err := e.tokens.Write(sess.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s> until %s\n",
				user.DisplayName, user.Email, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name for a new account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := bootstrap()
			if err != nil {
				return err
			}
			defer e.Close()

			token, err := e.tokens.Read()
			if errors.Is(err, auth.ErrUnauthenticated) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			if err := e.auth.Logout(cmd.Context(), token); err != nil {
				return err
			}
			if err := e.tokens.Remove(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := bootstrap()
			if err != nil {
				return err
			}
			defer e.Close()

			token, err := e.tokens.Read()
			if err != nil {
				return e.signInHint(err)
			}
			user, err := e.auth.CurrentUser(cmd.Context(), token)
			if err != nil {
				return e.signInHint(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.DisplayName, user.Email)
			return nil
		},
	}
}
