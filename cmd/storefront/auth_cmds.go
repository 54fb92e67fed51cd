package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-storefront-client/internal/utils"
	"github.com/jrsteele09/go-storefront-client/models"
)

var errNotLoggedIn = errors.New("not logged in")

func newRegisterCmd(a *app) *cobra.Command {
	var req models.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email-or-phone>",
		Short: "Sign in with an email address or phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			name := args[0]
			if out.User != nil {
				if email := utils.Value(out.User.Email); email != "" {
					name = email
				}
			}
			a.printf("Logged in as %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			a.printf("Logged out\n")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user from the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			user := a.client.CurrentUser()
			if user == nil {
				return errNotLoggedIn
			}
			return a.print(user)
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a forgotten password",
	}

	request := &cobra.Command{
		Use:   "request <email-or-phone>",
		Short: "Send a reset code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.RequestPasswordReset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	var code, newPassword string
	verify := &cobra.Command{
		Use:   "verify <email-or-phone>",
		Short: "Set a new password using a reset code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.VerifyResetCode(cmd.Context(), args[0], code, newPassword)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	verify.Flags().StringVar(&code, "code", "", "reset code")
	verify.Flags().StringVar(&newPassword, "new-password", "", "new password")
	_ = verify.MarkFlagRequired("code")
	_ = verify.MarkFlagRequired("new-password")

	cmd.AddCommand(request, verify)
	return cmd
}
