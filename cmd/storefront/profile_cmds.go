package main

import (
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and manage your account",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.GetUserProfile(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	var firstName, lastName, phone string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update your name or phone number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.UpdateUserProfile(cmd.Context(), firstName, lastName, phone)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	update.Flags().StringVar(&firstName, "first-name", "", "first name")
	update.Flags().StringVar(&lastName, "last-name", "", "last name")
	update.Flags().StringVar(&phone, "phone", "", "phone number")

	var current, next string
	password := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.ChangePassword(cmd.Context(), current, next)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	password.Flags().StringVar(&current, "current", "", "current password")
	password.Flags().StringVar(&next, "new", "", "new password")
	_ = password.MarkFlagRequired("current")
	_ = password.MarkFlagRequired("new")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.DeleteUserProfile(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.client.ClearTokens(); err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.AddCommand(show, update, password, del)
	return cmd
}
