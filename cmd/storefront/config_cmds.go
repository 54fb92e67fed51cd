package main

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-storefront-client/session"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change client settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.print(struct {
				BaseURL       string `json:"base_url" yaml:"base_url"`
				Authenticated bool   `json:"authenticated" yaml:"authenticated"`
				SessionID     string `json:"session_id,omitempty" yaml:"session_id,omitempty"`
			}{
				BaseURL:       a.client.BaseURL(),
				Authenticated: a.client.IsAuthenticated(),
				SessionID:     session.SessionID(a.store),
			})
		},
	}

	setBaseURL := &cobra.Command{
		Use:   "set-base-url <url>",
		Short: "Remember the API base URL; an empty value restores the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := session.SaveBaseURL(a.store, args[0]); err != nil {
				return err
			}
			a.printf("Base URL set to %q\n", session.BaseURL(a.store))
			return nil
		},
	}

	cmd.AddCommand(show, setBaseURL)
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			banner := figure.NewFigure(a.cfg.GetAppName(), "cybermedium", true)
			a.printf("%s\n%s\n", banner.String(), version)
			return nil
		},
	}
}
