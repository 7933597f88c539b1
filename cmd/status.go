package main

import (
	"fmt"
	"io"
	"time"

	"reeferlink/domain"

	"github.com/spf13/cobra"
)

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored connection session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.close()

			session, ok := a.store.Load()
			printSession(cmd.OutOrStdout(), session, ok)
			return nil
		},
	}
}

func printSession(w io.Writer, session domain.ConnectionSession, configured bool) {
	if !configured {
		_, _ = fmt.Fprintln(w, "not configured: run `reeferlink connect --mode local|cloud`")
		return
	}
	_, _ = fmt.Fprintf(w, "mode: %s\n", session.Mode)
	if session.Address != "" {
		_, _ = fmt.Fprintf(w, "address: %s\n", session.Address)
	}
	if session.CloudEndpoint != "" {
		_, _ = fmt.Fprintf(w, "cloud endpoint: %s\n", session.CloudEndpoint)
	}
	if session.Organization != "" {
		_, _ = fmt.Fprintf(w, "organization: %s\n", session.Organization)
	}
	if !session.ConfiguredAt.IsZero() {
		_, _ = fmt.Fprintf(w, "configured at: %s\n", session.ConfiguredAt.UTC().Format(time.RFC3339))
	}
}
