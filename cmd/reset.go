package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored connection so the next connect runs discovery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.newOrchestrator(nil, nil).Reset(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	}
}
