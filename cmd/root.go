package main

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli carries what the root command loads before any subcommand runs.
type cli struct {
	cfg    *Config
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "reeferlink",
		Short: "Find a Reefer controller on the local network or in the cloud and remember how to reach it",
		Long: `reeferlink decides how to reach a Reefer device. In local mode it listens for
multicast announcements while probing well-known addresses; in cloud mode it
checks the configured backend for the organization. The first endpoint that
answers is stored and reused on the next start.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = newLogger(cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(
		c.newServeCmd(),
		c.newConnectCmd(),
		c.newStatusCmd(),
		c.newResetCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No configuration needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reeferlink "+version)
		},
	}
}
