package main

import (
	"context"
	"fmt"
	"io"

	"reeferlink/domain"
	"reeferlink/interfaces"
	"reeferlink/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

type connectFlags struct {
	mode    string
	address string
	force   bool
}

func (c *cli) newConnectCmd() *cobra.Command {
	var flags connectFlags
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Reuse the stored connection or discover a device and store it",
		Long: `Without flags, connect re-validates the stored session and, if it no longer
answers, runs discovery again in the stored mode. --mode forces a new discovery
run; --address probes a single manually entered local address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hint, err := domain.ParseModeHint(flags.mode)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			orchestrator := a.newOrchestrator(nil, progressPrinter(out))
			outcome, err := connect(cmd.Context(), orchestrator, hint, flags, c.logger)
			if err != nil {
				return err
			}
			printOutcome(out, outcome)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", "connection mode: local or cloud")
	cmd.Flags().StringVar(&flags.address, "address", "", "probe this local address (host[:port]) instead of discovering")
	cmd.Flags().BoolVar(&flags.force, "force", false, "ignore the stored session and run discovery")
	return cmd
}

// connect picks the operation: a manual address, a fresh run for an explicit mode, or revalidation
// of the stored session with discovery in the stored mode as fallback.
func connect(
	ctx context.Context,
	connector interfaces.Connector,
	hint domain.ModeHint,
	flags connectFlags,
	logger log.Logger,
) (domain.DiscoveryOutcome, error) {
	if flags.address != "" {
		if hint == domain.ModeHintCloud {
			return domain.DiscoveryOutcome{}, service.NewBadParameterError("--address is only valid in local mode", nil)
		}
		return connector.ConnectAddress(ctx, flags.address)
	}

	session, ok := connector.Session()
	if !ok || flags.force || hint != domain.ModeHintNone {
		return connector.Connect(ctx, hint)
	}

	outcome, err := connector.Reconnect(ctx)
	if err == nil || !service.IsAllUnreachableError(err) {
		return outcome, err
	}
	_ = level.Warn(logger).Log("msg", "stored endpoint did not answer, discovering again", "mode", session.Mode, "err", err)
	return connector.Connect(ctx, hintFor(session.Mode))
}

func hintFor(mode domain.ConnectionMode) domain.ModeHint {
	if mode == domain.ModeCloud {
		return domain.ModeHintCloud
	}
	return domain.ModeHintLocal
}

func progressPrinter(w io.Writer) func(domain.Transition) {
	return func(t domain.Transition) {
		if t.To == domain.StateProbing && t.Candidate != nil {
			_, _ = fmt.Fprintf(w, "probing %s (%s)\n", t.Candidate.Address, t.Candidate.Source)
		}
	}
}

func printOutcome(w io.Writer, outcome domain.DiscoveryOutcome) {
	if outcome.Candidate == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "connected: mode=%s address=%s source=%s probes=%d\n",
		outcome.Mode, outcome.Candidate.Address, outcome.Candidate.Source, len(outcome.Attempts))
	if outcome.DiscoveryErr != nil {
		_, _ = fmt.Fprintf(w, "note: service discovery was unavailable: %v\n", outcome.DiscoveryErr)
	}
}
