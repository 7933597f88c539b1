package interfaces

import (
	"context"

	"reeferlink/domain"
)

// Connector is the outward surface of the discovery orchestrator.
//
//go:generate moq -stub -out mock/connector.go -pkg mock . Connector
type Connector interface {
	// Connect runs discovery for an explicit mode choice and commits the winner.
	Connect(ctx context.Context, hint domain.ModeHint) (domain.DiscoveryOutcome, error)
	// ConnectAddress probes one manually entered local address and commits it when it answers.
	ConnectAddress(ctx context.Context, address string) (domain.DiscoveryOutcome, error)
	// Reconnect re-validates the committed session's endpoint.
	Reconnect(ctx context.Context) (domain.DiscoveryOutcome, error)
	// Cancel abandons the active run; the stored session is left untouched.
	Cancel()
	// Reset cancels any run and clears the stored session.
	Reset(ctx context.Context) error
	State() domain.State
	Session() (domain.ConnectionSession, bool)
}
