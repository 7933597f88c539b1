package domain

import (
	"errors"
	"time"
)

// ConnectionSession is the persisted connection decision.
// When Configured is true exactly one of Address (local) and CloudEndpoint (cloud) is set, matching Mode.
type ConnectionSession struct {
	Mode          ConnectionMode
	Address       string
	CloudEndpoint string
	CloudAPIKey   string
	Organization  string
	Configured    bool
	ConfiguredAt  time.Time
}

// Validate checks the session invariant.
func (s ConnectionSession) Validate() error {
	if !s.Configured {
		return errors.New("session is not configured")
	}
	switch s.Mode {
	case ModeLocal:
		if s.Address == "" {
			return errors.New("local session requires an address")
		}
		if s.CloudEndpoint != "" {
			return errors.New("local session must not carry a cloud endpoint")
		}
	case ModeCloud:
		if s.CloudEndpoint == "" {
			return errors.New("cloud session requires a cloud endpoint")
		}
		if s.Address != "" {
			return errors.New("cloud session must not carry a local address")
		}
	default:
		return errors.New("session mode must be local or internet")
	}
	return nil
}
