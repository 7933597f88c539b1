package domain

import (
	"fmt"
	"strings"
)

// ConnectionMode is the connectivity mode of a session. Values are the ones the mobile apps persist.
type ConnectionMode string

const (
	ModeLocal ConnectionMode = "local"
	ModeCloud ConnectionMode = "internet"
)

// ModeHint is the user's explicit connectivity choice. ModeHintNone means no choice was made yet.
type ModeHint string

const (
	ModeHintNone  ModeHint = ""
	ModeHintLocal ModeHint = "local"
	ModeHintCloud ModeHint = "cloud"
)

// Mode returns the connection mode a hint selects; ok is false for ModeHintNone.
func (h ModeHint) Mode() (ConnectionMode, bool) {
	switch h {
	case ModeHintLocal:
		return ModeLocal, true
	case ModeHintCloud:
		return ModeCloud, true
	default:
		return "", false
	}
}

// ParseModeHint accepts "local", "cloud" or "internet" (case-insensitive) and "" for no hint.
func ParseModeHint(s string) (ModeHint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ModeHintNone, nil
	case "local":
		return ModeHintLocal, nil
	case "cloud", "internet":
		return ModeHintCloud, nil
	default:
		return ModeHintNone, fmt.Errorf("unknown mode %q (want local|cloud)", s)
	}
}

// ParseConnectionMode parses a persisted or user supplied mode.
func ParseConnectionMode(s string) (ConnectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return ModeLocal, nil
	case "internet", "cloud":
		return ModeCloud, nil
	default:
		return "", fmt.Errorf("unknown connection mode %q", s)
	}
}
