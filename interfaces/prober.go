package interfaces

import (
	"context"
	"time"

	"reeferlink/domain"
)

// Prober performs one bounded reachability check against a candidate.
//
//go:generate moq -stub -out mock/prober.go -pkg mock . Prober
type Prober interface {
	// Probe requests the candidate's status URL and waits at most timeout (or until ctx ends).
	// Returns:
	// 1) Reachable only on HTTP 200;
	// 2) TimedOut when the per-probe timeout or ctx deadline elapsed;
	// 3) Unreachable for every other status, refusal or resolution failure.
	// Probe never retries.
	Probe(ctx context.Context, candidate domain.Candidate, timeout time.Duration) domain.ProbeResult
}
