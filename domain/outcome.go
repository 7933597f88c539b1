package domain

import "time"

// ProbeResult is the result of one reachability check.
type ProbeResult string

const (
	Reachable   ProbeResult = "reachable"
	Unreachable ProbeResult = "unreachable"
	TimedOut    ProbeResult = "timed_out"
)

// State is the discovery orchestrator state.
type State string

const (
	StateIdle        State = "idle"
	StateDiscovering State = "discovering"
	StateProbing     State = "probing"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// FailureReason explains why a discovery run did not succeed.
type FailureReason string

const (
	ReasonNone                         FailureReason = ""
	ReasonNoCandidates                 FailureReason = "no_candidates"
	ReasonAllUnreachable               FailureReason = "all_unreachable"
	ReasonDiscoveryFacilityUnavailable FailureReason = "discovery_facility_unavailable"
	ReasonCancelled                    FailureReason = "cancelled"
)

// ProbeAttempt records one probe made during a run.
type ProbeAttempt struct {
	Candidate Candidate
	Result    ProbeResult
	Elapsed   time.Duration
}

// DiscoveryOutcome is produced once per run and never persisted.
// Candidate is set on success, Reason on failure.
type DiscoveryOutcome struct {
	RunID        string
	Mode         ConnectionMode
	Candidate    *Candidate
	Reason       FailureReason
	Attempts     []ProbeAttempt
	DiscoveryErr error
}

// Succeeded reports whether the run found a reachable candidate.
func (o DiscoveryOutcome) Succeeded() bool {
	return o.Candidate != nil
}

// Transition is an observable state change of the orchestrator.
// Candidate is set on transitions into StateProbing.
type Transition struct {
	RunID     string
	From      State
	To        State
	Candidate *Candidate
}
