package handlers

import (
	"reeferlink/domain"
	"reeferlink/service"
)

func toConnectResponse(outcome domain.DiscoveryOutcome) ConnectResponse {
	resp := ConnectResponse{
		RunId:    outcome.RunID,
		Mode:     string(outcome.Mode),
		Attempts: make([]Attempt, 0, len(outcome.Attempts)),
	}
	if outcome.Candidate != nil {
		resp.Candidate = toCandidate(*outcome.Candidate)
	}
	for _, a := range outcome.Attempts {
		resp.Attempts = append(resp.Attempts, Attempt{
			Address:   a.Candidate.Address,
			Source:    string(a.Candidate.Source),
			Result:    string(a.Result),
			ElapsedMs: a.Elapsed.Milliseconds(),
		})
	}
	if outcome.DiscoveryErr != nil {
		resp.DiscoveryError = service.Ptr(outcome.DiscoveryErr.Error())
	}
	return resp
}

func toCandidate(c domain.Candidate) Candidate {
	return Candidate{
		Address: c.Address,
		Mode:    string(c.Mode),
		Source:  string(c.Source),
	}
}

// toSessionResponse drops the cloud API key.
func toSessionResponse(s domain.ConnectionSession) SessionResponse {
	resp := SessionResponse{
		Mode:          string(s.Mode),
		Configured:    s.Configured,
		Address:       service.PtrOrNil(s.Address),
		CloudEndpoint: service.PtrOrNil(s.CloudEndpoint),
		Organization:  service.PtrOrNil(s.Organization),
	}
	if !s.ConfiguredAt.IsZero() {
		at := s.ConfiguredAt.UTC()
		resp.ConfiguredAt = &at
	}
	return resp
}

func toStatusResponse(state domain.State, session domain.ConnectionSession, configured bool) StatusResponse {
	resp := StatusResponse{
		State:      string(state),
		Configured: configured,
	}
	if configured {
		resp.Mode = service.PtrOrNil(string(session.Mode))
	}
	return resp
}
