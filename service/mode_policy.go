package service

import "reeferlink/domain"

// Strategies are the discovery strategies a run enables.
type Strategies struct {
	// Mode is the connection mode the run commits on success.
	Mode domain.ConnectionMode
	// RunServiceDiscovery starts the multicast listener.
	RunServiceDiscovery bool
	// RunFallbackScan probes the generated local candidate list.
	RunFallbackScan bool
	// RunCloudProbe probes the cloud endpoint.
	RunCloudProbe bool
}

// SelectStrategies maps an explicit mode choice to the strategies a run enables.
// It is pure: the same hint always yields the same strategies.
//
// Returns mode_required for ModeHintNone (the caller must present an explicit choice) and
// bad_parameter for an unknown hint.
func SelectStrategies(hint domain.ModeHint) (Strategies, error) {
	switch hint {
	case domain.ModeHintLocal:
		return Strategies{Mode: domain.ModeLocal, RunServiceDiscovery: true, RunFallbackScan: true}, nil
	case domain.ModeHintCloud:
		return Strategies{Mode: domain.ModeCloud, RunCloudProbe: true}, nil
	case domain.ModeHintNone:
		return Strategies{}, NewModeRequiredError()
	default:
		return Strategies{}, NewBadParameterError("unknown mode hint "+string(hint), nil)
	}
}
