package handlers

import (
	"strings"

	"reeferlink/domain"
	"reeferlink/service"
)

// connectTarget is what a connect request asks for: discovery for a mode, or one manual address.
type connectTarget struct {
	hint    domain.ModeHint
	address string
}

// fromConnectRequest converts ConnectRequest to a connectTarget.
// Returns service.BadParameterError on validation failure.
func fromConnectRequest(req ConnectRequest) (connectTarget, error) {
	hint, err := domain.ParseModeHint(service.Value(req.Mode))
	if err != nil {
		return connectTarget{}, service.NewBadParameterError("mode must be local or cloud", err)
	}
	target := connectTarget{hint: hint}

	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return connectTarget{}, service.NewBadParameterError("address must not be empty", nil)
		}
		if target.hint == domain.ModeHintCloud {
			return connectTarget{}, service.NewBadParameterError("address is only valid in local mode", nil)
		}
		target.address = address
	}

	return target, nil
}
