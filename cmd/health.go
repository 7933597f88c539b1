package main

import (
	"reeferlink/domain"

	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// healthService is the service name reported SERVING while a session is configured.
const healthService = "reeferlink"

// sessionHealth publishes whether a connection session is configured through the gRPC health protocol.
type sessionHealth struct {
	server   *health.Server
	sessions func() (domain.ConnectionSession, bool)
}

func newSessionHealth(sessions func() (domain.ConnectionSession, bool)) *sessionHealth {
	h := &sessionHealth{
		server:   health.NewServer(),
		sessions: sessions,
	}
	h.server.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	h.refresh()
	return h
}

func (h *sessionHealth) refresh() {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if _, ok := h.sessions(); ok {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.server.SetServingStatus(healthService, status)
}

// observe is an orchestrator observer; only settled states can change the stored session.
func (h *sessionHealth) observe(t domain.Transition) {
	switch t.To {
	case domain.StateSucceeded, domain.StateFailed, domain.StateIdle:
		h.refresh()
	}
}
