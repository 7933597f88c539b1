// Package handlers contains http handlers for reeferlink.
package handlers

import (
	"fmt"
	"net/http"

	"reeferlink/helpers"
	"reeferlink/interfaces"
	"reeferlink/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface described by api/reeferlink.openapi.yaml.
type HTTPServer struct {
	connector interfaces.Connector
	logger    log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(connector interfaces.Connector, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		connector: helpers.NilPanic(connector, "handlers.http.go: connector is required"),
		logger:    logger,
	}
}

// Connect (POST /v1/connect) runs discovery, or probes body.address when given. Returns 200 with the winner,
// 400 when no mode was chosen, 404 when there was nothing to probe, 502 when nothing answered, 409 on cancel.
func (h *HTTPServer) Connect(ectx echo.Context) error {
	var req ConnectRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	target, err := fromConnectRequest(req)
	if err != nil {
		return fmt.Errorf("connect failed to convert request, err: %w", err)
	}

	ctx := ectx.Request().Context()
	if target.address != "" {
		outcome, err := h.connector.ConnectAddress(ctx, target.address)
		if err != nil {
			return fmt.Errorf("connect failed to probe address %q, err: %w", target.address, err)
		}
		return ectx.JSON(http.StatusOK, toConnectResponse(outcome))
	}

	outcome, err := h.connector.Connect(ctx, target.hint)
	if err != nil {
		return fmt.Errorf("connect failed for mode %q, err: %w", target.hint, err)
	}
	if outcome.DiscoveryErr != nil {
		_ = level.Warn(h.logger).Log("msg", "connected without service discovery", "run_id", outcome.RunID, "err", outcome.DiscoveryErr)
	}

	return ectx.JSON(http.StatusOK, toConnectResponse(outcome))
}

// Reconnect (POST /v1/reconnect) probes the committed endpoint. Returns 404 when there is no session.
func (h *HTTPServer) Reconnect(ectx echo.Context) error {
	outcome, err := h.connector.Reconnect(ectx.Request().Context())
	if err != nil {
		return fmt.Errorf("reconnect failed, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toConnectResponse(outcome))
}

// Cancel (POST /v1/cancel) abandons the active run, if any.
func (h *HTTPServer) Cancel(ectx echo.Context) error {
	h.connector.Cancel()
	return ectx.NoContent(http.StatusOK)
}

// GetSession (GET /v1/session) returns the committed session without its API key.
func (h *HTTPServer) GetSession(ectx echo.Context) error {
	session, ok := h.connector.Session()
	if !ok {
		return service.NewEntityNotFoundError("no connection session is configured", nil)
	}

	return ectx.JSON(http.StatusOK, toSessionResponse(session))
}

// DeleteSession (DELETE /v1/session) cancels any run and clears the stored session.
func (h *HTTPServer) DeleteSession(ectx echo.Context) error {
	if err := h.connector.Reset(ectx.Request().Context()); err != nil {
		return fmt.Errorf("deleteSession failed to reset connector, err: %w", err)
	}

	return ectx.NoContent(http.StatusOK)
}

// GetStatus (GET /v1/status).
func (h *HTTPServer) GetStatus(ectx echo.Context) error {
	session, ok := h.connector.Session()
	return ectx.JSON(http.StatusOK, toStatusResponse(h.connector.State(), session, ok))
}
