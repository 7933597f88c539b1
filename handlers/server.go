package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
)

// ServerInterface represents all server handlers of api/reeferlink.openapi.yaml.
type ServerInterface interface {
	// Run discovery for the chosen mode, or probe a manually entered address, and commit the winner.
	// (POST /v1/connect)
	Connect(ctx echo.Context) error
	// Re-validate the committed session's endpoint.
	// (POST /v1/reconnect)
	Reconnect(ctx echo.Context) error
	// Abandon the active discovery run.
	// (POST /v1/cancel)
	Cancel(ctx echo.Context) error
	// Return the committed session.
	// (GET /v1/session)
	GetSession(ctx echo.Context) error
	// Clear the committed session so the next launch runs discovery.
	// (DELETE /v1/session)
	DeleteSession(ctx echo.Context) error
	// Orchestrator state and whether a session is configured.
	// (GET /v1/status)
	GetStatus(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Connect(ctx echo.Context) error {
	return w.Handler.Connect(ctx)
}

func (w *ServerInterfaceWrapper) Reconnect(ctx echo.Context) error {
	return w.Handler.Reconnect(ctx)
}

func (w *ServerInterfaceWrapper) Cancel(ctx echo.Context) error {
	return w.Handler.Cancel(ctx)
}

func (w *ServerInterfaceWrapper) GetSession(ctx echo.Context) error {
	return w.Handler.GetSession(ctx)
}

func (w *ServerInterfaceWrapper) DeleteSession(ctx echo.Context) error {
	return w.Handler.DeleteSession(ctx)
}

func (w *ServerInterfaceWrapper) GetStatus(ctx echo.Context) error {
	return w.Handler.GetStatus(ctx)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group the handlers are registered on.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/v1/connect", wrapper.Connect)
	router.POST(baseURL+"/v1/reconnect", wrapper.Reconnect)
	router.POST(baseURL+"/v1/cancel", wrapper.Cancel)
	router.GET(baseURL+"/v1/session", wrapper.GetSession)
	router.DELETE(baseURL+"/v1/session", wrapper.DeleteSession)
	router.GET(baseURL+"/v1/status", wrapper.GetStatus)
}

// ConnectRequest defines model for ConnectRequest.
type ConnectRequest struct {
	Mode    *string `json:"mode,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Candidate defines model for Candidate.
type Candidate struct {
	Address string `json:"address"`
	Mode    string `json:"mode"`
	Source  string `json:"source"`
}

// Attempt defines model for Attempt.
type Attempt struct {
	Address   string `json:"address"`
	Source    string `json:"source"`
	Result    string `json:"result"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// ConnectResponse defines model for ConnectResponse.
type ConnectResponse struct {
	RunId          string    `json:"run_id"`
	Mode           string    `json:"mode"`
	Candidate      Candidate `json:"candidate"`
	Attempts       []Attempt `json:"attempts"`
	DiscoveryError *string   `json:"discovery_error,omitempty"`
}

// SessionResponse defines model for SessionResponse. The cloud API key is never returned.
type SessionResponse struct {
	Mode          string     `json:"mode"`
	Address       *string    `json:"address,omitempty"`
	CloudEndpoint *string    `json:"cloud_endpoint,omitempty"`
	Organization  *string    `json:"organization,omitempty"`
	Configured    bool       `json:"configured"`
	ConfiguredAt  *time.Time `json:"configured_at,omitempty"`
}

// StatusResponse defines model for StatusResponse.
type StatusResponse struct {
	State      string  `json:"state"`
	Configured bool    `json:"configured"`
	Mode       *string `json:"mode,omitempty"`
}
