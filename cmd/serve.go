package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"reeferlink/api"
	"reeferlink/domain"
	"reeferlink/handlers"
	"reeferlink/service"

	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP control API, metrics and, when SERVICE_PORT_GRPC is set, gRPC health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	logger := c.logger
	_ = level.Info(logger).Log("msg", "Starting reeferlink service", "version", version)
	_ = level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", c.cfg.HTTPPort,
		"service_port_grpc", c.cfg.GRPCPort,
		"session_backend", c.cfg.SessionBackend,
		"session_scope", c.cfg.SessionScope,
		"mdns_enabled", c.cfg.Discovery.MDNSEnabled,
	)

	a, err := openApp(ctx, c.cfg, logger)
	if err != nil {
		_ = level.Error(logger).Log("msg", "Failed to open session store", "err", err)
		return err
	}
	defer a.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	healthState := newSessionHealth(a.store.Load)
	orchestrator := a.newOrchestrator(registry, func(t domain.Transition) {
		if t.Candidate != nil {
			_ = level.Debug(logger).Log("msg", "state changed", "run_id", t.RunID, "from", t.From, "to", t.To, "address", t.Candidate.Address)
		} else {
			_ = level.Debug(logger).Log("msg", "state changed", "run_id", t.RunID, "from", t.From, "to", t.To)
		}
		healthState.observe(t)
	})
	defer orchestrator.Cancel()

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		validator, err := handlers.NewRequestValidator(api.Document)
		if err != nil {
			return fmt.Errorf("failed to build request validator: %w", err)
		}
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		service.RegisterErrorHandler(e, logger)
		e.Use(validator)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(orchestrator, logger))
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	var grpcServer *grpc.Server
	if c.cfg.GRPCPort > 0 {
		grpcServer = grpc.NewServer()
		grpc_health_v1.RegisterHealthServer(grpcServer, healthState.server)
		reflection.Register(grpcServer)

		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.cfg.GRPCPort))
		if err != nil {
			_ = level.Error(logger).Log("msg", "Failed to listen", "err", err)
			return err
		}
		go func() {
			_ = level.Info(logger).Log("msg", "Starting gRPC server", "addr", lis.Addr())
			if err := grpcServer.Serve(lis); err != nil {
				_ = level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", c.cfg.HTTPPort)
		_ = level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		_ = level.Info(logger).Log("msg", "Shutting down server...")
	case err = <-serveErr:
		_ = level.Error(logger).Log("msg", "HTTP server error", "err", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer shutdownCancel()

	orchestrator.Cancel()
	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		_ = level.Error(logger).Log("msg", "Error during server shutdown", "err", shutdownErr)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	_ = level.Info(logger).Log("msg", "Server stopped")
	return err
}
