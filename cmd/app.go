package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"reeferlink/adapters/boltstore"
	"reeferlink/adapters/localdns"
	"reeferlink/adapters/mdnsbrowser"
	"reeferlink/adapters/myredis"
	"reeferlink/domain"
	"reeferlink/interfaces"
	"reeferlink/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	redisKeyPrefix     = "reeferlink:session"
	redisReadyTimeout  = 15 * time.Second
	localLookupTimeout = 2 * time.Second
)

// newLogger builds the process logger, dropping records below levelName.
func newLogger(levelName string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, levelOption(levelName))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	return logger
}

func levelOption(levelName string) level.Option {
	switch levelName {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// app holds the pieces every command shares: the opened session store and its backend.
type app struct {
	cfg     *Config
	logger  log.Logger
	store   *service.SessionStore
	closers []func() error
}

// openApp opens the configured session backend and loads the stored session.
func openApp(ctx context.Context, cfg *Config, logger log.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	var backend interfaces.SessionBackend
	switch cfg.SessionBackend {
	case backendRedis:
		redisClient, err := myredis.NewRedisUniversalClient(cfg.Redis.Addr)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis client: %w", err)
		}
		a.closers = append(a.closers, redisClient.Close)
		if err := myredis.WaitReady(ctx, redisClient, redisReadyTimeout, logger); err != nil {
			a.close()
			return nil, err
		}
		_ = level.Info(logger).Log("msg", "Connected to Redis", "redis_addr", cfg.Redis.Addr)
		backend = myredis.NewSessionBackend(redisClient, redisKeyPrefix)
	default:
		bolt, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open session file %s: %w", cfg.BoltPath, err)
		}
		a.closers = append(a.closers, bolt.Close)
		_ = level.Debug(logger).Log("msg", "Opened session file", "path", cfg.BoltPath)
		backend = bolt
	}

	a.store = service.NewSessionStore(backend, cfg.SessionScope, logger)
	if err := a.store.Open(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return a, nil
}

// newOrchestrator wires the prober, generator and, unless disabled, the multicast listener.
// reg and observer may be nil.
func (a *app) newOrchestrator(reg prometheus.Registerer, observer func(domain.Transition)) *service.Orchestrator {
	discovery := a.cfg.Discovery
	resolver := localdns.NewResolver(localdns.MulticastAddr, localLookupTimeout, a.logger)
	prober := service.NewHTTPProber(resolver, discovery.Orchestrator.CloudAPIKey, a.logger)
	generator := service.NewCandidateGenerator(discovery.Candidates)

	var opts []service.OrchestratorOption
	if discovery.MDNSEnabled {
		browser := mdnsbrowser.NewBrowser(a.logger)
		listener := service.NewServiceDiscoveryListener(browser, resolver, discovery.ServiceType, discovery.DeviceToken, a.logger)
		opts = append(opts, service.WithListener(listener))
	}
	if reg != nil {
		opts = append(opts, service.WithMetrics(service.NewMetrics(reg)))
	}
	if observer != nil {
		opts = append(opts, service.WithObserver(observer))
	}

	return service.NewOrchestrator(generator, prober, a.store, discovery.Orchestrator, a.logger, opts...)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			_ = level.Warn(a.logger).Log("msg", "close failed", "err", err)
		}
	}
	a.closers = nil
}
