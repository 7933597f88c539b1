package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reeferlink/adapters/myredis"
	"reeferlink/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envOrganization   = "REEFER_ORG"
	envSessionScope   = "SESSION_SCOPE"
	envCloudBaseURL   = "CLOUD_BASE_URL"
	envCloudAPIKey    = "CLOUD_API_KEY"
	envSessionBackend = "SESSION_BACKEND"
	envBoltPath       = "BOLT_PATH"
	envRedisAddr      = "REDIS_ADDR"
	envHTTPPort       = "SERVICE_PORT_HTTP"
	envGRPCPort       = "SERVICE_PORT_GRPC"
	envLogLevel       = "LOG_LEVEL"
	envConfigPath     = "CONFIG_PATH"
)

const (
	backendBolt  = "bolt"
	backendRedis = "redis"

	defaultOrganization = "parametican"
	defaultSessionScope = "frioseguro"
	defaultHTTPPort     = 8080
	defaultServiceType  = "_http._tcp"
	defaultDeviceToken  = "reefer"
)

// Config holds everything LoadConfig reads from the environment and the optional YAML file at CONFIG_PATH.
type Config struct {
	SessionScope   string
	SessionBackend string
	BoltPath       string
	Redis          myredis.RedisConfig
	HTTPPort       int
	// GRPCPort is 0 when the health server is disabled.
	GRPCPort int
	LogLevel string

	Discovery DiscoveryConfig
}

// DiscoveryConfig configures the candidate generator, the multicast listener and the orchestrator.
type DiscoveryConfig struct {
	ServiceType  string
	DeviceToken  string
	MDNSEnabled  bool
	Candidates   service.CandidateConfig
	Orchestrator service.OrchestratorConfig
}

// yamlConfig is the root of the YAML file; only the discovery section is read.
type yamlConfig struct {
	Discovery yamlDiscovery `yaml:"discovery"`
}

// yamlDiscovery overrides the built-in discovery defaults. Absent keys keep the default.
type yamlDiscovery struct {
	ServiceType             string   `yaml:"service_type"`
	DeviceToken             string   `yaml:"device_token"`
	Hostname                string   `yaml:"hostname"`
	Gateway                 string   `yaml:"gateway"`
	SubnetPrefixes          []string `yaml:"subnet_prefixes"`
	HostSuffixes            []string `yaml:"host_suffixes"`
	ExtraAddresses          []string `yaml:"extra_addresses"`
	LocalBudgetMs           *int     `yaml:"local_budget_ms"`
	CloudBudgetMs           *int     `yaml:"cloud_budget_ms"`
	ProbeTimeoutMs          *int     `yaml:"probe_timeout_ms"`
	AnnouncedProbeTimeoutMs *int     `yaml:"announced_probe_timeout_ms"`
	CloudProbeTimeoutMs     *int     `yaml:"cloud_probe_timeout_ms"`
	MDNSEnabled             *bool    `yaml:"mdns_enabled"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the configuration from environment variables and, when CONFIG_PATH is set, the YAML file it
// points to. REDIS_ADDR is required only for SESSION_BACKEND=redis; SERVICE_PORT_GRPC is optional.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		SessionScope:   envOr(envSessionScope, defaultSessionScope),
		SessionBackend: strings.ToLower(envOr(envSessionBackend, backendBolt)),
		LogLevel:       strings.ToLower(envOr(envLogLevel, "info")),
		Discovery: DiscoveryConfig{
			ServiceType:  defaultServiceType,
			DeviceToken:  defaultDeviceToken,
			MDNSEnabled:  true,
			Candidates:   service.DefaultCandidateConfig(),
			Orchestrator: service.DefaultOrchestratorConfig(),
		},
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%s must be debug|info|warn|error, got %q", envLogLevel, cfg.LogLevel)
	}

	switch cfg.SessionBackend {
	case backendBolt:
		path, err := boltPath()
		if err != nil {
			return nil, err
		}
		cfg.BoltPath = path
	case backendRedis:
		cfg.Redis.Addr = strings.TrimSpace(os.Getenv(envRedisAddr))
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("%s is required when %s=%s", envRedisAddr, envSessionBackend, backendRedis)
		}
	default:
		return nil, fmt.Errorf("%s must be %s|%s, got %q", envSessionBackend, backendBolt, backendRedis, cfg.SessionBackend)
	}

	httpPort, err := portFromEnv(envHTTPPort, defaultHTTPPort)
	if err != nil {
		return nil, err
	}
	cfg.HTTPPort = httpPort

	grpcPort, err := portFromEnv(envGRPCPort, 0)
	if err != nil {
		return nil, err
	}
	cfg.GRPCPort = grpcPort

	organization := envOr(envOrganization, defaultOrganization)
	cfg.Discovery.Candidates.Organization = organization
	cfg.Discovery.Candidates.CloudBaseURL = strings.TrimSpace(os.Getenv(envCloudBaseURL))
	cfg.Discovery.Orchestrator.Organization = organization
	cfg.Discovery.Orchestrator.CloudAPIKey = strings.TrimSpace(os.Getenv(envCloudAPIKey))

	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return cfg, nil
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	if err := applyDiscovery(&cfg.Discovery, raw.Discovery); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}

	return cfg, nil
}

func applyDiscovery(dst *DiscoveryConfig, raw yamlDiscovery) error {
	if s := strings.TrimSpace(raw.ServiceType); s != "" {
		dst.ServiceType = s
	}
	if s := strings.TrimSpace(raw.DeviceToken); s != "" {
		dst.DeviceToken = s
	}
	if raw.MDNSEnabled != nil {
		dst.MDNSEnabled = *raw.MDNSEnabled
	}
	if s := strings.TrimSpace(raw.Hostname); s != "" {
		dst.Candidates.Hostname = s
	}
	if s := strings.TrimSpace(raw.Gateway); s != "" {
		dst.Candidates.Gateway = s
	}
	if raw.SubnetPrefixes != nil {
		dst.Candidates.SubnetPrefixes = raw.SubnetPrefixes
	}
	if raw.HostSuffixes != nil {
		dst.Candidates.HostSuffixes = raw.HostSuffixes
	}
	if raw.ExtraAddresses != nil {
		dst.Candidates.ExtraAddresses = raw.ExtraAddresses
	}

	durations := []struct {
		key string
		ms  *int
		dst *time.Duration
	}{
		{"local_budget_ms", raw.LocalBudgetMs, &dst.Orchestrator.LocalBudget},
		{"cloud_budget_ms", raw.CloudBudgetMs, &dst.Orchestrator.CloudBudget},
		{"probe_timeout_ms", raw.ProbeTimeoutMs, &dst.Orchestrator.ProbeTimeout},
		{"announced_probe_timeout_ms", raw.AnnouncedProbeTimeoutMs, &dst.Orchestrator.AnnouncedProbeTimeout},
		{"cloud_probe_timeout_ms", raw.CloudProbeTimeoutMs, &dst.Orchestrator.CloudProbeTimeout},
	}
	for _, d := range durations {
		if d.ms == nil {
			continue
		}
		if *d.ms <= 0 {
			return fmt.Errorf("discovery.%s must be positive, got %d", d.key, *d.ms)
		}
		*d.dst = time.Duration(*d.ms) * time.Millisecond
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// portFromEnv returns fallback when key is unset.
func portFromEnv(key string, fallback int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 0-65535, got %d", key, port)
	}
	return port, nil
}

func boltPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(envBoltPath)); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%s is not set and the home directory is unknown: %w", envBoltPath, err)
	}
	return filepath.Join(home, ".config", "reeferlink", "session.db"), nil
}
