package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port                string        `envconfig:"PORT" default:"4000"`
	Provider            string        `envconfig:"PROVIDER" default:"luckyalgo"`
	DefaultJurisdiction string        `envconfig:"DEFAULT_JURISDICTION" default:"NY"`
	JurisdictionsFile   string        `envconfig:"JURISDICTIONS_FILE"`
	ProbeInterval       time.Duration `envconfig:"PROBE_INTERVAL" default:"5m"`
	LuckyAlgo           LuckyAlgoConfig
	Metrics             MetricsConfig
	Log                 LogConfig
}

// Load reads a .env file when present, then environment variables, with
// defaults for everything unset.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	switch c.Provider {
	case "":
		c.Provider = defaultProvider
	case ProviderLuckyAlgo, ProviderFixture:
	default:
		return fmt.Errorf("load config: unknown provider %q", c.Provider)
	}

	if strings.TrimSpace(c.Port) == "" {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.DefaultJurisdiction) == "" {
		c.DefaultJurisdiction = defaultJurisdiction
	}
	if c.ProbeInterval <= 0 {
		c.ProbeInterval = defaultProbeInterval
	}
	if strings.TrimSpace(c.LuckyAlgo.BaseURL) == "" {
		c.LuckyAlgo.BaseURL = defaultLuckyBaseURL
	}
	if c.LuckyAlgo.Timeout <= 0 {
		c.LuckyAlgo.Timeout = defaultLuckyTimeout
	}
	if strings.TrimSpace(c.Metrics.Port) == "" {
		c.Metrics.Port = defaultMetricsPort
	}
	if strings.TrimSpace(c.Metrics.ServiceName) == "" {
		c.Metrics.ServiceName = defaultServiceName
	}
	return nil
}
