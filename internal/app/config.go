package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	MockLatency      bool    `envconfig:"MOCK_LATENCY" default:"true"`
	MockLatencyScale float64 `envconfig:"MOCK_LATENCY_SCALE" default:"1"`
	MockErrorRate    float64 `envconfig:"MOCK_ERROR_RATE" default:"0"`
	MockIDPolicy     string  `envconfig:"MOCK_ID_POLICY" default:"sequential"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the mock layer cannot honour.
func (c *Config) Validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	if c.MockErrorRate < 0 || c.MockErrorRate > 1 {
		return fmt.Errorf("MOCK_ERROR_RATE must be within [0, 1], got %v", c.MockErrorRate)
	}
	if c.MockLatencyScale < 0 {
		return fmt.Errorf("MOCK_LATENCY_SCALE must not be negative, got %v", c.MockLatencyScale)
	}
	switch c.MockIDPolicy {
	case "sequential", "uuid":
	default:
		return fmt.Errorf("MOCK_ID_POLICY must be sequential or uuid, got %q", c.MockIDPolicy)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
