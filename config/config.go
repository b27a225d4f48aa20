// Package config loads engine host configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config collects the environment settings an engine host reads.
type Config struct {
	// DBPath is the sqlite database path. Empty selects the in-memory store.
	DBPath string `env:"RADICEX_DB_PATH"`

	// GrantIssuer and GrantAudience are stamped into the operator grant and
	// checked on every grant validation.
	GrantIssuer   string `env:"RADICEX_GRANT_ISSUER"   envDefault:"radicex"`
	GrantAudience string `env:"RADICEX_GRANT_AUDIENCE" envDefault:"radicex-operator"`

	// Locale selects the language of operator-facing error messages.
	Locale string `env:"RADICEX_LOCALE" envDefault:"en-US"`

	// OTELEndpoint enables trace export when non-empty. Read by the
	// telemetry package at setup.
	OTELEndpoint string `env:"RADICEX_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv loads the engine host configuration.
func FromEnv() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
