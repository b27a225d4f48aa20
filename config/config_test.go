package config

import (
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("RADICEX_DB_PATH", "")
	t.Setenv("RADICEX_GRANT_ISSUER", "")
	t.Setenv("RADICEX_GRANT_AUDIENCE", "")
	t.Setenv("RADICEX_LOCALE", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.GrantIssuer != "radicex" {
		t.Errorf("GrantIssuer = %q, want radicex", cfg.GrantIssuer)
	}
	if cfg.GrantAudience != "radicex-operator" {
		t.Errorf("GrantAudience = %q, want radicex-operator", cfg.GrantAudience)
	}
	if cfg.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", cfg.Locale)
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RADICEX_DB_PATH", "/var/lib/radicex/game.db")
	t.Setenv("RADICEX_GRANT_ISSUER", "casino")
	t.Setenv("RADICEX_GRANT_AUDIENCE", "floor-operator")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.DBPath != "/var/lib/radicex/game.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.GrantIssuer != "casino" {
		t.Errorf("GrantIssuer = %q, want casino", cfg.GrantIssuer)
	}
	if cfg.GrantAudience != "floor-operator" {
		t.Errorf("GrantAudience = %q, want floor-operator", cfg.GrantAudience)
	}
}

type portConfig struct {
	Port int `env:"RADICEX_TEST_PORT" envDefault:"123"`
}

func TestParseEnvError(t *testing.T) {
	var cfg portConfig
	t.Setenv("RADICEX_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
