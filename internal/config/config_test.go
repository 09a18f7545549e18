package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cliniq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.AuthSecret != DevAuthSecret {
		t.Errorf("expected dev auth secret fallback, got %q", cfg.AuthSecret)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s request timeout, got %s", cfg.RequestTimeout)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cliniq")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
}

func TestValidate_ProductionRejectsDevSecret(t *testing.T) {
	cfg := &Config{Env: "production", AuthSecret: DevAuthSecret, DBMaxConns: 20, DBMinConns: 5, RequestTimeout: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for dev secret in production")
	}
	cfg.AuthSecret = "real-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_PoolBounds(t *testing.T) {
	cfg := &Config{Env: "development", AuthSecret: "x", DBMaxConns: 5, DBMinConns: 10, RequestTimeout: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when min conns exceed max conns")
	}
}
