package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got %s", cfg.Environment)
	}
	if cfg.API.RequestTimeout != 15*time.Second {
		t.Errorf("expected 15s request timeout, got %s", cfg.API.RequestTimeout)
	}
	if cfg.Keystore.Backend != "file" {
		t.Errorf("expected file keystore backend, got %s", cfg.Keystore.Backend)
	}
	if cfg.Refresh.Enabled {
		t.Error("refresh should be disabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CAREERHUB_ENVIRONMENT", "production")
	t.Setenv("CAREERHUB_API_BASEURL", "https://api.example.test/api")
	t.Setenv("CAREERHUB_KEYSTORE_BACKEND", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected CAREERHUB_ENVIRONMENT override, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "https://api.example.test/api" {
		t.Errorf("expected CAREERHUB_API_BASEURL override, got %s", cfg.API.BaseURL)
	}
	if cfg.Keystore.Backend != "redis" {
		t.Errorf("expected CAREERHUB_KEYSTORE_BACKEND override, got %s", cfg.Keystore.Backend)
	}
}
