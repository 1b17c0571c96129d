//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
gateway:
  url: http://localhost:9000
session:
  honeypot_mode: true
`)

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.API.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Gateway.AnalyzeTimeout != 30*time.Second {
		t.Errorf("expected 30s analyze timeout, got %v", cfg.Gateway.AnalyzeTimeout)
	}
	if cfg.Gateway.HealthTimeout != 5*time.Second {
		t.Errorf("expected 5s health timeout, got %v", cfg.Gateway.HealthTimeout)
	}
	if cfg.Session.Platform != "sms" || cfg.Session.Language != "en" {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}
	if !cfg.Session.HoneypotMode {
		t.Error("expected honeypot mode from file")
	}
}

func TestLoadConfigRequiresGatewayURL(t *testing.T) {
	path := writeConfig(t, "api:\n  port: 9999\n")

	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("expected error for missing gateway.url")
	}
	// Dev mode tolerates a missing gateway (noop adapter).
	if _, err := LoadConfig(path, true); err != nil {
		t.Fatalf("expected dev mode to tolerate missing gateway.url, got %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
gateway:
  url: http://localhost:9000
  api_key: from-file
`)
	t.Setenv("HONEYPOT_API_KEY", "from-env")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gateway.APIKey != "from-env" {
		t.Errorf("expected env override for api key, got %q", cfg.Gateway.APIKey)
	}
}
