package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IPIFY_API_KEY", "at_key")
	for _, k := range []string{"LOG_LEVEL", "MCP_HOST", "PORT", "IPIFY_TIMEOUT", "MAP_INITIAL_ZOOM", "NOTIFICATION_TTL", "JOBS_DATA_PATH"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "info" || cfg.Host != "0.0.0.0" || cfg.Port != "8080" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Ipify.Timeout != 10*time.Second || cfg.Map.InitialZoom != 13 || cfg.NotificationTTL != 5*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !strings.Contains(cfg.Map.TileTemplate, "{z}/{x}/{y}") {
		t.Errorf("tile template = %q", cfg.Map.TileTemplate)
	}
	if cfg.Jobs.DataPath != "" {
		t.Errorf("data path = %q", cfg.Jobs.DataPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("IPIFY_API_KEY", "at_key")
	t.Setenv("PORT", "9090")
	t.Setenv("IPIFY_TIMEOUT", "3s")
	t.Setenv("MAP_INITIAL_ZOOM", "9")
	t.Setenv("SESSION_IDLE_TIMEOUT", "bogus")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Ipify.Timeout != 3*time.Second || cfg.Map.InitialZoom != 9 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.SessionIdleTimeout != 30*time.Minute {
		t.Errorf("invalid duration should fall back to default, got %v", cfg.SessionIdleTimeout)
	}
}

func TestLoadMissingKey(t *testing.T) {
	t.Setenv("IPIFY_API_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "IPIFY_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("IPIFY_API_KEY=at_from_file\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// Setenv registers the restore; the key must be truly unset for the file to apply
	t.Setenv("IPIFY_API_KEY", "")
	os.Unsetenv("IPIFY_API_KEY")
	// godotenv does not override variables that are already set
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ipify.APIKey != "at_from_file" {
		t.Errorf("api key = %q", cfg.Ipify.APIKey)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("existing env should win, got %q", cfg.LogLevel)
	}
}
