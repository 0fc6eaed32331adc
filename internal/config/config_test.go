package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Weather.APIKey != nil || cfg.Stopwatch.Tick != nil || len(cfg.Locations) != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `locations = ["Paris", "Tokyo"]

[weather]
api-key = "abc"
default-location = "Paris"
timeout = "3s"

[stopwatch]
tick = "50ms"

[history]
enabled = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Weather.APIKey == nil || *cfg.Weather.APIKey != "abc" {
		t.Fatalf("unexpected api key: %v", cfg.Weather.APIKey)
	}
	if cfg.Weather.DefaultLocation == nil || *cfg.Weather.DefaultLocation != "Paris" {
		t.Fatalf("unexpected default location: %v", cfg.Weather.DefaultLocation)
	}
	if cfg.Weather.Endpoint != nil {
		t.Fatalf("expected unset endpoint")
	}
	if cfg.Weather.Timeout == nil || cfg.Weather.Timeout.Duration != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Weather.Timeout)
	}
	if cfg.Stopwatch.Tick == nil || cfg.Stopwatch.Tick.Duration != 50*time.Millisecond {
		t.Fatalf("unexpected tick: %v", cfg.Stopwatch.Tick)
	}
	if cfg.History.Enabled == nil || !*cfg.History.Enabled {
		t.Fatalf("expected history enabled")
	}
	if strings.Join(cfg.Locations, ",") != "Paris,Tokyo" {
		t.Fatalf("unexpected locations: %v", cfg.Locations)
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[stopwatch]\ntick = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error for bad duration")
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "  from-env ")
	key := APIKeyFromEnv()
	if key == nil || *key != "from-env" {
		t.Fatalf("unexpected key: %v", key)
	}
	t.Setenv(APIKeyEnv, "")
	if APIKeyFromEnv() != nil {
		t.Fatalf("expected blank env to be ignored")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if got := DefaultConfigPath(); got != filepath.Join(dir, "cfg", "stopcast", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "data", "stopcast", "history.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "stopcast", "stopcast.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
