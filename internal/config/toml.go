// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// APIKeyEnv names the environment variable holding the weather API key.
const APIKeyEnv = "STOPCAST_API_KEY"

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Locations []string        `toml:"locations"`
	Weather   WeatherConfig   `toml:"weather"`
	Stopwatch StopwatchConfig `toml:"stopwatch"`
	History   HistoryConfig   `toml:"history"`
}

// WeatherConfig maps weather provider settings.
type WeatherConfig struct {
	APIKey          *string   `toml:"api-key"`
	Endpoint        *string   `toml:"endpoint"`
	DefaultLocation *string   `toml:"default-location"`
	Timeout         *Duration `toml:"timeout"`
}

// StopwatchConfig maps stopwatch settings.
type StopwatchConfig struct {
	Tick *Duration `toml:"tick"`
}

// HistoryConfig maps the run archive settings.
type HistoryConfig struct {
	Enabled *bool `toml:"enabled"`
}

// Duration wraps time.Duration for TOML strings such as "10ms" or "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// APIKeyFromEnv returns the API key from the environment, if set.
func APIKeyFromEnv() *string {
	v, ok := os.LookupEnv(APIKeyEnv)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
