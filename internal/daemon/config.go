// Package daemon manages the VapeTrack daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Sync      SyncConfig      `toml:"sync"`
	Display   DisplayConfig   `toml:"display"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// SyncConfig controls the optional remote mirror.
type SyncConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

// DisplayConfig controls the live counters.
type DisplayConfig struct {
	RefreshInterval string `toml:"refresh_interval"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := vapetrackHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8763,
			CORSOrigins: []string{"*"},
		},
		Sync: SyncConfig{
			Enabled: false,
		},
		Display: DisplayConfig{
			RefreshInterval: "250ms",
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "vapetrack.log"),
		},
	}
}

// RefreshInterval parses the configured live-counter cadence, falling
// back to 250ms on anything unparseable.
func (c Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.Display.RefreshInterval)
	if err != nil || d <= 0 {
		return 250 * time.Millisecond
	}
	return d
}

// LoadConfig reads config from ~/.vapetrack/config.toml, falling back
// to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(vapetrackHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.vapetrack/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(vapetrackHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// vapetrackHome returns the VapeTrack data directory.
func vapetrackHome() string {
	if env := os.Getenv("VAPETRACK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vapetrack")
}

// VapetrackHome is exported for use by other packages.
func VapetrackHome() string {
	return vapetrackHome()
}
