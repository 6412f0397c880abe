package daemon_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vapetrack/vapetrack/internal/daemon"
)

func TestDefaultConfig(t *testing.T) {
	cfg := daemon.DefaultConfig()
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("host = %q, want 127.0.0.1", cfg.API.Host)
	}
	if cfg.API.Port != 8763 {
		t.Errorf("port = %d, want 8763", cfg.API.Port)
	}
	if cfg.Sync.Enabled {
		t.Error("sync must default to disabled")
	}
	if cfg.RefreshInterval() != 250*time.Millisecond {
		t.Errorf("refresh = %v, want 250ms", cfg.RefreshInterval())
	}
}

func TestRefreshInterval_FallbackOnGarbage(t *testing.T) {
	cfg := daemon.DefaultConfig()
	cfg.Display.RefreshInterval = "soon-ish"
	if cfg.RefreshInterval() != 250*time.Millisecond {
		t.Errorf("garbage interval should fall back to 250ms, got %v", cfg.RefreshInterval())
	}
	cfg.Display.RefreshInterval = "-1s"
	if cfg.RefreshInterval() != 250*time.Millisecond {
		t.Errorf("negative interval should fall back to 250ms, got %v", cfg.RefreshInterval())
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("VAPETRACK_HOME", home)

	// No file yet: defaults
	cfg, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.API.Port != 8763 {
		t.Errorf("default port = %d", cfg.API.Port)
	}

	cfg.API.Port = 9999
	cfg.Sync.Enabled = true
	cfg.Sync.Endpoint = "https://sync.example.com"
	if err := daemon.SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.API.Port != 9999 || !got.Sync.Enabled || got.Sync.Endpoint != "https://sync.example.com" {
		t.Errorf("round trip lost values: %+v", got)
	}
}
