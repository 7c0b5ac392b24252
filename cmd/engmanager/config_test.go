// ABOUTME: Tests for config loading: defaults, YAML parsing, env overrides, and invalid files.
// ABOUTME: Uses t.Setenv so overrides never leak between tests.
package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engmanager.yaml")
	yaml := "addr: 127.0.0.1:9999\ndata_dir: /srv/content\ndebounce_ms: 250\nbanner_ms: 3000\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9999" || cfg.DataDir != "/srv/content" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Debounce())
	}
	if cfg.BannerDuration() != 3*time.Second {
		t.Errorf("BannerDuration = %v, want 3s", cfg.BannerDuration())
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engmanager.yaml")
	if err := os.WriteFile(path, []byte("addr: 127.0.0.1:9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %s", cfg.Addr)
	}
	if cfg.DebounceMS != DefaultConfig().DebounceMS {
		t.Errorf("DebounceMS = %d, want default", cfg.DebounceMS)
	}
}

func TestLoadConfig_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engmanager.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfig_EnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engmanager.yaml")
	if err := os.WriteFile(path, []byte("addr: 127.0.0.1:9999\ndebounce_ms: 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ENGMANAGER_ADDR", "0.0.0.0:80")
	t.Setenv("ENGMANAGER_DEBOUNCE_MS", "100")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr != "0.0.0.0:80" {
		t.Errorf("Addr = %s, want env override", cfg.Addr)
	}
	if cfg.DebounceMS != 100 {
		t.Errorf("DebounceMS = %d, want env override", cfg.DebounceMS)
	}
}

func TestLoadConfig_NonPositiveDurationsReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engmanager.yaml")
	if err := os.WriteFile(path, []byte("debounce_ms: -5\nbanner_ms: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DebounceMS != DefaultConfig().DebounceMS || cfg.BannerMS != DefaultConfig().BannerMS {
		t.Errorf("cfg = %+v, want defaults restored", cfg)
	}
}
