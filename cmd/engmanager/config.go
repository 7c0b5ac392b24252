// ABOUTME: YAML configuration for the engmanager CLI with environment variable overrides.
// ABOUTME: A missing config file yields defaults; a present but invalid one is an error.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the file-backed settings shared by the editor and the server.
type Config struct {
	// Addr is the HTTP listen address for server mode.
	Addr string `yaml:"addr"`
	// DataDir holds routes.json, content files, and the revision database.
	DataDir string `yaml:"data_dir"`
	// DebounceMS is the editor validation debounce in milliseconds.
	DebounceMS int `yaml:"debounce_ms"`
	// BannerMS is the editor banner auto-dismiss delay in milliseconds.
	BannerMS int `yaml:"banner_ms"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Addr:       "127.0.0.1:8080",
		DataDir:    "data",
		DebounceMS: 500,
		BannerMS:   5000,
	}
}

// LoadConfig reads the YAML config at path, fills in defaults for omitted
// fields, and applies ENGMANAGER_* environment overrides. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = DefaultConfig().DebounceMS
	}
	if cfg.BannerMS <= 0 {
		cfg.BannerMS = DefaultConfig().BannerMS
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultConfig().DataDir
	}
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over file values, matching
// the deployment convention of config file plus env tweaks.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENGMANAGER_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ENGMANAGER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ENGMANAGER_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DebounceMS = n
		}
	}
	if v := os.Getenv("ENGMANAGER_BANNER_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BannerMS = n
		}
	}
}

// Debounce returns the editor debounce as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// BannerDuration returns the banner auto-dismiss delay as a duration.
func (c Config) BannerDuration() time.Duration {
	return time.Duration(c.BannerMS) * time.Millisecond
}
