// Package config loads the playkit configuration from TOML files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// ProgressIntervalMs is the progress sampling period in milliseconds.
	// Zero or negative means the built-in default (200ms).
	ProgressIntervalMs int `koanf:"progress_interval_ms"`

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error"
	Format string `koanf:"format"` // "text" or "json"
}

// Load reads config files in priority order (last wins) and unmarshals the
// merged result. Missing files are skipped.
func Load() (*Config, error) {
	return load(configPaths())
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProgressInterval returns the configured sampling interval with the default
// applied.
func (c *Config) ProgressInterval() time.Duration {
	if c.ProgressIntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.ProgressIntervalMs) * time.Millisecond
}

func configPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/playkit/config.toml, falling back to
	//    ~/.config/playkit/config.toml
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		paths = append(paths, filepath.Join(configHome, "playkit", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}
