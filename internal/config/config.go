// Package config resolves client configuration from flags and environment.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when neither flag nor environment says otherwise.
const (
	DefaultBaseURL = "http://localhost:8000/api/v1"
	DefaultTimeout = 30 * time.Second
)

// Config is everything the client needs to talk to the backend and keep
// its one durable key.
type Config struct {
	BaseURL   string        // backend base path, no trailing slash
	Timeout   time.Duration // per-request timeout
	ConfigDir string        // where token.json lives
	LogLevel  string        // debug, info, warn, error
}

// FromEnv fills a Config from CAMPSHARE_* variables, leaving defaults
// where unset. Flags override afterwards in cmd.
func FromEnv() Config {
	cfg := Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		ConfigDir: DefaultDir(),
		LogLevel:  "info",
	}
	if v := os.Getenv("CAMPSHARE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CAMPSHARE_CONFIG_DIR"); v != "" {
		cfg.ConfigDir = v
	}
	if v := os.Getenv("CAMPSHARE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CAMPSHARE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DefaultDir resolves the per-user config directory, honoring
// XDG_CONFIG_HOME.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "campshare")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "campshare")
}
