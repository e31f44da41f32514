// Package client holds everything the terminal client needs to talk to
// the API: configuration, the HTTP client, and the session controller.
package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultServerURL      = "http://localhost:8000"
	DefaultTimeoutSeconds = 10
)

// Config holds client configuration loaded from the user's config file.
type Config struct {
	ServerURL      string `toml:"server_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func setDefaults(cfg *Config) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// ConfigDir returns the per-user directory holding config and session
// state.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "go-todo-app"), nil
}

// LoadConfig reads the TOML config at path, applying defaults for any
// missing values. A missing file is not an error; the TODOAPP_SERVER
// env var overrides the server URL either way.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	setDefaults(cfg)

	if env := os.Getenv("TODOAPP_SERVER"); env != "" {
		cfg.ServerURL = env
	}

	return cfg, nil
}
