package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"dataview/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Service ServiceConfig
	Session SessionConfig
	UI      UIConfig
}

// ServiceConfig holds analysis service connection settings
type ServiceConfig struct {
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"-"`
}

// SessionConfig holds durable session storage settings
type SessionConfig struct {
	FilePath string `toml:"session_file"`
}

// UIConfig holds local view server settings
type UIConfig struct {
	Port string `toml:"ui_port"`
}

// fileConfig mirrors the optional ~/.config/dataview/config.toml layout
type fileConfig struct {
	BaseURL     string `toml:"base_url"`
	SessionFile string `toml:"session_file"`
	UIPort      string `toml:"ui_port"`
	TimeoutSecs int    `toml:"timeout_seconds"`
}

// Load reads configuration from the optional TOML file and environment
// variables (environment wins) and validates it.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	config := &Config{
		Service: ServiceConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: 60 * time.Second,
		},
		Session: SessionConfig{
			FilePath: filepath.Join(home, ".config", "dataview", "session.json"),
		},
		UI: UIConfig{
			Port: "8090",
		},
	}

	if err := applyFile(config, filepath.Join(home, ".config", "dataview", "config.toml")); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration file")
	}
	applyEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func applyFile(config *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil // file is optional
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}

	if fc.BaseURL != "" {
		config.Service.BaseURL = fc.BaseURL
	}
	if fc.SessionFile != "" {
		config.Session.FilePath = fc.SessionFile
	}
	if fc.UIPort != "" {
		config.UI.Port = fc.UIPort
	}
	if fc.TimeoutSecs > 0 {
		config.Service.Timeout = time.Duration(fc.TimeoutSecs) * time.Second
	}
	return nil
}

func applyEnv(config *Config) {
	config.Service.BaseURL = getEnvOrDefault("ANALYZER_BASE_URL", config.Service.BaseURL)
	config.Session.FilePath = getEnvOrDefault("SESSION_FILE", config.Session.FilePath)
	config.UI.Port = getEnvOrDefault("UI_PORT", config.UI.Port)
	config.Service.Timeout = getEnvDurationOrDefault("REQUEST_TIMEOUT", config.Service.Timeout)
}

func validateConfig(config *Config) error {
	if config.Service.BaseURL == "" {
		return errors.ConfigInvalid("analysis service base URL is required")
	}
	if config.Session.FilePath == "" {
		return errors.ConfigInvalid("session file path is required")
	}
	if config.Service.Timeout <= 0 {
		return errors.ConfigInvalid("request timeout must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
