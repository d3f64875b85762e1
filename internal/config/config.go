package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"traktsync/internal/auth"
)

const (
	userConfigDir  = ".config/traktsync"
	configFileName = "config.yaml"
)

// Config is the process configuration. Loading returns a value; nothing in
// the program writes back into it.
type Config struct {
	// Auth is the OAuth engine configuration.
	Auth auth.Config `yaml:"auth"`

	// APIBaseURL overrides the Trakt API base.
	APIBaseURL string `yaml:"apiBaseURL,omitempty"`

	// TokenStorage selects the persistence backend: "file" or "keyring".
	TokenStorage string `yaml:"tokenStorage,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Auth: auth.Config{
			CodeEndpoint:      "https://api.trakt.tv/oauth/device/code",
			CodeTokenEndpoint: "https://api.trakt.tv/oauth/device/token",
			TokenEndpoint:     "https://api.trakt.tv/oauth/token",
			Service:           "trakt",
		},
		TokenStorage: "file",
	}
}

// DefaultPath returns the default configuration directory.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// Load reads config.yaml from the given directory, overlaying it on the
// defaults. A missing file is not an error: the defaults are returned.
func Load(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	cfg := Default()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No config file found, using defaults", "path", configFilePath)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	slog.Debug("Loaded configuration", "path", configFilePath)
	return cfg, nil
}

// Save writes the configuration to config.yaml in the given directory,
// creating the directory with owner-only permissions if needed.
func Save(configPath string, cfg Config) error {
	if err := os.MkdirAll(configPath, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	configFilePath := filepath.Join(configPath, configFileName)
	if err := os.WriteFile(configFilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", configFilePath, err)
	}
	return nil
}
