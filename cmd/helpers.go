package cmd

import (
	"fmt"
	"os"

	"traktsync/internal/auth"
	"traktsync/internal/config"
	"traktsync/internal/trakt"
)

// loadConfig resolves the config directory and loads the configuration.
func loadConfig() (config.Config, string, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, "", err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

// saveConfig writes the configuration back to its directory.
func saveConfig(path string, cfg config.Config) error {
	return config.Save(path, cfg)
}

// newTokenStore builds the persistence backend the configuration selects.
func newTokenStore(cfg config.Config) (auth.TokenStore, error) {
	switch cfg.TokenStorage {
	case "keyring":
		return auth.NewKeyringStore(cfg.Auth.Email), nil
	case "", "file":
		dir := ""
		if configPath != "" {
			dir = configPath
		}
		return auth.NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown token storage backend %q", cfg.TokenStorage)
	}
}

// newManager wires an auth manager: the persisted token (if any) is loaded
// into the flow configuration and new tokens go back out through the store.
func newManager(cfg config.Config, store auth.TokenStore, prompt auth.PromptFunc) (*auth.Manager, error) {
	serialized, err := store.Load()
	if err != nil {
		return nil, err
	}

	authCfg := cfg.Auth
	authCfg.SerializedToken = serialized

	if prompt == nil {
		prompt = func(message string) {
			fmt.Fprintln(os.Stdout, message)
		}
	}

	return auth.NewManager(auth.ManagerConfig{
		Config: authCfg,
		Prompt: prompt,
		Save:   store.Save,
	}), nil
}

// newAPIClient builds the full stack for a resource command: config,
// token store, auth manager, API client.
func newAPIClient() (*trakt.Client, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := newTokenStore(cfg)
	if err != nil {
		return nil, err
	}

	manager, err := newManager(cfg, store, nil)
	if err != nil {
		return nil, err
	}

	return trakt.NewClient(trakt.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		APIKey:  cfg.Auth.ClientID,
		Auth:    manager,
	}), nil
}
