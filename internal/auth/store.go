package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultStorageDir is the default directory for persisted tokens,
// relative to the user's home directory.
const DefaultStorageDir = ".config/traktsync"

const tokenFileName = "token.json"

// TokenStore persists a serialized token across process runs. Save is
// shaped to plug straight into ManagerConfig.Save; Load feeds
// Config.SerializedToken on the next run.
type TokenStore interface {
	Save(serialized string) error
	Load() (string, error)
	Clear() error
}

// FileStore persists the token as a JSON file with owner-only permissions.
//
// SECURITY: the file is written 0600 and its directory created 0700;
// token values are never logged.
type FileStore struct {
	path string
}

// NewFileStore creates a file store rooted at dir, defaulting to
// ~/.config/traktsync.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, DefaultStorageDir)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token storage directory: %w", err)
	}

	return &FileStore{path: filepath.Join(dir, tokenFileName)}, nil
}

// Save writes the serialized token with restricted permissions.
func (s *FileStore) Save(serialized string) error {
	if err := os.WriteFile(s.path, []byte(serialized), 0600); err != nil {
		slog.Warn("Token persistence failed",
			"path", s.path,
			"error", err.Error(),
		)
		return fmt.Errorf("failed to write token file: %w", err)
	}
	slog.Debug("Token persisted", "path", s.path)
	return nil
}

// Load returns the previously saved token, or "" when none exists.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return string(data), nil
}

// Clear removes the persisted token. Clearing an absent token is not an
// error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	slog.Debug("Persisted token cleared", "path", s.path)
	return nil
}
