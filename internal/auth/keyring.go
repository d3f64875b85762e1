package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "traktsync"

// KeyringStore persists the serialized token in the operating system
// keychain instead of a file. The account distinguishes multiple installs
// sharing one keychain.
type KeyringStore struct {
	account string
}

// NewKeyringStore creates a keyring-backed store for the given account;
// an empty account falls back to "default".
func NewKeyringStore(account string) *KeyringStore {
	if account == "" {
		account = "default"
	}
	return &KeyringStore{account: account}
}

// Save writes the serialized token into the keychain.
func (s *KeyringStore) Save(serialized string) error {
	if err := keyring.Set(keyringService, s.account, serialized); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Load returns the previously saved token, or "" when none exists.
func (s *KeyringStore) Load() (string, error) {
	serialized, err := keyring.Get(keyringService, s.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return serialized, nil
}

// Clear removes the persisted token. Clearing an absent token is not an
// error.
func (s *KeyringStore) Clear() error {
	err := keyring.Delete(keyringService, s.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
