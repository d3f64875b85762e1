package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://api.trakt.tv/oauth/device/code", cfg.Auth.CodeEndpoint)
	assert.Equal(t, "file", cfg.TokenStorage)
	assert.Equal(t, "trakt", cfg.Auth.Service)
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
auth:
  clientID: my-id
  clientSecret: my-secret
tokenStorage: keyring
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "my-id", cfg.Auth.ClientID)
	assert.Equal(t, "my-secret", cfg.Auth.ClientSecret)
	assert.Equal(t, "keyring", cfg.TokenStorage)
	// Defaults survive for fields the file does not set.
	assert.Equal(t, "https://api.trakt.tv/oauth/device/token", cfg.Auth.CodeTokenEndpoint)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("auth: ["), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := Default()
	cfg.Auth.ClientID = "round-trip-id"
	cfg.Auth.Email = "user@example.com"

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "round-trip-id", loaded.Auth.ClientID)
	assert.Equal(t, "user@example.com", loaded.Auth.Email)
}
