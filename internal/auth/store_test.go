package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	// Nothing stored yet
	serialized, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if serialized != "" {
		t.Errorf("Expected empty load, got %q", serialized)
	}

	if err := store.Save(`{"access_token":"tok"}`); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	serialized, err = store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if serialized != `{"access_token":"tok"}` {
		t.Errorf("Round trip mismatch: got %q", serialized)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	serialized, err = store.Load()
	if err != nil {
		t.Fatalf("Load() after clear failed: %v", err)
	}
	if serialized != "" {
		t.Errorf("Expected empty load after clear, got %q", serialized)
	}

	// Clearing again is not an error
	if err := store.Clear(); err != nil {
		t.Errorf("Second Clear() failed: %v", err)
	}
}

func TestFileStore_RestrictedPermissions(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	if err := store.Save("secret"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmpDir, tokenFileName))
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}

	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %o", perm)
	}
}

func TestKeyringStore_SaveLoadClear(t *testing.T) {
	keyring.MockInit()

	store := NewKeyringStore("tester@example.com")

	serialized, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if serialized != "" {
		t.Errorf("Expected empty load, got %q", serialized)
	}

	if err := store.Save("keyring-token"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	serialized, err = store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if serialized != "keyring-token" {
		t.Errorf("Round trip mismatch: got %q", serialized)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	serialized, err = store.Load()
	if err != nil {
		t.Fatalf("Load() after clear failed: %v", err)
	}
	if serialized != "" {
		t.Errorf("Expected empty load after clear, got %q", serialized)
	}
}
