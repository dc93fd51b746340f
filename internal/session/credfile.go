// Package session holds the authenticated identity and its persisted
// credential. This file implements the on-disk credential slot.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CredentialFile is the single named storage slot for the bearer
// credential, surviving restarts the way the web client's local
// storage slot survived reloads.
type CredentialFile struct {
	path string
}

// NewCredentialFile creates a slot at the given path.
func NewCredentialFile(path string) *CredentialFile {
	return &CredentialFile{path: path}
}

// Load reads the persisted credential. Returns "" (not an error) when
// no credential has been saved.
func (f *CredentialFile) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading credential file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the credential, creating parent directories as needed.
// The file is owner-readable only.
func (f *CredentialFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing credential file: %w", err)
	}
	return nil
}

// Clear removes the credential. Clearing an empty slot is not an error.
func (f *CredentialFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credential file: %w", err)
	}
	return nil
}
