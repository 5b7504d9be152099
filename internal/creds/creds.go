// Package creds persists the bearer credential between runs.
// The credential lives in its own file under ~/.config/marquee/ so that
// clearing it on logout cannot disturb other preferences.
package creds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultCredentialPath = "~/.config/marquee/credential"

// Store reads and writes the persisted credential. The zero value is not
// usable; construct with NewStore.
type Store struct {
	path string
}

// DefaultPath returns the default credential file path.
func DefaultPath() string {
	return defaultCredentialPath
}

// NewStore builds a store for the given path; empty uses the default.
func NewStore(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = defaultCredentialPath
	}
	return &Store{path: path}
}

// Token returns the persisted credential, or empty when none is stored or
// the file cannot be read. Reads never fail loudly: an unreadable credential
// is the same as no credential.
func (s *Store) Token() string {
	resolved, err := expandPath(s.path)
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the credential with owner-only permissions, creating the
// directory as needed.
func (s *Store) Save(token string) error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve credential path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Clear removes the persisted credential. A missing file is not an error.
func (s *Store) Clear() error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve credential path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
