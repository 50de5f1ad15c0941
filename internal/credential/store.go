// Package credential persists the session token between runs.
package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Store reads and writes a single session token file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the trimmed token. A missing or blank file is reported as ok == false.
func (s *Store) Load() (token string, ok bool, err error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read session file: %w", err)
	}

	token = strings.TrimSpace(string(raw))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Save replaces the file contents with token.
func (s *Store) Save(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
