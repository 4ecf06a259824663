package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
)

// CurrentProfileStore persists the last selected profile in a plain text
// marker file holding nothing but the profile name.
type CurrentProfileStore struct {
	path string
}

func NewCurrentProfileStore(path string) *CurrentProfileStore {
	return &CurrentProfileStore{path: path}
}

// Path returns the marker file location.
func (s *CurrentProfileStore) Path() string {
	return s.path
}

// Read returns the stored profile name, or DefaultProfile when nothing has
// been selected yet.
func (s *CurrentProfileStore) Read() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultProfile, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return string(b), nil
}

// Write replaces the marker file with name. The file is written to a
// temporary sibling and renamed so a crash never leaves it truncated.
func (s *CurrentProfileStore) Write(name string) error {
	if name == "" {
		return ErrEmptyProfileName
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}
	if err := atomicwriter.WriteFile(s.path, []byte(name), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
