package gemfile

import (
	"fmt"
	"os"
)

const manifestFileMode = 0o644

// Store reads and writes the Gemfile on disk. It is the only component that
// touches the filesystem; the rest of the pipeline works on line text.
type Store struct{}

// NewStore creates a Gemfile store.
func NewStore() *Store {
	return &Store{}
}

// Exists reports whether a manifest is present at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Read returns the manifest's full text.
func (s *Store) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(data), nil
}

// Write overwrites the manifest with the rebuilt content.
func (s *Store) Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), manifestFileMode); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
