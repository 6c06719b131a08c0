package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage keys mirror the two slots the widget historically used.
const (
	messagesKey = "chatMessages"
	languageKey = "chatLanguage"
)

// fileStorage is a minimal durable key/value layer backed by one file per
// key. Writes go through a temp file and an atomic rename so a crash never
// leaves a half-written transcript behind.
type fileStorage struct {
	dir string
}

func newFileStorage(dir string) *fileStorage {
	return &fileStorage{dir: dir}
}

func (s *fileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the stored value for key, or ok=false when absent.
func (s *fileStorage) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes the value for key atomically.
func (s *fileStorage) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tempPath := s.path(key) + ".tmp"
	if err := os.WriteFile(tempPath, value, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tempPath, s.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value for key. Missing keys are not an error.
func (s *fileStorage) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
