package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps one <key>.json file per key under a root directory.
type FileBackend struct {
	rootDir string
}

// NewFileBackend creates the root directory if needed and returns a backend
// over it.
func NewFileBackend(rootDir string) (*FileBackend, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", rootDir, err)
	}
	return &FileBackend{rootDir: rootDir}, nil
}

func (backend *FileBackend) filePath(key string) string {
	return filepath.Join(backend.rootDir, key+".json")
}

func (backend *FileBackend) Read(key string) ([]byte, error) {
	contents, err := os.ReadFile(backend.filePath(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}
	return contents, nil
}

func (backend *FileBackend) Write(key string, value []byte) error {
	// Write through a temp file so a crash never leaves a half-written store.
	tmpPath := backend.filePath(key) + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	if err := os.Rename(tmpPath, backend.filePath(key)); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}

func (backend *FileBackend) Delete(key string) error {
	if err := os.Remove(backend.filePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove > %w", err)
	}
	return nil
}
