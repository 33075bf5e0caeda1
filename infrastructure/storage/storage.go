// Package storage abstracts filesystem access for components that persist
// application state.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage is the filesystem capability used by the cache and other
// persistence concerns. Implementations resolve AppDataDir themselves so
// callers never hard-code user paths.
type Storage interface {
	ReadFile(path string) ([]byte, error)
	ReadToString(path string) (string, error)
	WriteFile(path string, data []byte) error
	CreateDirAll(path string) error
	FileExists(path string) bool
	DeleteFile(path string) error
	ListFilesInDir(path string) ([]string, error)
	FileSize(path string) (int64, error)
	AppDataDir() (string, error)
}

// appDirName is the directory created under the user home directory.
const appDirName = ".typedrill"

// OSStorage implements Storage against the local filesystem.
type OSStorage struct {
	baseDir string
}

// NewOSStorage creates an OSStorage. An empty baseDir resolves the
// application data directory under the user home directory.
func NewOSStorage(baseDir string) *OSStorage {
	return &OSStorage{baseDir: baseDir}
}

// ReadFile reads the file contents.
func (s *OSStorage) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadToString reads the file contents as a string.
func (s *OSStorage) ReadToString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes data, creating parent directories as needed.
func (s *OSStorage) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// CreateDirAll creates the directory and any missing parents.
func (s *OSStorage) CreateDirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// FileExists reports whether path exists and is a regular file.
func (s *OSStorage) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DeleteFile removes the file. Deleting a missing file is not an error.
func (s *OSStorage) DeleteFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ListFilesInDir returns the names of regular files directly under path.
// A missing directory yields an empty list.
func (s *OSStorage) ListFilesInDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// FileSize returns the size of the file in bytes.
func (s *OSStorage) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// AppDataDir resolves the application data directory and creates it when
// missing.
func (s *OSStorage) AppDataDir() (string, error) {
	dir := s.baseDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, appDirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create app data directory: %w", err)
	}
	return dir, nil
}
