// Package storage provides the byte-oriented object store used for
// uploaded recordings and exported documents. The only backend is the
// local filesystem; keys are slash-separated relative paths under a base
// directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ObjectInfo contains minimal metadata about a stored object.
type ObjectInfo struct {
	Key  string // object key relative to the base path
	Size int64  // size in bytes
}

// Store is a local-filesystem object store.
type Store struct {
	basePath string
}

// NewStore creates a Store rooted at basePath, creating it if missing.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, fmt.Errorf("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base path: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// BasePath returns the store's root directory.
func (s *Store) BasePath() string { return s.basePath }

// Path resolves a key to an absolute filesystem path, rejecting keys that
// escape the base directory.
func (s *Store) Path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(s.basePath, clean), nil
}

// Put stores data under key, creating parent directories as needed.
func (s *Store) Put(key string, data []byte) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Get retrieves the data stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Delete removes the object stored under key. Deleting a missing object
// is not an error.
func (s *Store) Delete(key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists checks whether an object exists under key.
func (s *Store) Exists(key string) (bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns metadata for all objects whose key starts with prefix,
// sorted by key.
func (s *Store) List(prefix string) ([]ObjectInfo, error) {
	var infos []ObjectInfo
	err := filepath.Walk(s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, ObjectInfo{Key: key, Size: info.Size()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
