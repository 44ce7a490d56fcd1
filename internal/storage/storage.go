// Package storage provides the durable key-value stores preferences are
// persisted in.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Store is a string key-value store that may hold resources.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendBolt, BackendMemory}
}

// Open returns the store for backend at path. An empty path uses the
// backend's default location in the user config directory.
func Open(backend, path string) (Store, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = BackendFile
	}

	if path == "" && backend != BackendMemory {
		var err error
		path, err = DefaultPath(backend)
		if err != nil {
			return nil, err
		}
	}

	switch backend {
	case BackendFile:
		return NewFileStore(path)
	case BackendBolt:
		return OpenBolt(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q (expected %s)", backend, strings.Join(Backends(), ", "))
}

// DefaultPath returns the default file for backend.
func DefaultPath(backend string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	name := "preferences.yaml"
	if backend == BackendBolt {
		name = "preferences.db"
	}
	return filepath.Join(dir, "themectl", name), nil
}
