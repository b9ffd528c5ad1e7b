// Package store provides key-value backends for the persisted task list.
//
// Three backends are available:
//   - "file": one JSON document per key inside a directory (default)
//   - "sqlite": a single kv table in an SQLite database
//   - "memory": process-local map, nothing survives a restart
package store

import (
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a string-keyed persistent map.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Keys lists the stored keys in sorted order.
	Keys() ([]string, error)
	// Close releases resources held by the store.
	Close() error
}

// Open opens the backend named by backend at path.
func Open(backend, path string) (Store, error) {
	switch NormalizeBackend(backend) {
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected file|sqlite|memory)", backend)
	}
}

// NormalizeBackend lowercases and trims a backend name and maps aliases.
func NormalizeBackend(backend string) string {
	b := strings.ToLower(strings.TrimSpace(backend))
	switch b {
	case "", "json", "dir":
		return BackendFile
	case "sqlite3", "db":
		return BackendSQLite
	case "mem":
		return BackendMemory
	}
	return b
}

// validKey reports whether key can be used as a file name on every platform.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		ok := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-' || c == '.'
		if !ok {
			return fmt.Errorf("invalid key %q: only letters, digits, '.', '_' and '-' are allowed", key)
		}
	}
	if key[0] == '.' {
		return fmt.Errorf("invalid key %q: must not start with '.'", key)
	}
	return nil
}
