// Package appdir provides constants and utilities for the .thingstodo data directory.
package appdir

import "path/filepath"

const (
	// Dir is the name of the data directory.
	Dir = ".thingstodo"

	// Name is the application name used for OS config directories.
	Name = "thingstodo"

	// DefaultStoreDir holds one file per key for the file backend.
	DefaultStoreDir = "store"

	// DefaultDBFile is the SQLite database file name.
	DefaultDBFile = "thingstodo.db"

	// DefaultConfigFile is the config file name.
	DefaultConfigFile = "thingstodo.toml"

	// DefaultLogFile is the log file written while the TUI owns the terminal.
	DefaultLogFile = "thingstodo.log"
)

// StorePath returns the default location for backend inside baseDir.
// The memory backend has no location.
func StorePath(baseDir, backend string) string {
	switch backend {
	case "sqlite":
		return filepath.Join(baseDir, DefaultDBFile)
	case "memory":
		return ""
	default:
		return filepath.Join(baseDir, DefaultStoreDir)
	}
}

// ConfigPath returns the config file path inside baseDir.
func ConfigPath(baseDir string) string {
	return filepath.Join(baseDir, DefaultConfigFile)
}

// LogPath returns the log file path inside logDir.
func LogPath(logDir string) string {
	return filepath.Join(logDir, DefaultLogFile)
}
