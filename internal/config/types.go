// Package config handles configuration loading and defaults.
package config

import "strings"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Warnings collects keys found in config files that are not recognized.
	Warnings []string
}

// Default values.
const (
	DefaultStore     = "file"
	DefaultDataDir   = "~/.thingstodo"
	DefaultTheme     = "light"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds the full configuration for thingstodo.
type Config struct {
	// Storage
	Store     string `toml:"store"`      // file | sqlite | memory
	StorePath string `toml:"store_path"` // defaults to a location inside DataDir
	DataDir   string `toml:"data_dir"`

	// Theme used when no theme has been stored yet
	Theme string `toml:"theme"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// DarkByDefault reports whether the configured initial theme is dark.
func (c *Config) DarkByDefault() bool {
	return strings.EqualFold(strings.TrimSpace(c.Theme), ThemeDark)
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"store",
		"store_path",
		"data_dir",
		"theme",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}
