package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from THINGSTODO_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("THINGSTODO_STORE"); v != "" {
		cfg.Store = v
		set("store")
	}
	if v := os.Getenv("THINGSTODO_STORE_PATH"); v != "" {
		cfg.StorePath = v
		set("store_path")
	}
	if v := os.Getenv("THINGSTODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
		set("data_dir")
	}
	if v := os.Getenv("THINGSTODO_THEME"); v != "" {
		cfg.Theme = v
		set("theme")
	}

	// Logging configuration
	if v := os.Getenv("THINGSTODO_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("THINGSTODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("THINGSTODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("THINGSTODO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("THINGSTODO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
