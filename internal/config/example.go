package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# thingstodo configuration file
# Values can be overridden by THINGSTODO_* environment variables or CLI flags

# Store backend: file (one JSON file per key), sqlite, or memory
store = "file"

# Store location. Defaults to <data_dir>/store for file
# and <data_dir>/thingstodo.db for sqlite.
# store_path = "~/.thingstodo/store"

# Data directory (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.thingstodo"

# Theme used until one is chosen in the app: light or dark
theme = "light"

# Logging. The terminal UI always logs to <log_dir>/thingstodo.log.
# log_dir = "~/.thingstodo"
log_level = "info"
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
