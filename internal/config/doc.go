// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.thingstodo/thingstodo.toml or OS-specific config directory)
// 3. Project config file (thingstodo.toml or .thingstodo.toml in the working directory)
// 4. Environment variables (THINGSTODO_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// The entrypoint may seed the environment from a .env file before loading.
//
// User-level config locations:
// - ~/.thingstodo/thingstodo.toml (preferred)
// - Windows: %APPDATA%\thingstodo\thingstodo.toml
// - macOS: ~/Library/Application Support/thingstodo/thingstodo.toml
// - Linux/BSD: $XDG_CONFIG_HOME/thingstodo/thingstodo.toml or ~/.config/thingstodo/thingstodo.toml
//
// Project-level config locations (overrides user config):
// - ./thingstodo.toml (preferred)
// - ./.thingstodo.toml
package config
