package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/thingstodo/internal/appdir"
	"github.com/nibzard/thingstodo/internal/store"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.thingstodo/thingstodo.toml or OS-specific config dir)
// 3. Project config file (thingstodo.toml or .thingstodo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := load(fs, args, nil)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}
	return load(fs, args, sources)
}

// load is the shared implementation. If sources is non-nil, it tracks the
// source of each value.
func load(fs *flag.FlagSet, args []string, sources map[string]ConfigSource) (*ConfigWithSources, error) {
	cfg := &Config{}
	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cws, userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cws, projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes a TOML file over the current config.
func loadConfigFile(cws *ConfigWithSources, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	cws.Files = append(cws.Files, path)
	if cws.Sources != nil {
		for _, key := range md.Keys() {
			cws.Sources[key.String()] = source
		}
	}
	for _, key := range md.Undecoded() {
		cws.Warnings = append(cws.Warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Store = DefaultStore
	cfg.DataDir = DefaultDataDir
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	cfg.Store = store.NormalizeBackend(cfg.Store)
	switch cfg.Store {
	case store.BackendFile, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("invalid store %q (expected file|sqlite|memory)", cfg.Store)
	}

	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.Theme != ThemeLight && cfg.Theme != ThemeDark {
		return fmt.Errorf("invalid theme %q (expected light|dark)", cfg.Theme)
	}

	// Determine project root
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.DataDir = absPath(cfg.ProjectRoot, expandPath(cfg.DataDir))
	if cfg.LogDir == "" {
		cfg.LogDir = cfg.DataDir
	}
	cfg.LogDir = absPath(cfg.ProjectRoot, expandPath(cfg.LogDir))

	if cfg.StorePath == "" {
		cfg.StorePath = appdir.StorePath(cfg.DataDir, cfg.Store)
	} else {
		cfg.StorePath = absPath(cfg.ProjectRoot, expandPath(cfg.StorePath))
	}

	return nil
}

// absPath resolves p against root when it is relative.
func absPath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// GetConfigFile returns the highest-priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
