package config

import "flag"

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"store":          "store",
	"store-path":     "store_path",
	"data-dir":       "data_dir",
	"theme":          "theme",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags. Flags are bound directly to cfg;
// only explicitly set flags are recorded in sources.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("thingstodo", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Store backend (file, sqlite, memory)")
	fs.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "Store location (directory for file, database for sqlite)")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Initial theme when none is stored (light, dark)")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory (defaults to the data directory)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if fieldName, ok := flagToSource[f.Name]; ok {
				sources[fieldName] = SourceFlag
			}
		})
	}
	return nil
}
