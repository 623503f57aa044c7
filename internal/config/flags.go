package config

import "flag"

// flagFields maps flag names to the TOML field they set.
var flagFields = map[string]string{
	"backend":        "backend",
	"key":            "storage_key",
	"state-dir":      "state_dir",
	"sqlite-file":    "sqlite_file",
	"redis-addr":     "redis_addr",
	"redis-db":       "redis_db",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs and parses args. Flags that were
// given explicitly are recorded as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend (file, memory, redis, sqlite)")
	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "Storage key holding the task list")
	fs.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "State directory for the file and sqlite backends")
	fs.StringVar(&cfg.SQLiteFile, "sqlite-file", cfg.SQLiteFile, "SQLite database file")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address (host:port)")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Redis database number")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			cfg.Sources[field] = SourceFlag
		}
	})
	return nil
}
