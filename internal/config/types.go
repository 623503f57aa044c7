// Package config handles configuration loading and defaults.
package config

import "github.com/nibzard/tasklist/internal/statedir"

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultBackend    = "file"
	DefaultStorageKey = "todos"
	DefaultSQLiteFile = statedir.DBFile
	DefaultRedisAddr  = "localhost:6379"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Storage
	Backend    string `toml:"backend"`
	StorageKey string `toml:"storage_key"`
	StateDir   string `toml:"state_dir"`
	SQLiteFile string `toml:"sqlite_file"` // relative paths resolve against StateDir

	// Redis backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// Logging
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Sources maps each field's TOML name to where its value came from.
	Sources map[string]Source `toml:"-"`

	// Files lists the config files that were read, in load order.
	Files []string `toml:"-"`
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{
		"backend",
		"storage_key",
		"state_dir",
		"sqlite_file",
		"redis_addr",
		"redis_password",
		"redis_db",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the display value of a field by TOML name. Secrets are
// masked.
func (c *Config) Value(field string) string {
	switch field {
	case "backend":
		return c.Backend
	case "storage_key":
		return c.StorageKey
	case "state_dir":
		return c.StateDir
	case "sqlite_file":
		return c.SQLiteFile
	case "redis_addr":
		return c.RedisAddr
	case "redis_password":
		if c.RedisPassword == "" {
			return ""
		}
		return "********"
	case "redis_db":
		return itoa(c.RedisDB)
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return btoa(c.LogTimestamps)
	case "log_caller":
		return btoa(c.LogCaller)
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.StorageKey = DefaultStorageKey
	cfg.StateDir = statedir.Home()
	cfg.SQLiteFile = DefaultSQLiteFile
	cfg.RedisAddr = DefaultRedisAddr
	cfg.LogDir = statedir.LogsPath(cfg.StateDir)
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat

	cfg.Sources = make(map[string]Source, len(Fields()))
	for _, field := range Fields() {
		cfg.Sources[field] = SourceDefault
	}
}
