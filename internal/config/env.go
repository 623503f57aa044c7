package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TASKLIST_* environment variables.
func loadFromEnv(cfg *Config) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			cfg.Sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			cfg.Sources[field] = SourceEnv
		}
	}

	setString("TASKLIST_BACKEND", "backend", &cfg.Backend)
	setString("TASKLIST_KEY", "storage_key", &cfg.StorageKey)
	setString("TASKLIST_STATE_DIR", "state_dir", &cfg.StateDir)
	setString("TASKLIST_SQLITE_FILE", "sqlite_file", &cfg.SQLiteFile)
	setString("TASKLIST_REDIS_ADDR", "redis_addr", &cfg.RedisAddr)
	setString("TASKLIST_REDIS_PASSWORD", "redis_password", &cfg.RedisPassword)
	if v := os.Getenv("TASKLIST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.RedisDB = i
			cfg.Sources["redis_db"] = SourceEnv
		}
	}

	// Logging configuration
	setString("TASKLIST_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TASKLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TASKLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)
}
