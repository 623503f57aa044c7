package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Storage backend: file, memory, redis or sqlite
backend = "file"

# Key holding the serialized task list
storage_key = "todos"

# State directory for the file and sqlite backends (supports ~ expansion)
state_dir = "~/.tasklist"

# SQLite database, relative to state_dir unless absolute
sqlite_file = "tasklist.db"

# Redis backend
redis_addr = "localhost:6379"
# redis_password = ""
redis_db = 0

# Logging
log_dir = "~/.tasklist/logs"
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
