// Package statedir names the files kept under the tasklist state directory.
package statedir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the per-user state directory.
	Dir = ".tasklist"

	// ConfigFile is the config file name, both inside Dir and in a project.
	ConfigFile = "tasklist.toml"

	// HiddenConfigFile is the dotted project config file name.
	HiddenConfigFile = ".tasklist.toml"

	// DBFile is the default SQLite database name.
	DBFile = "tasklist.db"

	// LogsDir is the log directory name inside Dir.
	LogsDir = "logs"
)

// Home returns the state directory under the user's home, or Dir relative to
// the working directory when the home directory is unknown.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// ConfigPath returns the config file path inside stateDir.
func ConfigPath(stateDir string) string {
	return join(stateDir, ConfigFile)
}

// DBPath returns the default SQLite path inside stateDir.
func DBPath(stateDir string) string {
	return join(stateDir, DBFile)
}

// LogsPath returns the log directory inside stateDir.
func LogsPath(stateDir string) string {
	return join(stateDir, LogsDir)
}

func join(stateDir, name string) string {
	if stateDir == "" || stateDir == "." {
		return filepath.Join(Dir, name)
	}
	return filepath.Join(stateDir, name)
}
