// Package kv provides the key-value facilities task state is persisted in.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store is a string key-value facility.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases the backend's resources.
	Close() error
}

// Backend names.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// ErrEmptyKey is returned for operations on the empty key.
var ErrEmptyKey = errors.New("kv: empty key")

// Options selects and configures a backend.
type Options struct {
	Backend string

	// Dir is the directory used by the file backend.
	Dir string

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string

	// Redis connection settings.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendMemory, BackendRedis, BackendSQLite}
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case BackendSQLite:
		return NewSQLiteStore(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want one of: %s)", opts.Backend, strings.Join(Backends(), ", "))
	}
}
