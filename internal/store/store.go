// Package store provides the key-value backends that hold sociogram's local
// state: one string value per fixed key, read whole and overwritten whole.
//
// Backends:
//   - memory: map-backed, for tests and throwaway sessions
//   - file: one file per key under the workspace (default)
//   - sqlite3 / sqlite: a kv table through mattn/go-sqlite3 or modernc.org/sqlite
//   - redis: GET/SET against a local redis instance
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"sociogram/internal/config"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key.
	ErrNotFound = errors.New("store: key not found")

	// ErrQuotaExceeded is returned by Set when the value does not fit.
	ErrQuotaExceeded = errors.New("store: quota exceeded")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = errors.New("store: backend unavailable")
)

// Backend is a string key-value store.
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key, value string) error

	// Close releases the backend's resources.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory     = "memory"
	DriverFile       = "file"
	DriverSQLiteCgo  = "sqlite3"
	DriverSQLitePure = "sqlite"
	DriverRedis      = "redis"
)

// Open builds the backend named by cfg.Driver. Relative paths are resolved
// against the workspace state directory.
func Open(ctx context.Context, cfg config.StorageConfig, stateDir string, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	path := cfg.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(stateDir, path)
	}

	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStore(cfg.MaxValueBytes), nil
	case DriverFile, "":
		if path == "" {
			path = filepath.Join(stateDir, "storage")
		}
		return NewFileStore(path, cfg.MaxValueBytes)
	case DriverSQLiteCgo, DriverSQLitePure:
		if path == "" {
			path = filepath.Join(stateDir, "sociogram.db")
		}
		return NewSQLiteStore(cfg.Driver, path, cfg.MaxValueBytes, logger)
	case DriverRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:          cfg.Redis.Addr,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			KeyPrefix:     cfg.Redis.KeyPrefix,
			Timeout:       cfg.GetRedisTimeout(),
			MaxValueBytes: cfg.MaxValueBytes,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// checkQuota returns ErrQuotaExceeded when a positive limit is exceeded.
func checkQuota(key, value string, limit int) error {
	if limit > 0 && len(value) > limit {
		return fmt.Errorf("value for %q is %d bytes, limit %d: %w", key, len(value), limit, ErrQuotaExceeded)
	}
	return nil
}
