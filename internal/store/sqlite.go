package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps values in a single kv table.
//
// driver is either "sqlite3" (mattn/go-sqlite3, cgo) or "sqlite"
// (modernc.org/sqlite, pure Go); both read the same file format.
type SQLiteStore struct {
	db       *sql.DB
	mu       sync.Mutex
	dbPath   string
	driver   string
	maxBytes int
	logger   *zap.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(driver, path string, maxValueBytes int, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("driver", driver), zap.String("path", path))

	if driver != DriverSQLiteCgo && driver != DriverSQLitePure {
		return nil, fmt.Errorf("unsupported sqlite driver: %s", driver)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("Failed to create directory", zap.String("dir", dir), zap.Error(err))
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("Failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logger.Debug("Failed to set sqlite journal_mode=WAL", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logger.Debug("Failed to set sqlite synchronous=NORMAL", zap.Error(err))
	}

	s := &SQLiteStore{db: db, dbPath: path, driver: driver, maxBytes: maxValueBytes, logger: logger}
	if err := s.initialize(); err != nil {
		logger.Error("Failed to initialize schema", zap.Error(err))
		db.Close()
		return nil, err
	}
	logger.Debug("SQLite kv store ready")
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

// Get implements Backend.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("failed to query %q: %v: %w", key, err, ErrUnavailable)
	}
	return value, nil
}

// Set implements Backend.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if err := checkQuota(key, value, s.maxBytes); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}
