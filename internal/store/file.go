package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one file per key inside a directory. Writes go to a temp
// file in the same directory and are renamed into place, so a crash never
// leaves a half-written value behind.
type FileStore struct {
	mu       sync.Mutex
	dir      string
	maxBytes int
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string, maxValueBytes int) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxValueBytes}, nil
}

// Dir returns the directory holding the values.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) path(key string) string {
	// Keys are fixed identifiers, but escape them so no key can leave dir.
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Get implements Backend.
func (f *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %q: %v: %w", key, err, ErrUnavailable)
	}
	return string(data), nil
}

// Set implements Backend.
func (f *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkQuota(key, value, f.maxBytes); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v: %w", err, ErrUnavailable)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return fmt.Errorf("failed to replace %q: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (f *FileStore) Close() error {
	return nil
}
