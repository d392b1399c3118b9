package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps values in a map. FailWrites and FailReads let tests
// simulate a backend that refuses writes or cannot be read.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]string
	maxBytes   int
	failWrites error
	failReads  error
	writes     int
}

// NewMemoryStore creates an empty store. maxValueBytes <= 0 disables the quota.
func NewMemoryStore(maxValueBytes int) *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]string),
		maxBytes: maxValueBytes,
	}
}

// Get implements Backend.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failReads != nil {
		return "", m.failReads
	}
	v, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	return v, nil
}

// Set implements Backend.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites != nil {
		return m.failWrites
	}
	if err := checkQuota(key, value, m.maxBytes); err != nil {
		return err
	}
	m.data[key] = value
	m.writes++
	return nil
}

// Close implements Backend.
func (m *MemoryStore) Close() error {
	return nil
}

// FailWrites makes every subsequent Set return err. Pass nil to restore.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = err
}

// FailReads makes every subsequent Get return err. Pass nil to restore.
func (m *MemoryStore) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = err
}

// Writes returns the number of successful Set calls.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Raw returns the stored value without any failure injection.
func (m *MemoryStore) Raw(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
