package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sociogram/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain ensures closed backends leave no goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type backendFactory func(t *testing.T, maxBytes int) Backend

func backends(t *testing.T) map[string]backendFactory {
	t.Helper()
	return map[string]backendFactory{
		"memory": func(t *testing.T, maxBytes int) Backend {
			return NewMemoryStore(maxBytes)
		},
		"file": func(t *testing.T, maxBytes int) Backend {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "kv"), maxBytes)
			require.NoError(t, err)
			return s
		},
		"sqlite3": func(t *testing.T, maxBytes int) Backend {
			s, err := NewSQLiteStore(DriverSQLiteCgo, filepath.Join(t.TempDir(), "kv.db"), maxBytes, nil)
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T, maxBytes int) Backend {
			s, err := NewSQLiteStore(DriverSQLitePure, filepath.Join(t.TempDir(), "kv.db"), maxBytes, nil)
			require.NoError(t, err)
			return s
		},
	}
}

func TestBackendContract(t *testing.T) {
	ctx := context.Background()

	for name, factory := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := factory(t, 0)
			defer b.Close()

			_, err := b.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Set(ctx, "ugc_feed_posts", `[{"id":"p1"}]`))
			got, err := b.Get(ctx, "ugc_feed_posts")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"p1"}]`, got)

			require.NoError(t, b.Set(ctx, "ugc_feed_posts", `[]`))
			got, err = b.Get(ctx, "ugc_feed_posts")
			require.NoError(t, err)
			assert.Equal(t, `[]`, got, "set must overwrite")

			require.NoError(t, b.Set(ctx, "ugc_feed_dark_mode", "true"))
			got, err = b.Get(ctx, "ugc_feed_dark_mode")
			require.NoError(t, err)
			assert.Equal(t, "true", got)
		})
	}
}

func TestBackendQuota(t *testing.T) {
	ctx := context.Background()

	for name, factory := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := factory(t, 8)
			defer b.Close()

			require.NoError(t, b.Set(ctx, "k", "12345678"))
			err := b.Set(ctx, "k", strings.Repeat("x", 9))
			assert.ErrorIs(t, err, ErrQuotaExceeded)

			got, err := b.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "12345678", got, "rejected write must not replace the prior value")
		})
	}
}

func TestMemoryStoreFailureInjection(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)

	boom := errors.New("boom")
	m.FailWrites(boom)
	assert.ErrorIs(t, m.Set(ctx, "k", "v"), boom)
	assert.Equal(t, 0, m.Writes())

	m.FailWrites(nil)
	require.NoError(t, m.Set(ctx, "k", "v"))
	assert.Equal(t, 1, m.Writes())

	m.FailReads(ErrUnavailable)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrUnavailable)

	raw, ok := m.Raw("k")
	assert.True(t, ok)
	assert.Equal(t, "v", raw)
}

func TestFileStoreEscapesKeys(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kv")
	s, err := NewFileStore(dir, 0)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "../escape", "v"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := NewSQLiteStore(DriverSQLitePure, path, 0, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "persisted"))
	require.NoError(t, s.Close())

	s2, err := NewSQLiteStore(DriverSQLitePure, path, 0, nil)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestNewSQLiteStoreRejectsUnknownDriver(t *testing.T) {
	_, err := NewSQLiteStore("postgres", filepath.Join(t.TempDir(), "kv.db"), 0, nil)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	stateDir := t.TempDir()

	t.Run("default is file", func(t *testing.T) {
		b, err := Open(ctx, config.StorageConfig{}, stateDir, nil)
		require.NoError(t, err)
		defer b.Close()
		fs, ok := b.(*FileStore)
		require.True(t, ok, "expected *FileStore, got %T", b)
		assert.Equal(t, filepath.Join(stateDir, "storage"), fs.Dir())
	})

	t.Run("relative sqlite path", func(t *testing.T) {
		b, err := Open(ctx, config.StorageConfig{Driver: DriverSQLitePure, Path: "feed.db"}, stateDir, nil)
		require.NoError(t, err)
		defer b.Close()
		s, ok := b.(*SQLiteStore)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(stateDir, "feed.db"), s.Path())
	})

	t.Run("memory", func(t *testing.T) {
		b, err := Open(ctx, config.StorageConfig{Driver: DriverMemory}, stateDir, nil)
		require.NoError(t, err)
		defer b.Close()
		assert.IsType(t, &MemoryStore{}, b)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, config.StorageConfig{Driver: "etcd"}, stateDir, nil)
		assert.Error(t, err)
	})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SOCIOGRAM_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SOCIOGRAM_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	s, err := NewRedisStore(ctx, RedisOptions{Addr: addr, KeyPrefix: "sociogram-test:" + t.Name() + ":"}, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v"))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestRedisStoreUnreachable(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisOptions{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}
