package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr          string
	Password      string
	DB            int
	KeyPrefix     string
	Timeout       time.Duration
	MaxValueBytes int
}

// RedisStore keeps values as plain redis strings under KeyPrefix.
type RedisStore struct {
	client   *redis.Client
	prefix   string
	timeout  time.Duration
	maxBytes int
	logger   *zap.Logger
}

// NewRedisStore connects to redis and pings it once. An unreachable server is
// reported as ErrUnavailable.
func NewRedisStore(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	s := &RedisStore{
		client:   client,
		prefix:   opts.KeyPrefix,
		timeout:  opts.Timeout,
		maxBytes: opts.MaxValueBytes,
		logger:   logger.With(zap.String("addr", opts.Addr)),
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %v: %w", opts.Addr, err, ErrUnavailable)
	}
	s.logger.Debug("Connected to redis")
	return s, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get implements Backend.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("redis get %q: %v: %w", key, err, ErrUnavailable)
	}
	return v, nil
}

// Set implements Backend.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := checkQuota(key, value, s.maxBytes); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %v: %w", key, err, ErrUnavailable)
	}
	return nil
}

// Close implements Backend.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
