package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// MigrationResult holds the result of copying state between backends.
type MigrationResult struct {
	Copied   []string
	Missing  []string
	Skipped  []string
	Duration time.Duration
}

// MigrateOptions controls Migrate.
type MigrateOptions struct {
	// Overwrite replaces values already present in dst.
	Overwrite bool
}

// Migrate copies keys from src to dst. Keys absent from src are reported
// as missing; keys already in dst are left alone unless opts.Overwrite is
// set. The first read or write failure aborts the run.
func Migrate(ctx context.Context, src, dst Backend, keys []string, opts MigrateOptions, logger *zap.Logger) (*MigrationResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	result := &MigrationResult{}

	for _, key := range keys {
		value, err := src.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			logger.Debug("Key missing in source, skipping", zap.String("key", key))
			result.Missing = append(result.Missing, key)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to read %q from source: %w", key, err)
		}

		if !opts.Overwrite {
			_, err := dst.Get(ctx, key)
			if err == nil {
				logger.Debug("Key present in destination, skipping", zap.String("key", key))
				result.Skipped = append(result.Skipped, key)
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return result, fmt.Errorf("failed to check %q in destination: %w", key, err)
			}
		}

		if err := dst.Set(ctx, key, value); err != nil {
			return result, fmt.Errorf("failed to write %q to destination: %w", key, err)
		}
		result.Copied = append(result.Copied, key)
	}

	result.Duration = time.Since(start)
	logger.Info("Migration complete",
		zap.Strings("copied", result.Copied),
		zap.Strings("missing", result.Missing),
		zap.Strings("skipped", result.Skipped),
		zap.Duration("duration", result.Duration))
	return result, nil
}
