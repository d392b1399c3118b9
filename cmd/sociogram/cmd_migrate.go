package main

import (
	"fmt"
	"strings"

	"sociogram/internal/config"
	"sociogram/internal/feed"
	"sociogram/internal/logging"
	"sociogram/internal/store"
	"sociogram/internal/ux"

	"github.com/spf13/cobra"
)

// runMigrate copies the feed and preference keys between drivers. Both
// backends share the rest of the storage config.
func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	ws, err := resolveWorkspace(workspace)
	if err != nil {
		return err
	}
	path := configPath
	if path == "" {
		path = config.DefaultPath(ws)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	from := migrateFrom
	if from == "" {
		from = cfg.Storage.Driver
	}
	if from == migrateTo {
		return fmt.Errorf("source and destination are both %q", from)
	}
	for _, d := range []string{from, migrateTo} {
		if !validDriver(d) {
			return fmt.Errorf("invalid storage driver: %s (valid: %s)", d, strings.Join(config.ValidDrivers, ", "))
		}
	}

	stateDir := config.StateDir(ws)
	logger, err := logging.New(cfg.Logging, stateDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()
	storeLog := logger.Get(logging.CategoryStore)

	srcCfg, dstCfg := driverConfig(cfg.Storage, from), driverConfig(cfg.Storage, migrateTo)
	src, err := store.Open(ctx, srcCfg, stateDir, storeLog)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()
	dst, err := store.Open(ctx, dstCfg, stateDir, storeLog)
	if err != nil {
		return fmt.Errorf("failed to open destination: %w", err)
	}
	defer dst.Close()

	result, err := store.Migrate(ctx, src, dst, []string{feed.PostsKey, ux.DarkModeKey},
		store.MigrateOptions{Overwrite: migrateOverwrite}, storeLog)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Migrated %s -> %s\n", from, migrateTo)
	for _, k := range result.Copied {
		fmt.Fprintf(out, "  copied   %s\n", k)
	}
	for _, k := range result.Skipped {
		fmt.Fprintf(out, "  skipped  %s (already present, use --overwrite)\n", k)
	}
	for _, k := range result.Missing {
		fmt.Fprintf(out, "  missing  %s\n", k)
	}
	return nil
}

// driverConfig switches the driver. A path set for one driver does not carry
// over to another kind, so the default location is used instead.
func driverConfig(base config.StorageConfig, driver string) config.StorageConfig {
	cfg := base
	if kind(driver) != kind(base.Driver) {
		cfg.Path = ""
	}
	cfg.Driver = driver
	return cfg
}

func kind(driver string) string {
	switch driver {
	case store.DriverSQLiteCgo, store.DriverSQLitePure:
		return "sqlite"
	case store.DriverFile, "":
		return "file"
	default:
		return driver
	}
}

func validDriver(d string) bool {
	for _, v := range config.ValidDrivers {
		if v == d {
			return true
		}
	}
	return false
}
