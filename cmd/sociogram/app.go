package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sociogram/cmd/sociogram/ui"
	"sociogram/internal/config"
	"sociogram/internal/feed"
	"sociogram/internal/logging"
	"sociogram/internal/seed"
	"sociogram/internal/store"
	"sociogram/internal/types"
	"sociogram/internal/ux"

	"go.uber.org/zap"
)

// App is the composition root: everything a command needs, built once.
type App struct {
	Workspace  string
	ConfigPath string
	Config     *config.Config
	Logger     *logging.Logger
	Backend    store.Backend
	Feed       *feed.Store
	Prefs      *ux.Preferences
	Theme      *ui.ThemeDisplay
	Users      map[string]types.User
}

type appOptions struct {
	Workspace  string
	ConfigPath string
	Verbose    bool
	Console    io.Writer // nil while the TUI owns the terminal
}

// newApp loads config, opens storage and builds both stores. Storage that
// cannot be opened degrades to an in-memory backend.
func newApp(ctx context.Context, opts appOptions) (*App, error) {
	ws, err := resolveWorkspace(opts.Workspace)
	if err != nil {
		return nil, err
	}
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath(ws)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.DebugMode = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	stateDir := config.StateDir(ws)
	logger, err := logging.New(cfg.Logging, stateDir, opts.Console)
	if err != nil {
		return nil, err
	}
	bootLog := logger.Get(logging.CategoryBoot)
	bootLog.Debug("Starting", zap.String("workspace", ws), zap.String("config", path), zap.String("driver", cfg.Storage.Driver))

	backend, err := store.Open(ctx, cfg.Storage, stateDir, logger.Get(logging.CategoryStore))
	if err != nil {
		bootLog.Warn("Storage unavailable, changes will not be saved", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
		backend = store.NewMemoryStore(cfg.Storage.MaxValueBytes)
	}

	posts, users, err := loadSeed(ws, cfg.Feed.SeedPath)
	if err != nil {
		_ = backend.Close()
		_ = logger.Close()
		return nil, err
	}

	userID := cfg.Feed.CurrentUserID
	if userID == "" {
		userID = seed.CurrentUserID
	}

	theme := ui.NewThemeDisplay()
	app := &App{
		Workspace:  ws,
		ConfigPath: path,
		Config:     cfg,
		Logger:     logger,
		Backend:    backend,
		Theme:      theme,
		Users:      users,
		Feed: feed.NewStore(ctx, backend, feed.Config{
			CurrentUserID: userID,
			Seed:          posts,
			IDs:           feed.GeneratorFor(cfg.Feed.CommentIDs),
			Logger:        logger.Get(logging.CategoryFeed),
		}),
		Prefs: ux.NewPreferences(ctx, backend, ux.PreferencesOptions{
			Ambient: ui.PrefersDark,
			Display: theme,
			Logger:  logger.Get(logging.CategoryPrefs),
		}),
	}
	return app, nil
}

func resolveWorkspace(ws string) (string, error) {
	if ws == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return "", fmt.Errorf("invalid workspace %s: %w", ws, err)
	}
	return abs, nil
}

// loadSeed returns the built-in seed, or the dataset at path when set.
func loadSeed(ws, path string) ([]types.Post, map[string]types.User, error) {
	if path == "" {
		return seed.Posts(), seed.Users(), nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(ws, path)
	}
	ds, err := seed.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	users := seed.Users()
	for id, u := range ds.Directory() {
		users[id] = u
	}
	return ds.Posts, users, nil
}

// CurrentUser returns the session user's directory entry.
func (a *App) CurrentUser() types.User {
	id := a.Feed.CurrentUserID()
	if u, ok := a.Users[id]; ok {
		return u
	}
	return types.User{ID: id, Username: id}
}

// Close releases storage and flushes logs.
func (a *App) Close() error {
	err := a.Backend.Close()
	if lerr := a.Logger.Close(); err == nil {
		err = lerr
	}
	return err
}

// openApp builds the App from the global flags.
func openApp(ctx context.Context, console io.Writer) (*App, error) {
	return newApp(ctx, appOptions{
		Workspace:  workspace,
		ConfigPath: configPath,
		Verbose:    verbose,
		Console:    console,
	})
}
