package main

import (
	"context"
	"errors"

	"sociogram/cmd/sociogram/ui"
	"sociogram/internal/config"
	"sociogram/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runInteractive opens the feed in the terminal. A config watcher runs
// alongside so logging changes apply without a restart.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	// The TUI owns the terminal, so logs only go to file.
	app, err := openApp(ctx, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Config
	var captions *ui.CaptionRenderer
	if cfg.UI.RenderCaptions {
		captions = ui.NewCaptionRenderer()
	}

	model := ui.NewFeedModel(ctx, app.Feed, app.Prefs, ui.FeedOptions{
		Users:         app.Users,
		Theme:         app.Theme,
		Captions:      captions,
		LatchDuration: cfg.UI.GetLatchDuration(),
		MaxWidth:      cfg.UI.Width,
		Logger:        app.Logger.Get(logging.CategoryUI),
	})

	g, gctx := errgroup.WithContext(ctx)

	watcher := config.NewWatcher(app.ConfigPath, func(c *config.Config) {
		app.Logger.Apply(c.Logging)
	}, app.Logger.Get(logging.CategoryConfig))
	g.Go(func() error {
		if err := watcher.Run(gctx); err != nil {
			app.Logger.Get(logging.CategoryConfig).Warn("Config watcher stopped", zap.Error(err))
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			return nil
		}
		return err
	})

	return g.Wait()
}
