package ux

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"sociogram/internal/store"

	"go.uber.org/zap"
)

// DarkModeKey is the storage key holding the dark-mode flag.
const DarkModeKey = "ugc_feed_dark_mode"

// Display receives the dark-mode marker. ApplyDarkMode runs with the
// preference lock held and must not call back into Preferences.
type Display interface {
	ApplyDarkMode(enabled bool)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(enabled bool)

// ApplyDarkMode implements Display.
func (f DisplayFunc) ApplyDarkMode(enabled bool) { f(enabled) }

// PreferencesOptions configures a Preferences store.
type PreferencesOptions struct {
	// Ambient reports the environment's colour scheme; used when nothing is
	// stored. Nil means light.
	Ambient func() bool

	// Display is updated on init and on every change. Nil is allowed.
	Display Display

	Logger *zap.Logger
}

// Preferences owns the dark-mode flag.
type Preferences struct {
	mu      sync.Mutex
	backend store.Backend
	display Display
	logger  *zap.Logger
	dark    bool
}

// NewPreferences reads the stored flag, falling back to the ambient scheme,
// and applies it to the display. Nothing is written here.
func NewPreferences(ctx context.Context, backend store.Backend, opts PreferencesOptions) *Preferences {
	p := &Preferences{
		backend: backend,
		display: opts.Display,
		logger:  opts.Logger,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	dark, err := p.loadStored(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Debug("No stored dark-mode preference, using ambient")
		} else {
			p.logger.Warn("Failed to load dark-mode preference, using ambient", zap.Error(err))
		}
		dark = opts.Ambient != nil && opts.Ambient()
	}
	p.dark = dark
	p.apply()
	return p
}

func (p *Preferences) loadStored(ctx context.Context) (bool, error) {
	if p.backend == nil {
		return false, store.ErrNotFound
	}
	raw, err := p.backend.Get(ctx, DarkModeKey)
	if err != nil {
		return false, err
	}
	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		return false, fmt.Errorf("failed to parse dark-mode preference: %w", err)
	}
	return dark, nil
}

// Enabled reports whether dark mode is on.
func (p *Preferences) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// Toggle flips the flag, persists it and updates the display. It returns the
// new value.
func (p *Preferences) Toggle(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setLocked(ctx, !p.dark)
	return p.dark
}

// Set turns dark mode on or off. Setting the current value is a no-op.
func (p *Preferences) Set(ctx context.Context, enabled bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if enabled != p.dark {
		p.setLocked(ctx, enabled)
	}
	return p.dark
}

func (p *Preferences) setLocked(ctx context.Context, enabled bool) {
	p.dark = enabled
	p.save(ctx)
	p.apply()
}

// save writes the flag as a JSON boolean. Failures are logged only.
func (p *Preferences) save(ctx context.Context) {
	if p.backend == nil {
		return
	}
	data, _ := json.Marshal(p.dark)
	if err := p.backend.Set(ctx, DarkModeKey, string(data)); err != nil {
		p.logger.Error("Failed to save dark-mode preference", zap.Bool("dark", p.dark), zap.Error(err))
		return
	}
	p.logger.Debug("Saved dark-mode preference", zap.Bool("dark", p.dark))
}

func (p *Preferences) apply() {
	if p.display != nil {
		p.display.ApplyDarkMode(p.dark)
	}
}
