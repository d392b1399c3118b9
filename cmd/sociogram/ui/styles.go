// Package ui provides the interactive terminal feed for sociogram.
// Styling follows the Sociogram palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f9fafb") // gray-50
	LightForeground = lipgloss.Color("#111827") // gray-900
	LightPrimary    = lipgloss.Color("#2563eb") // blue-600
	LightAccent     = lipgloss.Color("#0891b2") // cyan-600
	LightMuted      = lipgloss.Color("#6b7280") // gray-500
	LightBorder     = lipgloss.Color("#e5e7eb") // gray-200
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#111827") // gray-900
	DarkForeground = lipgloss.Color("#f3f4f6") // gray-100
	DarkPrimary    = lipgloss.Color("#60a5fa") // blue-400
	DarkAccent     = lipgloss.Color("#22d3ee") // cyan-400
	DarkMuted      = lipgloss.Color("#9ca3af") // gray-400
	DarkBorder     = lipgloss.Color("#374151") // gray-700
	DarkCard       = lipgloss.Color("#1f2937") // gray-800

	// Semantic Colors (same in both modes)
	Liked   = lipgloss.Color("#ef4444") // red-500
	Warning = lipgloss.Color("#eab308") // yellow-500
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor picks the theme for a dark-mode flag.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// PrefersDark reports the terminal's ambient colour scheme.
// SOCIOGRAM_DARK_MODE=1/0 wins; otherwise COLORFGBG's background index is
// used. Unknown means light.
func PrefersDark() bool {
	if v := os.Getenv("SOCIOGRAM_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			return dark
		}
	}

	// Format is usually "foreground;background" (some terminals add a middle field)
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			// 0-6 and 8 (dark grey) are dark backgrounds
			return (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8
		}
	}

	return false
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Title  lipgloss.Style
	Footer lipgloss.Style

	// Cards
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Author       lipgloss.Style
	Image        lipgloss.Style
	Caption      lipgloss.Style

	// Actions
	LikeIdle lipgloss.Style
	LikeOn   lipgloss.Style
	Count    lipgloss.Style
	Latched  lipgloss.Style

	// Comments
	CommentAuthor lipgloss.Style
	CommentText   lipgloss.Style

	// Text
	Muted lipgloss.Style
	Empty lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		MarginBottom(1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Card:         card,
		SelectedCard: card.BorderForeground(theme.Primary),

		Author: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Image: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true),

		Caption: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		LikeIdle: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		LikeOn: lipgloss.NewStyle().
			Foreground(Liked).
			Bold(true),

		Count: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Latched: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		CommentAuthor: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		CommentText: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Empty: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(2, 0).
			Align(lipgloss.Center),

		Error: lipgloss.NewStyle().
			Foreground(Warning),
	}
}

// ThemeDisplay carries the dark-mode marker for the terminal. It satisfies
// the preference store's Display interface.
type ThemeDisplay struct {
	mu     sync.RWMutex
	styles Styles
}

// NewThemeDisplay starts in the light theme until a preference is applied.
func NewThemeDisplay() *ThemeDisplay {
	return &ThemeDisplay{styles: NewStyles(LightTheme())}
}

// ApplyDarkMode swaps the active styles.
func (d *ThemeDisplay) ApplyDarkMode(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.styles = NewStyles(ThemeFor(enabled))
}

// Styles returns the active styles.
func (d *ThemeDisplay) Styles() Styles {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.styles
}

// IsDark reports whether the dark theme is active.
func (d *ThemeDisplay) IsDark() bool {
	return d.Styles().Theme.IsDark
}
