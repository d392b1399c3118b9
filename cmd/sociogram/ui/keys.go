package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the feed's key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Like     key.Binding
	Comment  key.Binding
	Expand   key.Binding
	DarkMode key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Active while composing a comment
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Like: key.NewBinding(
			key.WithKeys("l", " "),
			key.WithHelp("l", "like"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("v", "comments"),
		),
		DarkMode: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "post"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Like, k.Comment, k.Expand, k.DarkMode, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Like, k.Comment, k.Expand},
		{k.DarkMode, k.Help, k.Quit},
	}
}
