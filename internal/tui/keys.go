package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings handled by the root model before the active view
// sees a key.
type KeyMap struct {
	NextView  key.Binding
	PrevView  key.Binding
	Daily     key.Binding
	Questions key.Binding
	Analytics key.Binding
	Reload    key.Binding
	Quit      key.Binding
	Help      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Daily: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "daily"),
		),
		Questions: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "questions"),
		),
		Analytics: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "analytics"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload journal"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}
