package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Dismiss    key.Binding
	DismissAll key.Binding
	Suspend    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d", "dismiss front"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("D", "x"),
			key.WithHelp("D/x", "dismiss all"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "suspend/resume"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Suspend, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dismiss, k.DismissAll},
		{k.Suspend},
		{k.Help, k.Quit},
	}
}
