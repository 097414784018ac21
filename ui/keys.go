package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Speak     key.Binding
	Refresh   key.Binding
	Up        key.Binding
	Down      key.Binding
	Focus     key.Binding
	Clipboard key.Binding
	Dismiss   key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Speak: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "speak"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "refresh devices"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "prev device"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next device"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Clipboard: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "paste clipboard"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "enter", " "),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Speak, k.Up, k.Down, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Speak, k.Clipboard, k.Focus},
		{k.Up, k.Down, k.Refresh},
		{k.Quit},
	}
}
