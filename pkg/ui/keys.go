package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Launch key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k", "ctrl+p"),
		key.WithHelp("↑/ctrl+k", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j", "ctrl+n"),
		key.WithHelp("↓/ctrl+j", "next"),
	),
	Launch: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "launch"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "close"),
	),
}
