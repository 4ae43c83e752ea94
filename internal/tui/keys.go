package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Toggle  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Undo    key.Binding
	Clear   key.Binding
	MoveUp  key.Binding
	MoveDn  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next scope")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle done")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Clear:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear scope")),
	MoveUp:  key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDn:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
