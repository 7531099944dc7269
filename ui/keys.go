package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Settings  key.Binding
	Quit      key.Binding
	Save      key.Binding
	Cancel    key.Binding
	NextField key.Binding
}

// Local bindings. These always work, whether or not the global hook could be
// installed.
var keys = keyMap{
	Next:      key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "next item")),
	Prev:      key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "previous item")),
	Settings:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "hot-keys")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	NextField: key.NewBinding(key.WithKeys("tab", "shift+tab", "enter", "up", "down"), key.WithHelp("tab", "switch field")),
}
