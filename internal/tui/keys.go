package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Enter         key.Binding
	Back          key.Binding
	Toggle        key.Binding
	Edit          key.Binding
	Refresh       key.Binding
	Tab           key.Binding
	SwitchAccount key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Toggle:        key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "show/hide")),
	Edit:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit lanes")),
	Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh lists")),
	Tab:           key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next lane")),
	SwitchAccount: key.NewBinding(key.WithKeys("@"), key.WithHelp("@", "account")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
