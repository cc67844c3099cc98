package cli

import (
	"github.com/charmbracelet/bubbles/key"
)

// demoKeys are the demo's key bindings.
type demoKeys struct {
	Cancel   key.Binding
	Close    key.Binding
	Pin      key.Binding
	Maximize key.Binding
	Save     key.Binding
	Load     key.Binding
	Reset    key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newDemoKeys() demoKeys {
	return demoKeys{
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Close:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close panel")),
		Pin:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "unpin/pin")),
		Maximize: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maximize")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save layout")),
		Load:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load layout")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k demoKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Pin, k.Maximize, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k demoKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Close, k.Pin, k.Maximize, k.Cancel},
		{k.Save, k.Load, k.Reset, k.Theme},
		{k.Help, k.Quit},
	}
}
