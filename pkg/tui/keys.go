package tui

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Relapse key.Binding
	Refresh key.Binding
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Force   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Relapse: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "relapse")),
		Refresh: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "refresh")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev month")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next month")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("y", "Y")),
		Force:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Relapse, k.Refresh, k.Prev, k.Next, k.Today, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
