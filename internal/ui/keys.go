package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the TUI key bindings. Which bindings are live depends on
// the focused pane.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Focus      key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Save       key.Binding
	Delete     key.Binding
	Close      key.Binding
	Move       key.Binding
	ClearAll   key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	focus      focus
	dragActive bool
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "done"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "grab/drop"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear all"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	switch k.focus {
	case focusInput:
		return []key.Binding{k.Add, k.Focus, k.ForceQuit}
	case focusEdit:
		return []key.Binding{k.Save, k.Delete, k.Close, k.Focus}
	}
	if k.dragActive {
		return []key.Binding{k.Up, k.Down, k.Move, k.Close}
	}
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Edit, k.Move, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus},
		{k.Add, k.Toggle, k.Edit, k.Move},
		{k.Save, k.Delete, k.Close},
		{k.ClearAll, k.Theme, k.Help, k.Quit},
	}
}
