package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shown in the help footer.
type keyMap struct {
	Add       key.Binding
	Focus     key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	SelectAll key.Binding
	DeleteAll key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add task"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a", "A"),
			key.WithHelp("ctrl+a/A", "select all"),
		),
		DeleteAll: key.NewBinding(
			key.WithKeys("ctrl+d", "D"),
			key.WithHelp("ctrl+d/D", "delete all"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
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
	return []key.Binding{k.Add, k.Focus, k.Toggle, k.Delete, k.Help, k.ForceQuit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Focus, k.Up, k.Down},
		{k.Toggle, k.Delete, k.SelectAll, k.DeleteAll},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
