package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard key bindings.
type KeyMap struct {
	Submit key.Binding
	Pause  key.Binding
	Reset  key.Binding
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "submit")),
		Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "clear")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Pause, k.Reset, k.Up, k.Quit}
}
