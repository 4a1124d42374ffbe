package editor

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the editor.
type KeyMap struct {
	Complete         key.Binding
	CompleteBackward key.Binding
	Up               key.Binding
	Down             key.Binding
	PageUp           key.Binding
	PageDown         key.Binding
	Accept           key.Binding
	Cancel           key.Binding
	Interrupt        key.Binding
	Backspace        key.Binding
	Left             key.Binding
	Right            key.Binding
	LineStart        key.Binding
	LineEnd          key.Binding
	Paste            key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete / next")),
		CompleteBackward: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Up:               key.NewBinding(key.WithKeys("up", "ctrl+p")),
		Down:             key.NewBinding(key.WithKeys("down", "ctrl+n")),
		PageUp:           key.NewBinding(key.WithKeys("pgup")),
		PageDown:         key.NewBinding(key.WithKeys("pgdown")),
		Accept:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept / submit")),
		Cancel:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Interrupt:        key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
		Backspace:        key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Left:             key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:            key.NewBinding(key.WithKeys("right", "ctrl+f")),
		LineStart:        key.NewBinding(key.WithKeys("home", "ctrl+a")),
		LineEnd:          key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Paste:            key.NewBinding(key.WithKeys("ctrl+v")),
	}
}
