package gallery

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	left  key.Binding
	right key.Binding
	up    key.Binding
	down  key.Binding
	copy  key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "row up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "row down"),
		),
		copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy uri"),
		),
	}
}

func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.left, k.right, k.up, k.down, k.copy}
}
