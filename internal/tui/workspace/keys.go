package workspace

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	toggleFocus      key.Binding
	toggleRightSplit key.Binding
	quit             key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		toggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		toggleRightSplit: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle right split"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
