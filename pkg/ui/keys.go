package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right                     key.Binding
	FlingUp, FlingDown, FlingLeft, FlingRight key.Binding
	Activate                                  key.Binding
	Toggle                                    key.Binding
	Collapse                                  key.Binding
	Jump                                      key.Binding
	Copy                                      key.Binding
	Help                                      key.Binding
	Quit                                      key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "drag up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "drag down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "drag left")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "drag right")),
	FlingUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "fling up")),
	FlingDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "fling down")),
	FlingLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "fling left")),
	FlingRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "fling right")),
	Activate:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "center focused")),
	Toggle:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/collapse")),
	Collapse:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "collapse")),
	Jump:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to panel")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy document")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
