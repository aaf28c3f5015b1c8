package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	play      key.Binding
	toggle    key.Binding
	rewind    key.Binding
	forward   key.Binding
	louder    key.Binding
	quieter   key.Binding
	search    key.Binding
	back      key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		play:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		rewind:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-5%")),
		forward:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+5%")),
		louder:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		quieter:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.toggle, k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play},
		{k.toggle, k.rewind, k.forward},
		{k.louder, k.quieter},
		{k.search, k.back, k.quit},
	}
}

// searchHelp lists the bindings that stay active while the search box has focus.
func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		k.play, k.search, k.back, k.forceQuit,
	}
}
