package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// Screens reuse letters for different actions; each screen only checks its own bindings.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	menu      key.Binding
	left      key.Binding
	right     key.Binding
	field     key.Binding
	nextCard  key.Binding
	prevCard  key.Binding
	swipeL    key.Binding
	swipeR    key.Binding
	like      key.Binding
	comments  key.Binding
	play      key.Binding
	refresh   key.Binding
	dismiss   key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		menu:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "menu")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		field:     key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "next field")),
		nextCard:  key.NewBinding(key.WithKeys("right", "l", "]"), key.WithHelp("→/l/]", "next")),
		prevCard:  key.NewBinding(key.WithKeys("left", "h", "["), key.WithHelp("←/h/[", "previous")),
		swipeL:    key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "swipe left")),
		swipeR:    key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "swipe right")),
		like:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		comments:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comments")),
		play:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		dismiss:   key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.menu, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.prevCard, k.nextCard, k.swipeL, k.swipeR},
		{k.like, k.comments, k.play, k.refresh},
		{k.menu, k.quit},
	}
}
