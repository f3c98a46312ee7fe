package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the application reacts to. The story list and
// the discussion view each use their subset; Help and Quit are global.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	NextPage key.Binding
	PrevPage key.Binding

	Top  key.Binding
	New  key.Binding
	Best key.Binding

	Comments key.Binding
	Open     key.Binding
	Refresh  key.Binding

	Expand         key.Binding
	CollapseThread key.Binding
	First          key.Binding
	Last           key.Binding

	Back key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "previous page"),
		),
		Top: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "top stories"),
		),
		New: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "new stories"),
		),
		Best: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "best stories"),
		),
		Comments: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c/enter", "comments"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open link"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter/l", "expand/collapse"),
		),
		CollapseThread: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse thread"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h"),
			key.WithHelp("esc/h", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
