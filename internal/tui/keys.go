package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Search  key.Binding
	Filter  key.Binding
	NextPg  key.Binding
	PrevPg  key.Binding
	Info    key.Binding
	Quiz    key.Binding
	Builder key.Binding
	Theme   key.Binding
	Sound   key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev slide")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next slide")),
		Enter:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "type filter")),
		NextPg:  key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next page")),
		PrevPg:  key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev page")),
		Info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Quiz:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "daily quiz")),
		Builder: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "builder")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Sound:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sound")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Enter, k.Quiz, k.Theme, k.Sound, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down, k.Enter},
		{k.Search, k.Filter, k.NextPg, k.PrevPg, k.Info},
		{k.Left, k.Right, k.Quiz, k.Builder},
		{k.Theme, k.Sound, k.Back, k.Help, k.Quit},
	}
}
