package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Switch   key.Binding
	Menu     key.Binding
	Use      key.Binding
	Drop     key.Binding
	Give     key.Binding
	Close    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Open     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "grid/quick")),
		Menu:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "actions")),
		Use:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "use")),
		Drop:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop")),
		Give:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "give")),
		Close:    key.NewBinding(key.WithKeys("esc", "m"), key.WithHelp("esc/m", "close")),
		PrevPage: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next page")),
		Open:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "open")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Use, k.Drop, k.Give, k.PrevPage, k.NextPage, k.Close, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Switch},
		{k.Menu, k.Use, k.Drop, k.Give},
		{k.PrevPage, k.NextPage, k.Close, k.Open, k.Quit},
	}
}
