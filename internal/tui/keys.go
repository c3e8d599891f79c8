package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Click   key.Binding
	Move    key.Binding
	Erase   key.Binding
	Place   key.Binding
	Arm     key.Binding
	Palette key.Binding
	Side    key.Binding
	Rotate  key.Binding
	Flip    key.Binding
	Reset   key.Binding
	Clear   key.Binding
	Import  key.Binding
	Scan    key.Binding
	Copy    key.Binding
	URL     key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Click:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "click")),
		Move:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Erase:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "erase")),
		Place:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "place")),
		Arm:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "pnbrqk")),
		Palette: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "piece color")),
		Side:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "side to move")),
		Rotate:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate")),
		Flip:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flip view")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Clear:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear")),
		Import:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import FEN")),
		Scan:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scan")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy FEN")),
		URL:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "analysis url")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Move, k.Erase, k.Place, k.Scan, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Click},
		{k.Move, k.Erase, k.Place, k.Arm, k.Palette},
		{k.Side, k.Rotate, k.Flip, k.Reset, k.Clear},
		{k.Import, k.Scan, k.Copy, k.URL, k.Quit},
	}
}
