package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskpad/internal/config"
)

type KeyMap struct {
	Quit     key.Binding
	Add      key.Binding
	Edit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Details  key.Binding
	Delete   key.Binding
	Clear    key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Search   key.Binding
	Theme    key.Binding
	Chart    key.Binding
	Palette  key.Binding
	Help     key.Binding
}

// Chart-mode bindings are fixed; only the list keys come from config.
var (
	chartLeft      = key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "previous day"))
	chartRight     = key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next day"))
	chartMoveLeft  = key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move day left"))
	chartMoveRight = key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move day right"))
	chartExit      = key.NewBinding(key.WithKeys("tab", "esc"), key.WithHelp("tab/esc", "back to list"))
)

func NewKeyMap(km config.Keymap) KeyMap {
	bind := func(k, desc string, extra ...string) key.Binding {
		label := k
		if k == " " {
			label = "space"
		}
		return key.NewBinding(key.WithKeys(append([]string{k}, extra...)...), key.WithHelp(label, desc))
	}
	return KeyMap{
		Quit:     bind(km.Quit, "quit", "ctrl+c"),
		Add:      bind(km.Add, "add task"),
		Edit:     bind(km.Edit, "edit task"),
		Up:       bind(km.Up, "up", "up"),
		Down:     bind(km.Down, "down", "down"),
		Toggle:   bind(km.Toggle, "toggle done"),
		Details:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Delete:   bind(km.Delete, "delete"),
		Clear:    bind(km.Clear, "clear all"),
		MoveUp:   bind(km.MoveUp, "move up"),
		MoveDown: bind(km.MoveDown, "move down"),
		Filter:   bind(km.Filter, "cycle filter"),
		Sort:     bind(km.Sort, "cycle sort"),
		Search:   bind(km.Search, "search"),
		Theme:    bind(km.Theme, "toggle theme"),
		Chart:    bind(km.Chart, "focus chart"),
		Palette:  bind(km.Palette, "command palette"),
		Help:     bind(km.Help, "help"),
	}
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (k KeyMap) help() helpKeyMap {
	return helpKeyMap{
		short: []key.Binding{k.Add, k.Toggle, k.Delete, k.Filter, k.Sort, k.Search, k.Palette, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Details, k.Toggle, k.Add, k.Edit},
			{k.Delete, k.Clear, k.MoveUp, k.MoveDown},
			{k.Filter, k.Sort, k.Search, k.Theme},
			{k.Chart, chartLeft, chartRight, chartMoveLeft, chartMoveRight, chartExit},
			{k.Palette, k.Help, k.Quit},
		},
	}
}
