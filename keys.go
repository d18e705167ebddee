package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NewNode    key.Binding
	AddSocket  key.Binding
	AddPlug    key.Binding
	Connect    key.Binding
	Move       key.Binding
	Pan        key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Delete     key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Export     key.Binding
	Yank       key.Binding
	NewBuffer  key.Binding
	PrevBuffer key.Binding
	NextBuffer key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k", "K", "shift+up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "J", "shift+down"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h", "H", "shift+left"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l", "L", "shift+right"),
		key.WithHelp("→/l", "right"),
	),
	NewNode: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new node"),
	),
	AddSocket: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "add socket"),
	),
	AddPlug: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "add plug"),
	),
	Connect: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "start/finish connection"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move node"),
	),
	Pan: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "toggle pan"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r", "U"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export png"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank"),
	),
	NewBuffer: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new buffer"),
	),
	PrevBuffer: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "prev buffer"),
	),
	NextBuffer: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "next buffer"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewNode, k.Connect, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Pan, k.ZoomIn, k.ZoomOut},
		{k.NewNode, k.AddSocket, k.AddPlug, k.Connect, k.Move, k.Delete},
		{k.Undo, k.Redo, k.Export, k.Yank},
		{k.NewBuffer, k.PrevBuffer, k.NextBuffer, k.Help, k.Quit},
	}
}

// isFast reports whether a direction key was pressed with shift.
func isFast(k string) bool {
	switch k {
	case "H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}
