package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nodegraph/internal/config"
	"nodegraph/internal/render"
	"nodegraph/internal/scene"
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpModel.Width = msg.Width
		m.ensureCursorInBounds()
		return m, nil

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		m.successMessage = "Config reloaded"
		return m, nil

	case configErrorMsg:
		m.errorMessage = fmt.Sprintf("Config: %v", msg.err)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func newTerminal(cfg *config.Config) render.Terminal {
	t := render.NewTerminal(cfg.View.CellWidth, cfg.View.CellHeight)
	t.Grid = cfg.View.Grid
	return t
}

func (m *model) applyConfig(cfg *config.Config) {
	m.config = cfg
	m.term = newTerminal(cfg)
	m.ensureCursorInBounds()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help {
		m.help = false
		return m, nil
	}
	m.errorMessage = ""
	m.successMessage = ""

	switch m.mode {
	case ModeConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			m.mode = ModeNormal
			if m.confirmAction == ConfirmQuit {
				return m, tea.Quit
			}
			m.deleteSelection()
		default:
			m.mode = ModeNormal
		}
		return m, nil

	case ModeMove:
		switch {
		case key.Matches(msg, m.keys.Confirm, m.keys.Move):
			m.finishMove()
		case key.Matches(msg, m.keys.Cancel):
			m.cancelMove()
		case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right):
			m.handleNavigation(msg.String())
		}
		return m, nil

	case ModeConnect:
		switch {
		case key.Matches(msg, m.keys.Connect):
			m.connect()
		case key.Matches(msg, m.keys.Cancel):
			m.cancelConnect()
		case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right):
			m.handleNavigation(msg.String())
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if !m.config.Editor.Confirmations {
			return m, tea.Quit
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case key.Matches(msg, m.keys.Cancel):
		m.zPanMode = false
		m.clearSelection()
	case key.Matches(msg, m.keys.Help):
		m.help = true
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right):
		m.handleNavigation(msg.String())
	case key.Matches(msg, m.keys.Pan):
		m.zPanMode = !m.zPanMode
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(m.config.View.ZoomIn)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(m.config.View.ZoomOut)
	case key.Matches(msg, m.keys.NewNode):
		m.createNode()
	case key.Matches(msg, m.keys.AddSocket):
		m.addPort(scene.RoleSocket)
	case key.Matches(msg, m.keys.AddPlug):
		m.addPort(scene.RolePlug)
	case key.Matches(msg, m.keys.Connect):
		m.connect()
	case key.Matches(msg, m.keys.Move):
		m.startMove()
	case key.Matches(msg, m.keys.Delete):
		m.requestDelete()
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.Redo):
		m.redo()
	case key.Matches(msg, m.keys.Export):
		m.exportCurrent()
	case key.Matches(msg, m.keys.Yank):
		m.yank()
	case key.Matches(msg, m.keys.NewBuffer):
		m.addNewBuffer(m.newGraph())
		m.cursorX, m.cursorY = 0, 0
	case key.Matches(msg, m.keys.PrevBuffer):
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex - 1 + len(m.buffers)) % len(m.buffers)
			m.updateSelection()
		}
	case key.Matches(msg, m.keys.NextBuffer):
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
			m.updateSelection()
		}
	}
	return m, nil
}
