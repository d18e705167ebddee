package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")).
			Background(lipgloss.Color("#3C3C3C"))

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FFF87")).
			Bold(true)

	activeBufferStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#5A56E0")).
				Padding(0, 1)

	inactiveBufferStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 1)

	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)
)

// View refreshes connection geometry, grows the scene rect to the visible
// area and then draws the canvas and status line.
func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	buf := m.getCurrentBuffer()
	if buf == nil {
		return ""
	}

	cols, rows := m.canvasSize()
	buf.graph.Refresh()
	w, h := m.term.ScreenSize(cols, rows)
	buf.graph.ExpandSceneRect(buf.view.Visible(w, h))
	canvas := m.term.Render(buf.graph.Snapshot(), buf.view, cols, rows, m.marks())

	var result strings.Builder
	if m.showBufferBar() {
		result.WriteString(m.renderBufferBar())
		result.WriteString("\n")
	}
	result.WriteString(strings.Join(canvas, "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) renderBufferBar() string {
	tabs := make([]string, 0, len(m.buffers))
	for i, b := range m.buffers {
		label := fmt.Sprintf("%d:%s", i+1, b.name)
		if i == m.currentBufferIndex {
			tabs = append(tabs, activeBufferStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveBufferStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) statusLine() string {
	modeStr := m.modeString()
	if m.zPanMode && m.mode == ModeNormal {
		modeStr = "PAN"
	}

	var status string
	switch m.mode {
	case ModeConfirm:
		status = m.confirmMessage()
	case ModeMove:
		status = fmt.Sprintf("Node %d | hjkl/arrows=move, Enter=finish, Esc=cancel", m.moveNode)
	case ModeConnect:
		status = fmt.Sprintf("From port %d | move to a port and press c, Esc=cancel", m.connectionFrom)
	default:
		status = fmt.Sprintf("Cursor: (%d,%d)", m.cursorX, m.cursorY)
		if buf := m.getCurrentBuffer(); buf != nil {
			status += fmt.Sprintf(" | Zoom: %.2f", buf.view.Zoom)
		}
		if desc, ok := m.describeSelection(); ok {
			status += " | " + desc
		}
	}

	line := modeStyle.Render(modeStr) + statusStyle.Render(" "+status+" ")
	switch {
	case m.errorMessage != "":
		line += " " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		line += " " + successStyle.Render(m.successMessage)
	default:
		line += " " + m.helpModel.ShortHelpView(m.keys.ShortHelp())
	}
	return line
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteNode:
		return fmt.Sprintf("Delete node %d and its connections? (y/n)", m.selectedNode)
	case ConfirmDeletePort:
		return fmt.Sprintf("Delete port %d and its connections? (y/n)", m.selectedPort)
	case ConfirmDeleteConnection:
		return fmt.Sprintf("Delete connection %d? (y/n)", m.selectedConn)
	case ConfirmQuit:
		return "Quit nodegraph? (y/n)"
	}
	return ""
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeConnect:
		return "CONNECT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	h := m.helpModel
	h.ShowAll = true
	return helpTitleStyle.Render("nodegraph help") + "\n" + h.View(m.keys) + "\n\nany key to close"
}
