package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"nodegraph/internal/geom"
)

// handleMouse drags editable nodes, pans when dragging empty canvas and
// zooms on the wheel around the pointer.
func (m *model) handleMouse(msg tea.MouseMsg) {
	buf := m.getCurrentBuffer()
	if buf == nil || m.mode == ModeConfirm {
		return
	}
	col, row := msg.X, msg.Y-m.canvasTop()
	screen := geom.Pt((float64(col)+0.5)*m.term.CellW, (float64(row)+0.5)*m.term.CellH)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		buf.view.ZoomBy(m.config.View.ZoomIn, screen)
		m.updateSelection()
		return
	case tea.MouseButtonWheelDown:
		buf.view.ZoomBy(m.config.View.ZoomOut, screen)
		m.updateSelection()
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.cursorX, m.cursorY = col, row
		m.ensureCursorInBounds()
		p := buf.view.ToScene(screen)
		buf.graph.Refresh()
		if id, ok := buf.graph.NodeAt(p); ok {
			if nv, err := buf.graph.Node(id); err == nil && nv.Editable && m.mode == ModeNormal {
				if err := buf.graph.Raise(id); err != nil {
					m.errorMessage = err.Error()
					return
				}
				m.drag = &dragState{node: id, onNode: true, origin: nv.Pos, last: p}
				m.updateSelection()
				return
			}
		}
		m.drag = &dragState{last: screen}
		m.updateSelection()

	case tea.MouseActionMotion:
		d := m.drag
		if d == nil {
			return
		}
		if d.onNode {
			p := buf.view.ToScene(screen)
			if err := buf.graph.MoveNode(d.node, p.Sub(d.last)); err != nil {
				m.errorMessage = err.Error()
				m.drag = nil
				return
			}
			d.last = p
		} else {
			buf.view.PanBy(screen.Sub(d.last))
			d.last = screen
		}
		d.moved = true

	case tea.MouseActionRelease:
		d := m.drag
		m.drag = nil
		if d == nil || !d.onNode || !d.moved {
			return
		}
		if nv, err := buf.graph.Node(d.node); err == nil && !nv.Pos.Eq(d.origin) {
			m.recordAction(ActionMoveNode, MoveNodeData{ID: d.node, From: d.origin, To: nv.Pos})
		}
		m.cursorX, m.cursorY = col, row
		m.ensureCursorInBounds()
		m.updateSelection()
	}
}
