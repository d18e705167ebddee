package main

import "nodegraph/internal/geom"

// direction maps a navigation key to a unit step in cells.
func direction(k string) (dx, dy int) {
	switch k {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func getMoveSpeed(k string) int {
	if isFast(k) {
		return fastMoveSpeed
	}
	return 1
}

func (m *model) handleNavigation(k string) {
	dx, dy := direction(k)
	speed := getMoveSpeed(k)
	switch {
	case m.mode == ModeMove:
		m.handleNodeMove(dx*speed, dy*speed)
	case m.zPanMode:
		m.handlePan(dx*speed, dy*speed)
	default:
		m.handleCursorMove(dx*speed, dy*speed)
	}
}

// handlePan scrolls the view by pan_step cells per step.
func (m *model) handlePan(dx, dy int) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	step := m.config.View.PanStep
	buf.view.PanBy(geom.Pt(-float64(dx)*step*m.term.CellW, -float64(dy)*step*m.term.CellH))
	m.updateSelection()
}

func (m *model) handleCursorMove(dx, dy int) {
	m.cursorX += dx
	m.cursorY += dy
	m.ensureCursorInBounds()
	m.updateSelection()
}

// handleNodeMove drags the node being moved along with the cursor.
func (m *model) handleNodeMove(dx, dy int) {
	g := m.getGraph()
	if g == nil {
		return
	}
	step := m.cellStep()
	if err := g.MoveNode(m.moveNode, geom.Pt(float64(dx)*step.X, float64(dy)*step.Y)); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.cursorX += dx
	m.cursorY += dy
	m.ensureCursorInBounds()
}

func (m *model) zoom(f float64) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	anchor := geom.Pt((float64(m.cursorX)+0.5)*m.term.CellW, (float64(m.cursorY)+0.5)*m.term.CellH)
	buf.view.ZoomBy(f, anchor)
	m.updateSelection()
}
