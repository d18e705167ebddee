package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"

	"nodegraph/internal/geom"
	"nodegraph/internal/render"
	"nodegraph/internal/scene"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getGraph() *scene.Graph {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.graph
	}
	return nil
}

func (m *model) newGraph() *scene.Graph {
	logger := m.logger
	return scene.New(
		scene.WithLogger(logger),
		scene.WithNodeStyle(m.config.Node),
		scene.WithHost(scene.HostFunc(func(id scene.ConnID) {
			logger.Debug("connection geometry changed", slog.Int("connection", int(id)))
		})),
	)
}

func (m *model) addNewBuffer(g *scene.Graph) {
	m.bufferSeq++
	m.buffers = append(m.buffers, Buffer{
		graph:     g,
		undoStack: []Action{},
		redoStack: []Action{},
		name:      fmt.Sprintf("graph-%d", m.bufferSeq),
		view:      render.NewViewport(),
	})
	m.currentBufferIndex = len(m.buffers) - 1
	m.clearSelection()
}

func (m *model) recordAction(actionType ActionType, data any) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	buf.undoStack = append(buf.undoStack, Action{Type: actionType, Data: data})
	buf.redoStack = buf.redoStack[:0]
}

// canvasSize returns the grid the canvas is drawn into, leaving room for
// the status line and, with several buffers, the buffer bar.
func (m *model) canvasSize() (cols, rows int) {
	cols = max(m.width, 1)
	rows = m.height - 1
	if m.showBufferBar() {
		rows--
	}
	return cols, max(rows, 1)
}

func (m *model) showBufferBar() bool {
	return len(m.buffers) > 1
}

func (m *model) canvasTop() int {
	if m.showBufferBar() {
		return 1
	}
	return 0
}

// cursorScene returns the scene point under the cursor cell.
func (m *model) cursorScene() geom.Point {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return geom.Point{}
	}
	return m.term.ScenePoint(buf.view, m.cursorX, m.cursorY)
}

// cellStep is the scene distance covered by one cell at the current zoom.
func (m *model) cellStep() geom.Point {
	buf := m.getCurrentBuffer()
	a := m.term.ScenePoint(buf.view, 0, 0)
	b := m.term.ScenePoint(buf.view, 1, 1)
	return b.Sub(a)
}

func (m *model) ensureCursorInBounds() {
	cols, rows := m.canvasSize()
	m.cursorX = max(0, min(m.cursorX, cols-1))
	m.cursorY = max(0, min(m.cursorY, rows-1))
}

func (m *model) clearSelection() {
	m.hasNode = false
	m.hasConn = false
	m.selectedPort = scene.NoPort
}

// updateSelection selects whatever sits under the cursor: a port and its
// node, a node, or a connection. Locked nodes and their ports are never
// selected.
func (m *model) updateSelection() {
	m.clearSelection()
	g := m.getGraph()
	if g == nil {
		return
	}
	g.Refresh()
	p := m.cursorScene()
	if id, ok := g.PortAt(p); ok {
		if pv, err := g.Port(id); err == nil && m.editable(pv.Node) {
			m.selectedPort = id
			m.selectedNode, m.hasNode = pv.Node, true
			return
		}
	}
	if id, ok := g.NodeAt(p); ok {
		if m.editable(id) {
			m.selectedNode, m.hasNode = id, true
		}
		return
	}
	if id, ok := g.ConnectionAt(p); ok {
		m.selectedConn, m.hasConn = id, true
	}
}

// editable reports whether the node may be selected.
func (m *model) editable(id scene.NodeID) bool {
	nv, err := m.getGraph().Node(id)
	return err == nil && nv.Editable
}

func (m *model) marks() render.Marks {
	mk := render.NoMarks()
	mk.Node, mk.HasNode = m.selectedNode, m.hasNode
	mk.Port = m.selectedPort
	mk.Connection, mk.HasConn = m.selectedConn, m.hasConn
	if m.mode == ModeConnect {
		if preview, ok := m.connectionPreview(); ok {
			mk.Preview = &preview
		}
	}
	mk.Cursor = m.cursorScene()
	mk.ShowCursor = m.mode != ModeConfirm
	return mk
}

// connectionPreview runs from the pending port to the cursor.
func (m *model) connectionPreview() (geom.Cubic, bool) {
	g := m.getGraph()
	if g == nil || m.connectionFrom == scene.NoPort {
		return geom.Cubic{}, false
	}
	pv, err := g.Port(m.connectionFrom)
	if err != nil {
		return geom.Cubic{}, false
	}
	if pv.Role == scene.RoleSocket {
		return geom.ConnectorCurve(pv.Center, m.cursorScene()), true
	}
	return geom.ConnectorCurve(m.cursorScene(), pv.Center), true
}

// describeSelection renders the current selection as one line of text.
func (m *model) describeSelection() (string, bool) {
	g := m.getGraph()
	if g == nil {
		return "", false
	}
	switch {
	case m.selectedPort != scene.NoPort:
		pv, err := g.Port(m.selectedPort)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("%s %q on node %d at (%g, %g), %d connection(s)",
			pv.Role, pv.Name, pv.Node, pv.Center.X, pv.Center.Y, len(pv.Connections)), true
	case m.hasNode:
		nv, err := g.Node(m.selectedNode)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("node %d %q at (%g, %g) %gx%g sockets[%s] plugs[%s]",
			nv.ID, nv.Title, nv.Pos.X, nv.Pos.Y, nv.Rect.W, nv.Rect.H,
			portNames(g, nv.Sockets), portNames(g, nv.Plugs)), true
	case m.hasConn:
		cv, err := g.Connection(m.selectedConn)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("connection %d: %s -> %s",
			cv.ID, endName(g, cv.Source), endName(g, cv.Destination)), true
	}
	return "", false
}

func portNames(g *scene.Graph, ids []scene.PortID) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if pv, err := g.Port(id); err == nil {
			names = append(names, pv.Name)
		}
	}
	return strings.Join(names, " ")
}

func endName(g *scene.Graph, id scene.PortID) string {
	pv, err := g.Port(id)
	if err != nil {
		return "(none)"
	}
	return fmt.Sprintf("node %d.%s", pv.Node, pv.Name)
}

// yank copies the selection description to the system clipboard.
func (m *model) yank() {
	text, ok := m.describeSelection()
	if !ok {
		m.errorMessage = "Nothing selected to yank"
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard unavailable: %v", err)
		return
	}
	m.successMessage = "Yanked: " + text
}
