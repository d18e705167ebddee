package main

import (
	"errors"
	"fmt"
	"log/slog"

	"nodegraph/internal/geom"
	"nodegraph/internal/scene"
)

func (m *model) createNode() {
	g := m.getGraph()
	if g == nil {
		return
	}
	p := m.cursorScene()
	id, err := g.CreateNode(m.nodeBounds(), scene.WithStyle(m.config.Node))
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := g.SetTitle(id, fmt.Sprintf("Node %d", id)); err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := g.SetNodePosition(id, p); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.recordAction(ActionAddNode, AddNodeData{ID: id})
	m.updateSelection()
	m.successMessage = fmt.Sprintf("Created node %d", id)
}

// nodeBounds leaves sizing to the configured style, falling back to the
// default size for dimensions the style does not set.
func (m *model) nodeBounds() geom.Rect {
	var r geom.Rect
	if m.config.Node.Width == 0 {
		r.W = defaultNodeSize
	}
	if m.config.Node.Height == 0 {
		r.H = defaultNodeSize
	}
	return r
}

// addPort adds the next free "inN" socket or "outN" plug to the
// selected node.
func (m *model) addPort(role scene.Role) {
	g := m.getGraph()
	if g == nil || !m.hasNode {
		m.errorMessage = "No node under cursor"
		return
	}
	prefix, create := "in", g.CreateSocket
	if role == scene.RolePlug {
		prefix, create = "out", g.CreatePlug
	}
	shape := m.config.Port.Shape()
	for i := 1; ; i++ {
		id, err := create(m.selectedNode, fmt.Sprintf("%s%d", prefix, i), shape)
		if errors.Is(err, scene.ErrDuplicatePortName) {
			continue
		}
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		m.recordAction(ActionAddPort, AddPortData{ID: id})
		m.successMessage = fmt.Sprintf("Added %s %s%d", role, prefix, i)
		return
	}
}

// connect starts a connection on the port under the cursor, or finishes
// the pending one there. Either end may be picked first.
func (m *model) connect() {
	g := m.getGraph()
	if g == nil {
		return
	}
	g.Refresh()
	target, ok := g.PortAt(m.cursorScene())
	if !ok {
		m.errorMessage = "No port under cursor"
		return
	}
	if m.mode != ModeConnect {
		m.connectionFrom = target
		m.mode = ModeConnect
		return
	}

	from, err := g.Port(m.connectionFrom)
	if err != nil {
		m.cancelConnect()
		m.errorMessage = err.Error()
		return
	}
	socket, plug := m.connectionFrom, target
	if from.Role == scene.RolePlug {
		socket, plug = target, m.connectionFrom
	}
	id, err := g.Connect(socket, plug)
	m.cancelConnect()
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.recordAction(ActionAddConnection, AddConnectionData{ID: id})
	m.successMessage = fmt.Sprintf("Connected %s to %s", endName(g, plug), endName(g, socket))
}

func (m *model) cancelConnect() {
	m.connectionFrom = scene.NoPort
	m.mode = ModeNormal
}

func (m *model) startMove() {
	g := m.getGraph()
	if g == nil || !m.hasNode {
		m.errorMessage = "No node under cursor"
		return
	}
	nv, err := g.Node(m.selectedNode)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if !nv.Editable {
		m.errorMessage = fmt.Sprintf("Node %d is not editable", nv.ID)
		return
	}
	if err := g.Raise(nv.ID); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.moveNode = nv.ID
	m.moveOrigin = nv.Pos
	m.mode = ModeMove
}

func (m *model) finishMove() {
	m.mode = ModeNormal
	g := m.getGraph()
	nv, err := g.Node(m.moveNode)
	if err != nil {
		return
	}
	if !nv.Pos.Eq(m.moveOrigin) {
		m.recordAction(ActionMoveNode, MoveNodeData{ID: nv.ID, From: m.moveOrigin, To: nv.Pos})
	}
	m.updateSelection()
}

func (m *model) cancelMove() {
	m.mode = ModeNormal
	if g := m.getGraph(); g != nil {
		if err := g.SetNodePosition(m.moveNode, m.moveOrigin); err != nil {
			m.errorMessage = err.Error()
			m.logger.Warn("move cancel failed", slog.Int("node", int(m.moveNode)), slog.String("error", err.Error()))
		}
	}
	m.updateSelection()
}

// requestDelete asks for confirmation when configured to, otherwise
// deletes right away.
func (m *model) requestDelete() {
	switch {
	case m.selectedPort != scene.NoPort:
		m.confirmAction = ConfirmDeletePort
	case m.hasNode:
		m.confirmAction = ConfirmDeleteNode
	case m.hasConn:
		m.confirmAction = ConfirmDeleteConnection
	default:
		m.errorMessage = "Nothing to delete under cursor"
		return
	}
	if m.config.Editor.Confirmations {
		m.mode = ModeConfirm
		return
	}
	m.deleteSelection()
}

func (m *model) deleteSelection() {
	g := m.getGraph()
	if g == nil {
		return
	}
	var err error
	switch m.confirmAction {
	case ConfirmDeletePort:
		var rec scene.RemovedPort
		if rec, err = g.RemovePort(m.selectedPort); err == nil {
			m.recordAction(ActionRemovePort, RemovePortData{ID: rec.ID(), Removed: rec})
		}
	case ConfirmDeleteNode:
		var rec scene.RemovedNode
		if rec, err = g.RemoveNode(m.selectedNode); err == nil {
			m.recordAction(ActionRemoveNode, RemoveNodeData{ID: rec.ID(), Removed: rec})
		}
	case ConfirmDeleteConnection:
		var rec scene.RemovedConnection
		if rec, err = g.RemoveConnection(m.selectedConn); err == nil {
			m.recordAction(ActionRemoveConnection, RemoveConnectionData{ID: rec.ID(), Removed: rec})
		}
	}
	if err != nil {
		m.errorMessage = err.Error()
	}
	m.updateSelection()
}
