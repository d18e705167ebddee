package main

import (
	"fmt"
	"log/slog"
)

func (m *model) undo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.undoStack) == 0 {
		return
	}

	lastIndex := len(buf.undoStack) - 1
	action := buf.undoStack[lastIndex]
	buf.undoStack = buf.undoStack[:lastIndex]

	g := buf.graph
	var err error
	switch action.Type {
	case ActionAddNode:
		data := action.Data.(AddNodeData)
		data.Removed, err = g.RemoveNode(data.ID)
		action.Data = data
	case ActionRemoveNode:
		data := action.Data.(RemoveNodeData)
		err = g.RestoreNode(data.Removed)
	case ActionMoveNode:
		data := action.Data.(MoveNodeData)
		err = g.SetNodePosition(data.ID, data.From)
	case ActionAddPort:
		data := action.Data.(AddPortData)
		data.Removed, err = g.RemovePort(data.ID)
		action.Data = data
	case ActionRemovePort:
		data := action.Data.(RemovePortData)
		err = g.RestorePort(data.Removed)
	case ActionAddConnection:
		data := action.Data.(AddConnectionData)
		data.Removed, err = g.RemoveConnection(data.ID)
		action.Data = data
	case ActionRemoveConnection:
		data := action.Data.(RemoveConnectionData)
		err = g.RestoreConnection(data.Removed)
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("Undo failed: %v", err)
		m.logger.Warn("undo failed", slog.Int("action", int(action.Type)), slog.String("error", err.Error()))
		return
	}

	buf.redoStack = append(buf.redoStack, action)
	m.clearSelection()
}

func (m *model) redo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.redoStack) == 0 {
		return
	}

	lastIndex := len(buf.redoStack) - 1
	action := buf.redoStack[lastIndex]
	buf.redoStack = buf.redoStack[:lastIndex]

	g := buf.graph
	var err error
	switch action.Type {
	case ActionAddNode:
		data := action.Data.(AddNodeData)
		err = g.RestoreNode(data.Removed)
	case ActionRemoveNode:
		data := action.Data.(RemoveNodeData)
		data.Removed, err = g.RemoveNode(data.ID)
		action.Data = data
	case ActionMoveNode:
		data := action.Data.(MoveNodeData)
		err = g.SetNodePosition(data.ID, data.To)
	case ActionAddPort:
		data := action.Data.(AddPortData)
		err = g.RestorePort(data.Removed)
	case ActionRemovePort:
		data := action.Data.(RemovePortData)
		data.Removed, err = g.RemovePort(data.ID)
		action.Data = data
	case ActionAddConnection:
		data := action.Data.(AddConnectionData)
		err = g.RestoreConnection(data.Removed)
	case ActionRemoveConnection:
		data := action.Data.(RemoveConnectionData)
		data.Removed, err = g.RemoveConnection(data.ID)
		action.Data = data
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("Redo failed: %v", err)
		m.logger.Warn("redo failed", slog.Int("action", int(action.Type)), slog.String("error", err.Error()))
		return
	}

	buf.undoStack = append(buf.undoStack, action)
	m.clearSelection()
}
