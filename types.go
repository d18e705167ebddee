package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"

	"nodegraph/internal/config"
	"nodegraph/internal/geom"
	"nodegraph/internal/render"
	"nodegraph/internal/scene"
)

type Buffer struct {
	graph     *scene.Graph
	undoStack []Action
	redoStack []Action
	name      string
	view      render.Viewport
}

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	zPanMode           bool
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	help               bool
	helpModel          help.Model
	keys               keyMap
	term               render.Terminal
	config             *config.Config
	logger             *slog.Logger

	selectedNode   scene.NodeID
	hasNode        bool
	selectedPort   scene.PortID
	selectedConn   scene.ConnID
	hasConn        bool
	connectionFrom scene.PortID

	moveNode   scene.NodeID
	moveOrigin geom.Point
	drag       *dragState

	confirmAction  ConfirmAction
	errorMessage   string
	successMessage string
	bufferSeq      int
}

// dragState tracks a mouse drag: a node when dragging one, the canvas
// otherwise.
type dragState struct {
	node   scene.NodeID
	onNode bool
	origin geom.Point
	last   geom.Point
	moved  bool
}

type Action struct {
	Type ActionType
	Data any
}

type AddNodeData struct {
	ID      scene.NodeID
	Removed scene.RemovedNode
}

type RemoveNodeData struct {
	ID      scene.NodeID
	Removed scene.RemovedNode
}

type MoveNodeData struct {
	ID   scene.NodeID
	From geom.Point
	To   geom.Point
}

type AddPortData struct {
	ID      scene.PortID
	Removed scene.RemovedPort
}

type RemovePortData struct {
	ID      scene.PortID
	Removed scene.RemovedPort
}

type AddConnectionData struct {
	ID      scene.ConnID
	Removed scene.RemovedConnection
}

type RemoveConnectionData struct {
	ID      scene.ConnID
	Removed scene.RemovedConnection
}

type configReloadedMsg struct {
	cfg *config.Config
}

type configErrorMsg struct {
	err error
}
