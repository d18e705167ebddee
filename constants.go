package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeConnect
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmDeletePort
	ConfirmDeleteConnection
	ConfirmQuit
)

type ActionType int

const (
	ActionAddNode ActionType = iota
	ActionRemoveNode
	ActionMoveNode
	ActionAddPort
	ActionRemovePort
	ActionAddConnection
	ActionRemoveConnection
)

const (
	defaultNodeSize = 50
	fastMoveSpeed   = 2
	logFileName     = "nodegraph.log"
)
