package scene

import "errors"

var (
	ErrUnknownNode       = errors.New("scene: unknown node")
	ErrUnknownPort       = errors.New("scene: unknown port")
	ErrUnknownConnection = errors.New("scene: unknown connection")
	ErrDuplicatePortName = errors.New("scene: duplicate port name")
	ErrPortRole          = errors.New("scene: port has the wrong role")
	ErrNotEditable       = errors.New("scene: node is not editable")
	ErrInvalidStyle      = errors.New("scene: invalid style")
	ErrInvalidPort       = errors.New("scene: invalid port")
	ErrAlreadyPresent    = errors.New("scene: element already present")
)
