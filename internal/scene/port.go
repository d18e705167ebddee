package scene

import (
	"slices"

	"nodegraph/internal/geom"
)

// Role tells which edge of its node a port sits on.
type Role int

const (
	// RoleSocket is an input port, the destination end of a connection.
	RoleSocket Role = iota
	// RolePlug is an output port, the source end of a connection.
	RolePlug
)

func (r Role) String() string {
	switch r {
	case RoleSocket:
		return "socket"
	case RolePlug:
		return "plug"
	default:
		return "unknown"
	}
}

// Port is a connectable point on a node. Its connections are held as
// handles into the graph's arena; the graph owns them.
type Port struct {
	ID    PortID
	Name  string
	Role  Role
	Node  NodeID
	Kind  string
	Shape geom.Rect

	pos   geom.Point
	conns []ConnID
}

// PortFactory builds the port the graph will register. It receives the
// requested name and local bounding shape; the graph assigns identity,
// role and owning node afterwards.
type PortFactory func(name string, shape geom.Rect) *Port

// NewPort is the default PortFactory.
func NewPort(name string, shape geom.Rect) *Port {
	return &Port{Name: name, Shape: shape}
}

// Pos returns the node-local offset of the port's shape origin.
func (p *Port) Pos() geom.Point {
	return p.pos
}

// SetPosition places the port so that its shape is centered on c, given in
// node-local coordinates.
func (p *Port) SetPosition(c geom.Point) {
	p.pos = c.Sub(geom.Pt(p.Shape.W/2, p.Shape.H/2))
}

// LocalCenter returns the shape center in node-local coordinates.
func (p *Port) LocalCenter() geom.Point {
	return geom.MapToScene(p.Shape.Center(), p.pos)
}

// LocalRect returns the port's bounding rect in node-local coordinates.
func (p *Port) LocalRect() geom.Rect {
	return p.Shape.Translate(p.pos)
}

// Connections returns a copy of the attached connection handles.
func (p *Port) Connections() []ConnID {
	return slices.Clone(p.conns)
}

// attach records id once; a second attach of the same connection is a no-op.
func (p *Port) attach(id ConnID) bool {
	if slices.Contains(p.conns, id) {
		return false
	}
	p.conns = append(p.conns, id)
	return true
}

func (p *Port) detach(id ConnID) {
	p.conns = slices.DeleteFunc(p.conns, func(c ConnID) bool { return c == id })
}
