package scene

import (
	"slices"

	"nodegraph/internal/geom"
)

// Node is a positioned container for named sockets and plugs.
type Node struct {
	ID       NodeID
	Title    string
	Kind     string
	Editable bool
	Style    NodeStyle

	pos     geom.Point
	rect    geom.Rect
	sockets portMap
	plugs   portMap
}

// portMap keeps ports of one role in insertion order.
type portMap struct {
	names []string
	ids   map[string]PortID
}

func (m *portMap) get(name string) (PortID, bool) {
	id, ok := m.ids[name]
	return id, ok
}

func (m *portMap) put(name string, id PortID) {
	if m.ids == nil {
		m.ids = make(map[string]PortID)
	}
	if _, ok := m.ids[name]; !ok {
		m.names = append(m.names, name)
	}
	m.ids[name] = id
}

// insert puts name at position i, clamped to the current length.
func (m *portMap) insert(i int, name string, id PortID) {
	if m.ids == nil {
		m.ids = make(map[string]PortID)
	}
	i = max(0, min(i, len(m.names)))
	m.names = slices.Insert(m.names, i, name)
	m.ids[name] = id
}

func (m *portMap) index(name string) int {
	return slices.Index(m.names, name)
}

func (m *portMap) remove(name string) {
	delete(m.ids, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
}

func (m *portMap) ordered() []PortID {
	out := make([]PortID, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, m.ids[name])
	}
	return out
}

func (n *Node) ports(role Role) *portMap {
	if role == RolePlug {
		return &n.plugs
	}
	return &n.sockets
}

// Pos returns the node's scene position.
func (n *Node) Pos() geom.Point {
	return n.pos
}

// Rect returns the node body in node-local coordinates.
func (n *Node) Rect() geom.Rect {
	return n.rect
}

// SceneRect returns the node body in scene coordinates.
func (n *Node) SceneRect() geom.Rect {
	return n.rect.Translate(n.pos)
}

// layoutPorts spaces the ports of one role evenly along the matching
// vertical edge below the header: sockets on the left, plugs on the right.
// With no ports it does nothing.
func (n *Node) layoutPorts(role Role, arena []*Port) {
	ids := n.ports(role).ordered()
	if len(ids) == 0 {
		return
	}
	header := n.Style.HeaderHeight
	spacing := (n.rect.H - header) / float64(len(ids)+1)
	x := n.rect.X
	if role == RolePlug {
		x = n.rect.Right()
	}
	for i, id := range ids {
		arena[id].SetPosition(geom.Pt(x, n.rect.Y+header+float64(i+1)*spacing))
	}
}

// boundingShape unions the body with every port rect, in node-local space.
func (n *Node) boundingShape(arena []*Port) geom.Rect {
	r := n.rect
	for _, id := range n.sockets.ordered() {
		r = r.Union(arena[id].LocalRect())
	}
	for _, id := range n.plugs.ordered() {
		r = r.Union(arena[id].LocalRect())
	}
	return r
}
