package scene

import (
	"fmt"
	"slices"

	"nodegraph/internal/geom"
)

// NodeView is a read-only copy of a node.
type NodeView struct {
	ID       NodeID
	Title    string
	Kind     string
	Editable bool
	Style    NodeStyle
	Pos      geom.Point
	// Rect is the body in node-local coordinates.
	Rect geom.Rect
	// Bounds is the body in scene coordinates.
	Bounds geom.Rect
	// Shape is the body plus port overflow, in scene coordinates.
	Shape   geom.Rect
	Sockets []PortID
	Plugs   []PortID
}

// PortView is a read-only copy of a port.
type PortView struct {
	ID   PortID
	Name string
	Role Role
	Node NodeID
	Kind string
	// Local is the port center in node-local coordinates.
	Local geom.Point
	// Center is the port center in scene coordinates.
	Center      geom.Point
	Rect        geom.Rect
	Connections []ConnID
}

// ConnView is a read-only copy of a connection.
type ConnView struct {
	ID          ConnID
	Source      PortID
	Destination PortID
	Kind        string
	Curve       CurveStyle
	SourcePos   geom.Point
	DestPos     geom.Point
	Path        geom.Cubic
	Region      geom.Rect
	Rebuilds    int
}

// Snapshot is a consistent copy of the graph for one paint pass. Nodes
// are in paint order, bottom first.
type Snapshot struct {
	Nodes       []NodeView
	Ports       map[PortID]PortView
	Connections []ConnView
	SceneRect   geom.Rect
}

// Port looks up a port view in the snapshot.
func (s Snapshot) Port(id PortID) (PortView, bool) {
	p, ok := s.Ports[id]
	return p, ok
}

// Node looks up a node view in the snapshot.
func (s Snapshot) Node(id NodeID) (NodeView, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeView{}, false
}

func (g *Graph) nodeView(n *Node) NodeView {
	return NodeView{
		ID:       n.ID,
		Title:    n.Title,
		Kind:     n.Kind,
		Editable: n.Editable,
		Style:    n.Style,
		Pos:      n.pos,
		Rect:     n.rect,
		Bounds:   n.SceneRect(),
		Shape:    n.boundingShape(g.ports).Translate(n.pos),
		Sockets:  n.sockets.ordered(),
		Plugs:    n.plugs.ordered(),
	}
}

func (g *Graph) portView(p *Port) PortView {
	node := g.nodes[p.Node]
	return PortView{
		ID:          p.ID,
		Name:        p.Name,
		Role:        p.Role,
		Node:        p.Node,
		Kind:        p.Kind,
		Local:       p.LocalCenter(),
		Center:      g.centerInScene(p),
		Rect:        p.LocalRect().Translate(node.pos),
		Connections: p.Connections(),
	}
}

func connView(c *Connection) ConnView {
	return ConnView{
		ID:          c.ID,
		Source:      c.Source,
		Destination: c.Destination,
		Kind:        c.Kind,
		Curve:       c.Curve,
		SourcePos:   c.srcPos,
		DestPos:     c.dstPos,
		Path:        c.path,
		Region:      c.BoundingRegion(),
		Rebuilds:    c.rebuilds,
	}
}

// Node returns a copy of the node.
func (g *Graph) Node(id NodeID) (NodeView, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.node(id)
	if err != nil {
		return NodeView{}, err
	}
	return g.nodeView(n), nil
}

// Port returns a copy of the port.
func (g *Graph) Port(id PortID) (PortView, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, err := g.port(id)
	if err != nil {
		return PortView{}, err
	}
	return g.portView(p), nil
}

// Connection returns a copy of the connection.
func (g *Graph) Connection(id ConnID) (ConnView, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c, err := g.connection(id)
	if err != nil {
		return ConnView{}, err
	}
	return connView(c), nil
}

// Socket finds a node's input port by name.
func (g *Graph) Socket(node NodeID, name string) (PortID, error) {
	return g.lookup(node, RoleSocket, name)
}

// Plug finds a node's output port by name.
func (g *Graph) Plug(node NodeID, name string) (PortID, error) {
	return g.lookup(node, RolePlug, name)
}

func (g *Graph) lookup(node NodeID, role Role, name string) (PortID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.node(node)
	if err != nil {
		return NoPort, err
	}
	id, ok := n.ports(role).get(name)
	if !ok {
		return NoPort, fmt.Errorf("%w: %s %q on node %d", ErrUnknownPort, role, name, node)
	}
	return id, nil
}

// BoundingShape returns the union of the node body and its ports in
// node-local coordinates.
func (g *Graph) BoundingShape(id NodeID) (geom.Rect, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.node(id)
	if err != nil {
		return geom.Rect{}, err
	}
	return n.boundingShape(g.ports), nil
}

// CenterInScene returns a port's center in scene coordinates.
func (g *Graph) CenterInScene(id PortID) (geom.Point, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, err := g.port(id)
	if err != nil {
		return geom.Point{}, err
	}
	return g.centerInScene(p), nil
}

// NodeIDs returns node handles in paint order.
func (g *Graph) NodeIDs() []NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.order)
}

func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *Graph) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, c := range g.conns {
		if c != nil {
			n++
		}
	}
	return n
}

// Snapshot copies everything a renderer needs under one read lock.
func (g *Graph) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Snapshot{
		Nodes:     make([]NodeView, 0, len(g.order)),
		Ports:     make(map[PortID]PortView),
		SceneRect: g.sceneRect,
	}
	for _, id := range g.order {
		s.Nodes = append(s.Nodes, g.nodeView(g.nodes[id]))
	}
	for _, p := range g.ports {
		if p != nil {
			s.Ports[p.ID] = g.portView(p)
		}
	}
	for _, c := range g.conns {
		if c != nil {
			s.Connections = append(s.Connections, connView(c))
		}
	}
	return s
}

// NodeAt returns the topmost node whose bounding shape holds p.
func (g *Graph) NodeAt(p geom.Point) (NodeID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i := len(g.order) - 1; i >= 0; i-- {
		n := g.nodes[g.order[i]]
		if n.boundingShape(g.ports).Translate(n.pos).Contains(p) {
			return n.ID, true
		}
	}
	return 0, false
}

// PortAt returns the port whose bounding rect holds p, preferring the
// ports of the topmost node.
func (g *Graph) PortAt(p geom.Point) (PortID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i := len(g.order) - 1; i >= 0; i-- {
		n := g.nodes[g.order[i]]
		for _, id := range slices.Concat(n.sockets.ordered(), n.plugs.ordered()) {
			if g.ports[id].LocalRect().Translate(n.pos).Contains(p) {
				return id, true
			}
		}
	}
	return NoPort, false
}

// ConnectionAt returns the most recently created connection whose stroked
// outline holds p.
func (g *Graph) ConnectionAt(p geom.Point) (ConnID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i := len(g.conns) - 1; i >= 0; i-- {
		c := g.conns[i]
		if c != nil && c.BoundingRegion().Contains(p) && c.Contains(p) {
			return c.ID, true
		}
	}
	return 0, false
}

// Raise moves a node to the top of the paint order.
func (g *Graph) Raise(id NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.node(id); err != nil {
		return err
	}
	g.order = slices.DeleteFunc(g.order, func(o NodeID) bool { return o == id })
	g.order = append(g.order, id)
	return nil
}
