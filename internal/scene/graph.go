// Package scene is the node graph model: nodes with sockets and plugs,
// connections between them, and the registry that owns both.
//
// All elements live in arenas owned by Graph and refer to each other by
// handle. Every exported Graph method is safe to call while a renderer
// takes snapshots from another goroutine.
package scene

import (
	"fmt"
	"log/slog"
	"sync"

	"nodegraph/internal/geom"
)

type (
	NodeID int
	PortID int
	ConnID int
)

// NoPort marks an omitted end of a connection.
const NoPort PortID = -1

// Host receives geometry notifications. PrepareGeometryChange is called
// once a connection's new path is committed, before the graph method that
// changed it returns; the host should drop any cached bounds for that
// connection. It is never invoked with the graph lock held.
type Host interface {
	PrepareGeometryChange(id ConnID)
}

// HostFunc adapts a function to Host.
type HostFunc func(id ConnID)

func (f HostFunc) PrepareGeometryChange(id ConnID) { f(id) }

// Graph owns the node, port and connection registries.
type Graph struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	host        Host
	portFactory PortFactory
	style       NodeStyle

	nodes  map[NodeID]*Node
	order  []NodeID
	ports  []*Port
	conns  []*Connection
	nextID NodeID

	sceneRect geom.Rect
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithHost registers the geometry change listener.
func WithHost(h Host) Option {
	return func(g *Graph) { g.host = h }
}

// WithPortFactory replaces NewPort for every port the graph creates.
func WithPortFactory(f PortFactory) Option {
	return func(g *Graph) {
		if f != nil {
			g.portFactory = f
		}
	}
}

// WithNodeStyle sets the style used by CreateNode when no node option
// overrides it.
func WithNodeStyle(s NodeStyle) Option {
	return func(g *Graph) { g.style = s }
}

// New returns an empty graph. Node identities start at 0.
func New(opts ...Option) *Graph {
	g := &Graph{
		logger:      slog.Default(),
		portFactory: NewPort,
		style:       DefaultNodeStyle(),
		nodes:       make(map[NodeID]*Node),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetHost swaps the geometry change listener.
func (g *Graph) SetHost(h Host) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.host = h
}

// NodeOption configures a node at creation.
type NodeOption func(*Node)

func WithStyle(s NodeStyle) NodeOption {
	return func(n *Node) { n.Style = s }
}

func WithTitle(title string) NodeOption {
	return func(n *Node) { n.Title = title }
}

func WithNodeKind(kind string) NodeOption {
	return func(n *Node) { n.Kind = kind }
}

// WithEditable controls whether hosts may drag and select the node.
// Nodes are editable by default.
func WithEditable(editable bool) NodeOption {
	return func(n *Node) { n.Editable = editable }
}

// CreateNode registers a node with the next identity. bounds is the body
// in node-local coordinates; a zero width or height is filled from the
// style. Identities are never reused, even after RemoveNode.
func (g *Graph) CreateNode(bounds geom.Rect, opts ...NodeOption) (NodeID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := &Node{Editable: true, Style: g.style}
	for _, opt := range opts {
		opt(n)
	}
	if err := n.Style.Validate(); err != nil {
		return 0, err
	}
	if bounds.W == 0 {
		bounds.W = n.Style.Width
	}
	if bounds.H == 0 {
		bounds.H = n.Style.Height
	}
	if bounds.W < 0 || bounds.H < 0 {
		return 0, fmt.Errorf("%w: negative node size %vx%v", ErrInvalidStyle, bounds.W, bounds.H)
	}
	if n.Style.HeaderHeight > bounds.H {
		return 0, fmt.Errorf("%w: header %v taller than node %v", ErrInvalidStyle, n.Style.HeaderHeight, bounds.H)
	}
	n.rect = bounds

	n.ID = g.nextID
	g.nextID++
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)

	g.logger.Debug("node created",
		slog.Int("node", int(n.ID)),
		slog.String("title", n.Title),
		slog.Bool("editable", n.Editable))
	return n.ID, nil
}

// PortOption configures a port at creation.
type PortOption func(*portConfig)

type portConfig struct {
	factory PortFactory
	kind    string
}

// WithFactory overrides the graph's PortFactory for one port.
func WithFactory(f PortFactory) PortOption {
	return func(c *portConfig) { c.factory = f }
}

func WithPortKind(kind string) PortOption {
	return func(c *portConfig) { c.kind = kind }
}

// CreatePlug adds an output port and re-lays out the node's plugs.
func (g *Graph) CreatePlug(node NodeID, name string, shape geom.Rect, opts ...PortOption) (PortID, error) {
	return g.createPort(node, RolePlug, name, shape, opts)
}

// CreateSocket adds an input port and re-lays out the node's sockets.
func (g *Graph) CreateSocket(node NodeID, name string, shape geom.Rect, opts ...PortOption) (PortID, error) {
	return g.createPort(node, RoleSocket, name, shape, opts)
}

func (g *Graph) createPort(node NodeID, role Role, name string, shape geom.Rect, opts []PortOption) (PortID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[node]
	if !ok {
		return NoPort, fmt.Errorf("%w: %d", ErrUnknownNode, node)
	}
	if _, dup := n.ports(role).get(name); dup {
		g.logger.Warn("duplicate port name rejected",
			slog.Int("node", int(node)),
			slog.String("role", role.String()),
			slog.String("name", name))
		return NoPort, fmt.Errorf("%w: %s %q on node %d", ErrDuplicatePortName, role, name, node)
	}

	cfg := portConfig{factory: g.portFactory}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := cfg.factory(name, shape)
	if p == nil {
		return NoPort, fmt.Errorf("%w: factory returned nil for %q", ErrInvalidPort, name)
	}
	p.ID = PortID(len(g.ports))
	p.Name = name
	p.Role = role
	p.Node = node
	p.conns = nil
	if cfg.kind != "" {
		p.Kind = cfg.kind
	}
	g.ports = append(g.ports, p)

	n.ports(role).put(name, p.ID)
	n.layoutPorts(role, g.ports)

	g.logger.Debug("port created",
		slog.Int("node", int(node)),
		slog.Int("port", int(p.ID)),
		slog.String("role", role.String()),
		slog.String("name", name))
	return p.ID, nil
}

// SetPortPosition places a port centered on c in node-local coordinates.
// The next layout pass of its role overrides it.
func (g *Graph) SetPortPosition(id PortID, c geom.Point) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.port(id)
	if err != nil {
		return err
	}
	p.SetPosition(c)
	return nil
}

// ConnectOption configures a connection at creation.
type ConnectOption func(*Connection)

func WithCurve(s CurveStyle) ConnectOption {
	return func(c *Connection) { c.Curve = s }
}

func WithConnectionKind(kind string) ConnectOption {
	return func(c *Connection) { c.Kind = kind }
}

// Connect links plug (source) to socket (destination). Either may be
// NoPort. Both ends, when given, must be registered ports of the right
// role. Nothing limits how many connections share a port.
func (g *Graph) Connect(socket, plug PortID, opts ...ConnectOption) (ConnID, error) {
	g.mu.Lock()

	c := &Connection{Source: plug, Destination: socket}
	for _, opt := range opts {
		opt(c)
	}
	if err := g.checkEnd(socket, RoleSocket); err != nil {
		g.mu.Unlock()
		return 0, err
	}
	if err := g.checkEnd(plug, RolePlug); err != nil {
		g.mu.Unlock()
		return 0, err
	}

	c.ID = ConnID(len(g.conns))
	g.conns = append(g.conns, c)
	changed := g.bind(c)
	g.logger.Debug("connection created",
		slog.Int("connection", int(c.ID)),
		slog.Int("socket", int(socket)),
		slog.Int("plug", int(plug)))
	host := g.host
	g.mu.Unlock()

	if changed {
		g.notify(host, c.ID)
	}
	return c.ID, nil
}

func (g *Graph) checkEnd(id PortID, role Role) error {
	if id == NoPort {
		return nil
	}
	p, err := g.port(id)
	if err != nil {
		return err
	}
	if p.Role != role {
		return fmt.Errorf("%w: port %d is a %s, want %s", ErrPortRole, id, p.Role, role)
	}
	return nil
}

// bind attaches c to its ports and pulls their current scene centers.
func (g *Graph) bind(c *Connection) bool {
	changed := false
	if c.Destination != NoPort {
		p := g.ports[c.Destination]
		p.attach(c.ID)
		changed = c.SetDestinationPosition(g.centerInScene(p)) || changed
	}
	if c.Source != NoPort {
		p := g.ports[c.Source]
		p.attach(c.ID)
		changed = c.SetSourcePosition(g.centerInScene(p)) || changed
	}
	return changed
}

// MoveNode translates an editable node by d. Connections follow on the
// next Refresh.
func (g *Graph) MoveNode(id NodeID, d geom.Point) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.editableNode(id)
	if err != nil {
		return err
	}
	n.pos = n.pos.Add(d)
	return nil
}

// SetNodePosition places an editable node at scene position p.
func (g *Graph) SetNodePosition(id NodeID, p geom.Point) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.editableNode(id)
	if err != nil {
		return err
	}
	n.pos = p
	return nil
}

// ResizeNode changes the body size and re-lays out both port roles.
func (g *Graph) ResizeNode(id NodeID, w, h float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.editableNode(id)
	if err != nil {
		return err
	}
	if w <= 0 || h < n.Style.HeaderHeight {
		return fmt.Errorf("%w: size %vx%v for header %v", ErrInvalidStyle, w, h, n.Style.HeaderHeight)
	}
	n.rect.W, n.rect.H = w, h
	n.layoutPorts(RoleSocket, g.ports)
	n.layoutPorts(RolePlug, g.ports)
	return nil
}

// SetTitle renames a node. Locked nodes keep their title.
func (g *Graph) SetTitle(id NodeID, title string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.editableNode(id)
	if err != nil {
		return err
	}
	n.Title = title
	return nil
}

// RefreshPort pushes the port's scene center into every attached
// connection. Hosts call it from their paint path.
func (g *Graph) RefreshPort(id PortID) error {
	g.mu.Lock()
	p, err := g.port(id)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	changed := g.push(p, nil)
	host := g.host
	g.mu.Unlock()

	for _, c := range changed {
		g.notify(host, c)
	}
	return nil
}

// Refresh runs RefreshPort for every port and returns the connections
// whose path was rebuilt.
func (g *Graph) Refresh() []ConnID {
	g.mu.Lock()
	var changed []ConnID
	for _, p := range g.ports {
		if p != nil {
			changed = g.push(p, changed)
		}
	}
	host := g.host
	g.mu.Unlock()

	for _, c := range changed {
		g.notify(host, c)
	}
	return changed
}

func (g *Graph) push(p *Port, changed []ConnID) []ConnID {
	center := g.centerInScene(p)
	for _, id := range p.conns {
		c := g.conns[id]
		var rebuilt bool
		switch p.ID {
		case c.Source:
			rebuilt = c.SetSourcePosition(center)
		case c.Destination:
			rebuilt = c.SetDestinationPosition(center)
		}
		if rebuilt {
			changed = append(changed, id)
		}
	}
	return changed
}

func (g *Graph) notify(h Host, id ConnID) {
	if h != nil {
		h.PrepareGeometryChange(id)
	}
}

// centerInScene maps the port's shape center through its node.
func (g *Graph) centerInScene(p *Port) geom.Point {
	return geom.MapToScene(p.Shape.Center(), p.pos, g.nodes[p.Node].pos)
}

func (g *Graph) port(id PortID) (*Port, error) {
	if id < 0 || int(id) >= len(g.ports) || g.ports[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPort, id)
	}
	return g.ports[id], nil
}

func (g *Graph) node(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return n, nil
}

func (g *Graph) editableNode(id NodeID) (*Node, error) {
	n, err := g.node(id)
	if err != nil {
		return nil, err
	}
	if !n.Editable {
		return nil, fmt.Errorf("%w: %d", ErrNotEditable, id)
	}
	return n, nil
}

func (g *Graph) connection(id ConnID) (*Connection, error) {
	if id < 0 || int(id) >= len(g.conns) || g.conns[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownConnection, id)
	}
	return g.conns[id], nil
}

// SceneRect returns the renderable region of the canvas.
func (g *Graph) SceneRect() geom.Rect {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sceneRect
}

// ExpandSceneRect grows the renderable region to cover visible and
// returns the result. It never shrinks, which keeps the canvas unbounded
// as the host scrolls and zooms.
func (g *Graph) ExpandSceneRect(visible geom.Rect) geom.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sceneRect = g.sceneRect.Union(visible)
	return g.sceneRect
}
