package scene

import (
	"fmt"
	"log/slog"
	"slices"
)

// RemovedConnection is what RemoveConnection took out of the graph. Pass it
// to RestoreConnection to put it back under the same handle.
type RemovedConnection struct {
	conn *Connection
}

// ID returns the handle the connection had.
func (r RemovedConnection) ID() ConnID {
	if r.conn == nil {
		return -1
	}
	return r.conn.ID
}

// RemovedNode is what RemoveNode took out of the graph: the node, its
// ports and every connection that referenced them.
type RemovedNode struct {
	node  *Node
	ports []*Port
	conns []RemovedConnection
}

func (r RemovedNode) ID() NodeID {
	if r.node == nil {
		return -1
	}
	return r.node.ID
}

// Connections returns the handles of the connections removed with the node.
func (r RemovedNode) Connections() []ConnID {
	out := make([]ConnID, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c.ID())
	}
	return out
}

// RemoveConnection detaches a connection from both ports and drops it.
func (g *Graph) RemoveConnection(id ConnID) (RemovedConnection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, err := g.connection(id)
	if err != nil {
		return RemovedConnection{}, err
	}
	g.unbind(c)
	g.logger.Debug("connection removed", slog.Int("connection", int(id)))
	return RemovedConnection{conn: c}, nil
}

func (g *Graph) unbind(c *Connection) {
	for _, end := range []PortID{c.Source, c.Destination} {
		if end != NoPort && g.ports[end] != nil {
			g.ports[end].detach(c.ID)
		}
	}
	g.conns[c.ID] = nil
}

// RestoreConnection re-registers a removed connection under its old handle
// and re-attaches it to its ports, which must exist.
func (g *Graph) RestoreConnection(r RemovedConnection) error {
	g.mu.Lock()
	c := r.conn
	if c == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: empty removal record", ErrUnknownConnection)
	}
	if err := g.restoreConnection(c); err != nil {
		g.mu.Unlock()
		return err
	}
	host := g.host
	g.mu.Unlock()

	g.notify(host, c.ID)
	return nil
}

func (g *Graph) restoreConnection(c *Connection) error {
	if int(c.ID) >= len(g.conns) || g.conns[c.ID] != nil {
		return fmt.Errorf("%w: connection %d", ErrAlreadyPresent, c.ID)
	}
	if err := g.checkEnd(c.Destination, RoleSocket); err != nil {
		return err
	}
	if err := g.checkEnd(c.Source, RolePlug); err != nil {
		return err
	}
	g.conns[c.ID] = c
	g.bind(c)
	return nil
}

// RemoveNode removes a node together with its ports. Connections that
// reference any of those ports are removed as well and detached from
// their other end.
func (g *Graph) RemoveNode(id NodeID) (RemovedNode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.node(id)
	if err != nil {
		return RemovedNode{}, err
	}
	rec := RemovedNode{node: n}
	for _, pid := range slices.Concat(n.sockets.ordered(), n.plugs.ordered()) {
		p := g.ports[pid]
		for _, cid := range p.Connections() {
			c := g.conns[cid]
			if c == nil {
				continue
			}
			g.unbind(c)
			rec.conns = append(rec.conns, RemovedConnection{conn: c})
		}
		rec.ports = append(rec.ports, p)
		g.ports[pid] = nil
	}
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(o NodeID) bool { return o == id })

	g.logger.Debug("node removed",
		slog.Int("node", int(id)),
		slog.Int("ports", len(rec.ports)),
		slog.Int("connections", len(rec.conns)))
	return rec, nil
}

// RestoreNode puts a removed node, its ports and its connections back
// under their old handles. The node is painted on top.
func (g *Graph) RestoreNode(r RemovedNode) error {
	g.mu.Lock()
	n := r.node
	if n == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: empty removal record", ErrUnknownNode)
	}
	if _, ok := g.nodes[n.ID]; ok {
		g.mu.Unlock()
		return fmt.Errorf("%w: node %d", ErrAlreadyPresent, n.ID)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	for _, p := range r.ports {
		p.conns = nil
		g.ports[p.ID] = p
	}

	var restored []ConnID
	for _, rc := range r.conns {
		if err := g.restoreConnection(rc.conn); err != nil {
			g.logger.Warn("connection not restored",
				slog.Int("connection", int(rc.ID())),
				slog.String("error", err.Error()))
			continue
		}
		restored = append(restored, rc.ID())
	}
	host := g.host
	g.mu.Unlock()

	for _, id := range restored {
		g.notify(host, id)
	}
	return nil
}

// RemovedPort is what RemovePort took out of the graph.
type RemovedPort struct {
	port  *Port
	index int
	conns []RemovedConnection
}

func (r RemovedPort) ID() PortID {
	if r.port == nil {
		return NoPort
	}
	return r.port.ID
}

// RemovePort drops a port and every connection attached to it, then lays
// out the remaining ports of the same role.
func (g *Graph) RemovePort(id PortID) (RemovedPort, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.port(id)
	if err != nil {
		return RemovedPort{}, err
	}
	n, err := g.node(p.Node)
	if err != nil {
		return RemovedPort{}, err
	}
	rec := RemovedPort{port: p, index: n.ports(p.Role).index(p.Name)}
	for _, cid := range p.Connections() {
		if c := g.conns[cid]; c != nil {
			g.unbind(c)
			rec.conns = append(rec.conns, RemovedConnection{conn: c})
		}
	}
	n.ports(p.Role).remove(p.Name)
	g.ports[id] = nil
	n.layoutPorts(p.Role, g.ports)

	g.logger.Debug("port removed",
		slog.Int("port", int(id)),
		slog.Int("connections", len(rec.conns)))
	return rec, nil
}

// RestorePort puts a removed port back at its old place in its node's
// ordering, under its old handle, and restores its connections.
func (g *Graph) RestorePort(r RemovedPort) error {
	g.mu.Lock()
	p := r.port
	if p == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: empty removal record", ErrUnknownPort)
	}
	n, err := g.node(p.Node)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	if g.ports[p.ID] != nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: port %d", ErrAlreadyPresent, p.ID)
	}
	if _, dup := n.ports(p.Role).get(p.Name); dup {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s %q on node %d", ErrDuplicatePortName, p.Role, p.Name, p.Node)
	}
	p.conns = nil
	g.ports[p.ID] = p
	n.ports(p.Role).insert(r.index, p.Name, p.ID)
	n.layoutPorts(p.Role, g.ports)

	var restored []ConnID
	for _, rc := range r.conns {
		if err := g.restoreConnection(rc.conn); err != nil {
			g.logger.Warn("connection not restored",
				slog.Int("connection", int(rc.ID())),
				slog.String("error", err.Error()))
			continue
		}
		restored = append(restored, rc.ID())
	}
	host := g.host
	g.mu.Unlock()

	for _, id := range restored {
		g.notify(host, id)
	}
	return nil
}
