package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodegraph/internal/geom"
)

var portShape = geom.R(0, 0, 10, 10)

// twoNodes builds the canonical pair: each node has socket "in" and plug
// "out", and A.in is fed from B.out.
func twoNodes(t *testing.T, opts ...Option) (*Graph, NodeID, NodeID, ConnID) {
	t.Helper()
	g := New(opts...)
	var ids [2]NodeID
	for i := range ids {
		id, err := g.CreateNode(geom.R(0, 0, 50, 50))
		require.NoError(t, err)
		_, err = g.CreatePlug(id, "out", portShape)
		require.NoError(t, err)
		_, err = g.CreateSocket(id, "in", portShape)
		require.NoError(t, err)
		ids[i] = id
	}
	in, err := g.Socket(ids[0], "in")
	require.NoError(t, err)
	out, err := g.Plug(ids[1], "out")
	require.NoError(t, err)
	c, err := g.Connect(in, out)
	require.NoError(t, err)
	return g, ids[0], ids[1], c
}

func TestCreateNodeIdentities(t *testing.T) {
	g := New()
	for want := 0; want < 10; want++ {
		id, err := g.CreateNode(geom.R(0, 0, 50, 50))
		require.NoError(t, err)
		assert.Equal(t, NodeID(want), id)
	}
	assert.Equal(t, 10, g.NodeCount())
}

func TestIdentitiesNotReusedAfterRemoval(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(geom.Rect{})
	_, err := g.RemoveNode(a)
	require.NoError(t, err)
	b, err := g.CreateNode(geom.Rect{})
	require.NoError(t, err)
	assert.Equal(t, a+1, b)
}

func TestCreateNodeStyleFill(t *testing.T) {
	g := New()
	id, err := g.CreateNode(geom.R(5, 5, 0, 0))
	require.NoError(t, err)
	n, err := g.Node(id)
	require.NoError(t, err)
	assert.Equal(t, geom.R(5, 5, 50, 50), n.Rect)
	assert.True(t, n.Editable)

	legacy, err := g.CreateNode(geom.R(0, 0, 80, 60), WithStyle(LegacyNodeStyle()))
	require.NoError(t, err)
	n, err = g.Node(legacy)
	require.NoError(t, err)
	assert.Equal(t, geom.R(0, 0, 80, 60), n.Rect)
	assert.Equal(t, 20.0, n.Style.HeaderHeight)
}

func TestCreateNodeRejectsBadStyle(t *testing.T) {
	g := New()
	_, err := g.CreateNode(geom.Rect{}, WithStyle(NodeStyle{HeaderHeight: -1, Width: 50, Height: 50}))
	assert.ErrorIs(t, err, ErrInvalidStyle)

	_, err = g.CreateNode(geom.R(0, 0, 50, 5))
	assert.ErrorIs(t, err, ErrInvalidStyle)
	assert.Equal(t, 0, g.NodeCount())
}

func TestSocketLayout(t *testing.T) {
	g := New()
	id, err := g.CreateNode(geom.R(0, 0, 50, 50))
	require.NoError(t, err)
	var ports []PortID
	for _, name := range []string{"a", "b", "c"} {
		p, err := g.CreateSocket(id, name, portShape)
		require.NoError(t, err)
		ports = append(ports, p)
	}
	for i, want := range []float64{20, 30, 40} {
		p, err := g.Port(ports[i])
		require.NoError(t, err)
		assert.Equal(t, geom.Pt(0, want), p.Local, "socket %d", i)
	}
}

func TestPlugLayoutOnRightEdge(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.R(10, 0, 50, 50))
	a, _ := g.CreatePlug(id, "a", portShape)
	b, _ := g.CreatePlug(id, "b", portShape)

	pa, _ := g.Port(a)
	pb, _ := g.Port(b)
	assert.Equal(t, 60.0, pa.Local.X)
	assert.InDelta(t, 10+40.0/3, pa.Local.Y, 1e-9)
	assert.InDelta(t, 10+80.0/3, pb.Local.Y, 1e-9)
}

func TestLayoutRolesAreIndependent(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.R(0, 0, 50, 50))
	s, _ := g.CreateSocket(id, "x", portShape)
	_, _ = g.CreatePlug(id, "y", portShape)
	_, _ = g.CreatePlug(id, "z", portShape)

	p, _ := g.Port(s)
	assert.Equal(t, geom.Pt(0, 30), p.Local)
}

func TestDuplicatePortName(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.Rect{})
	_, err := g.CreateSocket(id, "in", portShape)
	require.NoError(t, err)
	_, err = g.CreateSocket(id, "in", portShape)
	assert.ErrorIs(t, err, ErrDuplicatePortName)

	// same name with the other role is fine
	_, err = g.CreatePlug(id, "in", portShape)
	assert.NoError(t, err)

	n, _ := g.Node(id)
	assert.Len(t, n.Sockets, 1)
	assert.Len(t, n.Plugs, 1)
}

func TestCreatePortUnknownNode(t *testing.T) {
	g := New()
	_, err := g.CreatePlug(7, "out", portShape)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestPortFactory(t *testing.T) {
	made := 0
	factory := func(name string, shape geom.Rect) *Port {
		made++
		p := NewPort(name, shape)
		p.Kind = "diamond"
		return p
	}
	g := New(WithPortFactory(factory))
	id, _ := g.CreateNode(geom.Rect{})
	pid, err := g.CreateSocket(id, "in", portShape)
	require.NoError(t, err)
	p, _ := g.Port(pid)
	assert.Equal(t, "diamond", p.Kind)
	assert.Equal(t, RoleSocket, p.Role)
	assert.Equal(t, 1, made)

	_, err = g.CreatePlug(id, "out", portShape, WithFactory(func(string, geom.Rect) *Port { return nil }))
	assert.ErrorIs(t, err, ErrInvalidPort)

	pid, err = g.CreatePlug(id, "out", portShape, WithPortKind("square"))
	require.NoError(t, err)
	p, _ = g.Port(pid)
	assert.Equal(t, "square", p.Kind)
}

func TestBoundingShapeCoversPortOverflow(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.R(0, 0, 50, 50))
	_, _ = g.CreateSocket(id, "in", portShape)
	_, _ = g.CreatePlug(id, "out", portShape)

	r, err := g.BoundingShape(id)
	require.NoError(t, err)
	assert.Equal(t, geom.R(-5, 0, 60, 50), r)
}

func TestSetPortPositionCentersShape(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.R(0, 0, 50, 50))
	pid, _ := g.CreatePlug(id, "out", portShape)
	require.NoError(t, g.SetPortPosition(pid, geom.Pt(25, 25)))

	p, _ := g.Port(pid)
	assert.Equal(t, geom.Pt(25, 25), p.Local)
	assert.Equal(t, geom.R(20, 20, 10, 10), p.Rect)
}

func TestConnectInitialEndpoints(t *testing.T) {
	g, _, _, c := twoNodes(t)
	v, err := g.Connection(c)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(0, 30), v.DestPos)
	assert.Equal(t, geom.Pt(50, 30), v.SourcePos)
	assert.Equal(t, v.DestPos, v.Path.At(0))
	assert.Equal(t, v.SourcePos, v.Path.At(1))
}

func TestConnectValidation(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.Rect{})
	in, _ := g.CreateSocket(id, "in", portShape)
	out, _ := g.CreatePlug(id, "out", portShape)

	_, err := g.Connect(out, in)
	assert.ErrorIs(t, err, ErrPortRole)

	_, err = g.Connect(PortID(99), out)
	assert.ErrorIs(t, err, ErrUnknownPort)

	_, err = g.Connect(in, PortID(-7))
	assert.ErrorIs(t, err, ErrUnknownPort)
	assert.Equal(t, 0, g.ConnectionCount())
}

func TestDanglingConnection(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.Rect{})
	out, _ := g.CreatePlug(id, "out", portShape)

	c, err := g.Connect(NoPort, out)
	require.NoError(t, err)
	v, _ := g.Connection(c)
	assert.Equal(t, NoPort, v.Destination)
	assert.Equal(t, geom.Pt(50, 30), v.SourcePos)
	assert.Equal(t, geom.Point{}, v.DestPos)
}

func TestFanInIsAllowed(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(geom.Rect{})
	b, _ := g.CreateNode(geom.Rect{})
	in, _ := g.CreateSocket(a, "in", portShape)
	o1, _ := g.CreatePlug(b, "o1", portShape)
	o2, _ := g.CreatePlug(b, "o2", portShape)

	_, err := g.Connect(in, o1)
	require.NoError(t, err)
	_, err = g.Connect(in, o2)
	require.NoError(t, err)

	p, _ := g.Port(in)
	assert.Len(t, p.Connections, 2)
}

func TestAttachIsIdempotent(t *testing.T) {
	p := NewPort("in", portShape)
	assert.True(t, p.attach(3))
	assert.False(t, p.attach(3))
	assert.Equal(t, []ConnID{3}, p.Connections())
	p.detach(3)
	assert.Empty(t, p.Connections())
}

func TestMoveNodeAndRefresh(t *testing.T) {
	g, _, b, c := twoNodes(t)
	before, _ := g.Connection(c)

	require.NoError(t, g.MoveNode(b, geom.Pt(100, 0)))

	// nothing moves until the paint hook runs
	mid, _ := g.Connection(c)
	assert.Equal(t, before.SourcePos, mid.SourcePos)

	changed := g.Refresh()
	assert.Equal(t, []ConnID{c}, changed)

	after, _ := g.Connection(c)
	assert.Equal(t, before.SourcePos.X+100, after.SourcePos.X)
	assert.Equal(t, before.SourcePos.Y, after.SourcePos.Y)
	assert.Equal(t, before.DestPos, after.DestPos)
	assert.Equal(t, before.Rebuilds+1, after.Rebuilds)

	assert.Empty(t, g.Refresh())
}

func TestRefreshPort(t *testing.T) {
	g, a, _, c := twoNodes(t)
	require.NoError(t, g.MoveNode(a, geom.Pt(0, 15)))
	in, _ := g.Socket(a, "in")
	require.NoError(t, g.RefreshPort(in))

	v, _ := g.Connection(c)
	assert.Equal(t, geom.Pt(0, 45), v.DestPos)
	assert.ErrorIs(t, g.RefreshPort(PortID(42)), ErrUnknownPort)
}

func TestHostIsNotified(t *testing.T) {
	var seen []ConnID
	g, _, b, c := twoNodes(t, WithHost(HostFunc(func(id ConnID) { seen = append(seen, id) })))
	assert.Equal(t, []ConnID{c}, seen)

	require.NoError(t, g.MoveNode(b, geom.Pt(1, 1)))
	g.Refresh()
	g.Refresh()
	assert.Equal(t, []ConnID{c, c}, seen)
}

func TestNonEditableNode(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.Rect{}, WithEditable(false))
	err := g.MoveNode(id, geom.Pt(1, 0))
	assert.ErrorIs(t, err, ErrNotEditable)
	assert.ErrorIs(t, g.SetNodePosition(id, geom.Pt(1, 0)), ErrNotEditable)
	assert.ErrorIs(t, g.ResizeNode(id, 80, 80), ErrNotEditable)
	assert.ErrorIs(t, g.SetTitle(id, "x"), ErrNotEditable)
	assert.ErrorIs(t, g.MoveNode(99, geom.Pt(1, 0)), ErrUnknownNode)
}

func TestSetTitle(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.Rect{}, WithTitle("old"))
	require.NoError(t, g.SetTitle(id, "new"))
	nv, err := g.Node(id)
	require.NoError(t, err)
	assert.Equal(t, "new", nv.Title)
	assert.ErrorIs(t, g.SetTitle(99, "x"), ErrUnknownNode)
}

func TestHostSeesCommittedPath(t *testing.T) {
	var g *Graph
	var seen []geom.Point
	host := HostFunc(func(id ConnID) {
		// the graph is unlocked and already holds the new path
		cv, err := g.Connection(id)
		require.NoError(t, err)
		seen = append(seen, cv.SourcePos)
	})
	g, _, b, _ := twoNodes(t)
	g.SetHost(host)

	require.NoError(t, g.MoveNode(b, geom.Pt(10, 0)))
	g.Refresh()
	require.NotEmpty(t, seen)
	out, err := g.Plug(b, "out")
	require.NoError(t, err)
	want, err := g.CenterInScene(out)
	require.NoError(t, err)
	assert.Equal(t, want, seen[len(seen)-1])
}

func TestResizeNodeRelayouts(t *testing.T) {
	g := New()
	id, _ := g.CreateNode(geom.R(0, 0, 50, 50))
	s, _ := g.CreateSocket(id, "in", portShape)
	p, _ := g.CreatePlug(id, "out", portShape)

	require.NoError(t, g.ResizeNode(id, 80, 90))
	sv, _ := g.Port(s)
	pv, _ := g.Port(p)
	assert.Equal(t, geom.Pt(0, 50), sv.Local)
	assert.Equal(t, geom.Pt(80, 50), pv.Local)

	assert.ErrorIs(t, g.ResizeNode(id, 80, 5), ErrInvalidStyle)
}

func TestRemoveConnection(t *testing.T) {
	g, a, b, c := twoNodes(t)
	rec, err := g.RemoveConnection(c)
	require.NoError(t, err)
	assert.Equal(t, c, rec.ID())
	assert.Equal(t, 0, g.ConnectionCount())

	in, _ := g.Socket(a, "in")
	out, _ := g.Plug(b, "out")
	pin, _ := g.Port(in)
	pout, _ := g.Port(out)
	assert.Empty(t, pin.Connections)
	assert.Empty(t, pout.Connections)

	_, err = g.RemoveConnection(c)
	assert.ErrorIs(t, err, ErrUnknownConnection)

	require.NoError(t, g.RestoreConnection(rec))
	pin, _ = g.Port(in)
	assert.Equal(t, []ConnID{c}, pin.Connections)
	assert.ErrorIs(t, g.RestoreConnection(rec), ErrAlreadyPresent)
}

func TestRemoveNodeCascades(t *testing.T) {
	g, a, b, c := twoNodes(t)
	rec, err := g.RemoveNode(b)
	require.NoError(t, err)
	assert.Equal(t, []ConnID{c}, rec.Connections())
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.ConnectionCount())

	in, _ := g.Socket(a, "in")
	pin, _ := g.Port(in)
	assert.Empty(t, pin.Connections)

	_, err = g.Plug(b, "out")
	assert.ErrorIs(t, err, ErrUnknownNode)

	require.NoError(t, g.RestoreNode(rec))
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.ConnectionCount())
	pin, _ = g.Port(in)
	assert.Equal(t, []ConnID{c}, pin.Connections)
	assert.Equal(t, []NodeID{a, b}, g.NodeIDs())

	err = g.RestoreNode(rec)
	assert.True(t, errors.Is(err, ErrAlreadyPresent))
}

func TestRemovePortRelayoutsAndRestores(t *testing.T) {
	g := New()
	id, err := g.CreateNode(geom.R(0, 0, 50, 50))
	require.NoError(t, err)
	var ports []PortID
	for _, name := range []string{"a", "b", "c"} {
		p, err := g.CreateSocket(id, name, portShape)
		require.NoError(t, err)
		ports = append(ports, p)
	}
	src, err := g.CreateNode(geom.R(100, 0, 50, 50))
	require.NoError(t, err)
	out, err := g.CreatePlug(src, "out", portShape)
	require.NoError(t, err)
	c, err := g.Connect(ports[1], out)
	require.NoError(t, err)

	rec, err := g.RemovePort(ports[1])
	require.NoError(t, err)
	assert.Equal(t, ports[1], rec.ID())
	assert.Equal(t, 0, g.ConnectionCount())
	_, err = g.Socket(id, "b")
	assert.ErrorIs(t, err, ErrUnknownPort)

	ys := socketYs(g, []PortID{ports[0], ports[2]})
	assert.InDelta(t, 10+40.0/3, ys[0], 1e-9)
	assert.InDelta(t, 10+80.0/3, ys[1], 1e-9)

	require.NoError(t, g.RestorePort(rec))
	assert.Equal(t, []float64{20, 30, 40}, socketYs(g, ports))
	assert.Equal(t, 1, g.ConnectionCount())
	pv, err := g.Port(ports[1])
	require.NoError(t, err)
	assert.Equal(t, []ConnID{c}, pv.Connections)

	assert.ErrorIs(t, g.RestorePort(rec), ErrAlreadyPresent)
}

func TestHitTesting(t *testing.T) {
	g, a, b, c := twoNodes(t)
	require.NoError(t, g.MoveNode(b, geom.Pt(200, 0)))
	g.Refresh()

	id, ok := g.NodeAt(geom.Pt(225, 25))
	assert.True(t, ok)
	assert.Equal(t, b, id)

	// the socket overhangs the body on the left
	id, ok = g.NodeAt(geom.Pt(-4, 30))
	assert.True(t, ok)
	assert.Equal(t, a, id)

	_, ok = g.NodeAt(geom.Pt(120, 200))
	assert.False(t, ok)

	pid, ok := g.PortAt(geom.Pt(250, 30))
	assert.True(t, ok)
	out, _ := g.Plug(b, "out")
	assert.Equal(t, out, pid)

	v, _ := g.Connection(c)
	cid, ok := g.ConnectionAt(v.Path.At(0.5))
	assert.True(t, ok)
	assert.Equal(t, c, cid)
	_, ok = g.ConnectionAt(geom.Pt(125, 200))
	assert.False(t, ok)
}

func TestRaiseChangesPaintOrder(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(geom.Rect{})
	b, _ := g.CreateNode(geom.Rect{})
	assert.Equal(t, []NodeID{a, b}, g.NodeIDs())

	id, _ := g.NodeAt(geom.Pt(25, 25))
	assert.Equal(t, b, id)

	require.NoError(t, g.Raise(a))
	assert.Equal(t, []NodeID{b, a}, g.NodeIDs())
	id, _ = g.NodeAt(geom.Pt(25, 25))
	assert.Equal(t, a, id)
}

func TestSnapshot(t *testing.T) {
	g, a, _, c := twoNodes(t)
	s := g.Snapshot()
	require.Len(t, s.Nodes, 2)
	require.Len(t, s.Connections, 1)
	assert.Len(t, s.Ports, 4)
	assert.Equal(t, c, s.Connections[0].ID)

	n, ok := s.Node(a)
	require.True(t, ok)
	assert.Equal(t, geom.R(0, 0, 50, 50), n.Bounds)
	assert.Equal(t, geom.R(-5, 0, 60, 50), n.Shape)

	p, ok := s.Port(n.Sockets[0])
	require.True(t, ok)
	assert.Equal(t, "in", p.Name)
}

func TestExpandSceneRectNeverShrinks(t *testing.T) {
	g := New()
	assert.Equal(t, geom.R(0, 0, 100, 80), g.ExpandSceneRect(geom.R(0, 0, 100, 80)))
	assert.Equal(t, geom.R(-50, 0, 150, 80), g.ExpandSceneRect(geom.R(-50, 10, 20, 20)))
	assert.Equal(t, geom.R(-50, 0, 150, 80), g.SceneRect())
}
