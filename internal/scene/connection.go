package scene

import "nodegraph/internal/geom"

const (
	// RegionMargin pads a connection's path bounds on every side.
	RegionMargin = 10.0
	// HitWidth is the stroke width of the clickable outline of a connection.
	HitWidth = 10.0
)

// CurveStyle selects how a connection's path is shaped.
type CurveStyle int

const (
	CurveCubic CurveStyle = iota
	CurveStraight
)

// Connection links a plug (source) to a socket (destination). Either end
// may be NoPort for a connection still being drawn.
type Connection struct {
	ID          ConnID
	Source      PortID
	Destination PortID
	Kind        string
	Curve       CurveStyle

	srcPos   geom.Point
	dstPos   geom.Point
	path     geom.Cubic
	rebuilds int
}

// SetSourcePosition updates the cached source end. The path is rebuilt
// only when p differs from the cached value; the result reports a rebuild.
func (c *Connection) SetSourcePosition(p geom.Point) bool {
	if p.Eq(c.srcPos) {
		return false
	}
	c.srcPos = p
	c.rebuild()
	return true
}

// SetDestinationPosition is SetSourcePosition for the destination end.
func (c *Connection) SetDestinationPosition(p geom.Point) bool {
	if p.Eq(c.dstPos) {
		return false
	}
	c.dstPos = p
	c.rebuild()
	return true
}

func (c *Connection) rebuild() {
	if c.Curve == CurveStraight {
		c.path = geom.Line(c.dstPos, c.srcPos)
	} else {
		c.path = geom.ConnectorCurve(c.dstPos, c.srcPos)
	}
	c.rebuilds++
}

func (c *Connection) SourcePosition() geom.Point {
	return c.srcPos
}

func (c *Connection) DestinationPosition() geom.Point {
	return c.dstPos
}

// Path returns the curve from the destination to the source.
func (c *Connection) Path() geom.Cubic {
	return c.path
}

// Rebuilds counts how many times the path has been recomputed.
func (c *Connection) Rebuilds() int {
	return c.rebuilds
}

// BoundingRegion is the path bounds grown by RegionMargin.
func (c *Connection) BoundingRegion() geom.Rect {
	return c.path.Bounds().Adjusted(-RegionMargin, -RegionMargin, RegionMargin, RegionMargin)
}

// Contains hit-tests p against the path stroked at HitWidth.
func (c *Connection) Contains(p geom.Point) bool {
	return geom.StrokeContains(c.path, p, HitWidth)
}
