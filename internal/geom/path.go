package geom

import "math"

// Op identifies a path command.
type Op int

const (
	MoveTo Op = iota
	LineTo
	ArcTo
	Close
)

// Segment is one path command. ArcTo draws a circular arc around Center
// with Radius from angle A0 to A1 (radians, clockwise in screen space).
type Segment struct {
	Op     Op
	Pt     Point
	Center Point
	Radius float64
	A0     float64
	A1     float64
}

// Path is an ordered list of segments that renderers replay.
type Path []Segment

// HeaderOutline returns the outline of a node's header band: the two top
// corners rounded with radius, the sides running straight down to the
// header's bottom edge, and a straight bottom edge.
func HeaderOutline(r Rect, header, radius float64) Path {
	radius = math.Max(0, math.Min(radius, math.Min(r.W/2, header)))
	bottom := r.Y + header
	return Path{
		{Op: MoveTo, Pt: Point{X: r.X, Y: bottom}},
		{Op: LineTo, Pt: Point{X: r.X, Y: r.Y + radius}},
		{Op: ArcTo, Center: Point{X: r.X + radius, Y: r.Y + radius}, Radius: radius, A0: math.Pi, A1: 1.5 * math.Pi},
		{Op: LineTo, Pt: Point{X: r.Right() - radius, Y: r.Y}},
		{Op: ArcTo, Center: Point{X: r.Right() - radius, Y: r.Y + radius}, Radius: radius, A0: 1.5 * math.Pi, A1: 2 * math.Pi},
		{Op: LineTo, Pt: Point{X: r.Right(), Y: bottom}},
		{Op: Close},
	}
}

// Bounds returns the box spanned by the path's points and arc extents.
func (p Path) Bounds() Rect {
	var out Rect
	first := true
	add := func(q Point) {
		if first {
			out = Rect{X: q.X, Y: q.Y}
			first = false
			return
		}
		minX, minY := math.Min(out.X, q.X), math.Min(out.Y, q.Y)
		maxX, maxY := math.Max(out.Right(), q.X), math.Max(out.Bottom(), q.Y)
		out = Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	}
	for _, s := range p {
		switch s.Op {
		case MoveTo, LineTo:
			add(s.Pt)
		case ArcTo:
			add(s.Center.Add(Point{X: s.Radius * math.Cos(s.A0), Y: s.Radius * math.Sin(s.A0)}))
			add(s.Center.Add(Point{X: s.Radius * math.Cos(s.A1), Y: s.Radius * math.Sin(s.A1)}))
		}
	}
	return out
}
