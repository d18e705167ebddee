package geom

import "math"

// Cubic is a cubic Bézier segment from P0 to P3.
type Cubic struct {
	P0 Point
	C1 Point
	C2 Point
	P3 Point
}

// ConnectorCurve builds the S-shaped curve that leaves dst and enters src
// horizontally. The curve starts at dst and ends at src.
func ConnectorCurve(dst, src Point) Cubic {
	return Cubic{
		P0: dst,
		C1: Point{X: (2*dst.X + src.X) / 3, Y: dst.Y},
		C2: Point{X: (2*src.X + dst.X) / 3, Y: src.Y},
		P3: src,
	}
}

// Line expresses a straight segment as a degenerate cubic so both curve
// styles share evaluation, bounds and hit-testing.
func Line(dst, src Point) Cubic {
	return Cubic{
		P0: dst,
		C1: dst.Add(src.Sub(dst).Scale(1.0 / 3)),
		C2: dst.Add(src.Sub(dst).Scale(2.0 / 3)),
		P3: src,
	}
}

// At evaluates the curve at parameter t in [0, 1].
func (c Cubic) At(t float64) Point {
	if t == 0 {
		return c.P0
	}
	if t == 1 {
		return c.P3
	}
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.C1.X + d*c.C2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.C1.Y + d*c.C2.Y + e*c.P3.Y,
	}
}

// Bounds returns the tight bounding box of the curve, using the roots of
// the derivative on each axis.
func (c Cubic) Bounds() Rect {
	minX, maxX := math.Min(c.P0.X, c.P3.X), math.Max(c.P0.X, c.P3.X)
	minY, maxY := math.Min(c.P0.Y, c.P3.Y), math.Max(c.P0.Y, c.P3.Y)
	for _, t := range extrema(c.P0.X, c.C1.X, c.C2.X, c.P3.X) {
		x := c.At(t).X
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
	}
	for _, t := range extrema(c.P0.Y, c.C1.Y, c.C2.Y, c.P3.Y) {
		y := c.At(t).Y
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// extrema returns parameters in (0, 1) where the 1-D cubic has a zero
// derivative.
func extrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	k := p1 - p0

	var roots []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	const tiny = 1e-12
	if math.Abs(a) < tiny {
		if math.Abs(b) > tiny {
			keep(-k / b)
		}
		return roots
	}
	disc := b*b - 4*a*k
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	keep((-b - sq) / (2 * a))
	return roots
}

// Flatten samples the curve into n+1 points, endpoints included.
func (c Cubic) Flatten(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.At(float64(i)/float64(n)))
	}
	return pts
}

// Length approximates the arc length from a fixed sampling.
func (c Cubic) Length() float64 {
	pts := c.Flatten(32)
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i-1].Dist(pts[i])
	}
	return l
}

// StrokeContains reports whether p falls inside the outline obtained by
// stroking c with the given width.
func StrokeContains(c Cubic, p Point, width float64) bool {
	half := width / 2
	if !c.Bounds().Adjusted(-half, -half, half, half).Contains(p) {
		return false
	}
	n := int(math.Ceil(c.Length() / half))
	if n < 8 {
		n = 8
	}
	pts := c.Flatten(n)
	for i := 1; i < len(pts); i++ {
		if segmentDist(pts[i-1], pts[i], p) <= half {
			return true
		}
	}
	return false
}

func segmentDist(a, b, p Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return a.Dist(p)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t)).Dist(p)
}
