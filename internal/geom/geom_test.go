package geom

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectCenter(t *testing.T) {
	assert.Equal(t, Pt(5, 5), R(0, 0, 10, 10).Center())
	assert.Equal(t, Pt(15, 30), R(10, 20, 10, 20).Center())
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"disjoint", R(0, 0, 10, 10), R(20, 20, 5, 5), R(0, 0, 25, 25)},
		{"nested", R(0, 0, 50, 50), R(10, 10, 5, 5), R(0, 0, 50, 50)},
		{"empty left", Rect{}, R(3, 4, 5, 6), R(3, 4, 5, 6)},
		{"empty right", R(3, 4, 5, 6), Rect{}, R(3, 4, 5, 6)},
		{"overhang", R(0, 0, 50, 50), R(-5, 15, 10, 10), R(-5, 0, 55, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Union(tt.b))
		})
	}
}

func TestRectAdjusted(t *testing.T) {
	r := R(0, 0, 10, 10).Adjusted(-10, -10, 10, 10)
	assert.Equal(t, R(-10, -10, 30, 30), r)
}

func TestRectContainsAndIntersects(t *testing.T) {
	r := R(0, 0, 10, 10)
	assert.True(t, r.Contains(Pt(0, 0)))
	assert.True(t, r.Contains(Pt(10, 10)))
	assert.False(t, r.Contains(Pt(10.5, 5)))
	assert.True(t, r.Intersects(R(5, 5, 10, 10)))
	assert.False(t, r.Intersects(R(11, 0, 2, 2)))
}

func TestMapToScene(t *testing.T) {
	// port-local center -> node-local -> scene
	local := R(0, 0, 10, 10).Center()
	p := MapToScene(local, Pt(-5, 15), Pt(100, 40))
	assert.Equal(t, Pt(100, 60), p)
	assert.Equal(t, local, MapFromScene(p, Pt(-5, 15), Pt(100, 40)))
}

func TestConnectorCurveControlPoints(t *testing.T) {
	c := ConnectorCurve(Pt(0, 0), Pt(90, 30))
	assert.Equal(t, Pt(30, 0), c.C1)
	assert.Equal(t, Pt(60, 30), c.C2)
}

func TestCurveEndpoints(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-1e4, 1e4)
	properties.Property("cubic starts at destination and ends at source", prop.ForAll(
		func(dx, dy, sx, sy float64) bool {
			c := ConnectorCurve(Pt(dx, dy), Pt(sx, sy))
			return c.At(0).Eq(Pt(dx, dy)) && c.At(1).Eq(Pt(sx, sy))
		},
		coord, coord, coord, coord,
	))
	properties.Property("straight line starts at destination and ends at source", prop.ForAll(
		func(dx, dy, sx, sy float64) bool {
			c := Line(Pt(dx, dy), Pt(sx, sy))
			return c.At(0).Eq(Pt(dx, dy)) && c.At(1).Eq(Pt(sx, sy))
		},
		coord, coord, coord, coord,
	))
	properties.Property("bounds cover every sample", prop.ForAll(
		func(dx, dy, sx, sy float64) bool {
			c := ConnectorCurve(Pt(dx, dy), Pt(sx, sy))
			b := c.Bounds().Adjusted(-1e-6, -1e-6, 1e-6, 1e-6)
			for _, p := range c.Flatten(64) {
				if !b.Contains(p) {
					return false
				}
			}
			return true
		},
		coord, coord, coord, coord,
	))

	properties.TestingRun(t)
}

func TestCurveMidpointIsSymmetric(t *testing.T) {
	c := ConnectorCurve(Pt(0, 0), Pt(100, 100))
	mid := c.At(0.5)
	assert.InDelta(t, 50, mid.X, 1e-9)
	assert.InDelta(t, 50, mid.Y, 1e-9)
}

func TestStrokeContains(t *testing.T) {
	c := ConnectorCurve(Pt(0, 0), Pt(100, 0))
	assert.True(t, StrokeContains(c, Pt(50, 4), 10))
	assert.False(t, StrokeContains(c, Pt(50, 6), 10))
	assert.False(t, StrokeContains(c, Pt(200, 0), 10))

	s := ConnectorCurve(Pt(0, 0), Pt(100, 100))
	assert.True(t, StrokeContains(s, s.At(0.3), 10))
}

func TestHeaderOutline(t *testing.T) {
	p := HeaderOutline(R(0, 0, 50, 50), 10, 5)
	require.Len(t, p, 7)
	assert.Equal(t, MoveTo, p[0].Op)
	assert.Equal(t, Pt(0, 10), p[0].Pt)
	assert.Equal(t, Pt(50, 10), p[5].Pt)
	assert.Equal(t, Close, p[6].Op)
	assert.Equal(t, R(0, 0, 50, 10), p.Bounds())

	// radius is clamped so the corners never exceed the header band
	q := HeaderOutline(R(0, 0, 50, 50), 4, 20)
	assert.Equal(t, 4.0, q[2].Radius)
	assert.InDelta(t, 0, q.Bounds().Y, 1e-9)
	assert.False(t, math.IsNaN(q.Bounds().W))
}
