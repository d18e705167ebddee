package render

import (
	"math"

	"nodegraph/internal/geom"
)

const (
	ZoomInFactor  = 1.25
	ZoomOutFactor = 0.8

	minZoom = 0.05
	maxZoom = 20
)

// Viewport maps scene coordinates to screen coordinates. Pan is the scene
// point shown at the screen origin.
type Viewport struct {
	Pan  geom.Point
	Zoom float64
}

// NewViewport returns an unpanned viewport at zoom 1.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ToScreen maps a scene point onto the screen.
func (v Viewport) ToScreen(p geom.Point) geom.Point {
	return p.Sub(v.Pan).Scale(v.zoom())
}

// ToScene maps a screen point into the scene.
func (v Viewport) ToScene(s geom.Point) geom.Point {
	return s.Scale(1 / v.zoom()).Add(v.Pan)
}

// Visible returns the scene region covered by a w by h screen.
func (v Viewport) Visible(w, h float64) geom.Rect {
	z := v.zoom()
	return geom.Rect{X: v.Pan.X, Y: v.Pan.Y, W: w / z, H: h / z}
}

// PanBy drags the canvas by d screen units.
func (v *Viewport) PanBy(d geom.Point) {
	v.Pan = v.Pan.Sub(d.Scale(1 / v.zoom()))
}

// ZoomBy scales by f while keeping the scene point under anchor (screen
// coordinates) fixed. The zoom is clamped to a sane range.
func (v *Viewport) ZoomBy(f float64, anchor geom.Point) {
	before := v.ToScene(anchor)
	v.Zoom = math.Max(minZoom, math.Min(maxZoom, v.zoom()*f))
	after := v.ToScene(anchor)
	v.Pan = v.Pan.Add(before.Sub(after))
}
