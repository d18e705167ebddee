// Package geom holds the float geometry shared by the scene model and its
// renderers. Entities only translate, so every space change is a sum of
// offsets.
package geom

import "math"

// Point is a position or offset in some coordinate space.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Eq reports exact equality. Position-change detection relies on it, no
// epsilon is applied.
func (p Point) Eq(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromPoints returns the smallest rect holding both corners.
func RectFromPoints(a, b Point) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) Right() float64 {
	return r.X + r.W
}

func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate moves the rect by offset d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Adjusted grows the top-left corner by (dx1, dy1) and the bottom-right
// corner by (dx2, dy2). Negative dx1/dy1 expand the rect outwards.
func (r Rect) Adjusted(dx1, dy1, dx2, dy2 float64) Rect {
	return Rect{X: r.X + dx1, Y: r.Y + dy1, W: r.W - dx1 + dx2, H: r.H - dy1 + dy2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// Union returns the smallest rect containing both rects. Empty rects are
// ignored so that a zero Rect can seed an accumulation.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.Right(), o.Right())
	maxY := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// MapToScene maps a point given in some entity's local space into scene
// space by applying each ancestor offset in turn, innermost first.
func MapToScene(local Point, offsets ...Point) Point {
	for _, off := range offsets {
		local = local.Add(off)
	}
	return local
}

// MapFromScene is the inverse of MapToScene.
func MapFromScene(scene Point, offsets ...Point) Point {
	for _, off := range offsets {
		scene = scene.Sub(off)
	}
	return scene
}
