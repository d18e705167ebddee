package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"nodegraph/internal/geom"
	"nodegraph/internal/scene"
)

// ErrNothingToExport is returned for an empty snapshot.
var ErrNothingToExport = errors.New("render: nothing to export")

const maxImageSide = 8192

// PNGOptions controls raster export.
type PNGOptions struct {
	// Scale is the number of pixels per scene unit.
	Scale float64
	// Padding is added around the drawing, in scene units.
	Padding float64
	// FontSize is the title size in scene units.
	FontSize float64
	// Grid is the background grid spacing in scene units. Zero picks
	// DefaultGrid; a negative spacing turns the grid off.
	Grid float64
}

// DefaultPNGOptions renders at four pixels per scene unit.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Scale: 4, Padding: 20, FontSize: 7, Grid: DefaultGrid}
}

var (
	bodyFill   = color.RGBA{0xf2, 0xf2, 0xf2, 0xff}
	headerFill = color.RGBA{0x4a, 0x6f, 0xa5, 0xff}
	outline    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	socketFill = color.RGBA{0x2e, 0x8b, 0x57, 0xff}
	plugFill   = color.RGBA{0xd2, 0x69, 0x1e, 0xff}
	wireColor  = color.RGBA{0x22, 0x22, 0x22, 0xff}
	gridColor  = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	titleColor = color.White
	background = color.White
)

// exportBounds unions every node shape and connection region.
func exportBounds(s scene.Snapshot) geom.Rect {
	var r geom.Rect
	for _, n := range s.Nodes {
		r = r.Union(n.Shape)
	}
	for _, c := range s.Connections {
		r = r.Union(c.Region)
	}
	return r
}

// DrawPNG renders the snapshot into an image.
func DrawPNG(s scene.Snapshot, opts PNGOptions) (image.Image, error) {
	if len(s.Nodes) == 0 && len(s.Connections) == 0 {
		return nil, ErrNothingToExport
	}
	def := DefaultPNGOptions()
	if opts.Scale <= 0 {
		opts.Scale = def.Scale
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	if opts.Grid == 0 {
		opts.Grid = DefaultGrid
	}

	bounds := exportBounds(s).Adjusted(-opts.Padding, -opts.Padding, opts.Padding, opts.Padding)
	if bounds.Empty() {
		return nil, ErrNothingToExport
	}
	scale := opts.Scale
	if side := math.Max(bounds.W, bounds.H) * scale; side > maxImageSide {
		scale *= maxImageSide / side
	}
	width := int(math.Ceil(bounds.W * scale))
	height := int(math.Ceil(bounds.H * scale))

	px := func(p geom.Point) (float64, float64) {
		return (p.X - bounds.X) * scale, (p.Y - bounds.Y) * scale
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	if opts.Grid > 0 {
		drawGridPNG(dc, bounds, opts.Grid, px, scale)
	}

	// Connections go first so nodes cover their ends.
	dc.SetColor(wireColor)
	dc.SetLineWidth(math.Max(1, 0.5*scale))
	for _, c := range s.Connections {
		if c.Kind == KindDashed {
			dc.SetDash(3*scale, 2*scale)
		}
		x0, y0 := px(c.Path.P0)
		x1, y1 := px(c.Path.C1)
		x2, y2 := px(c.Path.C2)
		x3, y3 := px(c.Path.P3)
		dc.NewSubPath()
		dc.MoveTo(x0, y0)
		dc.CubicTo(x1, y1, x2, y2, x3, y3)
		dc.Stroke()
		dc.SetDash()
	}

	for _, n := range s.Nodes {
		drawNodePNG(dc, s, n, px, scale)
	}

	return dc.Image(), nil
}

// drawGridPNG strokes the grid lines crossing bounds.
func drawGridPNG(dc *gg.Context, bounds geom.Rect, step float64, px func(geom.Point) (float64, float64), scale float64) {
	if step*scale < 4 {
		return
	}
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	for x := math.Ceil(bounds.X/step) * step; x <= bounds.Right(); x += step {
		x0, y0 := px(geom.Pt(x, bounds.Y))
		x1, y1 := px(geom.Pt(x, bounds.Bottom()))
		dc.DrawLine(x0, y0, x1, y1)
	}
	for y := math.Ceil(bounds.Y/step) * step; y <= bounds.Bottom(); y += step {
		x0, y0 := px(geom.Pt(bounds.X, y))
		x1, y1 := px(geom.Pt(bounds.Right(), y))
		dc.DrawLine(x0, y0, x1, y1)
	}
	dc.Stroke()
}

func drawNodePNG(dc *gg.Context, s scene.Snapshot, n scene.NodeView, px func(geom.Point) (float64, float64), scale float64) {
	x, y := px(n.Bounds.Origin())
	w, h := n.Bounds.W*scale, n.Bounds.H*scale
	radius := n.Style.CornerRadius * scale

	dc.DrawRoundedRectangle(x, y, w, h, radius)
	dc.SetColor(bodyFill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(math.Max(1, 0.25*scale))
	dc.Stroke()
	if n.Kind == KindDouble {
		inset := math.Max(1, 0.75*scale)
		dc.DrawRoundedRectangle(x+inset, y+inset, w-2*inset, h-2*inset, math.Max(radius-inset, 0))
		dc.Stroke()
	}

	if n.Style.HeaderHeight > 0 {
		replay(dc, geom.HeaderOutline(n.Bounds, n.Style.HeaderHeight, n.Style.CornerRadius), px, scale)
		dc.SetColor(headerFill)
		dc.Fill()

		if n.Title != "" {
			cx, cy := px(geom.Pt(n.Bounds.Center().X, n.Bounds.Y+n.Style.HeaderHeight/2))
			dc.SetColor(titleColor)
			dc.DrawStringAnchored(n.Title, cx, cy, 0.5, 0.35)
		}
	}

	for _, id := range n.Sockets {
		drawPortPNG(dc, s, id, socketFill, px, scale)
	}
	for _, id := range n.Plugs {
		drawPortPNG(dc, s, id, plugFill, px, scale)
	}
}

func drawPortPNG(dc *gg.Context, s scene.Snapshot, id scene.PortID, fill color.Color, px func(geom.Point) (float64, float64), scale float64) {
	p, ok := s.Port(id)
	if !ok {
		return
	}
	cx, cy := px(p.Center)
	r := p.Rect.W / 2 * scale
	switch p.Kind {
	case KindDiamond:
		dc.MoveTo(cx, cy-r)
		dc.LineTo(cx+r, cy)
		dc.LineTo(cx, cy+r)
		dc.LineTo(cx-r, cy)
		dc.ClosePath()
	case KindSquare:
		dc.DrawRectangle(cx-r, cy-r, 2*r, 2*r)
	default:
		dc.DrawCircle(cx, cy, r)
	}
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(math.Max(1, 0.25*scale))
	dc.Stroke()
}

// replay feeds a geom.Path to the gg context.
func replay(dc *gg.Context, path geom.Path, px func(geom.Point) (float64, float64), scale float64) {
	dc.NewSubPath()
	for _, seg := range path {
		switch seg.Op {
		case geom.MoveTo:
			dc.MoveTo(px(seg.Pt))
		case geom.LineTo:
			dc.LineTo(px(seg.Pt))
		case geom.ArcTo:
			cx, cy := px(seg.Center)
			dc.DrawArc(cx, cy, seg.Radius*scale, seg.A0, seg.A1)
		case geom.Close:
			dc.ClosePath()
		}
	}
}

// ExportPNG renders the snapshot and writes it to path.
func ExportPNG(s scene.Snapshot, path string, opts PNGOptions) error {
	img, err := DrawPNG(s, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
