// Package render draws scene snapshots for a host: as rune rows for a
// terminal, or as a PNG through gg.
package render

import (
	"math"
	"slices"

	"nodegraph/internal/geom"
	"nodegraph/internal/scene"
)

// Marks are the host's selection state to highlight while drawing.
type Marks struct {
	Node       scene.NodeID
	HasNode    bool
	Port       scene.PortID
	Connection scene.ConnID
	HasConn    bool
	// Preview, when set, is drawn as a pending connection.
	Preview    *geom.Cubic
	Cursor     geom.Point
	ShowCursor bool
}

// NoMarks highlights nothing.
func NoMarks() Marks {
	return Marks{Port: scene.NoPort}
}

// DefaultGrid is the background grid spacing in scene units.
const DefaultGrid = 100

// Terminal rasterizes snapshots into character cells. Each cell covers
// CellW by CellH screen units. Grid is the spacing of the background
// grid in scene units; zero turns it off.
type Terminal struct {
	CellW float64
	CellH float64
	Grid  float64
}

// NewTerminal returns a rasterizer with the given cell size, falling back
// to 5 by 10 screen units per cell, and the default grid.
func NewTerminal(cellW, cellH float64) Terminal {
	if cellW <= 0 {
		cellW = 5
	}
	if cellH <= 0 {
		cellH = 10
	}
	return Terminal{CellW: cellW, CellH: cellH, Grid: DefaultGrid}
}

type grid [][]rune

func newGrid(cols, rows int) grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := make(grid, rows)
	for i := range g {
		g[i] = make([]rune, cols)
		for j := range g[i] {
			g[i][j] = ' '
		}
	}
	return g
}

func (g grid) set(col, row int, r rune) {
	if row >= 0 && row < len(g) && col >= 0 && col < len(g[row]) {
		g[row][col] = r
	}
}

func (g grid) lines() []string {
	out := make([]string, len(g))
	for i, row := range g {
		out[i] = string(row)
	}
	return out
}

// Cell returns the cell holding scene point p.
func (t Terminal) Cell(v Viewport, p geom.Point) (col, row int) {
	s := v.ToScreen(p)
	return int(math.Floor(s.X / t.CellW)), int(math.Floor(s.Y / t.CellH))
}

// ScenePoint returns the scene point at the center of a cell.
func (t Terminal) ScenePoint(v Viewport, col, row int) geom.Point {
	return v.ToScene(geom.Pt((float64(col)+0.5)*t.CellW, (float64(row)+0.5)*t.CellH))
}

// ScreenSize returns the screen extent of a cols by rows grid.
func (t Terminal) ScreenSize(cols, rows int) (w, h float64) {
	return float64(cols) * t.CellW, float64(rows) * t.CellH
}

// Render draws the background grid, connections, then nodes in paint
// order with their ports, then the cursor.
func (t Terminal) Render(s scene.Snapshot, v Viewport, cols, rows int, m Marks) []string {
	g := newGrid(cols, rows)
	t.drawGrid(g, v, cols, rows)

	for _, c := range s.Connections {
		ch := wireGlyph(c.Kind)
		if m.HasConn && c.ID == m.Connection {
			ch = '*'
		}
		t.drawCurve(g, v, c.Path, ch)
	}
	if m.Preview != nil {
		t.drawCurve(g, v, *m.Preview, '∙')
	}

	for _, n := range s.Nodes {
		t.drawNode(g, v, n, m.HasNode && n.ID == m.Node)
		for _, id := range slices.Concat(n.Sockets, n.Plugs) {
			p, ok := s.Port(id)
			if !ok {
				continue
			}
			ch := portGlyph(p.Kind)
			if id == m.Port {
				ch = '●'
			}
			col, row := t.Cell(v, p.Center)
			g.set(col, row, ch)
		}
	}

	if m.ShowCursor {
		col, row := t.Cell(v, m.Cursor)
		g.set(col, row, '█')
	}
	return g.lines()
}

// drawGrid marks the grid intersections inside the visible area. Grids
// denser than one line per two cells are skipped.
func (t Terminal) drawGrid(g grid, v Viewport, cols, rows int) {
	if t.Grid <= 0 {
		return
	}
	step := t.Grid * v.Zoom
	if step < 2*t.CellW || step < 2*t.CellH {
		return
	}
	w, h := t.ScreenSize(cols, rows)
	area := v.Visible(w, h)
	for y := math.Ceil(area.Y/t.Grid) * t.Grid; y < area.Bottom(); y += t.Grid {
		for x := math.Ceil(area.X/t.Grid) * t.Grid; x < area.Right(); x += t.Grid {
			col, row := t.Cell(v, geom.Pt(x, y))
			g.set(col, row, '+')
		}
	}
}

func (t Terminal) drawCurve(g grid, v Viewport, c geom.Cubic, ch rune) {
	a := v.ToScreen(c.P0)
	b := v.ToScreen(c.P3)
	span := math.Abs(a.X-b.X)/t.CellW + math.Abs(a.Y-b.Y)/t.CellH
	n := int(math.Ceil(span * 2))
	if n < 1 {
		n = 1
	}
	if n > 4096 {
		n = 4096
	}
	for _, p := range c.Flatten(n) {
		col, row := t.Cell(v, p)
		g.set(col, row, ch)
	}
}

func (t Terminal) drawNode(g grid, v Viewport, n scene.NodeView, selected bool) {
	x0, y0 := t.Cell(v, n.Bounds.Origin())
	x1, y1 := t.Cell(v, geom.Pt(n.Bounds.Right(), n.Bounds.Bottom()))
	if x1 <= x0 || y1 <= y0 {
		g.set(x0, y0, '▪')
		return
	}

	b, ok := nodeBorders[n.Kind]
	switch {
	case selected:
		b = heavyBorder
	case ok:
	case n.Style.CornerRadius > 0:
		b = roundBorder
	default:
		b = lightBorder
	}
	if !n.Editable {
		b.h, b.v = '╌', '╎'
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case y == y0 && x == x0:
				g.set(x, y, b.tl)
			case y == y0 && x == x1:
				g.set(x, y, b.tr)
			case y == y1 && x == x0:
				g.set(x, y, b.bl)
			case y == y1 && x == x1:
				g.set(x, y, b.br)
			case y == y0 || y == y1:
				g.set(x, y, b.h)
			case x == x0 || x == x1:
				g.set(x, y, b.v)
			default:
				g.set(x, y, ' ')
			}
		}
	}

	_, hy := t.Cell(v, geom.Pt(n.Bounds.X, n.Bounds.Y+n.Style.HeaderHeight))
	if hy > y0 && hy < y1 {
		g.set(x0, hy, b.lt)
		g.set(x1, hy, b.rt)
		for x := x0 + 1; x < x1; x++ {
			g.set(x, hy, b.h)
		}
	}

	title := []rune(n.Title)
	room := x1 - x0 - 1
	if len(title) > room {
		title = title[:max(room, 0)]
	}
	// a header without an interior row carries the title in the top border
	ty := y0
	switch {
	case hy > y0+1 && hy < y1:
		ty = y0 + (hy-y0)/2
	case (hy <= y0 || hy >= y1) && y0+1 < y1:
		ty = y0 + 1
	}
	if ty < y1 {
		start := x0 + 1 + (room-len(title))/2
		for i, r := range title {
			g.set(start+i, ty, r)
		}
	}
}

type border struct {
	tl, tr, bl, br, h, v, lt, rt rune
}

var (
	lightBorder = border{'┌', '┐', '└', '┘', '─', '│', '├', '┤'}
	roundBorder = border{'╭', '╮', '╰', '╯', '─', '│', '├', '┤'}
	heavyBorder = border{'┏', '┓', '┗', '┛', '━', '┃', '┣', '┫'}
)
