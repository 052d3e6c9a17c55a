package term

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/treeflow/pkg/flow"
)

// Frame colors.
const (
	edgeColor        = "#8c8c8c"
	labelColor       = "#595959"
	previewColor     = "#2f54eb"
	placeholderColor = "#bfbfbf"
	controlsColor    = "#595959"
	defaultAccent    = "#d9d9d9"
)

type borderSet struct {
	tl, tr, bl, br, h, v rune
}

var (
	roundBorder = borderSet{'╭', '╮', '╰', '╯', '─', '│'}
	heavyBorder = borderSet{'┏', '┓', '┗', '┛', '━', '┃'}
	plainBorder = borderSet{'┌', '┐', '└', '┘', '─', '│'}
)

// Draw rasterizes s and styles it for the terminal. Call [Layout.Sync]
// with the same scene first so cards are in place.
func (l *Layout[T]) Draw(s flow.Scene[T], bg flow.Background, ctl flow.Controls) string {
	return l.Raster(s, bg, ctl).Styled(l.renderer)
}

// Raster draws s onto a grid the size of the screen. Layers are painted
// back to front: background grid, edges and labels, connection preview,
// cards, ports, controls.
func (l *Layout[T]) Raster(s flow.Scene[T], bg flow.Background, ctl flow.Controls) *Grid {
	cols, rows := l.screen.Size()
	g := NewGrid(cols, rows)
	m := l.screen.Metrics()

	drawBackground(g, m, bg.WithDefaults())
	for _, e := range s.Edges {
		drawEdge(g, m, e)
	}
	if s.Preview != nil {
		drawPreview(g, m, *s.Preview)
	}
	for _, id := range l.order {
		drawCard(g, l.cards[id].card)
	}
	for _, id := range l.order {
		cm := l.cards[id]
		for _, k := range cm.order {
			drawPort(g, cm.ports[k].port)
		}
	}
	drawControls(g, m, ctl)
	return g
}

func drawBackground(g *Grid, m Metrics, bg flow.Background) {
	stepX := max(1, int(math.Round(bg.Gap/m.CellWidth)))
	stepY := max(1, int(math.Round(bg.Gap/m.CellHeight)))
	for row := 0; row < g.rows; row += stepY {
		for col := 0; col < g.cols; col += stepX {
			g.Set(col, row, '·', bg.Color, false)
		}
	}
}

// line returns the cells from a to b inclusive.
func line(c0, r0, c1, r1 int) [][2]int {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	err := dc + dr
	var out [][2]int
	for {
		out = append(out, [2]int{c0, r0})
		if c0 == c1 && r0 == r1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dr {
			err += dr
			c0 += sc
		}
		if e2 <= dc {
			err += dc
			r0 += sr
		}
	}
}

func stroke(dc, dr int) rune {
	switch {
	case dr == 0:
		return '─'
	case dc == 0:
		return '│'
	case dc*dr > 0:
		return '╲'
	}
	return '╱'
}

func arrow(dc, dr int) rune {
	if abs(dr) >= abs(dc) {
		if dr > 0 {
			return '▼'
		}
		return '▲'
	}
	if dc > 0 {
		return '▶'
	}
	return '◀'
}

func drawEdge(g *Grid, m Metrics, e flow.EdgePath) {
	c0, r0 := m.Cell(e.From)
	c1, r1 := m.Cell(e.To)
	pts := line(c0, r0, c1, r1)

	// The end cells belong to the ports.
	for i := 1; i < len(pts)-1; i++ {
		p, prev := pts[i], pts[i-1]
		g.Set(p[0], p[1], stroke(p[0]-prev[0], p[1]-prev[1]), edgeColor, false)
	}
	if e.Edge.HasArrow() && len(pts) >= 3 {
		p, last := pts[len(pts)-2], pts[len(pts)-1]
		g.Set(p[0], p[1], arrow(last[0]-p[0], last[1]-p[1]), edgeColor, true)
	}
	if e.Edge.Label != "" {
		col, row := m.Cell(e.LabelAt)
		g.Text(col-runewidth.StringWidth(e.Edge.Label)/2, row, e.Edge.Label, labelColor, false)
	}
}

func drawPreview(g *Grid, m Metrics, s flow.Segment) {
	c0, r0 := m.Cell(s.From)
	c1, r1 := m.Cell(s.To)
	pts := line(c0, r0, c1, r1)
	for i := 1; i < len(pts); i++ {
		if i%2 == 0 {
			continue
		}
		p, prev := pts[i], pts[i-1]
		g.Set(p[0], p[1], stroke(p[0]-prev[0], p[1]-prev[1]), previewColor, true)
	}
}

func drawCard(g *Grid, c *Card) {
	color := c.content.Accent
	if color == "" {
		color = defaultAccent
	}
	b := roundBorder
	switch {
	case c.inert:
		b, color = plainBorder, placeholderColor
	case c.selected:
		b = heavyBorder
	}

	x0, y0 := c.col, c.row
	x1, y1 := c.col+c.cols-1, c.row+c.rows-1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			var r rune = ' '
			switch {
			case y == y0 && x == x0:
				r = b.tl
			case y == y0 && x == x1:
				r = b.tr
			case y == y1 && x == x0:
				r = b.bl
			case y == y1 && x == x1:
				r = b.br
			case y == y0 || y == y1:
				r = b.h
			case x == x0 || x == x1:
				r = b.v
			}
			g.Set(x, y, r, color, c.selected)
		}
	}

	title := runewidth.Truncate(c.content.Title, c.innerCols, "…")
	g.Text(x0+2, y0+1, title, "", true)
	for i, ln := range c.content.Lines {
		g.Text(x0+2, y0+2+i, ln, labelColor, false)
	}
}

func drawPort(g *Grid, p *Port) {
	col, row, ok := p.Cell()
	if !ok {
		return
	}
	glyph := '●'
	if p.spec.Type == flow.HandleTarget {
		glyph = '○'
	}
	color := p.spec.Color
	if color == "" {
		color = p.card.content.Accent
	}
	g.Set(col, row, glyph, color, true)
}

func drawControls(g *Grid, m Metrics, ctl flow.Controls) {
	const w = 3
	h := len(flow.ControlButtons)
	origin := ctl.Origin(float64(g.cols)*m.CellWidth, float64(g.rows)*m.CellHeight, w*m.CellWidth, float64(h)*m.CellHeight)
	col, row := m.Nearest(origin)
	for i, btn := range flow.ControlButtons {
		g.Text(col, row+i, "["+btn+"]", controlsColor, false)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
