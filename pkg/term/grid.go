package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell is one character cell. Rune 0 marks the second half of a
// double-width character.
type cell struct {
	r     rune
	color string
	bold  bool
}

// Grid is a rasterized frame.
type Grid struct {
	cols, rows int
	cells      []cell
}

// NewGrid returns a blank grid.
func NewGrid(cols, rows int) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	g := &Grid{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	return g
}

// Size returns the grid size in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

func (g *Grid) in(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// At returns the rune at a cell, or 0 outside the grid and on the second
// half of a wide character.
func (g *Grid) At(col, row int) rune {
	if !g.in(col, row) {
		return 0
	}
	return g.cells[row*g.cols+col].r
}

// Set writes one rune and returns its display width.
func (g *Grid) Set(col, row int, r rune, color string, bold bool) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = 1
	}
	if !g.in(col, row) || (w == 2 && !g.in(col+1, row)) {
		return w
	}
	g.clear(col, row)
	g.cells[row*g.cols+col] = cell{r: r, color: color, bold: bold}
	if w == 2 {
		g.clear(col+1, row)
		g.cells[row*g.cols+col+1] = cell{r: 0, color: color, bold: bold}
	}
	return w
}

// clear blanks the partner of a wide character that is about to be
// overwritten at (col, row).
func (g *Grid) clear(col, row int) {
	i := row*g.cols + col
	switch {
	case g.cells[i].r == 0 && col > 0:
		g.cells[i-1].r = ' '
	case col+1 < g.cols && g.cells[i+1].r == 0 && runewidth.RuneWidth(g.cells[i].r) == 2:
		g.cells[i+1].r = ' '
	}
}

// Text writes s starting at a cell and returns the columns used.
func (g *Grid) Text(col, row int, s, color string, bold bool) int {
	used := 0
	for _, r := range s {
		used += g.Set(col+used, row, r, color, bold)
	}
	return used
}

// Plain returns the frame without styling, rows separated by newlines.
func (g *Grid) Plain() string {
	var b strings.Builder
	for row := range g.rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range g.cols {
			if r := g.cells[row*g.cols+col].r; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Styled renders the frame with lipgloss, one style per run of cells that
// share a color and weight.
func (g *Grid) Styled(r *lipgloss.Renderer) string {
	var b strings.Builder
	var run strings.Builder
	flush := func(c cell) {
		if run.Len() == 0 {
			return
		}
		if c.color == "" && !c.bold {
			b.WriteString(run.String())
		} else {
			st := r.NewStyle().Bold(c.bold)
			if c.color != "" {
				st = st.Foreground(lipgloss.Color(c.color))
			}
			b.WriteString(st.Render(run.String()))
		}
		run.Reset()
	}

	for row := range g.rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		var cur cell
		for col := range g.cols {
			c := g.cells[row*g.cols+col]
			if c.r == 0 {
				continue
			}
			if c.color != cur.color || c.bold != cur.bold {
				flush(cur)
				cur = c
			}
			run.WriteRune(c.r)
		}
		flush(cur)
	}
	return b.String()
}
