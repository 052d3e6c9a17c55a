package term

import "github.com/matzehuels/treeflow/pkg/flow"

// Card is the rendered box of one node, in cells.
type Card struct {
	metrics   Metrics
	col, row  int
	cols      int
	rows      int
	placed    bool
	content   flow.NodeContent
	selected  bool
	inert     bool
	innerCols int
}

// Bounds implements [flow.Surface]. A card is measurable once placed.
func (c *Card) Bounds() (flow.Rect, bool) {
	if !c.placed {
		return flow.Rect{}, false
	}
	return c.metrics.Rect(c.col, c.row, c.cols, c.rows), true
}

// Cells returns the card's position and size in cells.
func (c *Card) Cells() (col, row, cols, rows int) { return c.col, c.row, c.cols, c.rows }

// Content returns what the card shows, lines already truncated.
func (c *Card) Content() flow.NodeContent { return c.content }

// Selected reports whether the card is drawn as selected.
func (c *Card) Selected() bool { return c.selected }

// Placeholder reports whether the card stands in for a node without a
// component.
func (c *Card) Placeholder() bool { return c.inert }

// Contains reports whether the cell lies on the card.
func (c *Card) Contains(col, row int) bool {
	return c.placed && col >= c.col && col < c.col+c.cols && row >= c.row && row < c.row+c.rows
}

// place moves the card and reports whether its box changed.
func (c *Card) place(col, row, cols, rows int) bool {
	changed := !c.placed || c.col != col || c.row != row || c.cols != cols || c.rows != rows
	c.col, c.row, c.cols, c.rows = col, row, cols, rows
	c.placed = true
	return changed
}

// Port is a handle drawn as one cell on the border of its card.
type Port struct {
	card *Card
	spec flow.HandleSpec
}

// Cell returns the cell the port occupies.
func (p *Port) Cell() (col, row int, ok bool) {
	c := p.card
	if !c.placed {
		return 0, 0, false
	}
	switch p.spec.Side {
	case flow.Top:
		return c.col + c.cols/2, c.row, true
	case flow.Bottom:
		return c.col + c.cols/2, c.row + c.rows - 1, true
	case flow.Left:
		return c.col, c.row + c.rows/2, true
	case flow.Right:
		return c.col + c.cols - 1, c.row + c.rows/2, true
	}
	return c.col + c.cols/2, c.row + c.rows/2, true
}

// Bounds implements [flow.Surface].
func (p *Port) Bounds() (flow.Rect, bool) {
	col, row, ok := p.Cell()
	if !ok {
		return flow.Rect{}, false
	}
	return p.card.metrics.Rect(col, row, 1, 1), true
}

// Spec returns the handle the port draws.
func (p *Port) Spec() flow.HandleSpec { return p.spec }
