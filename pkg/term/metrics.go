package term

import (
	"math"

	"github.com/matzehuels/treeflow/pkg/flow"
)

// Metrics is the pixel size of one terminal cell.
type Metrics struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultMetrics matches a typical monospace font.
var DefaultMetrics = Metrics{CellWidth: 10, CellHeight: 20}

func (m Metrics) valid() Metrics {
	if m.CellWidth <= 0 {
		m.CellWidth = DefaultMetrics.CellWidth
	}
	if m.CellHeight <= 0 {
		m.CellHeight = DefaultMetrics.CellHeight
	}
	return m
}

// Cell returns the cell containing p.
func (m Metrics) Cell(p flow.XYPosition) (col, row int) {
	return int(math.Floor(p.X / m.CellWidth)), int(math.Floor(p.Y / m.CellHeight))
}

// Nearest returns the cell whose top-left corner is closest to p.
func (m Metrics) Nearest(p flow.XYPosition) (col, row int) {
	return int(math.Round(p.X / m.CellWidth)), int(math.Round(p.Y / m.CellHeight))
}

// Center returns the pixel center of a cell.
func (m Metrics) Center(col, row int) flow.XYPosition {
	return flow.XYPosition{X: (float64(col) + 0.5) * m.CellWidth, Y: (float64(row) + 0.5) * m.CellHeight}
}

// Rect returns the pixel box of a cols×rows block starting at (col, row).
func (m Metrics) Rect(col, row, cols, rows int) flow.Rect {
	return flow.Rect{
		X:      float64(col) * m.CellWidth,
		Y:      float64(row) * m.CellHeight,
		Width:  float64(cols) * m.CellWidth,
		Height: float64(rows) * m.CellHeight,
	}
}

// Screen is the terminal window, used as the canvas container. Its origin
// is always the top-left cell.
type Screen struct {
	metrics    Metrics
	cols, rows int
}

// NewScreen returns a screen of cols×rows cells.
func NewScreen(m Metrics, cols, rows int) *Screen {
	return &Screen{metrics: m.valid(), cols: cols, rows: rows}
}

// Bounds implements [flow.Surface]. A screen with no cells is not laid out.
func (s *Screen) Bounds() (flow.Rect, bool) {
	if s.cols <= 0 || s.rows <= 0 {
		return flow.Rect{}, false
	}
	return s.metrics.Rect(0, 0, s.cols, s.rows), true
}

// Resize changes the size of the screen.
func (s *Screen) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
}

// Size returns the size in cells.
func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// Metrics returns the cell metrics.
func (s *Screen) Metrics() Metrics { return s.metrics }

// Pointer converts a mouse cell to a pointer event at the cell center.
func (s *Screen) Pointer(col, row int, b flow.PointerButton) flow.PointerEvent {
	p := s.metrics.Center(col, row)
	return flow.PointerEvent{X: p.X, Y: p.Y, Button: b}
}
