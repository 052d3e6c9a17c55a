package render

import (
	"math"

	"github.com/matzehuels/treeflow/pkg/flow"
	"github.com/matzehuels/treeflow/pkg/term"
)

// margin is the space kept around the diagram's bounding box.
const margin = 24

// Box is a node as drawn.
type Box struct {
	ID          string
	Rect        flow.Rect
	Content     flow.NodeContent
	Selected    bool
	Placeholder bool
}

// Dot is a handle as drawn.
type Dot struct {
	NodeID string
	Spec   flow.HandleSpec
	At     flow.XYPosition
}

// Frame is a fully resolved diagram in pixels.
type Frame struct {
	Width, Height float64
	Boxes         []Box
	Dots          []Dot
	Edges         []flow.EdgePath
	Skipped       []string
	Preview       *flow.Segment
}

// Options controls [Capture].
type Options struct {
	// Width and Height are the minimum frame size in pixels. The frame
	// grows to fit the diagram.
	Width, Height int
	Metrics       term.Metrics
}

// Capture lays out props on an off-screen canvas and returns the result.
// Only the data of props is used; callbacks are not called.
func Capture[T any](props flow.Props[T], opts Options) Frame {
	m := opts.Metrics
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		m = term.DefaultMetrics
	}
	cols := max(1, int(math.Ceil(float64(opts.Width)/m.CellWidth)))
	rows := max(1, int(math.Ceil(float64(opts.Height)/m.CellHeight)))

	screen := term.NewScreen(m, cols, rows)
	obs := term.NewObserver()
	canvas := flow.NewCanvas[T](screen, obs)
	layout := term.NewLayout(canvas, screen, obs)

	canvas.SetProps(flow.Props[T]{Nodes: props.Nodes, Edges: props.Edges, NodeTypes: props.NodeTypes})
	layout.Sync(canvas.NodeViews())
	return FromLayout(canvas.Present(), layout, float64(opts.Width), float64(opts.Height))
}

// FromLayout builds a frame from a scene already synced to layout. The
// frame is at least w×h and grows to fit every box.
func FromLayout[T any](s flow.Scene[T], layout *term.Layout[T], w, h float64) Frame {
	f := Frame{Edges: s.Edges, Skipped: s.Skipped, Preview: s.Preview}
	right, bottom := w, h

	for _, id := range layout.Nodes() {
		card, ok := layout.Card(id)
		if !ok {
			continue
		}
		r, ok := card.Bounds()
		if !ok {
			continue
		}
		f.Boxes = append(f.Boxes, Box{
			ID:          id,
			Rect:        r,
			Content:     card.Content(),
			Selected:    card.Selected(),
			Placeholder: card.Placeholder(),
		})
		right = math.Max(right, r.X+r.Width+margin)
		bottom = math.Max(bottom, r.Y+r.Height+margin)

		for _, p := range layout.Ports(id) {
			pr, ok := p.Bounds()
			if !ok {
				continue
			}
			f.Dots = append(f.Dots, Dot{NodeID: id, Spec: p.Spec(), At: pr.Center()})
		}
	}
	f.Width, f.Height = right, bottom
	return f
}
