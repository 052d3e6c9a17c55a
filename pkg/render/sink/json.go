package sink

import (
	"encoding/json"

	"github.com/matzehuels/treeflow/pkg/render"
)

type jsonOutput struct {
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Nodes   []jsonNode  `json:"nodes"`
	Edges   []jsonEdge  `json:"edges"`
	Skipped []string    `json:"skipped,omitempty"`
	Preview *jsonPoints `json:"preview,omitempty"`
}

type jsonNode struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Lines       []string     `json:"lines,omitempty"`
	Accent      string       `json:"accent,omitempty"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Selected    bool         `json:"selected,omitempty"`
	Placeholder bool         `json:"placeholder,omitempty"`
	Handles     []jsonHandle `json:"handles,omitempty"`
}

type jsonHandle struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	Side string  `json:"side"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type jsonEdge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Label  string  `json:"label,omitempty"`
	Arrow  bool    `json:"arrow,omitempty"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

type jsonPoints struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// RenderJSON exports the frame geometry as a pretty-printed JSON document.
// Handles are nested under the node that owns them.
func RenderJSON(f render.Frame) ([]byte, error) {
	out := jsonOutput{
		Width:   f.Width,
		Height:  f.Height,
		Nodes:   make([]jsonNode, 0, len(f.Boxes)),
		Edges:   make([]jsonEdge, 0, len(f.Edges)),
		Skipped: f.Skipped,
	}

	index := make(map[string]int, len(f.Boxes))
	for _, b := range f.Boxes {
		index[b.ID] = len(out.Nodes)
		out.Nodes = append(out.Nodes, jsonNode{
			ID:          b.ID,
			Title:       b.Content.Title,
			Lines:       b.Content.Lines,
			Accent:      b.Content.Accent,
			X:           b.Rect.X,
			Y:           b.Rect.Y,
			Width:       b.Rect.Width,
			Height:      b.Rect.Height,
			Selected:    b.Selected,
			Placeholder: b.Placeholder,
		})
	}
	for _, d := range f.Dots {
		i, ok := index[d.NodeID]
		if !ok {
			continue
		}
		out.Nodes[i].Handles = append(out.Nodes[i].Handles, jsonHandle{
			ID:   d.Spec.ID,
			Type: string(d.Spec.Type),
			Side: string(d.Spec.Side),
			X:    d.At.X,
			Y:    d.At.Y,
		})
	}
	for _, e := range f.Edges {
		out.Edges = append(out.Edges, jsonEdge{
			ID:     e.Edge.ID,
			Source: e.Edge.Source,
			Target: e.Edge.Target,
			Label:  e.Edge.Label,
			Arrow:  e.Edge.HasArrow(),
			X1:     e.From.X,
			Y1:     e.From.Y,
			X2:     e.To.X,
			Y2:     e.To.Y,
		})
	}
	if f.Preview != nil {
		out.Preview = &jsonPoints{X1: f.Preview.From.X, Y1: f.Preview.From.Y, X2: f.Preview.To.X, Y2: f.Preview.To.Y}
	}

	return json.MarshalIndent(out, "", "  ")
}
