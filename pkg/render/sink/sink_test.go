package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/treeflow/pkg/flow"
	"github.com/matzehuels/treeflow/pkg/render"
)

func testFrame() render.Frame {
	return render.Frame{
		Width:  400,
		Height: 300,
		Boxes: []render.Box{
			{
				ID:   "a",
				Rect: flow.Rect{X: 20, Y: 20, Width: 120, Height: 60},
				Content: flow.NodeContent{
					Title:  "Is <admin>?",
					Lines:  []string{"user.role == 'admin'"},
					Accent: "#2f54eb",
				},
				Selected: true,
			},
			{ID: "b", Rect: flow.Rect{X: 200, Y: 160, Width: 120, Height: 60}, Content: flow.NodeContent{Title: "b"}, Placeholder: true},
		},
		Dots: []render.Dot{
			{NodeID: "a", Spec: flow.HandleSpec{ID: "right", Type: flow.HandleSource, Side: flow.Right, Color: "#52c41a"}, At: flow.XYPosition{X: 140, Y: 50}},
			{NodeID: "b", Spec: flow.HandleSpec{ID: "target", Type: flow.HandleTarget, Side: flow.Top}, At: flow.XYPosition{X: 260, Y: 160}},
		},
		Edges: []flow.EdgePath{{
			Edge:    flow.Edge{ID: "a-b", Source: "a", Target: "b", SourceHandle: "right", TargetHandle: "target", Label: "yes", MarkerEnd: &flow.Marker{Type: flow.MarkerArrowClosed}},
			Segment: flow.Segment{From: flow.XYPosition{X: 140, Y: 50}, To: flow.XYPosition{X: 260, Y: 160}},
			LabelAt: flow.XYPosition{X: 200, Y: 99},
		}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testFrame()))

	for _, want := range []string{
		`viewBox="0 0 400.0 300.0"`,
		`<marker id="rf-arrow-closed" markerWidth="10" markerHeight="10" refX="8" refY="3" orient="auto"`,
		`<path d="M0,0 L0,6 L9,3 z" fill="#555"/>`,
		`d="M 140.0 50.0 L 260.0 160.0"`,
		`marker-end="url(#rf-arrow-closed)"`,
		`<text class="rf-edge__label" x="200.0" y="99.0"`,
		`Is &lt;admin&gt;?`,
		`user.role == &#39;admin&#39;`,
		`stroke="#1677ff" stroke-width="2"`,
		`class="rf-node rf-node--placeholder"`,
		`class="rf-handle rf-handle--source" data-node="a" data-handle="right"`,
		`fill="#52c41a" stroke="#52c41a"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	for _, absent := range []string{"rf-grid", "rf-controls", "rf-edge--preview"} {
		if strings.Contains(svg, absent) {
			t.Errorf("RenderSVG() contains %q without the option", absent)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() not terminated")
	}
}

func TestRenderSVGNoArrow(t *testing.T) {
	f := testFrame()
	f.Edges[0].Edge.MarkerEnd = nil
	f.Edges[0].Edge.Label = ""

	svg := string(RenderSVG(f))
	if strings.Contains(svg, "marker-end") {
		t.Error("edge without marker has marker-end")
	}
	if strings.Contains(svg, "rf-edge__label") {
		t.Error("edge without label has a label")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	f := testFrame()
	f.Preview = &flow.Segment{From: flow.XYPosition{X: 140, Y: 50}, To: flow.XYPosition{X: 300, Y: 40}}

	svg := string(RenderSVG(f,
		WithBackground(flow.Background{}),
		WithControls(flow.Controls{Placement: flow.TopRight}),
		WithSize(800, 100),
	))

	for _, want := range []string{
		`viewBox="0 0 800.0 300.0"`,
		`<pattern id="rf-grid" width="16.0" height="16.0"`,
		`stroke="#f0f0f0"`,
		`fill="url(#rf-grid)"`,
		`class="rf-edge rf-edge--preview" d="M 140.0 50.0 L 300.0 40.0"`,
		`data-placement="top-right"`,
		`aria-label="zoom in"`,
		`aria-label="center view"`,
		`<rect x="764.0" y="12.0" width="24" height="24"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testFrame())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 400 || out.Height != 300 {
		t.Errorf("size = %vx%v, want 400x300", out.Width, out.Height)
	}
	if len(out.Nodes) != 2 {
		t.Fatalf("Nodes = %d, want 2", len(out.Nodes))
	}
	a := out.Nodes[0]
	if a.ID != "a" || !a.Selected || a.Accent != "#2f54eb" {
		t.Errorf("node a = %+v", a)
	}
	if len(a.Handles) != 1 || a.Handles[0].Side != "right" || a.Handles[0].Type != "source" {
		t.Errorf("node a handles = %+v", a.Handles)
	}
	if !out.Nodes[1].Placeholder {
		t.Error("node b Placeholder = false, want true")
	}
	if len(out.Edges) != 1 {
		t.Fatalf("Edges = %d, want 1", len(out.Edges))
	}
	e := out.Edges[0]
	if !e.Arrow || e.Label != "yes" || e.X1 != 140 || e.Y2 != 160 {
		t.Errorf("edge = %+v", e)
	}
	if out.Preview != nil {
		t.Errorf("Preview = %+v, want nil", out.Preview)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(render.Frame{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"nodes": []`) || !strings.Contains(string(data), `"edges": []`) {
		t.Errorf("RenderJSON() = %s, want empty arrays", data)
	}
}
