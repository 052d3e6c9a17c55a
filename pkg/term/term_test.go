package term_test

import (
	"strings"
	"testing"

	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/flow"
	"github.com/matzehuels/treeflow/pkg/term"
)

type fixture struct {
	screen *term.Screen
	obs    *term.Observer
	canvas *flow.Canvas[decision.TreeNodeData]
	layout *term.Layout[decision.TreeNodeData]
	editor *decision.Editor
}

// newFixture places condition "c" at cell (10,0) and component "m" at
// cell (10,10) on an 80×24 screen.
func newFixture(t *testing.T, edges ...flow.Edge) *fixture {
	t.Helper()
	f := &fixture{
		screen: term.NewScreen(term.DefaultMetrics, 80, 24),
		obs:    term.NewObserver(),
	}
	f.canvas = flow.NewCanvas[decision.TreeNodeData](f.screen, f.obs)
	f.layout = term.NewLayout(f.canvas, f.screen, f.obs)
	f.editor = decision.NewEditor(decision.Tree{
		Nodes: []decision.Node{
			{
				ID: "c", Type: string(decision.KindCondition), Position: flow.XYPosition{X: 100, Y: 0},
				Data: decision.TreeNodeData{NodeType: decision.KindCondition, Label: "Ready?", Condition: "x"},
			},
			{
				ID: "m", Type: string(decision.KindComponent), Position: flow.XYPosition{X: 100, Y: 200},
				Data: decision.TreeNodeData{NodeType: decision.KindComponent, Label: "Hello", ComponentType: decision.ComponentMessage},
			},
		},
		Edges: edges,
	})
	f.render()
	return f
}

func (f *fixture) render() {
	f.canvas.SetProps(f.editor.Props())
	f.layout.Sync(f.canvas.NodeViews())
}

func (f *fixture) down(col, row int) {
	f.canvas.PointerDown(f.screen.Pointer(col, row, flow.ButtonPrimary), f.layout.HitTest(col, row))
}

func (f *fixture) move(col, row int) {
	f.canvas.PointerMove(f.screen.Pointer(col, row, flow.ButtonPrimary))
}

func (f *fixture) up(col, row int) {
	f.canvas.PointerUp(f.screen.Pointer(col, row, flow.ButtonPrimary), f.layout.HitTest(col, row))
}

func TestSyncPlacesCards(t *testing.T) {
	f := newFixture(t)

	card, ok := f.layout.Card("m")
	if !ok {
		t.Fatal("Card(m) not mounted")
	}
	col, row, cols, rows := card.Cells()
	if col != 10 || row != 10 || cols != 18 || rows != 3 {
		t.Errorf("Cells() = %d,%d %dx%d, want 10,10 18x3", col, row, cols, rows)
	}
	want := flow.Rect{X: 100, Y: 200, Width: 180, Height: 60}
	if got, ok := f.canvas.Layouts().RectOf("m"); !ok || got != want {
		t.Errorf("RectOf(m) = %v, %v, want %v", got, ok, want)
	}
	if got, ok := f.canvas.Handles().PositionOf("m", decision.HandleIn, flow.HandleTarget); !ok || got != (flow.XYPosition{X: 195, Y: 210}) {
		t.Errorf("PositionOf(m target) = %v, %v, want {195 210}", got, ok)
	}
	if got := f.canvas.Handles().Len(); got != 5 {
		t.Errorf("Handles().Len() = %d, want 5", got)
	}
}

func TestSyncResolvesEdgesOnNextScene(t *testing.T) {
	screen := term.NewScreen(term.DefaultMetrics, 80, 24)
	obs := term.NewObserver()
	c := flow.NewCanvas[decision.TreeNodeData](screen, obs)
	l := term.NewLayout(c, screen, obs)
	c.SetProps(decision.NewEditor(decision.SampleTree()).Props())

	first := c.Scene()
	if len(first.Skipped) != 4 {
		t.Errorf("before Sync: Skipped = %v, want all 4 edges", first.Skipped)
	}
	l.Sync(first.Nodes)
	if second := c.Scene(); len(second.Edges) != 4 {
		t.Errorf("after Sync: Edges = %d (skipped %v), want 4", len(second.Edges), second.Skipped)
	}
}

func TestHitTest(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		col, row int
		want     flow.Target
	}{
		{"target port", 19, 10, flow.HandleAt("m", decision.HandleIn, flow.HandleTarget)},
		{"next port", 19, 12, flow.HandleAt("m", decision.HandleNext, flow.HandleSource)},
		{"right port", 27, 2, flow.HandleAt("c", decision.HandleRight, flow.HandleSource)},
		{"left port", 10, 2, flow.HandleAt("c", decision.HandleLeft, flow.HandleSource)},
		{"card body", 15, 11, flow.NodeTarget("m")},
		{"card border", 10, 0, flow.NodeTarget("c")},
		{"pane", 0, 23, flow.PaneTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.layout.HitTest(tt.col, tt.row); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %+v, want %+v", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestConnectThroughPorts(t *testing.T) {
	f := newFixture(t)

	f.down(27, 2)
	f.move(19, 10)
	f.up(19, 10)

	if len(f.editor.Edges()) != 1 {
		t.Fatalf("Edges() = %d, want 1", len(f.editor.Edges()))
	}
	e := f.editor.Edges()[0]
	if e.Source != "c" || e.SourceHandle != decision.HandleRight || e.Target != "m" || e.TargetHandle != decision.HandleIn {
		t.Errorf("edge = %+v", e)
	}
	c, _ := f.editor.Node("c")
	if c.Data.Right != "m" {
		t.Errorf("Right = %q, want m", c.Data.Right)
	}
}

func TestDragMovesCardAndPorts(t *testing.T) {
	f := newFixture(t)

	f.down(15, 11)
	f.move(25, 15)
	f.render()
	f.up(25, 15)
	f.render()

	n, _ := f.editor.Node("m")
	if n.Position != (flow.XYPosition{X: 200, Y: 280}) {
		t.Fatalf("Position = %v, want {200 280}", n.Position)
	}
	card, _ := f.layout.Card("m")
	if col, row, _, _ := card.Cells(); col != 20 || row != 14 {
		t.Errorf("card at %d,%d, want 20,14", col, row)
	}
	if got, _ := f.canvas.Handles().PositionOf("m", decision.HandleIn, flow.HandleTarget); got != (flow.XYPosition{X: 295, Y: 290}) {
		t.Errorf("PositionOf(m target) = %v, want {295 290}", got)
	}
	if sel, ok := f.editor.Selected(); !ok || sel.ID != "m" {
		t.Errorf("Selected() = %q, %v, want m", sel.ID, ok)
	}
}

func TestSyncUnmountsRemovedNodes(t *testing.T) {
	f := newFixture(t)
	f.editor.Delete("m")
	f.render()

	if _, ok := f.layout.Card("m"); ok {
		t.Error("Card(m) still mounted")
	}
	if got := f.canvas.Handles().Len(); got != 3 {
		t.Errorf("Handles().Len() = %d, want 3", got)
	}
	if _, ok := f.canvas.Layouts().RectOf("m"); ok {
		t.Error("RectOf(m) still tracked")
	}
	if got := f.obs.Len(); got != 4 {
		t.Errorf("observed surfaces = %d, want 4 (one card, three ports)", got)
	}
}

func TestPlaceholderHasNoPorts(t *testing.T) {
	screen := term.NewScreen(term.DefaultMetrics, 40, 10)
	obs := term.NewObserver()
	c := flow.NewCanvas[decision.TreeNodeData](screen, obs)
	l := term.NewLayout(c, screen, obs)
	c.SetProps(flow.Props[decision.TreeNodeData]{
		Nodes:     []decision.Node{{ID: "ghost", Type: "mystery"}},
		NodeTypes: decision.NodeTypes(),
	})
	l.Sync(c.NodeViews())

	if c.Handles().Len() != 0 {
		t.Errorf("Handles().Len() = %d, want 0", c.Handles().Len())
	}
	g := l.Raster(c.Scene(), flow.Background{}, flow.Controls{Placement: flow.TopRight})
	if g.At(0, 0) != '┌' || !strings.Contains(g.Plain(), "ghost") {
		t.Errorf("placeholder not drawn:\n%s", g.Plain())
	}
}

func TestRaster(t *testing.T) {
	f := newFixture(t, flow.Edge{
		ID: "e", Source: "c", SourceHandle: decision.HandleRight, Target: "m", TargetHandle: decision.HandleIn,
		Label: "是", MarkerEnd: &flow.Marker{Type: flow.MarkerArrowClosed},
	})
	s := f.canvas.Scene()
	g := f.layout.Raster(s, flow.Background{}, flow.Controls{})
	plain := strings.Split(g.Plain(), "\n")

	checks := []struct {
		name     string
		col, row int
		want     rune
	}{
		{"arrow", 20, 9, '▼'},
		{"edge stroke", 22, 7, '╱'},
		{"label", 22, 6, '是'},
		{"source port", 27, 2, '●'},
		{"target port", 19, 10, '○'},
		{"card corner", 10, 10, '╭'},
		{"controls", 2, 20, '+'},
		{"background", 0, 23, '·'},
	}
	for _, c := range checks {
		if got := g.At(c.col, c.row); got != c.want {
			t.Errorf("%s: At(%d, %d) = %q, want %q", c.name, c.col, c.row, got, c.want)
		}
	}
	if !strings.Contains(plain[1], "Ready?") {
		t.Errorf("row 1 = %q, want condition title", plain[1])
	}
	if !strings.Contains(plain[11], "Hello") {
		t.Errorf("row 11 = %q, want component title", plain[11])
	}
}

func TestRasterPreviewAndSelection(t *testing.T) {
	f := newFixture(t)
	f.down(27, 2)
	f.move(40, 2)

	g := f.layout.Raster(f.canvas.Scene(), flow.Background{}, flow.Controls{})
	if g.At(28, 2) != '─' || g.At(29, 2) == '─' {
		t.Errorf("preview should be dashed, got %q%q", g.At(28, 2), g.At(29, 2))
	}

	f.up(40, 2)
	f.down(15, 11)
	f.up(15, 11)
	f.render()
	g = f.layout.Raster(f.canvas.Scene(), flow.Background{}, flow.Controls{})
	if g.At(10, 10) != '┏' {
		t.Errorf("selected card corner = %q, want ┏", g.At(10, 10))
	}
}

func TestObserver(t *testing.T) {
	obs := term.NewObserver()
	s := term.NewScreen(term.DefaultMetrics, 1, 1)
	calls := 0
	detach := obs.Observe(s, func() { calls++ })

	obs.Notify(s)
	detach()
	detach()
	obs.Notify(s)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if obs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", obs.Len())
	}
}

func TestScreen(t *testing.T) {
	s := term.NewScreen(term.Metrics{}, 0, 0)
	if _, ok := s.Bounds(); ok {
		t.Error("empty screen should not be measurable")
	}
	s.Resize(8, 4)
	r, ok := s.Bounds()
	if !ok || r != (flow.Rect{Width: 80, Height: 80}) {
		t.Errorf("Bounds() = %v, %v", r, ok)
	}
	if p := s.Pointer(2, 1, flow.ButtonSecondary); p.X != 25 || p.Y != 30 || p.Button != flow.ButtonSecondary {
		t.Errorf("Pointer() = %+v", p)
	}
}

func TestGridWideRunes(t *testing.T) {
	g := term.NewGrid(6, 1)
	if used := g.Text(0, 0, "是否", "", false); used != 4 {
		t.Errorf("Text() used %d columns, want 4", used)
	}
	if g.At(0, 0) != '是' || g.At(1, 0) != 0 || g.At(2, 0) != '否' {
		t.Errorf("cells = %q %q %q", g.At(0, 0), g.At(1, 0), g.At(2, 0))
	}
	g.Set(1, 0, 'x', "", false)
	if got := g.Plain(); got != " x否  " {
		t.Errorf("Plain() = %q, want %q", got, " x否  ")
	}
}
