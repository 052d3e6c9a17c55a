package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/flow"
)

func sampleProps() flow.Props[decision.TreeNodeData] {
	return flow.Props[decision.TreeNodeData]{
		Nodes:     decision.InitialNodes(),
		Edges:     decision.InitialEdges(),
		NodeTypes: decision.NodeTypes(),
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleProps(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"root-condition" [label="用户是否已登录？", color="#2f54eb"];`,
		`"root-condition":w -> "guest-message":n [label="否", arrowhead=normal, color="#fa541c"];`,
		`"root-condition":e -> "task-check":n [label="是", arrowhead=normal, color="#52c41a"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "context.user") {
		t.Error("ToDOT() includes body lines without Detailed")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleProps(), Options{Detailed: true, RankDir: "LR"})

	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("ToDOT() ignores RankDir")
	}
	want := `label="用户是否已登录？\n条件表达式\ncontext.user !== null"`
	if !strings.Contains(dot, want) {
		t.Errorf("ToDOT() missing %s", want)
	}
}

func TestToDOTEdgeCases(t *testing.T) {
	props := flow.Props[decision.TreeNodeData]{
		Nodes: []decision.Node{
			{ID: "a", Type: "condition", Data: decision.TreeNodeData{NodeType: decision.KindCondition, Label: "A"}},
			{ID: "ghost", Type: "unknown"},
			{ID: "a", Type: "condition"},
		},
		Edges: []flow.Edge{
			{ID: "plain", Source: "a", Target: "ghost"},
			{ID: "dangling", Source: "a", Target: "missing"},
		},
		NodeTypes: decision.NodeTypes(),
	}

	dot := ToDOT(props, Options{})

	tests := []struct {
		name string
		want string
		in   bool
	}{
		{"placeholder is dashed", `"ghost" [label="ghost", style="rounded,filled,dashed", fillcolor=lightgrey];`, true},
		{"edge without handles has no ports", `"a" -> "ghost" [arrowhead=none];`, true},
		{"dangling edge dropped", `"missing"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Contains(dot, tt.want); got != tt.in {
				t.Errorf("contains %q = %v, want %v", tt.want, got, tt.in)
			}
		})
	}
	if n := strings.Count(dot, `"a" [`); n != 1 {
		t.Errorf("duplicate node declared %d times, want 1", n)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="152pt" height="116pt" viewBox="0.00 0.00 152.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 152.00 116.00" width="152" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(sampleProps(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<") || !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() output not normalized: %.200s", svg)
	}
}
