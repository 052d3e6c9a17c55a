package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treeflow/pkg/flow"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the component's body lines under the title.
	// When false, only the title is shown.
	Detailed bool
	// RankDir is the Graphviz rank direction, TB when empty.
	RankDir string
}

// compass maps a handle side to a Graphviz port.
var compass = map[flow.Position]string{
	flow.Top:    "n",
	flow.Bottom: "s",
	flow.Left:   "w",
	flow.Right:  "e",
}

// ToDOT converts a canvas's nodes and edges to Graphviz DOT source. Nodes
// are drawn with the content their component renders; nodes without a
// component get a dashed placeholder box. Edges with an endpoint that is
// not a node are left out.
func ToDOT[T any](props flow.Props[T], opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\", fontsize=12];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	contents := make(map[string]flow.NodeContent, len(props.Nodes))
	for _, n := range props.Nodes {
		if _, dup := contents[n.ID]; dup {
			continue
		}
		content, ok := renderContent(props, n)
		contents[n.ID] = content
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtNodeAttrs(content, ok, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range props.Edges {
		src, okS := contents[e.Source]
		dst, okT := contents[e.Target]
		if !okS || !okT {
			continue
		}
		from := endpoint(e.Source, src, e.SourceHandle, flow.HandleSource)
		to := endpoint(e.Target, dst, e.TargetHandle, flow.HandleTarget)
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", from, to, strings.Join(fmtEdgeAttrs(e, src), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func renderContent[T any](props flow.Props[T], n flow.Node[T]) (flow.NodeContent, bool) {
	comp, ok := props.NodeTypes[n.Type]
	if !ok || comp == nil {
		comp, ok = props.NodeTypes[flow.DefaultNodeType]
	}
	if !ok || comp == nil {
		return flow.NodeContent{Title: n.ID}, false
	}
	return comp.Render(flow.NodeProps[T]{ID: n.ID, Type: n.Type, Data: n.Data}), true
}

func fmtNodeAttrs(c flow.NodeContent, rendered, detailed bool) []string {
	label := c.Title
	if detailed && len(c.Lines) > 0 {
		label += "\n" + strings.Join(c.Lines, "\n")
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c.Accent != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", c.Accent))
	}
	if !rendered {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func fmtEdgeAttrs(e flow.Edge, src flow.NodeContent) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.HasArrow() {
		attrs = append(attrs, "arrowhead=normal")
	} else {
		attrs = append(attrs, "arrowhead=none")
	}
	if h, ok := findHandle(src, e.SourceHandle, flow.HandleSource); ok && h.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", h.Color))
	}
	return attrs
}

// endpoint formats a node reference, with a compass port when the handle
// is declared by the node's content.
func endpoint(nodeID string, c flow.NodeContent, handleID string, t flow.HandleType) string {
	if h, ok := findHandle(c, handleID, t); ok {
		if port, ok := compass[h.Side]; ok {
			return fmt.Sprintf("%q:%s", nodeID, port)
		}
	}
	return strconv.Quote(nodeID)
}

func findHandle(c flow.NodeContent, id string, t flow.HandleType) (flow.HandleSpec, bool) {
	if id == "" {
		return flow.HandleSpec{}, false
	}
	for _, h := range c.Handles {
		if h.ID == id && h.Type == t {
			return h, true
		}
	}
	return flow.HandleSpec{}, false
}

// RenderSVG lays out and renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element, which sizes the
// drawing in points, with one sized in plain user units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
