package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/treeflow/pkg/flow"
	"github.com/matzehuels/treeflow/pkg/render"
)

// ArrowMarkerID is the id of the shared arrowhead marker definition.
const ArrowMarkerID = "rf-arrow-closed"

const (
	edgeColor     = "#555"
	nodeFill      = "#fff"
	nodeStroke    = "#d9d9d9"
	selectedColor = "#1677ff"
	handleRadius  = 4
	buttonSize    = 24
	fontFamily    = "-apple-system, 'Segoe UI', sans-serif"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background *flow.Background
	controls   *flow.Controls
	width      float64
	height     float64
}

// WithBackground draws the grid behind the diagram. Zero fields take the
// defaults from [flow.Background.WithDefaults].
func WithBackground(bg flow.Background) SVGOption {
	return func(r *svgRenderer) { bg = bg.WithDefaults(); r.background = &bg }
}

// WithControls draws the controls overlay in the given corner.
func WithControls(c flow.Controls) SVGOption { return func(r *svgRenderer) { r.controls = &c } }

// WithSize overrides the frame size. Values smaller than the frame are ignored.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

// RenderSVG draws f as a standalone SVG document.
func RenderSVG(f render.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	w, h := max(f.Width, r.width), max(f.Height, r.height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		w, h, w, h, fontFamily)
	renderDefs(&buf, r.background)

	if r.background != nil {
		fmt.Fprintf(&buf, `  <rect class="rf-background" width="100%%" height="100%%" fill="url(#rf-grid)"/>`+"\n")
	}
	for _, e := range f.Edges {
		renderEdge(&buf, e)
	}
	if f.Preview != nil {
		fmt.Fprintf(&buf, `  <path class="rf-edge rf-edge--preview" d="M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="1.5" stroke-dasharray="4 4" fill="none"/>`+"\n",
			f.Preview.From.X, f.Preview.From.Y, f.Preview.To.X, f.Preview.To.Y, edgeColor)
	}
	for _, b := range f.Boxes {
		renderBox(&buf, b)
	}
	for _, d := range f.Dots {
		renderDot(&buf, d)
	}
	if r.controls != nil {
		renderControls(&buf, *r.controls, w, h)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, bg *flow.Background) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="%s" markerWidth="10" markerHeight="10" refX="8" refY="3" orient="auto" markerUnits="strokeWidth">`+"\n", ArrowMarkerID)
	fmt.Fprintf(buf, `      <path d="M0,0 L0,6 L9,3 z" fill="%s"/>`+"\n", edgeColor)
	buf.WriteString("    </marker>\n")
	if bg != nil {
		fmt.Fprintf(buf, `    <pattern id="rf-grid" width="%.1f" height="%.1f" patternUnits="userSpaceOnUse">`+"\n", bg.Gap, bg.Gap)
		fmt.Fprintf(buf, `      <path d="M %.1f 0 L 0 0 0 %.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n", bg.Gap, bg.Gap, escapeXML(bg.Color))
		buf.WriteString("    </pattern>\n")
	}
	buf.WriteString("  </defs>\n")
}

func renderEdge(buf *bytes.Buffer, e flow.EdgePath) {
	marker := ""
	if e.Edge.HasArrow() {
		marker = fmt.Sprintf(` marker-end="url(#%s)"`, ArrowMarkerID)
	}
	fmt.Fprintf(buf, `  <path id="edge-%s" class="rf-edge" d="M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="1.5" fill="none"%s/>`+"\n",
		escapeXML(e.Edge.ID), e.From.X, e.From.Y, e.To.X, e.To.Y, edgeColor, marker)
	if e.Edge.Label != "" {
		fmt.Fprintf(buf, `  <text class="rf-edge__label" x="%.1f" y="%.1f" text-anchor="middle" font-size="12" fill="#333">%s</text>`+"\n",
			e.LabelAt.X, e.LabelAt.Y, escapeXML(e.Edge.Label))
	}
}

func renderBox(buf *bytes.Buffer, b render.Box) {
	stroke, width := nodeStroke, 1.0
	if b.Content.Accent != "" {
		stroke = b.Content.Accent
	}
	if b.Selected {
		stroke, width = selectedColor, 2
	}
	class := "rf-node"
	if b.Placeholder {
		class += " rf-node--placeholder"
	}
	r := b.Rect
	fmt.Fprintf(buf, `  <g id="node-%s" class="%s">`+"\n", escapeXML(b.ID), class)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-width="%.0f"/>`+"\n",
		r.X, r.Y, r.Width, r.Height, nodeFill, escapeXML(stroke), width)

	y := r.Y + 20
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="13" font-weight="bold" fill="#1f1f1f">%s</text>`+"\n",
		r.X+10, y, escapeXML(b.Content.Title))
	for _, line := range b.Content.Lines {
		y += 18
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="12" fill="#595959">%s</text>`+"\n",
			r.X+10, y, escapeXML(line))
	}
	buf.WriteString("  </g>\n")
}

func renderDot(buf *bytes.Buffer, d render.Dot) {
	fill := "#fff"
	stroke := edgeColor
	if d.Spec.Color != "" {
		stroke = d.Spec.Color
	}
	if d.Spec.Type == flow.HandleSource {
		fill = stroke
	}
	fmt.Fprintf(buf, `  <circle class="rf-handle rf-handle--%s" data-node="%s" data-handle="%s" cx="%.1f" cy="%.1f" r="%d" fill="%s" stroke="%s"/>`+"\n",
		d.Spec.Type, escapeXML(d.NodeID), escapeXML(d.Spec.ID), d.At.X, d.At.Y, handleRadius, escapeXML(fill), escapeXML(stroke))
}

var controlLabels = map[string]string{"+": "zoom in", "-": "zoom out", "⤢": "center view"}

func renderControls(buf *bytes.Buffer, c flow.Controls, w, h float64) {
	n := len(flow.ControlButtons)
	o := c.Origin(w, h, buttonSize, float64(n*buttonSize))
	fmt.Fprintf(buf, `  <g class="rf-controls" data-placement="%s">`+"\n", c.Corner())
	for i, label := range flow.ControlButtons {
		y := o.Y + float64(i*buttonSize)
		fmt.Fprintf(buf, `    <g class="rf-controls__button" aria-label="%s">`+"\n", controlLabels[label])
		fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%d" height="%d" fill="#fff" stroke="#d9d9d9"/>`+"\n",
			o.X, y, buttonSize, buttonSize)
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" text-anchor="middle" font-size="14" fill="#333">%s</text>`+"\n",
			o.X+buttonSize/2, y+17, escapeXML(label))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
