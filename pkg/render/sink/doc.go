// Package sink writes a captured [render.Frame] to an output format.
//
// # SVG Output
//
// [RenderSVG] draws the frame the way the browser canvas does: a line
// grid background, straight edges with a closed arrowhead marker and
// labels above their midpoint, node boxes with their accent border, handle
// dots and the controls overlay.
//
//	svg := sink.RenderSVG(frame,
//	    sink.WithBackground(flow.Background{Gap: 16}),
//	    sink.WithControls(flow.Controls{Placement: flow.TopRight}),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the resolved geometry (boxes, handles, edge
// segments) for external tools and tests.
//
// [render.Frame]: github.com/matzehuels/treeflow/pkg/render.Frame
package sink
