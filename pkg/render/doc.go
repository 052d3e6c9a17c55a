// Package render turns a canvas into static output.
//
// # Overview
//
// Rendering happens in two steps. [Capture] lays a diagram out headlessly,
// using the same cell-grid geometry as the terminal editor, and returns a
// [Frame]: every node box, handle and resolved edge in pixels. Sinks then
// turn the frame into an output format:
//
//   - [sink]: SVG drawing and JSON geometry export
//   - [nodelink]: Graphviz DOT and Graphviz-laid-out SVG
//
// Because [Capture] goes through a real [flow.Canvas], edges are anchored
// exactly where the editor anchors them, including the node-center
// fallback for handles that do not exist.
//
//	f := render.Capture(props, render.Options{Width: 960, Height: 540})
//	svg := sink.RenderSVG(f, sink.WithBackground(bg))
//
// [sink]: github.com/matzehuels/treeflow/pkg/render/sink
// [nodelink]: github.com/matzehuels/treeflow/pkg/render/nodelink
package render
