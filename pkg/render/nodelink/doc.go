// Package nodelink exports a canvas as a Graphviz graph.
//
// # Overview
//
// Instead of the hand placed positions the editor uses, this package lets
// Graphviz lay the diagram out top to bottom. Node boxes carry the title
// and body lines their component renders, edges leave and enter through
// the compass point matching the handle's side, so a condition's left
// branch really does leave on the west.
//
// # Usage
//
//	dot := nodelink.ToDOT(props, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] is pure and cheap. [RenderSVG] runs the embedded Graphviz
// (WebAssembly build, no system install needed).
package nodelink
