// Package term runs a [flow.Canvas] inside a terminal.
//
// The terminal is a grid of character cells. [Metrics] maps cells to the
// canvas's pixel coordinates, so diagrams keep the same positions whether
// they are drawn here or exported as SVG.
//
// The package provides the platform half of the canvas contract:
//
//   - [Screen] is the container surface
//   - [Card] is the surface of one node, [Port] the surface of one handle
//   - [Observer] delivers layout notifications when cards move or resize
//
// [Layout] keeps cards and ports in step with a [flow.Scene]: it mounts and
// unmounts them with the canvas, places cards at their node positions and
// notifies observers. It also answers hit tests for mouse input and
// rasterizes the scene to a styled string.
//
// A typical frame:
//
//	canvas.SetProps(editor.Props())
//	layout.Sync(canvas.NodeViews())
//	out := layout.Draw(canvas.Present(), background, controls)
package term
