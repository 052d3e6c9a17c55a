// Package pkg provides the core libraries for Treeflow, a node-graph canvas
// and decision-tree editor.
//
// # Overview
//
// Treeflow draws a set of positioned nodes and the edges between their
// handles, lets the user drag nodes and draw new connections, and reports
// every change back to its owner as a change record. On top of that canvas
// sits a decision-tree editor: condition nodes branch left or right into
// other conditions or into components (message, form, API, approval, delay).
// The pkg directory is organized into four areas:
//
//  1. [flow] - The canvas engine (props, interaction, handles, scene)
//  2. [decision] - The decision-tree domain (node types, palette, editor)
//  3. [term] and [render] - Surfaces: a terminal cell grid and headless frames
//  4. [io], [config], [cache] - Documents, settings and the render cache
//
// # Architecture
//
// The typical data flow through Treeflow:
//
//	Tree document (.json, .toml, .yaml)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [decision] package (Editor owns nodes and edges)
//	         ↓
//	    [flow] package (Canvas: pointer input → change records)
//	         ↓
//	    [term] package (cards, ports, edges on a cell grid)
//	         ↓
//	    Terminal / SVG / DOT / Graphviz / layout JSON
//
// The canvas never mutates the nodes it is given. Drags, connections and
// removals arrive at the owner as [flow.NodeChange], [flow.Connection] and
// [flow.EdgeChange] values; the owner applies them with
// [flow.ApplyNodeChanges], [flow.AddEdge] and [flow.ApplyEdgeChanges] and
// hands the result back through [flow.Canvas.SetProps].
//
// # Quick Start
//
// Render the sample tree headlessly:
//
//	import (
//	    "github.com/matzehuels/treeflow/pkg/decision"
//	    "github.com/matzehuels/treeflow/pkg/flow"
//	    "github.com/matzehuels/treeflow/pkg/render"
//	    "github.com/matzehuels/treeflow/pkg/render/sink"
//	)
//
//	t := decision.SampleTree()
//	f := render.Capture(flow.Props[decision.TreeNodeData]{
//	    Nodes:     t.Nodes,
//	    Edges:     t.Edges,
//	    NodeTypes: decision.NodeTypes(),
//	}, render.Options{Width: 960, Height: 540})
//	svg := sink.RenderSVG(f)
//
// Edit a tree programmatically:
//
//	ed := decision.NewEditor(decision.SampleTree())
//	item, _ := decision.FindPaletteItem("condition")
//	n, _ := ed.Drop(item, flow.XYPosition{X: 40, Y: 500})
//	ed.Select(n.ID)
//
// # Main Packages
//
// [flow] - The canvas engine. [flow.Canvas] tracks pointer gestures (node
// drag, handle-to-handle connection), keeps the handle and node-layout
// registries, and produces a [flow.Scene] of resolved edge paths. Pure
// helpers in patch.go apply change records to caller-owned slices.
//
// [decision] - Condition and component node types, the palette, the sample
// tree, document validation, and [decision.Editor], which keeps each
// condition's left/right branch in step with its outgoing edges.
//
// [term] - A terminal surface: [term.Screen] maps cells to canvas pixels,
// [term.Layout] mounts one card per node and one port per handle, and
// draws the scene with lipgloss.
//
// [render] - Headless capture of a canvas into a [render.Frame], with
// output sinks:
//
//   - [render/sink]: SVG drawing and layout JSON
//   - [render/nodelink]: Graphviz DOT source and Graphviz-laid-out SVG
//
// [io] - Tree documents in JSON, TOML and YAML.
//
// [config] - The TOML configuration file (canvas, render and serve settings).
//
// [cache] - Content-addressed cache for Graphviz renders.
//
// [observability] - Hooks for canvas events (drag, connect, edge removal).
//
// [errors] - Coded errors with user-facing messages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/flow/...     # Specific package
//	go test -short ./...       # Skip Graphviz rendering
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/flow
// [decision]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/decision
// [term]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/term
// [render]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/errors
package pkg
