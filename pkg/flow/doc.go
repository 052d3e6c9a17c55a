// Package flow is a small node-graph canvas engine.
//
// # Overview
//
// The engine tracks where nodes and their connection handles are drawn,
// turns pointer input into proposed changes, and resolves the pixel
// geometry needed to draw edges between handles. It owns no canonical
// state: nodes and edges are supplied by the caller on every render via
// [Canvas.SetProps], and completed gestures are reported back through the
// callbacks in [Props]. The caller decides whether to apply a proposal,
// typically with the pure patch functions [AddEdge], [ApplyNodeChanges]
// and [ApplyEdgeChanges].
//
// # Platforms
//
// Measurement is abstracted behind [Surface] and [LayoutObserver]. A
// platform (see package term for a terminal implementation) provides the
// container surface, one surface per node and one per handle, and
// notifies observers when any of them move or resize.
//
// # Interactions
//
// A canvas is in exactly one [Interaction] state at a time:
//
//   - [Idle]: nothing in progress
//   - [Dragging]: a node is following the pointer
//   - [Connecting]: a rubber-band line runs from a source handle to the pointer
//
// Pointer handlers never fail. Gestures that make no sense (starting a
// connection from a target handle, releasing over empty space) are
// silently dropped.
//
// # Usage
//
//	c := flow.NewCanvas[MyData](screen, observer)
//	c.SetProps(flow.Props[MyData]{
//	    Nodes:         nodes,
//	    Edges:         edges,
//	    NodeTypes:     components,
//	    OnNodesChange: func(ch []flow.NodeChange) { nodes = flow.ApplyNodeChanges(ch, nodes) },
//	    OnConnect:     func(c flow.Connection) { edges = flow.AddEdge(c, edges) },
//	})
//	scene := c.Scene()
package flow
