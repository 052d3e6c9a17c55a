package flow

import "github.com/matzehuels/treeflow/pkg/observability"

// LabelOffset is how far above the edge midpoint a label is drawn.
const LabelOffset = 6

// NodeView is a node ready to draw.
type NodeView[T any] struct {
	Node     Node[T]
	Selected bool
	Content  NodeContent
	// Placeholder is set when no component renders the node's type. The
	// node is drawn as a bare box titled with its id and ignores input.
	Placeholder bool
}

// EdgePath is an edge with both anchors resolved.
type EdgePath struct {
	Edge Edge
	Segment
	LabelAt XYPosition
}

// Scene is everything a platform needs to draw one frame.
type Scene[T any] struct {
	Nodes []NodeView[T]
	Edges []EdgePath
	// Skipped lists edges left out because an anchor is not resolvable yet.
	Skipped []string
	// Preview is the in-progress connection, nil when not connecting.
	Preview *Segment
}

// Anchor resolves where an edge endpoint attaches: the handle's position
// when it is registered, otherwise the center of the node's box.
func (c *Canvas[T]) Anchor(nodeID, handleID string, t HandleType) (XYPosition, bool) {
	if p, ok := c.handles.PositionOf(nodeID, handleID, t); ok {
		return p, true
	}
	return c.layouts.CenterOf(nodeID)
}

// NodeViews resolves only the nodes of the current props. Layout passes
// use it to mount and measure nodes before any edge can be resolved.
func (c *Canvas[T]) NodeViews() []NodeView[T] {
	views := make([]NodeView[T], 0, len(c.props.Nodes))
	for _, n := range c.props.Nodes {
		views = append(views, c.nodeView(n))
	}
	return views
}

// Scene resolves the current props and interaction state into drawable
// geometry. It has no side effects and may be called any number of times.
func (c *Canvas[T]) Scene() Scene[T] {
	s := Scene[T]{
		Nodes: c.NodeViews(),
		Edges: make([]EdgePath, 0, len(c.props.Edges)),
	}

	for _, e := range c.props.Edges {
		from, okFrom := c.Anchor(e.Source, e.SourceHandle, HandleSource)
		to, okTo := c.Anchor(e.Target, e.TargetHandle, HandleTarget)
		if !okFrom || !okTo {
			s.Skipped = append(s.Skipped, e.ID)
			continue
		}
		seg := Segment{From: from, To: to}
		mid := seg.Midpoint()
		s.Edges = append(s.Edges, EdgePath{
			Edge:    e,
			Segment: seg,
			LabelAt: XYPosition{X: mid.X, Y: mid.Y - LabelOffset},
		})
	}

	if conn, ok := c.state.(Connecting); ok {
		preview := conn.Preview
		if from, ok := c.Anchor(conn.OriginNodeID, conn.OriginHandleID, HandleSource); ok {
			preview.From = from
		}
		s.Preview = &preview
	}
	return s
}

// Present resolves the scene that is about to be drawn and reports each
// skipped edge to the canvas hooks.
func (c *Canvas[T]) Present() Scene[T] {
	s := c.Scene()
	hooks := observability.Canvas()
	for _, id := range s.Skipped {
		hooks.OnEdgeSkipped(id)
	}
	return s
}

func (c *Canvas[T]) nodeView(n Node[T]) NodeView[T] {
	v := NodeView[T]{Node: n, Selected: n.ID == c.selected}
	comp := c.Component(n)
	if comp == nil {
		v.Placeholder = true
		v.Content = NodeContent{Title: n.ID}
		return v
	}
	v.Content = comp.Render(NodeProps[T]{ID: n.ID, Data: n.Data, Selected: v.Selected, Type: n.Type})
	return v
}
