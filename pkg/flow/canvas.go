package flow

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeflow/pkg/observability"
)

// DefaultNodeType is the node type used when a node's own type has no
// registered component.
const DefaultNodeType = "default"

// NodeProps is what a node component receives on every render.
type NodeProps[T any] struct {
	ID       string
	Data     T
	Selected bool
	Type     string
}

// NodeContent is a platform-neutral description of a rendered node: the
// text to show and the handles to mount on it.
type NodeContent struct {
	Title   string
	Lines   []string
	Accent  string
	Handles []HandleSpec
}

// NodeComponent renders nodes of one type.
type NodeComponent[T any] interface {
	Render(p NodeProps[T]) NodeContent
}

// NodeComponentFunc adapts a function to [NodeComponent].
type NodeComponentFunc[T any] func(p NodeProps[T]) NodeContent

// Render calls f(p).
func (f NodeComponentFunc[T]) Render(p NodeProps[T]) NodeContent { return f(p) }

// Instance is handed to [Props.OnInit]. It always reflects the latest props.
type Instance[T any] interface {
	// Project maps a container point to diagram coordinates. There is no
	// pan or zoom, so it returns p unchanged.
	Project(p XYPosition) XYPosition
	GetNodes() []Node[T]
	GetEdges() []Edge
}

// Props are the inputs of a canvas render. Every callback is optional.
type Props[T any] struct {
	Nodes     []Node[T]
	Edges     []Edge
	NodeTypes map[string]NodeComponent[T]

	OnNodesChange func(changes []NodeChange)
	OnEdgesChange func(changes []EdgeChange)
	OnConnect     func(c Connection)
	OnNodeClick   func(ev PointerEvent, n Node[T])
	OnPaneClick   func()
	OnInit        func(inst Instance[T])
}

// Option configures a Canvas.
type Option func(*canvasOptions)

type canvasOptions struct {
	logger *log.Logger
}

// WithLogger sets the logger used to trace ignored gestures at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *canvasOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// =============================================================================
// Canvas
// =============================================================================

// Canvas is the interactive container. It holds the handle and node layout
// registries, the transient pointer state and the current selection; the
// diagram itself always comes from the latest [Props].
//
// A Canvas is not safe for concurrent use. Platforms deliver input events
// and layout notifications from a single event loop.
type Canvas[T any] struct {
	container Surface
	observer  LayoutObserver
	handles   *HandleRegistry
	layouts   *NodeLayoutRegistry
	logger    *log.Logger

	state      Interaction
	selected   string
	props      Props[T]
	initCalled bool
}

// NewCanvas creates a canvas drawn inside container. The observer is used
// for node and handle mounts; nil disables layout notifications.
func NewCanvas[T any](container Surface, observer LayoutObserver, opts ...Option) *Canvas[T] {
	o := canvasOptions{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Canvas[T]{
		container: container,
		observer:  observer,
		handles:   NewHandleRegistry(container),
		layouts:   NewNodeLayoutRegistry(container),
		logger:    o.logger,
		state:     Idle{},
	}
}

// SetProps installs the inputs of the next render. OnInit is called the
// first time it is present. Registered handles and node boxes are
// re-measured, since new data may have moved or resized them.
func (c *Canvas[T]) SetProps(p Props[T]) {
	c.props = p
	if !c.initCalled && p.OnInit != nil {
		c.initCalled = true
		p.OnInit(canvasInstance[T]{c: c})
	}
	c.Relayout()
}

// Relayout re-measures every registered handle and tracked node.
func (c *Canvas[T]) Relayout() {
	c.handles.UpdateAll()
	c.layouts.RefreshAll()
}

// State returns the current interaction.
func (c *Canvas[T]) State() Interaction { return c.state }

// Selected returns the id of the selected node, or "".
func (c *Canvas[T]) Selected() string { return c.selected }

// Select marks node id as selected, or clears the selection when id is
// empty. It reports false and keeps the selection when id is not a node of
// the current props.
func (c *Canvas[T]) Select(id string) bool {
	if id == "" {
		c.selected = ""
		return true
	}
	if _, ok := c.node(id); !ok {
		c.logger.Debug("select ignored: unknown node", "node", id)
		return false
	}
	c.selected = id
	return true
}

// Handles exposes the handle registry.
func (c *Canvas[T]) Handles() *HandleRegistry { return c.handles }

// Layouts exposes the node layout registry.
func (c *Canvas[T]) Layouts() *NodeLayoutRegistry { return c.layouts }

// Observer returns the layout observer mounts subscribe with.
func (c *Canvas[T]) Observer() LayoutObserver { return c.observer }

// Instance returns the handle passed to OnInit.
func (c *Canvas[T]) Instance() Instance[T] { return canvasInstance[T]{c: c} }

// Component returns the component that renders n, falling back to the
// default type. Nil means n renders as a placeholder.
func (c *Canvas[T]) Component(n Node[T]) NodeComponent[T] {
	if comp, ok := c.props.NodeTypes[n.Type]; ok && comp != nil {
		return comp
	}
	if comp, ok := c.props.NodeTypes[DefaultNodeType]; ok && comp != nil {
		return comp
	}
	return nil
}

func (c *Canvas[T]) node(id string) (Node[T], bool) {
	for _, n := range c.props.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node[T]{}, false
}

// pointer converts a platform event to container coordinates.
func (c *Canvas[T]) pointer(ev PointerEvent) XYPosition {
	p := XYPosition{X: ev.X, Y: ev.Y}
	if c.container == nil {
		return p
	}
	if origin, ok := c.container.Bounds(); ok {
		p.X -= origin.X
		p.Y -= origin.Y
	}
	return p
}

// =============================================================================
// Pointer handlers
// =============================================================================

// PointerDown starts a gesture on t. Handles start connections, node bodies
// start drags; the pane does nothing.
func (c *Canvas[T]) PointerDown(ev PointerEvent, t Target) {
	switch t.Kind {
	case TargetHandle:
		c.StartConnection(t.NodeID, t.HandleID, t.HandleType)
	case TargetNode:
		c.startDrag(t.NodeID, ev)
	}
}

func (c *Canvas[T]) startDrag(nodeID string, ev PointerEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	n, ok := c.node(nodeID)
	if !ok {
		c.logger.Debug("drag ignored: unknown node", "node", nodeID)
		return
	}
	if c.Component(n) == nil {
		// Placeholders are inert.
		return
	}
	c.selected = nodeID
	p := c.pointer(ev)
	c.state = Dragging{
		NodeID:  nodeID,
		OffsetX: p.X - n.Position.X,
		OffsetY: p.Y - n.Position.Y,
	}
	observability.Canvas().OnDragStart(nodeID)
}

// PointerMove advances the current gesture. While dragging it proposes
// exactly one position change per call; while connecting it moves the free
// end of the preview.
func (c *Canvas[T]) PointerMove(ev PointerEvent) {
	p := c.pointer(ev)
	switch s := c.state.(type) {
	case Connecting:
		s.Preview.To = p
		c.state = s
	case Dragging:
		next := XYPosition{X: p.X - s.OffsetX, Y: p.Y - s.OffsetY}
		observability.Canvas().OnNodeMove(s.NodeID, next.X, next.Y)
		if c.props.OnNodesChange != nil {
			c.props.OnNodesChange([]NodeChange{{Type: ChangePosition, ID: s.NodeID, Position: next}})
		}
	}
}

// PointerUp finishes the current gesture on t. A target handle completes a
// pending connection and a node body reports a click; afterwards any
// remaining drag or connection is dropped.
func (c *Canvas[T]) PointerUp(ev PointerEvent, t Target) {
	switch t.Kind {
	case TargetHandle:
		c.CompleteConnection(t.NodeID, t.HandleID, t.HandleType)
	case TargetNode:
		n, ok := c.node(t.NodeID)
		if ok && c.Component(n) != nil && c.props.OnNodeClick != nil {
			c.props.OnNodeClick(ev, n)
		}
	}
	c.endGesture("released outside a target handle")
}

// PointerLeave abandons any gesture when the pointer exits the container.
func (c *Canvas[T]) PointerLeave() {
	c.endGesture("pointer left the canvas")
}

// Click handles a completed click. Clicking the pane clears the selection.
func (c *Canvas[T]) Click(t Target) {
	if t.Kind != TargetPane {
		return
	}
	c.selected = ""
	if c.props.OnPaneClick != nil {
		c.props.OnPaneClick()
	}
}

func (c *Canvas[T]) endGesture(reason string) {
	switch s := c.state.(type) {
	case Dragging:
		observability.Canvas().OnDragEnd(s.NodeID)
	case Connecting:
		c.logger.Debug("connection aborted", "node", s.OriginNodeID, "handle", s.OriginHandleID, "reason", reason)
		observability.Canvas().OnConnectAbort(s.OriginNodeID, s.OriginHandleID, reason)
	}
	c.state = Idle{}
}

// RemoveEdges proposes removing the named edges through OnEdgesChange.
func (c *Canvas[T]) RemoveEdges(ids ...string) {
	if len(ids) == 0 || c.props.OnEdgesChange == nil {
		return
	}
	changes := make([]EdgeChange, len(ids))
	for i, id := range ids {
		changes[i] = EdgeChange{Type: ChangeRemove, ID: id}
	}
	c.props.OnEdgesChange(changes)
}

// =============================================================================
// Registry
// =============================================================================

// RegisterHandle implements [Registry].
func (c *Canvas[T]) RegisterHandle(h HandleRegistration) HandleKey {
	return c.handles.Register(h)
}

// UnregisterHandle implements [Registry].
func (c *Canvas[T]) UnregisterHandle(key HandleKey) {
	c.handles.Unregister(key)
}

// UpdateHandlePosition implements [Registry].
func (c *Canvas[T]) UpdateHandlePosition(key HandleKey) {
	c.handles.UpdatePosition(key)
}

// StartConnection begins a connection from a source handle. Target handles
// and handles whose position is not known yet are ignored.
func (c *Canvas[T]) StartConnection(nodeID, handleID string, t HandleType) {
	if t != HandleSource {
		c.logger.Debug("connection ignored: not a source handle", "node", nodeID, "handle", handleID)
		return
	}
	pos, ok := c.handles.PositionOf(nodeID, handleID, HandleSource)
	if !ok {
		c.logger.Debug("connection ignored: handle not measured", "node", nodeID, "handle", handleID)
		return
	}
	c.state = Connecting{
		OriginNodeID:   nodeID,
		OriginHandleID: handleID,
		Preview:        Segment{From: pos, To: pos},
	}
	observability.Canvas().OnConnectStart(nodeID, handleID)
}

// CompleteConnection ends a pending connection on a target handle and
// reports it through OnConnect. Without a pending connection, or on a
// source handle, it does nothing.
func (c *Canvas[T]) CompleteConnection(nodeID, handleID string, t HandleType) {
	s, ok := c.state.(Connecting)
	if !ok || t != HandleTarget {
		return
	}
	conn := Connection{
		Source:       s.OriginNodeID,
		SourceHandle: s.OriginHandleID,
		Target:       nodeID,
		TargetHandle: handleID,
	}
	observability.Canvas().OnConnect(conn.Source, conn.SourceHandle, conn.Target, conn.TargetHandle)
	if c.props.OnConnect != nil {
		c.props.OnConnect(conn)
	}
	c.state = Idle{}
}

// =============================================================================
// Instance
// =============================================================================

type canvasInstance[T any] struct {
	c *Canvas[T]
}

func (i canvasInstance[T]) Project(p XYPosition) XYPosition { return p }
func (i canvasInstance[T]) GetNodes() []Node[T]             { return i.c.props.Nodes }
func (i canvasInstance[T]) GetEdges() []Edge                { return i.c.props.Edges }
