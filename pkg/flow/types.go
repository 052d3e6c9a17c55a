package flow

import "fmt"

// Position is the side of a node a handle is attached to.
type Position string

// Handle sides.
const (
	Left   Position = "left"
	Right  Position = "right"
	Top    Position = "top"
	Bottom Position = "bottom"
)

// HandleType tells whether a handle starts or ends an edge.
type HandleType string

// Handle types.
const (
	HandleSource HandleType = "source"
	HandleTarget HandleType = "target"
)

// MarkerType identifies an edge end decoration.
type MarkerType string

// MarkerArrowClosed is a filled arrowhead.
const MarkerArrowClosed MarkerType = "arrowclosed"

// XYPosition is a point in container-relative pixels.
type XYPosition struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p XYPosition) Add(q XYPosition) XYPosition { return XYPosition{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p XYPosition) Sub(q XYPosition) XYPosition { return XYPosition{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is an axis-aligned box.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the midpoint of the box.
func (r Rect) Center() XYPosition {
	return XYPosition{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p XYPosition) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Offset returns r translated by -origin.
func (r Rect) Offset(origin XYPosition) Rect {
	return Rect{X: r.X - origin.X, Y: r.Y - origin.Y, Width: r.Width, Height: r.Height}
}

// =============================================================================
// Nodes and Edges
// =============================================================================

// Node is a caller-owned diagram node. Type selects the [NodeComponent]
// used to render it; Data is opaque to the engine.
type Node[T any] struct {
	ID       string     `json:"id" toml:"id" yaml:"id"`
	Type     string     `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
	Position XYPosition `json:"position" toml:"position" yaml:"position"`
	Data     T          `json:"data" toml:"data" yaml:"data"`
}

// Marker decorates the end of an edge.
type Marker struct {
	Type MarkerType `json:"type" toml:"type" yaml:"type"`
}

// Edge is a caller-owned directed connection. Empty SourceHandle,
// TargetHandle, Type and Label mean the field is absent.
type Edge struct {
	ID           string  `json:"id" toml:"id" yaml:"id"`
	Source       string  `json:"source" toml:"source" yaml:"source"`
	Target       string  `json:"target" toml:"target" yaml:"target"`
	SourceHandle string  `json:"sourceHandle,omitempty" toml:"source_handle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string  `json:"targetHandle,omitempty" toml:"target_handle,omitempty" yaml:"targetHandle,omitempty"`
	Type         string  `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
	Label        string  `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	MarkerEnd    *Marker `json:"markerEnd,omitempty" toml:"marker_end,omitempty" yaml:"markerEnd,omitempty"`
}

// HasArrow reports whether the edge ends in a closed arrowhead.
func (e Edge) HasArrow() bool {
	return e.MarkerEnd != nil && e.MarkerEnd.Type == MarkerArrowClosed
}

// Connection is a proposed edge. It is complete only when both Source and
// Target are set.
type Connection struct {
	Source       string `json:"source,omitempty"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	Target       string `json:"target,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Complete reports whether both endpoints are present.
func (c Connection) Complete() bool { return c.Source != "" && c.Target != "" }

// =============================================================================
// Changes
// =============================================================================

// ChangeType names the kind of a proposed mutation.
type ChangeType string

// Change types.
const (
	ChangePosition ChangeType = "position"
	ChangeRemove   ChangeType = "remove"
)

// NodeChange proposes a new position for a node.
type NodeChange struct {
	Type     ChangeType `json:"type"`
	ID       string     `json:"id"`
	Position XYPosition `json:"position"`
}

// EdgeChange proposes removing an edge. Removal is the only edge change.
type EdgeChange struct {
	Type ChangeType `json:"type"`
	ID   string     `json:"id"`
}

// =============================================================================
// Handles
// =============================================================================

// HandleKey identifies a handle registration: one per (node, handle, type).
type HandleKey string

// KeyOf builds the registry key for a handle.
func KeyOf(nodeID, handleID string, t HandleType) HandleKey {
	return HandleKey(fmt.Sprintf("%s:%s:%s", nodeID, handleID, t))
}

// HandleSpec is what a node component declares for each of its handles.
type HandleSpec struct {
	ID    string
	Type  HandleType
	Side  Position
	Color string // optional accent, platform interpreted
}

// HandleRegistration binds a handle declaration to its rendered surface.
type HandleRegistration struct {
	NodeID   string
	HandleID string
	Type     HandleType
	Side     Position
	Surface  Surface
}

// Key returns the registry key of the registration.
func (h HandleRegistration) Key() HandleKey { return KeyOf(h.NodeID, h.HandleID, h.Type) }
