package flow

// Segment is a straight line between two container-relative points.
type Segment struct {
	From XYPosition
	To   XYPosition
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() XYPosition {
	return XYPosition{X: (s.From.X + s.To.X) / 2, Y: (s.From.Y + s.To.Y) / 2}
}

// Interaction is the transient pointer state of a canvas: one of [Idle],
// [Dragging] or [Connecting].
type Interaction interface {
	interaction()
}

// Idle means no gesture is in progress.
type Idle struct{}

// Dragging means a node follows the pointer. The offset is the distance
// from the node origin to the pointer at drag start.
type Dragging struct {
	NodeID  string
	OffsetX float64
	OffsetY float64
}

// Connecting means a rubber-band line runs from a source handle to the
// pointer.
type Connecting struct {
	OriginNodeID   string
	OriginHandleID string
	Preview        Segment
}

func (Idle) interaction()       {}
func (Dragging) interaction()   {}
func (Connecting) interaction() {}

// Registry is the surface that node and handle components use to talk to
// the canvas they live in. It is handed to them explicitly at mount time.
type Registry interface {
	RegisterHandle(h HandleRegistration) HandleKey
	UnregisterHandle(key HandleKey)
	UpdateHandlePosition(key HandleKey)
	StartConnection(nodeID, handleID string, t HandleType)
	CompleteConnection(nodeID, handleID string, t HandleType)
}

// =============================================================================
// Pointer input
// =============================================================================

// PointerButton identifies a mouse button.
type PointerButton int

// Pointer buttons.
const (
	ButtonPrimary PointerButton = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a pointer sample in platform coordinates.
type PointerEvent struct {
	X, Y   float64
	Button PointerButton
}

// TargetKind is what a pointer event landed on.
type TargetKind int

// Target kinds.
const (
	TargetPane TargetKind = iota
	TargetNode
	TargetHandle
)

// Target describes the element under the pointer, as reported by the
// platform's hit testing.
type Target struct {
	Kind       TargetKind
	NodeID     string
	HandleID   string
	HandleType HandleType
}

// PaneTarget is the empty canvas.
var PaneTarget = Target{Kind: TargetPane}

// NodeTarget is the body of node id.
func NodeTarget(id string) Target { return Target{Kind: TargetNode, NodeID: id} }

// HandleAt is a handle of a node.
func HandleAt(nodeID, handleID string, t HandleType) Target {
	return Target{Kind: TargetHandle, NodeID: nodeID, HandleID: handleID, HandleType: t}
}
