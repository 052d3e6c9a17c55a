package flow

// NodeLayoutRegistry tracks the rendered box of each mounted node, relative
// to the container. The box center is the anchor of last resort when an
// edge's handle cannot be resolved.
type NodeLayoutRegistry struct {
	container Surface
	surfaces  map[string]Surface
	rects     map[string]Rect
}

// NewNodeLayoutRegistry creates an empty registry measuring against container.
func NewNodeLayoutRegistry(container Surface) *NodeLayoutRegistry {
	return &NodeLayoutRegistry{
		container: container,
		surfaces:  make(map[string]Surface),
		rects:     make(map[string]Rect),
	}
}

// Track starts following the surface rendered for nodeID and measures it.
func (r *NodeLayoutRegistry) Track(nodeID string, s Surface) {
	r.surfaces[nodeID] = s
	r.Refresh(nodeID)
}

// Untrack forgets the node and its last measured box.
func (r *NodeLayoutRegistry) Untrack(nodeID string) {
	delete(r.surfaces, nodeID)
	delete(r.rects, nodeID)
}

// Refresh re-measures one node. Nodes that cannot be measured keep their
// previous box.
func (r *NodeLayoutRegistry) Refresh(nodeID string) {
	s, ok := r.surfaces[nodeID]
	if !ok {
		return
	}
	if rect, ok := relativeTo(r.container, s); ok {
		r.rects[nodeID] = rect
	}
}

// RefreshAll re-measures every tracked node.
func (r *NodeLayoutRegistry) RefreshAll() {
	for id := range r.surfaces {
		r.Refresh(id)
	}
}

// RectOf returns the last measured box of a node.
func (r *NodeLayoutRegistry) RectOf(nodeID string) (Rect, bool) {
	rect, ok := r.rects[nodeID]
	return rect, ok
}

// CenterOf returns the center of a node's box.
func (r *NodeLayoutRegistry) CenterOf(nodeID string) (XYPosition, bool) {
	rect, ok := r.rects[nodeID]
	if !ok {
		return XYPosition{}, false
	}
	return rect.Center(), true
}
