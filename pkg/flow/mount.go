package flow

// HandleMount is a handle registered with a canvas for as long as it is on
// screen. It is created by [MountHandle] and released by Unmount.
type HandleMount struct {
	reg     Registry
	nodeID  string
	spec    HandleSpec
	key     HandleKey
	detach  func()
	mounted bool
}

// MountHandle registers the handle h of node nodeID, drawn as s, with reg
// and keeps its position current through obs.
func MountHandle(reg Registry, obs LayoutObserver, nodeID string, h HandleSpec, s Surface) *HandleMount {
	if obs == nil {
		obs = nopObserver{}
	}
	key := reg.RegisterHandle(HandleRegistration{
		NodeID:   nodeID,
		HandleID: h.ID,
		Type:     h.Type,
		Side:     h.Side,
		Surface:  s,
	})
	m := &HandleMount{reg: reg, nodeID: nodeID, spec: h, key: key, mounted: true}
	m.detach = obs.Observe(s, func() { reg.UpdateHandlePosition(key) })
	return m
}

// Key returns the registry key of the handle.
func (m *HandleMount) Key() HandleKey { return m.key }

// Spec returns the handle declaration.
func (m *HandleMount) Spec() HandleSpec { return m.spec }

// NodeID returns the owning node.
func (m *HandleMount) NodeID() string { return m.nodeID }

// PointerDown starts a connection from this handle.
func (m *HandleMount) PointerDown() {
	m.reg.StartConnection(m.nodeID, m.spec.ID, m.spec.Type)
}

// PointerUp completes a pending connection on this handle.
func (m *HandleMount) PointerUp() {
	m.reg.CompleteConnection(m.nodeID, m.spec.ID, m.spec.Type)
}

// Unmount stops observing the surface and drops the registration. It is
// safe to call more than once.
func (m *HandleMount) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.detach()
	m.reg.UnregisterHandle(m.key)
}

// NodeMount is a node box tracked by a canvas's layout registry.
type NodeMount struct {
	layouts *NodeLayoutRegistry
	nodeID  string
	detach  func()
	mounted bool
}

// MountNode starts tracking the box of nodeID drawn as s.
func (c *Canvas[T]) MountNode(nodeID string, s Surface) *NodeMount {
	c.layouts.Track(nodeID, s)
	m := &NodeMount{layouts: c.layouts, nodeID: nodeID, mounted: true}
	m.detach = c.observer.Observe(s, func() { c.layouts.Refresh(nodeID) })
	return m
}

// Unmount stops observing the box and forgets it. It is safe to call more
// than once.
func (m *NodeMount) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.detach()
	m.layouts.Untrack(m.nodeID)
}
