package flow

// HandleRegistry tracks every mounted handle and caches its center point
// relative to the container. Entries are created and dropped by handle
// mount/unmount; lookups for unknown handles are a normal state, not an
// error.
type HandleRegistry struct {
	container Surface
	handles   map[HandleKey]HandleRegistration
	positions map[HandleKey]XYPosition
}

// NewHandleRegistry creates an empty registry measuring against container.
func NewHandleRegistry(container Surface) *HandleRegistry {
	return &HandleRegistry{
		container: container,
		handles:   make(map[HandleKey]HandleRegistration),
		positions: make(map[HandleKey]XYPosition),
	}
}

// Register stores h, replacing any registration with the same key, and
// measures it immediately.
func (r *HandleRegistry) Register(h HandleRegistration) HandleKey {
	key := h.Key()
	r.handles[key] = h
	r.UpdatePosition(key)
	return key
}

// Unregister drops the registration and its cached position.
func (r *HandleRegistry) Unregister(key HandleKey) {
	delete(r.handles, key)
	delete(r.positions, key)
}

// UpdatePosition re-measures the handle's center. Unknown keys and
// surfaces that cannot be measured leave the cache untouched.
func (r *HandleRegistry) UpdatePosition(key HandleKey) {
	h, ok := r.handles[key]
	if !ok {
		return
	}
	rect, ok := relativeTo(r.container, h.Surface)
	if !ok {
		return
	}
	r.positions[key] = rect.Center()
}

// UpdateAll re-measures every registered handle.
func (r *HandleRegistry) UpdateAll() {
	for key := range r.handles {
		r.UpdatePosition(key)
	}
}

// PositionOf returns the cached center of a handle. An empty handleID
// never resolves.
func (r *HandleRegistry) PositionOf(nodeID, handleID string, t HandleType) (XYPosition, bool) {
	if handleID == "" {
		return XYPosition{}, false
	}
	p, ok := r.positions[KeyOf(nodeID, handleID, t)]
	return p, ok
}

// Lookup returns the registration stored under key.
func (r *HandleRegistry) Lookup(key HandleKey) (HandleRegistration, bool) {
	h, ok := r.handles[key]
	return h, ok
}

// Len returns the number of registered handles.
func (r *HandleRegistry) Len() int { return len(r.handles) }
