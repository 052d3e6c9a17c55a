package flow

// Surface is a rendered element whose geometry the platform can measure.
type Surface interface {
	// Bounds reports the surface's box in platform coordinates. ok is false
	// while the surface is not laid out (not mounted, hidden, off-screen).
	Bounds() (r Rect, ok bool)
}

// LayoutObserver delivers layout-change notifications for surfaces.
//
// Observe calls fn whenever s changes size or position. The returned detach
// function must be called when the observer is no longer needed; calling it
// more than once is allowed.
type LayoutObserver interface {
	Observe(s Surface, fn func()) (detach func())
}

// relativeTo measures s against the container's origin.
func relativeTo(container, s Surface) (Rect, bool) {
	if container == nil || s == nil {
		return Rect{}, false
	}
	origin, ok := container.Bounds()
	if !ok {
		return Rect{}, false
	}
	r, ok := s.Bounds()
	if !ok {
		return Rect{}, false
	}
	return r.Offset(XYPosition{X: origin.X, Y: origin.Y}), true
}

// nopObserver is used when a canvas is built without an observer.
type nopObserver struct{}

func (nopObserver) Observe(Surface, func()) func() { return func() {} }
