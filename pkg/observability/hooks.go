// Package observability provides hooks for tracing canvas interactions.
//
// The engine emits an event for every gesture transition without knowing
// who listens. Consumers register a [CanvasHooks] implementation at
// startup; the default is a no-op so library users pay nothing.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCanvasHooks(&logHooks{logger: logger})
//	    // ... run application
//	}
//
// The engine calls hooks as gestures progress:
//
//	observability.Canvas().OnDragStart(nodeID)
//	observability.Canvas().OnNodeMove(nodeID, x, y)
package observability

import "sync"

// =============================================================================
// Canvas Hooks
// =============================================================================

// CanvasHooks receives events from canvas pointer interactions.
type CanvasHooks interface {
	// Drag events
	OnDragStart(nodeID string)
	OnNodeMove(nodeID string, x, y float64)
	OnDragEnd(nodeID string)

	// Connection events
	OnConnectStart(nodeID, handleID string)
	OnConnect(source, sourceHandle, target, targetHandle string)
	OnConnectAbort(nodeID, handleID, reason string)

	// OnEdgeSkipped records an edge left out of a render pass because one
	// of its anchors could not be resolved.
	OnEdgeSkipped(edgeID string)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopCanvasHooks is a no-op implementation of CanvasHooks.
type NoopCanvasHooks struct{}

func (NoopCanvasHooks) OnDragStart(string)                       {}
func (NoopCanvasHooks) OnNodeMove(string, float64, float64)      {}
func (NoopCanvasHooks) OnDragEnd(string)                         {}
func (NoopCanvasHooks) OnConnectStart(string, string)            {}
func (NoopCanvasHooks) OnConnect(string, string, string, string) {}
func (NoopCanvasHooks) OnConnectAbort(string, string, string)    {}
func (NoopCanvasHooks) OnEdgeSkipped(string)                     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	canvasHooks CanvasHooks = NoopCanvasHooks{}
	hooksMu     sync.RWMutex
)

// SetCanvasHooks registers custom canvas hooks. Nil is ignored.
// This should be called once at application startup before any canvas is used.
func SetCanvasHooks(h CanvasHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		canvasHooks = h
	}
}

// Canvas returns the registered canvas hooks.
func Canvas() CanvasHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return canvasHooks
}

// Reset restores the hooks to their no-op default.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	canvasHooks = NoopCanvasHooks{}
}
