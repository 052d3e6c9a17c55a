package term

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/treeflow/pkg/flow"
)

// Card sizing, in cells.
const (
	minInnerCols = 14
	maxInnerCols = 30
	cardPadCols  = 4 // border and one space on each side
	cardPadRows  = 3 // border and title
)

type portKey struct {
	id string
	t  flow.HandleType
}

type cardMount struct {
	card  *Card
	mount *flow.NodeMount
	ports map[portKey]*portMount
	order []portKey
}

type portMount struct {
	port  *Port
	mount *flow.HandleMount
}

// Layout places the cards and ports of a canvas on a [Screen].
type Layout[T any] struct {
	canvas   *flow.Canvas[T]
	screen   *Screen
	observer *Observer
	renderer *lipgloss.Renderer

	cards map[string]*cardMount
	order []string
}

// LayoutOption configures a Layout.
type LayoutOption func(*layoutOptions)

type layoutOptions struct {
	renderer *lipgloss.Renderer
}

// WithRenderer sets the lipgloss renderer used by Draw.
func WithRenderer(r *lipgloss.Renderer) LayoutOption {
	return func(o *layoutOptions) {
		if r != nil {
			o.renderer = r
		}
	}
}

// NewLayout returns a layout for canvas, which must have been created with
// screen as its container and obs as its observer.
func NewLayout[T any](canvas *flow.Canvas[T], screen *Screen, obs *Observer, opts ...LayoutOption) *Layout[T] {
	o := layoutOptions{renderer: lipgloss.DefaultRenderer()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Layout[T]{
		canvas:   canvas,
		screen:   screen,
		observer: obs,
		renderer: o.renderer,
		cards:    make(map[string]*cardMount),
	}
}

// Screen returns the container.
func (l *Layout[T]) Screen() *Screen { return l.screen }

// Card returns the card of a node.
func (l *Layout[T]) Card(nodeID string) (*Card, bool) {
	cm, ok := l.cards[nodeID]
	if !ok {
		return nil, false
	}
	return cm.card, true
}

// Nodes returns the ids of mounted cards in drawing order.
func (l *Layout[T]) Nodes() []string { return l.order }

// Ports returns the ports of a node in declaration order.
func (l *Layout[T]) Ports(nodeID string) []*Port {
	cm, ok := l.cards[nodeID]
	if !ok {
		return nil
	}
	out := make([]*Port, 0, len(cm.order))
	for _, k := range cm.order {
		out = append(out, cm.ports[k].port)
	}
	return out
}

// Sync mounts, moves and unmounts cards and ports so they match views.
// Cards whose box changed notify their observers, which re-measures them
// and their handles in the canvas registries.
func (l *Layout[T]) Sync(views []flow.NodeView[T]) {
	m := l.screen.Metrics()
	seen := make(map[string]bool, len(views))
	order := make([]string, 0, len(views))

	for _, v := range views {
		id := v.Node.ID
		if seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)

		cm, ok := l.cards[id]
		if !ok {
			cm = &cardMount{card: &Card{metrics: m}, ports: make(map[portKey]*portMount)}
			cm.mount = l.canvas.MountNode(id, cm.card)
			l.cards[id] = cm
		}

		inner, lines := fitContent(v.Content)
		cm.card.content = flow.NodeContent{Title: v.Content.Title, Lines: lines, Accent: v.Content.Accent, Handles: v.Content.Handles}
		cm.card.innerCols = inner
		cm.card.selected = v.Selected
		cm.card.inert = v.Placeholder

		col, row := m.Nearest(v.Node.Position)
		moved := cm.card.place(col, row, inner+cardPadCols, len(lines)+cardPadRows)

		l.syncPorts(id, cm, v.Content.Handles, moved)
		if moved {
			l.observer.Notify(cm.card)
		}
	}

	for id, cm := range l.cards {
		if seen[id] {
			continue
		}
		for _, pm := range cm.ports {
			pm.mount.Unmount()
		}
		cm.mount.Unmount()
		delete(l.cards, id)
	}
	l.order = order
}

func (l *Layout[T]) syncPorts(nodeID string, cm *cardMount, specs []flow.HandleSpec, moved bool) {
	want := make(map[portKey]bool, len(specs))
	order := make([]portKey, 0, len(specs))
	for _, h := range specs {
		k := portKey{h.ID, h.Type}
		if want[k] {
			continue
		}
		want[k] = true
		order = append(order, k)

		pm, ok := cm.ports[k]
		switch {
		case !ok:
			p := &Port{card: cm.card, spec: h}
			cm.ports[k] = &portMount{port: p, mount: flow.MountHandle(l.canvas, l.observer, nodeID, h, p)}
		case pm.port.spec != h:
			pm.port.spec = h
			l.observer.Notify(pm.port)
		case moved:
			l.observer.Notify(pm.port)
		}
	}
	for k, pm := range cm.ports {
		if !want[k] {
			pm.mount.Unmount()
			delete(cm.ports, k)
		}
	}
	cm.order = order
}

// HitTest reports what lies under a cell: a port, else the topmost card,
// else the pane.
func (l *Layout[T]) HitTest(col, row int) flow.Target {
	for _, id := range slices.Backward(l.order) {
		cm := l.cards[id]
		for _, k := range cm.order {
			p := cm.ports[k].port
			if pc, pr, ok := p.Cell(); ok && pc == col && pr == row {
				return flow.HandleAt(id, k.id, k.t)
			}
		}
	}
	for _, id := range slices.Backward(l.order) {
		if l.cards[id].card.Contains(col, row) {
			return flow.NodeTarget(id)
		}
	}
	return flow.PaneTarget
}

// fitContent sizes a card to its content and truncates long lines.
func fitContent(c flow.NodeContent) (inner int, lines []string) {
	inner = runewidth.StringWidth(c.Title)
	for _, ln := range c.Lines {
		inner = max(inner, runewidth.StringWidth(ln))
	}
	inner = min(max(inner, minInnerCols), maxInnerCols)

	lines = make([]string, 0, len(c.Lines))
	for _, ln := range c.Lines {
		lines = append(lines, runewidth.Truncate(ln, inner, "…"))
	}
	return inner, lines
}
