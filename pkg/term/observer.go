package term

import "github.com/matzehuels/treeflow/pkg/flow"

// Observer implements [flow.LayoutObserver]. [Layout] calls Notify for
// every surface whose bounds change.
type Observer struct {
	subs map[flow.Surface]map[int]func()
	next int
}

// NewObserver returns an observer with no subscriptions.
func NewObserver() *Observer {
	return &Observer{subs: make(map[flow.Surface]map[int]func())}
}

// Observe implements [flow.LayoutObserver].
func (o *Observer) Observe(s flow.Surface, fn func()) func() {
	id := o.next
	o.next++
	if o.subs[s] == nil {
		o.subs[s] = make(map[int]func())
	}
	o.subs[s][id] = fn
	return func() {
		delete(o.subs[s], id)
		if len(o.subs[s]) == 0 {
			delete(o.subs, s)
		}
	}
}

// Notify calls every callback subscribed to s.
func (o *Observer) Notify(s flow.Surface) {
	for _, fn := range o.subs[s] {
		fn()
	}
}

// Len returns the number of observed surfaces.
func (o *Observer) Len() int { return len(o.subs) }
