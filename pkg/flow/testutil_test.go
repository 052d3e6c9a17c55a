package flow

// fakeSurface is a surface with a fixed, settable box.
type fakeSurface struct {
	rect   Rect
	hidden bool
}

func (s *fakeSurface) Bounds() (Rect, bool) { return s.rect, !s.hidden }

// square returns a size×size surface centered on (x, y).
func square(x, y, size float64) *fakeSurface {
	return &fakeSurface{rect: Rect{X: x - size/2, Y: y - size/2, Width: size, Height: size}}
}

// fakeObserver records subscriptions and lets tests fire them.
type fakeObserver struct {
	subs     map[Surface][]func()
	detached int
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{subs: make(map[Surface][]func())}
}

func (o *fakeObserver) Observe(s Surface, fn func()) func() {
	o.subs[s] = append(o.subs[s], fn)
	idx := len(o.subs[s]) - 1
	done := false
	return func() {
		if done {
			return
		}
		done = true
		o.detached++
		o.subs[s][idx] = nil
	}
}

// move changes the surface box and notifies its observers.
func (o *fakeObserver) move(s *fakeSurface, r Rect) {
	s.rect = r
	for _, fn := range o.subs[s] {
		if fn != nil {
			fn()
		}
	}
}

func (o *fakeObserver) active(s Surface) int {
	n := 0
	for _, fn := range o.subs[s] {
		if fn != nil {
			n++
		}
	}
	return n
}

type testData struct {
	Label string
}

var boxComponent = NodeComponentFunc[testData](func(p NodeProps[testData]) NodeContent {
	return NodeContent{Title: p.Data.Label}
})

func testTypes() map[string]NodeComponent[testData] {
	return map[string]NodeComponent[testData]{"box": boxComponent}
}
