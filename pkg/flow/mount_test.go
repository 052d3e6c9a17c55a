package flow

import "testing"

func TestMountHandleTracksLayoutChanges(t *testing.T) {
	obs := newFakeObserver()
	c := NewCanvas[testData](&fakeSurface{rect: Rect{Width: 800, Height: 600}}, obs)
	s := square(10, 10, 4)

	m := MountHandle(c, obs, "A", HandleSpec{ID: "out", Type: HandleSource, Side: Bottom}, s)
	if m.Key() != KeyOf("A", "out", HandleSource) {
		t.Errorf("Key() = %q", m.Key())
	}

	obs.move(s, Rect{X: 48, Y: 98, Width: 4, Height: 4})
	if p, _ := c.Handles().PositionOf("A", "out", HandleSource); p != (XYPosition{X: 50, Y: 100}) {
		t.Errorf("position after move = %v, want {50 100}", p)
	}

	m.Unmount()
	m.Unmount()
	if obs.active(s) != 0 {
		t.Error("Unmount() should detach the observer")
	}
	if obs.detached != 1 {
		t.Errorf("detached = %d, want 1", obs.detached)
	}
	if _, ok := c.Handles().PositionOf("A", "out", HandleSource); ok {
		t.Error("Unmount() should clear the cached position")
	}
}

func TestHandleMountPointerForwarding(t *testing.T) {
	f := newConnectFixture(t)
	src := MountHandle(f.canvas, f.observer, "A", HandleSpec{ID: "left", Type: HandleSource, Side: Left}, square(0, 50, 12))
	dst := MountHandle(f.canvas, f.observer, "B", HandleSpec{ID: "in", Type: HandleTarget, Side: Top}, square(300, 10, 12))

	src.PointerDown()
	dst.PointerUp()

	if len(f.connects) != 1 {
		t.Fatalf("OnConnect calls = %d, want 1", len(f.connects))
	}
	if got := f.connects[0]; got.SourceHandle != "left" || got.TargetHandle != "in" {
		t.Errorf("connection = %+v, want left -> in", got)
	}
}

func TestMountNodeTracksLayoutChanges(t *testing.T) {
	obs := newFakeObserver()
	c := NewCanvas[testData](&fakeSurface{rect: Rect{Width: 800, Height: 600}}, obs)
	box := &fakeSurface{rect: Rect{Width: 20, Height: 20}}

	m := c.MountNode("n", box)
	obs.move(box, Rect{X: 100, Y: 100, Width: 20, Height: 20})
	if p, _ := c.Layouts().CenterOf("n"); p != (XYPosition{X: 110, Y: 110}) {
		t.Errorf("CenterOf() = %v, want {110 110}", p)
	}

	m.Unmount()
	if _, ok := c.Layouts().CenterOf("n"); ok {
		t.Error("Unmount() should forget the node box")
	}
	if obs.active(box) != 0 {
		t.Error("Unmount() should detach the observer")
	}
}

func TestControlsPlacement(t *testing.T) {
	tests := []struct {
		placement Placement
		want      XYPosition
	}{
		{TopLeft, XYPosition{X: 12, Y: 12}},
		{TopRight, XYPosition{X: 168, Y: 12}},
		{BottomRight, XYPosition{X: 168, Y: 68}},
		{BottomLeft, XYPosition{X: 12, Y: 68}},
		{"sideways", XYPosition{X: 12, Y: 68}},
	}

	for _, tt := range tests {
		t.Run(string(tt.placement), func(t *testing.T) {
			got := Controls{Placement: tt.placement}.Origin(200, 100, 20, 20)
			if got != tt.want {
				t.Errorf("Origin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBackgroundDefaults(t *testing.T) {
	if got := (Background{}).WithDefaults(); got != DefaultBackground {
		t.Errorf("WithDefaults() = %+v, want %+v", got, DefaultBackground)
	}
	if got := (Background{Color: "#000", Gap: 8}).WithDefaults(); got.Gap != 8 || got.Color != "#000" {
		t.Errorf("WithDefaults() overrode explicit values: %+v", got)
	}
}
