package flow

// Background is the dotted or lined grid behind the diagram.
type Background struct {
	Color string
	Gap   float64
}

// DefaultBackground matches the stock grid.
var DefaultBackground = Background{Color: "#f0f0f0", Gap: 16}

// WithDefaults fills zero fields from DefaultBackground.
func (b Background) WithDefaults() Background {
	if b.Color == "" {
		b.Color = DefaultBackground.Color
	}
	if b.Gap <= 0 {
		b.Gap = DefaultBackground.Gap
	}
	return b
}

// Placement is a corner of the container.
type Placement string

// Control placements.
const (
	TopLeft     Placement = "top-left"
	TopRight    Placement = "top-right"
	BottomLeft  Placement = "bottom-left"
	BottomRight Placement = "bottom-right"
)

// ControlsInset is the distance of the controls from the container edges.
const ControlsInset = 12

// Controls is the zoom widget overlay. Zoom is not implemented, so the
// buttons are decoration only.
type Controls struct {
	Placement Placement
}

// ControlButtons lists the control buttons top to bottom.
var ControlButtons = []string{"+", "-", "⤢"}

// Corner returns the effective placement; unknown values fall back to
// bottom-left.
func (c Controls) Corner() Placement {
	switch c.Placement {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return c.Placement
	}
	return BottomLeft
}

// Origin returns the top-left point of a w×h control panel inside a
// container of the given size.
func (c Controls) Origin(containerW, containerH, w, h float64) XYPosition {
	switch c.Corner() {
	case TopLeft:
		return XYPosition{X: ControlsInset, Y: ControlsInset}
	case TopRight:
		return XYPosition{X: containerW - ControlsInset - w, Y: ControlsInset}
	case BottomRight:
		return XYPosition{X: containerW - ControlsInset - w, Y: containerH - ControlsInset - h}
	default:
		return XYPosition{X: ControlsInset, Y: containerH - ControlsInset - h}
	}
}
