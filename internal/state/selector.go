package state

import "github.com/five82/trapmeta/internal/trapapi"

// Phase is the region selector's state.
type Phase int

const (
	// Idle means no identification gesture is active.
	Idle Phase = iota
	// Selecting means identify mode is on and waits for a pointer press.
	Selecting
	// Dragging means a selection box follows the pointer.
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Selecting:
		return "selecting"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Point is a position in display pixels relative to the preview pane.
type Point struct {
	X int
	Y int
}

// Rect is a box in display pixels relative to the preview pane.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Geometry describes how the image sits inside the preview pane. Offsets and
// client sizes are display pixels; natural sizes are image pixels.
type Geometry struct {
	OffsetX       int
	OffsetY       int
	ClientWidth   int
	ClientHeight  int
	NaturalWidth  int
	NaturalHeight int
}

// Valid reports whether the geometry can scale a selection.
func (g Geometry) Valid() bool {
	return g.ClientWidth > 0 && g.ClientHeight > 0 && g.NaturalWidth > 0 && g.NaturalHeight > 0
}

// Contains reports whether p lies on the displayed image.
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.OffsetX && p.X < g.OffsetX+g.ClientWidth &&
		p.Y >= g.OffsetY && p.Y < g.OffsetY+g.ClientHeight
}

// Selector is the Idle/Selecting/Dragging state machine. Anchor and Box are
// meaningful only while Dragging.
type Selector struct {
	Phase  Phase
	Anchor Point
	Box    Rect
}

// Active reports whether a gesture is in progress.
func (s Selector) Active() bool {
	return s.Phase != Idle
}

// Toggle enters Selecting from Idle and cancels from any other phase.
func (s Selector) Toggle() Selector {
	if s.Phase == Idle {
		return Selector{Phase: Selecting}
	}
	return Selector{}
}

// Cancel returns to Idle.
func (s Selector) Cancel() Selector {
	return Selector{}
}

// Press anchors a drag at p when Selecting and p is on the image.
func (s Selector) Press(p Point, g Geometry) (Selector, bool) {
	if s.Phase != Selecting || !g.Contains(p) {
		return s, false
	}
	return Selector{Phase: Dragging, Anchor: p, Box: Rect{X: p.X, Y: p.Y}}, true
}

// Move stretches the box between the anchor and p.
func (s Selector) Move(p Point) Selector {
	if s.Phase != Dragging {
		return s
	}
	s.Box = boxBetween(s.Anchor, p)
	return s
}

// Release ends a drag at p. The selector always returns to Idle; the natural
// space selection is reported only when the box is at least minSize display
// pixels on both axes and g can scale it.
func (s Selector) Release(p Point, g Geometry, minSize int) (Selector, trapapi.Selection, bool) {
	if s.Phase != Dragging {
		return s, trapapi.Selection{}, false
	}
	box := boxBetween(s.Anchor, p)
	if box.Width < minSize || box.Height < minSize || !g.Valid() {
		return Selector{}, trapapi.Selection{}, false
	}
	return Selector{}, ToNatural(box, g), true
}

// ToNatural converts a pane-relative display box to natural image pixels.
// Each axis is scaled independently and the origin is clamped at zero.
func ToNatural(box Rect, g Geometry) trapapi.Selection {
	scaleX := float64(g.NaturalWidth) / float64(g.ClientWidth)
	scaleY := float64(g.NaturalHeight) / float64(g.ClientHeight)
	sel := trapapi.Selection{
		X:      float64(box.X-g.OffsetX) * scaleX,
		Y:      float64(box.Y-g.OffsetY) * scaleY,
		Width:  float64(box.Width) * scaleX,
		Height: float64(box.Height) * scaleY,
	}
	sel.X = max(sel.X, 0)
	sel.Y = max(sel.Y, 0)
	return sel
}

func boxBetween(a, b Point) Rect {
	r := Rect{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  abs(b.X - a.X),
		Height: abs(b.Y - a.Y),
	}
	r.X = max(r.X, 0)
	r.Y = max(r.Y, 0)
	return r
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
