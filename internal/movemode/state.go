package movemode

import (
	"github.com/1broseidon/mwm/internal/platform"
)

// Phase represents the current phase of move mode
type Phase int

const (
	// PhaseInactive means no drag is in progress
	PhaseInactive Phase = iota
	// PhaseDragging means the pointer is grabbed and motion updates a window
	PhaseDragging
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Kind selects what a drag changes.
type Kind int

const (
	KindMove Kind = iota
	KindResize
)

func (k Kind) String() string {
	if k == KindResize {
		return "resize"
	}
	return "move"
}

// ParseKind maps a mouse_motion argument onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "move":
		return KindMove, true
	case "resize":
		return KindResize, true
	}
	return KindMove, false
}

// Drag tracks a single pointer drag. Start is the pointer position on the
// root window when the grab began and Origin the window geometry at that
// moment.
type Drag struct {
	Kind    Kind
	Window  platform.WindowID
	StartX  int
	StartY  int
	Origin  platform.Rect
	MinSize int

	current platform.Rect
}

// NewDrag starts tracking a drag of window.
func NewDrag(kind Kind, window platform.WindowID, startX, startY int, origin platform.Rect, minSize int) *Drag {
	return &Drag{
		Kind:    kind,
		Window:  window,
		StartX:  startX,
		StartY:  startY,
		Origin:  origin,
		MinSize: minSize,
		current: origin,
	}
}

// Current returns the geometry after the last motion sample.
func (d *Drag) Current() platform.Rect {
	return d.current
}

// Update applies a motion sample at (rootX, rootY). A resize that would
// leave an axis at or below MinSize keeps that axis at its previous value.
func (d *Drag) Update(rootX, rootY int) platform.Rect {
	dx := rootX - d.StartX
	dy := rootY - d.StartY

	switch d.Kind {
	case KindMove:
		d.current.X = d.Origin.X + dx
		d.current.Y = d.Origin.Y + dy
	case KindResize:
		if w := d.Origin.Width + dx; w > d.MinSize {
			d.current.Width = w
		}
		if h := d.Origin.Height + dy; h > d.MinSize {
			d.current.Height = h
		}
	}
	return d.current
}
