package movemode

import (
	"fmt"

	"github.com/1broseidon/mwm/internal/platform"
)

// Source supplies events while the pointer is grabbed.
type Source interface {
	NextEvent() (platform.Event, error)
}

// Hooks are called from inside the drag loop.
type Hooks struct {
	// Apply receives the dragged window's new geometry after each motion.
	Apply func(platform.Rect)
	// PassThrough handles configure and map requests so other windows
	// can announce themselves mid-drag.
	PassThrough func(platform.Event)
}

// Mode runs pointer drags. Only one drag can be active at a time.
type Mode struct {
	phase Phase
	drag  *Drag
}

// New creates an inactive Mode.
func New() *Mode {
	return &Mode{phase: PhaseInactive}
}

// Phase returns the current phase.
func (m *Mode) Phase() Phase {
	return m.phase
}

// IsActive returns whether a drag is in progress.
func (m *Mode) IsActive() bool {
	return m.phase == PhaseDragging
}

// Run consumes events from src until a ButtonRelease. Motion updates d and
// is reported through hooks.Apply; configure and map requests go to
// hooks.PassThrough. Every other event is returned, in arrival order, for
// dispatch once the drag is over. Run is a no-op while another drag is
// active.
func (m *Mode) Run(src Source, d *Drag, hooks Hooks) ([]platform.Event, error) {
	if m.IsActive() {
		return nil, nil
	}
	m.phase = PhaseDragging
	m.drag = d
	defer func() {
		m.phase = PhaseInactive
		m.drag = nil
	}()

	var deferred []platform.Event
	for {
		ev, err := src.NextEvent()
		if err != nil {
			return deferred, fmt.Errorf("drag %s: %w", d.Kind, err)
		}
		switch e := ev.(type) {
		case platform.MotionNotify:
			r := d.Update(e.RootX, e.RootY)
			if hooks.Apply != nil {
				hooks.Apply(r)
			}
		case platform.ButtonRelease:
			return deferred, nil
		case platform.ConfigureRequest, platform.MapRequest:
			if hooks.PassThrough != nil {
				hooks.PassThrough(ev)
			}
		default:
			deferred = append(deferred, ev)
		}
	}
}
