package wm

import (
	"github.com/1broseidon/mwm/internal/movemode"
	"github.com/1broseidon/mwm/internal/platform"
)

// mouseMotion drags the focused client with the pointer until the button
// is released. Resizing starts with the pointer warped to the bottom-right
// corner. Nothing happens unless the pointer is over the focused client
// and the grab succeeds.
func (m *Manager) mouseMotion(kind movemode.Kind) {
	if m.drag.IsActive() {
		return
	}
	id := m.desktop().curr
	c := m.store.Get(id)
	if c == nil {
		return
	}
	win := c.Window
	attrs, err := m.backend.WindowAttributes(win)
	if err != nil {
		return
	}
	if kind == movemode.KindResize {
		m.backend.WarpPointer(win, attrs.Bounds.Width-1, attrs.Bounds.Height-1)
	}

	x, y, child, err := m.backend.QueryPointer()
	if err != nil || child != win {
		return
	}
	if !m.backend.GrabPointer() {
		return
	}

	d := movemode.NewDrag(kind, win, x, y, attrs.Bounds, m.cfg.MinWindowSize)
	deferred, err := m.drag.Run(m.backend, d, movemode.Hooks{
		Apply: func(r platform.Rect) {
			// Map requests handled mid-drag can grow the store, so
			// the client is looked up again on every sample.
			c := m.store.Get(id)
			if c == nil {
				return
			}
			if kind == movemode.KindMove {
				c.X, c.Y = r.X, r.Y
				m.backend.Move(win, r.X, r.Y)
				return
			}
			c.W, c.H = r.Width, r.Height
			m.backend.MoveResize(win, r)
		},
		PassThrough: m.handle,
	})
	m.backend.UngrabPointer()
	if err != nil {
		m.fail(err)
		return
	}
	for _, ev := range deferred {
		m.handle(ev)
	}
}
