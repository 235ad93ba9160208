package wm

import (
	"github.com/1broseidon/mwm/internal/platform"
)

// handle dispatches one event.
func (m *Manager) handle(ev platform.Event) {
	switch e := ev.(type) {
	case platform.MapRequest:
		m.mapRequest(e.Window)
	case platform.UnmapNotify:
		m.unmanage(e.Window)
	case platform.DestroyNotify:
		m.unmanage(e.Window)
	case platform.ClientMessage:
		m.clientMessage(e)
	case platform.ConfigureRequest:
		m.backend.Configure(e)
		m.backend.Sync()
	case platform.PropertyNotify:
		if e.Hints {
			m.urgencyChanged(e.Window)
		}
	case platform.FocusIn:
		m.focusIn(e.Window)
	case platform.EnterNotify:
		m.enterNotify(e)
	case platform.KeyPress:
		m.keyPress(e)
	case platform.ButtonPress:
		m.buttonPress(e)
	case platform.MappingNotify:
		m.grabKeys()
	}
}

func (m *Manager) clientMessage(e platform.ClientMessage) {
	loc, ok := m.lookup(e.Window)
	if !ok {
		return
	}
	c := m.store.Get(loc.id)
	switch e.Kind {
	case platform.MessageFullscreen:
		on := e.Action == platform.StateAdd || (e.Action == platform.StateToggle && !c.Fullscreen)
		m.setFullscreen(c, loc.monitorOf(m), on)
	case platform.MessageActivate:
		m.changeMonitor(loc.monitor)
		m.changeDesktop(loc.desktop)
		m.focus(loc.id, loc.desktopOf(m), loc.monitorOf(m))
	}
}

// urgencyChanged records the urgency hint of a client. The focused client
// of the active desktop is never urgent.
func (m *Manager) urgencyChanged(win platform.WindowID) {
	loc, ok := m.lookup(win)
	if !ok {
		return
	}
	c := m.store.Get(loc.id)
	c.Urgent = loc.id != m.desktop().curr && m.backend.IsUrgent(win)
	m.clientInfo(loc.monitorOf(m))
}

// focusIn pulls input focus back to the focused client when another
// window takes it.
func (m *Manager) focusIn(win platform.WindowID) {
	mon := m.monitor()
	d := mon.desktop()
	if c := m.store.Get(d.curr); c != nil && c.Window != win {
		m.focus(d.curr, d, mon)
	}
}

func (m *Manager) enterNotify(e platform.EnterNotify) {
	if !m.cfg.FollowMouse {
		return
	}
	if e.Mode != platform.CrossingNormal && e.Detail == platform.DetailInferior {
		return
	}
	loc, ok := m.lookup(e.Window)
	if !ok {
		return
	}
	d := loc.desktopOf(m)
	if loc.id == d.curr {
		return
	}

	m.changeMonitor(loc.monitor)
	prev := m.store.Get(d.prev)
	if prev != nil {
		m.backend.SetEnterEvents(prev.Window, false)
	}
	m.focus(loc.id, d, loc.monitorOf(m))
	if prev != nil {
		m.backend.SetEnterEvents(prev.Window, true)
	}
}

func (m *Manager) keyPress(e platform.KeyPress) {
	mods := m.backend.CleanMask(e.State)
	for _, b := range m.bindings.MatchKey(e.Keycode, mods) {
		m.run(b)
	}
}

// buttonPress focuses the clicked client when the focus button hits an
// unfocused one, then runs every matching button binding on the clicked
// client.
func (m *Manager) buttonPress(e platform.ButtonPress) {
	if loc, ok := m.lookup(e.Window); ok && m.cfg.ClickToFocus && int(e.Button) == m.cfg.FocusButton {
		if loc.id != loc.desktopOf(m).curr || loc.monitor != m.currMon {
			m.changeMonitor(loc.monitor)
			m.focus(loc.id, loc.desktopOf(m), loc.monitorOf(m))
		}
	}

	for _, b := range m.bindings.MatchButton(e.Button, m.backend.CleanMask(e.State)) {
		// Earlier bindings may have moved or closed the client.
		if loc, ok := m.lookup(e.Window); ok {
			m.changeMonitor(loc.monitor)
			if d := loc.desktopOf(m); loc.id != d.curr {
				m.focus(loc.id, d, loc.monitorOf(m))
			}
		}
		m.run(b)
	}
}
