package wm

// focus makes id the current client of d, which lives on mon. It is the
// only place curr and prev change outside client removal.
func (m *Manager) focus(id ClientID, d *Desktop, mon *Monitor) {
	if d.Len() == 0 || m.store.Get(id) == nil {
		if d == m.desktop() {
			m.backend.ClearActiveWindow()
		}
		d.curr, d.prev = ClientID{}, ClientID{}
		return
	}

	switch {
	case d.prev == id && d.curr != d.next(id):
		// The old current client is gone: promote prev.
		d.curr = id
		d.prev = d.previousOf(id)
	case d.curr != id:
		d.prev = d.curr
		d.curr = id
	}
	if d.prev == d.curr || !d.contains(d.prev) {
		d.prev = ClientID{}
	}

	active := mon == m.monitor()
	activeCurr := m.desktop().curr
	for _, cid := range d.clients {
		c := m.store.Get(cid)
		switch {
		case cid != d.curr:
			m.backend.SetBorderColor(c.Window, m.colors.unfocus)
		case active:
			m.backend.SetBorderColor(c.Window, m.colors.focus)
		default:
			m.backend.SetBorderColor(c.Window, m.colors.infocus)
		}
		m.backend.SetBorderWidth(c.Window, m.borderWidth(c))
		if m.cfg.ClickToFocus || cid == d.curr {
			m.grabButtons(c, cid == activeCurr)
		}
	}

	c := m.store.Get(d.curr)
	c.Urgent = false
	if d != mon.desktop() {
		// Hidden desktop: history and borders only.
		return
	}
	m.backend.Raise(c.Window)
	m.backend.SetInputFocus(c.Window)
	m.backend.SetActiveWindow(c.Window)
	m.backend.Sync()
}

func (m *Manager) borderWidth(c *Client) int {
	if c.Fullscreen || c.Monocle {
		return 0
	}
	return m.cfg.BorderWidth
}

// grabButtons arms the focus button on clients other than the focused one
// and every configured button binding on all of them.
func (m *Manager) grabButtons(c *Client, focused bool) {
	if m.cfg.ClickToFocus {
		button := byte(m.cfg.FocusButton)
		if focused {
			m.backend.UngrabButton(c.Window, 0, button)
		} else {
			m.backend.GrabButton(c.Window, 0, button)
		}
	}
	for _, b := range m.bindings.Buttons {
		m.backend.GrabButton(c.Window, b.Mods, b.Button)
	}
}
