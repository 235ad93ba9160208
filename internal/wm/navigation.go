package wm

// changeDesktop shows desktop target on the active monitor. The new
// desktop's windows are mapped before the old ones are unmapped, the
// focused window first and last respectively, so the switch does not
// flicker.
func (m *Manager) changeDesktop(target int) {
	mon := m.monitor()
	if target == mon.Current || target < 0 || target >= len(mon.Desktops) {
		return
	}
	old := mon.desktop()
	mon.Previous, mon.Current = mon.Current, target
	next := mon.desktop()

	if c := m.store.Get(next.curr); c != nil {
		m.backend.Map(c.Window)
	}
	for _, id := range next.clients {
		if id != next.curr {
			m.backend.Map(m.store.Get(id).Window)
		}
	}

	m.backend.SuppressRootNotify(true)
	for _, id := range old.clients {
		if id != old.curr {
			m.backend.Unmap(m.store.Get(id).Window)
		}
	}
	if c := m.store.Get(old.curr); c != nil {
		m.backend.Unmap(c.Window)
	}
	m.backend.SuppressRootNotify(false)

	if next.Len() > 0 {
		m.focus(next.curr, next, mon)
	} else {
		m.backend.ClearActiveWindow()
	}
	m.backend.SetCurrentDesktop(target)
	m.desktopInfo(mon)
}

func (m *Manager) lastDesktop() {
	m.changeDesktop(m.monitor().Previous)
}

// wrap maps any integer onto [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// rotate moves dir desktops forward or back, wrapping around.
func (m *Manager) rotate(dir int) {
	mon := m.monitor()
	m.changeDesktop(wrap(mon.Current+dir, len(mon.Desktops)))
}

// rotateFilled steps by dir until it reaches a desktop holding clients. It
// gives up after one full cycle.
func (m *Manager) rotateFilled(dir int) {
	if dir == 0 {
		return
	}
	mon := m.monitor()
	n := len(mon.Desktops)
	for step := 1; step <= n; step++ {
		candidate := wrap(mon.Current+step*dir, n)
		if mon.Desktops[candidate].Len() > 0 {
			m.changeDesktop(candidate)
			return
		}
	}
}

// changeMonitor makes target the active monitor and recolors the focused
// clients of both monitors.
func (m *Manager) changeMonitor(target int) {
	if target == m.currMon || target < 0 || target >= len(m.monitors) {
		return
	}
	old := m.monitor()
	m.currMon = target
	next := m.monitor()

	m.focus(old.desktop().curr, old.desktop(), old)
	m.focus(next.desktop().curr, next.desktop(), next)
	m.backend.SetCurrentDesktop(next.Current)
	m.desktopInfo(next)
}

// detachCurrent unlinks the focused client of the active desktop and
// refocuses that desktop. hide unmaps the window first.
func (m *Manager) detachCurrent(hide bool) (ClientID, bool) {
	mon := m.monitor()
	d := mon.desktop()
	id := d.curr
	c := m.store.Get(id)
	if c == nil || !d.unlink(id) {
		return ClientID{}, false
	}
	if hide {
		m.backend.SuppressRootNotify(true)
		m.backend.Unmap(c.Window)
		m.backend.SuppressRootNotify(false)
	}
	m.focus(d.prev, d, mon)
	return id, true
}

// clientToDesktop moves the focused client to the end of desktop target on
// the same monitor.
func (m *Manager) clientToDesktop(target int) {
	mon := m.monitor()
	if target == mon.Current || target < 0 || target >= len(mon.Desktops) {
		return
	}
	id, ok := m.detachCurrent(true)
	if !ok {
		return
	}
	dest := &mon.Desktops[target]
	dest.link(id, true)
	m.focus(id, dest, mon)
	if m.cfg.FollowWindow {
		m.changeDesktop(target)
	}
}

// clientToMonitor moves the focused client to the end of the current
// desktop of monitor target, keeping its offset within the monitor, and
// makes target active.
func (m *Manager) clientToMonitor(target int) {
	if target == m.currMon || target < 0 || target >= len(m.monitors) {
		return
	}
	from := m.monitor()
	id, ok := m.detachCurrent(false)
	if !ok {
		return
	}

	to := &m.monitors[target]
	c := m.store.Get(id)
	c.X += to.Rect.X - from.Rect.X
	c.Y += to.Rect.Y - from.Rect.Y
	m.backend.Move(c.Window, c.X, c.Y)

	dest := to.desktop()
	dest.link(id, true)
	m.focus(id, dest, to)
	m.changeMonitor(target)
}
