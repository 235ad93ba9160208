package wm

import (
	"strings"

	"github.com/1broseidon/mwm/internal/platform"
)

// addWindow stores a client for win and links it into d.
func (m *Manager) addWindow(win platform.WindowID, d *Desktop) ClientID {
	id := m.store.Alloc(Client{Window: win})
	d.link(id, m.cfg.AttachAside)
	m.backend.SelectClientInput(win, m.cfg.FollowMouse)
	return id
}

// removeClient unlinks id from d and moves focus if id held it. The
// client is freed last.
func (m *Manager) removeClient(id ClientID, d *Desktop, mon *Monitor) {
	if !d.unlink(id) {
		return
	}
	if id == d.prev {
		d.prev = d.previousOf(d.curr)
		if !d.prev.Valid() {
			d.prev = d.Head()
		}
	}
	if id == d.curr || d.Len() == 1 {
		target := d.prev
		if !d.contains(target) {
			target = d.Head()
		}
		m.focus(target, d, mon)
	}
	m.store.Free(id)
}

// unmanage drops the client holding win, if any.
func (m *Manager) unmanage(win platform.WindowID) {
	loc, ok := m.lookup(win)
	if !ok {
		return
	}
	m.logger.Debug("unmanage window", "window", win)
	m.removeClient(loc.id, loc.desktopOf(m), loc.monitorOf(m))
}

func (m *Manager) mapRequest(win platform.WindowID) {
	if _, ok := m.lookup(win); ok {
		return
	}
	attrs, err := m.backend.WindowAttributes(win)
	if err != nil {
		m.logger.Debug("map request for vanished window", "window", win, "error", err)
		return
	}
	if attrs.OverrideRedirect {
		return
	}
	m.manage(win, attrs)
}

// adopt manages the viewable top-level windows that existed before start.
func (m *Manager) adopt() {
	children, err := m.backend.Children()
	if err != nil {
		m.logger.Warn("list existing windows", "error", err)
		return
	}
	for _, win := range children {
		attrs, err := m.backend.WindowAttributes(win)
		if err != nil || attrs.OverrideRedirect || !attrs.Viewable {
			continue
		}
		if _, ok := m.lookup(win); ok {
			continue
		}
		m.manage(win, attrs)
	}
}

// placement resolves the monitor and desktop a new window goes to from
// the first rule whose class is a substring of the window's class or
// instance.
func (m *Manager) placement(win platform.WindowID) (monitor, desktop int, follow bool) {
	monitor = m.currMon
	class, instance := m.backend.WindowClass(win)
	var deskSet bool
	for _, r := range m.cfg.Rules {
		if !strings.Contains(class, r.Class) && !strings.Contains(instance, r.Class) {
			continue
		}
		if r.Monitor != nil && *r.Monitor >= 0 && *r.Monitor < len(m.monitors) {
			monitor = *r.Monitor
		}
		if r.Desktop != nil && *r.Desktop >= 0 && *r.Desktop < m.cfg.Desktops {
			desktop, deskSet = *r.Desktop, true
		}
		follow = r.Follow
		break
	}
	if !deskSet {
		desktop = m.monitors[monitor].Current
	}
	return monitor, desktop, follow
}

// manage creates a client for win on the desktop its rules pick and
// focuses it there.
func (m *Manager) manage(win platform.WindowID, attrs platform.Attributes) {
	mi, di, follow := m.placement(win)
	mon := &m.monitors[mi]
	d := &mon.Desktops[di]

	id := m.addWindow(win, d)
	c := m.store.Get(id)
	c.Transient = m.backend.IsTransient(win)
	c.W, c.H = attrs.Bounds.Width, attrs.Bounds.Height

	if mon.Current == di {
		m.backend.Map(win)
	}
	if follow {
		m.changeMonitor(mi)
		m.changeDesktop(di)
	}

	if m.backend.WantsFullscreen(win) {
		m.setFullscreen(c, mon, true)
	} else {
		m.coverFree(id, d, mon)
		if m.backend.IsNotification(win) {
			m.coverCenter(c, mon)
		}
	}

	c.setName(m.backend.WindowName(win))
	m.logger.Debug("manage window",
		"window", win,
		"name", c.Name,
		"monitor", mi,
		"desktop", di,
		"transient", c.Transient,
	)
	m.focus(id, d, mon)
}

// coverFree places a new window right of the last sibling, or on the row
// below it when that overflows the monitor. Anything that overflows
// vertically goes to the monitor's origin.
func (m *Manager) coverFree(id ClientID, d *Desktop, mon *Monitor) {
	c := m.store.Get(id)
	var siblings []*Client
	for _, sid := range d.clients {
		if sid != id {
			siblings = append(siblings, m.store.Get(sid))
		}
	}

	x, y := 0, 0
	if n := len(siblings); n > 0 {
		last := siblings[n-1]
		minH := 0
		for _, s := range siblings[:n-1] {
			if minH == 0 || s.H < minH {
				minH = s.H
			}
		}
		lx, ly := last.X-mon.Rect.X, last.Y-mon.Rect.Y

		x = lx + last.W
		if x+c.W > mon.Rect.Width {
			x = 0
			y = last.H
			if minH != 0 && minH < last.H {
				y = minH
			}
		}
		y += ly
		if y+c.H > mon.Rect.Height {
			x, y = 0, 0
		}
	}

	c.X, c.Y = mon.Rect.X+x, mon.Rect.Y+y
	m.backend.Move(c.Window, c.X, c.Y)
}

// coverCenter centers c on mon.
func (m *Manager) coverCenter(c *Client, mon *Monitor) {
	c.X = mon.Rect.X + mon.Rect.Width/2 - c.W/2
	c.Y = mon.Rect.Y + mon.Rect.Height/2 - c.H/2
	m.backend.Move(c.Window, c.X, c.Y)
}
