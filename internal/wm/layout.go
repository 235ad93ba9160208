package wm

import (
	"github.com/1broseidon/mwm/internal/platform"
	"github.com/1broseidon/mwm/internal/tiling"
)

func toTiling(r platform.Rect) tiling.Rect {
	return tiling.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func fromTiling(r tiling.Rect) platform.Rect {
	return platform.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// arrange sets the mode of d and lays it out over the monitor rectangle.
// Callers refocus afterwards so borders and stacking match.
func (m *Manager) arrange(d *Desktop, mon *Monitor, mode tiling.Mode) {
	d.Mode = mode
	if mode == tiling.ModeMonocle {
		m.monocle(d, mon)
		return
	}

	ids := m.tiled(d)
	area := toTiling(mon.Rect)
	if mode == tiling.ModeGrid {
		m.place(ids, tiling.Grid(area, len(ids), m.cfg.BorderWidth))
	} else {
		params := tiling.Params{
			MasterFraction: m.cfg.MasterSize,
			MasterAdjust:   d.MasterAdjust,
			StackAdjust:    d.StackAdjust,
			Border:         m.cfg.BorderWidth,
		}
		m.place(ids, tiling.Stack(area, len(ids), params, mode == tiling.ModeBottomStack))
	}
}

// tiled returns the clients a layout positions, in list order. Clients
// expanded by monocle get their border back.
func (m *Manager) tiled(d *Desktop) []ClientID {
	var out []ClientID
	for _, id := range d.clients {
		c := m.store.Get(id)
		if c.immutable() {
			continue
		}
		if c.Monocle {
			c.Monocle = false
			m.backend.SetBorderWidth(c.Window, m.cfg.BorderWidth)
		}
		out = append(out, id)
	}
	return out
}

func (m *Manager) place(ids []ClientID, rects []tiling.Rect) {
	for i, id := range ids {
		if i >= len(rects) {
			break
		}
		c := m.store.Get(id)
		r := fromTiling(rects[i])
		c.setRect(r)
		m.backend.MoveResize(c.Window, r)
	}
}

// monocle toggles the current client between covering the monitor and its
// cached geometry.
func (m *Manager) monocle(d *Desktop, mon *Monitor) {
	c := m.store.Get(d.curr)
	if c == nil || c.Transient || c.Fullscreen {
		return
	}
	if !c.Monocle {
		m.backend.MoveResize(c.Window, mon.Rect)
		m.backend.SetBorderWidth(c.Window, 0)
		c.Monocle = true
		return
	}
	m.backend.MoveResize(c.Window, c.rect())
	m.backend.SetBorderWidth(c.Window, m.cfg.BorderWidth)
	c.Monocle = false
}

// setFullscreen applies or lifts fullscreen on c.
func (m *Manager) setFullscreen(c *Client, mon *Monitor, on bool) {
	if on != c.Fullscreen {
		c.Fullscreen = on
		m.backend.SetFullscreenState(c.Window, on)
	}
	if on {
		m.backend.MoveResize(c.Window, mon.Rect)
	} else {
		m.backend.MoveResize(c.Window, c.rect())
	}
	m.backend.SetBorderWidth(c.Window, m.borderWidth(c))
}

// tilingMode returns the master/stack mode resize actions re-arrange in.
func tilingMode(d *Desktop) tiling.Mode {
	if d.Mode == tiling.ModeBottomStack {
		return tiling.ModeBottomStack
	}
	return tiling.ModeTile
}
