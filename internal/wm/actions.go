package wm

import (
	"github.com/1broseidon/mwm/internal/config"
	"github.com/1broseidon/mwm/internal/movemode"
	"github.com/1broseidon/mwm/internal/platform"
	"github.com/1broseidon/mwm/internal/tiling"
)

// run executes one bound action. Arguments were checked when the
// configuration was validated.
func (m *Manager) run(b config.Binding) {
	m.logger.Debug("run action", "action", b.Action, "arg", b.Arg.String())

	switch b.Action {
	case config.ActionFocusUrgent:
		m.focusUrgent()
	case config.ActionKillClient:
		m.killClient()
	case config.ActionNextWin:
		m.nextWin()
	case config.ActionPrevWin:
		m.prevWin()
	case config.ActionStatus:
		m.status()
	case config.ActionResizeMaster:
		m.resizeMaster(b.Arg.Int)
	case config.ActionResizeStack:
		m.resizeStack(b.Arg.Int)
	case config.ActionRotate:
		m.rotate(b.Arg.Int)
	case config.ActionRotateFilled:
		m.rotateFilled(b.Arg.Int)
	case config.ActionMoveUp:
		m.desktop().moveUp()
	case config.ActionMoveDown:
		m.desktop().moveDown()
	case config.ActionLastDesktop:
		m.lastDesktop()
	case config.ActionSwapMaster:
		m.swapMaster()
	case config.ActionSetLayout:
		m.setLayout(b.Arg.Str)
	case config.ActionQuit:
		m.quit(b.Arg.Int)
	case config.ActionSpawn:
		m.spawn(b.Command)
	case config.ActionSpawnTerminal:
		m.spawn(m.terminal)
	case config.ActionMoveResize:
		if len(b.Args) == 4 {
			m.moveResize(b.Args[0], b.Args[1], b.Args[2], b.Args[3])
		}
	case config.ActionChangeDesktop:
		m.changeDesktop(b.Arg.Int)
	case config.ActionClientToDesktop:
		m.clientToDesktop(b.Arg.Int)
	case config.ActionChangeMonitor:
		m.changeMonitor(b.Arg.Int)
	case config.ActionClientToMonitor:
		m.clientToMonitor(b.Arg.Int)
	case config.ActionMouseMotion:
		if kind, ok := movemode.ParseKind(b.Arg.Str); ok {
			m.mouseMotion(kind)
		}
	case config.ActionToggleFixed:
		m.toggleFixed()
	case config.ActionSetFloating:
		m.setFloating()
	case config.ActionToClient:
		m.toClient(b.Arg.Int)
	case config.ActionListClients:
		m.listClients(m.desktop())
	default:
		m.logger.Warn("unknown action", "action", b.Action)
	}
}

// focusUrgent focuses the first urgent client, looking at the active
// desktop first and then at every desktop in order.
func (m *Manager) focusUrgent() {
	mon := m.monitor()
	urgent := func(d *Desktop) ClientID {
		for _, id := range d.clients {
			if m.store.Get(id).Urgent {
				return id
			}
		}
		return ClientID{}
	}

	id := urgent(mon.desktop())
	if !id.Valid() {
		for i := range mon.Desktops {
			if id = urgent(&mon.Desktops[i]); id.Valid() {
				m.changeDesktop(i)
				break
			}
		}
	}
	if id.Valid() {
		m.focus(id, mon.desktop(), mon)
	}
}

// killClient asks the focused client to close, or kills it outright when
// it does not take WM_DELETE_WINDOW.
func (m *Manager) killClient() {
	mon := m.monitor()
	d := mon.desktop()
	c := m.store.Get(d.curr)
	if c == nil {
		return
	}
	if m.backend.SupportsDelete(c.Window) {
		m.backend.SendDelete(c.Window)
		return
	}
	m.backend.Kill(c.Window)
	m.removeClient(d.curr, d, mon)
}

func (m *Manager) nextWin() {
	mon := m.monitor()
	d := mon.desktop()
	if d.curr.Valid() && d.Len() > 1 {
		next := d.next(d.curr)
		if !next.Valid() {
			next = d.Head()
		}
		m.focus(next, d, mon)
	}
	m.listClients(d)
}

func (m *Manager) prevWin() {
	mon := m.monitor()
	d := mon.desktop()
	if d.curr.Valid() && d.Len() > 1 {
		m.focus(d.previousOf(d.curr), d, mon)
	}
	m.listClients(d)
}

// resizeMaster grows the master area by delta pixels unless that leaves
// either side below the minimum window size.
func (m *Manager) resizeMaster(delta int) {
	mon := m.monitor()
	d := mon.desktop()
	mode := tilingMode(d)
	axis := mon.Rect.Width
	if mode == tiling.ModeBottomStack {
		axis = mon.Rect.Height
	}

	adjust := d.MasterAdjust + delta
	size := tiling.MasterSize(axis, m.cfg.MasterSize, adjust)
	if !tiling.MasterFits(axis, size, m.cfg.MinWindowSize) {
		return
	}
	d.MasterAdjust = adjust
	m.arrange(d, mon, mode)
	m.focus(d.curr, d, mon)
}

func (m *Manager) resizeStack(delta int) {
	mon := m.monitor()
	d := mon.desktop()
	d.StackAdjust += delta
	m.arrange(d, mon, tilingMode(d))
	m.focus(d.curr, d, mon)
}

// swapMaster brings the focused client to the head, or swaps the head with
// its successor when the head is focused, then tiles.
func (m *Manager) swapMaster() {
	mon := m.monitor()
	d := mon.desktop()
	if !d.curr.Valid() || d.Len() < 2 {
		return
	}
	if d.curr == d.Head() {
		d.moveDown()
	} else {
		for d.curr != d.Head() {
			d.moveUp()
		}
	}
	m.arrange(d, mon, tiling.ModeTile)
	m.focus(d.Head(), d, mon)
}

func (m *Manager) setLayout(name string) {
	mode, err := tiling.ParseMode(name)
	if err != nil {
		m.logger.Warn("set layout", "error", err)
		return
	}
	mon := m.monitor()
	d := mon.desktop()
	m.arrange(d, mon, mode)
	m.focus(d.curr, d, mon)
}

func (m *Manager) quit(code int) {
	m.exitCode = code
	m.running = false
}

func (m *Manager) spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	if m.spawner == nil {
		m.logger.Warn("no spawner configured", "command", argv[0])
		return
	}
	if err := m.spawner.Spawn(argv); err != nil {
		m.logger.Error("spawn failed", "command", argv[0], "error", err)
	}
}

// moveResize shifts and grows the focused client relative to its current
// server-side geometry.
func (m *Manager) moveResize(dx, dy, dw, dh int) {
	mon := m.monitor()
	d := mon.desktop()
	c := m.store.Get(d.curr)
	if c == nil {
		return
	}
	attrs, err := m.backend.WindowAttributes(c.Window)
	if err != nil {
		return
	}
	if !c.Transient {
		m.focus(d.curr, d, mon)
	}
	m.backend.Raise(c.Window)

	r := platform.Rect{
		X:      attrs.Bounds.X + dx,
		Y:      attrs.Bounds.Y + dy,
		Width:  attrs.Bounds.Width + dw,
		Height: attrs.Bounds.Height + dh,
	}
	c.setRect(r)
	m.backend.MoveResize(c.Window, r)
}

func (m *Manager) toggleFixed() {
	c := m.store.Get(m.desktop().curr)
	if c == nil {
		return
	}
	c.Fixed = !c.Fixed
	m.fixedInfo(c)
}

// setFloating restores the focused client's cached geometry and border.
func (m *Manager) setFloating() {
	c := m.store.Get(m.desktop().curr)
	if c == nil || c.Transient {
		return
	}
	m.backend.MoveResize(c.Window, c.rect())
	m.backend.SetBorderWidth(c.Window, m.cfg.BorderWidth)
	c.Monocle = false
}

// toClient focuses the n-th client of the active desktop, counting from 1.
func (m *Manager) toClient(n int) {
	mon := m.monitor()
	d := mon.desktop()
	if n < 1 || n > d.Len() {
		return
	}
	m.focus(d.clients[n-1], d, mon)
	m.listClients(d)
}
