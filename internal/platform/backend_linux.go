//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/1broseidon/mwm/internal/hotkeys"
	"github.com/1broseidon/mwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	clientEventMask = xproto.EventMaskPropertyChange | xproto.EventMaskFocusChange
	enterEventMask  = xproto.EventMaskEnterWindow
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn   *x11.Connection
	binder *hotkeys.Binder
	logger *slog.Logger

	atomWmState    xproto.Atom
	atomFullscreen xproto.Atom
	atomActive     xproto.Atom
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) (*LinuxBackend, error) {
	if conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &LinuxBackend{
		conn:   conn,
		binder: hotkeys.NewBinder(conn.XUtil, conn.Root),
		logger: logger,
	}

	var err error
	if b.atomWmState, err = xprop.Atm(conn.XUtil, "_NET_WM_STATE"); err != nil {
		return nil, fmt.Errorf("intern _NET_WM_STATE: %w", err)
	}
	if b.atomFullscreen, err = xprop.Atm(conn.XUtil, "_NET_WM_STATE_FULLSCREEN"); err != nil {
		return nil, fmt.Errorf("intern _NET_WM_STATE_FULLSCREEN: %w", err)
	}
	if b.atomActive, err = xprop.Atm(conn.XUtil, "_NET_ACTIVE_WINDOW"); err != nil {
		return nil, fmt.Errorf("intern _NET_ACTIVE_WINDOW: %w", err)
	}
	return b, nil
}

// Connect opens the display, takes over window management on its root
// window and publishes the supported hints.
func Connect(display string, desktops int, logger *slog.Logger) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	if err := conn.BecomeWM(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.SetSupported(desktops); err != nil {
		conn.Close()
		return nil, err
	}
	b, err := NewLinuxBackend(conn, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
}

// Root returns the X11 root window ID.
func (b *LinuxBackend) Root() WindowID {
	return WindowID(b.conn.Root)
}

// Displays returns all monitors, left to right.
func (b *LinuxBackend) Displays() ([]Display, error) {
	monitors, err := b.conn.Heads()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.SliceStable(displays, func(i, j int) bool {
		a, c := displays[i].Bounds, displays[j].Bounds
		return a.X < c.X || (a.X == c.X && a.Y < c.Y)
	})
	for i := range displays {
		displays[i].ID = i
	}
	return displays, nil
}

func (b *LinuxBackend) AllocColor(name string) (Pixel, error) {
	p, err := b.conn.AllocColor(name)
	return Pixel(p), err
}

func (b *LinuxBackend) ResolveKey(chord string) (uint16, []byte, error) {
	return b.binder.ResolveKey(chord)
}

func (b *LinuxBackend) ResolveButton(chord string) (uint16, byte, error) {
	return b.binder.ResolveButton(chord)
}

func (b *LinuxBackend) CleanMask(state uint16) uint16 {
	return hotkeys.CleanMask(state, b.binder.NumLock())
}

func (b *LinuxBackend) GrabKey(mods uint16, code byte) { b.binder.GrabKey(mods, code) }
func (b *LinuxBackend) UngrabKeys()                    { b.binder.UngrabKeys() }

func (b *LinuxBackend) GrabButton(win WindowID, mods uint16, button byte) {
	b.binder.GrabButton(xproto.Window(win), mods, button)
}

func (b *LinuxBackend) UngrabButton(win WindowID, mods uint16, button byte) {
	b.binder.UngrabButton(xproto.Window(win), mods, button)
}

func (b *LinuxBackend) SelectClientInput(win WindowID, followMouse bool) {
	b.SetEnterEvents(win, followMouse)
}

func (b *LinuxBackend) SetEnterEvents(win WindowID, enabled bool) {
	mask := uint32(clientEventMask)
	if enabled {
		mask |= enterEventMask
	}
	b.conn.SelectInput(xproto.Window(win), mask)
}

func (b *LinuxBackend) SuppressRootNotify(suppress bool) {
	mask := uint32(x11.RootEventMask)
	if suppress {
		mask &^= xproto.EventMaskSubstructureNotify
	}
	b.conn.SetRootMask(mask)
}

func (b *LinuxBackend) Map(win WindowID)   { b.window(win).Map() }
func (b *LinuxBackend) Unmap(win WindowID) { b.window(win).Unmap() }

func (b *LinuxBackend) Move(win WindowID, x, y int) {
	b.window(win).Move(x, y)
}

func (b *LinuxBackend) MoveResize(win WindowID, r Rect) {
	b.window(win).MoveResize(r.X, r.Y, r.Width, r.Height)
}

func (b *LinuxBackend) SetBorderWidth(win WindowID, width int) {
	b.conn.SetBorderWidth(xproto.Window(win), width)
}

func (b *LinuxBackend) SetBorderColor(win WindowID, color Pixel) {
	b.conn.SetBorderColor(xproto.Window(win), uint32(color))
}

func (b *LinuxBackend) Raise(win WindowID) {
	b.window(win).Stack(xproto.StackModeAbove)
}

func (b *LinuxBackend) SetInputFocus(win WindowID) {
	b.conn.SetInputFocus(xproto.Window(win))
}

func (b *LinuxBackend) SetActiveWindow(win WindowID) {
	if err := b.conn.SetActiveWindow(xproto.Window(win)); err != nil {
		b.logger.Debug("set active window failed", "window", win, "error", err)
	}
}

func (b *LinuxBackend) ClearActiveWindow() {
	if err := b.conn.ClearActiveWindow(); err != nil {
		b.logger.Debug("clear active window failed", "error", err)
	}
}

func (b *LinuxBackend) SetCurrentDesktop(desktop int) {
	if err := b.conn.SetCurrentDesktop(desktop); err != nil {
		b.logger.Debug("set current desktop failed", "desktop", desktop, "error", err)
	}
}

func (b *LinuxBackend) Configure(req ConfigureRequest) {
	b.conn.Configure(xproto.Window(req.Window), req.ValueMask,
		req.X, req.Y, req.Width, req.Height, req.BorderWidth,
		xproto.Window(req.Sibling), req.StackMode)
}

func (b *LinuxBackend) Sync() { b.conn.Sync() }

func (b *LinuxBackend) WindowAttributes(win WindowID) (Attributes, error) {
	a, err := b.conn.WindowAttributes(xproto.Window(win))
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{
		OverrideRedirect: a.OverrideRedirect,
		Viewable:         a.Viewable,
		Bounds:           Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height},
	}, nil
}

func (b *LinuxBackend) Children() ([]WindowID, error) {
	children, err := b.conn.Children()
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, len(children))
	for i, w := range children {
		out[i] = WindowID(w)
	}
	return out, nil
}

func (b *LinuxBackend) WindowClass(win WindowID) (string, string) {
	return b.conn.WindowClass(xproto.Window(win))
}

func (b *LinuxBackend) IsTransient(win WindowID) bool {
	return b.conn.IsTransient(xproto.Window(win))
}

func (b *LinuxBackend) WindowName(win WindowID) string {
	return b.conn.WindowName(xproto.Window(win))
}

func (b *LinuxBackend) WantsFullscreen(win WindowID) bool {
	return b.conn.WantsFullscreen(xproto.Window(win))
}

func (b *LinuxBackend) IsNotification(win WindowID) bool {
	return b.conn.IsNotification(xproto.Window(win))
}

func (b *LinuxBackend) IsUrgent(win WindowID) bool {
	return b.conn.IsUrgent(xproto.Window(win))
}

func (b *LinuxBackend) SetFullscreenState(win WindowID, on bool) {
	if err := b.conn.SetFullscreenState(xproto.Window(win), on); err != nil {
		b.logger.Debug("set fullscreen state failed", "window", win, "error", err)
	}
}

func (b *LinuxBackend) SupportsDelete(win WindowID) bool {
	return b.conn.SupportsDelete(xproto.Window(win))
}

func (b *LinuxBackend) SendDelete(win WindowID) {
	if err := b.conn.SendDelete(xproto.Window(win)); err != nil {
		b.logger.Debug("send WM_DELETE_WINDOW failed", "window", win, "error", err)
	}
}

func (b *LinuxBackend) Kill(win WindowID) {
	b.conn.Kill(xproto.Window(win))
}

func (b *LinuxBackend) QueryPointer() (int, int, WindowID, error) {
	x, y, child, err := b.conn.QueryPointer()
	return x, y, WindowID(child), err
}

func (b *LinuxBackend) WarpPointer(win WindowID, x, y int) {
	b.conn.WarpPointer(xproto.Window(win), x, y)
}

// GrabPointer grabs the pointer on the root window. It reports false when
// another client holds a grab.
func (b *LinuxBackend) GrabPointer() bool {
	ok, err := mousebind.GrabPointer(b.conn.XUtil, b.conn.Root, 0, 0)
	if err != nil {
		b.logger.Debug("pointer grab failed", "error", err)
		return false
	}
	return ok
}

func (b *LinuxBackend) UngrabPointer() {
	mousebind.UngrabPointer(b.conn.XUtil)
}

// Close disconnects from the X server.
func (b *LinuxBackend) Close() {
	b.conn.Close()
}

func (b *LinuxBackend) window(win WindowID) *xwindow.Window {
	return xwindow.New(b.conn.XUtil, xproto.Window(win))
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:   m.ID,
		Name: m.Name,
		Bounds: Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
	}
}
