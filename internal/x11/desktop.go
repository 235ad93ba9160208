package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Supported lists the EWMH hints this window manager honours.
var Supported = []string{
	"_NET_SUPPORTED",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_NOTIFICATION",
	"_NET_WM_WINDOW_TYPE_UTILITY",
	"_NET_CURRENT_DESKTOP",
	"_NET_NUMBER_OF_DESKTOPS",
}

// SetSupported publishes _NET_SUPPORTED and _NET_NUMBER_OF_DESKTOPS on the
// root window.
func (c *Connection) SetSupported(desktops int) error {
	if err := ewmh.SupportedSet(c.XUtil, Supported); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTED: %w", err)
	}
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(desktops)); err != nil {
		return fmt.Errorf("failed to set _NET_NUMBER_OF_DESKTOPS: %w", err)
	}
	return nil
}

// SetCurrentDesktop publishes the current desktop index (0-indexed).
func (c *Connection) SetCurrentDesktop(desktop int) error {
	return ewmh.CurrentDesktopSet(c.XUtil, uint(desktop))
}

// SetActiveWindow publishes win as _NET_ACTIVE_WINDOW.
func (c *Connection) SetActiveWindow(win xproto.Window) error {
	return ewmh.ActiveWindowSet(c.XUtil, win)
}

// ClearActiveWindow removes _NET_ACTIVE_WINDOW from the root window.
func (c *Connection) ClearActiveWindow() error {
	atom, err := xprop.Atm(c.XUtil, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return err
	}
	xproto.DeleteProperty(c.XUtil.Conn(), c.Root, atom)
	return nil
}

// AtomName resolves an atom through the connection's cache.
func (c *Connection) AtomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}
