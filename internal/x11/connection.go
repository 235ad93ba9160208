package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// ErrClosed is returned by NextEvent once the server connection is gone.
var ErrClosed = errors.New("x11 connection closed")

// RootEventMask is selected on the root window while managing it.
const RootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskButtonPress |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskPropertyChange

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to display, or to $DISPLAY when display is empty,
// and initializes the key and mouse binding tables.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("cannot open display: %w", err)
	}

	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// BecomeWM selects substructure redirection on the root window. Only one
// client may hold it, so a BadAccess reply means another window manager is
// running.
func (c *Connection) BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root,
		xproto.CwEventMask, []uint32{RootEventMask}).Check()
	if err == nil {
		return nil
	}
	if isRedirectRefused(err) {
		return ErrAnotherWM
	}
	return fmt.Errorf("select root input: %w", err)
}

// SetRootMask replaces the root event mask.
func (c *Connection) SetRootMask(mask uint32) {
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), c.Root, xproto.CwEventMask, []uint32{mask})
}

// NextEvent blocks until an event or a protocol error is available. Errors
// are handed back as values so the caller can classify them.
func (c *Connection) NextEvent() (xgb.Event, xgb.Error, error) {
	xu := c.XUtil
	if xevent.Empty(xu) {
		ev, xerr := xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, nil, ErrClosed
		}
		xevent.Enqueue(xu, ev, xerr)
		// Drain whatever else arrived without blocking.
		xevent.Read(xu, false)
	}
	ev, xerr := xevent.Dequeue(xu)
	return ev, xerr, nil
}

// Sync waits until the server has processed every request sent so far.
func (c *Connection) Sync() {
	c.XUtil.Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
