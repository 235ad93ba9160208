package x11

import (
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"golang.org/x/text/encoding/charmap"
)

const (
	stateFullscreen   = "_NET_WM_STATE_FULLSCREEN"
	typeNotification  = "_NET_WM_WINDOW_TYPE_NOTIFICATION"
	typeUtility       = "_NET_WM_WINDOW_TYPE_UTILITY"
	protoDeleteWindow = "WM_DELETE_WINDOW"
)

// Attributes is the subset of window attributes and geometry needed to
// decide whether and how to manage a window.
type Attributes struct {
	OverrideRedirect bool
	Viewable         bool
	X, Y             int
	Width, Height    int
}

// WindowAttributes queries attributes and geometry of win.
func (c *Connection) WindowAttributes(win xproto.Window) (Attributes, error) {
	attr, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return Attributes{}, err
	}
	geom, err := xwindow.RawGeometry(c.XUtil, xproto.Drawable(win))
	if err != nil {
		return Attributes{}, err
	}
	x, y, w, h := geom.Pieces()
	return Attributes{
		OverrideRedirect: attr.OverrideRedirect,
		Viewable:         attr.MapState == xproto.MapStateViewable,
		X:                x,
		Y:                y,
		Width:            w,
		Height:           h,
	}, nil
}

// Children lists the direct children of the root window, bottom to top.
func (c *Connection) Children() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, err
	}
	return tree.Children, nil
}

// WindowClass returns the WM_CLASS class and instance names.
func (c *Connection) WindowClass(win xproto.Window) (class, instance string) {
	wmClass, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return "", ""
	}
	return wmClass.Class, wmClass.Instance
}

// IsTransient reports whether win names a WM_TRANSIENT_FOR owner.
func (c *Connection) IsTransient(win xproto.Window) bool {
	owner, err := icccm.WmTransientForGet(c.XUtil, win)
	return err == nil && owner != 0
}

// WindowName prefers _NET_WM_NAME and falls back to WM_NAME. The result is
// always valid UTF-8.
func (c *Connection) WindowName(win xproto.Window) string {
	if reply, err := xprop.GetProperty(c.XUtil, win, "_NET_WM_NAME"); err == nil {
		if title := trimName(strings.ToValidUTF8(string(reply.Value), "\uFFFD")); title != "" {
			return title
		}
	}

	reply, err := xprop.GetProperty(c.XUtil, win, "WM_NAME")
	if err != nil {
		return ""
	}
	return trimName(decodeText(reply.Type, reply.Value))
}

// decodeText converts an ICCCM text property to UTF-8. STRING is Latin-1;
// UTF8_STRING and COMPOUND_TEXT are kept when they are valid UTF-8 and read
// as Latin-1 otherwise.
func decodeText(typ xproto.Atom, value []byte) string {
	if typ != xproto.AtomString && utf8.Valid(value) {
		return string(value)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(value)
	if err != nil {
		return strings.ToValidUTF8(string(value), "\uFFFD")
	}
	return string(out)
}

func trimName(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

// WantsFullscreen reports whether the window was mapped with
// _NET_WM_STATE_FULLSCREEN already set.
func (c *Connection) WantsFullscreen(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == stateFullscreen {
			return true
		}
	}
	return false
}

// SetFullscreenState publishes the fullscreen state of win.
func (c *Connection) SetFullscreenState(win xproto.Window, on bool) error {
	var states []string
	if on {
		states = []string{stateFullscreen}
	}
	return ewmh.WmStateSet(c.XUtil, win, states)
}

// IsNotification reports whether win is a notification or utility window.
func (c *Connection) IsNotification(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == typeNotification || t == typeUtility {
			return true
		}
	}
	return false
}

// IsUrgent reports whether the urgency flag is set in WM_HINTS.
func (c *Connection) IsUrgent(win xproto.Window) bool {
	hints, err := icccm.WmHintsGet(c.XUtil, win)
	if err != nil {
		return false
	}
	return hints.Flags&icccm.HintUrgency != 0
}

// SupportsDelete reports whether win lists WM_DELETE_WINDOW in WM_PROTOCOLS.
func (c *Connection) SupportsDelete(win xproto.Window) bool {
	protocols, err := icccm.WmProtocolsGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, p := range protocols {
		if p == protoDeleteWindow {
			return true
		}
	}
	return false
}

// SendDelete asks win to close itself via WM_DELETE_WINDOW.
func (c *Connection) SendDelete(win xproto.Window) error {
	protocols, err := c.atom("WM_PROTOCOLS")
	if err != nil {
		return err
	}
	del, err := c.atom(protoDeleteWindow)
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(del), xproto.TimeCurrentTime, 0, 0, 0}),
	}
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes()))
	return nil
}

// Kill destroys the client owning win.
func (c *Connection) Kill(win xproto.Window) {
	xwindow.New(c.XUtil, win).Kill()
}

// Configure forwards a ConfigureRequest as-is. mask is the request's
// value mask; fields not in it are ignored.
func (c *Connection) Configure(win xproto.Window, mask uint16, x, y, w, h, border int, sibling xproto.Window, stackMode byte) {
	var vals []uint32
	if mask&xproto.ConfigWindowX != 0 {
		vals = append(vals, uint32(x))
	}
	if mask&xproto.ConfigWindowY != 0 {
		vals = append(vals, uint32(y))
	}
	if mask&xproto.ConfigWindowWidth != 0 {
		vals = append(vals, uint32(w))
	}
	if mask&xproto.ConfigWindowHeight != 0 {
		vals = append(vals, uint32(h))
	}
	if mask&xproto.ConfigWindowBorderWidth != 0 {
		vals = append(vals, uint32(border))
	}
	if mask&xproto.ConfigWindowSibling != 0 {
		vals = append(vals, uint32(sibling))
	}
	if mask&xproto.ConfigWindowStackMode != 0 {
		vals = append(vals, uint32(stackMode))
	}
	xproto.ConfigureWindow(c.XUtil.Conn(), win, mask, vals)
}

// SetBorderWidth sets the border width of win.
func (c *Connection) SetBorderWidth(win xproto.Window, width int) {
	xproto.ConfigureWindow(c.XUtil.Conn(), win, xproto.ConfigWindowBorderWidth, []uint32{uint32(width)})
}

// SetBorderColor sets the border pixel of win.
func (c *Connection) SetBorderColor(win xproto.Window, pixel uint32) {
	xwindow.New(c.XUtil, win).Change(xproto.CwBorderPixel, pixel)
}

// SetInputFocus gives win the keyboard focus, reverting to the pointer root.
// Errors surface on the event queue.
func (c *Connection) SetInputFocus(win xproto.Window) {
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
}

// SelectInput replaces the event mask of win.
func (c *Connection) SelectInput(win xproto.Window, mask uint32) {
	xwindow.New(c.XUtil, win).Change(xproto.CwEventMask, mask)
}

// QueryPointer reports the pointer position on the root and the child
// window under it.
func (c *Connection) QueryPointer() (x, y int, child xproto.Window, err error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), reply.Child, nil
}

// WarpPointer moves the pointer to (x, y) relative to win.
func (c *Connection) WarpPointer(win xproto.Window, x, y int) {
	xproto.WarpPointer(c.XUtil.Conn(), 0, win, 0, 0, 0, 0, int16(x), int16(y))
}

func (c *Connection) atom(name string) (xproto.Atom, error) {
	return xprop.Atm(c.XUtil, name)
}
