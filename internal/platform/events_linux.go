//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/mwm/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// NextEvent blocks until an event the window manager handles arrives.
// Benign protocol errors are logged at debug level and skipped; any other
// protocol error is returned.
func (b *LinuxBackend) NextEvent() (Event, error) {
	for {
		ev, xerr, err := b.conn.NextEvent()
		if err != nil {
			return nil, err
		}
		if xerr != nil {
			if x11.IsBenign(xerr) {
				b.logger.Debug("ignoring X error", "error", xerr)
				continue
			}
			return nil, fmt.Errorf("fatal X error: %s", xerr.Error())
		}
		if out := b.translate(ev); out != nil {
			return out, nil
		}
	}
}

func (b *LinuxBackend) translate(ev xgb.Event) Event {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return MapRequest{Window: WindowID(e.Window)}
	case xproto.UnmapNotifyEvent:
		return UnmapNotify{Window: WindowID(e.Window)}
	case xproto.DestroyNotifyEvent:
		return DestroyNotify{Window: WindowID(e.Window)}
	case xproto.ClientMessageEvent:
		return b.clientMessage(e)
	case xproto.ConfigureRequestEvent:
		return ConfigureRequest{
			Window:      WindowID(e.Window),
			X:           int(e.X),
			Y:           int(e.Y),
			Width:       int(e.Width),
			Height:      int(e.Height),
			BorderWidth: int(e.BorderWidth),
			Sibling:     WindowID(e.Sibling),
			StackMode:   e.StackMode,
			ValueMask:   e.ValueMask,
		}
	case xproto.PropertyNotifyEvent:
		return PropertyNotify{Window: WindowID(e.Window), Hints: e.Atom == xproto.AtomWmHints}
	case xproto.FocusInEvent:
		return FocusIn{Window: WindowID(e.Event)}
	case xproto.EnterNotifyEvent:
		return EnterNotify{Window: WindowID(e.Event), Mode: int(e.Mode), Detail: int(e.Detail)}
	case xproto.KeyPressEvent:
		return KeyPress{Keycode: byte(e.Detail), State: e.State}
	case xproto.ButtonPressEvent:
		return ButtonPress{
			Window: WindowID(e.Event),
			Button: byte(e.Detail),
			State:  e.State,
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}
	case xproto.MotionNotifyEvent:
		return MotionNotify{RootX: int(e.RootX), RootY: int(e.RootY)}
	case xproto.ButtonReleaseEvent:
		return ButtonRelease{Button: byte(e.Detail)}
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingKeyboard || e.Request == xproto.MappingModifier {
			b.binder.Refresh()
			return MappingNotify{}
		}
	}
	return nil
}

func (b *LinuxBackend) clientMessage(e xproto.ClientMessageEvent) Event {
	msg := ClientMessage{Window: WindowID(e.Window), Kind: MessageOther}
	data := e.Data.Data32
	switch e.Type {
	case b.atomWmState:
		if len(data) >= 3 && (xproto.Atom(data[1]) == b.atomFullscreen || xproto.Atom(data[2]) == b.atomFullscreen) {
			msg.Kind = MessageFullscreen
			msg.Action = int(data[0])
		}
	case b.atomActive:
		msg.Kind = MessageActivate
	}
	return msg
}
