package x11

import (
	"errors"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

var (
	// ErrAnotherWM is returned when substructure redirection on the root
	// window is refused.
	ErrAnotherWM = errors.New("another window manager is already running")
	// ErrNoHeads is returned when the server reports no usable output.
	ErrNoHeads = errors.New("no monitors reported by the display server")
)

// Core protocol request opcodes referenced by IsBenign.
const (
	opChangeWindowAttributes = 2
	opConfigureWindow        = 12
	opGrabButton             = 28
	opGrabKey                = 33
	opSetInputFocus          = 42
	opCopyArea               = 62
	opPolySegment            = 66
	opPolyFillRectangle      = 70
	opPolyText8              = 74
)

// IsBenign reports whether err is a race against a window that went away
// between an event being queued and handled. Such errors are dropped; every
// other protocol error is fatal.
func IsBenign(err xgb.Error) bool {
	switch e := err.(type) {
	case xproto.WindowError, *xproto.WindowError:
		return true
	case xproto.MatchError:
		return e.MajorOpcode == opSetInputFocus || e.MajorOpcode == opConfigureWindow
	case *xproto.MatchError:
		return e.MajorOpcode == opSetInputFocus || e.MajorOpcode == opConfigureWindow
	case xproto.DrawableError:
		return isDrawOp(e.MajorOpcode)
	case *xproto.DrawableError:
		return isDrawOp(e.MajorOpcode)
	case xproto.AccessError:
		return e.MajorOpcode == opGrabKey || e.MajorOpcode == opGrabButton
	case *xproto.AccessError:
		return e.MajorOpcode == opGrabKey || e.MajorOpcode == opGrabButton
	}
	return false
}

func isDrawOp(op byte) bool {
	switch op {
	case opPolyFillRectangle, opCopyArea, opPolySegment, opPolyText8:
		return true
	}
	return false
}

// isRedirectRefused reports whether err is the BadAccess a server returns
// when another client already selected SubstructureRedirect on the root.
func isRedirectRefused(err error) bool {
	switch e := err.(type) {
	case xproto.AccessError:
		return e.MajorOpcode == opChangeWindowAttributes
	case *xproto.AccessError:
		return e.MajorOpcode == opChangeWindowAttributes
	}
	return false
}
