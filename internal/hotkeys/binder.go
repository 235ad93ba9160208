package hotkeys

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Binder resolves binding chords against the server's keyboard mapping and
// installs key and button grabs. Every grab is repeated for each
// combination of the lock modifiers so CapsLock and NumLock do not defeat
// bindings.
type Binder struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	numLock uint16
}

// NewBinder creates a binder for the root window of xu.
func NewBinder(xu *xgbutil.XUtil, root xproto.Window) *Binder {
	b := &Binder{xu: xu, root: root}
	b.numLock = configureIgnoreMods(xu)
	return b
}

// Refresh reloads the keyboard and modifier maps after a MappingNotify.
// Grabs made with old keycodes must be reinstalled by the caller.
func (b *Binder) Refresh() {
	keyMap, modMap := keybind.MapsGet(b.xu)
	keybind.KeyMapSet(b.xu, keyMap)
	keybind.ModMapSet(b.xu, modMap)
	b.numLock = configureIgnoreMods(b.xu)
}

// NumLock returns the modifier bit NumLock is mapped to, or 0.
func (b *Binder) NumLock() uint16 {
	return b.numLock
}

// ResolveKey parses a chord such as "Mod4-Shift-Return".
func (b *Binder) ResolveKey(chord string) (uint16, []byte, error) {
	mods, codes, err := keybind.ParseString(b.xu, chord)
	if err != nil {
		return 0, nil, err
	}
	out := make([]byte, len(codes))
	for i, c := range codes {
		out[i] = byte(c)
	}
	return mods, out, nil
}

// ResolveButton parses a chord such as "Control-3".
func (b *Binder) ResolveButton(chord string) (uint16, byte, error) {
	mods, button, err := mousebind.ParseString(b.xu, chord)
	if err != nil {
		return 0, 0, err
	}
	return mods, byte(button), nil
}

// GrabKey grabs keycode with mods on the root window.
func (b *Binder) GrabKey(mods uint16, code byte) {
	keybind.Grab(b.xu, b.root, mods, xproto.Keycode(code))
}

// UngrabKeys releases every key grab on the root window.
func (b *Binder) UngrabKeys() {
	xproto.UngrabKey(b.xu.Conn(), xproto.GrabAny, b.root, xproto.ModMaskAny)
}

// GrabButton grabs button with mods on win.
func (b *Binder) GrabButton(win xproto.Window, mods uint16, button byte) {
	mousebind.Grab(b.xu, win, mods, xproto.Button(button), false)
}

// UngrabButton releases a grab made by GrabButton. Requests are unchecked;
// errors for vanished windows arrive on the event queue.
func (b *Binder) UngrabButton(win xproto.Window, mods uint16, button byte) {
	for _, m := range xevent.IgnoreMods {
		xproto.UngrabButton(b.xu.Conn(), button, win, mods|m)
	}
}

// configureIgnoreMods sets the lock modifiers that xgbutil adds to every
// grab and returns the NumLock mask.
func configureIgnoreMods(xu *xgbutil.XUtil) uint16 {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")

	ignore := []uint16{0, caps}
	if numLock != 0 && numLock != caps {
		ignore = append(ignore, numLock, numLock|caps)
	}

	xevent.IgnoreMods = ignore
	return numLock
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
