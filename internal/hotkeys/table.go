package hotkeys

import (
	"errors"
	"fmt"

	"github.com/1broseidon/mwm/internal/config"
)

// Core modifier bits, as in the X protocol.
const (
	ModShift   uint16 = 1 << 0
	ModLock    uint16 = 1 << 1
	ModControl uint16 = 1 << 2
	Mod1       uint16 = 1 << 3
	Mod2       uint16 = 1 << 4
	Mod3       uint16 = 1 << 5
	Mod4       uint16 = 1 << 6
	Mod5       uint16 = 1 << 7

	modAll = ModShift | ModLock | ModControl | Mod1 | Mod2 | Mod3 | Mod4 | Mod5
)

// CleanMask strips lock bits and pointer button state from a key or button
// event state so it can be compared against a binding's modifiers.
func CleanMask(state, numLock uint16) uint16 {
	return state &^ (numLock | ModLock) & modAll
}

// Resolver turns chords into server keycodes and button numbers.
type Resolver interface {
	ResolveKey(chord string) (mods uint16, codes []byte, err error)
	ResolveButton(chord string) (mods uint16, button byte, err error)
}

// Key is a resolved key binding. A keysym can map to several keycodes.
type Key struct {
	Chord   string
	Mods    uint16
	Codes   []byte
	Binding config.Binding
}

// Button is a resolved button binding.
type Button struct {
	Chord   string
	Mods    uint16
	Button  byte
	Binding config.Binding
}

// Table holds bindings in configuration order.
type Table struct {
	Keys    []Key
	Buttons []Button
}

// Compile resolves every binding. Chords that cannot be resolved are left
// out of the table and reported together in the returned error; the table
// is usable either way.
func Compile(keys []config.KeyBinding, buttons []config.ButtonBinding, r Resolver) (*Table, error) {
	t := &Table{}
	var errs []error

	for _, k := range keys {
		mods, codes, err := r.ResolveKey(k.Key)
		if err != nil || len(codes) == 0 {
			errs = append(errs, fmt.Errorf("key %q: %w", k.Key, orNoKeycode(err)))
			continue
		}
		t.Keys = append(t.Keys, Key{Chord: k.Key, Mods: mods, Codes: codes, Binding: k.Binding})
	}
	for _, b := range buttons {
		mods, button, err := r.ResolveButton(b.Button)
		if err != nil {
			errs = append(errs, fmt.Errorf("button %q: %w", b.Button, err))
			continue
		}
		t.Buttons = append(t.Buttons, Button{Chord: b.Button, Mods: mods, Button: button, Binding: b.Binding})
	}

	return t, errors.Join(errs...)
}

func orNoKeycode(err error) error {
	if err != nil {
		return err
	}
	return errors.New("no keycode for keysym")
}

// MatchKey returns the bindings for a key press. mods must already be
// cleaned.
func (t *Table) MatchKey(code byte, mods uint16) []config.Binding {
	var out []config.Binding
	for _, k := range t.Keys {
		if k.Mods != mods {
			continue
		}
		for _, c := range k.Codes {
			if c == code {
				out = append(out, k.Binding)
				break
			}
		}
	}
	return out
}

// MatchButton returns the bindings for a button press. mods must already be
// cleaned.
func (t *Table) MatchButton(button byte, mods uint16) []config.Binding {
	var out []config.Binding
	for _, b := range t.Buttons {
		if b.Button == button && b.Mods == mods {
			out = append(out, b.Binding)
		}
	}
	return out
}
