package wm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/mwm/internal/config"
	"github.com/1broseidon/mwm/internal/platform"
)

type fakeWindow struct {
	attrs      platform.Attributes
	class      string
	instance   string
	name       string
	transient  bool
	fullscreen bool
	notif      bool
	urgent     bool
	deletable  bool
}

// fakeBackend records the calls the manager makes.
type fakeBackend struct {
	displays []platform.Display
	windows  map[platform.WindowID]*fakeWindow
	children []platform.WindowID

	mapped      map[platform.WindowID]bool
	geometry    map[platform.WindowID]platform.Rect
	borderColor map[platform.WindowID]platform.Pixel
	borderWidth map[platform.WindowID]int
	calls       []string

	active      platform.WindowID
	inputFocus  platform.WindowID
	desktop     int
	suppressed  bool
	keyGrabs    int
	killed      []platform.WindowID
	deleted     []platform.WindowID
	pointerX    int
	pointerY    int
	pointerOver platform.WindowID
	grabOK      bool
	events      []platform.Event
	keycodes    map[string]byte
}

func newFakeBackend(displays ...platform.Rect) *fakeBackend {
	if len(displays) == 0 {
		displays = []platform.Rect{{Width: 1000, Height: 800}}
	}
	f := &fakeBackend{
		windows:     map[platform.WindowID]*fakeWindow{},
		mapped:      map[platform.WindowID]bool{},
		geometry:    map[platform.WindowID]platform.Rect{},
		borderColor: map[platform.WindowID]platform.Pixel{},
		borderWidth: map[platform.WindowID]int{},
		grabOK:      true,
	}
	for i, r := range displays {
		f.displays = append(f.displays, platform.Display{ID: i, Bounds: r})
	}
	return f
}

func (f *fakeBackend) addWindow(id platform.WindowID, w *fakeWindow) {
	if w.attrs.Bounds.Width == 0 {
		w.attrs.Bounds = platform.Rect{Width: 200, Height: 100}
	}
	f.windows[id] = w
	f.children = append(f.children, id)
}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) Root() platform.WindowID { return 1 }

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) AllocColor(name string) (platform.Pixel, error) {
	switch name {
	case "#ff950e":
		return 0xff950e, nil
	case "#444444":
		return 0x444444, nil
	case "#00ff00":
		return 0x00ff00, nil
	}
	return 0, errors.New("unknown color")
}

// ResolveKey hands out one keycode per distinct chord.
func (f *fakeBackend) ResolveKey(chord string) (uint16, []byte, error) {
	if f.keycodes == nil {
		f.keycodes = map[string]byte{}
	}
	code, ok := f.keycodes[chord]
	if !ok {
		code = byte(len(f.keycodes) + 8)
		f.keycodes[chord] = code
	}
	return 0, []byte{code}, nil
}

func (f *fakeBackend) ResolveButton(chord string) (uint16, byte, error) {
	mods, key, err := config.ParseChord(chord)
	if err != nil {
		return 0, 0, err
	}
	var mask uint16
	for _, mod := range mods {
		if strings.EqualFold(mod, "control") {
			mask |= 1 << 2
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, 0, err
	}
	return mask, byte(n), nil
}

func (f *fakeBackend) CleanMask(state uint16) uint16 { return state &^ 0x12 }
func (f *fakeBackend) GrabKey(mods uint16, code byte) { f.keyGrabs++ }
func (f *fakeBackend) UngrabKeys() { f.keyGrabs = 0 }
func (f *fakeBackend) GrabButton(platform.WindowID, uint16, byte) {}
func (f *fakeBackend) UngrabButton(platform.WindowID, uint16, byte) {}
func (f *fakeBackend) SelectClientInput(platform.WindowID, bool) {}
func (f *fakeBackend) SetEnterEvents(win platform.WindowID, enabled bool) { f.record("enter %d %v", win, enabled) }
func (f *fakeBackend) SuppressRootNotify(suppress bool) { f.suppressed = suppress }
func (f *fakeBackend) SetBorderWidth(win platform.WindowID, width int) { f.borderWidth[win] = width }
func (f *fakeBackend) SetBorderColor(win platform.WindowID, c platform.Pixel) { f.borderColor[win] = c }
func (f *fakeBackend) SetCurrentDesktop(desktop int) { f.desktop = desktop }
func (f *fakeBackend) Configure(req platform.ConfigureRequest) { f.record("configure %d", req.Window) }
func (f *fakeBackend) Sync() {}
func (f *fakeBackend) Close() {}

func (f *fakeBackend) Map(win platform.WindowID) {
	f.mapped[win] = true
	f.record("map %d", win)
}

func (f *fakeBackend) Unmap(win platform.WindowID) {
	f.mapped[win] = false
	f.record("unmap %d", win)
}

func (f *fakeBackend) Move(win platform.WindowID, x, y int) {
	r, ok := f.geometry[win]
	if !ok && f.windows[win] != nil {
		r = f.windows[win].attrs.Bounds
	}
	r.X, r.Y = x, y
	f.geometry[win] = r
}

func (f *fakeBackend) MoveResize(win platform.WindowID, r platform.Rect) { f.geometry[win] = r }

func (f *fakeBackend) Raise(win platform.WindowID) { f.record("raise %d", win) }

func (f *fakeBackend) SetInputFocus(win platform.WindowID) { f.inputFocus = win }

func (f *fakeBackend) SetActiveWindow(win platform.WindowID) { f.active = win }

func (f *fakeBackend) ClearActiveWindow() { f.active = 0 }

func (f *fakeBackend) WindowAttributes(win platform.WindowID) (platform.Attributes, error) {
	w, ok := f.windows[win]
	if !ok {
		return platform.Attributes{}, errors.New("bad window")
	}
	attrs := w.attrs
	if r, ok := f.geometry[win]; ok {
		attrs.Bounds = r
	}
	return attrs, nil
}

func (f *fakeBackend) Children() ([]platform.WindowID, error) { return f.children, nil }

func (f *fakeBackend) WindowClass(win platform.WindowID) (string, string) {
	if w, ok := f.windows[win]; ok {
		return w.class, w.instance
	}
	return "", ""
}

func (f *fakeBackend) IsTransient(win platform.WindowID) bool { return f.windows[win].transient }

func (f *fakeBackend) WindowName(win platform.WindowID) string { return f.windows[win].name }

func (f *fakeBackend) WantsFullscreen(win platform.WindowID) bool { return f.windows[win].fullscreen }

func (f *fakeBackend) IsNotification(win platform.WindowID) bool { return f.windows[win].notif }

func (f *fakeBackend) IsUrgent(win platform.WindowID) bool { return f.windows[win].urgent }

func (f *fakeBackend) SetFullscreenState(win platform.WindowID, on bool) {
	f.record("fullscreen %d %v", win, on)
}

func (f *fakeBackend) SupportsDelete(win platform.WindowID) bool { return f.windows[win].deletable }

func (f *fakeBackend) SendDelete(win platform.WindowID) { f.deleted = append(f.deleted, win) }

func (f *fakeBackend) Kill(win platform.WindowID) { f.killed = append(f.killed, win) }

func (f *fakeBackend) QueryPointer() (int, int, platform.WindowID, error) {
	return f.pointerX, f.pointerY, f.pointerOver, nil
}

func (f *fakeBackend) WarpPointer(win platform.WindowID, x, y int) {
	r := f.geometry[win]
	f.pointerX, f.pointerY = r.X+x, r.Y+y
}

func (f *fakeBackend) GrabPointer() bool { return f.grabOK }

func (f *fakeBackend) UngrabPointer() { f.record("ungrab pointer") }

func (f *fakeBackend) NextEvent() (platform.Event, error) {
	if len(f.events) == 0 {
		return nil, errors.New("no more events")
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

type note struct {
	body    string
	urgency byte
	timeout time.Duration
}

type fakeNotifier struct {
	notes []note
}

func (n *fakeNotifier) Notify(body string, urgency byte, timeout time.Duration) {
	n.notes = append(n.notes, note{body, urgency, timeout})
}

func (n *fakeNotifier) last() note {
	if len(n.notes) == 0 {
		return note{}
	}
	return n.notes[len(n.notes)-1]
}

type fakeSpawner struct {
	spawned [][]string
}

func (s *fakeSpawner) Spawn(argv []string) error {
	s.spawned = append(s.spawned, argv)
	return nil
}

type harness struct {
	t        *testing.T
	m        *Manager
	backend  *fakeBackend
	notifier *fakeNotifier
	spawner  *fakeSpawner
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Rules = nil
	cfg.Terminal = "xterm"
	return cfg
}

func newHarness(t *testing.T, cfg *config.Config, displays ...platform.Rect) *harness {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	b := newFakeBackend(displays...)
	n := &fakeNotifier{}
	s := &fakeSpawner{}
	m, err := New(cfg, b, Options{Notifier: n, Spawner: s})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &harness{t: t, m: m, backend: b, notifier: n, spawner: s}
}

// open maps a new window through a map request and returns its client.
func (h *harness) open(win platform.WindowID, w *fakeWindow) ClientID {
	h.t.Helper()
	if w == nil {
		w = &fakeWindow{}
	}
	h.backend.addWindow(win, w)
	h.m.handle(platform.MapRequest{Window: win})
	loc, ok := h.m.lookup(win)
	if !ok {
		h.t.Fatalf("expected window %d to be managed", win)
	}
	return loc.id
}

func (h *harness) win(id ClientID) platform.WindowID {
	h.t.Helper()
	c := h.m.store.Get(id)
	if c == nil {
		h.t.Fatalf("expected client %v to exist", id)
	}
	return c.Window
}

// order returns the windows of d in list order.
func (h *harness) order(d *Desktop) []platform.WindowID {
	var out []platform.WindowID
	for _, id := range d.Clients() {
		out = append(out, h.m.store.Get(id).Window)
	}
	return out
}

func (h *harness) expectOrder(d *Desktop, want ...platform.WindowID) {
	h.t.Helper()
	got := h.order(d)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		h.t.Fatalf("expected order %v, got %v", want, got)
	}
}

// checkInvariants verifies the list and focus invariants of every desktop.
func (h *harness) checkInvariants() {
	h.t.Helper()
	seen := map[ClientID]bool{}
	for mi := range h.m.monitors {
		mon := &h.m.monitors[mi]
		if mon.Current < 0 || mon.Current >= len(mon.Desktops) {
			h.t.Fatalf("monitor %d: current desktop %d out of range", mi, mon.Current)
		}
		for di := range mon.Desktops {
			d := &mon.Desktops[di]
			for _, id := range d.clients {
				if seen[id] {
					h.t.Fatalf("client %v linked twice", id)
				}
				seen[id] = true
				if h.m.store.Get(id) == nil {
					h.t.Fatalf("desktop %d/%d links freed client %v", mi, di, id)
				}
			}
			if d.Len() == 0 && (d.curr.Valid() || d.prev.Valid()) {
				h.t.Fatalf("empty desktop %d/%d has curr %v prev %v", mi, di, d.curr, d.prev)
			}
			if d.curr.Valid() && d.curr == d.prev {
				h.t.Fatalf("desktop %d/%d: curr equals prev", mi, di)
			}
			if d.curr.Valid() && !d.contains(d.curr) {
				h.t.Fatalf("desktop %d/%d: curr not in list", mi, di)
			}
		}
	}
	if len(seen) != h.m.store.Len() {
		h.t.Fatalf("expected %d linked clients, store holds %d", len(seen), h.m.store.Len())
	}
}
