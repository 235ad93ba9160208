package wm

import (
	"strings"
	"unicode/utf8"

	"github.com/1broseidon/mwm/internal/platform"
)

// maxNameLen bounds Client.Name in bytes.
const maxNameLen = 255

// Client is one managed top-level window.
type Client struct {
	Window platform.WindowID

	Urgent     bool
	Monocle    bool // expanded to the whole monitor by monocle mode
	Fullscreen bool
	Transient  bool
	Fixed      bool

	// Cached geometry, restored when leaving monocle, fullscreen or tiling.
	X, Y, W, H int

	Name string
}

// immutable clients keep caller-set geometry and are skipped by layouts.
func (c *Client) immutable() bool {
	return c.Fixed || c.Transient
}

func (c *Client) rect() platform.Rect {
	return platform.Rect{X: c.X, Y: c.Y, Width: c.W, Height: c.H}
}

func (c *Client) setRect(r platform.Rect) {
	c.X, c.Y, c.W, c.H = r.X, r.Y, r.Width, r.Height
}

// setName stores name as valid UTF-8, cut on a character boundary.
func (c *Client) setName(name string) {
	name = strings.ToValidUTF8(name, "\uFFFD")
	if len(name) > maxNameLen {
		cut := maxNameLen
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	c.Name = name
}

// ClientID is a handle into a Store. The zero value is "no client"; a
// handle whose client has been freed resolves to nothing.
type ClientID struct {
	slot uint32
	gen  uint32
}

// Valid reports whether id was ever issued. It does not mean the client
// still exists.
func (id ClientID) Valid() bool {
	return id.gen != 0
}

type storeSlot struct {
	gen    uint32
	live   bool
	client Client
}

// Store owns every Client. Desktops refer to clients only by ClientID.
type Store struct {
	slots []storeSlot
	free  []uint32
}

// Alloc stores c and returns its handle.
func (s *Store) Alloc(c Client) ClientID {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, storeSlot{})
		idx = uint32(len(s.slots) - 1)
	}
	sl := &s.slots[idx]
	sl.gen++
	sl.live = true
	sl.client = c
	return ClientID{slot: idx, gen: sl.gen}
}

// Get returns the client for id, or nil if id is absent or stale.
func (s *Store) Get(id ClientID) *Client {
	if !id.Valid() || int(id.slot) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[id.slot]
	if !sl.live || sl.gen != id.gen {
		return nil
	}
	return &sl.client
}

// Free releases id. Later lookups of id return nil.
func (s *Store) Free(id ClientID) {
	if s.Get(id) == nil {
		return
	}
	sl := &s.slots[id.slot]
	sl.live = false
	sl.client = Client{}
	s.free = append(s.free, id.slot)
}

// Len returns the number of live clients.
func (s *Store) Len() int {
	return len(s.slots) - len(s.free)
}
