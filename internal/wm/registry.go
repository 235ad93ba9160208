package wm

import (
	"github.com/1broseidon/mwm/internal/platform"
	"github.com/1broseidon/mwm/internal/tiling"
)

// Desktop is one virtual desktop of a monitor. clients is the ordered
// client chain; element 0 is the head. curr and prev are weak references
// that removeClient revalidates.
type Desktop struct {
	Mode         tiling.Mode
	MasterAdjust int
	StackAdjust  int

	clients []ClientID
	curr    ClientID
	prev    ClientID
}

// Monitor is one physical display with a fixed set of desktops.
type Monitor struct {
	Rect     platform.Rect
	Desktops []Desktop
	Current  int
	Previous int
}

func newMonitor(r platform.Rect, desktops int, mode tiling.Mode, current int) Monitor {
	m := Monitor{
		Rect:     r,
		Desktops: make([]Desktop, desktops),
		Current:  current,
		Previous: current,
	}
	for i := range m.Desktops {
		m.Desktops[i].Mode = mode
	}
	return m
}

func (m *Monitor) desktop() *Desktop {
	return &m.Desktops[m.Current]
}

// Head returns the first client, or the zero ClientID.
func (d *Desktop) Head() ClientID {
	if len(d.clients) == 0 {
		return ClientID{}
	}
	return d.clients[0]
}

// Clients returns the chain in order. The slice must not be modified.
func (d *Desktop) Clients() []ClientID {
	return d.clients
}

// Len returns the number of clients.
func (d *Desktop) Len() int {
	return len(d.clients)
}

// Current returns the focused client.
func (d *Desktop) Current() ClientID {
	return d.curr
}

// Previous returns the previously focused client.
func (d *Desktop) Previous() ClientID {
	return d.prev
}

func (d *Desktop) indexOf(id ClientID) int {
	if !id.Valid() {
		return -1
	}
	for i, c := range d.clients {
		if c == id {
			return i
		}
	}
	return -1
}

func (d *Desktop) contains(id ClientID) bool {
	return d.indexOf(id) >= 0
}

// next returns the client after id, or nothing at the tail.
func (d *Desktop) next(id ClientID) ClientID {
	i := d.indexOf(id)
	if i < 0 || i+1 >= len(d.clients) {
		return ClientID{}
	}
	return d.clients[i+1]
}

// previousOf returns the client before id. The head's predecessor is the
// tail. It returns nothing when id is absent or the desktop holds fewer
// than two clients.
func (d *Desktop) previousOf(id ClientID) ClientID {
	if !id.Valid() || len(d.clients) < 2 {
		return ClientID{}
	}
	i := d.indexOf(id)
	if i <= 0 {
		return d.clients[len(d.clients)-1]
	}
	return d.clients[i-1]
}

// link inserts id: an empty desktop gets it as head; with attachAside it
// goes after the last client, otherwise it becomes the new head.
func (d *Desktop) link(id ClientID, attachAside bool) {
	if len(d.clients) == 0 || attachAside {
		d.clients = append(d.clients, id)
		return
	}
	d.clients = append([]ClientID{id}, d.clients...)
}

// unlink removes id from the chain. It reports false if id was not there.
func (d *Desktop) unlink(id ClientID) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	d.clients = append(d.clients[:i], d.clients[i+1:]...)
	return true
}

// moveUp moves curr one position toward the head. The head moves to the
// tail.
func (d *Desktop) moveUp() bool {
	i := d.indexOf(d.curr)
	if i < 0 || len(d.clients) < 2 {
		return false
	}
	if i == 0 {
		copy(d.clients, d.clients[1:])
		d.clients[len(d.clients)-1] = d.curr
		return true
	}
	d.clients[i-1], d.clients[i] = d.clients[i], d.clients[i-1]
	return true
}

// moveDown moves curr one position toward the tail. The tail moves to the
// head.
func (d *Desktop) moveDown() bool {
	i := d.indexOf(d.curr)
	n := len(d.clients)
	if i < 0 || n < 2 {
		return false
	}
	if i == n-1 {
		copy(d.clients[1:], d.clients[:n-1])
		d.clients[0] = d.curr
		return true
	}
	d.clients[i+1], d.clients[i] = d.clients[i], d.clients[i+1]
	return true
}
