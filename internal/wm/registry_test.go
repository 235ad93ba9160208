package wm

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func newDesktop(s *Store, n int) (*Desktop, []ClientID) {
	d := &Desktop{}
	var ids []ClientID
	for i := 0; i < n; i++ {
		id := s.Alloc(Client{Name: fmt.Sprintf("c%d", i)})
		d.link(id, true)
		ids = append(ids, id)
	}
	return d, ids
}

func TestStoreRejectsStaleHandles(t *testing.T) {
	var s Store
	a := s.Alloc(Client{Name: "a"})
	s.Free(a)
	b := s.Alloc(Client{Name: "b"})

	if s.Get(a) != nil {
		t.Fatalf("expected freed handle to resolve to nothing")
	}
	if c := s.Get(b); c == nil || c.Name != "b" {
		t.Fatalf("expected reused slot to hold b, got %+v", c)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 live client, got %d", s.Len())
	}
	if s.Get(ClientID{}) != nil {
		t.Fatalf("expected zero handle to resolve to nothing")
	}
	s.Free(a)
	if s.Len() != 1 {
		t.Fatalf("expected double free to be ignored, got %d live", s.Len())
	}
}

func TestClientNameTruncated(t *testing.T) {
	var c Client
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	c.setName(string(long))
	if len(c.Name) != maxNameLen {
		t.Fatalf("expected name of %d bytes, got %d", maxNameLen, len(c.Name))
	}
}

func TestClientNameKeepsValidUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "cut inside a rune", in: strings.Repeat("a", 254) + "é", want: strings.Repeat("a", 254)},
		{name: "rune ends at limit", in: strings.Repeat("a", 253) + "é", want: strings.Repeat("a", 253) + "é"},
		{name: "invalid byte", in: "caf\xe9", want: "caf\uFFFD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Client
			c.setName(tt.in)
			if !utf8.ValidString(c.Name) {
				t.Fatalf("expected valid UTF-8, got %q", c.Name)
			}
			if c.Name != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, c.Name)
			}
		})
	}
}

func TestLinkPolicy(t *testing.T) {
	tests := []struct {
		name  string
		aside bool
		want  []string
	}{
		{name: "attach aside appends", aside: true, want: []string{"a", "b", "c"}},
		{name: "default prepends", aside: false, want: []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Store
			d := &Desktop{}
			for _, n := range []string{"a", "b", "c"} {
				d.link(s.Alloc(Client{Name: n}), tt.aside)
			}
			var got []string
			for _, id := range d.Clients() {
				got = append(got, s.Get(id).Name)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPreviousOf(t *testing.T) {
	var s Store
	d, ids := newDesktop(&s, 3)

	if got := d.previousOf(ids[1]); got != ids[0] {
		t.Fatalf("expected previous of second to be head")
	}
	if got := d.previousOf(ids[0]); got != ids[2] {
		t.Fatalf("expected previous of head to be tail")
	}
	if got := d.previousOf(ClientID{}); got.Valid() {
		t.Fatalf("expected nothing for absent client")
	}

	single, one := newDesktop(&s, 1)
	if got := single.previousOf(one[0]); got.Valid() {
		t.Fatalf("expected nothing on a single-client desktop")
	}
}

func TestUnlink(t *testing.T) {
	var s Store
	d, ids := newDesktop(&s, 3)
	if !d.unlink(ids[1]) {
		t.Fatalf("expected unlink to succeed")
	}
	if d.unlink(ids[1]) {
		t.Fatalf("expected second unlink to report false")
	}
	if d.Len() != 2 || d.Head() != ids[0] || d.next(ids[0]) != ids[2] {
		t.Fatalf("expected chain a -> c, got %v", d.Clients())
	}
}

func TestMoveUpTwiceBringsTailToHead(t *testing.T) {
	var s Store
	d, ids := newDesktop(&s, 3)
	d.curr = ids[2]

	d.moveUp()
	d.moveUp()

	want := []ClientID{ids[2], ids[0], ids[1]}
	if fmt.Sprint(d.Clients()) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, d.Clients())
	}
	if d.Head() != ids[2] || d.curr != ids[2] {
		t.Fatalf("expected moved client to be head and current")
	}
}

func TestMoveWrapsAtEnds(t *testing.T) {
	var s Store
	d, ids := newDesktop(&s, 3)

	d.curr = ids[0]
	d.moveUp()
	if want := []ClientID{ids[1], ids[2], ids[0]}; fmt.Sprint(d.Clients()) != fmt.Sprint(want) {
		t.Fatalf("expected head to wrap to tail, got %v", d.Clients())
	}

	d.moveDown()
	if want := []ClientID{ids[0], ids[1], ids[2]}; fmt.Sprint(d.Clients()) != fmt.Sprint(want) {
		t.Fatalf("expected tail to wrap to head, got %v", d.Clients())
	}
}

func TestMoveUpDownRoundTrip(t *testing.T) {
	for n := 0; n <= 5; n++ {
		for pos := 0; pos < n; pos++ {
			for _, upFirst := range []bool{true, false} {
				var s Store
				d, ids := newDesktop(&s, n)
				d.curr = ids[pos]
				before := fmt.Sprint(d.Clients())

				if upFirst {
					d.moveUp()
					d.moveDown()
				} else {
					d.moveDown()
					d.moveUp()
				}
				if after := fmt.Sprint(d.Clients()); after != before {
					t.Fatalf("n=%d pos=%d upFirst=%v: expected %s, got %s", n, pos, upFirst, before, after)
				}
			}
		}
	}
}

func TestMoveNoOpOnSingleClient(t *testing.T) {
	var s Store
	d, ids := newDesktop(&s, 1)
	d.curr = ids[0]
	if d.moveUp() || d.moveDown() {
		t.Fatalf("expected moves on a single client to be no-ops")
	}
}
