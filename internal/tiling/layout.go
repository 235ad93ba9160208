package tiling

import (
	"fmt"
	"strings"
)

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Mode selects the arrangement applied to a desktop.
type Mode int

const (
	ModeTile Mode = iota
	ModeMonocle
	ModeBottomStack
	ModeGrid
)

func (m Mode) String() string {
	switch m {
	case ModeTile:
		return "tile"
	case ModeMonocle:
		return "monocle"
	case ModeBottomStack:
		return "bstack"
	case ModeGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// ParseMode converts a layout name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tile":
		return ModeTile, nil
	case "monocle":
		return ModeMonocle, nil
	case "bstack", "bottom-stack":
		return ModeBottomStack, nil
	case "grid":
		return ModeGrid, nil
	default:
		return ModeTile, fmt.Errorf("unknown layout mode %q", name)
	}
}

// Params holds the per-desktop knobs of the master/stack layouts.
type Params struct {
	MasterFraction float64
	MasterAdjust   int
	StackAdjust    int
	Border         int
}

// MasterSize returns the master area extent along an axis of the given length.
func MasterSize(axis int, fraction float64, adjust int) int {
	return int(float64(axis)*fraction + float64(adjust))
}

// MasterFits reports whether a master area of size leaves both the master and
// the stack at least min pixels.
func MasterFits(axis, size, min int) bool {
	return size >= min && axis-size >= min
}

// Stack computes the master/stack arrangement for n tiled windows. The first
// rect is the master. bottom selects the bottom-stack variant, which is the
// same split with the axes transposed.
//
// Window sizes exclude borders. Neighbouring windows share a border line, so
// the master extent along the primary axis is masterSize - border and the
// stack column starts at masterSize.
func Stack(area Rect, n int, p Params, bottom bool) []Rect {
	if n <= 0 {
		return nil
	}
	b := p.Border
	if n == 1 {
		return []Rect{{X: area.X, Y: area.Y, Width: area.Width - 2*b, Height: area.Height - 2*b}}
	}

	// Work in (primary, secondary) space: TILE splits along x then stacks
	// along y. Bottom-stack swaps the roles.
	primary, secondary := area.Width, area.Height
	if bottom {
		primary, secondary = area.Height, area.Width
	}

	ma := MasterSize(primary, p.MasterFraction, p.MasterAdjust)
	stack := n - 1
	z, rem := secondary, 0
	if stack > 1 {
		rem = (z-p.StackAdjust)%stack + p.StackAdjust
		z = (z - p.StackAdjust) / stack
	}

	type span struct{ pos, sec, plen, slen int }
	spans := make([]span, 0, n)
	spans = append(spans, span{pos: 0, sec: 0, plen: ma - b, slen: secondary - 2*b})

	cw := primary - 2*b - ma
	ch := z - b
	spans = append(spans, span{pos: ma, sec: 0, plen: cw, slen: ch - b + rem})
	off := ch + rem
	for i := 2; i < n; i++ {
		spans = append(spans, span{pos: ma, sec: off, plen: cw, slen: ch})
		off += z
	}

	out := make([]Rect, len(spans))
	for i, s := range spans {
		if bottom {
			out[i] = Rect{X: area.X + s.sec, Y: area.Y + s.pos, Width: s.slen, Height: s.plen}
		} else {
			out[i] = Rect{X: area.X + s.pos, Y: area.Y + s.sec, Width: s.plen, Height: s.slen}
		}
	}
	return out
}

// GridColumns returns the column count used by Grid for n windows.
func GridColumns(n int) int {
	if n <= 0 {
		return 0
	}
	if n == 5 {
		return 2
	}
	cols := 1
	for cols*cols < n {
		cols++
	}
	return cols
}

// Grid lays n windows out in equal columns, filled column by column. When n
// does not divide evenly the leftmost n%cols columns hold one extra row.
func Grid(area Rect, n int, border int) []Rect {
	cols := GridColumns(n)
	if cols == 0 {
		return nil
	}

	ch := area.Height - border
	cw := (area.Width - border) / cols
	out := make([]Rect, 0, n)
	for col := 0; col < cols; col++ {
		rows := n / cols
		if col < n%cols {
			rows++
		}
		for row := 0; row < rows; row++ {
			out = append(out, Rect{
				X:      area.X + col*cw,
				Y:      area.Y + row*ch/rows,
				Width:  cw - border,
				Height: ch/rows - border,
			})
		}
	}
	return out
}
