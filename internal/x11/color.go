package x11

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// AllocColor returns the pixel value for a color in the default colormap.
// "#rrggbb" and "#rgb" are parsed locally; anything else is looked up in
// the server's color database.
func (c *Connection) AllocColor(name string) (uint32, error) {
	cmap := c.XUtil.Screen().DefaultColormap
	if strings.HasPrefix(name, "#") {
		r, g, b, err := ParseHexColor(name)
		if err != nil {
			return 0, err
		}
		reply, err := xproto.AllocColor(c.XUtil.Conn(), cmap, r, g, b).Reply()
		if err != nil {
			return 0, fmt.Errorf("cannot allocate color %q: %w", name, err)
		}
		return reply.Pixel, nil
	}

	reply, err := xproto.AllocNamedColor(c.XUtil.Conn(), cmap, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("cannot allocate color %q: %w", name, err)
	}
	return reply.Pixel, nil
}

// ParseHexColor converts "#rgb" or "#rrggbb" into 16-bit channel values.
func ParseHexColor(s string) (r, g, b uint16, err error) {
	hex := strings.TrimPrefix(s, "#")
	var digits int
	switch len(hex) {
	case 3:
		digits = 1
	case 6:
		digits = 2
	default:
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}

	var ch [3]uint16
	for i := range ch {
		v, perr := strconv.ParseUint(hex[i*digits:(i+1)*digits], 16, 8)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("invalid color %q", s)
		}
		if digits == 1 {
			v |= v << 4
		}
		// Scale 0xab to 0xabab.
		ch[i] = uint16(v)<<8 | uint16(v)
	}
	return ch[0], ch[1], ch[2], nil
}
