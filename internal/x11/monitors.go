package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Heads returns the physical monitors, left to right. Xinerama is asked
// first; servers without it fall back to RandR CRTCs and finally to the
// root window as a single head.
func (c *Connection) Heads() ([]Monitor, error) {
	if c.XUtil.ExtInitialized("XINERAMA") {
		if heads, err := xinerama.PhysicalHeads(c.XUtil); err == nil && len(heads) > 0 {
			return monitorsFromRects(heads), nil
		}
	}

	if monitors, err := c.randrMonitors(); err == nil && len(monitors) > 0 {
		return monitors, nil
	}

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root geometry: %w", err)
	}
	if geom.Width == 0 || geom.Height == 0 {
		return nil, ErrNoHeads
	}
	return []Monitor{{
		Name:   "root",
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}}, nil
}

func monitorsFromRects(rects []xrect.Rect) []Monitor {
	out := make([]Monitor, 0, len(rects))
	for i, r := range rects {
		x, y, w, h := r.Pieces()
		out = append(out, Monitor{
			ID:     i,
			Name:   fmt.Sprintf("xinerama-%d", i),
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		})
	}
	return out
}

// randrMonitors lists the active CRTCs.
func (c *Connection) randrMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}
		// Mirrored outputs share an origin; keep the first.
		dup := false
		for _, m := range monitors {
			if m.X == int(crtcInfo.X) && m.Y == int(crtcInfo.Y) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     len(monitors),
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}
