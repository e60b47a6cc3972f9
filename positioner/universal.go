package positioner

import (
	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

type Mode int

const (
	ModeFloating Mode = iota
	ModeTiling
)

func (m Mode) String() string {
	if m == ModeTiling {
		return "tiling"
	}
	return "floating"
}

// Universal composes the floating and tiling strategies. The mode selects
// which strategy is authoritative for mapping decisions; request-style
// calls take the first strategy that claims the toplevel; state
// notifications (pointer, geometry, update, frames) go to both so a window
// can hand off between modes without either losing track.
type Universal struct {
	floating *Floating
	tiling   *Tiling

	mode Mode
}

func NewUniversal(store *surface.Store, pointer geometry.PointF, geo geometry.Rect, mode Mode) *Universal {
	return &Universal{
		floating: NewFloating(store, pointer, geo),
		tiling:   NewTiling(store, pointer, geo),
		mode:     mode,
	}
}

func (u *Universal) Mode() Mode {
	return u.mode
}

func (u *Universal) SetMode(mode Mode) {
	u.mode = mode
}

// active is the strategy authoritative for mapping.
func (u *Universal) active() desktop.Positioner {
	if u.mode == ModeTiling {
		return u.tiling
	}
	return u.floating
}

// each is the always-notified list, floating first.
func (u *Universal) each() [2]desktop.Positioner {
	return [2]desktop.Positioner{u.floating, u.tiling}
}

func (u *Universal) MapToplevel(w *desktop.Window, reposition bool) {
	u.active().MapToplevel(w, reposition)
}

func (u *Universal) UnmapToplevel(t desktop.Toplevel) *desktop.Window {
	for _, p := range u.each() {
		if w := p.UnmapToplevel(t); w != nil {
			return w
		}
	}
	return nil
}

func (u *Universal) MoveRequest(t desktop.Toplevel, pointer geometry.PointF) *desktop.MoveGrabStart {
	for _, p := range u.each() {
		if req := p.MoveRequest(t, pointer); req != nil {
			return req
		}
	}
	return nil
}

func (u *Universal) ResizeRequest(t desktop.Toplevel, pointer geometry.PointF, edges geometry.Edges) *desktop.ResizeGrabStart {
	for _, p := range u.each() {
		if req := p.ResizeRequest(t, pointer, edges); req != nil {
			return req
		}
	}
	return nil
}

func (u *Universal) MaximizeRequest(t desktop.Toplevel) {
	for _, p := range u.each() {
		p.MaximizeRequest(t)
	}
}

func (u *Universal) UnmaximizeRequest(t desktop.Toplevel) {
	for _, p := range u.each() {
		p.UnmaximizeRequest(t)
	}
}

func (u *Universal) OnPointerMove(pos geometry.PointF) {
	for _, p := range u.each() {
		p.OnPointerMove(pos)
	}
}

func (u *Universal) OnPointerButton(pressed bool) {
	for _, p := range u.each() {
		p.OnPointerButton(pressed)
	}
}

func (u *Universal) SetGeometry(r geometry.Rect) {
	for _, p := range u.each() {
		p.SetGeometry(r)
	}
}

func (u *Universal) Geometry() geometry.Rect {
	return u.active().Geometry()
}

func (u *Universal) Update(deltaMillis float64) {
	for _, p := range u.each() {
		p.Update(deltaMillis)
	}
}

func (u *Universal) SendFrames(timeMillis uint32) {
	for _, p := range u.each() {
		p.SendFrames(timeMillis)
	}
}

func (u *Universal) Windows() *desktop.WindowList {
	return u.active().Windows()
}

func (u *Universal) FindWindow(s surface.Surface) *desktop.Window {
	for _, p := range u.each() {
		if w := p.FindWindow(s); w != nil {
			return w
		}
	}
	return nil
}
