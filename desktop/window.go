package desktop

import (
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// Toplevel is the boundary to a surface with window semantics. The shell
// protocol variant wraps an xdg-toplevel; the legacy X variant wraps an
// XWayland window and needs no configure/ack handshake.
type Toplevel interface {
	Surface() surface.Surface
	Alive() bool

	Close()
	SetActivated(activated bool)
	SetMaximized(maximized bool)
	SetResizing(resizing bool)
	SetSize(size geometry.Size)

	// SendConfigure flushes the pending state to the client and returns
	// the serial the client will acknowledge.
	SendConfigure() uint32
	InitialConfigureSent() bool

	// Configured reports whether the configure/ack handshake has
	// completed. Legacy X toplevels always report true.
	Configured() bool
}

// Window is the desktop-level wrapper around a Toplevel: a location plus a
// bounding box covering the toplevel surface and all its sub-surfaces.
type Window struct {
	toplevel Toplevel
	store    *surface.Store

	location geometry.Point
	bbox     geometry.Rect

	maximized     bool
	savedGeometry geometry.Rect
}

func NewWindow(store *surface.Store, toplevel Toplevel) *Window {
	return &Window{
		toplevel: toplevel,
		store:    store,
	}
}

func (w *Window) Toplevel() Toplevel {
	return w.toplevel
}

func (w *Window) Surface() surface.Surface {
	return w.toplevel.Surface()
}

func (w *Window) Alive() bool {
	return w.toplevel.Alive()
}

func (w *Window) Location() geometry.Point {
	return w.location
}

func (w *Window) SetLocation(p geometry.Point) {
	delta := p.Sub(w.location)
	w.location = p
	// Every rect in the box derives its offset from the window location,
	// so the box translates with it.
	w.bbox.Loc = w.bbox.Loc.Add(delta)
}

// Geometry is the window's bounding box: its location unioned with every
// mapped descendant surface's rect. Stale across a commit boundary only if
// SelfUpdate was skipped, which the commit pipeline never does.
func (w *Window) Geometry() geometry.Rect {
	return w.bbox
}

func (w *Window) Size() geometry.Size {
	return w.bbox.Size
}

// SelfUpdate recomputes the bounding box by re-walking the surface tree.
func (w *Window) SelfUpdate() {
	if !w.Alive() {
		return
	}
	w.bbox = w.store.BoundingBox(w.Surface(), w.location)
}

// SurfaceAt hit-tests the window's surface tree at a layout-space point.
func (w *Window) SurfaceAt(p geometry.PointF) (surface.Surface, geometry.Point, bool) {
	if !w.Alive() || !w.bbox.Contains(p) {
		return nil, geometry.Point{}, false
	}
	return w.store.SurfaceAt(w.Surface(), w.location, p)
}

// ContainsSurface reports whether s belongs to this window's surface tree.
func (w *Window) ContainsSurface(s surface.Surface) bool {
	return w.Alive() && s.Root() == w.Surface()
}

func (w *Window) SendFrames(timeMillis uint32) {
	if !w.Alive() {
		return
	}
	w.store.SendFrames(w.Surface(), timeMillis)
}

func (w *Window) Maximized() bool {
	return w.maximized
}

// SetMaximized records the maximize flag, saving the current geometry so
// an unmaximize can restore it.
func (w *Window) SetMaximized(maximized bool) {
	if maximized == w.maximized {
		return
	}
	if maximized {
		w.savedGeometry = geometry.RectAt(w.location, w.bbox.Size)
	}
	w.maximized = maximized
	w.toplevel.SetMaximized(maximized)
}

// SavedGeometry is the floating geometry captured by the last maximize.
func (w *Window) SavedGeometry() geometry.Rect {
	return w.savedGeometry
}

// WindowList is an ordered set of windows, front-most first.
type WindowList struct {
	windows []*Window
}

func (wl *WindowList) PushFront(w *Window) {
	wl.windows = append([]*Window{w}, wl.windows...)
}

func (wl *WindowList) Len() int {
	return len(wl.windows)
}

// All returns the windows front-most first. Callers must not mutate the
// returned slice.
func (wl *WindowList) All() []*Window {
	return wl.windows
}

// Find returns the window whose surface tree owns s.
func (wl *WindowList) Find(s surface.Surface) *Window {
	for _, w := range wl.windows {
		if w.ContainsSurface(s) {
			return w
		}
	}
	return nil
}

func (wl *WindowList) FindToplevel(t Toplevel) *Window {
	for _, w := range wl.windows {
		if w.toplevel == t {
			return w
		}
	}
	return nil
}

// Remove takes the window owning t out of the list and returns it.
func (wl *WindowList) Remove(t Toplevel) *Window {
	for i, w := range wl.windows {
		if w.toplevel == t {
			wl.windows = append(wl.windows[:i], wl.windows[i+1:]...)
			return w
		}
	}
	return nil
}

// MoveToFront raises the window to the top of the stack.
func (wl *WindowList) MoveToFront(w *Window) {
	for i, cur := range wl.windows {
		if cur == w {
			wl.windows = append(wl.windows[:i], wl.windows[i+1:]...)
			wl.windows = append([]*Window{w}, wl.windows...)
			return
		}
	}
}

// Refresh prunes dead windows and recomputes the survivors' boxes.
func (wl *WindowList) Refresh() {
	alive := wl.windows[:0]
	for _, w := range wl.windows {
		if w.Alive() {
			w.SelfUpdate()
			alive = append(alive, w)
		}
	}
	wl.windows = alive
}

// WindowUnder returns the front-most window whose box contains the point.
func (wl *WindowList) WindowUnder(p geometry.PointF) *Window {
	for _, w := range wl.windows {
		if w.Alive() && w.Geometry().Contains(p) {
			return w
		}
	}
	return nil
}
