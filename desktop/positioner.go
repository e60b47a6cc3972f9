package desktop

import (
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// MoveGrabStart describes an interactive move the input layer should start
// driving.
type MoveGrabStart struct {
	Window          *Window
	PointerStart    geometry.PointF
	InitialLocation geometry.Point
}

// ResizeGrabStart describes an interactive resize the input layer should
// start driving.
type ResizeGrabStart struct {
	Window          *Window
	Edges           geometry.Edges
	PointerStart    geometry.PointF
	InitialLocation geometry.Point
	InitialSize     geometry.Size
}

// Positioner is a window placement strategy. Request-style calls return nil
// when the strategy does not own the toplevel; notification-style calls are
// safe to invoke on every strategy unconditionally.
type Positioner interface {
	// MapToplevel places a freshly promoted window. reposition selects a
	// new location even if the window already has one.
	MapToplevel(w *Window, reposition bool)
	// UnmapToplevel removes the window owning t, returning it, or nil when
	// this strategy does not hold it.
	UnmapToplevel(t Toplevel) *Window

	MoveRequest(t Toplevel, pointer geometry.PointF) *MoveGrabStart
	ResizeRequest(t Toplevel, pointer geometry.PointF, edges geometry.Edges) *ResizeGrabStart
	MaximizeRequest(t Toplevel)
	UnmaximizeRequest(t Toplevel)

	OnPointerMove(pos geometry.PointF)
	OnPointerButton(pressed bool)

	SetGeometry(r geometry.Rect)
	Geometry() geometry.Rect

	// Update is the per-frame layout tick; delta is in milliseconds.
	Update(deltaMillis float64)
	SendFrames(timeMillis uint32)

	Windows() *WindowList
	FindWindow(s surface.Surface) *Window
}
