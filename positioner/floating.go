package positioner

import (
	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

const cascadeStep = 30

// Floating places windows freely, cascading new ones across the usable
// area. Interactive moves and resizes are allowed for every window it owns.
type Floating struct {
	store    *surface.Store
	windows  desktop.WindowList
	geometry geometry.Rect
	pointer  geometry.PointF

	mapped int
}

func NewFloating(store *surface.Store, pointer geometry.PointF, geo geometry.Rect) *Floating {
	return &Floating{
		store:    store,
		geometry: geo,
		pointer:  pointer,
	}
}

func (f *Floating) MapToplevel(w *desktop.Window, reposition bool) {
	if reposition || w.Location() == (geometry.Point{}) {
		step := f.mapped % 10
		w.SetLocation(geometry.Point{
			X: f.geometry.Loc.X + cascadeStep*(step+1),
			Y: f.geometry.Loc.Y + cascadeStep*(step+1),
		})
	}
	f.mapped++
	w.SelfUpdate()
	f.windows.PushFront(w)
	logrus.WithFields(logrus.Fields{
		"location": w.Location(),
		"windows":  f.windows.Len(),
	}).Debugln("Floating mapped toplevel")
}

func (f *Floating) UnmapToplevel(t desktop.Toplevel) *desktop.Window {
	return f.windows.Remove(t)
}

func (f *Floating) MoveRequest(t desktop.Toplevel, pointer geometry.PointF) *desktop.MoveGrabStart {
	w := f.windows.FindToplevel(t)
	if w == nil {
		return nil
	}
	return &desktop.MoveGrabStart{
		Window:          w,
		PointerStart:    pointer,
		InitialLocation: w.Location(),
	}
}

func (f *Floating) ResizeRequest(t desktop.Toplevel, pointer geometry.PointF, edges geometry.Edges) *desktop.ResizeGrabStart {
	w := f.windows.FindToplevel(t)
	if w == nil {
		return nil
	}
	data := f.store.Get(w.Surface())
	data.Resize = surface.ResizeState{
		Kind:            surface.Resizing,
		Edges:           edges,
		InitialLocation: w.Location(),
		InitialSize:     w.Size(),
	}
	t.SetResizing(true)
	return &desktop.ResizeGrabStart{
		Window:          w,
		Edges:           edges,
		PointerStart:    pointer,
		InitialLocation: w.Location(),
		InitialSize:     w.Size(),
	}
}

// MaximizeRequest grows the window to the usable area. The new location is
// scheduled as a move-after-resize so the window does not jump before the
// client commits a buffer of the new size.
func (f *Floating) MaximizeRequest(t desktop.Toplevel) {
	w := f.windows.FindToplevel(t)
	if w == nil {
		return
	}
	w.SetMaximized(true)
	f.configureTo(w, f.geometry)
}

func (f *Floating) UnmaximizeRequest(t desktop.Toplevel) {
	w := f.windows.FindToplevel(t)
	if w == nil || !w.Maximized() {
		return
	}
	saved := w.SavedGeometry()
	w.SetMaximized(false)
	f.configureTo(w, saved)
}

func (f *Floating) configureTo(w *desktop.Window, target geometry.Rect) {
	t := w.Toplevel()
	t.SetSize(target.Size)
	t.SendConfigure()
	data := f.store.Get(w.Surface())
	data.MoveAfterResize = surface.MoveAfterResizeState{
		Kind:   surface.MoveAfterResizeWaitingForCommit,
		Target: target.Loc,
	}
}

func (f *Floating) OnPointerMove(pos geometry.PointF) {
	f.pointer = pos
}

func (f *Floating) OnPointerButton(pressed bool) {
	if pressed {
		if w := f.windows.WindowUnder(f.pointer); w != nil {
			f.windows.MoveToFront(w)
		}
	}
}

func (f *Floating) SetGeometry(r geometry.Rect) {
	f.geometry = r
	for _, w := range f.windows.All() {
		if w.Maximized() {
			f.configureTo(w, r)
		}
	}
}

func (f *Floating) Geometry() geometry.Rect {
	return f.geometry
}

func (f *Floating) Update(deltaMillis float64) {}

func (f *Floating) SendFrames(timeMillis uint32) {
	for _, w := range f.windows.All() {
		w.SendFrames(timeMillis)
	}
}

func (f *Floating) Windows() *desktop.WindowList {
	return &f.windows
}

func (f *Floating) FindWindow(s surface.Surface) *desktop.Window {
	return f.windows.Find(s)
}
