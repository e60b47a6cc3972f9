package positioner

import (
	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// Tiling slots windows into a binary split tree covering the usable area.
// Interactive moves and resizes are refused; the tree owns all geometry.
type Tiling struct {
	store    *surface.Store
	windows  desktop.WindowList
	tree     Tree
	geometry geometry.Rect
	pointer  geometry.PointF
}

func NewTiling(store *surface.Store, pointer geometry.PointF, geo geometry.Rect) *Tiling {
	return &Tiling{
		store:    store,
		tree:     NewTree(),
		geometry: geo,
		pointer:  pointer,
	}
}

func (t *Tiling) MapToplevel(w *desktop.Window, reposition bool) {
	t.windows.PushFront(w)
	t.tree.AddWindow(w)
	t.relayout()
	logrus.WithField("windows", t.windows.Len()).Debugln("Tiling mapped toplevel")
}

func (t *Tiling) UnmapToplevel(tl desktop.Toplevel) *desktop.Window {
	w := t.windows.Remove(tl)
	if w == nil {
		return nil
	}
	t.tree.RemoveWindow(w)
	t.relayout()
	return w
}

// relayout recomputes every slot and reconfigures the windows. The new
// location is latched through move-after-resize so each window moves only
// once its matching buffer lands.
func (t *Tiling) relayout() {
	t.tree.Apply(t.geometry, func(w *desktop.Window, r geometry.Rect) {
		tl := w.Toplevel()
		tl.SetSize(r.Size)
		tl.SendConfigure()
		data := t.store.Get(w.Surface())
		data.MoveAfterResize = surface.MoveAfterResizeState{
			Kind:   surface.MoveAfterResizeWaitingForCommit,
			Target: r.Loc,
		}
	})
}

// MoveRequest refuses interactive moves; slots are fixed by the tree.
func (t *Tiling) MoveRequest(desktop.Toplevel, geometry.PointF) *desktop.MoveGrabStart {
	return nil
}

// ResizeRequest refuses interactive resizes; slots are fixed by the tree.
func (t *Tiling) ResizeRequest(desktop.Toplevel, geometry.PointF, geometry.Edges) *desktop.ResizeGrabStart {
	return nil
}

func (t *Tiling) MaximizeRequest(tl desktop.Toplevel) {
	if t.windows.FindToplevel(tl) == nil {
		return
	}
	logrus.Debugln("Ignoring maximize for tiled toplevel")
}

func (t *Tiling) UnmaximizeRequest(tl desktop.Toplevel) {}

func (t *Tiling) OnPointerMove(pos geometry.PointF) {
	t.pointer = pos
}

func (t *Tiling) OnPointerButton(pressed bool) {
	if !pressed {
		return
	}
	if w := t.windows.WindowUnder(t.pointer); w != nil {
		if leaf := t.tree.Find(w); leaf != nil {
			t.tree.LastFocused = leaf
		}
	}
}

func (t *Tiling) SetGeometry(r geometry.Rect) {
	if r == t.geometry {
		return
	}
	t.geometry = r
	t.relayout()
}

func (t *Tiling) Geometry() geometry.Rect {
	return t.geometry
}

func (t *Tiling) Update(deltaMillis float64) {}

func (t *Tiling) SendFrames(timeMillis uint32) {
	for _, w := range t.windows.All() {
		w.SendFrames(timeMillis)
	}
}

func (t *Tiling) Windows() *desktop.WindowList {
	return &t.windows
}

func (t *Tiling) FindWindow(s surface.Surface) *desktop.Window {
	return t.windows.Find(s)
}
