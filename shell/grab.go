package shell

import (
	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// MoveGrab drags one window with the pointer. It is cancelled by a button
// release or by the surface dying.
type MoveGrab struct {
	window  *desktop.Window
	start   geometry.PointF
	initial geometry.Point
}

func NewMoveGrab(req *desktop.MoveGrabStart) *MoveGrab {
	return &MoveGrab{
		window:  req.Window,
		start:   req.PointerStart,
		initial: req.InitialLocation,
	}
}

func (g *MoveGrab) Window() *desktop.Window {
	return g.window
}

// Motion repositions the window by the pointer delta. Returns false once
// the grab is dead and should be dropped.
func (g *MoveGrab) Motion(pos geometry.PointF) bool {
	if !g.window.Alive() {
		return false
	}
	delta := pos.Sub(g.start).Round()
	g.window.SetLocation(g.initial.Add(delta))
	return true
}

// ResizeGrab drives an interactive resize. The surface's resize state was
// set to Resizing when the grab started; releasing the button sends the
// final configure and advances it to WaitingForFinalAck. The commit
// pipeline finishes the rest.
type ResizeGrab struct {
	store  *surface.Store
	window *desktop.Window

	edges       geometry.Edges
	start       geometry.PointF
	initialLoc  geometry.Point
	initialSize geometry.Size

	lastSize geometry.Size
}

func NewResizeGrab(store *surface.Store, req *desktop.ResizeGrabStart) *ResizeGrab {
	return &ResizeGrab{
		store:       store,
		window:      req.Window,
		edges:       req.Edges,
		start:       req.PointerStart,
		initialLoc:  req.InitialLocation,
		initialSize: req.InitialSize,
		lastSize:    req.InitialSize,
	}
}

func (g *ResizeGrab) Window() *desktop.Window {
	return g.window
}

// Motion computes the new size from the pointer delta and the grabbed
// edges and asks the client to resize. Location compensation for top/left
// edges happens later, on commit, once the client produced a matching
// buffer.
func (g *ResizeGrab) Motion(pos geometry.PointF) bool {
	if !g.window.Alive() {
		return false
	}
	delta := pos.Sub(g.start).Round()

	size := g.initialSize
	if g.edges.Intersects(geometry.EdgeLeft) {
		size.W -= delta.X
	} else if g.edges.Intersects(geometry.EdgeRight) {
		size.W += delta.X
	}
	if g.edges.Intersects(geometry.EdgeTop) {
		size.H -= delta.Y
	} else if g.edges.Intersects(geometry.EdgeBottom) {
		size.H += delta.Y
	}
	if size.W < 1 {
		size.W = 1
	}
	if size.H < 1 {
		size.H = 1
	}

	g.lastSize = size
	g.window.Toplevel().SetSize(size)
	return true
}

// Release ends the interactive part: the final configure goes out and the
// surface waits for the client's matching ack.
func (g *ResizeGrab) Release() {
	if !g.window.Alive() {
		return
	}
	t := g.window.Toplevel()
	t.SetResizing(false)
	serial := t.SendConfigure()

	data := g.store.Get(g.window.Surface())
	if data.Resize.Kind != surface.Resizing {
		logrus.WithField("state", data.Resize.Kind).Warnln("Resize grab released in unexpected state")
		return
	}
	data.Resize.Kind = surface.WaitingForFinalAck
	data.Resize.Serial = serial
}
