package shell

import (
	"testing"

	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

func TestMoveGrabFollowsPointer(t *testing.T) {
	fx := newFixture()
	toplevel, w := fx.mapToplevel(t, geometry.Size{W: 100, H: 100})
	w.SetLocation(geometry.Point{X: 200, Y: 200})

	if !fx.shell.HandleMoveRequest(toplevel, geometry.PointF{X: 250, Y: 250}) {
		t.Fatalf("Move request denied")
	}
	if fx.layout.Grabbed() != w {
		t.Errorf("Grabbed window not registered on the layout")
	}

	fx.shell.OnPointerMove(geometry.PointF{X: 280, Y: 240})
	if w.Location() != (geometry.Point{X: 230, Y: 190}) {
		t.Errorf("Window at %+v, wanted the pointer delta applied to (200,200)", w.Location())
	}

	// Motion is relative to the grab start, not cumulative.
	fx.shell.OnPointerMove(geometry.PointF{X: 250, Y: 250})
	if w.Location() != (geometry.Point{X: 200, Y: 200}) {
		t.Errorf("Returning the pointer did not return the window, at %+v", w.Location())
	}

	fx.shell.OnPointerButton(false)
	if fx.shell.GrabActive() {
		t.Errorf("Grab survived the release")
	}
	if fx.layout.Grabbed() != nil {
		t.Errorf("Layout still thinks a window is grabbed")
	}
}

func TestMoveGrabDiesWithWindow(t *testing.T) {
	fx := newFixture()
	toplevel, _ := fx.mapToplevel(t, geometry.Size{W: 100, H: 100})
	fx.shell.HandleMoveRequest(toplevel, geometry.PointF{X: 10, Y: 10})

	toplevel.surf.alive = false
	fx.shell.OnPointerMove(geometry.PointF{X: 50, Y: 50})

	if fx.shell.GrabActive() {
		t.Errorf("Grab survived its window's death")
	}
}

func TestResizeGrabClampsToMinimumSize(t *testing.T) {
	fx := newFixture()
	toplevel, w := fx.mapToplevel(t, geometry.Size{W: 100, H: 100})
	w.SetLocation(geometry.Point{X: 200, Y: 200})

	fx.shell.HandleResizeRequest(toplevel, geometry.PointF{X: 300, Y: 300}, geometry.EdgeBottomRight)
	// Drag far past the opposite corner.
	fx.shell.OnPointerMove(geometry.PointF{X: 0, Y: 0})

	if toplevel.askedSize != (geometry.Size{W: 1, H: 1}) {
		t.Errorf("Requested size %+v, the grab must never ask for zero or negative", toplevel.askedSize)
	}
}

func TestResizeRequestDeniedForUnknownToplevel(t *testing.T) {
	fx := newFixture()
	stranger := newTestToplevel()

	if fx.shell.HandleResizeRequest(stranger, geometry.PointF{}, geometry.EdgeRight) {
		t.Errorf("Resize request granted for a toplevel no strategy owns")
	}
	if fx.shell.GrabActive() {
		t.Errorf("Grab active after a denied request")
	}
}

func TestPointerMotionForwardedWithoutGrab(t *testing.T) {
	fx := newFixture()
	_, w := fx.mapToplevel(t, geometry.Size{W: 100, H: 100})
	w.SetLocation(geometry.Point{X: 0, Y: 0})

	// No grab: motion reaches the strategy, and a press raises the window
	// under the remembered pointer location.
	_, sw := fx.mapToplevel(t, geometry.Size{W: 100, H: 100})
	sw.SetLocation(geometry.Point{X: 500, Y: 500})

	fx.shell.OnPointerMove(geometry.PointF{X: 50, Y: 50})
	fx.shell.OnPointerButton(true)

	ws := fx.layout.ActiveWorkspace()
	if ws.Windows().All()[0] != w {
		t.Errorf("Press under the first window did not raise it")
	}

	data, ok := fx.store.Lookup(w.Surface())
	if !ok || data.Resize.Kind != surface.NotResizing {
		t.Errorf("Plain pointer input touched the resize state")
	}
}
