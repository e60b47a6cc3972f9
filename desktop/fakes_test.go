package desktop

import (
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// Test doubles for the protocol boundary. Pointer types so they can key
// the surface store.

type testSurface struct {
	alive     bool
	role      surface.Role
	parent    *testSurface
	children  []*testSurface
	position  geometry.Point
	buffer    geometry.Size
	hasBuffer bool
	sync      bool
}

func newTestSurface(role surface.Role, buffer geometry.Size) *testSurface {
	return &testSurface{alive: true, role: role, buffer: buffer, hasBuffer: !buffer.Empty()}
}

func (f *testSurface) Alive() bool              { return f.alive }
func (f *testSurface) Role() surface.Role       { return f.role }
func (f *testSurface) Position() geometry.Point { return f.position }
func (f *testSurface) Synchronized() bool       { return f.sync }

func (f *testSurface) Children() []surface.Surface {
	res := make([]surface.Surface, len(f.children))
	for i, c := range f.children {
		res[i] = c
	}
	return res
}

func (f *testSurface) BufferSize() (geometry.Size, bool) {
	return f.buffer, f.hasBuffer
}

func (f *testSurface) Root() surface.Surface {
	cur := f
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

type testToplevel struct {
	surf *testSurface

	closed     bool
	activated  bool
	maximized  bool
	resizing   bool
	size       geometry.Size
	serial     uint32
	configures int

	initialSent bool
	configured  bool
}

func newTestToplevel(buffer geometry.Size) *testToplevel {
	return &testToplevel{surf: newTestSurface(surface.RoleToplevel, buffer)}
}

func (t *testToplevel) Surface() surface.Surface { return t.surf }
func (t *testToplevel) Alive() bool              { return t.surf.alive }
func (t *testToplevel) Close()                   { t.closed = true }
func (t *testToplevel) SetActivated(a bool)      { t.activated = a }
func (t *testToplevel) SetMaximized(m bool)      { t.maximized = m }
func (t *testToplevel) SetResizing(r bool)       { t.resizing = r }
func (t *testToplevel) SetSize(s geometry.Size)  { t.size = s }

func (t *testToplevel) SendConfigure() uint32 {
	t.initialSent = true
	t.configures++
	t.serial++
	return t.serial
}

func (t *testToplevel) InitialConfigureSent() bool { return t.initialSent }
func (t *testToplevel) Configured() bool           { return t.configured }

type testLayerShell struct {
	surf *testSurface

	anchor  Anchor
	zone    int
	reqSize geometry.Size
	tier    Tier

	initialSent bool
	configured  []geometry.Size
}

func newTestLayerShell(tier Tier, anchor Anchor, zone int, reqSize geometry.Size) *testLayerShell {
	return &testLayerShell{
		surf:    newTestSurface(surface.RoleLayer, reqSize),
		anchor:  anchor,
		zone:    zone,
		reqSize: reqSize,
		tier:    tier,
	}
}

func (l *testLayerShell) Surface() surface.Surface      { return l.surf }
func (l *testLayerShell) Alive() bool                   { return l.surf.alive }
func (l *testLayerShell) Anchor() Anchor                { return l.anchor }
func (l *testLayerShell) ExclusiveZone() int            { return l.zone }
func (l *testLayerShell) RequestedSize() geometry.Size  { return l.reqSize }
func (l *testLayerShell) Tier() Tier                    { return l.tier }
func (l *testLayerShell) InitialConfigureSent() bool    { return l.initialSent }

func (l *testLayerShell) SendConfigure(size geometry.Size) {
	l.initialSent = true
	l.configured = append(l.configured, size)
}

// stubPositioner keeps windows in a list and places everything at the
// origin. Enough strategy for exercising the layout.
type stubPositioner struct {
	windows  WindowList
	geometry geometry.Rect
}

func (p *stubPositioner) MapToplevel(w *Window, reposition bool) {
	p.windows.PushFront(w)
}

func (p *stubPositioner) UnmapToplevel(t Toplevel) *Window {
	return p.windows.Remove(t)
}

func (p *stubPositioner) MoveRequest(t Toplevel, pointer geometry.PointF) *MoveGrabStart {
	w := p.windows.FindToplevel(t)
	if w == nil {
		return nil
	}
	return &MoveGrabStart{Window: w, PointerStart: pointer, InitialLocation: w.Location()}
}

func (p *stubPositioner) ResizeRequest(t Toplevel, pointer geometry.PointF, edges geometry.Edges) *ResizeGrabStart {
	w := p.windows.FindToplevel(t)
	if w == nil {
		return nil
	}
	return &ResizeGrabStart{
		Window:          w,
		Edges:           edges,
		PointerStart:    pointer,
		InitialLocation: w.Location(),
		InitialSize:     w.Size(),
	}
}

func (p *stubPositioner) MaximizeRequest(t Toplevel)       {}
func (p *stubPositioner) UnmaximizeRequest(t Toplevel)     {}
func (p *stubPositioner) OnPointerMove(pos geometry.PointF) {}
func (p *stubPositioner) OnPointerButton(pressed bool)     {}
func (p *stubPositioner) SetGeometry(r geometry.Rect)      { p.geometry = r }
func (p *stubPositioner) Geometry() geometry.Rect          { return p.geometry }
func (p *stubPositioner) Update(deltaMillis float64)       {}
func (p *stubPositioner) Windows() *WindowList             { return &p.windows }

func (p *stubPositioner) SendFrames(timeMillis uint32) {
	for _, w := range p.windows.All() {
		w.SendFrames(timeMillis)
	}
}

func (p *stubPositioner) FindWindow(s surface.Surface) *Window {
	return p.windows.Find(s)
}
