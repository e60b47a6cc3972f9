package positioner

import (
	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

type testSurface struct {
	alive     bool
	buffer    geometry.Size
	hasBuffer bool
}

func (f *testSurface) Alive() bool                   { return f.alive }
func (f *testSurface) Role() surface.Role            { return surface.RoleToplevel }
func (f *testSurface) Position() geometry.Point      { return geometry.Point{} }
func (f *testSurface) Synchronized() bool            { return false }
func (f *testSurface) Children() []surface.Surface   { return nil }
func (f *testSurface) Root() surface.Surface         { return f }

func (f *testSurface) BufferSize() (geometry.Size, bool) {
	return f.buffer, f.hasBuffer
}

type testToplevel struct {
	surf *testSurface

	askedSize  geometry.Size
	configures int
	maximized  bool
}

func newTestToplevel(buffer geometry.Size) *testToplevel {
	return &testToplevel{surf: &testSurface{alive: true, buffer: buffer, hasBuffer: !buffer.Empty()}}
}

func (t *testToplevel) Surface() surface.Surface { return t.surf }
func (t *testToplevel) Alive() bool              { return t.surf.alive }
func (t *testToplevel) Close()                   {}
func (t *testToplevel) SetActivated(bool)        {}
func (t *testToplevel) SetMaximized(m bool)      { t.maximized = m }
func (t *testToplevel) SetResizing(bool)         {}
func (t *testToplevel) SetSize(s geometry.Size)  { t.askedSize = s }

func (t *testToplevel) SendConfigure() uint32 {
	t.configures++
	return uint32(t.configures)
}

func (t *testToplevel) InitialConfigureSent() bool { return t.configures > 0 }
func (t *testToplevel) Configured() bool           { return true }

func newMappedWindow(st *surface.Store, buffer geometry.Size) (*desktop.Window, *testToplevel) {
	toplevel := newTestToplevel(buffer)
	st.UpdateBuffers(toplevel.surf)
	w := desktop.NewWindow(st, toplevel)
	w.SelfUpdate()
	return w, toplevel
}

func testArea() geometry.Rect {
	return geometry.RectAt(geometry.Point{}, geometry.Size{W: 1000, H: 800})
}
