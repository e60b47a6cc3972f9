package main

import (
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

/* The core never sees a wlroots type. These adapters shadow the protocol
 * objects and feed the desktop layout through the surface.Surface,
 * desktop.Toplevel and desktop.LayerShell boundary interfaces.
 *
 * The binding exposes no subcompositor listeners, so the shadow tree is
 * always a single node here: wlroots assigns sub-surface roles and renders
 * them through the scene graph on its own. The core's tree walks still see
 * multi-node trees wherever a richer boundary provides them. */

type wlSurface struct {
	res    wlroots.Surface
	server *Server

	role surface.Role
	dead bool
}

func (s *wlSurface) Alive() bool {
	return !s.dead
}

func (s *wlSurface) Role() surface.Role {
	return s.role
}

func (s *wlSurface) Children() []surface.Surface {
	return nil
}

func (s *wlSurface) Position() geometry.Point {
	return geometry.Point{}
}

func (s *wlSurface) BufferSize() (geometry.Size, bool) {
	if s.dead || !s.res.HasBuffer() {
		return geometry.Size{}, false
	}
	state := s.res.CurrentState()
	return geometry.Size{W: state.Width(), H: state.Height()}, true
}

func (s *wlSurface) Synchronized() bool {
	return false
}

func (s *wlSurface) Root() surface.Surface {
	return s
}

// wrapSurface returns the shadow for a protocol surface, creating it on
// first sight and rigging the commit and destroy listeners.
func (server *Server) wrapSurface(res wlroots.Surface) *wlSurface {
	if s, ok := server.surfaces[res]; ok {
		return s
	}
	s := &wlSurface{res: res, server: server}
	server.surfaces[res] = s

	res.OnCommit(func(res wlroots.Surface) {
		server.loop.DispatchPending()
		server.shell.HandleCommit(s)
	})
	res.OnDestroy(func(res wlroots.Surface) {
		s.dead = true
		delete(server.surfaces, res)
		server.layout.Refresh()
	})
	return s
}

/* xdg-shell toplevel adapter. Tracks the configure/ack handshake the core
 * gates mapping on. */

type xdgToplevel struct {
	server *Server
	xdg    wlroots.XDGSurface
	surf   *wlSurface

	initialConfigureSent bool
	configured           bool
	lastSerial           uint32
}

func (t *xdgToplevel) Surface() surface.Surface {
	return t.surf
}

func (t *xdgToplevel) Alive() bool {
	return t.surf.Alive()
}

func (t *xdgToplevel) Close() {
	if t.Alive() {
		t.xdg.SendClose()
	}
}

func (t *xdgToplevel) SetActivated(activated bool) {
	if t.Alive() {
		t.xdg.TopLevel().SetActivated(activated)
	}
}

func (t *xdgToplevel) SetMaximized(maximized bool) {
	if t.Alive() {
		t.xdg.TopLevel().SetMaximized(maximized)
	}
}

func (t *xdgToplevel) SetResizing(resizing bool) {
	if t.Alive() {
		t.xdg.TopLevel().SetResizing(resizing)
	}
}

func (t *xdgToplevel) SetSize(size geometry.Size) {
	if t.Alive() {
		t.xdg.TopLevelSetSize(uint32(size.W), uint32(size.H))
	}
}

func (t *xdgToplevel) SendConfigure() uint32 {
	if !t.Alive() {
		return t.lastSerial
	}
	t.lastSerial = t.xdg.ScheduleConfigure()
	t.initialConfigureSent = true
	return t.lastSerial
}

func (t *xdgToplevel) InitialConfigureSent() bool {
	return t.initialConfigureSent
}

func (t *xdgToplevel) Configured() bool {
	return t.configured
}

/* XWayland toplevel adapter. Legacy X windows need no configure/ack
 * handshake, so the handshake queries short-circuit. The bridge to the
 * actual X11 window lives behind this interface; the core never knows. */

type xwaylandToplevel struct {
	surf *wlSurface
	size geometry.Size
}

func (t *xwaylandToplevel) Surface() surface.Surface   { return t.surf }
func (t *xwaylandToplevel) Alive() bool                { return t.surf.Alive() }
func (t *xwaylandToplevel) Close()                     {}
func (t *xwaylandToplevel) SetActivated(bool)          {}
func (t *xwaylandToplevel) SetMaximized(bool)          {}
func (t *xwaylandToplevel) SetResizing(bool)           {}
func (t *xwaylandToplevel) SetSize(size geometry.Size) { t.size = size }
func (t *xwaylandToplevel) SendConfigure() uint32      { return 0 }
func (t *xwaylandToplevel) InitialConfigureSent() bool { return true }
func (t *xwaylandToplevel) Configured() bool           { return true }

/* layer-shell adapter. */

type layerShellSurface struct {
	server *Server
	res    wlroots.LayerSurfaceV1
	surf   *wlSurface

	initialConfigureSent bool
}

func (l *layerShellSurface) Surface() surface.Surface {
	return l.surf
}

func (l *layerShellSurface) Alive() bool {
	return l.surf.Alive()
}

func (l *layerShellSurface) Anchor() desktop.Anchor {
	return desktop.Anchor(l.res.CurrentState().Anchor())
}

func (l *layerShellSurface) ExclusiveZone() int {
	return int(l.res.CurrentState().ExclusiveZone())
}

func (l *layerShellSurface) RequestedSize() geometry.Size {
	state := l.res.CurrentState()
	return geometry.Size{W: int(state.DesiredWidth()), H: int(state.DesiredHeight())}
}

func (l *layerShellSurface) Tier() desktop.Tier {
	return desktop.Tier(l.res.CurrentState().Layer())
}

func (l *layerShellSurface) SendConfigure(size geometry.Size) {
	if !l.Alive() {
		return
	}
	l.res.Configure(uint32(size.W), uint32(size.H))
	l.initialConfigureSent = true
}

func (l *layerShellSurface) InitialConfigureSent() bool {
	return l.initialConfigureSent
}
