package shell

import (
	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// Shell drives the desktop layout from protocol events: surface commits,
// xdg-shell requests, layer-shell requests and the interactive grabs. Every
// handler runs to completion on the event-loop thread.
type Shell struct {
	layout *desktop.Layout

	moveGrab   *MoveGrab
	resizeGrab *ResizeGrab
}

func New(layout *desktop.Layout) *Shell {
	return &Shell{layout: layout}
}

func (sh *Shell) Layout() *desktop.Layout {
	return sh.layout
}

// HandleNewToplevel registers a toplevel that is not yet ready to show:
// it stays in the pending-map registry until the configure/ack handshake
// completes with a non-zero size.
func (sh *Shell) HandleNewToplevel(t desktop.Toplevel) {
	w := desktop.NewWindow(sh.layout.Store, t)
	sh.layout.Pending.Insert(w)
	logrus.WithField("pending", sh.layout.Pending.Len()).Debugln("New toplevel pending map")
}

// HandleToplevelDestroyed drops the toplevel from wherever it lives.
func (sh *Shell) HandleToplevelDestroyed(t desktop.Toplevel) {
	if sh.moveGrab != nil && sh.moveGrab.Window().Toplevel() == t {
		sh.endGrabs()
	}
	if sh.resizeGrab != nil && sh.resizeGrab.Window().Toplevel() == t {
		sh.endGrabs()
	}
	sh.layout.Pending.Remove(t)
	for _, ws := range sh.layout.Workspaces() {
		ws.UnmapToplevel(t)
	}
	sh.layout.Refresh()
}

// HandleNewLayerSurface attaches a layer-shell surface to the named
// output's layer map.
func (sh *Shell) HandleNewLayerSurface(outputName string, shell desktop.LayerShell) error {
	if err := sh.layout.InsertLayer(outputName, shell); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"output": outputName,
		"tier":   shell.Tier(),
	}).Debugln("New layer surface")
	return nil
}

// HandleLayerAckConfigure rearranges after a layer surface acked its
// configure.
func (sh *Shell) HandleLayerAckConfigure() {
	sh.layout.ArrangeLayers()
}

// HandleAckConfigure matches a toplevel's configure ack against a pending
// resize. Only the serial sent with the final configure advances the state.
func (sh *Shell) HandleAckConfigure(s surface.Surface, serial uint32) {
	data, ok := sh.layout.Store.Lookup(s)
	if !ok {
		return
	}
	if data.Resize.Kind == surface.WaitingForFinalAck && data.Resize.Serial == serial {
		data.Resize.Kind = surface.WaitingForCommit
	}
}

// HandleCommit is the single entry point of the mapping state machine. It
// runs, in order: buffer propagation, pending-map promotion, mapped-window
// geometry resolution, grab settlement, layer configure. Absent state at
// any step means a protocol-usage bug; the step is skipped, never fatal.
func (sh *Shell) HandleCommit(s surface.Surface) {
	if !s.Alive() {
		return
	}

	// A synchronized sub-surface commits through its ancestor; applying
	// its buffer now would run ahead of the parent's state.
	if !(s.Role() == surface.RoleSubsurface && s.Synchronized()) {
		sh.layout.Store.UpdateBuffers(s.Root())
	}

	if sh.commitPending(s) {
		return
	}
	sh.commitMapped(s)
	sh.commitGrabbed(s)
	sh.commitLayer(s)
}

// commitPending advances a not-yet-mapped window through the handshake and
// promotes it once it is configured with a non-zero size. Promotion is the
// only path out of the pending registry.
func (sh *Shell) commitPending(s surface.Surface) bool {
	w := sh.layout.Pending.Find(s)
	if w == nil {
		return false
	}
	w.SelfUpdate()

	t := w.Toplevel()
	if !t.InitialConfigureSent() {
		t.SendConfigure()
	}

	size := w.Size()
	if size.W != 0 && size.H != 0 && t.Configured() {
		promoted := sh.layout.Pending.Remove(t)
		if promoted == nil {
			logrus.Warnln("Pending window vanished during promotion")
			return true
		}
		ws := sh.layout.ActiveWorkspace()
		if ws == nil {
			logrus.Warnln("No workspace to map toplevel into")
			return true
		}
		ws.MapToplevel(promoted, true)
		logrus.WithFields(logrus.Fields{
			"workspace": ws.Name,
			"size":      size,
		}).Debugln("Toplevel mapped")
	}
	return true
}

// commitMapped recomputes an already-mapped window's box and resolves its
// new location from the resize and move-after-resize machines.
func (sh *Shell) commitMapped(s surface.Surface) {
	w, _ := sh.layout.FindWindow(s)
	if w == nil {
		return
	}
	w.SelfUpdate()

	data, ok := sh.layout.Store.Lookup(w.Surface())
	if !ok {
		return
	}

	var (
		newLocation geometry.Point
		relocate    bool
	)

	// A resize grabbing the top or left edge must keep the opposite edge
	// fixed, so the location shifts by however much the size changed.
	switch data.Resize.Kind {
	case surface.Resizing, surface.WaitingForFinalAck, surface.WaitingForCommit:
		if data.Resize.Edges.Intersects(geometry.EdgeTopLeft) {
			location := w.Location()
			size := w.Size()
			if data.Resize.Edges.Intersects(geometry.EdgeLeft) {
				location.X = data.Resize.InitialLocation.X +
					(data.Resize.InitialSize.W - size.W)
			}
			if data.Resize.Edges.Intersects(geometry.EdgeTop) {
				location.Y = data.Resize.InitialLocation.Y +
					(data.Resize.InitialSize.H - size.H)
			}
			newLocation = location
			relocate = true
		}
	}

	// The commit carrying the final buffer finishes the resize.
	if data.Resize.Kind == surface.WaitingForCommit {
		data.Resize = surface.ResizeState{Kind: surface.NotResizing}
	}

	// A scheduled move-after-resize overrides everything else and latches
	// only now, when the matching buffer has landed.
	if data.MoveAfterResize.Kind == surface.MoveAfterResizeWaitingForCommit {
		newLocation = data.MoveAfterResize.Target
		relocate = true
		data.MoveAfterResize.Kind = surface.MoveAfterResizeCurrent
	}

	if relocate {
		w.SetLocation(newLocation)
	}
}

// commitGrabbed settles a scheduled move-after-resize on the grabbed
// window without touching its location; the grab owns positioning.
func (sh *Shell) commitGrabbed(s surface.Surface) {
	grabbed := sh.layout.Grabbed()
	if grabbed == nil || !grabbed.Alive() || grabbed.Surface() != s {
		return
	}
	data, ok := sh.layout.Store.Lookup(s)
	if !ok {
		return
	}
	if data.MoveAfterResize.Kind == surface.MoveAfterResizeWaitingForCommit {
		data.MoveAfterResize.Kind = surface.MoveAfterResizeCurrent
	}
}

// commitLayer sends a layer surface's initial configure and rearranges.
func (sh *Shell) commitLayer(s surface.Surface) {
	ls, _ := sh.layout.FindLayer(s)
	if ls == nil {
		return
	}
	if !ls.Shell().InitialConfigureSent() {
		ls.Shell().SendConfigure(ls.Shell().RequestedSize())
	}
	ls.SelfUpdate()
	sh.layout.ArrangeLayers()
}

// HandleMoveRequest begins an interactive move if some strategy grants it.
func (sh *Shell) HandleMoveRequest(t desktop.Toplevel, pointer geometry.PointF) bool {
	ws := sh.layout.ActiveWorkspace()
	if ws == nil {
		return false
	}
	req := ws.Positioner().MoveRequest(t, pointer)
	if req == nil {
		return false
	}
	sh.moveGrab = NewMoveGrab(req)
	sh.layout.SetGrabbed(req.Window)
	return true
}

// HandleResizeRequest begins an interactive resize if some strategy
// grants it.
func (sh *Shell) HandleResizeRequest(t desktop.Toplevel, pointer geometry.PointF, edges geometry.Edges) bool {
	ws := sh.layout.ActiveWorkspace()
	if ws == nil {
		return false
	}
	req := ws.Positioner().ResizeRequest(t, pointer, edges)
	if req == nil {
		return false
	}
	sh.resizeGrab = NewResizeGrab(sh.layout.Store, req)
	sh.layout.SetGrabbed(req.Window)
	return true
}

func (sh *Shell) HandleMaximizeRequest(t desktop.Toplevel) {
	if ws := sh.layout.ActiveWorkspace(); ws != nil {
		ws.Positioner().MaximizeRequest(t)
	}
}

func (sh *Shell) HandleUnmaximizeRequest(t desktop.Toplevel) {
	if ws := sh.layout.ActiveWorkspace(); ws != nil {
		ws.Positioner().UnmaximizeRequest(t)
	}
}

// GrabActive reports whether an interactive move or resize is in flight.
func (sh *Shell) GrabActive() bool {
	return sh.moveGrab != nil || sh.resizeGrab != nil
}

// OnPointerMove feeds pointer motion to the active grab, or to the
// strategies when no grab is running.
func (sh *Shell) OnPointerMove(pos geometry.PointF) {
	if sh.moveGrab != nil {
		if !sh.moveGrab.Motion(pos) {
			sh.endGrabs()
		}
		return
	}
	if sh.resizeGrab != nil {
		if !sh.resizeGrab.Motion(pos) {
			sh.endGrabs()
		}
		return
	}
	if ws := sh.layout.ActiveWorkspace(); ws != nil {
		ws.Positioner().OnPointerMove(pos)
	}
}

// OnPointerButton releases active grabs on button-up and forwards the
// event to the strategies.
func (sh *Shell) OnPointerButton(pressed bool) {
	if !pressed && sh.GrabActive() {
		if sh.resizeGrab != nil {
			sh.resizeGrab.Release()
		}
		sh.endGrabs()
		return
	}
	if ws := sh.layout.ActiveWorkspace(); ws != nil {
		ws.Positioner().OnPointerButton(pressed)
	}
}

func (sh *Shell) endGrabs() {
	sh.moveGrab = nil
	sh.resizeGrab = nil
	sh.layout.SetGrabbed(nil)
}
