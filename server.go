package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/lavenderwm/lavender/config"
	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/eventloop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/positioner"
	"github.com/lavenderwm/lavender/shell"
	"github.com/lavenderwm/lavender/surface"
	"github.com/lavenderwm/lavender/util/multiplexer"
)

type CursorMode int

const (
	CursorModePassThrough CursorMode = iota
	CursorModeMove
	CursorModeResize
)

// Notification is broadcast to repl/ipc subscribers when the desktop
// state changes in a way scripts care about.
type Notification struct {
	Kind      string
	Workspace string
}

type Server struct {
	display     wlroots.Display
	backend     wlroots.Backend
	renderer    wlroots.Renderer
	allocator   wlroots.Allocator
	scene       wlroots.Scene
	sceneLayout wlroots.SceneOutputLayout

	xdgShell   wlroots.XDGShell
	layerShell wlroots.LayerShellV1

	cursor    wlroots.Cursor
	cursorMgr wlroots.XCursorManager

	seat       wlroots.Seat
	keyboards  []*Keyboard
	cursorMode CursorMode

	outputLayout wlroots.OutputLayout
	outputs      []*wlroots.Output

	/* The desktop core. All mutation happens on the display thread; the
	 * loop is drained there so repl/timer events obey the same
	 * run-to-completion discipline as protocol events. */
	store  *surface.Store
	layout *desktop.Layout
	shell  *shell.Shell
	loop   *eventloop.Loop
	bus    *config.Bus
	notify multiplexer.OneToMany[Notification]

	surfaces  map[wlroots.Surface]*wlSurface
	toplevels map[wlroots.XDGSurface]*xdgToplevel

	conf      config.Config
	rules     config.Rules
	lastFrame time.Time
}

type Keyboard struct {
	dev wlroots.InputDevice
}

func (server *Server) focusToplevel(t *xdgToplevel) {
	/* Note: this function only deals with keyboard focus. */
	if t == nil || !t.Alive() {
		return
	}
	surf := t.xdg.Surface()
	prevSurface := server.seat.KeyboardState().FocusedSurface()
	if prevSurface == surf {
		/* Don't re-focus an already focused surface. */
		return
	}
	if !prevSurface.Nil() {
		/* Deactivate the previously focused surface so the client stops
		 * drawing focus decorations. */
		prevTopLevel, err := prevSurface.XDGTopLevel()
		if err == nil {
			prevTopLevel.SetActivated(false)
		}
	}

	t.xdg.SceneTree().Node().RaiseToTop()
	if w, _ := server.layout.FindWindow(t.surf); w != nil {
		if ws := server.layout.ActiveWorkspace(); ws != nil {
			ws.Windows().MoveToFront(w)
		}
	}
	t.SetActivated(true)
	server.seat.NotifyKeyboardEnter(surf, server.seat.Keyboard())
}

func (server *Server) handleNewFrame(output wlroots.Output) {
	/* Called every time an output is ready to display a frame, generally
	 * at the output's refresh rate. The desktop core gets its per-frame
	 * tick here: queued repl/timer events, layout update, frame
	 * callbacks, lazy pruning. */
	now := time.Now()
	delta := now.Sub(server.lastFrame)
	server.lastFrame = now

	server.loop.DispatchPending()
	if ws := server.layout.ActiveWorkspace(); ws != nil {
		ws.Positioner().Update(float64(delta.Milliseconds()))
	}
	server.layout.Refresh()
	server.layout.SendFrames(uint32(now.UnixMilli()))

	sOut, err := server.scene.SceneOutput(output)
	if err != nil {
		return
	}
	sOut.Commit()
	sOut.SendFrameDone(now)
}

func (server *Server) handleOutputRequestState(output wlroots.Output, state wlroots.OutputState) {
	logrus.WithField("output", output.Name()).Debugln("New state request for output")
	output.CommitState(state)
}

func (server *Server) handleOutputDestroy(output wlroots.Output) {
	logrus.WithField("name", output.Name()).Debugln("Output getting destroyed")
	server.layout.Outputs.Remove(output.Name())
	server.layout.ArrangeLayers()
}

func (server *Server) handleNewOutput(output wlroots.Output) {
	logrus.WithField("name", output.Name()).Debugln("New output added")
	server.outputs = append(server.outputs, &output)

	output.InitRender(server.allocator, server.renderer)

	oState := wlroots.NewOutputState()
	oState.StateInit()
	oState.StateSetEnabled(true)
	mode, err := output.PrefferedMode()
	if err == nil {
		oState.SetMode(mode)
	}
	output.CommitState(oState)
	oState.Finish()

	output.OnFrame(server.handleNewFrame)
	output.OnRequestState(server.handleOutputRequestState)
	output.OnDestroy(server.handleOutputDestroy)

	lOutput := server.outputLayout.AddOutputAuto(output)
	sceneOutput := server.scene.NewOutput(output)
	server.sceneLayout.AddOutput(lOutput, sceneOutput)

	/* Mirror the output into the desktop core and re-run the layer
	 * arrangement so workspaces pick up the new usable area. */
	size := geometry.Size{W: output.Width(), H: output.Height()}
	server.layout.Outputs.Add(desktop.NewOutput(server.store, output.Name(), size))
	server.layout.Outputs.Arrange(server.conf.OutputOrder)
	server.layout.ArrangeLayers()

	err = output.SetTitle(fmt.Sprintf("lavender - %s", output.Name()))
	if err != nil {
		return
	}
}

func (server *Server) handleNewXDGSurface(xdgSurface wlroots.XDGSurface) {
	/* Raised when a client creates a new xdg surface, either a toplevel
	 * (application window) or a popup. */
	logrus.WithField("surface", xdgSurface).Debugln("New xdg surface inbound")

	if xdgSurface.Role() == wlroots.XDGSurfaceRolePopup {
		parent := xdgSurface.Popup().Parent()
		if parent.Nil() {
			logrus.WithField("surface", xdgSurface).Warnln("Popup parent is nil")
			return
		}
		xdgSurface.SetData(parent.XDGSurface().SceneTree().NewXDGSurface(xdgSurface))
		return
	}
	if xdgSurface.Role() != wlroots.XDGSurfaceRoleTopLevel {
		logrus.WithFields(logrus.Fields{
			"surface": xdgSurface,
			"role":    xdgSurface.Role(),
		}).Warnln("Unexpected xdg surface role")
		return
	}

	xdgSurface.SetData(server.scene.Tree().NewXDGSurface(xdgSurface.TopLevel().Base()))

	surf := server.wrapSurface(xdgSurface.Surface())
	surf.role = surface.RoleToplevel
	t := &xdgToplevel{server: server, xdg: xdgSurface, surf: surf}
	server.toplevels[xdgSurface] = t

	/* The window stays in the pending registry until the handshake
	 * completes with a non-zero size; the commit pipeline promotes it. */
	server.shell.HandleNewToplevel(t)

	xdgSurface.OnMap(func(xdgSurface wlroots.XDGSurface) {
		server.focusToplevel(t)
	})
	xdgSurface.OnUnmap(func(xdgSurface wlroots.XDGSurface) {
		server.resetCursorMode()
	})
	xdgSurface.OnDestroy(func(xdgSurface wlroots.XDGSurface) {
		server.shell.HandleToplevelDestroyed(t)
		delete(server.toplevels, xdgSurface)
	})
	xdgSurface.OnAckConfigure(func(serial uint32) {
		t.configured = true
		server.shell.HandleAckConfigure(surf, serial)
	})

	toplevel := xdgSurface.TopLevel()
	toplevel.OnRequestMove(func(client wlroots.SeatClient, serial uint32) {
		server.beginInteractive(t, CursorModeMove, geometry.EdgeNone)
	})
	toplevel.OnRequestResize(func(client wlroots.SeatClient, serial uint32, edges wlroots.Edges) {
		server.beginInteractive(t, CursorModeResize, geometry.Edges(edges))
	})
	toplevel.OnRequestMaximize(func(client wlroots.SeatClient) {
		server.shell.HandleMaximizeRequest(t)
	})
}

func (server *Server) handleNewLayerSurface(layerSurface wlroots.LayerSurfaceV1) {
	/* Raised when a layer-shell client creates a bar/panel/overlay. */
	surf := server.wrapSurface(layerSurface.Surface())
	surf.role = surface.RoleLayer
	ls := &layerShellSurface{server: server, res: layerSurface, surf: surf}

	outputName := ""
	if out := layerSurface.Output(); !out.Nil() {
		outputName = out.Name()
	}
	if err := server.shell.HandleNewLayerSurface(outputName, ls); err != nil {
		logrus.WithError(err).Warnln("Rejecting layer surface")
		layerSurface.Destroy()
		return
	}

	layerSurface.OnAckConfigure(func(serial uint32) {
		server.shell.HandleLayerAckConfigure()
	})
}

func (server *Server) beginInteractive(t *xdgToplevel, mode CursorMode, edges geometry.Edges) {
	/* Start an interactive move or resize: the compositor consumes
	 * pointer events itself instead of forwarding them to clients. */
	if t.xdg.Surface() != server.seat.PointerState().FocusedSurface() {
		/* Deny move/resize requests from unfocused clients. */
		return
	}

	pointer := server.pointerPosition()
	started := false
	switch mode {
	case CursorModeMove:
		started = server.shell.HandleMoveRequest(t, pointer)
	case CursorModeResize:
		started = server.shell.HandleResizeRequest(t, pointer, edges)
	}
	if started {
		server.cursorMode = mode
	}
}

func (server *Server) resetCursorMode() {
	server.cursorMode = CursorModePassThrough
}

func (server *Server) pointerPosition() geometry.PointF {
	return geometry.PointF{X: server.cursor.X(), Y: server.cursor.Y()}
}

func (server *Server) GetOutputs() []*wlroots.Output {
	return server.outputs
}

func NewServer(conf config.Config, rules config.Rules) (server *Server, err error) {
	server = &Server{
		conf:      conf,
		rules:     rules,
		surfaces:  make(map[wlroots.Surface]*wlSurface),
		toplevels: make(map[wlroots.XDGSurface]*xdgToplevel),
		lastFrame: time.Now(),
	}

	/* The desktop core: surface state store, layout model, commit state
	 * machine, and one positioner pair per configured workspace. */
	server.store = surface.NewStore()
	server.layout = desktop.NewLayout(server.store)
	server.shell = shell.New(server.layout)
	server.loop = eventloop.New()
	server.bus = config.NewBus()
	server.notify = multiplexer.NewOneToMany[Notification]()

	for _, rule := range rules.Workspaces {
		mode := positioner.ModeFloating
		ruleMode := rule.Mode
		if ruleMode == "" {
			ruleMode = conf.DefaultMode
		}
		if ruleMode == "tiling" {
			mode = positioner.ModeTiling
		}
		pos := positioner.NewUniversal(server.store, geometry.PointF{}, geometry.Rect{}, mode)
		server.layout.AddWorkspace(desktop.NewWorkspace(rule.Name, pos))
	}

	/* The Wayland display is managed by libwayland. It handles accepting
	 * clients from the Unix socket, managing Wayland globals, and so on. */
	server.display = wlroots.NewDisplay()

	/* The backend abstracts the underlying input and output hardware. */
	server.backend, err = server.display.BackendAutocreate()
	if err != nil {
		return nil, err
	}

	server.renderer, err = server.backend.RendererAutoCreate()
	if err != nil {
		return nil, err
	}
	server.renderer.InitDisplay(server.display)

	server.allocator, err = server.backend.AllocatorAutocreate(server.renderer)
	if err != nil {
		return nil, err
	}

	/* Compositor, subcompositor and data device manager globals. The
	 * subcompositor is what lets clients build sub-surface trees. */
	server.display.CompositorCreate(5, server.renderer)
	server.display.SubCompositorCreate()
	server.display.DataDeviceManagerCreate()

	server.outputLayout = wlroots.NewOutputLayout()
	server.backend.OnNewOutput(server.handleNewOutput)

	/* Scene graph: wlroots handles rendering and damage tracking, the
	 * core only decides what sits where. */
	server.scene = wlroots.NewScene()
	server.sceneLayout = server.scene.AttachOutputLayout(server.outputLayout)

	server.xdgShell = server.display.XDGShellCreate(3)
	server.xdgShell.OnNewSurface(server.handleNewXDGSurface)

	server.layerShell = server.display.LayerShellCreate(4)
	server.layerShell.OnNewSurface(server.handleNewLayerSurface)

	server.cursor = wlroots.NewCursor()
	server.cursor.AttachOutputLayout(server.outputLayout)
	server.cursorMgr = wlroots.NewXCursorManager("", 24)

	server.cursorMode = CursorModePassThrough
	server.cursor.OnMotion(server.handleCursorMotion)
	server.cursor.OnMotionAbsolute(server.handleCursorMotionAbsolute)
	server.cursor.OnButton(server.handleCursorButton)
	server.cursor.OnAxis(server.handleCursorAxis)
	server.cursor.OnFrame(server.handleCursorFrame)
	server.cursorMgr.Load(1)

	server.backend.OnNewInput(server.handleNewInput)
	server.seat = server.display.SeatCreate("seat0")
	server.seat.OnSetCursorRequest(server.handleSetCursorRequest)

	go server.notify.StartPlexer()

	return
}

func (server *Server) Start() error {
	/* Add a Unix socket to the Wayland display. */
	socket, err := server.display.AddSocketAuto()
	if err != nil {
		server.backend.Destroy()
		return err
	}
	logrus.WithField("socket", socket).Debugln("got wl socket")
	if err = server.backend.Start(); err != nil {
		server.backend.Destroy()
		server.display.Destroy()
		return err
	}

	if res := os.Getenv("WAYLAND_DISPLAY"); res != "" {
		logrus.WithField("WAYLAND_DISPLAY", res).Debugln("Wayland display already set, overwriting")
	}
	if err = os.Setenv("WAYLAND_DISPLAY", socket); err != nil {
		return err
	}

	logrus.WithField("WAYLAND_DISPLAY", socket).Infoln("Running Wayland compositor")
	return err
}

func (server *Server) Run() error {
	go server.busRunner()

	/* Run the Wayland event loop. This does not return until the
	 * compositor exits. */
	server.display.Run()

	server.display.DestroyClients()
	server.scene.Tree().Node().Destroy()
	server.cursorMgr.Destroy()
	server.outputLayout.Destroy()
	server.display.Destroy()
	return nil
}

func (server *Server) Stop() {
	server.loop.Stop()
	server.display.Terminate()
}
