package main

import (
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
	"github.com/swaywm/go-wlroots/xkb"
)

func (server *Server) handleNewInput(dev wlroots.InputDevice) {
	/* Raised by the backend when a new input device becomes available. */
	switch dev.Type() {
	case wlroots.InputDeviceTypePointer:
		server.handleNewPointer(dev)
	case wlroots.InputDeviceTypeKeyboard:
		server.handleNewKeyboard(dev)
	}

	/* Always advertise a cursor, even with no pointer device attached. */
	caps := wlroots.SeatCapabilityPointer
	if len(server.keyboards) > 0 {
		caps |= wlroots.SeatCapabilityKeyboard
	}
	server.seat.SetCapabilities(caps)
}

func (server *Server) handleNewPointer(dev wlroots.InputDevice) {
	/* All pointer handling is proxied through wlr_cursor. */
	server.cursor.AttachInputDevice(dev)
}

func (server *Server) handleNewKeyboard(dev wlroots.InputDevice) {
	keyboard := dev.Keyboard()

	/* Prepare an XKB keymap with the defaults (layout = "us"). */
	context := xkb.NewContext(xkb.KeySymFlagNoFlags)
	keymap := context.KeyMap()
	keyboard.SetKeymap(keymap)
	keymap.Destroy()
	context.Destroy()
	keyboard.SetRepeatInfo(25, 600)

	keyboard.OnModifiers(func(keyboard wlroots.Keyboard) {
		server.seat.SetKeyboard(dev)
		server.seat.NotifyKeyboardModifiers(keyboard)
	})
	keyboard.OnKey(server.handleKey)

	server.seat.SetKeyboard(dev)
	server.keyboards = append(server.keyboards, &Keyboard{dev: dev})
}

func (server *Server) handleKey(keyboard wlroots.Keyboard, time uint32, keyCode uint32, updateState bool, state wlroots.KeyState) {
	/* Raised when a key is pressed or released. */

	// translate libinput keycode to xkbcommon and obtain keysyms
	syms := keyboard.XKBState().Syms(xkb.KeyCode(keyCode + 8))

	handled := false
	modifiers := keyboard.Modifiers()
	if (modifiers&wlroots.KeyboardModifierAlt != 0) && state == wlroots.KeyStatePressed {
		/* Alt held and the key was pressed: try a compositor binding. */
		for _, sym := range syms {
			handled = server.handleKeyBinding(sym)
		}
	}

	if !handled {
		/* Otherwise, pass it along to the client. */
		server.seat.SetKeyboard(keyboard.Base())
		server.seat.NotifyKeyboardKey(time, keyCode, state)
	}
}

func (server *Server) handleKeyBinding(sym xkb.KeySym) bool {
	/* Compositor keybindings, Alt held down. */
	switch sym {
	case xkb.KeySymEscape:
		server.Stop()
	case xkb.KeySymF1:
		/* Cycle focus to the next window on the active workspace. */
		ws := server.layout.ActiveWorkspace()
		if ws == nil || ws.Windows().Len() < 2 {
			break
		}
		next := ws.Windows().All()[1]
		if t, ok := next.Toplevel().(*xdgToplevel); ok {
			server.focusToplevel(t)
		}
	case xkb.KeySym1, xkb.KeySym2, xkb.KeySym3, xkb.KeySym4:
		idx := int(sym - xkb.KeySym1)
		if idx >= len(server.rules.Workspaces) {
			break
		}
		server.switchWorkspace(server.rules.Workspaces[idx].Name)
	default:
		return false
	}
	return true
}

func (server *Server) switchWorkspace(name string) {
	if server.layout.SwitchWorkspace(name) {
		select {
		case server.notify.GetSender() <- Notification{Kind: "workspace", Workspace: name}:
		default:
		}
	}
}

func (server *Server) handleCursorMotion(dev wlroots.InputDevice, time uint32, dx float64, dy float64) {
	/* A pointer emitted a relative motion event. */
	server.cursor.Move(dev, dx, dy)
	server.processCursorMotion(time)
}

func (server *Server) handleCursorMotionAbsolute(dev wlroots.InputDevice, time uint32, x float64, y float64) {
	/* A pointer emitted an absolute motion event, 0..1 on each axis.
	 * Warping handles the transform onto the output layout; the layout
	 * must have at least one output for the result to mean anything. */
	if _, err := server.layout.Outputs.First(); err != nil {
		logrus.WithError(err).Warnln("Dropping absolute motion event")
		return
	}
	server.cursor.WarpAbsolute(dev, x, y)
	server.processCursorMotion(time)
}

func (server *Server) processCursorMotion(time uint32) {
	pos := server.pointerPosition()

	/* An active grab consumes motion entirely. */
	if server.cursorMode != CursorModePassThrough && server.shell.GrabActive() {
		server.shell.OnPointerMove(pos)
		return
	}
	server.shell.OnPointerMove(pos)

	/* Find the surface under the pointer and forward the event. */
	s, loc, ok := server.layout.SurfaceUnder(pos)
	if !ok {
		/* No surface under the cursor: show the default cursor image and
		 * clear pointer focus so stale clients stop getting events. */
		server.cursor.SetXCursor(server.cursorMgr, "default")
		server.seat.ClearPointerFocus()
		return
	}
	ws, castOK := s.(*wlSurface)
	if !castOK {
		return
	}
	sx := pos.X - float64(loc.X)
	sy := pos.Y - float64(loc.Y)
	server.seat.NotifyPointerEnter(ws.res, sx, sy)
	server.seat.NotifyPointerMotion(time, sx, sy)
}

func (server *Server) handleCursorButton(_ wlroots.InputDevice, time uint32, button uint32, state wlroots.ButtonState) {
	/* A pointer emitted a button event. */
	server.seat.NotifyPointerButton(time, button, state)

	if state == wlroots.ButtonStateReleased {
		/* Releasing any button exits interactive move/resize mode. */
		server.shell.OnPointerButton(false)
		server.resetCursorMode()
		return
	}

	server.shell.OnPointerButton(true)

	/* Keyboard focus follows button press. Layer surfaces never take
	 * keyboard focus here. */
	pos := server.pointerPosition()
	if w := server.layout.WindowUnder(pos); w != nil {
		if t, ok := w.Toplevel().(*xdgToplevel); ok {
			server.focusToplevel(t)
		}
	}
}

func (server *Server) handleCursorAxis(_ wlroots.InputDevice, time uint32, source wlroots.AxisSource, orientation wlroots.AxisOrientation, delta float64, deltaDiscrete int32) {
	/* Scroll events go straight to the focused client. */
	server.seat.NotifyPointerAxis(time, orientation, delta, deltaDiscrete, source)
}

func (server *Server) handleCursorFrame() {
	/* Frame events group the pointer events that happened together. */
	server.seat.NotifyPointerFrame()
}

func (server *Server) handleSetCursorRequest(client wlroots.SeatClient, surface wlroots.Surface, _ uint32, hotspotX int32, hotspotY int32) {
	/* A client provided a cursor image; only honor it if that client
	 * actually has pointer focus. */
	focusedClient := server.seat.PointerState().FocusedClient()
	if focusedClient == client {
		server.cursor.SetSurface(surface, hotspotX, hotspotY)
	}
}
