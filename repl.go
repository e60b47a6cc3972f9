package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/common/ipc"
	"github.com/lavenderwm/lavender/config"
	"github.com/lavenderwm/lavender/positioner"
	"github.com/lavenderwm/lavender/repl"
	"github.com/lavenderwm/lavender/util"
	"github.com/lavenderwm/lavender/util/wrappers"
)

func replRunner(server *Server) {
	// Give repl some wrappers around stdin and stdout so that it closes those instead of stdin & stdout themselves
	commandRepl := repl.NewRepl(wrappers.NewReaderWrapper(os.Stdin), wrappers.NewWriterWrapper(os.Stdout))
	logrus.Debugln("Starting repl")

	/* Print workspace-switch notifications as they happen. The receiver
	 * channel closes when the plexer shuts down. */
	if rec, err := server.notify.MakeReceiver("repl"); err == nil {
		go func() {
			for n := range rec {
				logrus.WithFields(logrus.Fields{
					"kind":      n.Kind,
					"workspace": n.Workspace,
				}).Infoln("Notification")
			}
		}()
	}

	commandRepl.Register("run", func(args []string, r *repl.Repl) (string, error) {
		if len(args) == 0 {
			return "run needs a command", nil
		}
		if err := server.bus.Send(config.SpawnEvent{Command: args}); err != nil {
			return "", err
		}
		return "Running " + args[0], nil
	})

	commandRepl.Register("quit", func(args []string, r *repl.Repl) (string, error) {
		server.Stop()
		time.Sleep(time.Second * 5)
		return "Quitting", errors.New("normal stop")
	})

	commandRepl.Register("workspace", func(args []string, r *repl.Repl) (string, error) {
		if len(args) == 0 {
			return replListWorkspaces(server)
		}
		if err := server.bus.Send(config.SwitchWorkspaceEvent{Name: args[0]}); err != nil {
			return "", err
		}
		return "Switching to workspace " + args[0], nil
	})

	commandRepl.Register("mode", func(args []string, r *repl.Repl) (string, error) {
		var name string
		util.Unpack(args, &name)
		var mode positioner.Mode
		switch name {
		case "floating":
			mode = positioner.ModeFloating
		case "tiling":
			mode = positioner.ModeTiling
		default:
			return "mode needs one of: floating, tiling", nil
		}
		/* Mode switches mutate the positioner pair, so run them on the
		 * event-loop thread like every other desktop mutation. */
		err := server.loop.Post(func() {
			ws := server.layout.ActiveWorkspace()
			if ws == nil {
				return
			}
			if u, ok := ws.Positioner().(*positioner.Universal); ok {
				u.SetMode(mode)
			}
		})
		if err != nil {
			return "", err
		}
		return "Switching active workspace to " + mode.String(), nil
	})

	commandRepl.Register("outputs", func(args []string, r *repl.Repl) (string, error) {
		resp := ipc.OutputResponse{Outputs: []string{}}
		for _, output := range server.GetOutputs() {
			resp.Outputs = append(resp.Outputs, output.Name())
		}
		resp.OutputsFound = len(resp.Outputs)
		raw, err := json.Marshal(resp)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	})

	commandRepl.Register("close", func(args []string, r *repl.Repl) (string, error) {
		ws := server.layout.ActiveWorkspace()
		if ws == nil || ws.Windows().Len() == 0 {
			return "No window to close", nil
		}
		front := ws.Windows().All()[0]
		if err := server.bus.Send(config.CloseEvent{Window: front}); err != nil {
			return "", err
		}
		return "Closing front window", nil
	})

	commandRepl.Register("inspect", func(args []string, r *repl.Repl) (string, error) {
		// Can't unpack slices directly like in Python, so do it this roundabout way
		var target, mod string
		util.Unpack(args, &target, &mod)
		switch target {
		case "cursor":
			if mod == "mode" {
				switch server.cursorMode {
				case CursorModeMove:
					return "Cursor mode: Move", nil
				case CursorModePassThrough:
					return "Cursor mode: PassThrough", nil
				case CursorModeResize:
					return "Cursor mode: Resize", nil
				default:
					return fmt.Sprintf("Cursor mode: Unknown: %+v", server.cursorMode), nil
				}
			}
			return fmt.Sprintf(
					"Cursor: Location (%f:%f)",
					server.cursor.X(),
					server.cursor.Y()),
				nil
		case "pending":
			return fmt.Sprintf("Pending windows: %d", server.layout.Pending.Len()), nil
		default:
			return "Inspect targets: cursor [mode], pending", nil
		}
	})

	commandRepl.Fallback(func(args []string, r *repl.Repl) (string, error) {
		return "Unknown command: " + strings.Join(args, " "), nil
	})

	_ = commandRepl.Run()
	server.notify.CloseReceiver("repl")
}

func replListWorkspaces(server *Server) (string, error) {
	resp := ipc.WorkspaceResponse{}
	active := server.layout.ActiveWorkspace()
	for _, ws := range server.layout.Workspaces() {
		info := ipc.WorkspaceInfo{
			Name:   ws.Name,
			Active: ws == active,
		}
		if u, ok := ws.Positioner().(*positioner.Universal); ok {
			info.Mode = u.Mode().String()
		}
		for _, w := range ws.Windows().All() {
			geo := w.Geometry()
			info.Windows = append(info.Windows, ipc.WindowInfo{
				Workspace: ws.Name,
				X:         geo.Loc.X,
				Y:         geo.Loc.Y,
				Width:     geo.Size.W,
				Height:    geo.Size.H,
				Maximized: w.Maximized(),
			})
		}
		resp.Workspaces = append(resp.Workspaces, info)
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
