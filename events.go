package main

import (
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/config"
)

// busRunner moves config events from the bus onto the event loop, where
// they run on the display thread between protocol events.
func (server *Server) busRunner() {
	for ev := range server.bus.Events() {
		ev := ev
		if err := server.loop.Post(func() {
			server.processConfigEvent(ev)
		}); err != nil {
			return
		}
	}
}

func (server *Server) processConfigEvent(ev config.Event) {
	switch e := ev.(type) {
	case config.CloseEvent:
		if e.Window != nil && e.Window.Alive() {
			e.Window.Toplevel().Close()
		}
	case config.MaximizeEvent:
		if e.Window != nil {
			server.shell.HandleMaximizeRequest(e.Window.Toplevel())
		}
	case config.UnmaximizeEvent:
		if e.Window != nil {
			server.shell.HandleUnmaximizeRequest(e.Window.Toplevel())
		}
	case config.SwitchWorkspaceEvent:
		server.switchWorkspace(e.Name)
	case config.SpawnEvent:
		server.spawn(e.Command)
	case config.TimeoutEvent:
		server.loop.AddTimer(e.Delay, e.Callback)
	default:
		logrus.WithField("event", ev).Warnln("Unhandled config event")
	}
}

func (server *Server) spawn(command []string) {
	if len(command) == 0 {
		return
	}
	cmd := exec.Command(command[0], command[1:]...)
	if err := cmd.Start(); err != nil {
		logrus.WithFields(logrus.Fields{
			"command": command,
			"err":     err,
		}).Warnln("Failed to spawn command")
		return
	}
	// Reap the child once it exits so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()
}
