// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import (
	"time"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/util/multiplexer"
)

// Event is a command from the configuration/scripting side of the
// compositor, processed in delivery order on the event-loop thread.
type Event interface {
	isEvent()
}

type CloseEvent struct {
	Window *desktop.Window
}

type MaximizeEvent struct {
	Window *desktop.Window
}

type UnmaximizeEvent struct {
	Window *desktop.Window
}

type SwitchWorkspaceEvent struct {
	Name string
}

type SpawnEvent struct {
	Command []string
}

// TimeoutEvent schedules Callback to run after Delay. A true return
// re-arms the timeout with the same delay.
type TimeoutEvent struct {
	Callback func() bool
	Delay    time.Duration
}

func (CloseEvent) isEvent()           {}
func (MaximizeEvent) isEvent()        {}
func (UnmaximizeEvent) isEvent()      {}
func (SwitchWorkspaceEvent) isEvent() {}
func (SpawnEvent) isEvent()           {}
func (TimeoutEvent) isEvent()         {}

// Bus carries config events from any number of producers (REPL, IPC,
// scripting) into the compositor's event loop.
type Bus struct {
	events chan Event
	tx     multiplexer.ManyToOne[Event]
}

func NewBus() *Bus {
	events := make(chan Event, 16)
	return &Bus{
		events: events,
		tx:     multiplexer.NewManyToOne(events),
	}
}

// Send queues an event. Safe to call from any goroutine.
func (b *Bus) Send(ev Event) error {
	return b.tx.Send(ev)
}

// Events is the receive side, drained by the event loop.
func (b *Bus) Events() <-chan Event {
	return b.events
}

func (b *Bus) Close() {
	b.tx.Close()
}
