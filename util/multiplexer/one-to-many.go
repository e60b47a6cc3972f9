// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package multiplexer

import (
	"errors"
	"sync"
)

// OneToMany fans messages from one sender out to named receivers. Used to
// broadcast compositor notifications to whoever subscribes (repl, ipc).
type OneToMany[T any] struct {
	inbound   chan T
	outbound  map[string]chan T // Use map here to give names to outbound channels
	lock      sync.Mutex
	closeChan chan any
	closed    bool
}

func NewOneToMany[T any]() OneToMany[T] {
	return OneToMany[T]{
		inbound:   make(chan T),
		outbound:  make(map[string]chan T),
		closeChan: make(chan any),
	}
}

// Get the channel to send things into.
func (o *OneToMany[T]) GetSender() chan T {
	return o.inbound
}

// MakeReceiver creates a new named receiver for the multiplexer to send
// messages to. Don't close it manually, use CloseReceiver instead.
func (o *OneToMany[T]) MakeReceiver(name string) (chan T, error) {
	if o.closed {
		return nil, ErrClosed
	}
	rec := make(chan T)

	o.lock.Lock()
	defer o.lock.Unlock()
	if _, ok := o.outbound[name]; ok {
		return nil, errors.New("receiver with that name already exists")
	}
	o.outbound[name] = rec

	return rec, nil
}

// CloseReceiver closes the named receiver channel and removes it from the
// multiplexer.
func (o *OneToMany[T]) CloseReceiver(name string) {
	if o.closed {
		return
	}
	o.lock.Lock()
	if val, ok := o.outbound[name]; ok {
		close(val)
		delete(o.outbound, name)
	}
	o.lock.Unlock()
}

// StartPlexer runs the distribution loop, intended as a goroutine
// (`go plexer.StartPlexer()`). Returns once the plexer is closed.
func (o *OneToMany[T]) StartPlexer() {
	for {
		select {
		case msg := <-o.inbound:
			o.lock.Lock()
			for _, c := range o.outbound {
				c <- msg
			}
			o.lock.Unlock()
		case <-o.closeChan:
			o.lock.Lock()
			// First close all outbound channels.
			// No need to send any signal there as readers will just stop.
			for _, c := range o.outbound {
				close(c)
			}
			close(o.inbound)
			o.closed = true
			o.lock.Unlock()
			return
		}
	}
}

// CloseSender closes the sender and all receiver channels, marks the
// plexer as closed and stops the distribution goroutine.
func (o *OneToMany[T]) CloseSender() {
	o.closeChan <- 1
}
