// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package multiplexer

import "errors"

var ErrClosed = errors.New("multiplexer has been closed")

// ManyToOne funnels messages from any number of senders into one channel.
// Raw channels already do that, but sending to a closed channel panics;
// this wrapper turns that case into an error instead.
type ManyToOne[T any] struct {
	outbound chan T
	closed   bool
}

// NewManyToOne creates a new ManyToOne multiplexer.
// The given channel will be where all messages are sent to.
func NewManyToOne[T any](receiver chan T) ManyToOne[T] {
	return ManyToOne[T]{
		outbound: receiver,
		closed:   false,
	}
}

// Send a message through the plexer.
// If closed, the message won't get sent.
func (m *ManyToOne[T]) Send(msg T) error {
	if m.closed {
		return ErrClosed
	}
	m.outbound <- msg
	return nil
}

// Close the channel and mark the plexer as closed.
func (m *ManyToOne[T]) Close() {
	close(m.outbound)
	m.closed = true
}
