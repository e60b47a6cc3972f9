// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import "testing"

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	if err := bus.Send(SwitchWorkspaceEvent{Name: "1"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := bus.Send(SpawnEvent{Command: []string{"foot"}}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	first := <-bus.Events()
	if sw, ok := first.(SwitchWorkspaceEvent); !ok || sw.Name != "1" {
		t.Errorf("First event is %+v", first)
	}
	second := <-bus.Events()
	if sp, ok := second.(SpawnEvent); !ok || len(sp.Command) != 1 {
		t.Errorf("Second event is %+v", second)
	}
}

func TestBusSendAfterClose(t *testing.T) {
	bus := NewBus()
	bus.Close()
	if err := bus.Send(SwitchWorkspaceEvent{Name: "1"}); err == nil {
		t.Errorf("Send after close did not error")
	}
}
