// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package repl

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type closableBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closableBuffer) Close() error {
	b.closed = true
	return nil
}

func runLines(t *testing.T, input string, setup func(r *Repl)) (*closableBuffer, error) {
	t.Helper()
	out := &closableBuffer{}
	r := NewRepl(io.NopCloser(strings.NewReader(input)), out)
	setup(r)
	return out, r.Run()
}

func TestDispatchByFirstWord(t *testing.T) {
	out, err := runLines(t, "greet world\n", func(r *Repl) {
		r.Register("greet", func(args []string, r *Repl) (string, error) {
			return "hello " + strings.Join(args, " "), nil
		})
	})
	if err != nil {
		t.Fatalf("Run errored: %v", err)
	}
	if out.String() != "hello world\n" {
		t.Errorf("Output is %q", out.String())
	}
}

func TestUnknownCommandWithoutFallback(t *testing.T) {
	out, err := runLines(t, "nope\n", func(r *Repl) {})
	if err != nil {
		t.Fatalf("Run errored: %v", err)
	}
	if out.String() != "Unknown command\n" {
		t.Errorf("Output is %q", out.String())
	}
}

func TestFallbackGetsWholeLine(t *testing.T) {
	var got []string
	_, err := runLines(t, "one two three\n", func(r *Repl) {
		r.Fallback(func(args []string, r *Repl) (string, error) {
			got = args
			return "ok", nil
		})
	})
	if err != nil {
		t.Fatalf("Run errored: %v", err)
	}
	if len(got) != 3 || got[0] != "one" {
		t.Errorf("Fallback received %v, wanted all words", got)
	}
}

func TestBlankLinesSkipped(t *testing.T) {
	out, err := runLines(t, "\n   \nping\n", func(r *Repl) {
		r.Register("ping", func(args []string, r *Repl) (string, error) {
			return "pong", nil
		})
	})
	if err != nil {
		t.Fatalf("Run errored: %v", err)
	}
	if out.String() != "pong\n" {
		t.Errorf("Output is %q", out.String())
	}
}

func TestCommandErrorStopsRepl(t *testing.T) {
	out, err := runLines(t, "die\nping\n", func(r *Repl) {
		r.Register("die", func(args []string, r *Repl) (string, error) {
			return "", errors.New("stop")
		})
		r.Register("ping", func(args []string, r *Repl) (string, error) {
			return "pong", nil
		})
	})
	if err == nil {
		t.Fatalf("Run did not surface the command error")
	}
	if !out.closed {
		t.Errorf("Output not closed after the error")
	}
	if strings.Contains(out.String(), "pong") {
		t.Errorf("Repl kept running after the error")
	}
}
