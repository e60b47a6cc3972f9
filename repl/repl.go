// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Command handles one registered repl verb. It gets the arguments after
// the verb and returns the line to print back.
type Command func(args []string, r *Repl) (string, error)

// ReadCloser combines the Reader and Closer interfaces
type ReadCloser interface {
	io.Reader
	io.Closer
}

type Repl struct {
	Input   ReadCloser
	Output  io.WriteCloser
	scanner *bufio.Scanner
	writer  *bufio.Writer

	commands map[string]Command
	fallback Command
}

// NewRepl creates a new repl.
// If no input is given, stdin will be used.
// If no output is given, stdout will be used.
// Note: The given reader and writer will be closed if the repl is started and then stops
func NewRepl(in ReadCloser, out io.WriteCloser) *Repl {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Repl{
		Input:    in,
		Output:   out,
		scanner:  bufio.NewScanner(in),
		writer:   bufio.NewWriter(out),
		commands: make(map[string]Command),
	}
}

// Register binds a verb to a command. Registering the same verb twice
// keeps the newer command.
func (r *Repl) Register(verb string, cmd Command) {
	r.commands[verb] = cmd
}

// Fallback is invoked for input whose first word matches no registered
// verb. It receives all words of the line.
func (r *Repl) Fallback(cmd Command) {
	r.fallback = cmd
}

// Run starts the repl.
// Blocks execution until the repl closes.
// Each input line is dispatched to the command registered for its first word.
// If it receives an error from a command or during writing, it calls Close
func (r *Repl) Run() error {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, ok := r.commands[fields[0]]
		args := fields[1:]
		if !ok {
			if r.fallback == nil {
				if err := r.reply("Unknown command"); err != nil {
					return err
				}
				continue
			}
			cmd = r.fallback
			args = fields
		}

		res, err := cmd(args, r)
		if err != nil {
			r.Close()
			return fmt.Errorf("command errored out on input \"%s\": %w", line, err)
		}
		if err := r.reply(res); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repl) reply(res string) error {
	if _, err := r.writer.WriteString(res + "\n"); err != nil {
		r.Close()
		return fmt.Errorf("failed to write result \"%s\": %w", res, err)
	}
	if err := r.writer.Flush(); err != nil {
		r.Close()
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}

// Close stops the repl if it was still running
// This will also close the reader and writer
func (r *Repl) Close() {
	r.Input.Close()
	r.Output.Close()
}
