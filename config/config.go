// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

type StartType int

const (
	// Tells lavender to start a repl in parallel for interacting with it
	START_REPL = StartType(iota)
	// Tells lavender to execute a specific command on startup
	START_SINGLE_COMMAND
	// Tells lavender to start without any specific targets
	START_NONE
)

type Config struct {
	StartType StartType `toml:"start_type,omitempty"`
	// What command to execute on start. Only matters if StartType is set to START_SINGLE_COMMAND
	StartCommand *string `toml:"start_command,omitempty"`
	// Placement mode new workspaces default to: "floating" or "tiling"
	DefaultMode string `toml:"default_mode,omitempty"`
	// Path to the YAML workspace rules file. Empty means the XDG default
	RulesFile string `toml:"rules_file,omitempty"`
	// Output names in left-to-right order. Unnamed outputs go after these
	OutputOrder []string `toml:"output_order,omitempty"`
}

func Default() Config {
	return Config{
		StartType:   START_REPL,
		DefaultMode: "floating",
	}
}
