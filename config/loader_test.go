// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `
start_type = 2
default_mode = "tiling"
output_order = ["DP-1", "HDMI-1"]
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if conf.StartType != START_NONE {
		t.Errorf("StartType is %v", conf.StartType)
	}
	if conf.DefaultMode != "tiling" {
		t.Errorf("DefaultMode is %q", conf.DefaultMode)
	}
	if len(conf.OutputOrder) != 2 || conf.OutputOrder[0] != "DP-1" {
		t.Errorf("OutputOrder is %v", conf.OutputOrder)
	}
}

func TestLoadConfigDefaultsApply(t *testing.T) {
	path := writeFile(t, "config.toml", ``)
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if conf.StartType != START_REPL || conf.DefaultMode != "floating" {
		t.Errorf("Empty config did not keep the defaults: %+v", conf)
	}
}

func TestLoadConfigExplicitMissingErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Errorf("Explicitly named missing config did not error")
	}
}

func TestLoadConfigBadTomlErrors(t *testing.T) {
	path := writeFile(t, "config.toml", `start_type = [`)
	if _, err := Load(path); err == nil {
		t.Errorf("Malformed config did not error")
	}
}

func TestLoadRules(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
workspaces:
  - name: web
  - name: code
    mode: tiling
startup:
  - foot
`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(rules.Workspaces) != 2 {
		t.Fatalf("Parsed %d workspaces", len(rules.Workspaces))
	}
	if rules.Workspaces[1].Name != "code" || rules.Workspaces[1].Mode != "tiling" {
		t.Errorf("Second workspace is %+v", rules.Workspaces[1])
	}
	if rules.Workspaces[0].Mode != "" {
		t.Errorf("Unset mode should stay empty, got %q", rules.Workspaces[0].Mode)
	}
	if len(rules.Startup) != 1 || rules.Startup[0] != "foot" {
		t.Errorf("Startup commands are %v", rules.Startup)
	}
}

func TestLoadRulesEmptyFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, "rules.yaml", `startup: []`)
	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(rules.Workspaces) != 4 || rules.Workspaces[0].Name != "1" {
		t.Errorf("Empty workspace set did not fall back to the defaults: %+v", rules.Workspaces)
	}
}
