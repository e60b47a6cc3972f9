// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Load reads the TOML config from the given path. An empty path looks the
// file up in the XDG config home; a missing file there yields defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		found, err := xdg.SearchConfigFile("lavender/config.toml")
		if err != nil {
			// No config anywhere is fine, run on defaults.
			return Default(), nil
		}
		path = found
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading config %q: %w", path, err)
	}

	conf := Default()
	if err := toml.Unmarshal(raw, &conf); err != nil {
		return Default(), fmt.Errorf("parsing config %q: %w", path, err)
	}
	return conf, nil
}

// WorkspaceRule names one workspace and optionally overrides its
// placement mode.
type WorkspaceRule struct {
	Name string `yaml:"name"`
	Mode string `yaml:"mode,omitempty"`
}

// Rules is the YAML rules file: the workspace set plus commands to spawn
// once the compositor is up.
type Rules struct {
	Workspaces []WorkspaceRule `yaml:"workspaces"`
	Startup    []string        `yaml:"startup,omitempty"`
}

func DefaultRules() Rules {
	return Rules{
		Workspaces: []WorkspaceRule{
			{Name: "1"}, {Name: "2"}, {Name: "3"}, {Name: "4"},
		},
	}
}

// LoadRules reads the YAML rules file, falling back to the XDG location
// and then to defaults.
func LoadRules(path string) (Rules, error) {
	explicit := path != ""
	if !explicit {
		found, err := xdg.SearchConfigFile("lavender/rules.yaml")
		if err != nil {
			return DefaultRules(), nil
		}
		path = found
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultRules(), nil
		}
		return DefaultRules(), fmt.Errorf("reading rules %q: %w", path, err)
	}

	var rules Rules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return DefaultRules(), fmt.Errorf("parsing rules %q: %w", path, err)
	}
	if len(rules.Workspaces) == 0 {
		rules.Workspaces = DefaultRules().Workspaces
	}
	return rules, nil
}
