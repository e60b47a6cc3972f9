// Copyright (c) 2026 The lavender authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/config"
)

var (
	configPath = flag.String("config", "", "Path to the config file. Default is $XDG_CONFIG_HOME/lavender/config.toml")
	rulesPath  = flag.String("rules", "", "Path to the workspace rules file. Default is $XDG_CONFIG_HOME/lavender/rules.yaml")
	toolMode   = flag.Bool("tool", false, "Start as a tool instead of a compositor")
	help       = flag.Bool("help", false, "Show the help message")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatalln("Failed to load config")
	}

	rulesFile := *rulesPath
	if rulesFile == "" {
		rulesFile = conf.RulesFile
	}
	rules, err := config.LoadRules(rulesFile)
	if err != nil {
		logrus.WithError(err).Fatalln("Failed to load workspace rules")
	}

	if *toolMode {
		utilMain(conf, rules)
		return
	}
	if *help {
		flag.Usage()
		return
	}
	wlMain(conf, rules)
}
