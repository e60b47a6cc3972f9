package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
	"gitlab.com/mstarongitlab/goutils/sliceutils"

	"github.com/lavenderwm/lavender/common/ipc"
	"github.com/lavenderwm/lavender/config"
)

var (
	utilAction *string = flag.String(
		"action",
		"outputs",
		"The action to perform. Can be one of:"+
			"\n\t- outputs: List available outputs"+
			"\n\t- modes: List available modes for an output. Use with -output",
	)
	outputSelection *string = flag.String(
		"output",
		"",
		"Output to perform the action on. Required for some actions",
	)
)

func utilMain(conf config.Config, rules config.Rules) {
	if *help {
		utilHelpMessage()
		return
	}

	// Init a server, used for stuff like getting displays
	server, err := NewServer(conf, rules)
	if err != nil {
		logrus.WithError(err).Fatal("initializing server")
	}
	if err = server.Start(); err != nil {
		logrus.WithError(err).Fatal("starting server")
	}

	switch *utilAction {
	case "outputs":
		utilListOutputs(server)
	case "modes":
		if *outputSelection == "" {
			fmt.Println("Output has to be specified")
			return
		}
		utilListOutputModes(server, *outputSelection)
	}
}

func utilHelpMessage() {
	fmt.Println("---- Help message for lavender in tool mode ----")
	fmt.Println("\nIn tool mode, lavender offers tools for figuring out configurations and similar")
	fmt.Println("\nGeneral flags:")
	fmt.Println("\t-config: Path to the config file. Default is $XDG_CONFIG_HOME/lavender/config.toml")
	fmt.Println("\t-rules: Path to the workspace rules file")
	fmt.Println("\t-tool: Start as a tool instead of a compositor")
	fmt.Println("\t-help: Show this help message (or the one for compositor mode if -tool is not set)")
	fmt.Println("\nTool flags:")
	fmt.Println("\t-action: The action to perform. Can be one of:")
	fmt.Println("\t\t- (default) outputs: List available outputs")
	fmt.Println("\t\t- modes: List available modes for an output. Use with -output")
	fmt.Println("\t-output: Output to perform the action on. Required for -action modes")
}

func utilListOutputs(server *Server) {
	resp := ipc.OutputResponse{Outputs: []string{}}
	for _, output := range server.GetOutputs() {
		resp.Outputs = append(resp.Outputs, output.Name())
	}
	resp.OutputsFound = len(resp.Outputs)
	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatal("marshalling output list")
	}
	fmt.Println(string(raw))
}

func utilListOutputModes(server *Server, outputName string) {
	outputs := server.GetOutputs()
	filtered := sliceutils.Filter(outputs, func(output *wlroots.Output) bool {
		return output.Name() == outputName
	})
	if len(filtered) == 0 {
		fmt.Printf("Output %s not found\n", outputName)
		return
	}
	resp := ipc.OutputResponse{
		Outputs:      []string{outputName},
		OutputsFound: 1,
		OutputModes:  map[string][]ipc.OutputMode{},
	}
	for _, mode := range filtered[0].Modes() {
		resp.OutputModes[outputName] = append(resp.OutputModes[outputName], ipc.OutputMode{
			Width:       int(mode.Width()),
			Height:      int(mode.Height()),
			RefreshRate: int(mode.Refresh()),
		})
	}
	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatal("marshalling mode list")
	}
	fmt.Println(string(raw))
}
