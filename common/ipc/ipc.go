package ipc

// Wire types for introspecting a running compositor from tool mode or the
// repl. Everything is plain JSON so external scripts can consume it.

type (
	// A request to list the available outputs
	OutputRequest struct {
		// Whether to include the modes an output supports
		IncludeModes bool `json:"include_modes"`
		// Target one specific output
		SpecifiesOutput bool `json:"specifies_output"`
		// Name of the output you want info on. Only matters if SpecifiesOutput is set
		TargetOutput string `json:"target_output"`
	}

	// A mode an output supports
	OutputMode struct {
		// Mode height in pixel
		Height int `json:"height"`
		// Mode width in pixel
		Width int `json:"width"`
		// Refresh rate of the mode in millihertz
		RefreshRate int `json:"refresh_rate"`
	}

	// Response to an OutputRequest message
	OutputResponse struct {
		// List of all outputs. Only contains target output if specified
		Outputs []string `json:"outputs"`
		// A list of modes an output supports. Only set if IncludeModes is true
		OutputModes map[string][]OutputMode `json:"output_modes,omitempty"`
		// Nr of outputs found
		OutputsFound int `json:"outputs_found"`
	}

	// One mapped window as seen by the desktop layout
	WindowInfo struct {
		// Workspace the window is mapped on
		Workspace string `json:"workspace"`
		X         int    `json:"x"`
		Y         int    `json:"y"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Maximized bool   `json:"maximized"`
	}

	// One workspace and its mapped windows
	WorkspaceInfo struct {
		Name string `json:"name"`
		// Placement mode currently authoritative for mapping
		Mode    string       `json:"mode"`
		Active  bool         `json:"active"`
		Windows []WindowInfo `json:"windows"`
	}

	// Response to a workspace listing request
	WorkspaceResponse struct {
		Workspaces []WorkspaceInfo `json:"workspaces"`
	}
)
