package action

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// Game Boy hardware controls
	GBButtonA Action = iota
	GBButtonB
	GBButtonStart
	GBButtonSelect
	GBDPadUp
	GBDPadDown
	GBDPadLeft
	GBDPadRight

	// Emulator features
	EmulatorDebugToggle
	EmulatorDebugUpdate
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by who consumes them.
type Category int

const (
	CategoryGameInput Category = iota // forwarded to the joypad
	CategoryEmulator
	CategoryDebug
)

func (c Category) String() string {
	switch c {
	case CategoryGameInput:
		return "game"
	case CategoryEmulator:
		return "emulator"
	case CategoryDebug:
		return "debug"
	}
	return "unknown"
}

// Info describes an action for logs and help screens.
type Info struct {
	Description string
	Category    Category
}

var infos = map[Action]Info{
	GBButtonA:      {"A button", CategoryGameInput},
	GBButtonB:      {"B button", CategoryGameInput},
	GBButtonStart:  {"Start button", CategoryGameInput},
	GBButtonSelect: {"Select button", CategoryGameInput},
	GBDPadUp:       {"D-pad up", CategoryGameInput},
	GBDPadDown:     {"D-pad down", CategoryGameInput},
	GBDPadLeft:     {"D-pad left", CategoryGameInput},
	GBDPadRight:    {"D-pad right", CategoryGameInput},

	EmulatorDebugToggle:     {"Toggle debug panels", CategoryEmulator},
	EmulatorDebugUpdate:     {"Refresh debug panels", CategoryEmulator},
	EmulatorSnapshot:        {"Save PNG snapshot", CategoryEmulator},
	EmulatorPauseToggle:     {"Pause or resume", CategoryEmulator},
	EmulatorStepFrame:       {"Step one frame", CategoryEmulator},
	EmulatorStepInstruction: {"Step one instruction", CategoryEmulator},
	EmulatorQuit:            {"Quit", CategoryEmulator},

	DebugLogLevelIncrease: {"More verbose logging", CategoryDebug},
	DebugLogLevelDecrease: {"Less verbose logging", CategoryDebug},
}

// GetInfo returns the description and category of an action. Unknown
// actions are reported as emulator actions.
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Description: "unknown", Category: CategoryEmulator}
}

func (a Action) String() string {
	return GetInfo(a).Description
}
