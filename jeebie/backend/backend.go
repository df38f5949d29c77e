package backend

import (
	"log/slog"

	"github.com/valerio/jeebie-core/jeebie/debug"
	"github.com/valerio/jeebie-core/jeebie/input/action"
	"github.com/valerio/jeebie-core/jeebie/input/event"
	"github.com/valerio/jeebie-core/jeebie/video"
)

// Backend represents a complete emulator platform (rendering + input).
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, PNG files, ...)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, debug panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the provided frame and returns the input events
	// collected since the previous call. The caller forwards them to an
	// input.Manager.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// InputEvent is a platform key translated to an emulator action.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// DebugProvider supplies machine state for debug panels.
type DebugProvider interface {
	ExtractDebugData() *debug.CompleteDebugData
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title     string
	Scale     int
	ShowDebug bool          // Backends may ignore unsupported features
	Debug     DebugProvider // optional, used when ShowDebug is set
	// LogLevel is shared with the CLI so that backends can change verbosity
	// at runtime. A nil LogLevel means Info.
	LogLevel *slog.LevelVar
}

// Level returns the configured log level variable, creating one at Info
// when none was given.
func (c *BackendConfig) Level() *slog.LevelVar {
	if c.LogLevel == nil {
		c.LogLevel = new(slog.LevelVar)
	}
	return c.LogLevel
}
