package backend

import (
	"fmt"
	"log/slog"

	"github.com/valerio/jeebie-core/jeebie/debug"
	"github.com/valerio/jeebie-core/jeebie/input"
	"github.com/valerio/jeebie-core/jeebie/input/action"
	"github.com/valerio/jeebie-core/jeebie/input/event"
	"github.com/valerio/jeebie-core/jeebie/video"
)

// Machine is the emulator as driven by a frontend.
type Machine interface {
	input.Joypad
	DebugProvider
	RunUntilFrame()
	Step() int
	GetCurrentFrame() *video.FrameBuffer
	SetDebuggerState(state debug.DebuggerState)
}

// ActionHandler is implemented by backends with actions of their own, such
// as snapshots or debug panels.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// PacingResetter is implemented by backends that pace frames, so that the
// schedule restarts after a pause.
type PacingResetter interface {
	ResetPacing()
}

var backendActions = []action.Action{
	action.EmulatorSnapshot,
	action.EmulatorDebugToggle,
	action.EmulatorDebugUpdate,
	action.DebugLogLevelIncrease,
	action.DebugLogLevelDecrease,
}

// Loop runs frames on a machine, presents them through a backend and feeds
// the backend's input back through an input.Manager.
type Loop struct {
	machine Machine
	backend Backend
	input   *input.Manager
	state   debug.DebuggerState
	running bool
	frames  uint64
}

func NewLoop(m Machine, b Backend) *Loop {
	l := &Loop{
		machine: m,
		backend: b,
		input:   input.NewManager(m),
		running: true,
	}

	l.input.On(action.EmulatorQuit, event.Press, func() { l.running = false })
	l.input.On(action.EmulatorPauseToggle, event.Press, l.togglePause)
	l.input.On(action.EmulatorStepFrame, event.Press, func() { l.setState(debug.DebuggerStepFrame) })
	l.input.On(action.EmulatorStepInstruction, event.Press, func() { l.setState(debug.DebuggerStepInstruction) })

	if h, ok := b.(ActionHandler); ok {
		for _, act := range backendActions {
			act := act
			l.input.On(act, event.Press, func() { h.HandleAction(act) })
		}
	}
	return l
}

// Run loops until the backend reports a quit.
func (l *Loop) Run() error {
	for l.running {
		if err := l.Tick(); err != nil {
			return err
		}
	}
	slog.Info("Emulation stopped", "frames", l.frames)
	return nil
}

// Tick advances the machine according to the debugger state, presents the
// current frame and dispatches the resulting input.
func (l *Loop) Tick() error {
	switch l.state {
	case debug.DebuggerRunning:
		l.machine.RunUntilFrame()
		l.frames++
	case debug.DebuggerStepFrame:
		l.machine.RunUntilFrame()
		l.frames++
		l.setState(debug.DebuggerPaused)
	case debug.DebuggerStepInstruction:
		l.machine.Step()
		l.setState(debug.DebuggerPaused)
	}

	events, err := l.backend.Update(l.machine.GetCurrentFrame())
	if err != nil {
		return fmt.Errorf("backend update: %w", err)
	}
	for _, evt := range events {
		l.input.Trigger(evt.Action, evt.Type)
	}
	return nil
}

// Running reports whether no quit was requested yet.
func (l *Loop) Running() bool {
	return l.running
}

// State returns the current debugger state.
func (l *Loop) State() debug.DebuggerState {
	return l.state
}

// Frames returns how many frames the loop has run.
func (l *Loop) Frames() uint64 {
	return l.frames
}

func (l *Loop) togglePause() {
	if l.state == debug.DebuggerRunning {
		l.setState(debug.DebuggerPaused)
		return
	}
	l.setState(debug.DebuggerRunning)
	if p, ok := l.backend.(PacingResetter); ok {
		p.ResetPacing()
	}
}

func (l *Loop) setState(state debug.DebuggerState) {
	if state != l.state {
		slog.Debug("Debugger state", "from", l.state, "to", state)
	}
	l.state = state
	l.machine.SetDebuggerState(state)
}
