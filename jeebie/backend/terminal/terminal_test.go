package terminal

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie/backend"
	"github.com/valerio/jeebie-core/jeebie/debug"
	"github.com/valerio/jeebie-core/jeebie/input/action"
	"github.com/valerio/jeebie-core/jeebie/input/event"
	"github.com/valerio/jeebie-core/jeebie/timing"
	"github.com/valerio/jeebie-core/jeebie/video"
)

type fakeDebug struct{ data *debug.CompleteDebugData }

func (f *fakeDebug) ExtractDebugData() *debug.CompleteDebugData { return f.data }

type testTerminal struct {
	*Backend
	screen tcell.SimulationScreen
	clock  time.Time
}

func newTestTerminal(t *testing.T, config backend.BackendConfig) *testTerminal {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	screen := tcell.NewSimulationScreen("UTF-8")
	tt := &testTerminal{
		Backend: New(WithScreen(screen), WithLimiter(timing.NewNoOpLimiter())),
		screen:  screen,
		clock:   time.Unix(1000, 0),
	}
	tt.now = func() time.Time { return tt.clock }

	require.NoError(t, tt.Init(config))
	screen.SetSize(240, 80)
	t.Cleanup(func() { _ = tt.Cleanup() })
	return tt
}

func (tt *testTerminal) update(t *testing.T) []backend.InputEvent {
	t.Helper()
	events, err := tt.Update(video.NewFrameBuffer())
	require.NoError(t, err)
	return events
}

func (tt *testTerminal) row(y int) string {
	w, _ := tt.screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := tt.screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func (tt *testTerminal) contains(text string) bool {
	_, h := tt.screen.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(tt.row(y), text) {
			return true
		}
	}
	return false
}

func TestTerminalDrawsFrame(t *testing.T) {
	tt := newTestTerminal(t, backend.BackendConfig{})

	frame := video.NewFrameBuffer()
	frame.SetPixel(0, 0, video.BlackColor)
	frame.SetPixel(0, 1, video.BlackColor)
	frame.SetPixel(1, 0, video.BlackColor)
	_, err := tt.Update(frame)
	require.NoError(t, err)

	r, _, style, _ := tt.screen.GetContent(0, 1)
	fg, _, _ := style.Decompose()
	assert.Equal(t, '█', r)
	assert.Equal(t, tcell.ColorBlack, fg)

	r, _, style, _ = tt.screen.GetContent(1, 1)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, '▀', r)
	assert.Equal(t, tcell.ColorBlack, fg)
	assert.Equal(t, tcell.ColorWhite, bg)

	assert.True(t, tt.contains("Game Boy"))
}

func TestTerminalTooSmall(t *testing.T) {
	tt := newTestTerminal(t, backend.BackendConfig{})
	tt.screen.SetSize(80, 24)

	tt.update(t)

	assert.True(t, tt.contains("Terminal too small!"))
}

func TestTerminalGameKeys(t *testing.T) {
	tt := newTestTerminal(t, backend.BackendConfig{})

	tt.screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	assert.Equal(t, []backend.InputEvent{{Action: action.GBButtonA, Type: event.Press}}, tt.update(t))

	tt.clock = tt.clock.Add(50 * time.Millisecond)
	tt.screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	assert.Equal(t, []backend.InputEvent{{Action: action.GBButtonA, Type: event.Hold}}, tt.update(t))

	// no repeat within the timeout counts as released
	tt.clock = tt.clock.Add(keyTimeout)
	assert.Equal(t, []backend.InputEvent{{Action: action.GBButtonA, Type: event.Release}}, tt.update(t))

	assert.Empty(t, tt.update(t))
}

func TestTerminalKeyMapping(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want action.Action
	}{
		{name: "x is B", key: tcell.KeyRune, r: 'x', want: action.GBButtonB},
		{name: "enter is start", key: tcell.KeyEnter, want: action.GBButtonStart},
		{name: "space is select", key: tcell.KeyRune, r: ' ', want: action.GBButtonSelect},
		{name: "backspace is select", key: tcell.KeyBackspace2, want: action.GBButtonSelect},
		{name: "arrow", key: tcell.KeyUp, want: action.GBDPadUp},
		{name: "wasd", key: tcell.KeyRune, r: 'd', want: action.GBDPadRight},
		{name: "snapshot", key: tcell.KeyF12, want: action.EmulatorSnapshot},
		{name: "snapshot rune", key: tcell.KeyRune, r: 'p', want: action.EmulatorSnapshot},
		{name: "debug toggle", key: tcell.KeyF10, want: action.EmulatorDebugToggle},
		{name: "pause", key: tcell.KeyRune, r: 'r', want: action.EmulatorPauseToggle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := newTestTerminal(t, backend.BackendConfig{})
			tt.screen.InjectKey(tc.key, tc.r, tcell.ModNone)

			events := tt.update(t)
			require.Len(t, events, 1)
			assert.Equal(t, tc.want, events[0].Action)
			assert.Equal(t, event.Press, events[0].Type)
		})
	}
}

func TestTerminalDirectionsAreExclusive(t *testing.T) {
	tt := newTestTerminal(t, backend.BackendConfig{})

	tt.screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	tt.screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)

	assert.Equal(t, []backend.InputEvent{{Action: action.GBDPadLeft, Type: event.Press}}, tt.update(t))
}

func TestTerminalQuit(t *testing.T) {
	for _, key := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC} {
		tt := newTestTerminal(t, backend.BackendConfig{})
		tt.screen.InjectKey(key, 0, tcell.ModNone)

		events := tt.update(t)
		assert.Equal(t, []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, events)
		assert.False(t, tt.Running())
	}
}

func TestTerminalLogPanel(t *testing.T) {
	level := new(slog.LevelVar)
	tt := newTestTerminal(t, backend.BackendConfig{LogLevel: level})

	slog.Debug("hidden message")
	slog.Info("visible message")
	tt.update(t)

	assert.True(t, tt.contains("[INF] visible message"))
	assert.False(t, tt.contains("hidden message"))
	assert.True(t, tt.contains("Logs [INFO]"))

	tt.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, slog.LevelDebug, level.Level())
	tt.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, slog.LevelDebug, level.Level(), "clamped at debug")

	for rep := 0; rep < 5; rep++ {
		tt.HandleAction(action.DebugLogLevelDecrease)
	}
	assert.Equal(t, slog.LevelError, level.Level(), "clamped at error")
}

func TestTerminalDebugPanels(t *testing.T) {
	snapshot := &debug.MemorySnapshot{StartAddr: 0x0150, Bytes: []byte{0x00, 0x3E, 0x42, 0xC3, 0x50, 0x01}}
	provider := &fakeDebug{data: &debug.CompleteDebugData{
		CPU:           &debug.CPUState{A: 0x01, F: 0xB0, PC: 0x0151, SP: 0xFFFE},
		Memory:        snapshot,
		DebuggerState: debug.DebuggerPaused,
		LCDMode:       "VBlank",
	}}
	tt := newTestTerminal(t, backend.BackendConfig{ShowDebug: true, Debug: provider})

	tt.update(t)

	assert.True(t, tt.contains("CPU Registers"))
	assert.True(t, tt.contains("A: 0x01  F: 0xB0"))
	assert.True(t, tt.contains("SP: 0xFFFE  PC: 0x0151"))
	assert.True(t, tt.contains("Status: PAUSED"))
	assert.True(t, tt.contains("→ 0x0151: LD A,$42"))
	assert.True(t, tt.contains("0x0153: JP $0150"))

	tt.HandleAction(action.EmulatorDebugToggle)
	tt.update(t)
	assert.False(t, tt.contains("CPU Registers"))
}
