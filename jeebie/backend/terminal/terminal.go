package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/jeebie-core/jeebie/backend"
	"github.com/valerio/jeebie-core/jeebie/backend/terminal/render"
	"github.com/valerio/jeebie-core/jeebie/debug"
	"github.com/valerio/jeebie-core/jeebie/input"
	"github.com/valerio/jeebie-core/jeebie/input/action"
	"github.com/valerio/jeebie-core/jeebie/input/event"
	"github.com/valerio/jeebie-core/jeebie/timing"
	"github.com/valerio/jeebie-core/jeebie/video"
)

const (
	width      = video.FramebufferWidth
	screenRows = (video.FramebufferHeight + 1) / 2 // two pixel rows per cell

	registerHeight = 9
	disasmHeight   = 9
	logCapacity    = 200

	minTermWidth  = width + 2
	minTermHeight = screenRows + 2
)

// Key expiry timeout - slightly longer than typical key repeat interval.
// Terminals report presses but not releases, so a key counts as held while
// repeats keep arriving.
const keyTimeout = 100 * time.Millisecond

var shadeColors = [4]tcell.Color{
	tcell.ColorWhite,
	tcell.ColorSilver,
	tcell.ColorGray,
	tcell.ColorBlack,
}

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	config     backend.BackendConfig
	eventQueue []backend.InputEvent
	signals    chan os.Signal
	limiter    timing.Limiter
	now        func() time.Time

	keyStates  map[action.Action]time.Time // Last time each key was pressed
	activeKeys map[action.Action]bool      // Keys active in previous frame

	cells        [][]render.Cell
	disasmBuf    *debug.DisasmBuffer
	currentFrame *video.FrameBuffer // kept for snapshots
}

// Option customises a terminal backend.
type Option func(*Backend)

// WithScreen draws on the given screen instead of the controlling terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(t *Backend) { t.screen = screen }
}

// WithLimiter replaces the default 60 Hz pacing.
func WithLimiter(l timing.Limiter) Option {
	return func(t *Backend) { t.limiter = l }
}

// New creates a new terminal backend
func New(opts ...Option) *Backend {
	t := &Backend{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	if t.limiter == nil {
		t.limiter = timing.NewAdaptiveLimiter()
	}
	return t
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.disasmBuf = debug.NewDisasmBuffer(disasmHeight)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.running = true

	// slog output would corrupt the screen, so it goes to an on-screen panel
	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.config.Level())))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	slog.Info("Terminal backend initialized", "debug", config.ShowDebug)
	t.limiter.Reset()
	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	select {
	case sig := <-t.signals:
		slog.Info("Received signal", "signal", sig)
		t.quit()
	default:
	}

	events := t.collectKeyEvents(now)
	events = append(events, t.eventQueue...)
	t.eventQueue = t.eventQueue[:0]

	if !t.running {
		return events, nil
	}

	if frame != nil {
		t.currentFrame = frame
	}
	t.render()
	t.screen.Show()
	t.limiter.WaitForNextFrame()

	return events, nil
}

// collectKeyEvents turns the timestamps of held game keys into Press, Hold
// and Release events.
func (t *Backend) collectKeyEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}
		currentlyActive[act] = true
		if t.activeKeys[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		} else {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

// Running reports whether the user has not asked to quit yet.
func (t *Backend) Running() bool {
	return t.running
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(t.currentFrame)
	case action.EmulatorDebugToggle:
		t.config.ShowDebug = !t.config.ShowDebug
		slog.Info("Debug display toggled", "enabled", t.config.ShowDebug)
	case action.EmulatorDebugUpdate:
		t.screen.Sync()
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(-4)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(4)
	}
}

// ResetPacing restarts frame pacing, used after a pause.
func (t *Backend) ResetPacing() {
	t.limiter.Reset()
}

func (t *Backend) quit() {
	t.running = false
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
}

// changeLogLevel moves the filter by delta, clamped to Debug..Error. A
// negative delta shows more messages.
func (t *Backend) changeLogLevel(delta slog.Level) {
	level := t.config.Level()
	old := level.Level()
	next := min(max(old+delta, slog.LevelDebug), slog.LevelError)
	if next != old {
		level.Set(next)
		slog.Warn("Log filter changed", "from", old, "to", next)
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	if act == action.EmulatorQuit {
		t.quit()
		return
	}

	if action.GetInfo(act).Category != action.CategoryGameInput {
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
		return
	}

	// a newly pressed direction replaces any other one, as on a real d-pad
	if isDirection(act) {
		for _, dir := range directions {
			if dir != act {
				delete(t.keyStates, dir)
			}
		}
	}
	t.keyStates[act] = now
}

var directions = []action.Action{action.GBDPadUp, action.GBDPadDown, action.GBDPadLeft, action.GBDPadRight}

func isDirection(act action.Action) bool {
	for _, dir := range directions {
		if dir == act {
			return true
		}
	}
	return false
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyEscape:     "Escape",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// runeNameMap converts runes whose key name differs from the rune itself
var runeNameMap = map[rune]string{
	' ': "Space",
}

func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.EmulatorQuit
	return mapping
}

func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)
	for keyName, act := range input.DefaultKeyMap {
		if r := []rune(keyName); len(r) == 1 {
			mapping[r[0]] = act
		}
	}
	for r, keyName := range runeNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[r] = act
		}
	}
	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

func (t *Backend) render() {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	dividerX := width + 1
	panelX := dividerX + 2
	panelWidth := max(termWidth-panelX, 0)

	t.drawBorders(termWidth, termHeight, dividerX)
	if t.currentFrame != nil {
		t.drawGameBoy(t.currentFrame)
	}

	logsY := 1
	if t.config.ShowDebug && t.config.Debug != nil {
		if data := t.config.Debug.ExtractDebugData(); data != nil {
			t.drawRegisters(data, panelX, 1, panelWidth)
			t.drawDisassembly(data, panelX, registerHeight+2, panelWidth)
		}
		logsY = registerHeight + disasmHeight + 3
	}
	t.drawLogs(panelX, logsY, panelWidth, termHeight-1)
}

func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= maxWidth {
			return
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}

	title := " Game Boy "
	if t.config.Title != "" {
		title = " " + t.config.Title + " "
	}
	t.drawText(1, 0, dividerX-1, title, titleStyle)

	panelX := dividerX + 2
	panelWidth := termWidth - panelX
	logsTitleY := 0
	if t.config.ShowDebug {
		t.drawText(panelX, 0, panelWidth, " CPU Registers ", titleStyle)
		for _, y := range []int{registerHeight + 1, registerHeight + disasmHeight + 2} {
			for x := dividerX + 1; x < termWidth; x++ {
				t.screen.SetContent(x, y, '─', nil, borderStyle)
			}
			t.screen.SetContent(dividerX, y, '├', nil, borderStyle)
		}
		t.drawText(panelX, registerHeight+1, panelWidth, " Disassembly ", titleStyle)
		logsTitleY = registerHeight + disasmHeight + 2
	}
	logsTitle := fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.config.Level().Level())
	t.drawText(panelX, logsTitleY, panelWidth, logsTitle, titleStyle)

	help := " Z=A X=B Enter=Start Space=Select | R=pause N=step F=frame | F10=debug F12/P=snapshot | Q/Esc=quit "
	t.drawText(0, termHeight-1, termWidth, help, borderStyle)
}

func (t *Backend) drawGameBoy(frame *video.FrameBuffer) {
	t.cells = render.FrameCells(frame, t.cells)
	for y, row := range t.cells {
		for x, cell := range row {
			style := tcell.StyleDefault.Foreground(shadeColors[cell.Fg]).Background(shadeColors[cell.Bg])
			t.screen.SetContent(x, y+1, cell.Char, nil, style)
		}
	}
}

func (t *Backend) drawRegisters(data *debug.CompleteDebugData, x, y, maxWidth int) {
	if data.CPU == nil {
		return
	}
	cpu := data.CPU
	ime := "OFF"
	if cpu.IME {
		ime = "ON"
	}

	lines := []string{
		fmt.Sprintf("Status: %s  LCD: %s", data.DebuggerState, data.LCDMode),
		fmt.Sprintf("A: 0x%02X  F: 0x%02X", cpu.A, cpu.F),
		fmt.Sprintf("B: 0x%02X  C: 0x%02X", cpu.B, cpu.C),
		fmt.Sprintf("D: 0x%02X  E: 0x%02X", cpu.D, cpu.E),
		fmt.Sprintf("H: 0x%02X  L: 0x%02X", cpu.H, cpu.L),
		fmt.Sprintf("SP: 0x%04X  PC: 0x%04X", cpu.SP, cpu.PC),
		fmt.Sprintf("IME: %s  IE: 0x%02X  IF: 0x%02X", ime, data.InterruptEnable, data.InterruptFlags),
		fmt.Sprintf("Halted: %t", cpu.Halted),
		fmt.Sprintf("Cycles: %d  Frames: %d", cpu.Cycles, data.Frames),
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines[:min(len(lines), registerHeight)] {
		t.drawText(x, y+i, maxWidth, line, style)
	}
}

func (t *Backend) drawDisassembly(data *debug.CompleteDebugData, x, y, maxWidth int) {
	if data.CPU == nil || data.Memory == nil {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	lines := debug.CreateDisassemblyWithBuffer(data.Memory, data.CPU.PC, disasmHeight, t.disasmBuf)
	for i, line := range lines {
		text := fmt.Sprintf("  0x%04X: %s", line.Address, line.Instruction)
		useStyle := style
		if line.IsCurrent {
			text = "→" + text[1:]
			useStyle = currentStyle
		}
		t.drawText(x, y+i, maxWidth, text, useStyle)
	}
}

func (t *Backend) drawLogs(x, y, maxWidth, bottom int) {
	available := bottom - y
	if maxWidth <= 0 || available <= 0 {
		return
	}

	styles := map[string]tcell.Style{
		"DBG": tcell.StyleDefault.Foreground(tcell.ColorGray),
		"INF": tcell.StyleDefault.Foreground(tcell.ColorBlue),
		"WRN": tcell.StyleDefault.Foreground(tcell.ColorYellow),
		"ERR": tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}

	entries := t.logBuffer.GetRecent(available, t.config.Level().Level())
	for i, entry := range entries {
		text := render.FormatLogEntry(entry)
		if len(text) > maxWidth && maxWidth > 3 {
			text = text[:maxWidth-3] + "..."
		}
		t.drawText(x, y+i, maxWidth, text, styles[render.LevelName(entry.Level)])
	}
}
