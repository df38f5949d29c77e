// Package jeebie ties the CPU and the bus together into a running Game Boy.
package jeebie

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/jeebie-core/jeebie/cpu"
	"github.com/valerio/jeebie-core/jeebie/debug"
	"github.com/valerio/jeebie-core/jeebie/loader"
	"github.com/valerio/jeebie-core/jeebie/memory"
	"github.com/valerio/jeebie-core/jeebie/serial"
	"github.com/valerio/jeebie-core/jeebie/video"
)

// dmaCycles is how long the CPU is held off the bus by an OAM DMA transfer.
const dmaCycles = 162

// ErrNoBattery is returned when battery RAM is requested from a cartridge
// that has none.
var ErrNoBattery = errors.New("cartridge has no battery backed RAM")

// DMG is a complete original Game Boy: it owns the CPU and the bus, which in
// turn owns every other component.
type DMG struct {
	cpu    *cpu.CPU
	bus    *memory.Bus
	serial *serial.LogSink
	header *memory.Header

	dots          int // dots run past the end of the last frame
	frames        uint64
	instructions  uint64
	trace         bool
	debuggerState debug.DebuggerState
}

// New creates a Game Boy with an empty cartridge slot.
func New() *DMG {
	return newDMG(memory.New(), nil)
}

// NewWithROM parses the cartridge header and builds the machine around the
// controller it declares.
func NewWithROM(rom []byte) (*DMG, error) {
	header, err := memory.ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	mbc, err := memory.NewMBC(rom, header)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	if !memory.HeaderChecksumOK(rom) {
		slog.Warn("Header checksum mismatch",
			"expected", fmt.Sprintf("0x%02X", header.HeaderChecksum),
			"computed", fmt.Sprintf("0x%02X", memory.ComputeHeaderChecksum(rom)))
	}
	slog.Info("Loaded ROM",
		"title", header.Title,
		"type", header.Type.Kind,
		"rom_banks", header.ROMBanks,
		"ram_size", header.RAMSize,
		"battery", header.Type.HasBattery)

	return newDMG(memory.NewWithMBC(mbc), header), nil
}

// NewWithFile loads a ROM, possibly archived, from disk.
func NewWithFile(path string) (*DMG, error) {
	rom, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return NewWithROM(rom)
}

func newDMG(bus *memory.Bus, header *memory.Header) *DMG {
	sink := serial.NewLogSink()
	bus.SetSerial(sink)

	return &DMG{
		cpu:    cpu.New(bus),
		bus:    bus,
		serial: sink,
		header: header,
	}
}

// Step runs one CPU instruction, or one OAM DMA transfer when one is
// pending, then advances the timer, PPU and serial port by the same amount.
// It returns the M-cycles elapsed.
func (e *DMG) Step() int {
	var cycles int

	if gpu := e.bus.GPU(); gpu.DMAStarted() {
		gpu.TransferOAM(e.bus)
		cycles = dmaCycles
	} else {
		if e.trace {
			e.traceInstruction()
		}
		cycles = e.cpu.Step()
		e.instructions++
	}

	e.bus.Tick(cycles)
	return cycles
}

// RunUntilFrame steps until a full frame worth of dots has elapsed. Dots
// beyond the frame boundary count towards the next frame.
func (e *DMG) RunUntilFrame() {
	for e.dots < video.DotsPerFrame {
		e.dots += e.Step() * 4
	}
	e.dots -= video.DotsPerFrame
	e.frames++
}

// GetCurrentFrame returns the last completed frame.
func (e *DMG) GetCurrentFrame() *video.FrameBuffer {
	return e.bus.GPU().Frame()
}

func (e *DMG) Press(keys memory.JoypadKey)   { e.bus.Press(keys) }
func (e *DMG) Release(keys memory.JoypadKey) { e.bus.Release(keys) }

// SetTrace toggles logging of every executed instruction at debug level.
func (e *DMG) SetTrace(enabled bool) {
	e.trace = enabled
}

func (e *DMG) traceInstruction() {
	text, _ := cpu.Disassemble(e.bus, e.cpu.PC)
	slog.Debug("exec", "pc", fmt.Sprintf("%04X", e.cpu.PC), "op", text, "cpu", e.cpu.String())
}

// SerialOutput returns everything written to the serial port so far.
func (e *DMG) SerialOutput() string {
	return e.serial.Output()
}

// Header returns the parsed cartridge header, nil with no cartridge.
func (e *DMG) Header() *memory.Header {
	return e.header
}

func (e *DMG) battery() (memory.BatteryBacked, bool) {
	b, ok := e.bus.MBC().(memory.BatteryBacked)
	if !ok || !b.HasBattery() {
		return nil, false
	}
	return b, true
}

// HasBattery reports whether the cartridge RAM survives power off.
func (e *DMG) HasBattery() bool {
	_, ok := e.battery()
	return ok
}

// BatteryRAM returns a copy of the external RAM for persisting.
func (e *DMG) BatteryRAM() ([]byte, error) {
	b, ok := e.battery()
	if !ok {
		return nil, ErrNoBattery
	}
	return append([]byte(nil), b.RAM()...), nil
}

// LoadBatteryRAM restores external RAM saved by BatteryRAM.
func (e *DMG) LoadBatteryRAM(data []byte) error {
	b, ok := e.battery()
	if !ok {
		return ErrNoBattery
	}
	b.LoadRAM(data)
	return nil
}

func (e *DMG) GetFrameCount() uint64       { return e.frames }
func (e *DMG) GetInstructionCount() uint64 { return e.instructions }

// CPU and Bus expose the components for tests and tooling.
func (e *DMG) CPU() *cpu.CPU    { return e.cpu }
func (e *DMG) Bus() *memory.Bus { return e.bus }
