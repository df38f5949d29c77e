package jeebie

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/debug"
)

// snapshotSize is how much memory around PC the debug view disassembles.
const snapshotSize = 200

// ExtractDebugData captures the machine state for debug displays. It
// returns nil on a DMG that was not built through one of the constructors.
func (e *DMG) ExtractDebugData() *debug.CompleteDebugData {
	if e.cpu == nil || e.bus == nil {
		return nil
	}

	c := e.cpu
	gpu := e.bus.GPU()

	return &debug.CompleteDebugData{
		CPU: &debug.CPUState{
			A: c.A, F: c.F.Pack(),
			B: c.B, C: c.C,
			D: c.D, E: c.E,
			H: c.H, L: c.L,
			SP:     c.SP,
			PC:     c.PC,
			IME:    c.IME(),
			Halted: c.Halted(),
			Cycles: c.Cycles(),
		},
		Memory:          e.memorySnapshot(c.PC),
		OAM:             debug.ExtractOAMData(e.bus, int(gpu.LY()), gpu.SpriteHeight()),
		DebuggerState:   e.debuggerState,
		InterruptEnable: e.bus.Read(addr.IE),
		InterruptFlags:  e.bus.Read(addr.IF),
		LCDMode:         gpu.Mode().String(),
		Frames:          e.frames,
	}
}

// memorySnapshot copies up to snapshotSize bytes starting a little before
// pc. The window never wraps past 0xFFFF.
func (e *DMG) memorySnapshot(pc uint16) *debug.MemorySnapshot {
	start := uint16(0)
	if pc > snapshotSize/4 {
		start = pc - snapshotSize/4
	}
	size := min(snapshotSize, 0x10000-int(start))

	snap := &debug.MemorySnapshot{StartAddr: start, Bytes: make([]byte, size)}
	for i := range snap.Bytes {
		snap.Bytes[i] = e.bus.Read(start + uint16(i))
	}
	return snap
}

// SetDebuggerState records the frontend's debugger state so that it shows up
// in debug data.
func (e *DMG) SetDebuggerState(state debug.DebuggerState) {
	e.debuggerState = state
}
