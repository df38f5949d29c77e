package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nops returns a snapshot of n NOPs starting at start.
func nops(start uint16, n int) *MemorySnapshot {
	return &MemorySnapshot{StartAddr: start, Bytes: make([]byte, n)}
}

func TestMemorySnapshotRead(t *testing.T) {
	snap := &MemorySnapshot{StartAddr: 0x0100, Bytes: []byte{0x11, 0x22}}

	assert.True(t, snap.Contains(0x0101))
	assert.False(t, snap.Contains(0x0102))
	assert.False(t, snap.Contains(0x00FF))
	assert.Equal(t, uint8(0x22), snap.Read(0x0101))
	assert.Equal(t, uint8(0xFF), snap.Read(0x0102))
}

func TestCreateDisassemblyCentersOnPC(t *testing.T) {
	snap := nops(0x0100, 100)

	lines := CreateDisassembly(snap, 0x0120, 9)

	require.Len(t, lines, 9)
	assert.Equal(t, uint16(0x011C), lines[0].Address)
	assert.Equal(t, uint16(0x0120), lines[4].Address)
	assert.True(t, lines[4].IsCurrent)
	for i, line := range lines {
		if i != 4 {
			assert.False(t, line.IsCurrent)
		}
		assert.Equal(t, "NOP", line.Instruction)
	}
}

func TestCreateDisassemblyAtSnapshotEdges(t *testing.T) {
	snap := nops(0x0100, 20)

	lines := CreateDisassembly(snap, 0x0100, 9)
	require.Len(t, lines, 9)
	assert.True(t, lines[0].IsCurrent, "window clamps at the start")

	lines = CreateDisassembly(snap, 0x0113, 9)
	require.Len(t, lines, 9)
	assert.True(t, lines[8].IsCurrent, "window clamps at the end")
}

func TestCreateDisassemblyMixedLengths(t *testing.T) {
	// LD BC,$1234; LD A,$01; NOP; JP $0150
	snap := &MemorySnapshot{
		StartAddr: 0x0100,
		Bytes:     []byte{0x01, 0x34, 0x12, 0x3E, 0x01, 0x00, 0xC3, 0x50, 0x01},
	}

	lines := CreateDisassembly(snap, 0x0105, 10)

	require.Len(t, lines, 4)
	assert.Equal(t, "LD BC,$1234", lines[0].Instruction)
	assert.Equal(t, "LD A,$01", lines[1].Instruction)
	assert.Equal(t, uint16(0x0105), lines[2].Address)
	assert.True(t, lines[2].IsCurrent)
	assert.Equal(t, "JP $0150", lines[3].Instruction)
}

func TestCreateDisassemblyPCOutsideSnapshot(t *testing.T) {
	snap := nops(0x0100, 4)

	lines := CreateDisassembly(snap, 0x8000, 9)

	require.Len(t, lines, 5)
	last := lines[len(lines)-1]
	assert.True(t, last.IsCurrent)
	assert.Equal(t, uint16(0x8000), last.Address)
	assert.Equal(t, "[PC outside snapshot range]", last.Instruction)
}

func TestCreateDisassemblyNilSnapshot(t *testing.T) {
	assert.Nil(t, CreateDisassembly(nil, 0x0100, 9))
}

func TestCreateDisassemblyReusesBuffer(t *testing.T) {
	buf := NewDisasmBuffer(5)
	snap := nops(0x0100, 50)

	first := CreateDisassemblyWithBuffer(snap, 0x0110, 5, buf)
	require.Len(t, first, 5)
	second := CreateDisassemblyWithBuffer(snap, 0x0120, 5, buf)
	require.Len(t, second, 5)
	assert.Equal(t, uint16(0x0120), second[2].Address)
}

func TestCreateDisassemblyRelativeJumps(t *testing.T) {
	// NOP; JR -3; LD A (operand cut off)
	snap := &MemorySnapshot{StartAddr: 0x0200, Bytes: []byte{0x00, 0x18, 0xFD, 0x3E}}

	lines := CreateDisassembly(snap, 0x0201, 9)

	require.Len(t, lines, 3)
	assert.Equal(t, "JR $0200", lines[1].Instruction)
	assert.Equal(t, "LD A,$FF (truncated)", lines[2].Instruction)
}
