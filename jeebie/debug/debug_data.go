package debug

// CPUState contains all CPU register information for debugging
type CPUState struct {
	A uint8
	F uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	SP     uint16
	PC     uint16
	IME    bool
	Halted bool
	Cycles uint64
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// Contains reports whether address falls inside the snapshot.
func (m *MemorySnapshot) Contains(address uint16) bool {
	return address >= m.StartAddr && int(address-m.StartAddr) < len(m.Bytes)
}

// Read returns the byte at address, or 0xFF outside the snapshot, so that
// the disassembler can decode straight from it.
func (m *MemorySnapshot) Read(address uint16) uint8 {
	if !m.Contains(address) {
		return 0xFF
	}
	return m.Bytes[address-m.StartAddr]
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerStepInstruction:
		return "STEP"
	case DebuggerStepFrame:
		return "FRAME"
	}
	return "RUNNING"
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	OAM             *OAMData
	CPU             *CPUState
	Memory          *MemorySnapshot
	DebuggerState   DebuggerState
	InterruptEnable uint8 // IE register at 0xFFFF
	InterruptFlags  uint8 // IF register at 0xFF0F
	LCDMode         string
	Frames          uint64
}
