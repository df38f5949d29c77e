// Package disasm formats decoded instructions for debug views and traces.
package disasm

import (
	"fmt"

	"github.com/valerio/jeebie-core/jeebie/cpu"
)

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Instruction string
	Length      int
}

// DisassembleAt disassembles the instruction at the given program counter
func DisassembleAt(pc uint16, mem cpu.Reader) DisassemblyLine {
	text, length := cpu.Disassemble(mem, pc)
	return DisassemblyLine{
		Address:     pc,
		Instruction: text,
		Length:      length,
	}
}

// DisassembleRange disassembles count consecutive instructions from startPC.
// It stops early rather than wrap past the end of the address space.
func DisassembleRange(startPC uint16, count int, mem cpu.Reader) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	pc := int(startPC)

	for len(lines) < count && pc <= 0xFFFF {
		line := DisassembleAt(uint16(pc), mem)
		lines = append(lines, line)
		pc += line.Length
	}

	return lines
}

// FormatDisassemblyLine formats a disassembly line for display
func FormatDisassemblyLine(line DisassemblyLine, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = ">"
	}

	return fmt.Sprintf("%s0x%04X: %s", prefix, line.Address, line.Instruction)
}
