package cpu

import (
	"fmt"
	"strings"
)

// Reader is the read side of the bus.
type Reader interface {
	Read(address uint16) uint8
}

// Disassemble decodes the instruction at pc and returns its text along
// with its length in bytes. Immediates are shown in hex, relative jumps as
// their target address.
func Disassemble(mem Reader, pc uint16) (string, int) {
	opcode := mem.Read(pc)
	if opcode == 0xCB {
		return cbOpcodes[mem.Read(pc+1)].mnemonic, 2
	}

	in := &opcodes[opcode]
	length := 1 + in.dst.size() + in.src.size()
	text := in.mnemonic

	switch length {
	case 2:
		n := mem.Read(pc + 1)
		switch {
		case strings.HasPrefix(text, "JR"):
			target := pc + 2 + uint16(int8(n))
			text = strings.Replace(text, "r8", fmt.Sprintf("$%04X", target), 1)
		case strings.Contains(text, "+r8"):
			text = strings.Replace(text, "+r8", fmt.Sprintf("%+d", int8(n)), 1)
		case strings.Contains(text, "r8"):
			text = strings.Replace(text, "r8", fmt.Sprintf("%d", int8(n)), 1)
		case strings.Contains(text, "a8"):
			text = strings.Replace(text, "a8", fmt.Sprintf("$FF%02X", n), 1)
		default:
			text = strings.Replace(text, "d8", fmt.Sprintf("$%02X", n), 1)
		}
	case 3:
		nn := uint16(mem.Read(pc+2))<<8 | uint16(mem.Read(pc+1))
		text = strings.NewReplacer("d16", fmt.Sprintf("$%04X", nn), "a16", fmt.Sprintf("$%04X", nn)).Replace(text)
	}

	return text, length
}
