package cpu

import "fmt"

// operand is where an instruction reads from or writes to. Operands are
// resolved when the opcode tables are built, handlers only switch on them.
type operand uint8

const (
	none operand = iota

	// 8 bit registers
	regA
	regB
	regC
	regD
	regE
	regH
	regL

	// 16 bit registers
	regAF
	regBC
	regDE
	regHL
	regSP

	// immediates following the opcode
	imm8
	imm16
	simm8

	// memory addressed through a register or an immediate
	indBC
	indDE
	indHL
	indHLI // (HL+)
	indHLD // (HL-)
	indImm16
	indHighImm8 // (0xFF00+n)
	indHighC    // (0xFF00+C)

	// branch conditions
	condNZ
	condZ
	condNC
	condC
)

var operandNames = [...]string{
	none:        "",
	regA:        "A",
	regB:        "B",
	regC:        "C",
	regD:        "D",
	regE:        "E",
	regH:        "H",
	regL:        "L",
	regAF:       "AF",
	regBC:       "BC",
	regDE:       "DE",
	regHL:       "HL",
	regSP:       "SP",
	imm8:        "d8",
	imm16:       "d16",
	simm8:       "r8",
	indBC:       "(BC)",
	indDE:       "(DE)",
	indHL:       "(HL)",
	indHLI:      "(HL+)",
	indHLD:      "(HL-)",
	indImm16:    "(a16)",
	indHighImm8: "(a8)",
	indHighC:    "(C)",
	condNZ:      "NZ",
	condZ:       "Z",
	condNC:      "NC",
	condC:       "C",
}

func (o operand) String() string {
	if int(o) < len(operandNames) {
		return operandNames[o]
	}
	return fmt.Sprintf("operand(%d)", uint8(o))
}

// size is the number of bytes the operand consumes after the opcode.
func (o operand) size() int {
	switch o {
	case imm8, simm8, indHighImm8:
		return 1
	case imm16, indImm16:
		return 2
	}
	return 0
}

// fetch reads the byte at PC and advances it. After a HALT bug the first
// fetch leaves PC in place, so the same byte is read twice.
func (c *CPU) fetch() uint8 {
	value := c.bus.Read(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch()
	high := c.fetch()
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) read8(o operand) uint8 {
	switch o {
	case regA:
		return c.A
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		return c.H
	case regL:
		return c.L
	case imm8:
		return c.fetch()
	case indBC:
		return c.bus.Read(c.BC())
	case indDE:
		return c.bus.Read(c.DE())
	case indHL:
		return c.bus.Read(c.HL())
	case indHLI:
		hl := c.HL()
		c.SetHL(hl + 1)
		return c.bus.Read(hl)
	case indHLD:
		hl := c.HL()
		c.SetHL(hl - 1)
		return c.bus.Read(hl)
	case indImm16:
		return c.bus.Read(c.fetch16())
	case indHighImm8:
		return c.bus.Read(0xFF00 | uint16(c.fetch()))
	case indHighC:
		return c.bus.Read(0xFF00 | uint16(c.C))
	}
	panic(fmt.Sprintf("cpu: %s is not an 8 bit source", o))
}

func (c *CPU) write8(o operand, value uint8) {
	switch o {
	case regA:
		c.A = value
	case regB:
		c.B = value
	case regC:
		c.C = value
	case regD:
		c.D = value
	case regE:
		c.E = value
	case regH:
		c.H = value
	case regL:
		c.L = value
	case indBC:
		c.bus.Write(c.BC(), value)
	case indDE:
		c.bus.Write(c.DE(), value)
	case indHL:
		c.bus.Write(c.HL(), value)
	case indHLI:
		hl := c.HL()
		c.SetHL(hl + 1)
		c.bus.Write(hl, value)
	case indHLD:
		hl := c.HL()
		c.SetHL(hl - 1)
		c.bus.Write(hl, value)
	case indImm16:
		c.bus.Write(c.fetch16(), value)
	case indHighImm8:
		c.bus.Write(0xFF00|uint16(c.fetch()), value)
	case indHighC:
		c.bus.Write(0xFF00|uint16(c.C), value)
	default:
		panic(fmt.Sprintf("cpu: %s is not an 8 bit destination", o))
	}
}

func (c *CPU) read16(o operand) uint16 {
	switch o {
	case regAF:
		return c.AF()
	case regBC:
		return c.BC()
	case regDE:
		return c.DE()
	case regHL:
		return c.HL()
	case regSP:
		return c.SP
	case imm16:
		return c.fetch16()
	}
	panic(fmt.Sprintf("cpu: %s is not a 16 bit source", o))
}

func (c *CPU) write16(o operand, value uint16) {
	switch o {
	case regAF:
		c.SetAF(value)
	case regBC:
		c.SetBC(value)
	case regDE:
		c.SetDE(value)
	case regHL:
		c.SetHL(value)
	case regSP:
		c.SP = value
	case indImm16:
		address := c.fetch16()
		c.bus.Write(address, uint8(value))
		c.bus.Write(address+1, uint8(value>>8))
	default:
		panic(fmt.Sprintf("cpu: %s is not a 16 bit destination", o))
	}
}

// condition reports whether a branch on o is taken. none is unconditional.
func (c *CPU) condition(o operand) bool {
	switch o {
	case none:
		return true
	case condNZ:
		return !c.F.Z
	case condZ:
		return c.F.Z
	case condNC:
		return !c.F.C
	case condC:
		return c.F.C
	}
	panic(fmt.Sprintf("cpu: %s is not a condition", o))
}
