package cpu

import (
	"fmt"

	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

// Bus provides the interface for component communication
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	Interrupts() *interrupt.Controller
}

// CPU is the main struct holding the Sharp LR35902 state
type CPU struct {
	Registers

	ime     bool
	eiDelay int // instructions left before a pending EI sets IME
	halted  bool
	haltBug bool

	cycles uint64

	bus Bus
}

// New returns a CPU with the registers left by the DMG boot ROM.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.SetAF(0x01B0)
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	return c
}

// Step executes a single instruction, or services an interrupt, and
// returns the M-cycles it took. It does not advance any other component.
func (c *CPU) Step() int {
	irq := c.bus.Interrupts()

	if c.halted {
		if irq.Has() {
			c.halted = false
		}
		c.cycles++
		return 1
	}

	if c.ime && irq.Has() {
		vector, _ := irq.Service()
		c.push(c.PC)
		c.PC = vector
		c.ime = false
		c.cycles++
		return 1
	}

	in := &opcodes[c.fetch()]
	if in.exec == nil {
		in = &cbOpcodes[c.fetch()]
	}
	cycles := in.cycles + in.exec(c, in)

	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.ime = true
		}
	}

	c.cycles += uint64(cycles)
	return cycles
}

func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// IME reports the interrupt master enable flag.
func (c *CPU) IME() bool { return c.ime }

func (c *CPU) Halted() bool { return c.halted }

// Cycles returns the total M-cycles executed so far.
func (c *CPU) Cycles() uint64 { return c.cycles }

func (c *CPU) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X %s IME=%t",
		c.AF(), c.BC(), c.DE(), c.HL(), c.SP, c.PC, c.F, c.ime)
}
