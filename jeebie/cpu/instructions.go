package cpu

import (
	"fmt"

	"github.com/valerio/jeebie-core/jeebie/addr"
)

// Every handler returns the extra cycles spent on top of the base count
// declared in the table, which is non zero only for taken branches.

func (c *CPU) nop(*instruction) int { return 0 }

func (c *CPU) illegal(*instruction) int {
	opcode := c.bus.Read(c.PC - 1)
	panic(fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", opcode, c.PC-1))
}

// stop skips its padding byte and resets the divider. Low power mode
// itself is not emulated.
func (c *CPU) stop(in *instruction) int {
	c.read8(in.src)
	c.bus.Write(addr.DIV, 0)
	return 0
}

func (c *CPU) halt(*instruction) int {
	if !c.ime && c.bus.Interrupts().Has() {
		c.haltBug = true
		return 0
	}
	c.halted = true
	return 0
}

func (c *CPU) di(*instruction) int {
	c.ime = false
	c.eiDelay = 0
	return 0
}

func (c *CPU) ei(*instruction) int {
	if !c.ime && c.eiDelay == 0 {
		// counts down at the end of this step and of the next one
		c.eiDelay = 2
	}
	return 0
}

// loads

func (c *CPU) ld8(in *instruction) int {
	c.write8(in.dst, c.read8(in.src))
	return 0
}

func (c *CPU) ld16(in *instruction) int {
	c.write16(in.dst, c.read16(in.src))
	return 0
}

// ldHLSP is LD HL,SP+r8.
func (c *CPU) ldHLSP(in *instruction) int {
	c.SetHL(c.offsetSP())
	return 0
}

func (c *CPU) push16(in *instruction) int {
	c.push(c.read16(in.src))
	return 0
}

func (c *CPU) pop16(in *instruction) int {
	c.write16(in.dst, c.pop())
	return 0
}

// 8 bit arithmetic

func (c *CPU) inc8(in *instruction) int {
	value := c.read8(in.dst)
	result := value + 1
	c.write8(in.dst, result)

	c.F.Z = result == 0
	c.F.N = false
	c.F.H = value&0x0F == 0x0F
	return 0
}

func (c *CPU) dec8(in *instruction) int {
	value := c.read8(in.dst)
	result := value - 1
	c.write8(in.dst, result)

	c.F.Z = result == 0
	c.F.N = true
	c.F.H = value&0x0F == 0
	return 0
}

func (c *CPU) addWithCarry(value uint8, carry bool) {
	a := c.A
	sum := uint16(a) + uint16(value)
	if carry {
		sum++
	}
	result := uint8(sum)

	c.F.Z = result == 0
	c.F.N = false
	c.F.H = (a^value^result)&0x10 != 0
	c.F.C = sum > 0xFF
	c.A = result
}

func (c *CPU) subWithCarry(value uint8, carry bool) uint8 {
	a := c.A
	diff := int(a) - int(value)
	if carry {
		diff--
	}
	result := uint8(diff)

	c.F.Z = result == 0
	c.F.N = true
	c.F.H = (a^value^result)&0x10 != 0
	c.F.C = diff < 0
	return result
}

func (c *CPU) add(in *instruction) int {
	c.addWithCarry(c.read8(in.src), false)
	return 0
}

func (c *CPU) adc(in *instruction) int {
	c.addWithCarry(c.read8(in.src), c.F.C)
	return 0
}

func (c *CPU) sub(in *instruction) int {
	c.A = c.subWithCarry(c.read8(in.src), false)
	return 0
}

func (c *CPU) sbc(in *instruction) int {
	c.A = c.subWithCarry(c.read8(in.src), c.F.C)
	return 0
}

// cp is a subtraction that only keeps the flags.
func (c *CPU) cp(in *instruction) int {
	c.subWithCarry(c.read8(in.src), false)
	return 0
}

func (c *CPU) and(in *instruction) int {
	c.A &= c.read8(in.src)
	c.F = Flags{Z: c.A == 0, H: true}
	return 0
}

func (c *CPU) xor(in *instruction) int {
	c.A ^= c.read8(in.src)
	c.F = Flags{Z: c.A == 0}
	return 0
}

func (c *CPU) or(in *instruction) int {
	c.A |= c.read8(in.src)
	c.F = Flags{Z: c.A == 0}
	return 0
}

// daa adjusts A to packed BCD after an addition or subtraction.
func (c *CPU) daa(*instruction) int {
	a := c.A
	var adjust uint8
	carry := c.F.C

	if c.F.H || (!c.F.N && a&0x0F > 0x09) {
		adjust |= 0x06
	}
	if c.F.C || (!c.F.N && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.F.N {
		a -= adjust
	} else {
		a += adjust
	}

	c.A = a
	c.F.Z = a == 0
	c.F.H = false
	c.F.C = carry
	return 0
}

func (c *CPU) cpl(*instruction) int {
	c.A = ^c.A
	c.F.N = true
	c.F.H = true
	return 0
}

func (c *CPU) scf(*instruction) int {
	c.F.N = false
	c.F.H = false
	c.F.C = true
	return 0
}

func (c *CPU) ccf(*instruction) int {
	c.F.N = false
	c.F.H = false
	c.F.C = !c.F.C
	return 0
}

// 16 bit arithmetic

func (c *CPU) inc16(in *instruction) int {
	c.write16(in.dst, c.read16(in.dst)+1)
	return 0
}

func (c *CPU) dec16(in *instruction) int {
	c.write16(in.dst, c.read16(in.dst)-1)
	return 0
}

func (c *CPU) addHL(in *instruction) int {
	hl := c.HL()
	value := c.read16(in.src)
	sum := uint32(hl) + uint32(value)
	result := uint16(sum)

	c.F.N = false
	c.F.H = (hl^value^result)&0x1000 != 0
	c.F.C = sum > 0xFFFF
	c.SetHL(result)
	return 0
}

func (c *CPU) addSP(*instruction) int {
	c.SP = c.offsetSP()
	return 0
}

// offsetSP computes SP plus a signed immediate, with the flags of an 8 bit
// addition on the low byte.
func (c *CPU) offsetSP() uint16 {
	offset := c.fetch()
	sp := c.SP

	c.F.Z = false
	c.F.N = false
	c.F.H = (sp&0x0F)+uint16(offset&0x0F) > 0x0F
	c.F.C = (sp&0xFF)+uint16(offset) > 0xFF
	return sp + uint16(int8(offset))
}

// rotates on A always clear Z

func (c *CPU) rlca(*instruction) int {
	c.A = c.rotateLeftCircular(c.A)
	c.F.Z = false
	return 0
}

func (c *CPU) rla(*instruction) int {
	c.A = c.rotateLeft(c.A)
	c.F.Z = false
	return 0
}

func (c *CPU) rrca(*instruction) int {
	c.A = c.rotateRightCircular(c.A)
	c.F.Z = false
	return 0
}

func (c *CPU) rra(*instruction) int {
	c.A = c.rotateRight(c.A)
	c.F.Z = false
	return 0
}

// control flow

func (c *CPU) jr(in *instruction) int {
	offset := int8(c.fetch())
	if !c.condition(in.dst) {
		return 0
	}
	c.PC += uint16(offset)
	return in.taken
}

func (c *CPU) jp(in *instruction) int {
	target := c.read16(in.src)
	if !c.condition(in.dst) {
		return 0
	}
	c.PC = target
	return in.taken
}

func (c *CPU) call(in *instruction) int {
	target := c.fetch16()
	if !c.condition(in.dst) {
		return 0
	}
	c.push(c.PC)
	c.PC = target
	return in.taken
}

func (c *CPU) ret(in *instruction) int {
	if !c.condition(in.dst) {
		return 0
	}
	c.PC = c.pop()
	return in.taken
}

func (c *CPU) reti(*instruction) int {
	c.PC = c.pop()
	c.ime = true
	return 0
}

func (c *CPU) rst(in *instruction) int {
	c.push(c.PC)
	c.PC = uint16(in.arg)
	return 0
}
