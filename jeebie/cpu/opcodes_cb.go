package cpu

import "fmt"

// cbOpcodes is the table for instructions prefixed by 0xCB. The table is
// fully regular: bits 0-2 select the target, bits 3-5 the operation or bit
// index, bits 6-7 the group.
var cbOpcodes [256]instruction

func init() {
	targets := [8]operand{regB, regC, regD, regE, regH, regL, indHL, regA}
	shifts := [8]struct {
		name string
		exec func(*CPU, *instruction) int
	}{
		{"RLC", (*CPU).rlc},
		{"RRC", (*CPU).rrc},
		{"RL", (*CPU).rl},
		{"RR", (*CPU).rr},
		{"SLA", (*CPU).sla},
		{"SRA", (*CPU).sra},
		{"SWAP", (*CPU).swap},
		{"SRL", (*CPU).srl},
	}

	for i := range cbOpcodes {
		target := targets[i&0x07]
		op := uint8(i>>3) & 0x07

		cycles := 2
		if target == indHL {
			cycles = 4
		}

		in := instruction{dst: target, cycles: cycles, arg: op}
		switch i >> 6 {
		case 0:
			in.mnemonic = fmt.Sprintf("%s %s", shifts[op].name, target)
			in.exec = shifts[op].exec
		case 1:
			in.mnemonic = fmt.Sprintf("BIT %d,%s", op, target)
			in.exec = (*CPU).bit
			if target == indHL {
				in.cycles = 3
			}
		case 2:
			in.mnemonic = fmt.Sprintf("RES %d,%s", op, target)
			in.exec = (*CPU).res
		case 3:
			in.mnemonic = fmt.Sprintf("SET %d,%s", op, target)
			in.exec = (*CPU).set
		}
		cbOpcodes[i] = in
	}
}

func (c *CPU) rotateLeftCircular(value uint8) uint8 {
	result := value<<1 | value>>7
	c.F = Flags{Z: result == 0, C: value&0x80 != 0}
	return result
}

func (c *CPU) rotateLeft(value uint8) uint8 {
	result := value << 1
	if c.F.C {
		result |= 0x01
	}
	c.F = Flags{Z: result == 0, C: value&0x80 != 0}
	return result
}

func (c *CPU) rotateRightCircular(value uint8) uint8 {
	result := value>>1 | value<<7
	c.F = Flags{Z: result == 0, C: value&0x01 != 0}
	return result
}

func (c *CPU) rotateRight(value uint8) uint8 {
	result := value >> 1
	if c.F.C {
		result |= 0x80
	}
	c.F = Flags{Z: result == 0, C: value&0x01 != 0}
	return result
}

// modify applies fn to the instruction target in place.
func (c *CPU) modify(in *instruction, fn func(uint8) uint8) int {
	c.write8(in.dst, fn(c.read8(in.dst)))
	return 0
}

func (c *CPU) rlc(in *instruction) int { return c.modify(in, c.rotateLeftCircular) }
func (c *CPU) rl(in *instruction) int  { return c.modify(in, c.rotateLeft) }
func (c *CPU) rrc(in *instruction) int { return c.modify(in, c.rotateRightCircular) }
func (c *CPU) rr(in *instruction) int  { return c.modify(in, c.rotateRight) }

func (c *CPU) sla(in *instruction) int {
	return c.modify(in, func(value uint8) uint8 {
		result := value << 1
		c.F = Flags{Z: result == 0, C: value&0x80 != 0}
		return result
	})
}

func (c *CPU) sra(in *instruction) int {
	return c.modify(in, func(value uint8) uint8 {
		result := value>>1 | value&0x80
		c.F = Flags{Z: result == 0, C: value&0x01 != 0}
		return result
	})
}

func (c *CPU) srl(in *instruction) int {
	return c.modify(in, func(value uint8) uint8 {
		result := value >> 1
		c.F = Flags{Z: result == 0, C: value&0x01 != 0}
		return result
	})
}

func (c *CPU) swap(in *instruction) int {
	return c.modify(in, func(value uint8) uint8 {
		result := value<<4 | value>>4
		c.F = Flags{Z: result == 0}
		return result
	})
}

func (c *CPU) bit(in *instruction) int {
	value := c.read8(in.dst)
	c.F.Z = value&(1<<in.arg) == 0
	c.F.N = false
	c.F.H = true
	return 0
}

func (c *CPU) res(in *instruction) int {
	c.write8(in.dst, c.read8(in.dst)&^(1<<in.arg))
	return 0
}

func (c *CPU) set(in *instruction) int {
	c.write8(in.dst, c.read8(in.dst)|1<<in.arg)
	return 0
}
