// Package audio holds the sound register block. Nothing is synthesised:
// registers are stored so games can read back what they wrote.
package audio

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
)

// APU is a register store for NR10-NR52.
type APU struct {
	regs [addr.AudioEnd - addr.AudioStart + 1]uint8
}

// New returns an APU with the register values left by the boot ROM.
func New() *APU {
	a := &APU{}
	for reg, value := range postBoot {
		a.Write(reg, value)
	}
	return a
}

var postBoot = map[uint16]uint8{
	addr.NR10: 0x80,
	addr.NR11: 0xBF,
	addr.NR12: 0xF3,
	addr.NR14: 0xBF,
	addr.NR21: 0x3F,
	addr.NR22: 0x00,
	addr.NR24: 0xBF,
	addr.NR30: 0x7F,
	addr.NR31: 0xFF,
	addr.NR32: 0x9F,
	addr.NR34: 0xBF,
	addr.NR41: 0xFF,
	addr.NR42: 0x00,
	addr.NR43: 0x00,
	addr.NR44: 0xBF,
	addr.NR50: 0x77,
	addr.NR51: 0xF3,
	addr.NR52: 0xF1,
}

func (a *APU) Read(address uint16) uint8 {
	if address < addr.AudioStart || address > addr.AudioEnd {
		return 0xFF
	}
	return a.regs[address-addr.AudioStart]
}

func (a *APU) Write(address uint16, value uint8) {
	if address < addr.AudioStart || address > addr.AudioEnd {
		return
	}
	a.regs[address-addr.AudioStart] = value
}

// Enabled reports the NR52 master power bit.
func (a *APU) Enabled() bool {
	return a.Read(addr.NR52)&0x80 != 0
}
