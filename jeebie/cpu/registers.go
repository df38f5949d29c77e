package cpu

import "github.com/valerio/jeebie-core/jeebie/bit"

// Flags holds the four condition flags kept in the high nibble of F.
type Flags struct {
	Z bool // zero
	N bool // subtract
	H bool // half carry
	C bool // carry
}

const (
	zeroFlag      uint8 = 0x80
	subFlag       uint8 = 0x40
	halfCarryFlag uint8 = 0x20
	carryFlag     uint8 = 0x10
)

// Pack returns the F register value, the low nibble is always zero.
func (f Flags) Pack() uint8 {
	var v uint8
	if f.Z {
		v |= zeroFlag
	}
	if f.N {
		v |= subFlag
	}
	if f.H {
		v |= halfCarryFlag
	}
	if f.C {
		v |= carryFlag
	}
	return v
}

// UnpackFlags decodes an F register value, ignoring the low nibble.
func UnpackFlags(v uint8) Flags {
	return Flags{
		Z: v&zeroFlag != 0,
		N: v&subFlag != 0,
		H: v&halfCarryFlag != 0,
		C: v&carryFlag != 0,
	}
}

func (f Flags) String() string {
	out := []byte("----")
	if f.Z {
		out[0] = 'Z'
	}
	if f.N {
		out[1] = 'N'
	}
	if f.H {
		out[2] = 'H'
	}
	if f.C {
		out[3] = 'C'
	}
	return string(out)
}

// Registers is the register file. The 16 bit pairs are views over the 8
// bit registers.
type Registers struct {
	A, B, C, D, E, H, L uint8
	F                   Flags
	SP, PC              uint16
}

func (r *Registers) AF() uint16 { return bit.Combine(r.A, r.F.Pack()) }
func (r *Registers) BC() uint16 { return bit.Combine(r.B, r.C) }
func (r *Registers) DE() uint16 { return bit.Combine(r.D, r.E) }
func (r *Registers) HL() uint16 { return bit.Combine(r.H, r.L) }

func (r *Registers) SetAF(value uint16) {
	r.A = bit.High(value)
	r.F = UnpackFlags(bit.Low(value))
}

func (r *Registers) SetBC(value uint16) {
	r.B = bit.High(value)
	r.C = bit.Low(value)
}

func (r *Registers) SetDE(value uint16) {
	r.D = bit.High(value)
	r.E = bit.Low(value)
}

func (r *Registers) SetHL(value uint16) {
	r.H = bit.High(value)
	r.L = bit.Low(value)
}
