package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		name   string
		pc     uint16
		bytes  []uint8
		want   string
		length int
	}{
		{name: "no operands", pc: 0x0100, bytes: []uint8{0x00}, want: "NOP", length: 1},
		{name: "immediate byte", pc: 0x0100, bytes: []uint8{0x06, 0x42}, want: "LD B,$42", length: 2},
		{name: "absolute jump", pc: 0x0100, bytes: []uint8{0xC3, 0x50, 0x01}, want: "JP $0150", length: 3},
		{name: "relative jump shows target", pc: 0x0100, bytes: []uint8{0x18, 0xFE}, want: "JR $0100", length: 2},
		{name: "conditional relative jump", pc: 0x0200, bytes: []uint8{0x20, 0x10}, want: "JR NZ,$0212", length: 2},
		{name: "high page store", pc: 0x0100, bytes: []uint8{0xE0, 0x44}, want: "LDH ($FF44),A", length: 2},
		{name: "signed stack offset", pc: 0x0100, bytes: []uint8{0xF8, 0xFE}, want: "LD HL,SP-2", length: 2},
		{name: "prefixed", pc: 0x0100, bytes: []uint8{0xCB, 0x7C}, want: "BIT 7,H", length: 2},
		{name: "prefixed on (HL)", pc: 0x0100, bytes: []uint8{0xCB, 0x06}, want: "RLC (HL)", length: 2},
		{name: "stop takes a padding byte", pc: 0x0100, bytes: []uint8{0x10, 0x00}, want: "STOP", length: 2},
		{name: "store stack pointer", pc: 0x0100, bytes: []uint8{0x08, 0x00, 0xC0}, want: "LD ($C000),SP", length: 3},
		{name: "illegal", pc: 0x0100, bytes: []uint8{0xDD}, want: "ILLEGAL", length: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &testBus{}
			copy(bus.mem[tt.pc:], tt.bytes)

			text, length := Disassemble(bus, tt.pc)
			assert.Equal(t, tt.want, text)
			assert.Equal(t, tt.length, length)
		})
	}
}
