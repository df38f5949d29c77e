package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
	"github.com/valerio/jeebie-core/jeebie/video"
)

func newTestBus() *Bus {
	return NewWithMBC(NewMBC1(bankedROMImage(4), 0x2000, false))
}

func TestBusPostBootState(t *testing.T) {
	b := New()

	assert.Equal(t, uint8(0x91), b.Read(addr.LCDC))
	assert.Equal(t, uint8(0xFC), b.Read(addr.BGP))
	assert.Equal(t, uint8(0xFF), b.Read(addr.OBP0))
	assert.Equal(t, uint8(0xFF), b.Read(addr.OBP1))
	assert.Equal(t, uint8(0xAB), b.Read(addr.DIV))
	assert.Equal(t, uint8(0xE1), b.Read(addr.IF))
	assert.Equal(t, uint8(0x00), b.Read(addr.IE))
	assert.Equal(t, uint8(0xCF), b.Read(addr.P1))
	assert.Equal(t, uint8(0xF1), b.Read(addr.NR52))
	assert.Equal(t, video.ModeSearchingOAM, b.GPU().Mode())
}

func TestBusNoCartridge(t *testing.T) {
	b := New()
	assert.Equal(t, uint8(0xFF), b.Read(0x0000))
	assert.Equal(t, uint8(0xFF), b.Read(0x4000))
	assert.Equal(t, uint8(0xFF), b.Read(0xA000))
	b.Write(0x2000, 0x01)
	b.Write(0xA000, 0x01)
	assert.Nil(t, b.MBC())
}

func TestBusRouting(t *testing.T) {
	tests := []struct {
		name    string
		address uint16
		value   uint8
		want    uint8
	}{
		{name: "VRAM start", address: 0x8000, value: 0x12, want: 0x12},
		{name: "VRAM end", address: 0x9FFF, value: 0x34, want: 0x34},
		{name: "WRAM bank 0", address: 0xC000, value: 0x56, want: 0x56},
		{name: "WRAM bank 1", address: 0xDFFF, value: 0x78, want: 0x78},
		{name: "OAM", address: 0xFE00, value: 0x9A, want: 0x9A},
		{name: "OAM end", address: 0xFE9F, value: 0xBC, want: 0xBC},
		{name: "unusable reads zero", address: 0xFEA0, value: 0xFF, want: 0x00},
		{name: "unusable end", address: 0xFEFF, value: 0xFF, want: 0x00},
		{name: "HRAM", address: 0xFF80, value: 0x11, want: 0x11},
		{name: "HRAM end", address: 0xFFFE, value: 0x22, want: 0x22},
		{name: "IE", address: 0xFFFF, value: 0x1F, want: 0x1F},
		{name: "IF top bits", address: 0xFF0F, value: 0x02, want: 0xE2},
		{name: "unmapped I/O", address: 0xFF03, value: 0x12, want: 0xFF},
		{name: "wave RAM is unmapped", address: 0xFF30, value: 0x12, want: 0xFF},
		{name: "above PPU registers", address: 0xFF4C, value: 0x12, want: 0xFF},
		{name: "CGB palette port", address: 0xFF69, value: 0x3C, want: 0x3C},
		{name: "external RAM disabled", address: 0xA000, value: 0x12, want: 0xFF},
		{name: "TMA", address: 0xFF06, value: 0x42, want: 0x42},
		{name: "SCX", address: 0xFF43, value: 0x07, want: 0x07},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBus()
			b.Write(tt.address, tt.value)
			assert.Equal(t, tt.want, b.Read(tt.address))
		})
	}
}

func TestBusEchoRAM(t *testing.T) {
	b := newTestBus()

	b.Write(0xC123, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0xE123))

	b.Write(0xFDFF, 0x24)
	assert.Equal(t, uint8(0x24), b.Read(0xDDFF))
}

func TestBusCartridge(t *testing.T) {
	b := newTestBus()

	assert.Equal(t, uint8(0), b.Read(0x0000))
	assert.Equal(t, uint8(1), b.Read(0x4000))
	b.Write(0x2000, 0x03)
	assert.Equal(t, uint8(3), b.Read(0x4000))

	b.Write(0x0000, 0x0A)
	b.Write(0xA000, 0x99)
	assert.Equal(t, uint8(0x99), b.Read(0xA000))
}

func TestBusTickOrder(t *testing.T) {
	b := New()
	b.Write(addr.DIV, 0)
	b.Write(addr.TAC, 0x05) // enabled, every 16 clocks
	b.Write(addr.IF, 0)

	b.Tick(4)
	assert.Equal(t, uint8(1), b.Read(addr.TIMA))

	b.Tick(video.CyclesPerFrame)
	assert.NotZero(t, b.Read(addr.IF)&uint8(addr.VBlankInterrupt))
	assert.Equal(t, uint64(1), b.GPU().Frames())
}

func TestBusJoypad(t *testing.T) {
	b := New()
	b.Write(addr.IF, 0)
	b.Write(addr.P1, 0x10)

	b.Press(JoypadA)
	assert.Equal(t, uint8(0xDE), b.Read(addr.P1))
	assert.Equal(t, uint8(0xF0), b.Read(addr.IF))

	b.Write(addr.IF, 0)
	b.Press(JoypadA)
	assert.Equal(t, uint8(0xE0), b.Read(addr.IF), "held key does not re-request")

	b.Release(JoypadA)
	assert.Equal(t, uint8(0xDF), b.Read(addr.P1))
}

type recordingSerial struct {
	written []uint8
	ticks   int
}

func (r *recordingSerial) Write(address uint16, value byte) {
	r.written = append(r.written, value)
}
func (r *recordingSerial) Read(address uint16) byte               { return 0x42 }
func (r *recordingSerial) Tick(cycles int, _ interrupt.Requester) { r.ticks += cycles }
func (r *recordingSerial) Reset()                                 {}

func TestBusSerial(t *testing.T) {
	b := New()
	port := &recordingSerial{}
	b.SetSerial(port)

	b.Write(addr.SB, 0x01)
	b.Write(addr.SC, 0x81)
	assert.Equal(t, []uint8{0x01, 0x81}, port.written)
	assert.Equal(t, uint8(0x42), b.Read(addr.SB))

	b.Tick(3)
	assert.Equal(t, 3, port.ticks)
}

func TestBusDMASource(t *testing.T) {
	b := newTestBus()
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(0xC000+i, uint8(i)^0x5A)
	}

	b.Write(addr.DMA, 0xC0)
	gpu := b.GPU()
	require.True(t, gpu.DMAStarted())
	gpu.TransferOAM(b)

	for i := uint16(0); i < 0xA0; i++ {
		assert.Equal(t, uint8(i)^0x5A, b.Read(addr.OAMStart+i))
	}
}
