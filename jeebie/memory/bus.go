package memory

import (
	"log/slog"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/audio"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
	"github.com/valerio/jeebie-core/jeebie/serial"
	"github.com/valerio/jeebie-core/jeebie/video"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
)

// SerialPort is the minimal interface for a serial device connected to SB/SC.
// Implementations only receive reads/writes to addr.SB and addr.SC.
type SerialPort interface {
	Write(address uint16, value byte)
	Read(address uint16) byte
	Tick(cycles int, irq interrupt.Requester)
	Reset()
}

// Bus routes every CPU memory access to the component that owns the address,
// and owns all of those components.
type Bus struct {
	mbc       MBC
	wram      [0x2000]uint8
	hram      [0x80]uint8
	regionMap [256]memRegion

	interrupts interrupt.Controller
	timer      Timer
	gpu        *video.GPU
	joypad     *Joypad
	serial     SerialPort
	apu        *audio.APU
}

// New creates a bus with nothing in the cartridge slot. ROM and external RAM
// read as 0xFF.
func New() *Bus {
	return NewWithMBC(nil)
}

// NewWithMBC creates a bus with the given cartridge controller, with all
// I/O registers set to the values the boot ROM leaves behind.
func NewWithMBC(mbc MBC) *Bus {
	b := &Bus{
		mbc:    mbc,
		gpu:    video.NewGPU(),
		joypad: NewJoypad(),
		serial: serial.NewLogSink(),
		apu:    audio.New(),
	}
	initRegionMap(b)
	b.postBoot()
	return b
}

func initRegionMap(b *Bus) {
	// ROM: 0x0000-0x7FFF
	for i := 0x00; i <= 0x7F; i++ {
		b.regionMap[i] = regionROM
	}
	// VRAM: 0x8000-0x9FFF
	for i := 0x80; i <= 0x9F; i++ {
		b.regionMap[i] = regionVRAM
	}
	// External RAM: 0xA000-0xBFFF
	for i := 0xA0; i <= 0xBF; i++ {
		b.regionMap[i] = regionExtRAM
	}
	// Work RAM: 0xC000-0xDFFF
	for i := 0xC0; i <= 0xDF; i++ {
		b.regionMap[i] = regionWRAM
	}
	// Echo RAM: 0xE000-0xFDFF
	for i := 0xE0; i <= 0xFD; i++ {
		b.regionMap[i] = regionEcho
	}
	// OAM: 0xFE00-0xFE9F, Unusable: 0xFEA0-0xFEFF
	b.regionMap[0xFE] = regionOAM
	// IO + HRAM: 0xFF00-0xFFFF
	b.regionMap[0xFF] = regionIO
}

func (b *Bus) postBoot() {
	b.timer.SetSeed(PostBootDivider)
	b.interrupts.Write(addr.IF, 0xE1)
	b.Write(addr.BGP, 0xFC)
	b.Write(addr.OBP0, 0xFF)
	b.Write(addr.OBP1, 0xFF)
	b.Write(addr.LCDC, 0x91)
}

// SetSerial replaces the device attached to the serial port.
func (b *Bus) SetSerial(port SerialPort) {
	b.serial = port
}

// Tick advances every clocked device by the given number of M-cycles, in
// the order timer, PPU, serial.
func (b *Bus) Tick(cycles int) {
	b.timer.Tick(cycles, &b.interrupts)
	b.gpu.Tick(cycles*4, &b.interrupts)
	b.serial.Tick(cycles, &b.interrupts)
}

// RequestInterrupt sets the interrupt flag (IF register) of the chosen interrupt to 1.
func (b *Bus) RequestInterrupt(i addr.Interrupt) {
	b.interrupts.Request(i)
}

// Press marks the given joypad keys as held, requesting the joypad
// interrupt if any of them was released before.
func (b *Bus) Press(keys JoypadKey) {
	if b.joypad.Press(keys) {
		b.interrupts.Request(addr.JoypadInterrupt)
	}
}

func (b *Bus) Release(keys JoypadKey) {
	b.joypad.Release(keys)
}

func (b *Bus) Interrupts() *interrupt.Controller { return &b.interrupts }
func (b *Bus) Timer() *Timer                     { return &b.timer }
func (b *Bus) GPU() *video.GPU                   { return b.gpu }
func (b *Bus) Joypad() *Joypad                   { return b.joypad }
func (b *Bus) Serial() SerialPort                { return b.serial }
func (b *Bus) APU() *audio.APU                   { return b.apu }
func (b *Bus) MBC() MBC                          { return b.mbc }

func (b *Bus) Read(address uint16) byte {
	switch b.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if b.mbc == nil {
			return 0xFF
		}
		return b.mbc.Read(address)
	case regionVRAM:
		return b.gpu.ReadVRAM(address)
	case regionWRAM:
		return b.wram[address-addr.WRAMStart]
	case regionEcho:
		return b.wram[address-addr.EchoStart]
	case regionOAM:
		if address <= addr.OAMEnd {
			return b.gpu.ReadOAM(address)
		}
		return 0x00
	}
	return b.readIO(address)
}

func (b *Bus) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		return b.joypad.Read()
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address >= addr.DIV && address <= addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF || address == addr.IE:
		return b.interrupts.Read(address)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return b.apu.Read(address)
	case address >= addr.LCDC && address <= addr.WX,
		address >= addr.BCPS && address <= addr.OCPD:
		return b.gpu.Read(address)
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		return b.hram[address-addr.HRAMStart]
	}
	return 0xFF
}

func (b *Bus) Write(address uint16, value byte) {
	switch b.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if b.mbc == nil {
			slog.Debug("Write with no cartridge", "addr", address, "value", value)
			return
		}
		b.mbc.Write(address, value)
	case regionVRAM:
		b.gpu.WriteVRAM(address, value)
	case regionWRAM:
		b.wram[address-addr.WRAMStart] = value
	case regionEcho:
		b.wram[address-addr.EchoStart] = value
	case regionOAM:
		if address <= addr.OAMEnd {
			b.gpu.WriteOAM(address, value)
		}
	case regionIO:
		b.writeIO(address, value)
	}
}

func (b *Bus) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		b.joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value)
	case address >= addr.DIV && address <= addr.TAC:
		b.timer.Write(address, value)
	case address == addr.IF || address == addr.IE:
		b.interrupts.Write(address, value)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		b.apu.Write(address, value)
	case address >= addr.LCDC && address <= addr.WX,
		address >= addr.BCPS && address <= addr.OCPD:
		b.gpu.Write(address, value)
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		b.hram[address-addr.HRAMStart] = value
	}
}
