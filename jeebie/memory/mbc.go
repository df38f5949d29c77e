package memory

import (
	"fmt"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
	mbc2RAMSize = 0x200
)

// MBC represents a Memory Bank Controller interface that all MBC types must implement.
// Reads cover 0x0000-0x7FFF and 0xA000-0xBFFF, writes to the ROM window are
// bank-select commands.
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// BatteryBacked is implemented by controllers whose external RAM can be persisted.
type BatteryBacked interface {
	HasBattery() bool
	RAM() []byte
	LoadRAM(data []byte)
}

// NewMBC selects the controller declared by the header. It is called once per
// cartridge load; unsupported controllers are rejected here.
func NewMBC(rom []byte, header *Header) (MBC, error) {
	data := normalizeROM(rom, header.ROMBanks)
	battery := header.Type.HasBattery

	switch header.Type.Kind {
	case KindNone:
		return NewNoMBC(data, header.RAMSize, battery), nil
	case KindMBC1:
		return NewMBC1(data, header.RAMSize, battery), nil
	case KindMBC2:
		return NewMBC2(data, battery), nil
	case KindMBC3:
		return NewMBC3(data, header.RAMSize, battery, header.Type.HasTimer), nil
	case KindMBC5:
		return NewMBC5(data, header.RAMSize, battery, header.Type.HasRumble), nil
	}
	return nil, fmt.Errorf("%w: %s (0x%02X)", ErrUnsupportedCartridge, header.Type.Kind, header.Type.Code)
}

// normalizeROM sizes the image to the number of banks the header declares,
// padding missing data with 0xFF.
func normalizeROM(rom []byte, banks int) []byte {
	if banks < 2 {
		banks = 2
	}
	size := banks * romBankSize
	if len(rom) == size {
		return rom
	}
	data := make([]byte, size)
	n := copy(data, rom)
	for i := n; i < size; i++ {
		data[i] = 0xFF
	}
	return data
}

// bankedROM resolves bank numbers against the available ROM banks.
type bankedROM struct {
	data  []byte
	banks int
	mask  int
}

func newBankedROM(data []byte) bankedROM {
	banks := len(data) / romBankSize
	if banks == 0 {
		banks = 1
	}
	return bankedROM{data: data, banks: banks, mask: maskFor(banks)}
}

func (r *bankedROM) read(bank int, address uint16) uint8 {
	bank = (bank & r.mask) % r.banks
	offset := bank*romBankSize + int(address&0x3FFF)
	if offset >= len(r.data) {
		return 0xFF
	}
	return r.data[offset]
}

// bankedRAM is external cartridge RAM split in 8KiB banks.
type bankedRAM struct {
	data []byte
	mask int
}

func newBankedRAM(size int) bankedRAM {
	banks := size / ramBankSize
	if size > 0 && banks == 0 {
		banks = 1
	}
	return bankedRAM{data: make([]byte, size), mask: maskFor(banks)}
}

func (r *bankedRAM) offset(bank int, address uint16) int {
	return ((bank&r.mask)*ramBankSize + int(address-0xA000)) % len(r.data)
}

func (r *bankedRAM) read(bank int, address uint16) uint8 {
	if len(r.data) == 0 {
		return 0xFF
	}
	return r.data[r.offset(bank, address)]
}

func (r *bankedRAM) write(bank int, address uint16, value uint8) {
	if len(r.data) == 0 {
		return
	}
	r.data[r.offset(bank, address)] = value
}

func (r *bankedRAM) load(data []byte) {
	copy(r.data, data)
}

// maskFor returns the smallest all-ones mask covering n banks.
func maskFor(n int) int {
	mask := 0
	for mask+1 < n {
		mask = mask<<1 | 1
	}
	return mask
}

// NoMBC represents cartridges with no memory banking capabilities.
// The first 32KiB of ROM are mapped directly to 0x0000-0x7FFF. A few of these
// carry a single unbanked RAM chip at 0xA000-0xBFFF.
type NoMBC struct {
	rom        []uint8
	ram        bankedRAM
	hasBattery bool
}

func NewNoMBC(romData []uint8, ramSize int, hasBattery bool) *NoMBC {
	return &NoMBC{
		rom:        normalizeROM(romData, 2),
		ram:        newBankedRAM(ramSize),
		hasBattery: hasBattery,
	}
}

func (m *NoMBC) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x7FFF:
		return m.rom[addr]
	case addr >= 0xA000 && addr <= 0xBFFF:
		return m.ram.read(0, addr)
	}
	return 0xFF
}

func (m *NoMBC) Write(addr uint16, value uint8) {
	if addr >= 0xA000 && addr <= 0xBFFF {
		m.ram.write(0, addr, value)
	}
}

func (m *NoMBC) HasBattery() bool    { return m.hasBattery }
func (m *NoMBC) RAM() []byte         { return m.ram.data }
func (m *NoMBC) LoadRAM(data []byte) { m.ram.load(data) }

// MBC1 is the first and most common MBC chip.
//
//   - 0x0000-0x1FFF: RAM enable, 0x0A in the low nibble enables
//   - 0x2000-0x3FFF: 5 bit primary ROM bank, 0 selects 1
//   - 0x4000-0x5FFF: 2 bit secondary register
//   - 0x6000-0x7FFF: banking mode (0 simple, 1 advanced)
//
// The secondary register always supplies ROM bank bits 5-6 for the switchable
// window. In advanced mode it also banks the 0x0000-0x3FFF window and selects
// the RAM bank; in simple mode RAM bank 0 is always used.
type MBC1 struct {
	rom        bankedROM
	ram        bankedRAM
	primary    uint8
	secondary  uint8
	advanced   bool
	ramEnabled bool
	hasBattery bool
}

func NewMBC1(romData []uint8, ramSize int, hasBattery bool) *MBC1 {
	return &MBC1{
		rom:        newBankedROM(romData),
		ram:        newBankedRAM(ramSize),
		primary:    1,
		hasBattery: hasBattery,
	}
}

// ROMBank is the bank currently mapped at 0x4000-0x7FFF.
func (m *MBC1) ROMBank() int {
	bank := int(m.primary) | int(m.secondary)<<5
	return (bank & m.rom.mask) % m.rom.banks
}

func (m *MBC1) ramBank() int {
	if !m.advanced {
		return 0
	}
	return int(m.secondary)
}

func (m *MBC1) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		bank := 0
		if m.advanced {
			bank = int(m.secondary) << 5
		}
		return m.rom.read(bank, addr)
	case addr <= 0x7FFF:
		return m.rom.read(int(m.primary)|int(m.secondary)<<5, addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram.read(m.ramBank(), addr)
	}
	return 0xFF
}

func (m *MBC1) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr <= 0x3FFF:
		m.primary = value & 0x1F
		if m.primary == 0 {
			m.primary = 1
		}
	case addr <= 0x5FFF:
		m.secondary = value & 0x03
	case addr <= 0x7FFF:
		m.advanced = value&0x01 == 1
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled {
			m.ram.write(m.ramBank(), addr, value)
		}
	}
}

func (m *MBC1) HasBattery() bool    { return m.hasBattery }
func (m *MBC1) RAM() []byte         { return m.ram.data }
func (m *MBC1) LoadRAM(data []byte) { m.ram.load(data) }

// MBC2 supports up to 16 ROM banks and has 512 half-bytes of RAM built in.
// Writes to 0x0000-0x3FFF are decoded by address bit 8: clear enables RAM,
// set selects the ROM bank. The RAM window repeats every 0x200 bytes and only
// stores the low nibble.
type MBC2 struct {
	rom        bankedROM
	ram        [mbc2RAMSize]uint8
	romBank    uint8
	ramEnabled bool
	hasBattery bool
}

func NewMBC2(romData []uint8, hasBattery bool) *MBC2 {
	return &MBC2{
		rom:        newBankedROM(romData),
		romBank:    1,
		hasBattery: hasBattery,
	}
}

func (m *MBC2) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom.read(0, addr)
	case addr <= 0x7FFF:
		return m.rom.read(int(m.romBank), addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram[(addr-0xA000)%mbc2RAMSize] & 0x0F
	}
	return 0xFF
}

func (m *MBC2) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x3FFF:
		if addr&0x0100 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
			return
		}
		m.romBank = value & 0x0F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled {
			m.ram[(addr-0xA000)%mbc2RAMSize] = value & 0x0F
		}
	}
}

func (m *MBC2) HasBattery() bool    { return m.hasBattery }
func (m *MBC2) RAM() []byte         { return m.ram[:] }
func (m *MBC2) LoadRAM(data []byte) { copy(m.ram[:], data) }

// MBC3 has a 7 bit ROM bank register, up to 4 RAM banks and a real time clock.
// The clock registers (0x08-0x0C) can be selected, written and latched, but
// time does not advance.
type MBC3 struct {
	rom        bankedROM
	ram        bankedRAM
	romBank    uint8
	selected   uint8
	ramEnabled bool
	hasBattery bool
	hasTimer   bool

	rtc         [5]uint8
	rtcLatched  [5]uint8
	latchPrimed bool
}

func NewMBC3(romData []uint8, ramSize int, hasBattery, hasTimer bool) *MBC3 {
	return &MBC3{
		rom:        newBankedROM(romData),
		ram:        newBankedRAM(ramSize),
		romBank:    1,
		hasBattery: hasBattery,
		hasTimer:   hasTimer,
	}
}

func (m *MBC3) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom.read(0, addr)
	case addr <= 0x7FFF:
		return m.rom.read(int(m.romBank), addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.selected <= 0x03 {
			return m.ram.read(int(m.selected), addr)
		}
		return m.rtcLatched[m.selected-0x08]
	}
	return 0xFF
}

func (m *MBC3) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr <= 0x3FFF:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case addr <= 0x5FFF:
		if value <= 0x03 || (value >= 0x08 && value <= 0x0C) {
			m.selected = value
		}
	case addr <= 0x7FFF:
		if m.latchPrimed && value == 0x01 {
			m.rtcLatched = m.rtc
		}
		m.latchPrimed = value == 0x00
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return
		}
		if m.selected <= 0x03 {
			m.ram.write(int(m.selected), addr, value)
			return
		}
		m.rtc[m.selected-0x08] = value
	}
}

func (m *MBC3) HasBattery() bool    { return m.hasBattery }
func (m *MBC3) RAM() []byte         { return m.ram.data }
func (m *MBC3) LoadRAM(data []byte) { m.ram.load(data) }

// MBC5 addresses up to 512 ROM banks and 16 RAM banks. Unlike the older
// controllers, bank 0 can be mapped into the switchable window and RAM is only
// enabled by writing exactly 0x0A.
type MBC5 struct {
	rom        bankedROM
	ram        bankedRAM
	romBank    uint16
	ramBank    uint8
	ramEnabled bool
	hasBattery bool
	hasRumble  bool
}

func NewMBC5(romData []uint8, ramSize int, hasBattery, hasRumble bool) *MBC5 {
	return &MBC5{
		rom:        newBankedROM(romData),
		ram:        newBankedRAM(ramSize),
		romBank:    1,
		hasBattery: hasBattery,
		hasRumble:  hasRumble,
	}
}

func (m *MBC5) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom.read(0, addr)
	case addr <= 0x7FFF:
		return m.rom.read(int(m.romBank), addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram.read(int(m.ramBank), addr)
	}
	return 0xFF
}

func (m *MBC5) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value == 0x0A
	case addr <= 0x2FFF:
		m.romBank = m.romBank&0x100 | uint16(value)
	case addr <= 0x3FFF:
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case addr <= 0x5FFF:
		m.ramBank = value & 0x0F
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled {
			m.ram.write(int(m.ramBank), addr, value)
		}
	}
}

func (m *MBC5) HasBattery() bool    { return m.hasBattery }
func (m *MBC5) RAM() []byte         { return m.ram.data }
func (m *MBC5) LoadRAM(data []byte) { m.ram.load(data) }
