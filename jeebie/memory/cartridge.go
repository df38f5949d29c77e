package memory

import (
	"errors"
	"fmt"
)

const (
	entryPointAddress       = 0x100
	logoAddress             = 0x104
	titleAddress            = 0x134
	titleEnd                = 0x143
	cgbFlagAddress          = 0x143
	newLicenseCodeAddress   = 0x144
	sgbFlagAddress          = 0x146
	cartridgeTypeAddress    = 0x147
	romSizeAddress          = 0x148
	ramSizeAddress          = 0x149
	destinationCodeAddress  = 0x14A
	oldLicenseCodeAddress   = 0x14B
	versionNumberAddress    = 0x14C
	headerChecksumAddress   = 0x14D
	globalChecksumAddress   = 0x14E
	headerEnd               = 0x150
	headerChecksumRangeFrom = 0x134
	headerChecksumRangeTo   = 0x14C
)

var (
	ErrHeaderTooShort       = errors.New("cartridge header too short")
	ErrUnsupportedCartridge = errors.New("unsupported cartridge type")
	ErrInvalidROMSize       = errors.New("invalid ROM size")
	ErrInvalidRAMSize       = errors.New("invalid RAM size")
	ErrInvalidDestination   = errors.New("invalid destination code")
	ErrInvalidSGBFlag       = errors.New("invalid SGB flag")
)

// MBCKind is the memory bank controller family declared by the cartridge type byte.
type MBCKind uint8

const (
	KindNone MBCKind = iota
	KindMBC1
	KindMBC2
	KindMMM01
	KindMBC3
	KindMBC5
	KindMBC6
	KindMBC7
	KindPocketCamera
	KindTAMA5
	KindHuC3
	KindHuC1
)

func (k MBCKind) String() string {
	switch k {
	case KindNone:
		return "ROM"
	case KindMBC1:
		return "MBC1"
	case KindMBC2:
		return "MBC2"
	case KindMMM01:
		return "MMM01"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	case KindMBC6:
		return "MBC6"
	case KindMBC7:
		return "MBC7"
	case KindPocketCamera:
		return "POCKET CAMERA"
	case KindTAMA5:
		return "TAMA5"
	case KindHuC3:
		return "HuC3"
	case KindHuC1:
		return "HuC1"
	}
	return "UNKNOWN"
}

// CartridgeType is the decoded 0x147 byte.
type CartridgeType struct {
	Code       uint8
	Kind       MBCKind
	HasRAM     bool
	HasBattery bool
	HasTimer   bool
	HasRumble  bool
	HasSensor  bool
}

var cartridgeTypes = map[uint8]CartridgeType{
	0x00: {Kind: KindNone},
	0x01: {Kind: KindMBC1},
	0x02: {Kind: KindMBC1, HasRAM: true},
	0x03: {Kind: KindMBC1, HasRAM: true, HasBattery: true},
	0x05: {Kind: KindMBC2},
	0x06: {Kind: KindMBC2, HasBattery: true},
	0x08: {Kind: KindNone, HasRAM: true},
	0x09: {Kind: KindNone, HasRAM: true, HasBattery: true},
	0x0B: {Kind: KindMMM01},
	0x0C: {Kind: KindMMM01, HasRAM: true},
	0x0D: {Kind: KindMMM01, HasRAM: true, HasBattery: true},
	0x0F: {Kind: KindMBC3, HasTimer: true, HasBattery: true},
	0x10: {Kind: KindMBC3, HasTimer: true, HasRAM: true, HasBattery: true},
	0x11: {Kind: KindMBC3},
	0x12: {Kind: KindMBC3, HasRAM: true},
	0x13: {Kind: KindMBC3, HasRAM: true, HasBattery: true},
	0x19: {Kind: KindMBC5},
	0x1A: {Kind: KindMBC5, HasRAM: true},
	0x1B: {Kind: KindMBC5, HasRAM: true, HasBattery: true},
	0x1C: {Kind: KindMBC5, HasRumble: true},
	0x1D: {Kind: KindMBC5, HasRumble: true, HasRAM: true},
	0x1E: {Kind: KindMBC5, HasRumble: true, HasRAM: true, HasBattery: true},
	0x20: {Kind: KindMBC6},
	0x22: {Kind: KindMBC7, HasSensor: true, HasRumble: true, HasRAM: true, HasBattery: true},
	0xFC: {Kind: KindPocketCamera},
	0xFD: {Kind: KindTAMA5},
	0xFE: {Kind: KindHuC3},
	0xFF: {Kind: KindHuC1, HasRAM: true, HasBattery: true},
}

// Header is the decoded cartridge header found at 0x100-0x14F.
type Header struct {
	Title          string
	Type           CartridgeType
	ROMBanks       int // 16KiB banks
	RAMSize        int // bytes of external RAM declared by the header
	CGBFlag        uint8
	SGBFlag        uint8
	Destination    uint8
	OldLicensee    uint8
	NewLicensee    string
	Version        uint8
	HeaderChecksum uint8
	GlobalChecksum uint16
}

// ROMSize returns the declared ROM size in bytes.
func (h *Header) ROMSize() int {
	return h.ROMBanks * 0x4000
}

// RAMBanks returns the number of 8KiB external RAM banks.
func (h *Header) RAMBanks() int {
	return h.RAMSize / 0x2000
}

// ParseHeader extracts the cartridge header from a full ROM image.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrHeaderTooShort, len(rom), headerEnd)
	}

	code := rom[cartridgeTypeAddress]
	cartType, ok := cartridgeTypes[code]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedCartridge, code)
	}
	cartType.Code = code

	romBanks, err := decodeROMBanks(rom[romSizeAddress])
	if err != nil {
		return nil, err
	}
	ramSize, err := decodeRAMSize(rom[ramSizeAddress])
	if err != nil {
		return nil, err
	}

	destination := rom[destinationCodeAddress]
	if destination > 1 {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidDestination, destination)
	}
	sgb := rom[sgbFlagAddress]
	if sgb != 0x00 && sgb != 0x03 {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidSGBFlag, sgb)
	}

	return &Header{
		Title:          cleanGameboyTitle(rom[titleAddress : titleEnd+1]),
		Type:           cartType,
		ROMBanks:       romBanks,
		RAMSize:        ramSize,
		CGBFlag:        rom[cgbFlagAddress],
		SGBFlag:        sgb,
		Destination:    destination,
		OldLicensee:    rom[oldLicenseCodeAddress],
		NewLicensee:    string(rom[newLicenseCodeAddress : newLicenseCodeAddress+2]),
		Version:        rom[versionNumberAddress],
		HeaderChecksum: rom[headerChecksumAddress],
		GlobalChecksum: uint16(rom[globalChecksumAddress])<<8 | uint16(rom[globalChecksumAddress+1]),
	}, nil
}

// ComputeHeaderChecksum runs the boot ROM checksum over 0x134-0x14C.
func ComputeHeaderChecksum(rom []byte) uint8 {
	var sum uint8
	for i := headerChecksumRangeFrom; i <= headerChecksumRangeTo; i++ {
		sum = sum - rom[i] - 1
	}
	return sum
}

// HeaderChecksumOK reports whether the stored header checksum matches the computed one.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < headerEnd {
		return false
	}
	return ComputeHeaderChecksum(rom) == rom[headerChecksumAddress]
}

func decodeROMBanks(code uint8) (int, error) {
	switch {
	case code <= 0x08:
		return 2 << code, nil
	case code == 0x52:
		return 72, nil
	case code == 0x53:
		return 80, nil
	case code == 0x54:
		return 96, nil
	}
	return 0, fmt.Errorf("%w: code 0x%02X", ErrInvalidROMSize, code)
}

func decodeRAMSize(code uint8) (int, error) {
	switch code {
	case 0x00, 0x01:
		return 0, nil
	case 0x02:
		return 8 * 1024, nil
	case 0x03:
		return 32 * 1024, nil
	case 0x04:
		return 128 * 1024, nil
	case 0x05:
		return 64 * 1024, nil
	}
	return 0, fmt.Errorf("%w: code 0x%02X", ErrInvalidRAMSize, code)
}
