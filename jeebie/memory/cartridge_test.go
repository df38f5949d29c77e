package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerImage(cartType, romSize, ramSize uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[titleAddress:], "TESTCART")
	rom[cartridgeTypeAddress] = cartType
	rom[romSizeAddress] = romSize
	rom[ramSizeAddress] = ramSize
	rom[headerChecksumAddress] = ComputeHeaderChecksum(rom)
	return rom
}

func TestParseHeader(t *testing.T) {
	rom := headerImage(0x03, 0x02, 0x03)
	rom[versionNumberAddress] = 0x01
	rom[globalChecksumAddress] = 0xBE
	rom[globalChecksumAddress+1] = 0xEF

	h, err := ParseHeader(rom)
	require.NoError(t, err)

	assert.Equal(t, "TESTCART", h.Title)
	assert.Equal(t, KindMBC1, h.Type.Kind)
	assert.True(t, h.Type.HasRAM)
	assert.True(t, h.Type.HasBattery)
	assert.Equal(t, 8, h.ROMBanks)
	assert.Equal(t, 8*romBankSize, h.ROMSize())
	assert.Equal(t, 32*1024, h.RAMSize)
	assert.Equal(t, 4, h.RAMBanks())
	assert.Equal(t, uint8(0x01), h.Version)
	assert.Equal(t, uint16(0xBEEF), h.GlobalChecksum)
}

func TestParseHeaderSizes(t *testing.T) {
	romCases := []struct {
		code  uint8
		banks int
	}{
		{0x00, 2}, {0x01, 4}, {0x05, 64}, {0x08, 512}, {0x52, 72}, {0x53, 80}, {0x54, 96},
	}
	for _, tC := range romCases {
		h, err := ParseHeader(headerImage(0x00, tC.code, 0x00))
		require.NoError(t, err)
		assert.Equal(t, tC.banks, h.ROMBanks, "rom code 0x%02X", tC.code)
	}

	ramCases := []struct {
		code uint8
		size int
	}{
		{0x00, 0}, {0x01, 0}, {0x02, 0x2000}, {0x03, 0x8000}, {0x04, 0x20000}, {0x05, 0x10000},
	}
	for _, tC := range ramCases {
		h, err := ParseHeader(headerImage(0x00, 0x00, tC.code))
		require.NoError(t, err)
		assert.Equal(t, tC.size, h.RAMSize, "ram code 0x%02X", tC.code)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	testCases := []struct {
		desc   string
		mutate func([]byte) []byte
		want   error
	}{
		{"short image", func(b []byte) []byte { return b[:0x120] }, ErrHeaderTooShort},
		{"unknown type", func(b []byte) []byte { b[cartridgeTypeAddress] = 0x04; return b }, ErrUnsupportedCartridge},
		{"rom size", func(b []byte) []byte { b[romSizeAddress] = 0x09; return b }, ErrInvalidROMSize},
		{"ram size", func(b []byte) []byte { b[ramSizeAddress] = 0x06; return b }, ErrInvalidRAMSize},
		{"destination", func(b []byte) []byte { b[destinationCodeAddress] = 0x02; return b }, ErrInvalidDestination},
		{"sgb flag", func(b []byte) []byte { b[sgbFlagAddress] = 0x01; return b }, ErrInvalidSGBFlag},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := ParseHeader(tC.mutate(headerImage(0x00, 0x00, 0x00)))
			assert.ErrorIs(t, err, tC.want)
		})
	}
}

func TestHeaderChecksum(t *testing.T) {
	rom := headerImage(0x01, 0x00, 0x00)
	assert.True(t, HeaderChecksumOK(rom))

	rom[titleAddress] = 'X'
	assert.False(t, HeaderChecksumOK(rom))
	assert.False(t, HeaderChecksumOK(rom[:0x100]))
}

func TestCleanGameboyTitle(t *testing.T) {
	testCases := []struct {
		desc string
		raw  []byte
		want string
	}{
		{"nul padded", []byte("TETRIS\x00\x00\x00\x00\x00"), "TETRIS"},
		{"cgb flag in last byte", append([]byte("POKEMON YELLOW\x00"), 0x80), "POKEMON YELLOW"},
		{"empty", make([]byte, 16), "(Untitled)"},
		{"trailing spaces", []byte("ZELDA   "), "ZELDA"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.want, cleanGameboyTitle(tC.raw))
		})
	}
}
