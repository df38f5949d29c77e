package video

import (
	"slices"

	"github.com/valerio/jeebie-core/jeebie/bit"
)

const (
	oamSize          = 0xA0
	spriteCount      = 40
	maxSpritesOnLine = 10
)

// Sprite represents a single sprite/object in OAM memory.
type Sprite struct {
	Y         int // screen position, without the +16 offset
	X         int // screen position, without the +8 offset
	TileIndex uint8
	Flags     uint8
	OAMIndex  int
	Height    int // 8 or 16, from LCDC bit 2

	PaletteOBP1 bool // false = OBP0, true = OBP1
	FlipX       bool
	FlipY       bool
	BehindBG    bool // hidden behind background colors 1-3
}

// NewSprite decodes the raw OAM entry at index. The raw Y and X bytes carry
// the hardware offsets of 16 and 8.
func NewSprite(index int, y, x, tile, flags uint8, height int) Sprite {
	s := Sprite{
		Y:         int(y) - 16,
		X:         int(x) - 8,
		TileIndex: tile,
		Flags:     flags,
		OAMIndex:  index,
		Height:    height,
	}
	s.parseFlags()
	return s
}

// Covers reports whether the sprite has a row on line.
func (s *Sprite) Covers(line int) bool {
	return line >= s.Y && line < s.Y+s.Height
}

func (s *Sprite) parseFlags() {
	s.PaletteOBP1 = bit.IsSet(4, s.Flags)
	s.FlipX = bit.IsSet(5, s.Flags)
	s.FlipY = bit.IsSet(6, s.Flags)
	s.BehindBG = bit.IsSet(7, s.Flags)
}

// rowAddress returns the VRAM offset of the tile row covering line.
func (s *Sprite) rowAddress(line int) int {
	row := line - s.Y
	if s.FlipY {
		row = s.Height - 1 - row
	}
	tile := int(s.TileIndex)
	if s.Height == 16 {
		tile &^= 1
	}
	return tile*16 + row*2
}

// OAM manages Object Attribute Memory.
type OAM struct {
	data         [oamSize]uint8
	spriteBuffer [maxSpritesOnLine]Sprite
}

func (o *OAM) Read(offset uint16) uint8 {
	return o.data[offset]
}

func (o *OAM) Write(offset uint16, value uint8) {
	o.data[offset] = value
}

// SpritesForScanline returns the sprites drawn on the given line in
// priority order.
//
// Selection walks OAM in index order and keeps the first 10 sprites whose
// Y range covers the line. The selected sprites are then ordered by X,
// lower first, with ties going to the lower OAM index. The returned slice
// is only valid until the next call.
func (o *OAM) SpritesForScanline(line, height int) []Sprite {
	sprites := o.spriteBuffer[:0]

	for i := 0; i < spriteCount; i++ {
		base := i * 4
		sprite := NewSprite(i, o.data[base], o.data[base+1], o.data[base+2], o.data[base+3], height)
		if !sprite.Covers(line) {
			continue
		}
		sprites = append(sprites, sprite)

		if len(sprites) == maxSpritesOnLine {
			break
		}
	}

	slices.SortFunc(sprites, func(a, b Sprite) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.OAMIndex - b.OAMIndex
	})
	return sprites
}
