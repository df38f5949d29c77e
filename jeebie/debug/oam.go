package debug

import (
	"fmt"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/video"
)

const (
	OAMSpriteCount    = 40
	OAMBytesPerSprite = 4
	MaxSpritesPerLine = 10
)

// Reader is read access to the CPU address space.
type Reader interface {
	Read(address uint16) uint8
}

type SpriteInfo struct {
	Index     int
	Sprite    video.Sprite
	IsVisible bool
}

type SpriteAttributes struct {
	BackgroundPriority bool
	FlipY              bool
	FlipX              bool
	PaletteNumber      int
}

type OAMData struct {
	Sprites       []SpriteInfo
	CurrentLine   int
	ActiveSprites int
	SpriteHeight  int
}

// ExtractOAMData decodes all 40 OAM entries and marks the ones covering
// currentLine.
func ExtractOAMData(reader Reader, currentLine int, spriteHeight int) *OAMData {
	data := &OAMData{
		Sprites:      make([]SpriteInfo, OAMSpriteCount),
		CurrentLine:  currentLine,
		SpriteHeight: spriteHeight,
	}

	for i := 0; i < OAMSpriteCount; i++ {
		base := addr.OAMStart + uint16(i*OAMBytesPerSprite)
		sprite := video.NewSprite(i,
			reader.Read(base), reader.Read(base+1), reader.Read(base+2), reader.Read(base+3),
			spriteHeight)

		visible := sprite.Covers(currentLine)
		if visible {
			data.ActiveSprites++
		}
		data.Sprites[i] = SpriteInfo{Index: i, Sprite: sprite, IsVisible: visible}
	}

	return data
}

func (s *SpriteInfo) DecodeAttributes() SpriteAttributes {
	attrs := SpriteAttributes{
		BackgroundPriority: s.Sprite.BehindBG,
		FlipY:              s.Sprite.FlipY,
		FlipX:              s.Sprite.FlipX,
	}
	if s.Sprite.PaletteOBP1 {
		attrs.PaletteNumber = 1
	}
	return attrs
}

func (s *SpriteInfo) String() string {
	status := "OFF"
	if s.IsVisible {
		status = "ACTIVE"
	}
	return fmt.Sprintf("Sprite %2d: Y=%3d X=%3d  Tile=0x%02X Flags=0x%02X [%s]",
		s.Index, s.Sprite.Y, s.Sprite.X, s.Sprite.TileIndex, s.Sprite.Flags, status)
}

func (data *OAMData) GetVisibleSprites() []SpriteInfo {
	visible := make([]SpriteInfo, 0, data.ActiveSprites)
	for _, sprite := range data.Sprites {
		if sprite.IsVisible {
			visible = append(visible, sprite)
		}
	}
	return visible
}

func (data *OAMData) FormatSummary() string {
	return fmt.Sprintf("Current Line: %d | Active Sprites: %d/%d | Height: %dpx",
		data.CurrentLine, data.ActiveSprites, MaxSpritesPerLine, data.SpriteHeight)
}
