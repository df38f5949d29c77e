package video

import "github.com/valerio/jeebie-core/jeebie/bit"

// TileRow represents one row of a tile pattern (8 pixels).
//
// Tiles are 8x8 pixels with 2 bits per pixel. Each row is two bytes in
// bit-plane format: the first byte holds bit 0 of every pixel's color index,
// the second byte holds bit 1. Bit 7 is the leftmost pixel.
//
// Example: bytes $3C and $7E represent a row:
//
//	Low  (0x3C): 0 0 1 1 1 1 0 0
//	High (0x7E): 0 1 1 1 1 1 1 0
//	            -----------------
//	Colors:      0 2 3 3 3 3 2 0
//
// Reference: https://gbdev.io/pandocs/Tile_Data.html
type TileRow struct {
	Low  byte
	High byte
}

// GetPixel extracts a pixel color index (0-3) from the tile row.
// pixelX should be 0-7, where 0 is the leftmost pixel.
func (t TileRow) GetPixel(pixelX int) uint8 {
	index := uint8(7 - pixelX)
	return bit.Value(index, t.Low) | bit.Value(index, t.High)<<1
}

// GetPixelFlipped extracts a pixel with horizontal flip applied.
func (t TileRow) GetPixelFlipped(pixelX int) uint8 {
	index := uint8(pixelX)
	return bit.Value(index, t.Low) | bit.Value(index, t.High)<<1
}

// Palette is one of BGP, OBP0 or OBP1: four 2 bit shades, color index 0 in
// the lowest bits.
type Palette uint8

// Shade maps a color index through the palette.
func (p Palette) Shade(colorIndex uint8) uint8 {
	return uint8(p) >> (colorIndex * 2) & 0x03
}

// Color maps a color index through the palette to a display color.
func (p Palette) Color(colorIndex uint8) GBColor {
	return ShadeColor(p.Shade(colorIndex))
}
