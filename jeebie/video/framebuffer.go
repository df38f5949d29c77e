package video

import (
	"image"
)

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
)

// GBColor is a packed 0xRRGGBBAA pixel.
type GBColor uint32

const (
	WhiteColor     GBColor = 0xFFFFFFFF
	LightGreyColor GBColor = 0x989898FF
	DarkGreyColor  GBColor = 0x4C4C4CFF
	BlackColor     GBColor = 0x000000FF
)

// shades maps a DMG shade (0 lightest, 3 darkest) to its display color.
var shades = [4]GBColor{WhiteColor, LightGreyColor, DarkGreyColor, BlackColor}

// ShadeColor returns the display color for a 2 bit shade.
func ShadeColor(shade uint8) GBColor {
	return shades[shade&0x03]
}

// RGBA splits the packed pixel in its components.
func (c GBColor) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// FrameBuffer holds one 160x144 frame.
type FrameBuffer struct {
	buffer [FramebufferWidth * FramebufferHeight]uint32
}

// NewFrameBuffer returns a frame buffer cleared to white.
func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Clear(WhiteColor)
	return fb
}

func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	return fb.buffer[y*FramebufferWidth+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, color GBColor) {
	fb.buffer[y*FramebufferWidth+x] = uint32(color)
}

// Clear fills the whole frame with one color.
func (fb *FrameBuffer) Clear(color GBColor) {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(color)
	}
}

// CopyFrom replaces the contents with another frame.
func (fb *FrameBuffer) CopyFrom(other *FrameBuffer) {
	fb.buffer = other.buffer
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer[:]
}

// ToImage converts the frame to an RGBA image.
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FramebufferWidth, FramebufferHeight))
	for i, pixel := range fb.buffer {
		r, g, b, a := GBColor(pixel).RGBA()
		img.Pix[i*4] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}
	return img
}

// ToGrayscale returns one shade byte (0 white to 3 black) per pixel.
func (fb *FrameBuffer) ToGrayscale() []byte {
	out := make([]byte, len(fb.buffer))
	for i, pixel := range fb.buffer {
		out[i] = PixelToShade(pixel)
	}
	return out
}

// PixelToShade converts a pixel back to its DMG shade. Unknown colors are
// treated as black.
func PixelToShade(pixel uint32) uint8 {
	switch GBColor(pixel) {
	case WhiteColor:
		return 0
	case LightGreyColor:
		return 1
	case DarkGreyColor:
		return 2
	}
	return 3
}
