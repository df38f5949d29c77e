package render

import "github.com/valerio/jeebie-core/jeebie/video"

// Cell is one terminal character covering two vertically stacked pixels.
// Shades follow the DMG convention, 0 lightest and 3 darkest.
type Cell struct {
	Char rune
	Fg   uint8
	Bg   uint8
}

const (
	upperHalf = '▀'
	fullBlock = '█'
)

// HalfBlock builds the cell for a pixel pair. Equal shades use a full block
// so that terminals with visible gaps between rows still draw solid areas.
func HalfBlock(topShade, bottomShade uint8) Cell {
	if topShade == bottomShade {
		return Cell{Char: fullBlock, Fg: topShade, Bg: topShade}
	}
	return Cell{Char: upperHalf, Fg: topShade, Bg: bottomShade}
}

// FrameCells converts a frame into rows of cells, two pixel rows per cell
// row. dst is reused when it has the right size.
func FrameCells(frame *video.FrameBuffer, dst [][]Cell) [][]Cell {
	const rows = (video.FramebufferHeight + 1) / 2
	if len(dst) != rows {
		dst = make([][]Cell, rows)
		for i := range dst {
			dst[i] = make([]Cell, video.FramebufferWidth)
		}
	}

	pixels := frame.ToSlice()
	for y := 0; y < video.FramebufferHeight; y += 2 {
		for x := 0; x < video.FramebufferWidth; x++ {
			top := video.PixelToShade(pixels[y*video.FramebufferWidth+x])
			bottom := uint8(0)
			if y+1 < video.FramebufferHeight {
				bottom = video.PixelToShade(pixels[(y+1)*video.FramebufferWidth+x])
			}
			dst[y/2][x] = HalfBlock(top, bottom)
		}
	}
	return dst
}
