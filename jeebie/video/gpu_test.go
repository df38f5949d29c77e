package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

// newTestGPU returns a GPU with the LCD on, BG enabled and identity palettes.
func newTestGPU() (*GPU, *interrupt.Controller) {
	g := NewGPU()
	g.Write(addr.BGP, 0xE4)
	g.Write(addr.OBP0, 0xE4)
	g.Write(addr.OBP1, 0x1B)
	g.Write(addr.LCDC, 0x91)
	return g, &interrupt.Controller{}
}

func writeTile(g *GPU, base uint16, rows ...[2]uint8) {
	for i, row := range rows {
		g.WriteVRAM(base+uint16(i*2), row[0])
		g.WriteVRAM(base+uint16(i*2)+1, row[1])
	}
}

func solidTile(low, high uint8) [][2]uint8 {
	rows := make([][2]uint8, 8)
	for i := range rows {
		rows[i] = [2]uint8{low, high}
	}
	return rows
}

func runFrame(g *GPU, irq *interrupt.Controller) {
	g.Tick(DotsPerFrame, irq)
}

func TestGPUScanlineTiming(t *testing.T) {
	g, irq := newTestGPU()

	assert.Equal(t, ModeSearchingOAM, g.Mode())
	g.Tick(oamScanDots-4, irq)
	assert.Equal(t, ModeSearchingOAM, g.Mode())
	g.Tick(4, irq)
	assert.Equal(t, ModeTransferringData, g.Mode())
	g.Tick(transferDots, irq)
	assert.Equal(t, ModeHBlank, g.Mode())
	assert.Equal(t, uint8(0), g.LY())
	g.Tick(hblankDots, irq)
	assert.Equal(t, uint8(1), g.LY())
	assert.Equal(t, ModeSearchingOAM, g.Mode())

	for line := 2; line <= 10; line++ {
		g.Tick(scanlineDots, irq)
		assert.Equal(t, uint8(line), g.LY())
	}
}

func TestGPUVBlankOncePerFrame(t *testing.T) {
	g, irq := newTestGPU()

	g.Tick(scanlineDots*visibleLines-4, irq)
	assert.Equal(t, uint8(visibleLines-1), g.LY())
	assert.False(t, irq.Has())
	assert.Zero(t, irq.Read(addr.IF)&uint8(addr.VBlankInterrupt))

	g.Tick(4, irq)
	assert.Equal(t, uint8(visibleLines), g.LY())
	assert.Equal(t, ModeVBlank, g.Mode())
	assert.Equal(t, uint8(addr.VBlankInterrupt), irq.Read(addr.IF)&uint8(addr.VBlankInterrupt))
	assert.Equal(t, uint64(1), g.Frames())

	irq.Write(addr.IF, 0)
	g.Tick(scanlineDots*(totalLines-visibleLines)-4, irq)
	assert.Equal(t, uint8(totalLines-1), g.LY())
	assert.Zero(t, irq.Read(addr.IF)&uint8(addr.VBlankInterrupt))

	g.Tick(4, irq)
	assert.Equal(t, uint8(0), g.LY())
	assert.Equal(t, ModeSearchingOAM, g.Mode())

	runFrame(g, irq)
	assert.Equal(t, uint64(2), g.Frames())
}

func TestGPUBigTickEqualsSmallTicks(t *testing.T) {
	a, irqA := newTestGPU()
	b, irqB := newTestGPU()

	a.Tick(DotsPerFrame+1000, irqA)
	for rep := 0; rep < (DotsPerFrame+1000)/4; rep++ {
		b.Tick(4, irqB)
	}

	assert.Equal(t, a.LY(), b.LY())
	assert.Equal(t, a.Mode(), b.Mode())
	assert.Equal(t, a.Frames(), b.Frames())
	assert.Equal(t, irqA.Read(addr.IF), irqB.Read(addr.IF))
}

func TestGPUSTATInterrupts(t *testing.T) {
	tests := []struct {
		name    string
		stat    uint8
		lyc     uint8
		dots    int
		fires   bool
		wantLY  uint8
		wantMod Mode
	}{
		{name: "hblank source", stat: 0x08, dots: oamScanDots + transferDots, fires: true, wantMod: ModeHBlank},
		{name: "oam source on next line", stat: 0x20, dots: scanlineDots, fires: true, wantLY: 1, wantMod: ModeSearchingOAM},
		{name: "vblank source", stat: 0x10, dots: scanlineDots * visibleLines, fires: true, wantLY: visibleLines, wantMod: ModeVBlank},
		{name: "lyc match", stat: 0x40, lyc: 5, dots: scanlineDots * 5, fires: true, wantLY: 5, wantMod: ModeSearchingOAM},
		{name: "no enabled source", stat: 0x00, dots: scanlineDots * visibleLines, fires: false, wantLY: visibleLines, wantMod: ModeVBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, irq := newTestGPU()
			g.Write(addr.LYC, tt.lyc)
			// settle the line for the initial state before enabling sources
			g.Tick(0, irq)
			g.Write(addr.STAT, tt.stat)
			if tt.stat != 0 {
				g.Tick(4, irq)
				irq.Write(addr.IF, 0)
				g.Tick(tt.dots-4, irq)
			} else {
				g.Tick(tt.dots, irq)
			}

			assert.Equal(t, tt.wantLY, g.LY())
			assert.Equal(t, tt.wantMod, g.Mode())
			stat := irq.Read(addr.IF)&uint8(addr.LCDSTATInterrupt) != 0
			assert.Equal(t, tt.fires, stat)
		})
	}
}

func TestGPUSTATRisingEdgeOnly(t *testing.T) {
	g, irq := newTestGPU()
	g.Write(addr.LYC, 0)
	g.Write(addr.STAT, 0x40)

	g.Tick(4, irq)
	assert.NotZero(t, irq.Read(addr.IF)&uint8(addr.LCDSTATInterrupt))

	// the line stays high for the rest of line 0
	irq.Write(addr.IF, 0)
	g.Tick(scanlineDots-8, irq)
	assert.Zero(t, irq.Read(addr.IF)&uint8(addr.LCDSTATInterrupt))
}

func TestGPUSTATRead(t *testing.T) {
	g, irq := newTestGPU()
	g.Write(addr.LYC, 1)
	g.Write(addr.STAT, 0xFF)

	assert.Equal(t, uint8(0x80|0x78|uint8(ModeSearchingOAM)), g.Read(addr.STAT))

	g.Tick(scanlineDots, irq)
	assert.Equal(t, uint8(0x80|0x78|0x04|uint8(ModeSearchingOAM)), g.Read(addr.STAT))

	g.Write(addr.LY, 0x42)
	assert.Equal(t, uint8(1), g.Read(addr.LY), "LY is read only")
}

func TestGPULCDDisable(t *testing.T) {
	g, irq := newTestGPU()
	g.Tick(scanlineDots*3+100, irq)
	require.Equal(t, uint8(3), g.LY())

	g.Write(addr.LCDC, 0x11)
	assert.Equal(t, uint8(0), g.LY())
	assert.Zero(t, g.Read(addr.STAT)&0x03, "mode reads as 0")

	g.Tick(DotsPerFrame, irq)
	assert.Equal(t, uint8(0), g.LY())
	assert.Equal(t, uint8(0), irq.Read(addr.IF)&0x1F)

	g.Write(addr.LCDC, 0x91)
	assert.Equal(t, ModeSearchingOAM, g.Mode())
	g.Tick(scanlineDots, irq)
	assert.Equal(t, uint8(1), g.LY())
}

func TestGPURegisters(t *testing.T) {
	g := NewGPU()
	regs := []uint16{addr.SCY, addr.SCX, addr.LYC, addr.BGP, addr.OBP0, addr.OBP1, addr.WY, addr.WX, addr.BCPS, addr.OCPD}
	for i, reg := range regs {
		g.Write(reg, uint8(i+1))
		assert.Equal(t, uint8(i+1), g.Read(reg), "register %#04x", reg)
	}
	assert.Equal(t, uint8(0xFF), g.Read(0xFF4C))
}

func TestGPUBackgroundRendering(t *testing.T) {
	tests := []struct {
		name   string
		lcdc   uint8
		tile   uint8
		base   uint16
		bgp    uint8
		expect GBColor
	}{
		{name: "unsigned addressing tile 1", lcdc: 0x91, tile: 1, base: 0x8010, bgp: 0xE4, expect: BlackColor},
		{name: "signed addressing tile 1", lcdc: 0x81, tile: 1, base: 0x9010, bgp: 0xE4, expect: BlackColor},
		{name: "signed addressing tile -1", lcdc: 0x81, tile: 0xFF, base: 0x8FF0, bgp: 0xE4, expect: BlackColor},
		{name: "palette remaps color 3", lcdc: 0x91, tile: 1, base: 0x8010, bgp: 0x64, expect: LightGreyColor},
		{name: "bg disabled shows color 0", lcdc: 0x90, tile: 1, base: 0x8010, bgp: 0xE7, expect: BlackColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, irq := newTestGPU()
			writeTile(g, tt.base, solidTile(0xFF, 0xFF)...)
			for i := uint16(0); i < 32*32; i++ {
				g.WriteVRAM(addr.TileMap0+i, tt.tile)
			}
			g.Write(addr.BGP, tt.bgp)
			g.Write(addr.LCDC, tt.lcdc)

			runFrame(g, irq)
			frame := g.Frame()
			assert.Equal(t, uint32(tt.expect), frame.GetPixel(0, 0))
			assert.Equal(t, uint32(tt.expect), frame.GetPixel(159, 143))
		})
	}
}

func TestGPUBackgroundScroll(t *testing.T) {
	g, irq := newTestGPU()
	// tile 1 has color 1 in the leftmost column only
	writeTile(g, 0x8010, solidTile(0x80, 0x00)...)
	g.WriteVRAM(addr.TileMap0+1, 1)
	g.Write(addr.SCX, 8)

	runFrame(g, irq)
	frame := g.Frame()
	assert.Equal(t, uint32(LightGreyColor), frame.GetPixel(0, 0))
	assert.Equal(t, uint32(WhiteColor), frame.GetPixel(1, 0))
	assert.Equal(t, uint32(WhiteColor), frame.GetPixel(0, 8))

	g.Write(addr.SCX, 0)
	g.Write(addr.SCY, 0xFC)
	runFrame(g, irq)
	assert.Equal(t, uint32(LightGreyColor), g.Frame().GetPixel(8, 4), "scroll wraps at 256")
}

func TestGPUWindow(t *testing.T) {
	g, irq := newTestGPU()
	writeTile(g, 0x8010, solidTile(0xFF, 0x00)...)
	for i := uint16(0); i < 32*32; i++ {
		g.WriteVRAM(addr.TileMap1+i, 1)
	}
	g.Write(addr.WY, 10)
	g.Write(addr.WX, 7+20)
	g.Write(addr.LCDC, 0x91|0x20|0x40)

	runFrame(g, irq)
	frame := g.Frame()
	assert.Equal(t, uint32(WhiteColor), frame.GetPixel(19, 10))
	assert.Equal(t, uint32(LightGreyColor), frame.GetPixel(20, 10))
	assert.Equal(t, uint32(WhiteColor), frame.GetPixel(20, 9))
	assert.Equal(t, uint32(LightGreyColor), frame.GetPixel(159, 143))
}

func TestGPUWindowLineCounter(t *testing.T) {
	g, irq := newTestGPU()
	// window tile row 0 is color 3, row 1-7 color 0
	writeTile(g, 0x8010, [2]uint8{0xFF, 0xFF})
	g.WriteVRAM(addr.TileMap1, 1)
	g.Write(addr.WY, 0)
	g.Write(addr.WX, 7)
	g.Write(addr.LCDC, 0x91|0x20|0x40)

	// the window is hidden by a WX change during lines 0-4, so line 5
	// draws window row 0
	g.Write(addr.WX, 200)
	g.Tick(scanlineDots*5, irq)
	g.Write(addr.WX, 7)
	g.Tick(DotsPerFrame-scanlineDots*5, irq)

	frame := g.Frame()
	assert.Equal(t, uint32(WhiteColor), frame.GetPixel(0, 0))
	assert.Equal(t, uint32(BlackColor), frame.GetPixel(0, 5))
	assert.Equal(t, uint32(WhiteColor), frame.GetPixel(0, 6))
}

func writeSprite(g *GPU, index int, y, x, tile, flags uint8) {
	base := addr.OAMStart + uint16(index*4)
	g.WriteOAM(base, y)
	g.WriteOAM(base+1, x)
	g.WriteOAM(base+2, tile)
	g.WriteOAM(base+3, flags)
}

func TestGPUSprites(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *GPU)
		x, y  int
		want  GBColor
	}{
		{
			name: "opaque sprite over background",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 8, 2, 0)
			},
			x: 0, y: 0, want: BlackColor,
		},
		{
			name: "color 0 is transparent",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 8, 3, 0)
			},
			x: 0, y: 0, want: WhiteColor,
		},
		{
			name: "OBP1 palette",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 8, 2, 0x10)
			},
			x: 0, y: 0, want: WhiteColor,
		},
		{
			name: "lower X wins",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 12, 4, 0)
				writeSprite(g, 1, 16, 8, 2, 0)
			},
			x: 4, y: 0, want: BlackColor,
		},
		{
			name: "equal X lower OAM index wins",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 8, 4, 0)
				writeSprite(g, 1, 16, 8, 2, 0)
			},
			x: 0, y: 0, want: LightGreyColor,
		},
		{
			name: "behind background color 0 stays visible",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 8, 2, 0x80)
			},
			x: 0, y: 0, want: BlackColor,
		},
		{
			name: "behind background hidden by color 1-3",
			setup: func(g *GPU) {
				g.WriteVRAM(addr.TileMap0, 4)
				writeSprite(g, 0, 16, 8, 2, 0x80)
			},
			x: 0, y: 0, want: LightGreyColor,
		},
		{
			name: "hidden opaque sprite still masks the next one",
			setup: func(g *GPU) {
				g.WriteVRAM(addr.TileMap0, 4)
				writeSprite(g, 0, 16, 8, 2, 0x80)
				writeSprite(g, 1, 16, 8, 5, 0)
			},
			x: 0, y: 0, want: LightGreyColor,
		},
		{
			name: "horizontal flip",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 8, 5, 0x20)
			},
			x: 0, y: 0, want: DarkGreyColor,
		},
		{
			name: "partially offscreen left",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 1, 2, 0)
			},
			x: 0, y: 0, want: BlackColor,
		},
		{
			name: "disabled sprites",
			setup: func(g *GPU) {
				writeSprite(g, 0, 16, 8, 2, 0)
				g.Write(addr.LCDC, 0x93&^0x02)
			},
			x: 0, y: 0, want: WhiteColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, irq := newTestGPU()
			g.Write(addr.LCDC, 0x93)
			writeTile(g, 0x8020, solidTile(0xFF, 0xFF)...) // 2: color 3
			writeTile(g, 0x8040, solidTile(0xFF, 0x00)...) // 4: color 1
			writeTile(g, 0x8050, solidTile(0x80, 0x80)...) // 5: color 3 leftmost only
			// 5 also has color 2 at the rightmost pixel
			for row := 0; row < 8; row++ {
				g.WriteVRAM(0x8050+uint16(row*2)+1, 0x81)
			}
			tt.setup(g)

			runFrame(g, irq)
			assert.Equal(t, uint32(tt.want), g.Frame().GetPixel(tt.x, tt.y))
		})
	}
}

func TestGPUTallSprites(t *testing.T) {
	g, irq := newTestGPU()
	g.Write(addr.LCDC, 0x97)
	writeTile(g, 0x8020, solidTile(0xFF, 0x00)...) // 2: color 1
	writeTile(g, 0x8030, solidTile(0xFF, 0xFF)...) // 3: color 3
	writeSprite(g, 0, 16, 8, 3, 0)                 // low bit ignored

	runFrame(g, irq)
	frame := g.Frame()
	assert.Equal(t, uint32(LightGreyColor), frame.GetPixel(0, 0))
	assert.Equal(t, uint32(BlackColor), frame.GetPixel(0, 8))
	assert.Equal(t, uint32(BlackColor), frame.GetPixel(0, 15))
	assert.Equal(t, uint32(WhiteColor), frame.GetPixel(0, 16))
}

type sliceReader []uint8

func (s sliceReader) Read(address uint16) uint8 {
	return s[address]
}

func TestGPUDMA(t *testing.T) {
	g := NewGPU()
	src := make(sliceReader, 0x10000)
	for i := 0; i < oamSize; i++ {
		src[0xC100+i] = uint8(i)
	}

	assert.False(t, g.DMAStarted())
	g.Write(addr.DMA, 0xC1)
	assert.True(t, g.DMAStarted())
	assert.Equal(t, uint8(0xC1), g.Read(addr.DMA))

	g.TransferOAM(src)
	assert.False(t, g.DMAStarted())
	for i := uint16(0); i < oamSize; i++ {
		assert.Equal(t, uint8(i), g.ReadOAM(addr.OAMStart+i))
	}
}

func TestGPUFrontBufferOnlyChangesAtVBlank(t *testing.T) {
	g, irq := newTestGPU()
	writeTile(g, 0x8000, solidTile(0xFF, 0xFF)...)

	g.Tick(scanlineDots*10, irq)
	assert.Equal(t, uint32(WhiteColor), g.Frame().GetPixel(0, 0))

	g.Tick(scanlineDots*visibleLines, irq)
	assert.Equal(t, uint32(BlackColor), g.Frame().GetPixel(0, 0))
}
