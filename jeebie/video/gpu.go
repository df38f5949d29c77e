package video

import (
	"log/slog"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

// Mode is the PPU mode, valued as reported in STAT bits 0-1.
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeSearchingOAM
	ModeTransferringData
)

func (m Mode) String() string {
	switch m {
	case ModeHBlank:
		return "HBlank"
	case ModeVBlank:
		return "VBlank"
	case ModeSearchingOAM:
		return "SearchingOAM"
	}
	return "TransferringData"
}

const (
	oamScanDots     = 80
	transferDots    = 168
	hblankDots      = 208
	scanlineDots    = oamScanDots + transferDots + hblankDots
	visibleLines    = 144
	totalLines      = 154
	vramSize        = 0x2000
	tileMapWidth    = 32
	windowXOffset   = 7
	DotsPerFrame    = scanlineDots * totalLines
	CyclesPerFrame  = DotsPerFrame / 4
	statEnableMask  = 0x78
	statCoincidence = 2
)

// LCDC (LCD Control) Register bit values
// Bit 7 - LCD Display Enable (0=Off, 1=On)
// Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
// Bit 5 - Window Display Enable (0=Off, 1=On)
// Bit 4 - BG & Window Tile Data Select (0=8800-97FF, 1=8000-8FFF)
// Bit 3 - BG Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
// Bit 2 - OBJ (Sprite) Size (0=8x8, 1=8x16)
// Bit 1 - OBJ (Sprite) Display Enable (0=Off, 1=On)
// Bit 0 - BG/Window Display (0=Off, 1=On)
const (
	lcdDisplayEnable       uint8 = 7
	windowTileMapSelect    uint8 = 6
	windowDisplayEnable    uint8 = 5
	bgWindowTileDataSelect uint8 = 4
	bgTileMapDisplaySelect uint8 = 3
	spriteSize             uint8 = 2
	spriteDisplayEnable    uint8 = 1
	bgDisplay              uint8 = 0
)

// STAT interrupt source enables.
const (
	statHBlank uint8 = 3
	statVBlank uint8 = 4
	statOAM    uint8 = 5
	statLYC    uint8 = 6
)

// Reader is the bus view needed to source OAM DMA transfers.
type Reader interface {
	Read(address uint16) uint8
}

// GPU is the picture processing unit. It owns VRAM and OAM, advances the
// scanline state machine in dots and renders one line on every HBlank entry.
type GPU struct {
	vram [vramSize]uint8
	oam  OAM

	back  *FrameBuffer // line being drawn
	front *FrameBuffer // last completed frame

	lcdc uint8
	stat uint8 // only the interrupt enable bits
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  Palette
	obp0 Palette
	obp1 Palette
	wy   uint8
	wx   uint8

	cgbPalettes [4]uint8

	dma        uint8
	dmaStarted bool

	mode       Mode
	dots       int
	windowLine int
	statLine   bool
	frames     uint64

	bgIndex [FramebufferWidth]uint8
	claimed [FramebufferWidth]bool
}

// NewGPU returns a GPU with the LCD off. The bus writes the post boot
// register values, which turns it on.
func NewGPU() *GPU {
	return &GPU{
		back:  NewFrameBuffer(),
		front: NewFrameBuffer(),
		mode:  ModeHBlank,
	}
}

// Tick advances the PPU by a number of dots (4 per M-cycle).
func (g *GPU) Tick(dots int, irq interrupt.Requester) {
	if !g.enabled() {
		return
	}
	g.updateStatLine(irq)

	g.dots += dots
	for g.step(irq) {
		g.updateStatLine(irq)
	}
}

// step performs at most one mode transition and reports whether it did.
func (g *GPU) step(irq interrupt.Requester) bool {
	switch g.mode {
	case ModeSearchingOAM:
		if g.dots < oamScanDots {
			return false
		}
		g.dots -= oamScanDots
		g.mode = ModeTransferringData
	case ModeTransferringData:
		if g.dots < transferDots {
			return false
		}
		g.dots -= transferDots
		g.renderScanline()
		g.mode = ModeHBlank
	case ModeHBlank:
		if g.dots < hblankDots {
			return false
		}
		g.dots -= hblankDots
		g.ly++
		if g.ly == visibleLines {
			g.mode = ModeVBlank
			g.front.CopyFrom(g.back)
			g.frames++
			irq.Request(addr.VBlankInterrupt)
		} else {
			g.mode = ModeSearchingOAM
		}
	case ModeVBlank:
		if g.dots < scanlineDots {
			return false
		}
		g.dots -= scanlineDots
		g.ly++
		if g.ly == totalLines {
			g.ly = 0
			g.windowLine = 0
			g.mode = ModeSearchingOAM
		}
	}
	return true
}

// updateStatLine requests the STAT interrupt on a rising edge of the
// combined STAT condition.
func (g *GPU) updateStatLine(irq interrupt.Requester) {
	line := (g.mode == ModeHBlank && bit.IsSet(statHBlank, g.stat)) ||
		(g.mode == ModeVBlank && bit.IsSet(statVBlank, g.stat)) ||
		(g.mode == ModeSearchingOAM && bit.IsSet(statOAM, g.stat)) ||
		(g.ly == g.lyc && bit.IsSet(statLYC, g.stat))

	if line && !g.statLine {
		irq.Request(addr.LCDSTATInterrupt)
	}
	g.statLine = line
}

func (g *GPU) enabled() bool {
	return bit.IsSet(lcdDisplayEnable, g.lcdc)
}

// SpriteHeight is 8 or 16 depending on LCDC bit 2.
func (g *GPU) SpriteHeight() int {
	if bit.IsSet(spriteSize, g.lcdc) {
		return 16
	}
	return 8
}

// tileRow fetches the row of a background/window tile, resolving the tile
// number through the addressing mode selected by LCDC bit 4.
func (g *GPU) tileRow(tileNumber uint8, row int) TileRow {
	var offset int
	if bit.IsSet(bgWindowTileDataSelect, g.lcdc) {
		offset = int(addr.TileData0-addr.VRAMStart) + int(tileNumber)*16
	} else {
		offset = int(addr.TileData2-addr.VRAMStart) + int(int8(tileNumber))*16
	}
	offset += row * 2
	return TileRow{Low: g.vram[offset], High: g.vram[offset+1]}
}

// mapPixel returns the color index at (x, y) of a 256x256 tile map.
func (g *GPU) mapPixel(mapBase uint16, x, y int) uint8 {
	mapOffset := int(mapBase-addr.VRAMStart) + (y/8)*tileMapWidth + x/8
	return g.tileRow(g.vram[mapOffset], y%8).GetPixel(x % 8)
}

func (g *GPU) renderScanline() {
	line := int(g.ly)
	if line >= visibleLines {
		return
	}

	g.renderBackground(line)
	if bit.IsSet(spriteDisplayEnable, g.lcdc) {
		g.renderSprites(line)
	}
}

func (g *GPU) renderBackground(line int) {
	if !bit.IsSet(bgDisplay, g.lcdc) {
		color := g.bgp.Color(0)
		for x := 0; x < FramebufferWidth; x++ {
			g.bgIndex[x] = 0
			g.back.SetPixel(x, line, color)
		}
		return
	}

	bgMap := addr.TileMap0
	if bit.IsSet(bgTileMapDisplaySelect, g.lcdc) {
		bgMap = addr.TileMap1
	}
	windowMap := addr.TileMap0
	if bit.IsSet(windowTileMapSelect, g.lcdc) {
		windowMap = addr.TileMap1
	}
	windowOnLine := bit.IsSet(windowDisplayEnable, g.lcdc) && line >= int(g.wy)
	windowDrawn := false

	for x := 0; x < FramebufferWidth; x++ {
		var colorIndex uint8
		if windowOnLine && x+windowXOffset >= int(g.wx) {
			colorIndex = g.mapPixel(windowMap, x+windowXOffset-int(g.wx), g.windowLine)
			windowDrawn = true
		} else {
			colorIndex = g.mapPixel(bgMap, (x+int(g.scx))&0xFF, (line+int(g.scy))&0xFF)
		}
		g.bgIndex[x] = colorIndex
		g.back.SetPixel(x, line, g.bgp.Color(colorIndex))
	}

	if windowDrawn {
		g.windowLine++
	}
}

func (g *GPU) renderSprites(line int) {
	g.claimed = [FramebufferWidth]bool{}

	for _, sprite := range g.oam.SpritesForScanline(line, g.SpriteHeight()) {
		rowAddr := sprite.rowAddress(line)
		row := TileRow{Low: g.vram[rowAddr], High: g.vram[rowAddr+1]}
		palette := g.obp0
		if sprite.PaletteOBP1 {
			palette = g.obp1
		}

		for px := 0; px < 8; px++ {
			x := sprite.X + px
			if x < 0 || x >= FramebufferWidth || g.claimed[x] {
				continue
			}

			var colorIndex uint8
			if sprite.FlipX {
				colorIndex = row.GetPixelFlipped(px)
			} else {
				colorIndex = row.GetPixel(px)
			}
			if colorIndex == 0 {
				continue
			}

			// an opaque pixel wins against lower priority sprites even when
			// the background then hides it
			g.claimed[x] = true
			if sprite.BehindBG && g.bgIndex[x] != 0 {
				continue
			}
			g.back.SetPixel(x, line, palette.Color(colorIndex))
		}
	}
}

// Read handles the LCD registers mapped at 0xFF40-0xFF4B and 0xFF68-0xFF6B.
func (g *GPU) Read(address uint16) uint8 {
	switch address {
	case addr.LCDC:
		return g.lcdc
	case addr.STAT:
		return g.readSTAT()
	case addr.SCY:
		return g.scy
	case addr.SCX:
		return g.scx
	case addr.LY:
		return g.ly
	case addr.LYC:
		return g.lyc
	case addr.DMA:
		return g.dma
	case addr.BGP:
		return uint8(g.bgp)
	case addr.OBP0:
		return uint8(g.obp0)
	case addr.OBP1:
		return uint8(g.obp1)
	case addr.WY:
		return g.wy
	case addr.WX:
		return g.wx
	case addr.BCPS, addr.BCPD, addr.OCPS, addr.OCPD:
		return g.cgbPalettes[address-addr.BCPS]
	}
	return 0xFF
}

func (g *GPU) readSTAT() uint8 {
	value := 0x80 | g.stat&statEnableMask
	if g.ly == g.lyc {
		value = bit.Set(statCoincidence, value)
	}
	if g.enabled() {
		value |= uint8(g.mode)
	}
	return value
}

func (g *GPU) Write(address uint16, value uint8) {
	switch address {
	case addr.LCDC:
		g.writeLCDC(value)
	case addr.STAT:
		g.stat = value & statEnableMask
	case addr.SCY:
		g.scy = value
	case addr.SCX:
		g.scx = value
	case addr.LY:
		// read only
	case addr.LYC:
		g.lyc = value
	case addr.DMA:
		g.dma = value
		g.dmaStarted = true
	case addr.BGP:
		g.bgp = Palette(value)
	case addr.OBP0:
		g.obp0 = Palette(value)
	case addr.OBP1:
		g.obp1 = Palette(value)
	case addr.WY:
		g.wy = value
	case addr.WX:
		g.wx = value
	case addr.BCPS, addr.BCPD, addr.OCPS, addr.OCPD:
		g.cgbPalettes[address-addr.BCPS] = value
	}
}

func (g *GPU) writeLCDC(value uint8) {
	wasEnabled := g.enabled()
	g.lcdc = value

	switch {
	case !wasEnabled && g.enabled():
		slog.Debug("LCD enabled")
		g.ly = 0
		g.dots = 0
		g.windowLine = 0
		g.mode = ModeSearchingOAM
	case wasEnabled && !g.enabled():
		slog.Debug("LCD disabled")
		g.ly = 0
		g.dots = 0
		g.windowLine = 0
		g.mode = ModeHBlank
		g.statLine = false
		g.back.Clear(WhiteColor)
		g.front.Clear(WhiteColor)
	}
}

func (g *GPU) ReadVRAM(address uint16) uint8 {
	return g.vram[address-addr.VRAMStart]
}

func (g *GPU) WriteVRAM(address uint16, value uint8) {
	g.vram[address-addr.VRAMStart] = value
}

func (g *GPU) ReadOAM(address uint16) uint8 {
	return g.oam.Read(address - addr.OAMStart)
}

func (g *GPU) WriteOAM(address uint16, value uint8) {
	g.oam.Write(address-addr.OAMStart, value)
}

// DMAStarted reports whether a write to the DMA register is waiting to be served.
func (g *GPU) DMAStarted() bool {
	return g.dmaStarted
}

// TransferOAM copies 0xA0 bytes from (DMA << 8) into OAM.
func (g *GPU) TransferOAM(src Reader) {
	base := uint16(g.dma) << 8
	for i := uint16(0); i < oamSize; i++ {
		g.oam.Write(i, src.Read(base+i))
	}
	g.dmaStarted = false
}

// Frame returns the last completed frame.
func (g *GPU) Frame() *FrameBuffer {
	return g.front
}

// Frames returns how many frames have been completed.
func (g *GPU) Frames() uint64 {
	return g.frames
}

func (g *GPU) Mode() Mode {
	return g.mode
}

func (g *GPU) LY() uint8 {
	return g.ly
}
