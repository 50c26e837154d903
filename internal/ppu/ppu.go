// Package ppu implements the Game Boy's (P)ixel (P)rocessing (U)nit as a
// scanline renderer. Each call to AdvanceLine draws one full line of
// background, window and sprites into an RGBA framebuffer.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
package ppu

import (
	"fmt"
	"io"

	"github.com/thelolagemann/lineboy/internal/ppu/lcd"
	"github.com/thelolagemann/lineboy/internal/ppu/palette"
	"github.com/thelolagemann/lineboy/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
	// FrameSize is the size in bytes of an RGBA frame.
	FrameSize = ScreenWidth * ScreenHeight * 4
)

// Bus is the memory the PPU reads VRAM, OAM and its registers from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// PPU renders scanlines from VRAM and OAM into Frame.
type PPU struct {
	// Frame is the RGBA framebuffer, row-major. It is overwritten
	// line by line and persists between frames.
	Frame [FrameSize]uint8

	// Palette maps shades 0-3 to RGB colours.
	Palette palette.Palette

	tiles tileCache

	// windowLine is the internal window line counter, only
	// incremented on lines where the window was drawn
	windowLine uint8

	// line holds the colour indexes of the background and
	// window for the line being rendered
	line [ScreenWidth]uint8
}

// New returns a new PPU using the classic palette.
func New() *PPU {
	return &PPU{
		Palette: palette.Get(palette.Classic),
	}
}

// InvalidateTile marks the tile at index stale, so that it is
// decoded again on next use.
func (p *PPU) InvalidateTile(index uint16) {
	p.tiles.invalidate(index)
}

// Tile returns the decoded tile at index.
func (p *PPU) Tile(b Bus, index uint16) *Tile {
	return p.tiles.get(b, index)
}

// WindowLine returns the internal window line counter.
func (p *PPU) WindowLine() uint8 {
	return p.windowLine
}

// AdvanceLine renders the current line (types.LY) if it is visible,
// or resets the window line counter during VBlank, and then moves
// LY on to the next line, wrapping after line 153.
func (p *PPU) AdvanceLine(b Bus) {
	ly := b.Read(types.LY)
	if ly < ScreenHeight {
		p.RenderLine(b, ly)
	} else {
		p.windowLine = 0
	}

	b.Write(types.LY, uint8((uint16(ly)+1)%lcd.TotalLines))
}

// RenderLine draws line ly into the framebuffer.
func (p *PPU) RenderLine(b Bus, ly uint8) {
	c := lcd.NewController(b.Read(types.LCDC))

	if c.BackgroundEnabled {
		p.renderBackground(b, &c, ly)
		if c.WindowEnabled {
			p.renderWindow(b, &c, ly)
		}
	} else {
		for x := range p.line {
			p.line[x] = 0
		}
	}

	bgp := b.Read(types.BGP)
	for x := 0; x < ScreenWidth; x++ {
		if c.BackgroundEnabled {
			p.setPixel(x, int(ly), p.Palette.Colour(bgp, p.line[x]))
		} else {
			p.setPixel(x, int(ly), p.Palette[0])
		}
	}

	if c.SpriteEnabled {
		p.renderSprites(b, &c, ly)
	}
}

func (p *PPU) renderBackground(b Bus, c *lcd.Controller, ly uint8) {
	y := b.Read(types.SCY) + ly // wraps at 256
	scx := b.Read(types.SCX)
	mapRow := c.BackgroundTileMapAddress + uint16(y/8)*32

	for x := 0; x < ScreenWidth; x++ {
		px := scx + uint8(x)
		id := b.Read(mapRow + uint16(px/8))
		tile := p.tiles.get(b, c.TileIndex(id))
		p.line[x] = tile[y%8][px%8]
	}
}

func (p *PPU) renderWindow(b Bus, c *lcd.Controller, ly uint8) {
	wy, wx := b.Read(types.WY), b.Read(types.WX)
	if wy > ly || wx >= 166 {
		return
	}

	mapRow := c.WindowTileMapAddress + uint16(p.windowLine/8)*32
	start := int(wx) - 7
	for x := start; x < ScreenWidth; x++ {
		if x < 0 {
			continue
		}
		col := x - start
		id := b.Read(mapRow + uint16(col/8))
		tile := p.tiles.get(b, c.TileIndex(id))
		p.line[x] = tile[p.windowLine%8][col%8]
	}
	p.windowLine++
}

// renderSprites draws every sprite on line ly. OAM is walked from the
// last entry to the first, so lower indexes end up on top.
func (p *PPU) renderSprites(b Bus, c *lcd.Controller, ly uint8) {
	height := int(c.SpriteSize)
	obp0, obp1 := b.Read(types.OBP0), b.Read(types.OBP1)

	for i := 39; i >= 0; i-- {
		s := readSprite(b, uint16(i))
		row := int(ly) - (int(s.Y) - 16)
		if row < 0 || row >= height {
			continue
		}
		if s.flipY {
			row = height - 1 - row
		}

		id := uint16(s.TileID)
		if height == 16 {
			id &= 0xFE
		}
		tile := p.tiles.get(b, id+uint16(row/8))

		pal := obp0
		if s.useSecondPalette {
			pal = obp1
		}

		for col := 0; col < 8; col++ {
			x := int(s.X) - 8 + col
			if x < 0 || x >= ScreenWidth {
				continue
			}
			tx := col
			if s.flipX {
				tx = 7 - col
			}
			colour := tile[row%8][tx]
			if colour == 0 {
				continue // transparent
			}
			p.setPixel(x, int(ly), p.Palette.Colour(pal, colour))
		}
	}
}

func (p *PPU) setPixel(x, y int, rgb [3]uint8) {
	i := (y*ScreenWidth + x) * 4
	p.Frame[i] = rgb[0]
	p.Frame[i+1] = rgb[1]
	p.Frame[i+2] = rgb[2]
	p.Frame[i+3] = 0xFF
}

// Blank fills the framebuffer with the lightest shade, as shown
// while the LCD is off.
func (p *PPU) Blank() {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			p.setPixel(x, y, p.Palette[0])
		}
	}
}

// PrintTiles draws every tile of the cache to w.
func (p *PPU) PrintTiles(w io.Writer, b Bus) {
	for i := uint16(0); i < TileCount; i++ {
		fmt.Fprintf(w, "Tile 0x%03X\n", i)
		p.tiles.get(b, i).Print(w)
		fmt.Fprintln(w)
	}
}
