package ppu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thelolagemann/lineboy/internal/ppu/palette"
	"github.com/thelolagemann/lineboy/internal/types"
)

type memory [0x10000]uint8

func (m *memory) Read(addr uint16) uint8         { return m[addr] }
func (m *memory) Write(addr uint16, value uint8) { m[addr] = value }

// fillTile sets every pixel of the tile at addr to colour.
func fillTile(m *memory, addr uint16, colour uint8) {
	var lo, hi uint8
	if colour&1 != 0 {
		lo = 0xFF
	}
	if colour&2 != 0 {
		hi = 0xFF
	}
	for i := uint16(0); i < 8; i++ {
		m[addr+i*2] = lo
		m[addr+i*2+1] = hi
	}
}

func pixel(p *PPU, x, y int) [3]uint8 {
	i := (y*ScreenWidth + x) * 4
	return [3]uint8{p.Frame[i], p.Frame[i+1], p.Frame[i+2]}
}

func shade(i int) [3]uint8 {
	return palette.Get(palette.Classic)[i]
}

func newTestMemory() *memory {
	m := &memory{}
	m[types.LCDC] = 0x91 // LCD on, unsigned tile data, BG on
	m[types.BGP] = 0xE4  // identity
	m[types.OBP0] = 0xE4
	m[types.OBP1] = 0x1B // reversed
	return m
}

func TestNewTile(t *testing.T) {
	tile := NewTile([16]uint8{0x3C, 0x7E})
	expected := [8]uint8{0, 2, 3, 3, 3, 3, 2, 0}
	if tile[0] != expected {
		t.Errorf("expected %v, got %v", expected, tile[0])
	}
}

func TestTileCache_Invalidate(t *testing.T) {
	m := newTestMemory()
	p := New()

	fillTile(m, 0x8010, 1)
	if p.Tile(m, 1)[0][0] != 1 {
		t.Fatalf("expected tile 1 to decode colour 1")
	}

	// a write without invalidation is not observed
	fillTile(m, 0x8010, 2)
	if p.Tile(m, 1)[0][0] != 1 {
		t.Errorf("expected cached tile to be kept")
	}

	p.InvalidateTile(0)
	if p.Tile(m, 1)[0][0] != 1 {
		t.Errorf("expected invalidating tile 0 to leave tile 1 cached")
	}

	p.InvalidateTile(1)
	if p.Tile(m, 1)[0][0] != 2 {
		t.Errorf("expected tile 1 to be decoded again")
	}

	// out of range indexes are ignored
	p.InvalidateTile(TileCount + 10)
}

func TestRenderLine_Background(t *testing.T) {
	m := newTestMemory()
	p := New()

	fillTile(m, 0x8010, 3)
	m[0x9800] = 1
	p.RenderLine(m, 0)

	if pixel(p, 0, 0) != shade(3) || pixel(p, 7, 0) != shade(3) {
		t.Errorf("expected first tile to be drawn in shade 3")
	}
	if pixel(p, 8, 0) != shade(0) {
		t.Errorf("expected second tile to be drawn in shade 0")
	}
	if p.Frame[3] != 0xFF {
		t.Errorf("expected opaque alpha")
	}

	// scrolling wraps at 256
	m[types.SCX] = 252
	p.RenderLine(m, 0)
	if pixel(p, 3, 0) != shade(0) || pixel(p, 4, 0) != shade(3) {
		t.Errorf("expected scroll to wrap around the tile map")
	}
}

func TestRenderLine_SignedTileData(t *testing.T) {
	m := newTestMemory()
	m[types.LCDC] = 0x81 // signed tile data
	p := New()

	fillTile(m, 0x9000, 2) // id 0 -> tile 256
	fillTile(m, 0x8800, 1) // id 128 -> tile 128
	m[0x9800] = 0
	m[0x9801] = 128
	p.RenderLine(m, 0)

	if pixel(p, 0, 0) != shade(2) {
		t.Errorf("expected id 0 to map to 0x9000")
	}
	if pixel(p, 8, 0) != shade(1) {
		t.Errorf("expected id 128 to map to 0x8800")
	}
}

func TestRenderLine_BackgroundDisabled(t *testing.T) {
	m := newTestMemory()
	m[types.LCDC] = 0x90
	m[types.BGP] = 0xFF
	p := New()

	p.RenderLine(m, 0)
	if pixel(p, 0, 0) != shade(0) {
		t.Errorf("expected disabled background to draw shade 0")
	}
}

func TestRenderLine_Window(t *testing.T) {
	m := newTestMemory()
	m[types.LCDC] = 0x91 | types.Bit5 | types.Bit6 // window on, map 0x9C00
	m[types.WY] = 2
	m[types.WX] = 7 + 80
	p := New()

	fillTile(m, 0x8010, 3)
	m[0x9C00] = 1

	p.RenderLine(m, 1)
	if p.WindowLine() != 0 {
		t.Errorf("expected window counter to stay at 0 above WY")
	}

	p.RenderLine(m, 2)
	if pixel(p, 79, 2) != shade(0) || pixel(p, 80, 2) != shade(3) {
		t.Errorf("expected window to start at WX-7")
	}
	if p.WindowLine() != 1 {
		t.Errorf("expected window counter to be 1, got %d", p.WindowLine())
	}

	// off screen windows are not drawn, and do not count
	m[types.WX] = 166
	p.RenderLine(m, 3)
	if p.WindowLine() != 1 {
		t.Errorf("expected window counter to stay at 1, got %d", p.WindowLine())
	}
}

func TestRenderLine_Sprites(t *testing.T) {
	m := newTestMemory()
	m[types.LCDC] = 0x93 // sprites on
	p := New()

	// tile 1: left half colour 1, right half transparent
	for i := uint16(0); i < 8; i++ {
		m[0x8010+i*2] = 0xF0
	}
	fillTile(m, 0x8020, 2)

	// sprite 0 at (0, 0) using tile 1
	m[0xFE00], m[0xFE01], m[0xFE02] = 16, 8, 1
	// sprite 1 at (2, 0) using tile 2, OBP1
	m[0xFE04], m[0xFE05], m[0xFE06], m[0xFE07] = 16, 10, 2, types.Bit4

	p.RenderLine(m, 0)

	if pixel(p, 0, 0) != shade(1) {
		t.Errorf("expected sprite 0 pixel, got %v", pixel(p, 0, 0))
	}
	// overlap: sprite 0 wins
	if pixel(p, 2, 0) != shade(1) {
		t.Errorf("expected lower OAM index to win")
	}
	// sprite 0 transparent, sprite 1 shows through in OBP1
	if pixel(p, 5, 0) != shade(1) {
		t.Errorf("expected sprite 1 colour 2 mapped through OBP1 to shade 1, got %v", pixel(p, 5, 0))
	}
	if pixel(p, 9, 0) != shade(1) {
		t.Errorf("expected sprite 1 at x=9")
	}
	if pixel(p, 10, 0) != shade(0) {
		t.Errorf("expected background after sprite 1")
	}

	// sprites disabled
	m[types.LCDC] = 0x91
	p.RenderLine(m, 0)
	if pixel(p, 0, 0) != shade(0) {
		t.Errorf("expected no sprites with LCDC.1 clear")
	}
}

func TestRenderLine_SpriteFlip(t *testing.T) {
	m := newTestMemory()
	m[types.LCDC] = 0x97 // 8x16 sprites
	p := New()

	// tile 2 (top) colour 1, tile 3 (bottom) colour 3
	fillTile(m, 0x8020, 1)
	fillTile(m, 0x8030, 3)

	// tile id 3 is masked to 2 in 8x16 mode, flipped vertically
	m[0xFE00], m[0xFE01], m[0xFE02], m[0xFE03] = 16, 8, 3, types.Bit6
	p.RenderLine(m, 0)
	if pixel(p, 0, 0) != shade(3) {
		t.Errorf("expected flipped sprite to show bottom tile on line 0")
	}
	p.RenderLine(m, 15)
	if pixel(p, 0, 15) != shade(1) {
		t.Errorf("expected flipped sprite to show top tile on line 15")
	}
}

func TestAdvanceLine(t *testing.T) {
	m := newTestMemory()
	p := New()

	m[types.LY] = 0
	p.AdvanceLine(m)
	if m[types.LY] != 1 {
		t.Errorf("expected LY 1, got %d", m[types.LY])
	}

	p.windowLine = 5
	m[types.LY] = 144
	p.AdvanceLine(m)
	if p.WindowLine() != 0 {
		t.Errorf("expected window line counter to reset in VBlank")
	}

	m[types.LY] = 153
	p.AdvanceLine(m)
	if m[types.LY] != 0 {
		t.Errorf("expected LY to wrap to 0, got %d", m[types.LY])
	}
}

func TestPrintTiles(t *testing.T) {
	m := newTestMemory()
	fillTile(m, 0x8000, 3)
	var buf bytes.Buffer
	New().PrintTiles(&buf, m)

	if !strings.HasPrefix(buf.String(), "Tile 0x000\n▓ ▓") {
		t.Errorf("unexpected tile dump %q", buf.String()[:32])
	}
}
