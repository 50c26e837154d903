package ppu

import (
	"fmt"
	"io"
)

// TileCount is the number of tiles held in VRAM (0x8000-0x97FF).
const TileCount = 384

// Tile represents a tile. Each tile has a size of 8x8 pixels and a color
// depth of 4 colors/gray shades. Tiles can be displayed as sprites or as
// background/window tiles.
type Tile [8][8]uint8

// NewTile decodes a tile from its 16 bytes of VRAM. Each row is
// two bytes, the first holding bit 0 of each pixel and the second
// bit 1, with the leftmost pixel in the most significant bit.
func NewTile(b [16]uint8) Tile {
	t := Tile{}
	for tileY := 0; tileY < 8; tileY++ {
		lo, hi := b[tileY*2], b[tileY*2+1]
		for tileX := 0; tileX < 8; tileX++ {
			t[tileY][tileX] = (lo >> (7 - tileX) & 1) | (hi>>(7-tileX)&1)<<1
		}
	}

	return t
}

var shadeGlyphs = [4]string{" ", "░", "▒", "▓"}

// Print draws the tile to w, one glyph per pixel.
func (t *Tile) Print(w io.Writer) {
	for _, row := range t {
		for _, c := range row {
			fmt.Fprint(w, shadeGlyphs[c&3], " ")
		}
		fmt.Fprintln(w)
	}
}

// tileCache lazily decodes tiles from VRAM. An entry is decoded on
// first access and kept until one of its 16 bytes is written.
type tileCache struct {
	tiles [TileCount]Tile
	valid [TileCount]bool
}

// invalidate marks tile index as stale. Indexes outside the
// tile data region are ignored.
func (c *tileCache) invalidate(index uint16) {
	if index < TileCount {
		c.valid[index] = false
	}
}

// get returns the decoded tile at index, decoding it from b if
// needed.
func (c *tileCache) get(b Bus, index uint16) *Tile {
	index %= TileCount
	if !c.valid[index] {
		var raw [16]uint8
		addr := 0x8000 + index*16
		for i := uint16(0); i < 16; i++ {
			raw[i] = b.Read(addr + i)
		}
		c.tiles[index] = NewTile(raw)
		c.valid[index] = true
	}
	return &c.tiles[index]
}
