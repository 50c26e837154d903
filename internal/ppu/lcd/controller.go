package lcd

import (
	"github.com/thelolagemann/lineboy/internal/types"
)

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. When set, the LCD is enabled.
	Enabled bool
	// WindowTileMapAddress represents the Window Tile Map Display Select bit,
	// stored as the start address of the tile map.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// UnsignedTileData represents the BG & Window Tile Data Select bit. When
	// set, tile IDs index from 0x8000. Otherwise they are signed, and index
	// from 0x9000.
	UnsignedTileData bool
	// BackgroundTileMapAddress represents the BG Tile Map Display Select bit,
	// stored as the start address of the tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of a sprite, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit. When reset,
	// both the background and the window are blank.
	BackgroundEnabled bool
}

// NewController returns the LCD controller decoded from the given
// value of types.LCDC.
func NewController(value uint8) Controller {
	c := Controller{}
	c.Write(value)
	return c
}

// Write decodes the value of types.LCDC.
func (c *Controller) Write(value uint8) {
	c.Enabled = types.TestBit(value, 7)
	c.WindowTileMapAddress = 0x9800
	if types.TestBit(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	}
	c.WindowEnabled = types.TestBit(value, 5)
	c.UnsignedTileData = types.TestBit(value, 4)
	c.BackgroundTileMapAddress = 0x9800
	if types.TestBit(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	}
	c.SpriteSize = 8
	if types.TestBit(value, 2) {
		c.SpriteSize = 16
	}
	c.SpriteEnabled = types.TestBit(value, 1)
	c.BackgroundEnabled = types.TestBit(value, 0)
}

// TileIndex returns the tile cache index for a background or
// window tile ID. In signed mode IDs 0-127 address 0x9000-0x97FF,
// which are tiles 256-383 of the cache.
func (c *Controller) TileIndex(id uint8) uint16 {
	if c.UnsignedTileData || id >= 128 {
		return uint16(id)
	}
	return uint16(id) + 256
}
