package ppu

import "github.com/thelolagemann/lineboy/internal/types"

// Sprite is an entry of OAM.
type Sprite struct {
	// Y is the sprite's vertical position on screen + 16.
	Y uint8
	// X is the sprite's horizontal position on screen + 8.
	X      uint8
	TileID uint8
	spriteAttributes
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority, decoded but not used when rendering
	priority bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	flipY bool
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	flipX bool
	// Bit 4 - Palette number  (0=OBP0, 1=OBP1)
	useSecondPalette bool
}

// readSprite decodes the OAM entry at index from b.
func readSprite(b Bus, index uint16) Sprite {
	addr := types.OAMStart + index*4
	attr := b.Read(addr + 3)
	return Sprite{
		Y:      b.Read(addr),
		X:      b.Read(addr + 1),
		TileID: b.Read(addr + 2),
		spriteAttributes: spriteAttributes{
			priority:         attr&types.Bit7 != 0,
			flipY:            attr&types.Bit6 != 0,
			flipX:            attr&types.Bit5 != 0,
			useSecondPalette: attr&types.Bit4 != 0,
		},
	}
}
