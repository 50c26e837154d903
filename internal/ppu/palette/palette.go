// Package palette provides the shades a DMG palette register
// selects between.
package palette

const (
	// Classic is the default palette, a pale green to deep
	// purple ramp.
	Classic = iota
	// Greyscale is a plain greyscale palette.
	Greyscale
	// Green attempts to emulate the original colour palette
	// as it would have appeared on the original Game Boy.
	Green
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// from the lightest shade (0) to the darkest (3).
type Palette [4][3]uint8

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	// Classic
	{
		{0xE2, 0xF3, 0xE4},
		{0x94, 0xE3, 0x44},
		{0x46, 0x87, 0x8F},
		{0x33, 0x2C, 0x50},
	},
	// Greyscale
	{
		{0xFF, 0xFF, 0xFF},
		{0xCC, 0xCC, 0xCC},
		{0x77, 0x77, 0x77},
		{0x00, 0x00, 0x00},
	},
	// Green
	{
		{0x9B, 0xBC, 0x0F},
		{0x8B, 0xAC, 0x0F},
		{0x30, 0x62, 0x30},
		{0x0F, 0x38, 0x0F},
	},
}

// Get returns the palette with the given index, falling back
// to Classic for unknown indexes.
func Get(index int) Palette {
	if index < 0 || index >= len(Palettes) {
		return Palettes[Classic]
	}
	return Palettes[index]
}

// Shade returns the shade index selected by a palette register
// (BGP, OBP0, OBP1) for the given colour index.
func Shade(register, colour uint8) uint8 {
	return register >> (colour * 2) & 0x03
}

// Colour returns the RGB colour for the given colour index, as
// mapped through the palette register.
func (p Palette) Colour(register, colour uint8) [3]uint8 {
	return p[Shade(register, colour)]
}
