package cpu

import "github.com/thelolagemann/lineboy/internal/types"

// Flag bits as packed into the F register.
const (
	flagZero      = types.Bit7
	flagSubtract  = types.Bit6
	flagHalfCarry = types.Bit5
	flagCarry     = types.Bit4
)

// Flags holds the four CPU flags. The F register is derived from
// them, so its low nibble always reads as zero.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Byte packs the flags into the F register.
func (f Flags) Byte() uint8 {
	var v uint8
	if f.Zero {
		v |= flagZero
	}
	if f.Subtract {
		v |= flagSubtract
	}
	if f.HalfCarry {
		v |= flagHalfCarry
	}
	if f.Carry {
		v |= flagCarry
	}
	return v
}

// SetByte unpacks the F register into the flags, discarding the
// low nibble.
func (f *Flags) SetByte(v uint8) {
	f.Zero = v&flagZero != 0
	f.Subtract = v&flagSubtract != 0
	f.HalfCarry = v&flagHalfCarry != 0
	f.Carry = v&flagCarry != 0
}

func (f Flags) String() string {
	b := []byte("----")
	if f.Zero {
		b[0] = 'Z'
	}
	if f.Subtract {
		b[1] = 'N'
	}
	if f.HalfCarry {
		b[2] = 'H'
	}
	if f.Carry {
		b[3] = 'C'
	}
	return string(b)
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = Flags{Zero: zero, Subtract: subtract, HalfCarry: halfCarry, Carry: carry}
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	if c.F.Carry {
		return 1
	}
	return 0
}
