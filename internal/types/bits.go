package types

// Bit masks for an 8-bit value, from the least significant bit.
const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// TestBit returns true if bit i of b is set.
func TestBit(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// SetBit returns b with bit i set.
func SetBit(b, i uint8) uint8 {
	return b | 1<<i
}

// ResetBit returns b with bit i cleared.
func ResetBit(b, i uint8) uint8 {
	return b &^ (1 << i)
}
