package types

// Register represents an 8-bit CPU register.
type Register = uint8

// RegisterPair holds a 16-bit register (BC, DE, HL) as a single
// value. The high and low halves are derived by shift and mask,
// so writes to either half are always visible through the other.
type RegisterPair struct {
	value uint16
}

// Uint16 returns the value of the pair.
func (r *RegisterPair) Uint16() uint16 {
	return r.value
}

// SetUint16 sets the value of the pair.
func (r *RegisterPair) SetUint16(v uint16) {
	r.value = v
}

// High returns the most significant byte (B, D, H).
func (r *RegisterPair) High() Register {
	return Register(r.value >> 8)
}

// Low returns the least significant byte (C, E, L).
func (r *RegisterPair) Low() Register {
	return Register(r.value)
}

// SetHigh replaces the most significant byte.
func (r *RegisterPair) SetHigh(v Register) {
	r.value = r.value&0x00FF | uint16(v)<<8
}

// SetLow replaces the least significant byte.
func (r *RegisterPair) SetLow(v Register) {
	r.value = r.value&0xFF00 | uint16(v)
}
