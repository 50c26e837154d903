package cpu

import "testing"

func flagByte(z, n, h, c bool) uint8 {
	var f uint8
	if z {
		f |= flagZero
	}
	if n {
		f |= flagSubtract
	}
	if h {
		f |= flagHalfCarry
	}
	if c {
		f |= flagCarry
	}
	return f
}

// aluResult computes the result and flags of the eight ALU
// operations from their definitions.
func aluResult(op uint8, a, n uint8, carry bool) (uint8, uint8) {
	ai, ni, ci := int(a), int(n), 0
	if carry {
		ci = 1
	}

	switch op {
	case 0, 1: // ADD, ADC
		if op == 0 {
			ci = 0
		}
		r := ai + ni + ci
		return uint8(r), flagByte(uint8(r) == 0, false, ai&0xF+ni&0xF+ci > 0xF, r > 0xFF)
	case 2, 3, 7: // SUB, SBC, CP
		if op != 3 {
			ci = 0
		}
		r := ai - ni - ci
		f := flagByte(uint8(r) == 0, true, ai&0xF-ni&0xF-ci < 0, r < 0)
		if op == 7 {
			return a, f
		}
		return uint8(r), f
	case 4:
		return a & n, flagByte(a&n == 0, false, true, false)
	case 5:
		return a ^ n, flagByte(a^n == 0, false, false, false)
	default:
		return a | n, flagByte(a|n == 0, false, false, false)
	}
}

func TestALU_Exhaustive(t *testing.T) {
	names := [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	c, _ := newTestCPU()

	for op := uint8(0); op < 8; op++ {
	values:
		for a := 0; a < 256; a++ {
			for n := 0; n < 256; n++ {
				for _, carry := range []bool{false, true} {
					c.A = uint8(a)
					c.F = Flags{Carry: carry}
					c.decodeALU(0x80|op<<3, uint8(n))

					want, flags := aluResult(op, uint8(a), uint8(n), carry)
					if c.A != want || c.F.Byte() != flags {
						t.Errorf("%s %02X, %02X (carry %t): expected %02X F %02X, got %02X F %02X",
							names[op], a, n, carry, want, flags, c.A, c.F.Byte())
						break values
					}
				}
			}
		}
	}
}

func TestALU_IncDec(t *testing.T) {
	c, _ := newTestCPU()

	for a := 0; a < 256; a++ {
		for _, carry := range []bool{false, true} {
			c.F = Flags{Carry: carry}

			inc := c.increment(uint8(a))
			if c.F.Byte() != flagByte(inc == 0, false, a&0xF == 0xF, carry) {
				t.Errorf("INC %02X: unexpected flags %02X", a, c.F.Byte())
			}
			if dec := c.decrement(inc); dec != uint8(a) {
				t.Errorf("INC then DEC of %02X gave %02X", a, dec)
			}
			if c.F.Carry != carry {
				t.Errorf("INC/DEC %02X changed the carry flag", a)
			}
		}
	}
}

func TestALU_DAA(t *testing.T) {
	c, _ := newTestCPU()

	for a := 0; a < 256; a++ {
		for nhc := uint8(0); nhc < 8; nhc++ {
			n, h, carry := nhc&4 != 0, nhc&2 != 0, nhc&1 != 0

			var correction uint8
			wantCarry := carry
			if h || (!n && a&0xF > 9) {
				correction |= 0x06
			}
			if carry || (!n && a > 0x99) {
				correction |= 0x60
				wantCarry = true
			}
			want := uint8(a) + correction
			if n {
				want = uint8(a) - correction
			}

			c.A = uint8(a)
			c.F = Flags{Subtract: n, HalfCarry: h, Carry: carry}
			c.daa()

			if flags := flagByte(want == 0, n, false, wantCarry); c.A != want || c.F.Byte() != flags {
				t.Errorf("DAA %02X (N %t H %t C %t): expected %02X F %02X, got %02X F %02X",
					a, n, h, carry, want, flags, c.A, c.F.Byte())
			}
		}
	}
}

func TestALU_AddHL(t *testing.T) {
	c, _ := newTestCPU()

	for hl := 0; hl <= 0xFFFF; hl += 0x0FF1 {
		for nn := 0; nn <= 0xFFFF; nn += 0x0F0F {
			for _, zero := range []bool{false, true} {
				c.HL.SetUint16(uint16(hl))
				c.F = Flags{Zero: zero, Subtract: true}
				c.addHL(uint16(nn))

				flags := flagByte(zero, false, hl&0xFFF+nn&0xFFF > 0xFFF, hl+nn > 0xFFFF)
				if c.HL.Uint16() != uint16(hl+nn) || c.F.Byte() != flags {
					t.Fatalf("ADD HL %04X, %04X: expected %04X F %02X, got %04X F %02X",
						hl, nn, uint16(hl+nn), flags, c.HL.Uint16(), c.F.Byte())
				}
			}
		}
	}
}

func TestALU_AddSPSigned(t *testing.T) {
	c, b := newTestCPU()

	for _, sp := range []uint16{0x0000, 0x000F, 0x00FF, 0x0FFF, 0x8000, 0xD00F, 0xFFF8, 0xFFFF} {
		for e := 0; e < 256; e++ {
			b.Write(0x0100, uint8(e))
			c.PC = 0x0100
			c.SP = sp
			c.F = Flags{Zero: true, Subtract: true}

			got := c.addSPSigned()
			want := uint16(int32(sp) + int32(int8(e)))
			flags := flagByte(false, false, int(sp&0xF)+e&0xF > 0xF, int(sp&0xFF)+e > 0xFF)
			if got != want || c.F.Byte() != flags || c.SP != sp {
				t.Fatalf("SP %04X + %d: expected %04X F %02X, got %04X F %02X",
					sp, int8(e), want, flags, got, c.F.Byte())
			}
		}
	}
}
