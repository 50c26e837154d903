package cpu

import (
	"github.com/thelolagemann/lineboy/internal/types"
)

// LoadState sets the registers from s. Memory is loaded separately
// by the bus.
func (c *CPU) LoadState(s types.State) {
	c.PC = uint16(s.PC)
	c.SP = uint16(s.SP)
	c.A = uint8(s.A)
	c.F.SetByte(uint8(s.F))
	c.BC.SetUint16(uint16(s.B)<<8 | uint16(s.C&0xFF))
	c.DE.SetUint16(uint16(s.D)<<8 | uint16(s.E&0xFF))
	c.HL.SetUint16(uint16(s.H)<<8 | uint16(s.L&0xFF))
	c.IME = s.IME != 0
	c.eiDelay = 0
	if s.EI != nil && *s.EI != 0 {
		c.eiDelay = 1
	}
	c.halted, c.haltBug, c.fault = false, false, nil
}

// CompareState checks the registers against s, returning a
// *types.MismatchError for the first register that differs.
func (c *CPU) CompareState(s types.State) error {
	errs := []error{
		types.Compare("A", s.A, int(c.A)),
		types.Compare("F", s.F, int(c.F.Byte())),
		types.Compare("B", s.B, int(c.BC.High())),
		types.Compare("C", s.C, int(c.BC.Low())),
		types.Compare("D", s.D, int(c.DE.High())),
		types.Compare("E", s.E, int(c.DE.Low())),
		types.Compare("H", s.H, int(c.HL.High())),
		types.Compare("L", s.L, int(c.HL.Low())),
		types.Compare("PC", s.PC, int(c.PC)),
		types.Compare("SP", s.SP, int(c.SP)),
		types.Compare("IME", s.IME, boolToInt(c.IME)),
	}
	if s.EI != nil {
		errs = append(errs, types.Compare("EI", *s.EI, boolToInt(c.eiDelay > 0)))
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
