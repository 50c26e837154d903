package lcd

import (
	"github.com/thelolagemann/lineboy/internal/types"
)

// Status represents the LCD status register. Its value is stored in
// types.STAT as follows:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see below) (Read Only)
//		0: During H-Blank
//		1: During V-Blank
//		2: During Searching OAM-RAM
//		3: During Transferring Data to LCD Driver
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	Coincidence          bool
	Mode                 Mode
}

// NewStatus decodes the given value of types.STAT.
func NewStatus(value uint8) Status {
	return Status{
		CoincidenceInterrupt: types.TestBit(value, 6),
		OAMInterrupt:         types.TestBit(value, 5),
		VBlankInterrupt:      types.TestBit(value, 4),
		HBlankInterrupt:      types.TestBit(value, 3),
		Coincidence:          types.TestBit(value, 2),
		Mode:                 value & 0x03,
	}
}

// InterruptEnabled returns true if entering the given mode
// should request the STAT interrupt. VRAM has no interrupt source.
func (s Status) InterruptEnabled(m Mode) bool {
	switch m {
	case HBlank:
		return s.HBlankInterrupt
	case VBlank:
		return s.VBlankInterrupt
	case OAM:
		return s.OAMInterrupt
	}
	return false
}

// SetMode returns stat with its mode bits replaced by m.
func SetMode(stat uint8, m Mode) uint8 {
	return stat&^0x03 | m&0x03
}
