package lcd

// Mode represents a mode of the LCD, as held in the low 2 bits
// of the STAT register.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

// Mode durations in T-cycles. A full line takes 456 T-cycles, and
// a frame is 154 lines.
const (
	OAMCycles      = 80
	VRAMCycles     = 172
	HBlankCycles   = 204
	LineCycles     = OAMCycles + VRAMCycles + HBlankCycles
	VisibleLines   = 144
	TotalLines     = 154
	FrameCycles    = LineCycles * TotalLines
	VBlankDuration = LineCycles * (TotalLines - VisibleLines)
)

// ModeName returns the name of the mode.
func ModeName(m Mode) string {
	switch m {
	case HBlank:
		return "HBlank"
	case VBlank:
		return "VBlank"
	case OAM:
		return "OAM"
	case VRAM:
		return "VRAM"
	}
	return "?"
}
