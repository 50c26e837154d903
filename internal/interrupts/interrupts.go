package interrupts

import (
	"github.com/thelolagemann/lineboy/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode (lcd.VBlank).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	// Serial transfers are not emulated, but the flag
	// may still be requested by writing to types.IF.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low, if the corresponding select
	// bit (types.P1 bit 4 or 5) is set to 0.
	JoypadFlag = types.Bit4

	// Mask covers the five interrupt sources.
	Mask = 0x1F
)

// Bus is the memory the interrupt registers live in.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the IF register.
func Request(b Bus, flag uint8) {
	b.Write(types.IF, b.Read(types.IF)|flag)
}

// Pending returns the interrupts that are both requested
// and enabled.
func Pending(b Bus) uint8 {
	return b.Read(types.IE) & b.Read(types.IF) & Mask
}

// Next returns the highest priority interrupt in pending
// and its vector. VBlank has the highest priority and
// Joypad the lowest. ok is false when nothing is pending.
func Next(pending uint8) (flag uint8, vector uint16, ok bool) {
	for i := uint8(0); i < 5; i++ {
		// get the flag for the current interrupt
		flag = 1 << i
		if pending&flag != 0 {
			return flag, Vector(i), true
		}
	}

	return 0, 0, false
}

// Vector returns the vector of the interrupt with the
// given bit index.
func Vector(bit uint8) uint16 {
	return 0x0040 + uint16(bit)*8
}

// Name returns a human readable name for a single
// interrupt flag.
func Name(flag uint8) string {
	switch flag {
	case VBlankFlag:
		return "VBlank"
	case LCDFlag:
		return "LCD"
	case TimerFlag:
		return "Timer"
	case SerialFlag:
		return "Serial"
	case JoypadFlag:
		return "Joypad"
	}
	return "Unknown"
}
