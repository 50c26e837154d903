package cartridge

import (
	"fmt"
	"strings"
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

type Type uint8

const (
	ROM              Type = 0x00
	MBC1             Type = 0x01
	MBC1RAM          Type = 0x02
	MBC1RAMBATT      Type = 0x03
	MBC3TIMERBATT    Type = 0x0F
	MBC3TIMERRAMBATT Type = 0x10
	MBC3             Type = 0x11
	MBC3RAM          Type = 0x12
	MBC3RAMBATT      Type = 0x13
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBATT:
		return "MBC1+RAM+BATTERY"
	case MBC3TIMERBATT:
		return "MBC3+TIMER+BATTERY"
	case MBC3TIMERRAMBATT:
		return "MBC3+TIMER+RAM+BATTERY"
	case MBC3:
		return "MBC3"
	case MBC3RAM:
		return "MBC3+RAM"
	case MBC3RAMBATT:
		return "MBC3+RAM+BATTERY"
	}
	return fmt.Sprintf("Unknown(0x%02X)", uint8(t))
}

// HasRTC returns true for the MBC3 variants carrying a real
// time clock. The clock itself is not emulated.
func (t Type) HasRTC() bool {
	return t == MBC3TIMERBATT || t == MBC3TIMERRAMBATT
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	// 0x0144-0x0145 - NewLicenseeCode of the game.
	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	raw [0x50]byte
}

// parseHeader parses the header of the given ROM and returns a Header.
// header must hold the 0x50 bytes from 0x0100 to 0x014F.
func parseHeader(header []byte) Header {
	h := Header{}
	copy(h.raw[:], header)

	// parse the mode of the cartridge and parse the header accordingly
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// parse the title
	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = string(header[0x34:0x44])
	} else {
		h.Title = string(header[0x34:0x43])
	}
	h.Title = strings.TrimRight(h.Title, "\x00 ")

	h.NewLicenseeCode = string(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.ROMSize = (32 * 1024) << header[0x48]

	// unknown RAM sizes are treated as no RAM
	h.RAMSize = ramMAP[header[0x49]]

	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// ComputeChecksum computes the header checksum over 0x0134-0x014C.
func (h *Header) ComputeChecksum() uint8 {
	var sum uint8
	for _, b := range h.raw[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum
}

// ValidChecksum reports whether the stored header checksum matches
// the computed one. Real hardware refuses to boot a mismatch, the
// emulator only reports it.
func (h *Header) ValidChecksum() bool {
	return h.ComputeChecksum() == h.HeaderChecksum
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
