// Package mmu provides a memory management unit for the Game Boy. The
// MMU owns the 64kB address space, and routes reads and writes to the
// cartridge, the joypad, and the plain memory regions. Writes to some
// hardware registers trigger side effects handled here: OAM DMA, the
// LY=LYC coincidence check and tile cache invalidation.
package mmu

import (
	"fmt"
	"io"

	"github.com/thelolagemann/lineboy/internal/cartridge"
	"github.com/thelolagemann/lineboy/internal/interrupts"
	"github.com/thelolagemann/lineboy/internal/types"
	"github.com/thelolagemann/lineboy/pkg/log"
)

// IOBus is the interface that the MMU uses to communicate with the other
// components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// TileCache is notified whenever tile data in VRAM is written.
type TileCache interface {
	InvalidateTile(index uint16)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// 64kB address space, backing everything not routed elsewhere
	raw [0x10000]uint8

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x97FF - tile data, invalidated on write
	Video TileCache

	// 0xFF00 - joypad
	Joypad IOBus

	Log log.Logger

	// flat disables all routing, the conformance vectors
	// expect a plain 64kB of RAM
	flat bool
}

// NewMMU returns a new MMU for the given cartridge.
func NewMMU(cart cartridge.Cartridge, l log.Logger) *MMU {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &MMU{
		Cart: cart,
		Log:  l,
	}
}

// NewFlat returns an MMU without a cartridge or any hardware
// registers, every address is plain RAM.
func NewFlat() *MMU {
	return &MMU{
		Log:  log.NewNullLogger(),
		flat: true,
	}
}

// AttachVideo attaches the tile cache to be invalidated on
// VRAM writes.
func (m *MMU) AttachVideo(video TileCache) {
	m.Video = video
}

// AttachJoypad attaches the joypad, which then owns types.P1.
func (m *MMU) AttachJoypad(joypad IOBus) {
	m.Joypad = joypad
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	if m.flat {
		return m.raw[address]
	}

	switch {
	case address < 0x8000 || address >= types.ExtRAMStart && address <= types.ExtRAMEnd:
		if m.Cart != nil {
			return m.Cart.Read(address)
		}
	case address == types.P1:
		if m.Joypad != nil {
			return m.Joypad.Read(address)
		}
	}

	return m.raw[address]
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	if m.flat {
		m.raw[address] = value
		return
	}

	switch {
	case address < 0x8000 || address >= types.ExtRAMStart && address <= types.ExtRAMEnd:
		if m.Cart != nil {
			m.Cart.Write(address, value)
			return
		}
	case address >= types.VRAMStart && address < types.ExtRAMStart:
		if m.Video != nil && address < types.TileDataEnd {
			m.Video.InvalidateTile((address - types.VRAMStart) / 16)
		}
	case address == types.P1:
		if m.Joypad != nil {
			m.Joypad.Write(address, value)
			return
		}
	case address == types.DMA:
		m.dma(value)
	case address == types.LY:
		m.raw[address] = value
		m.compareLYC()
		return
	}

	m.raw[address] = value
}

// Read16 reads a little-endian 16-bit value.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes a little-endian 16-bit value.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// dma copies 160 bytes from (value << 8) into OAM.
func (m *MMU) dma(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < types.OAMSize; i++ {
		m.raw[types.OAMStart+i] = m.Read(source + i)
	}
}

// compareLYC updates the STAT coincidence flag after LY has been
// written, requesting the STAT interrupt if enabled.
func (m *MMU) compareLYC() {
	stat := m.raw[types.STAT]
	if m.raw[types.LY] == m.raw[types.LYC] {
		m.raw[types.STAT] = stat | types.Bit2
		if stat&types.Bit6 != 0 {
			interrupts.Request(m, interrupts.LCDFlag)
		}
	} else {
		m.raw[types.STAT] = stat &^ types.Bit2
	}
}

// LoadState writes the RAM entries and IE of s into memory.
func (m *MMU) LoadState(s types.State) {
	for _, row := range s.RAM {
		if len(row) < 2 {
			continue
		}
		m.Write(uint16(row[0]), uint8(row[1]))
	}
	m.Write(types.IE, uint8(s.IE))
}

// CompareState returns a *types.MismatchError for IE, or the first
// RAM entry of s that differs from memory.
func (m *MMU) CompareState(s types.State) error {
	if err := types.Compare("IE", s.IE, int(m.Read(types.IE))); err != nil {
		return err
	}
	for _, row := range s.RAM {
		if len(row) < 2 {
			continue
		}
		if err := types.Compare(fmt.Sprintf("$%04X", row[0]), row[1], int(m.Read(uint16(row[0])))); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes a hex dump of [start, end) to w, 16 bytes per line.
func (m *MMU) Dump(w io.Writer, start, end uint16) {
	for addr := uint32(start) &^ 0xF; addr < uint32(end); addr += 16 {
		fmt.Fprintf(w, "%04X:", addr)
		for i := uint32(0); i < 16; i++ {
			fmt.Fprintf(w, " %02X", m.Read(uint16(addr+i)))
		}
		fmt.Fprintln(w)
	}
}
