// Package cartridge provides the game cartridge: the ROM, any
// external RAM, and the memory bank controller that maps them
// into the CPU's address space.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/lineboy/pkg/log"
)

var (
	// ErrUnsupportedType is returned when the cartridge type byte
	// at 0x0147 names a controller that is not emulated.
	ErrUnsupportedType = errors.New("unsupported cartridge type")
	// ErrInvalidROM is returned when the ROM is too small to hold
	// a cartridge header.
	ErrInvalidROM = errors.New("invalid rom")
)

// Cartridge represents a game cartridge.
type Cartridge interface {
	// Read returns the value at address, which must be in
	// 0x0000-0x7FFF or 0xA000-0xBFFF.
	Read(address uint16) uint8
	// Write writes value to address, which either selects
	// a bank or writes to external RAM.
	Write(address uint16, value uint8)

	Header() *Header
	Title() string

	// RAM returns the external RAM of the cartridge.
	RAM() []byte
	// Flush hands the external RAM to the persistence hook.
	Flush()
	// Banks returns the currently selected ROM and RAM banks.
	Banks() (rom uint16, ram uint8)
}

// Opt configures a cartridge on construction.
type Opt func(*memoryBankedCartridge)

// WithSave loads previously persisted RAM into the cartridge.
// Data longer than the cartridge RAM is truncated.
func WithSave(data []byte) Opt {
	return func(m *memoryBankedCartridge) {
		copy(m.ram, data)
	}
}

// WithPersist sets the function called with a copy of the
// external RAM whenever it is disabled, or explicitly flushed.
func WithPersist(fn func(ram []byte)) Opt {
	return func(m *memoryBankedCartridge) {
		m.persist = fn
	}
}

// WithLogger sets the logger of the cartridge.
func WithLogger(l log.Logger) Opt {
	return func(m *memoryBankedCartridge) {
		m.log = l
	}
}

// NewCartridge decodes the header of rom and returns the
// Cartridge for its controller type.
func NewCartridge(rom []byte, opts ...Opt) (Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes is smaller than the header", ErrInvalidROM, len(rom))
	}

	// parse the cartridge header (0x0100 - 0x014F)
	header := parseHeader(rom[0x100:0x150])

	base := &memoryBankedCartridge{
		rom:     rom,
		ram:     make([]byte, header.RAMSize),
		romBank: 1,
		banks:   uint16((len(rom) + 0x3FFF) / 0x4000),
		header:  &header,
		log:     log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(base)
	}

	base.log.Infof("cartridge: %s", header.String())
	if !header.ValidChecksum() {
		base.log.Warnf("cartridge: header checksum mismatch (expected %02X, computed %02X)", header.HeaderChecksum, header.ComputeChecksum())
	}

	switch header.CartridgeType {
	case ROM:
		return newROMCartridge(base), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return newMemoryBankedCartridge1(base), nil
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		if header.CartridgeType.HasRTC() {
			base.log.Warnf("cartridge: %s real time clock is not emulated, RTC registers read as RAM", header.CartridgeType)
		}
		return newMemoryBankedCartridge3(base), nil
	}

	return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedType, uint8(header.CartridgeType))
}

// memoryBankedCartridge holds the state shared by every
// controller variant.
type memoryBankedCartridge struct {
	rom, ram []byte
	romBank  uint16
	ramBank  uint8
	banks    uint16

	ramEnabled  bool
	bankingMode uint8

	header  *Header
	persist func([]byte)
	log     log.Logger
}

func (m *memoryBankedCartridge) Header() *Header {
	return m.header
}

// Title returns the trimmed cartridge title.
func (m *memoryBankedCartridge) Title() string {
	return m.header.Title
}

func (m *memoryBankedCartridge) RAM() []byte {
	return m.ram
}

func (m *memoryBankedCartridge) Banks() (uint16, uint8) {
	return m.romBank, m.ramBank
}

func (m *memoryBankedCartridge) Flush() {
	if m.persist == nil || len(m.ram) == 0 {
		return
	}
	save := make([]byte, len(m.ram))
	copy(save, m.ram)
	m.persist(save)
}

// setRAMEnabled updates the RAM enable latch from a write to
// 0x0000-0x1FFF, flushing the RAM when it goes from enabled to
// disabled.
func (m *memoryBankedCartridge) setRAMEnabled(value uint8) {
	enabled := value&0x0F == 0x0A
	if m.ramEnabled && !enabled {
		m.Flush()
	}
	m.ramEnabled = enabled
}

// readROM reads from the fixed bank 0 or the given bank. Reads
// wrap around ROMs smaller than the addressed bank.
func (m *memoryBankedCartridge) readROM(address uint16, bank uint16) uint8 {
	if address < 0x4000 {
		return m.rom[int(address)%len(m.rom)]
	}
	return m.rom[(int(address-0x4000)+int(bank)*0x4000)%len(m.rom)]
}

// readRAM reads from the selected RAM bank, returning 0xFF when
// the RAM is disabled or absent.
func (m *memoryBankedCartridge) readRAM(address uint16) uint8 {
	if !m.ramEnabled || len(m.ram) == 0 {
		return 0xFF
	}
	return m.ram[m.ramIndex(address)]
}

// writeRAM writes to the selected RAM bank, dropping the write
// when the RAM is disabled or absent.
func (m *memoryBankedCartridge) writeRAM(address uint16, value uint8) {
	if !m.ramEnabled || len(m.ram) == 0 {
		return
	}
	m.ram[m.ramIndex(address)] = value
}

func (m *memoryBankedCartridge) ramIndex(address uint16) int {
	return (int(address-0xA000) + int(m.ramBank)*0x2000) % len(m.ram)
}
