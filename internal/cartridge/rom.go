package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC, the second 16KiB of ROM is always mapped
// to 0x4000-0x7FFF.
type ROMCartridge struct {
	*memoryBankedCartridge
}

// newROMCartridge returns a new ROM cartridge.
func newROMCartridge(base *memoryBankedCartridge) *ROMCartridge {
	return &ROMCartridge{memoryBankedCartridge: base}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address >= 0xA000 {
		return r.readRAM(address)
	}
	return r.readROM(address, 1)
}

// Write only updates the RAM enable latch, or writes to RAM if the
// header declares any.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		r.setRAMEnabled(value)
	case address >= 0xA000 && address <= 0xBFFF:
		r.writeRAM(address, value)
	}
}
