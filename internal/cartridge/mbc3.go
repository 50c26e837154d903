package cartridge

// MemoryBankedCartridge3 represents a MemoryBankedCartridge3 cartridge. This
// cartridge type supports up to 128 ROM banks and 4 RAM banks. Bank 0 may
// be selected for 0x4000-0x7FFF, unlike MBC1.
//
// The real time clock of the TIMER variants is not emulated, selecting
// an RTC register (0x08-0x0C) is logged and selects a RAM bank instead.
type MemoryBankedCartridge3 struct {
	*memoryBankedCartridge
	warnedRTC bool
}

// newMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func newMemoryBankedCartridge3(base *memoryBankedCartridge) *MemoryBankedCartridge3 {
	return &MemoryBankedCartridge3{memoryBankedCartridge: base}
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	if address >= 0xA000 {
		return m.readRAM(address)
	}
	return m.readROM(address, m.romBank)
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x4000:
		m.romBank = uint16(value&0x7F) % m.banks
	case address < 0x6000:
		if value >= 0x08 && !m.warnedRTC {
			m.warnedRTC = true
			m.log.Warnf("cartridge: RTC register 0x%02X selected, real time clock is not emulated", value)
		}
		m.ramBank = value & 0x03
	case address < 0x8000:
		// RTC latch, stored only
		m.bankingMode = value & 0x01
	case address >= 0xA000 && address <= 0xBFFF:
		m.writeRAM(address, value)
	}
}
