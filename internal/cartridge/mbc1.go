package cartridge

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This
// cartridge type supports up to 125 ROM banks and 4 RAM banks.
//
//	0x0000-0x1FFF RAM enable (0x0A in the low nibble enables)
//	0x2000-0x3FFF ROM bank number (5 bits, 0 selects 1)
//	0x4000-0x5FFF RAM bank number, or ROM bank bits 5-6
//	0x6000-0x7FFF banking mode select
type MemoryBankedCartridge1 struct {
	*memoryBankedCartridge
	bank1 uint8 // the 5 bit ROM bank register
}

// newMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func newMemoryBankedCartridge1(base *memoryBankedCartridge) *MemoryBankedCartridge1 {
	m := &MemoryBankedCartridge1{memoryBankedCartridge: base, bank1: 1}
	m.updateROMBank()
	return m
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	if address >= 0xA000 {
		return m.readRAM(address)
	}
	return m.readROM(address, m.romBank)
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
		m.updateROMBank()
	case address < 0x6000:
		m.ramBank = value & 0x03
		m.updateROMBank()
	case address < 0x8000:
		m.bankingMode = value & 0x01
	case address >= 0xA000 && address <= 0xBFFF:
		m.writeRAM(address, value)
	}
}

// updateROMBank computes the bank mapped to 0x4000-0x7FFF. Cartridges
// with more than 32 banks take bits 5-6 from the secondary register.
func (m *MemoryBankedCartridge1) updateROMBank() {
	bank := uint16(m.bank1)
	if m.banks > 32 {
		bank |= uint16(m.ramBank) << 5
	}
	m.romBank = bank % m.banks
}
