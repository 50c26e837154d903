package cartridge

import (
	"bytes"
	"errors"
	"testing"
)

// newROM returns a ROM of the given number of banks, with the
// first byte of every bank set to the bank number.
func newROM(cartType Type, banks int, ramCode uint8) []byte {
	rom := make([]byte, banks*0x4000)
	for i := 0; i < banks; i++ {
		rom[i*0x4000] = uint8(i)
		rom[i*0x4000+1] = 0xAA
	}
	copy(rom[0x134:], "TESTROM")
	rom[0x147] = uint8(cartType)

	sizeCode := uint8(0)
	for 2<<sizeCode < banks {
		sizeCode++
	}
	rom[0x148] = sizeCode
	rom[0x149] = ramCode

	// fix up the header checksum
	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestNewCartridge_Header(t *testing.T) {
	c, err := NewCartridge(newROM(MBC1RAMBATT, 8, 0x03))
	if err != nil {
		t.Fatal(err)
	}

	h := c.Header()
	if h.Title != "TESTROM" {
		t.Errorf("expected title TESTROM, got %q", h.Title)
	}
	if h.ROMSize != 128*1024 {
		t.Errorf("expected 128KiB ROM, got %d", h.ROMSize)
	}
	if h.RAMSize != 32*1024 || len(c.RAM()) != 32*1024 {
		t.Errorf("expected 32KiB RAM, got %d", h.RAMSize)
	}
	if !h.ValidChecksum() {
		t.Errorf("expected header checksum to be valid")
	}
	if _, ok := c.(*MemoryBankedCartridge1); !ok {
		t.Errorf("expected MBC1 cartridge, got %T", c)
	}
}

func TestNewCartridge_RAMSizes(t *testing.T) {
	sizes := map[uint8]int{0x00: 0, 0x02: 8192, 0x03: 32768, 0x04: 131072, 0x05: 65536}
	for code, size := range sizes {
		c, err := NewCartridge(newROM(MBC3RAMBATT, 4, code))
		if err != nil {
			t.Fatal(err)
		}
		if len(c.RAM()) != size {
			t.Errorf("ram code %02x: expected %d bytes, got %d", code, size, len(c.RAM()))
		}
	}
}

func TestNewCartridge_Errors(t *testing.T) {
	if _, err := NewCartridge(make([]byte, 0x100)); !errors.Is(err, ErrInvalidROM) {
		t.Errorf("expected ErrInvalidROM, got %v", err)
	}

	rom := newROM(ROM, 2, 0)
	rom[0x147] = 0x19 // MBC5
	_, err := NewCartridge(rom)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestROMCartridge(t *testing.T) {
	c, err := NewCartridge(newROM(ROM, 2, 0))
	if err != nil {
		t.Fatal(err)
	}

	if c.Read(0x4000) != 1 {
		t.Errorf("expected bank 1 at 0x4000, got %d", c.Read(0x4000))
	}
	// bank switching is ignored
	c.Write(0x2000, 0x00)
	if c.Read(0x4000) != 1 {
		t.Errorf("expected ROM only cartridge to ignore bank writes")
	}
	if c.Read(0xA000) != 0xFF {
		t.Errorf("expected missing RAM to read 0xFF")
	}
}

func TestMBC1_ROMBanking(t *testing.T) {
	rom := newROM(MBC1, 8, 0)
	c, _ := NewCartridge(rom)

	for k := 1; k < 8; k++ {
		c.Write(0x2000, uint8(k))
		if got := c.Read(0x4000); got != rom[k*0x4000] {
			t.Errorf("bank %d: expected %d, got %d", k, rom[k*0x4000], got)
		}
	}

	c.Write(0x2000, 0)
	if c.Read(0x4000) != 1 {
		t.Errorf("expected bank 0 to map to bank 1, got %d", c.Read(0x4000))
	}

	// masked to the banks present
	c.Write(0x2000, 9)
	if c.Read(0x4000) != 1 {
		t.Errorf("expected bank 9 to wrap to bank 1, got %d", c.Read(0x4000))
	}

	// bank 0 is always fixed
	if c.Read(0x0000) != 0 {
		t.Errorf("expected bank 0 at 0x0000")
	}
}

func TestMBC1_LargeROM(t *testing.T) {
	rom := newROM(MBC1, 64, 0)
	c, _ := NewCartridge(rom)

	c.Write(0x2000, 0x01)
	c.Write(0x4000, 0x01)
	if c.Read(0x4000) != 33 {
		t.Errorf("expected bank 33, got %d", c.Read(0x4000))
	}
}

func TestMBC1_RAM(t *testing.T) {
	var saved [][]byte
	c, _ := NewCartridge(newROM(MBC1RAMBATT, 4, 0x03), WithPersist(func(ram []byte) {
		saved = append(saved, ram)
	}))

	// disabled RAM drops writes
	c.Write(0xA000, 0x12)
	if c.Read(0xA000) != 0xFF {
		t.Errorf("expected disabled RAM to read 0xFF, got %02x", c.Read(0xA000))
	}

	c.Write(0x0000, 0x0A)
	c.Write(0xA000, 0x12)
	c.Write(0x4000, 0x02)
	c.Write(0xA000, 0x34)
	if c.RAM()[0] != 0x12 || c.RAM()[0x4000] != 0x34 {
		t.Errorf("expected writes in banks 0 and 2, got %02x %02x", c.RAM()[0], c.RAM()[0x4000])
	}
	if c.Read(0xA000) != 0x34 {
		t.Errorf("expected bank 2 to be mapped, got %02x", c.Read(0xA000))
	}

	c.Write(0x0000, 0x00)
	if len(saved) != 1 {
		t.Fatalf("expected RAM to be persisted once, got %d", len(saved))
	}
	if !bytes.Equal(saved[0], c.RAM()) {
		t.Errorf("persisted RAM differs from cartridge RAM")
	}

	// disabling an already disabled RAM does not persist again
	c.Write(0x0000, 0x00)
	if len(saved) != 1 {
		t.Errorf("expected no further persistence, got %d", len(saved))
	}
}

func TestMBC3(t *testing.T) {
	rom := newROM(MBC3RAMBATT, 8, 0x02)
	save := bytes.Repeat([]byte{0x5A}, 0x2000)
	c, _ := NewCartridge(rom, WithSave(save))

	c.Write(0x2000, 0x00)
	if c.Read(0x4000) != 0 {
		t.Errorf("expected MBC3 to map bank 0, got %d", c.Read(0x4000))
	}
	c.Write(0x2000, 0x05)
	if c.Read(0x4000) != 5 {
		t.Errorf("expected bank 5, got %d", c.Read(0x4000))
	}

	c.Write(0x0000, 0x0A)
	if c.Read(0xA123) != 0x5A {
		t.Errorf("expected loaded save data, got %02x", c.Read(0xA123))
	}
	if rom, ram := c.Banks(); rom != 5 || ram != 0 {
		t.Errorf("expected banks 5/0, got %d/%d", rom, ram)
	}
}
