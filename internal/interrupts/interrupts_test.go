package interrupts

import (
	"testing"

	"github.com/thelolagemann/lineboy/internal/types"
)

type memory [0x10000]uint8

func (m *memory) Read(addr uint16) uint8         { return m[addr] }
func (m *memory) Write(addr uint16, value uint8) { m[addr] = value }

func TestNext_Priority(t *testing.T) {
	flag, vector, ok := Next(VBlankFlag | TimerFlag)
	if !ok || flag != VBlankFlag || vector != 0x40 {
		t.Errorf("expected VBlank at 0x40, got %s at 0x%04x", Name(flag), vector)
	}

	flag, vector, _ = Next(JoypadFlag | SerialFlag)
	if flag != SerialFlag || vector != 0x58 {
		t.Errorf("expected Serial at 0x58, got %s at 0x%04x", Name(flag), vector)
	}

	if _, _, ok := Next(0); ok {
		t.Errorf("expected no interrupt to be pending")
	}
}

func TestVectors(t *testing.T) {
	expected := []uint16{0x40, 0x48, 0x50, 0x58, 0x60}
	for i, v := range expected {
		if Vector(uint8(i)) != v {
			t.Errorf("interrupt %d: expected vector 0x%02x, got 0x%02x", i, v, Vector(uint8(i)))
		}
	}
}

func TestRequestPending(t *testing.T) {
	m := &memory{}
	Request(m, TimerFlag)
	if m[types.IF] != TimerFlag {
		t.Errorf("expected IF to be %08b, got %08b", TimerFlag, m[types.IF])
	}
	if Pending(m) != 0 {
		t.Errorf("expected no pending interrupts without IE")
	}

	m[types.IE] = 0xFF
	if Pending(m) != TimerFlag {
		t.Errorf("expected timer to be pending, got %08b", Pending(m))
	}
}
