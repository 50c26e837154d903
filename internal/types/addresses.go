package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the joypad register. Bits 4 and 5 select the
	// button group to be read from bits 0-3.
	P1 HardwareAddress = 0xFF00
	// DIV is the divider register, incremented every 64
	// machine cycles. Writes are stored as-is.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter, incremented at the rate
	// selected by TAC. On overflow it is reloaded from TMA
	// and a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2: Timer Enable
	//  Bit 1-0: Input Clock Select
	//       00: 1024 T-cycles
	//       01: 16 T-cycles
	//       10: 64 T-cycles
	//       11: 256 T-cycles
	TAC HardwareAddress = 0xFF07
	// IF is the interrupt request register.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register.
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register. The low 2 bits hold
	// the current PPU mode, bit 2 the LY=LYC coincidence flag,
	// and bits 3-6 enable the STAT interrupt sources.
	STAT HardwareAddress = 0xFF41
	// SCY is the background scroll Y position.
	SCY HardwareAddress = 0xFF42
	// SCX is the background scroll X position.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline, 0-153.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY whenever LY changes.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM transfer from (value << 8).
	DMA HardwareAddress = 0xFF46
	// BGP is the background palette.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the first object palette.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the second object palette.
	OBP1 HardwareAddress = 0xFF49
	// WY is the window Y position.
	WY HardwareAddress = 0xFF4A
	// WX is the window X position, plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS disables the boot ROM when written to.
	BDIS HardwareAddress = 0xFF50
	// IE is the interrupt enable register, using the same
	// bit layout as IF.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the address space.
const (
	ROMBank0Start uint16 = 0x0000
	ROMBankNStart uint16 = 0x4000
	VRAMStart     uint16 = 0x8000
	TileDataEnd   uint16 = 0x9800
	ExtRAMStart   uint16 = 0xA000
	ExtRAMEnd     uint16 = 0xBFFF
	WRAMStart     uint16 = 0xC000
	OAMStart      uint16 = 0xFE00
	OAMSize       uint16 = 0xA0
)
