package cpu

import (
	"fmt"

	"github.com/thelolagemann/lineboy/internal/interrupts"
	"github.com/thelolagemann/lineboy/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304

	// InterruptCycles is the number of M-cycles spent dispatching
	// an interrupt.
	InterruptCycles = 5
)

// Bus is the memory the CPU executes against.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Registers contains the 8-bit accumulator, the flags, and the
// 16-bit register pairs.
type Registers struct {
	A  uint8
	F  Flags
	BC types.RegisterPair
	DE types.RegisterPair
	HL types.RegisterPair
}

// OpcodeError is returned once the CPU fetches an opcode that has no
// defined behaviour. The CPU refuses to execute further.
type OpcodeError struct {
	Opcode   uint8
	PC       uint16
	Prefixed bool
}

func (e *OpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("illegal opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	Registers

	// IME is the interrupt master enable.
	IME bool
	// ImmediateEI makes EI take effect straight away rather than
	// after the following instruction.
	ImmediateEI bool

	halted  bool
	haltBug bool
	eiDelay uint8
	fault   error

	b           Bus
	currentTick uint8
}

// NewCPU creates a new CPU executing against the given Bus. The
// registers are left zeroed; see Boot for the post-boot values.
func NewCPU(b Bus) *CPU {
	return &CPU{b: b}
}

// Boot sets the registers to the values left behind by the DMG boot ROM.
func (c *CPU) Boot() {
	c.A = 0x01
	c.F.SetByte(0xB0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.halted, c.haltBug, c.eiDelay, c.fault = false, false, 0, nil
}

// Halted reports whether the CPU is waiting in HALT.
func (c *CPU) Halted() bool {
	return c.halted
}

// Err returns the fault that stopped the CPU, if any.
func (c *CPU) Err() error {
	return c.fault
}

// Step executes at most one unit of work and returns the number of
// M-cycles it took: an interrupt dispatch, a single idle cycle while
// halted, or one instruction.
func (c *CPU) Step() (uint8, error) {
	if c.fault != nil {
		return 0, c.fault
	}
	c.currentTick = 0

	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.IME = true
		}
	}

	pending := interrupts.Pending(c.b)
	if pending != 0 {
		c.halted = false
		if c.IME {
			c.executeInterrupt(pending)
			return c.currentTick, nil
		}
	}

	if c.halted {
		c.tick()
		return c.currentTick, nil
	}

	pc := c.PC
	c.decode(c.readInstruction())
	if err, ok := c.fault.(*OpcodeError); ok {
		// leave PC on the offending opcode
		err.PC, c.PC = pc, pc
		return c.currentTick, c.fault
	}

	return c.currentTick, nil
}

// executeInterrupt pushes PC and jumps to the vector of the highest
// priority pending interrupt, acknowledging it in IF.
func (c *CPU) executeInterrupt(pending uint8) {
	flag, vector, _ := interrupts.Next(pending)

	c.IME = false
	c.b.Write(types.IF, c.b.Read(types.IF)&^flag)

	c.tick()
	c.tick()
	c.push(uint8(c.PC>>8), uint8(c.PC))
	c.PC = vector
	c.tick()
}

// tick advances the M-cycle count of the current step.
func (c *CPU) tick() {
	c.currentTick++
}

// readInstruction reads the next instruction from memory. After the
// HALT bug has been triggered the PC fails to increment once.
func (c *CPU) readInstruction() uint8 {
	c.tick()
	value := c.b.Read(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	c.tick()
	value := c.b.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little-endian 16-bit operand.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	return uint16(low) | uint16(c.readOperand())<<8
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tick()
	return c.b.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.tick()
	c.b.Write(addr, val)
}

// illegal latches an OpcodeError for the instruction just fetched.
func (c *CPU) illegal(instr uint8, prefixed bool) {
	c.fault = &OpcodeError{Opcode: instr, Prefixed: prefixed}
}

func (c *CPU) String() string {
	return fmt.Sprintf("A:%02X F:%02X(%s) B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X IME:%t HALT:%t",
		c.A, c.F.Byte(), c.F, c.BC.High(), c.BC.Low(), c.DE.High(), c.DE.Low(),
		c.HL.High(), c.HL.Low(), c.SP, c.PC, c.IME, c.halted)
}
