package cpu

import "github.com/thelolagemann/lineboy/internal/interrupts"

func (c *CPU) decode(instr uint8) {
	switch instr { // instructions that don't fit the bitfield layout
	case 0x00: // NOP
	case 0x08: // LD (a16), SP
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	case 0x10: // STOP
		// treated as a 2-byte NOP
		c.readOperand()
	case 0x76: // HALT
		if !c.IME && interrupts.Pending(c.b) != 0 {
			c.haltBug = true
		} else {
			c.halted = true
		}
	case 0xC3: // JP a16
		c.jumpAbsolute(true)
	case 0xC9: // RET
		c.ret()
	case 0xCB: // CB Prefix
		c.decodeCB(c.readOperand())
	case 0xCD: // CALL a16
		c.call(true)
	case 0xD9: // RETI
		c.ret()
		c.IME = true
		c.eiDelay = 0
	case 0xE0: // LDH (a8), A
		c.writeByte(0xFF00+uint16(c.readOperand()), c.A)
	case 0xE2: // LD (C), A
		c.writeByte(0xFF00+uint16(c.BC.Low()), c.A)
	case 0xE8: // ADD SP, r8
		c.SP = c.addSPSigned()
		c.tick()
		c.tick()
	case 0xE9: // JP HL
		c.PC = c.HL.Uint16()
	case 0xEA: // LD (a16), A
		c.writeByte(c.readOperand16(), c.A)
	case 0xF0: // LDH A, (a8)
		c.A = c.readByte(0xFF00 + uint16(c.readOperand()))
	case 0xF2: // LD A, (C)
		c.A = c.readByte(0xFF00 + uint16(c.BC.Low()))
	case 0xF3: // DI
		c.IME = false
		c.eiDelay = 0
	case 0xF8: // LD HL, SP+r8
		c.HL.SetUint16(c.addSPSigned())
		c.tick()
	case 0xF9: // LD SP, HL
		c.SP = c.HL.Uint16()
		c.tick()
	case 0xFA: // LD A, (a16)
		c.A = c.readByte(c.readOperand16())
	case 0xFB: // EI
		if c.ImmediateEI {
			c.IME = true
		} else if !c.IME && c.eiDelay == 0 {
			c.eiDelay = 2
		}
	case 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD:
		c.illegal(instr, false)
	default:
		switch instr >> 6 & 0x3 {
		case 0: // 0x00 - 0x3F
			switch instr & 0x7 {
			case 0: // JR cc, r8
				offset := int8(c.readOperand())
				if instr == 0x18 || c.getFlagCondition(instr) {
					c.PC = uint16(int32(c.PC) + int32(offset))
					c.tick()
				}
			case 1:
				if instr>>3&1 == 1 { // ADD HL, nn
					c.addHL(c.getRegisterPair(instr))
					c.tick()
				} else { // LD nn, d16
					c.setRegisterPair(instr, c.readOperand16())
				}
			case 2:
				var address uint16
				switch instr >> 4 & 3 {
				case 0:
					address = c.BC.Uint16()
				case 1:
					address = c.DE.Uint16()
				case 2: // HL+
					address = c.HL.Uint16()
					c.HL.SetUint16(address + 1)
				case 3: // HL-
					address = c.HL.Uint16()
					c.HL.SetUint16(address - 1)
				}
				if instr>>3&1 == 1 { // LD A, (nn)
					c.A = c.readByte(address)
				} else { // LD (nn), A
					c.writeByte(address, c.A)
				}
			case 3: // INC/DEC nn
				if instr>>3&1 == 1 {
					c.setRegisterPair(instr, c.getRegisterPair(instr)-1)
				} else {
					c.setRegisterPair(instr, c.getRegisterPair(instr)+1)
				}
				c.tick()
			case 4: // INC n
				index := instr >> 3 & 7
				c.setRegister(index, c.increment(c.getRegister(index)))
			case 5: // DEC n
				index := instr >> 3 & 7
				c.setRegister(index, c.decrement(c.getRegister(index)))
			case 6: // LD n, d8
				c.setRegister(instr>>3&7, c.readOperand())
			case 7:
				switch instr >> 3 & 0x7 {
				case 0: // RLCA
					c.setFlags(false, false, false, c.A&0x80 != 0)
					c.A = c.A<<1 | c.A>>7
				case 1: // RRCA
					c.setFlags(false, false, false, c.A&0x01 != 0)
					c.A = c.A>>1 | c.A<<7
				case 2: // RLA
					carry := c.carry()
					c.setFlags(false, false, false, c.A&0x80 != 0)
					c.A = c.A<<1 | carry
				case 3: // RRA
					carry := c.carry()
					c.setFlags(false, false, false, c.A&0x01 != 0)
					c.A = c.A>>1 | carry<<7
				case 4: // DAA
					c.daa()
				case 5: // CPL
					c.A = ^c.A
					c.F.Subtract, c.F.HalfCarry = true, true
				case 6: // SCF
					c.F.Subtract, c.F.HalfCarry, c.F.Carry = false, false, true
				case 7: // CCF
					c.F.Subtract, c.F.HalfCarry, c.F.Carry = false, false, !c.F.Carry
				}
			}
		case 1: // LD r, r'
			c.setRegister(instr>>3&7, c.getRegister(instr&7))
		case 2: // ALU A, r
			c.decodeALU(instr, c.getRegister(instr&7))
		case 3: // 0xC0 - 0xFF
			switch instr & 0x7 {
			case 0: // RET cc
				c.tick()
				if c.getFlagCondition(instr) {
					c.ret()
				}
			case 1: // POP nn
				value := c.pop()
				switch instr >> 4 & 3 {
				case 0:
					c.BC.SetUint16(value)
				case 1:
					c.DE.SetUint16(value)
				case 2:
					c.HL.SetUint16(value)
				case 3:
					c.A = uint8(value >> 8)
					c.F.SetByte(uint8(value))
				}
			case 2: // JP cc, a16
				c.jumpAbsolute(c.getFlagCondition(instr))
			case 4: // CALL cc, a16
				c.call(c.getFlagCondition(instr))
			case 5: // PUSH nn
				c.tick()
				switch instr >> 4 & 3 {
				case 0:
					c.push(c.BC.High(), c.BC.Low())
				case 1:
					c.push(c.DE.High(), c.DE.Low())
				case 2:
					c.push(c.HL.High(), c.HL.Low())
				case 3:
					c.push(c.A, c.F.Byte())
				}
			case 6: // ALU A, d8
				c.decodeALU(instr, c.readOperand())
			case 7: // RST
				c.rst(instr)
			default:
				c.illegal(instr, false)
			}
		}
	}
}

// decodeCB decodes and executes a CB-prefixed instruction. Every
// one of the 256 opcodes is defined.
func (c *CPU) decodeCB(instr uint8) {
	index := instr & 7
	bit := uint8(1) << (instr >> 3 & 7)

	switch instr >> 6 {
	case 0: // RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
		c.setRegister(index, c.rotate(instr, c.getRegister(index)))
	case 1: // BIT b, r
		c.F.Zero = c.getRegister(index)&bit == 0
		c.F.Subtract, c.F.HalfCarry = false, true
	case 2: // RES b, r
		c.setRegister(index, c.getRegister(index)&^bit)
	case 3: // SET b, r
		c.setRegister(index, c.getRegister(index)|bit)
	}
}
