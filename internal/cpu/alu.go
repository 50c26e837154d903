package cpu

// getRegister returns the 8-bit operand for the given index, in
// opcode order B, C, D, E, H, L, (HL), A. Index 6 reads memory
// and costs an M-cycle.
func (c *CPU) getRegister(index uint8) uint8 {
	switch index & 7 {
	case 0:
		return c.BC.High()
	case 1:
		return c.BC.Low()
	case 2:
		return c.DE.High()
	case 3:
		return c.DE.Low()
	case 4:
		return c.HL.High()
	case 5:
		return c.HL.Low()
	case 6:
		return c.readByte(c.HL.Uint16())
	default:
		return c.A
	}
}

// setRegister stores value into the operand at index, see getRegister.
func (c *CPU) setRegister(index uint8, value uint8) {
	switch index & 7 {
	case 0:
		c.BC.SetHigh(value)
	case 1:
		c.BC.SetLow(value)
	case 2:
		c.DE.SetHigh(value)
	case 3:
		c.DE.SetLow(value)
	case 4:
		c.HL.SetHigh(value)
	case 5:
		c.HL.SetLow(value)
	case 6:
		c.writeByte(c.HL.Uint16(), value)
	default:
		c.A = value
	}
}

// getRegisterPair returns the pair selected by bits 4-5 of instr,
// in the order BC, DE, HL, SP.
func (c *CPU) getRegisterPair(instr uint8) uint16 {
	switch instr >> 4 & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setRegisterPair(instr uint8, value uint16) {
	switch instr >> 4 & 3 {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// getFlagCondition evaluates the condition in bits 3-4 of instr:
// NZ, Z, NC, C.
func (c *CPU) getFlagCondition(instr uint8) bool {
	switch instr >> 3 & 3 {
	case 0:
		return !c.F.Zero
	case 1:
		return c.F.Zero
	case 2:
		return !c.F.Carry
	default:
		return c.F.Carry
	}
}

// decodeALU performs one of the eight accumulator operations
// selected by bits 3-5 of instr.
//
//	ADD, ADC, SUB, SBC, AND, XOR, OR, CP
func (c *CPU) decodeALU(instr uint8, n uint8) {
	switch instr >> 3 & 7 {
	case 0:
		c.add(n, 0)
	case 1:
		c.add(n, c.carry())
	case 2:
		c.A = c.sub(n, 0)
	case 3:
		c.A = c.sub(n, c.carry())
	case 4: // AND
		c.A &= n
		c.setFlags(c.A == 0, false, true, false)
	case 5: // XOR
		c.A ^= n
		c.setFlags(c.A == 0, false, false, false)
	case 6: // OR
		c.A |= n
		c.setFlags(c.A == 0, false, false, false)
	case 7: // CP
		c.sub(n, 0)
	}
}

// add adds n and carry to the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n, carry uint8) {
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	c.setFlags(uint8(sum) == 0, false, c.A&0xF+n&0xF+carry > 0xF, sum > 0xFF)
	c.A = uint8(sum)
}

// sub subtracts n and carry from the A Register, returning the
// result. CP discards it.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n, carry uint8) uint8 {
	result := c.A - n - carry
	c.setFlags(result == 0, true, n&0xF+carry > c.A&0xF, uint16(n)+uint16(carry) > uint16(c.A))
	return result
}

// increment n by 1 and set the flags accordingly.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	result := n + 1
	c.setFlags(result == 0, false, n&0xF == 0xF, c.F.Carry)
	return result
}

// decrement n by 1 and set the flags accordingly.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	result := n - 1
	c.setFlags(result == 0, true, n&0xF == 0, c.F.Carry)
	return result
}

// addHL adds nn to the HL register pair. Z is not affected, H and
// C come from bits 11 and 15.
func (c *CPU) addHL(nn uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(nn)
	c.setFlags(c.F.Zero, false, hl&0xFFF+nn&0xFFF > 0xFFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned adds the signed operand to SP and returns the result,
// leaving SP untouched. H and C are computed on the low byte as an
// unsigned addition.
func (c *CPU) addSPSigned() uint16 {
	value := c.readOperand()
	result := uint16(int32(c.SP) + int32(int8(value)))

	tmp := c.SP ^ uint16(int8(value)) ^ result
	c.setFlags(false, false, tmp&0x10 != 0, tmp&0x100 != 0)
	return result
}

// daa adjusts the A Register after a BCD addition or subtraction.
func (c *CPU) daa() {
	if !c.F.Subtract {
		if c.F.Carry || c.A > 0x99 {
			c.A += 0x60
			c.F.Carry = true
		}
		if c.F.HalfCarry || c.A&0xF > 0x9 {
			c.A += 0x06
		}
	} else if c.F.Carry && c.F.HalfCarry {
		c.A += 0x9A
	} else if c.F.Carry {
		c.A += 0xA0
	} else if c.F.HalfCarry {
		c.A += 0xFA
	}
	c.F.Zero = c.A == 0
	c.F.HalfCarry = false
}

// rotate performs one of the eight CB rotate and shift operations
// selected by bits 3-5 of instr.
//
//	RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
func (c *CPU) rotate(instr uint8, value uint8) uint8 {
	var result uint8
	var carry bool
	switch instr >> 3 & 7 {
	case 0: // RLC
		result, carry = value<<1|value>>7, value&0x80 != 0
	case 1: // RRC
		result, carry = value>>1|value<<7, value&0x01 != 0
	case 2: // RL
		result, carry = value<<1|c.carry(), value&0x80 != 0
	case 3: // RR
		result, carry = value>>1|c.carry()<<7, value&0x01 != 0
	case 4: // SLA
		result, carry = value<<1, value&0x80 != 0
	case 5: // SRA
		result, carry = value>>1|value&0x80, value&0x01 != 0
	case 6: // SWAP
		result = value<<4 | value>>4
	case 7: // SRL
		result, carry = value>>1, value&0x01 != 0
	}
	c.setFlags(result == 0, false, false, carry)
	return result
}

// push writes high then low onto the stack.
func (c *CPU) push(high, low uint8) {
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// pop reads a 16-bit value off the stack.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// ret pops PC off the stack.
func (c *CPU) ret() {
	c.PC = c.pop()
	c.tick()
}

// call reads the target address, and when condition holds pushes
// PC and jumps to it.
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.tick()
		c.push(uint8(c.PC>>8), uint8(c.PC))
		c.PC = address
	}
}

// jumpAbsolute reads the target address and jumps to it when
// condition holds.
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.tick()
	}
}

// rst pushes PC and jumps to one of the eight restart vectors.
func (c *CPU) rst(instr uint8) {
	c.tick()
	c.push(uint8(c.PC>>8), uint8(c.PC))
	c.PC = uint16(instr & 0x38)
}
