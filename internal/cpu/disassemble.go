package cpu

import "fmt"

var (
	registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames     = [4]string{"BC", "DE", "HL", "SP"}
	stackNames    = [4]string{"BC", "DE", "HL", "AF"}
	indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}
	conditions    = [4]string{"NZ", "Z", "NC", "C"}
	aluNames      = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}
	rotateNames   = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	accumulator   = [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}

	fixedNames = map[uint8]string{
		0x00: "NOP", 0x08: "LD (%04X), SP", 0x10: "STOP", 0x18: "JR %+d", 0x76: "HALT",
		0xC3: "JP %04X", 0xC9: "RET", 0xCD: "CALL %04X", 0xD9: "RETI",
		0xE0: "LDH (FF%02X), A", 0xE2: "LD (C), A", 0xE8: "ADD SP, %+d", 0xE9: "JP HL",
		0xEA: "LD (%04X), A", 0xF0: "LDH A, (FF%02X)", 0xF2: "LD A, (C)", 0xF3: "DI",
		0xF8: "LD HL, SP%+d", 0xF9: "LD SP, HL", 0xFA: "LD A, (%04X)", 0xFB: "EI",
	}
)

// Disassemble returns the mnemonic of the instruction at addr and
// its length in bytes. Reads go through b without side effects on
// the CPU.
func Disassemble(b Bus, addr uint16) (string, uint16) {
	instr := b.Read(addr)
	d8 := b.Read(addr + 1)
	d16 := uint16(d8) | uint16(b.Read(addr+2))<<8

	if format, ok := fixedNames[instr]; ok {
		switch instr {
		case 0x08, 0xC3, 0xCD, 0xEA, 0xFA:
			return fmt.Sprintf(format, d16), 3
		case 0x18, 0xE8, 0xF8:
			return fmt.Sprintf(format, int8(d8)), 2
		case 0xE0, 0xF0:
			return fmt.Sprintf(format, d8), 2
		case 0x10:
			return format, 2
		}
		return format, 1
	}

	switch instr {
	case 0xCB:
		index := registerNames[d8&7]
		switch d8 >> 6 {
		case 0:
			return fmt.Sprintf("%s %s", rotateNames[d8>>3&7], index), 2
		case 1:
			return fmt.Sprintf("BIT %d, %s", d8>>3&7, index), 2
		case 2:
			return fmt.Sprintf("RES %d, %s", d8>>3&7, index), 2
		default:
			return fmt.Sprintf("SET %d, %s", d8>>3&7, index), 2
		}
	case 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD:
		return fmt.Sprintf("DB %02X", instr), 1
	}

	switch instr >> 6 {
	case 0:
		switch instr & 7 {
		case 0:
			return fmt.Sprintf("JR %s, %+d", conditions[instr>>3&3], int8(d8)), 2
		case 1:
			if instr>>3&1 == 1 {
				return "ADD HL, " + pairNames[instr>>4&3], 1
			}
			return fmt.Sprintf("LD %s, %04X", pairNames[instr>>4&3], d16), 3
		case 2:
			if instr>>3&1 == 1 {
				return "LD A, " + indirectNames[instr>>4&3], 1
			}
			return fmt.Sprintf("LD %s, A", indirectNames[instr>>4&3]), 1
		case 3:
			if instr>>3&1 == 1 {
				return "DEC " + pairNames[instr>>4&3], 1
			}
			return "INC " + pairNames[instr>>4&3], 1
		case 4:
			return "INC " + registerNames[instr>>3&7], 1
		case 5:
			return "DEC " + registerNames[instr>>3&7], 1
		case 6:
			return fmt.Sprintf("LD %s, %02X", registerNames[instr>>3&7], d8), 2
		default:
			return accumulator[instr>>3&7], 1
		}
	case 1:
		return fmt.Sprintf("LD %s, %s", registerNames[instr>>3&7], registerNames[instr&7]), 1
	case 2:
		return fmt.Sprintf("%s %s", aluNames[instr>>3&7], registerNames[instr&7]), 1
	}

	switch instr & 7 {
	case 0:
		return "RET " + conditions[instr>>3&3], 1
	case 1:
		return "POP " + stackNames[instr>>4&3], 1
	case 2:
		return fmt.Sprintf("JP %s, %04X", conditions[instr>>3&3], d16), 3
	case 4:
		return fmt.Sprintf("CALL %s, %04X", conditions[instr>>3&3], d16), 3
	case 5:
		return "PUSH " + stackNames[instr>>4&3], 1
	case 6:
		return fmt.Sprintf("%s %02X", aluNames[instr>>3&7], d8), 2
	default:
		return fmt.Sprintf("RST %02XH", instr&0x38), 1
	}
}
