package cpu

// instruction describes one opcode: operands, timing and the handler.
type instruction struct {
	mnemonic string
	dst, src operand
	cycles   int // M-cycles, on the not taken path for conditional branches
	taken    int // extra M-cycles when a conditional branch is taken
	exec     func(*CPU, *instruction) int
	arg      uint8 // bit index or RST vector
}

// opcodes is the unprefixed instruction table. 0xCB has no handler, Step
// dispatches the following byte through cbOpcodes.
var opcodes = [256]instruction{
	0x00: {"NOP", none, none, 1, 0, (*CPU).nop, 0x00},
	0x01: {"LD BC,d16", regBC, imm16, 3, 0, (*CPU).ld16, 0x00},
	0x02: {"LD (BC),A", indBC, regA, 2, 0, (*CPU).ld8, 0x00},
	0x03: {"INC BC", regBC, none, 2, 0, (*CPU).inc16, 0x00},
	0x04: {"INC B", regB, none, 1, 0, (*CPU).inc8, 0x00},
	0x05: {"DEC B", regB, none, 1, 0, (*CPU).dec8, 0x00},
	0x06: {"LD B,d8", regB, imm8, 2, 0, (*CPU).ld8, 0x00},
	0x07: {"RLCA", none, none, 1, 0, (*CPU).rlca, 0x00},
	0x08: {"LD (a16),SP", indImm16, regSP, 5, 0, (*CPU).ld16, 0x00},
	0x09: {"ADD HL,BC", regHL, regBC, 2, 0, (*CPU).addHL, 0x00},
	0x0A: {"LD A,(BC)", regA, indBC, 2, 0, (*CPU).ld8, 0x00},
	0x0B: {"DEC BC", regBC, none, 2, 0, (*CPU).dec16, 0x00},
	0x0C: {"INC C", regC, none, 1, 0, (*CPU).inc8, 0x00},
	0x0D: {"DEC C", regC, none, 1, 0, (*CPU).dec8, 0x00},
	0x0E: {"LD C,d8", regC, imm8, 2, 0, (*CPU).ld8, 0x00},
	0x0F: {"RRCA", none, none, 1, 0, (*CPU).rrca, 0x00},
	0x10: {"STOP", none, imm8, 1, 0, (*CPU).stop, 0x00},
	0x11: {"LD DE,d16", regDE, imm16, 3, 0, (*CPU).ld16, 0x00},
	0x12: {"LD (DE),A", indDE, regA, 2, 0, (*CPU).ld8, 0x00},
	0x13: {"INC DE", regDE, none, 2, 0, (*CPU).inc16, 0x00},
	0x14: {"INC D", regD, none, 1, 0, (*CPU).inc8, 0x00},
	0x15: {"DEC D", regD, none, 1, 0, (*CPU).dec8, 0x00},
	0x16: {"LD D,d8", regD, imm8, 2, 0, (*CPU).ld8, 0x00},
	0x17: {"RLA", none, none, 1, 0, (*CPU).rla, 0x00},
	0x18: {"JR r8", none, simm8, 3, 0, (*CPU).jr, 0x00},
	0x19: {"ADD HL,DE", regHL, regDE, 2, 0, (*CPU).addHL, 0x00},
	0x1A: {"LD A,(DE)", regA, indDE, 2, 0, (*CPU).ld8, 0x00},
	0x1B: {"DEC DE", regDE, none, 2, 0, (*CPU).dec16, 0x00},
	0x1C: {"INC E", regE, none, 1, 0, (*CPU).inc8, 0x00},
	0x1D: {"DEC E", regE, none, 1, 0, (*CPU).dec8, 0x00},
	0x1E: {"LD E,d8", regE, imm8, 2, 0, (*CPU).ld8, 0x00},
	0x1F: {"RRA", none, none, 1, 0, (*CPU).rra, 0x00},
	0x20: {"JR NZ,r8", condNZ, simm8, 2, 1, (*CPU).jr, 0x00},
	0x21: {"LD HL,d16", regHL, imm16, 3, 0, (*CPU).ld16, 0x00},
	0x22: {"LD (HL+),A", indHLI, regA, 2, 0, (*CPU).ld8, 0x00},
	0x23: {"INC HL", regHL, none, 2, 0, (*CPU).inc16, 0x00},
	0x24: {"INC H", regH, none, 1, 0, (*CPU).inc8, 0x00},
	0x25: {"DEC H", regH, none, 1, 0, (*CPU).dec8, 0x00},
	0x26: {"LD H,d8", regH, imm8, 2, 0, (*CPU).ld8, 0x00},
	0x27: {"DAA", none, none, 1, 0, (*CPU).daa, 0x00},
	0x28: {"JR Z,r8", condZ, simm8, 2, 1, (*CPU).jr, 0x00},
	0x29: {"ADD HL,HL", regHL, regHL, 2, 0, (*CPU).addHL, 0x00},
	0x2A: {"LD A,(HL+)", regA, indHLI, 2, 0, (*CPU).ld8, 0x00},
	0x2B: {"DEC HL", regHL, none, 2, 0, (*CPU).dec16, 0x00},
	0x2C: {"INC L", regL, none, 1, 0, (*CPU).inc8, 0x00},
	0x2D: {"DEC L", regL, none, 1, 0, (*CPU).dec8, 0x00},
	0x2E: {"LD L,d8", regL, imm8, 2, 0, (*CPU).ld8, 0x00},
	0x2F: {"CPL", none, none, 1, 0, (*CPU).cpl, 0x00},
	0x30: {"JR NC,r8", condNC, simm8, 2, 1, (*CPU).jr, 0x00},
	0x31: {"LD SP,d16", regSP, imm16, 3, 0, (*CPU).ld16, 0x00},
	0x32: {"LD (HL-),A", indHLD, regA, 2, 0, (*CPU).ld8, 0x00},
	0x33: {"INC SP", regSP, none, 2, 0, (*CPU).inc16, 0x00},
	0x34: {"INC (HL)", indHL, none, 3, 0, (*CPU).inc8, 0x00},
	0x35: {"DEC (HL)", indHL, none, 3, 0, (*CPU).dec8, 0x00},
	0x36: {"LD (HL),d8", indHL, imm8, 3, 0, (*CPU).ld8, 0x00},
	0x37: {"SCF", none, none, 1, 0, (*CPU).scf, 0x00},
	0x38: {"JR C,r8", condC, simm8, 2, 1, (*CPU).jr, 0x00},
	0x39: {"ADD HL,SP", regHL, regSP, 2, 0, (*CPU).addHL, 0x00},
	0x3A: {"LD A,(HL-)", regA, indHLD, 2, 0, (*CPU).ld8, 0x00},
	0x3B: {"DEC SP", regSP, none, 2, 0, (*CPU).dec16, 0x00},
	0x3C: {"INC A", regA, none, 1, 0, (*CPU).inc8, 0x00},
	0x3D: {"DEC A", regA, none, 1, 0, (*CPU).dec8, 0x00},
	0x3E: {"LD A,d8", regA, imm8, 2, 0, (*CPU).ld8, 0x00},
	0x3F: {"CCF", none, none, 1, 0, (*CPU).ccf, 0x00},
	0x40: {"LD B,B", regB, regB, 1, 0, (*CPU).ld8, 0x00},
	0x41: {"LD B,C", regB, regC, 1, 0, (*CPU).ld8, 0x00},
	0x42: {"LD B,D", regB, regD, 1, 0, (*CPU).ld8, 0x00},
	0x43: {"LD B,E", regB, regE, 1, 0, (*CPU).ld8, 0x00},
	0x44: {"LD B,H", regB, regH, 1, 0, (*CPU).ld8, 0x00},
	0x45: {"LD B,L", regB, regL, 1, 0, (*CPU).ld8, 0x00},
	0x46: {"LD B,(HL)", regB, indHL, 2, 0, (*CPU).ld8, 0x00},
	0x47: {"LD B,A", regB, regA, 1, 0, (*CPU).ld8, 0x00},
	0x48: {"LD C,B", regC, regB, 1, 0, (*CPU).ld8, 0x00},
	0x49: {"LD C,C", regC, regC, 1, 0, (*CPU).ld8, 0x00},
	0x4A: {"LD C,D", regC, regD, 1, 0, (*CPU).ld8, 0x00},
	0x4B: {"LD C,E", regC, regE, 1, 0, (*CPU).ld8, 0x00},
	0x4C: {"LD C,H", regC, regH, 1, 0, (*CPU).ld8, 0x00},
	0x4D: {"LD C,L", regC, regL, 1, 0, (*CPU).ld8, 0x00},
	0x4E: {"LD C,(HL)", regC, indHL, 2, 0, (*CPU).ld8, 0x00},
	0x4F: {"LD C,A", regC, regA, 1, 0, (*CPU).ld8, 0x00},
	0x50: {"LD D,B", regD, regB, 1, 0, (*CPU).ld8, 0x00},
	0x51: {"LD D,C", regD, regC, 1, 0, (*CPU).ld8, 0x00},
	0x52: {"LD D,D", regD, regD, 1, 0, (*CPU).ld8, 0x00},
	0x53: {"LD D,E", regD, regE, 1, 0, (*CPU).ld8, 0x00},
	0x54: {"LD D,H", regD, regH, 1, 0, (*CPU).ld8, 0x00},
	0x55: {"LD D,L", regD, regL, 1, 0, (*CPU).ld8, 0x00},
	0x56: {"LD D,(HL)", regD, indHL, 2, 0, (*CPU).ld8, 0x00},
	0x57: {"LD D,A", regD, regA, 1, 0, (*CPU).ld8, 0x00},
	0x58: {"LD E,B", regE, regB, 1, 0, (*CPU).ld8, 0x00},
	0x59: {"LD E,C", regE, regC, 1, 0, (*CPU).ld8, 0x00},
	0x5A: {"LD E,D", regE, regD, 1, 0, (*CPU).ld8, 0x00},
	0x5B: {"LD E,E", regE, regE, 1, 0, (*CPU).ld8, 0x00},
	0x5C: {"LD E,H", regE, regH, 1, 0, (*CPU).ld8, 0x00},
	0x5D: {"LD E,L", regE, regL, 1, 0, (*CPU).ld8, 0x00},
	0x5E: {"LD E,(HL)", regE, indHL, 2, 0, (*CPU).ld8, 0x00},
	0x5F: {"LD E,A", regE, regA, 1, 0, (*CPU).ld8, 0x00},
	0x60: {"LD H,B", regH, regB, 1, 0, (*CPU).ld8, 0x00},
	0x61: {"LD H,C", regH, regC, 1, 0, (*CPU).ld8, 0x00},
	0x62: {"LD H,D", regH, regD, 1, 0, (*CPU).ld8, 0x00},
	0x63: {"LD H,E", regH, regE, 1, 0, (*CPU).ld8, 0x00},
	0x64: {"LD H,H", regH, regH, 1, 0, (*CPU).ld8, 0x00},
	0x65: {"LD H,L", regH, regL, 1, 0, (*CPU).ld8, 0x00},
	0x66: {"LD H,(HL)", regH, indHL, 2, 0, (*CPU).ld8, 0x00},
	0x67: {"LD H,A", regH, regA, 1, 0, (*CPU).ld8, 0x00},
	0x68: {"LD L,B", regL, regB, 1, 0, (*CPU).ld8, 0x00},
	0x69: {"LD L,C", regL, regC, 1, 0, (*CPU).ld8, 0x00},
	0x6A: {"LD L,D", regL, regD, 1, 0, (*CPU).ld8, 0x00},
	0x6B: {"LD L,E", regL, regE, 1, 0, (*CPU).ld8, 0x00},
	0x6C: {"LD L,H", regL, regH, 1, 0, (*CPU).ld8, 0x00},
	0x6D: {"LD L,L", regL, regL, 1, 0, (*CPU).ld8, 0x00},
	0x6E: {"LD L,(HL)", regL, indHL, 2, 0, (*CPU).ld8, 0x00},
	0x6F: {"LD L,A", regL, regA, 1, 0, (*CPU).ld8, 0x00},
	0x70: {"LD (HL),B", indHL, regB, 2, 0, (*CPU).ld8, 0x00},
	0x71: {"LD (HL),C", indHL, regC, 2, 0, (*CPU).ld8, 0x00},
	0x72: {"LD (HL),D", indHL, regD, 2, 0, (*CPU).ld8, 0x00},
	0x73: {"LD (HL),E", indHL, regE, 2, 0, (*CPU).ld8, 0x00},
	0x74: {"LD (HL),H", indHL, regH, 2, 0, (*CPU).ld8, 0x00},
	0x75: {"LD (HL),L", indHL, regL, 2, 0, (*CPU).ld8, 0x00},
	0x76: {"HALT", none, none, 1, 0, (*CPU).halt, 0x00},
	0x77: {"LD (HL),A", indHL, regA, 2, 0, (*CPU).ld8, 0x00},
	0x78: {"LD A,B", regA, regB, 1, 0, (*CPU).ld8, 0x00},
	0x79: {"LD A,C", regA, regC, 1, 0, (*CPU).ld8, 0x00},
	0x7A: {"LD A,D", regA, regD, 1, 0, (*CPU).ld8, 0x00},
	0x7B: {"LD A,E", regA, regE, 1, 0, (*CPU).ld8, 0x00},
	0x7C: {"LD A,H", regA, regH, 1, 0, (*CPU).ld8, 0x00},
	0x7D: {"LD A,L", regA, regL, 1, 0, (*CPU).ld8, 0x00},
	0x7E: {"LD A,(HL)", regA, indHL, 2, 0, (*CPU).ld8, 0x00},
	0x7F: {"LD A,A", regA, regA, 1, 0, (*CPU).ld8, 0x00},
	0x80: {"ADD A,B", regA, regB, 1, 0, (*CPU).add, 0x00},
	0x81: {"ADD A,C", regA, regC, 1, 0, (*CPU).add, 0x00},
	0x82: {"ADD A,D", regA, regD, 1, 0, (*CPU).add, 0x00},
	0x83: {"ADD A,E", regA, regE, 1, 0, (*CPU).add, 0x00},
	0x84: {"ADD A,H", regA, regH, 1, 0, (*CPU).add, 0x00},
	0x85: {"ADD A,L", regA, regL, 1, 0, (*CPU).add, 0x00},
	0x86: {"ADD A,(HL)", regA, indHL, 2, 0, (*CPU).add, 0x00},
	0x87: {"ADD A,A", regA, regA, 1, 0, (*CPU).add, 0x00},
	0x88: {"ADC A,B", regA, regB, 1, 0, (*CPU).adc, 0x00},
	0x89: {"ADC A,C", regA, regC, 1, 0, (*CPU).adc, 0x00},
	0x8A: {"ADC A,D", regA, regD, 1, 0, (*CPU).adc, 0x00},
	0x8B: {"ADC A,E", regA, regE, 1, 0, (*CPU).adc, 0x00},
	0x8C: {"ADC A,H", regA, regH, 1, 0, (*CPU).adc, 0x00},
	0x8D: {"ADC A,L", regA, regL, 1, 0, (*CPU).adc, 0x00},
	0x8E: {"ADC A,(HL)", regA, indHL, 2, 0, (*CPU).adc, 0x00},
	0x8F: {"ADC A,A", regA, regA, 1, 0, (*CPU).adc, 0x00},
	0x90: {"SUB B", regA, regB, 1, 0, (*CPU).sub, 0x00},
	0x91: {"SUB C", regA, regC, 1, 0, (*CPU).sub, 0x00},
	0x92: {"SUB D", regA, regD, 1, 0, (*CPU).sub, 0x00},
	0x93: {"SUB E", regA, regE, 1, 0, (*CPU).sub, 0x00},
	0x94: {"SUB H", regA, regH, 1, 0, (*CPU).sub, 0x00},
	0x95: {"SUB L", regA, regL, 1, 0, (*CPU).sub, 0x00},
	0x96: {"SUB (HL)", regA, indHL, 2, 0, (*CPU).sub, 0x00},
	0x97: {"SUB A", regA, regA, 1, 0, (*CPU).sub, 0x00},
	0x98: {"SBC A,B", regA, regB, 1, 0, (*CPU).sbc, 0x00},
	0x99: {"SBC A,C", regA, regC, 1, 0, (*CPU).sbc, 0x00},
	0x9A: {"SBC A,D", regA, regD, 1, 0, (*CPU).sbc, 0x00},
	0x9B: {"SBC A,E", regA, regE, 1, 0, (*CPU).sbc, 0x00},
	0x9C: {"SBC A,H", regA, regH, 1, 0, (*CPU).sbc, 0x00},
	0x9D: {"SBC A,L", regA, regL, 1, 0, (*CPU).sbc, 0x00},
	0x9E: {"SBC A,(HL)", regA, indHL, 2, 0, (*CPU).sbc, 0x00},
	0x9F: {"SBC A,A", regA, regA, 1, 0, (*CPU).sbc, 0x00},
	0xA0: {"AND B", regA, regB, 1, 0, (*CPU).and, 0x00},
	0xA1: {"AND C", regA, regC, 1, 0, (*CPU).and, 0x00},
	0xA2: {"AND D", regA, regD, 1, 0, (*CPU).and, 0x00},
	0xA3: {"AND E", regA, regE, 1, 0, (*CPU).and, 0x00},
	0xA4: {"AND H", regA, regH, 1, 0, (*CPU).and, 0x00},
	0xA5: {"AND L", regA, regL, 1, 0, (*CPU).and, 0x00},
	0xA6: {"AND (HL)", regA, indHL, 2, 0, (*CPU).and, 0x00},
	0xA7: {"AND A", regA, regA, 1, 0, (*CPU).and, 0x00},
	0xA8: {"XOR B", regA, regB, 1, 0, (*CPU).xor, 0x00},
	0xA9: {"XOR C", regA, regC, 1, 0, (*CPU).xor, 0x00},
	0xAA: {"XOR D", regA, regD, 1, 0, (*CPU).xor, 0x00},
	0xAB: {"XOR E", regA, regE, 1, 0, (*CPU).xor, 0x00},
	0xAC: {"XOR H", regA, regH, 1, 0, (*CPU).xor, 0x00},
	0xAD: {"XOR L", regA, regL, 1, 0, (*CPU).xor, 0x00},
	0xAE: {"XOR (HL)", regA, indHL, 2, 0, (*CPU).xor, 0x00},
	0xAF: {"XOR A", regA, regA, 1, 0, (*CPU).xor, 0x00},
	0xB0: {"OR B", regA, regB, 1, 0, (*CPU).or, 0x00},
	0xB1: {"OR C", regA, regC, 1, 0, (*CPU).or, 0x00},
	0xB2: {"OR D", regA, regD, 1, 0, (*CPU).or, 0x00},
	0xB3: {"OR E", regA, regE, 1, 0, (*CPU).or, 0x00},
	0xB4: {"OR H", regA, regH, 1, 0, (*CPU).or, 0x00},
	0xB5: {"OR L", regA, regL, 1, 0, (*CPU).or, 0x00},
	0xB6: {"OR (HL)", regA, indHL, 2, 0, (*CPU).or, 0x00},
	0xB7: {"OR A", regA, regA, 1, 0, (*CPU).or, 0x00},
	0xB8: {"CP B", regA, regB, 1, 0, (*CPU).cp, 0x00},
	0xB9: {"CP C", regA, regC, 1, 0, (*CPU).cp, 0x00},
	0xBA: {"CP D", regA, regD, 1, 0, (*CPU).cp, 0x00},
	0xBB: {"CP E", regA, regE, 1, 0, (*CPU).cp, 0x00},
	0xBC: {"CP H", regA, regH, 1, 0, (*CPU).cp, 0x00},
	0xBD: {"CP L", regA, regL, 1, 0, (*CPU).cp, 0x00},
	0xBE: {"CP (HL)", regA, indHL, 2, 0, (*CPU).cp, 0x00},
	0xBF: {"CP A", regA, regA, 1, 0, (*CPU).cp, 0x00},
	0xC0: {"RET NZ", condNZ, none, 2, 3, (*CPU).ret, 0x00},
	0xC1: {"POP BC", regBC, none, 3, 0, (*CPU).pop16, 0x00},
	0xC2: {"JP NZ,a16", condNZ, imm16, 3, 1, (*CPU).jp, 0x00},
	0xC3: {"JP a16", none, imm16, 4, 0, (*CPU).jp, 0x00},
	0xC4: {"CALL NZ,a16", condNZ, imm16, 3, 3, (*CPU).call, 0x00},
	0xC5: {"PUSH BC", none, regBC, 4, 0, (*CPU).push16, 0x00},
	0xC6: {"ADD A,d8", regA, imm8, 2, 0, (*CPU).add, 0x00},
	0xC7: {"RST 00H", none, none, 4, 0, (*CPU).rst, 0x00},
	0xC8: {"RET Z", condZ, none, 2, 3, (*CPU).ret, 0x00},
	0xC9: {"RET", none, none, 4, 0, (*CPU).ret, 0x00},
	0xCA: {"JP Z,a16", condZ, imm16, 3, 1, (*CPU).jp, 0x00},
	0xCB: {"PREFIX CB", none, none, 1, 0, nil, 0x00},
	0xCC: {"CALL Z,a16", condZ, imm16, 3, 3, (*CPU).call, 0x00},
	0xCD: {"CALL a16", none, imm16, 6, 0, (*CPU).call, 0x00},
	0xCE: {"ADC A,d8", regA, imm8, 2, 0, (*CPU).adc, 0x00},
	0xCF: {"RST 08H", none, none, 4, 0, (*CPU).rst, 0x08},
	0xD0: {"RET NC", condNC, none, 2, 3, (*CPU).ret, 0x00},
	0xD1: {"POP DE", regDE, none, 3, 0, (*CPU).pop16, 0x00},
	0xD2: {"JP NC,a16", condNC, imm16, 3, 1, (*CPU).jp, 0x00},
	0xD3: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xD4: {"CALL NC,a16", condNC, imm16, 3, 3, (*CPU).call, 0x00},
	0xD5: {"PUSH DE", none, regDE, 4, 0, (*CPU).push16, 0x00},
	0xD6: {"SUB d8", regA, imm8, 2, 0, (*CPU).sub, 0x00},
	0xD7: {"RST 10H", none, none, 4, 0, (*CPU).rst, 0x10},
	0xD8: {"RET C", condC, none, 2, 3, (*CPU).ret, 0x00},
	0xD9: {"RETI", none, none, 4, 0, (*CPU).reti, 0x00},
	0xDA: {"JP C,a16", condC, imm16, 3, 1, (*CPU).jp, 0x00},
	0xDB: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xDC: {"CALL C,a16", condC, imm16, 3, 3, (*CPU).call, 0x00},
	0xDD: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xDE: {"SBC A,d8", regA, imm8, 2, 0, (*CPU).sbc, 0x00},
	0xDF: {"RST 18H", none, none, 4, 0, (*CPU).rst, 0x18},
	0xE0: {"LDH (a8),A", indHighImm8, regA, 3, 0, (*CPU).ld8, 0x00},
	0xE1: {"POP HL", regHL, none, 3, 0, (*CPU).pop16, 0x00},
	0xE2: {"LD (C),A", indHighC, regA, 2, 0, (*CPU).ld8, 0x00},
	0xE3: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xE4: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xE5: {"PUSH HL", none, regHL, 4, 0, (*CPU).push16, 0x00},
	0xE6: {"AND d8", regA, imm8, 2, 0, (*CPU).and, 0x00},
	0xE7: {"RST 20H", none, none, 4, 0, (*CPU).rst, 0x20},
	0xE8: {"ADD SP,r8", regSP, simm8, 4, 0, (*CPU).addSP, 0x00},
	0xE9: {"JP HL", none, regHL, 1, 0, (*CPU).jp, 0x00},
	0xEA: {"LD (a16),A", indImm16, regA, 4, 0, (*CPU).ld8, 0x00},
	0xEB: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xEC: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xED: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xEE: {"XOR d8", regA, imm8, 2, 0, (*CPU).xor, 0x00},
	0xEF: {"RST 28H", none, none, 4, 0, (*CPU).rst, 0x28},
	0xF0: {"LDH A,(a8)", regA, indHighImm8, 3, 0, (*CPU).ld8, 0x00},
	0xF1: {"POP AF", regAF, none, 3, 0, (*CPU).pop16, 0x00},
	0xF2: {"LD A,(C)", regA, indHighC, 2, 0, (*CPU).ld8, 0x00},
	0xF3: {"DI", none, none, 1, 0, (*CPU).di, 0x00},
	0xF4: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xF5: {"PUSH AF", none, regAF, 4, 0, (*CPU).push16, 0x00},
	0xF6: {"OR d8", regA, imm8, 2, 0, (*CPU).or, 0x00},
	0xF7: {"RST 30H", none, none, 4, 0, (*CPU).rst, 0x30},
	0xF8: {"LD HL,SP+r8", regHL, simm8, 3, 0, (*CPU).ldHLSP, 0x00},
	0xF9: {"LD SP,HL", regSP, regHL, 2, 0, (*CPU).ld16, 0x00},
	0xFA: {"LD A,(a16)", regA, indImm16, 4, 0, (*CPU).ld8, 0x00},
	0xFB: {"EI", none, none, 1, 0, (*CPU).ei, 0x00},
	0xFC: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xFD: {"ILLEGAL", none, none, 1, 0, (*CPU).illegal, 0x00},
	0xFE: {"CP d8", regA, imm8, 2, 0, (*CPU).cp, 0x00},
	0xFF: {"RST 38H", none, none, 4, 0, (*CPU).rst, 0x38},
}
