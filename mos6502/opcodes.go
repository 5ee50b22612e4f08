package mos6502

// Addressing modes. https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	modeImplied byte = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
)

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// operand resolves the effective address for mode, consuming the
// operand bytes that follow the opcode at c.pc. Immediate mode
// resolves to the address of the operand byte itself so callers can
// read it uniformly with the rest.
func (c *CPU) operand(mode byte) (addr uint16, crossed bool) {
	switch mode {
	case modeImmediate:
		addr = c.pc
	case modeZeroPage:
		addr = uint16(c.Read(c.pc))
	case modeZeroPageX:
		addr = uint16(c.Read(c.pc) + c.x)
	case modeZeroPageY:
		addr = uint16(c.Read(c.pc) + c.y)
	case modeAbsolute:
		addr = c.Read16(c.pc)
	case modeAbsoluteX:
		base := c.Read16(c.pc)
		addr = base + uint16(c.x)
		crossed = pageCrossed(base, addr)
	case modeAbsoluteY:
		base := c.Read16(c.pc)
		addr = base + uint16(c.y)
		crossed = pageCrossed(base, addr)
	case modeIndirect:
		ptr := c.Read16(c.pc)
		addr = c.readIndirectBuggy(ptr)
	case modeIndirectX:
		zp := c.Read(c.pc) + c.x
		lo := uint16(c.Read(uint16(zp)))
		hi := uint16(c.Read(uint16(zp + 1)))
		addr = hi<<8 | lo
	case modeIndirectY:
		zp := c.Read(c.pc)
		lo := uint16(c.Read(uint16(zp)))
		hi := uint16(c.Read(uint16(zp + 1)))
		base := hi<<8 | lo
		addr = base + uint16(c.y)
		crossed = pageCrossed(base, addr)
	case modeRelative:
		off := int8(c.Read(c.pc))
		addr = uint16(int32(c.pc) + 1 + int32(off))
	default:
		panic("mos6502: operand() called for an addressing mode with no operand")
	}
	return addr, crossed
}

// readIndirectBuggy reproduces the original 6502's JMP ($xxFF) bug:
// the high byte is fetched from the start of the same page instead of
// wrapping into the next one.
// https://www.nesdev.org/wiki/Errata (CPU section)
func (c *CPU) readIndirectBuggy(ptr uint16) uint16 {
	lo := c.Read(ptr)
	hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
	hi := c.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// opcodeEntry fully describes one of the 256 possible opcode bytes.
type opcodeEntry struct {
	mnemonic     string
	mode         byte
	bytes        uint8
	cycles       uint8
	extraOnCross bool
	controlFlow  bool // fn sets PC itself; Step must not also advance past operand bytes
	fn           func(c *CPU, addr uint16, mode byte) int
}

// opcodes is the dispatch table, indexed by opcode byte. A nil entry
// is an illegal opcode.
var opcodes [256]*opcodeEntry

func def(op byte, mnemonic string, mode byte, bytes, cycles uint8, extraOnCross bool, fn func(c *CPU, addr uint16, mode byte) int) {
	if opcodes[op] != nil {
		panic("mos6502: duplicate opcode definition")
	}
	opcodes[op] = &opcodeEntry{mnemonic, mode, bytes, cycles, extraOnCross, false, fn}
}

// defControl is like def but marks the opcode as one whose handler
// takes full responsibility for PC (jumps, calls, returns, branches,
// BRK/RTI) -- Step will not additionally advance past operand bytes.
func defControl(op byte, mnemonic string, mode byte, bytes, cycles uint8, fn func(c *CPU, addr uint16, mode byte) int) {
	if opcodes[op] != nil {
		panic("mos6502: duplicate opcode definition")
	}
	opcodes[op] = &opcodeEntry{mnemonic, mode, bytes, cycles, false, true, fn}
}

func init() {
	// Loads and stores.
	def(0xA9, "LDA", modeImmediate, 2, 2, false, lda)
	def(0xA5, "LDA", modeZeroPage, 2, 3, false, lda)
	def(0xB5, "LDA", modeZeroPageX, 2, 4, false, lda)
	def(0xAD, "LDA", modeAbsolute, 3, 4, false, lda)
	def(0xBD, "LDA", modeAbsoluteX, 3, 4, true, lda)
	def(0xB9, "LDA", modeAbsoluteY, 3, 4, true, lda)
	def(0xA1, "LDA", modeIndirectX, 2, 6, false, lda)
	def(0xB1, "LDA", modeIndirectY, 2, 5, true, lda)

	def(0xA2, "LDX", modeImmediate, 2, 2, false, ldx)
	def(0xA6, "LDX", modeZeroPage, 2, 3, false, ldx)
	def(0xB6, "LDX", modeZeroPageY, 2, 4, false, ldx)
	def(0xAE, "LDX", modeAbsolute, 3, 4, false, ldx)
	def(0xBE, "LDX", modeAbsoluteY, 3, 4, true, ldx)

	def(0xA0, "LDY", modeImmediate, 2, 2, false, ldy)
	def(0xA4, "LDY", modeZeroPage, 2, 3, false, ldy)
	def(0xB4, "LDY", modeZeroPageX, 2, 4, false, ldy)
	def(0xAC, "LDY", modeAbsolute, 3, 4, false, ldy)
	def(0xBC, "LDY", modeAbsoluteX, 3, 4, true, ldy)

	def(0x85, "STA", modeZeroPage, 2, 3, false, sta)
	def(0x95, "STA", modeZeroPageX, 2, 4, false, sta)
	def(0x8D, "STA", modeAbsolute, 3, 4, false, sta)
	def(0x9D, "STA", modeAbsoluteX, 3, 5, false, sta)
	def(0x99, "STA", modeAbsoluteY, 3, 5, false, sta)
	def(0x81, "STA", modeIndirectX, 2, 6, false, sta)
	def(0x91, "STA", modeIndirectY, 2, 6, false, sta)

	def(0x86, "STX", modeZeroPage, 2, 3, false, stx)
	def(0x96, "STX", modeZeroPageY, 2, 4, false, stx)
	def(0x8E, "STX", modeAbsolute, 3, 4, false, stx)

	def(0x84, "STY", modeZeroPage, 2, 3, false, sty)
	def(0x94, "STY", modeZeroPageX, 2, 4, false, sty)
	def(0x8C, "STY", modeAbsolute, 3, 4, false, sty)

	// Register transfers.
	def(0xAA, "TAX", modeImplied, 1, 2, false, tax)
	def(0xA8, "TAY", modeImplied, 1, 2, false, tay)
	def(0xBA, "TSX", modeImplied, 1, 2, false, tsx)
	def(0x8A, "TXA", modeImplied, 1, 2, false, txa)
	def(0x9A, "TXS", modeImplied, 1, 2, false, txs)
	def(0x98, "TYA", modeImplied, 1, 2, false, tya)

	// Stack.
	def(0x48, "PHA", modeImplied, 1, 3, false, pha)
	def(0x08, "PHP", modeImplied, 1, 3, false, php)
	def(0x68, "PLA", modeImplied, 1, 4, false, pla)
	def(0x28, "PLP", modeImplied, 1, 4, false, plp)

	// Logical.
	def(0x29, "AND", modeImmediate, 2, 2, false, and)
	def(0x25, "AND", modeZeroPage, 2, 3, false, and)
	def(0x35, "AND", modeZeroPageX, 2, 4, false, and)
	def(0x2D, "AND", modeAbsolute, 3, 4, false, and)
	def(0x3D, "AND", modeAbsoluteX, 3, 4, true, and)
	def(0x39, "AND", modeAbsoluteY, 3, 4, true, and)
	def(0x21, "AND", modeIndirectX, 2, 6, false, and)
	def(0x31, "AND", modeIndirectY, 2, 5, true, and)

	def(0x49, "EOR", modeImmediate, 2, 2, false, eor)
	def(0x45, "EOR", modeZeroPage, 2, 3, false, eor)
	def(0x55, "EOR", modeZeroPageX, 2, 4, false, eor)
	def(0x4D, "EOR", modeAbsolute, 3, 4, false, eor)
	def(0x5D, "EOR", modeAbsoluteX, 3, 4, true, eor)
	def(0x59, "EOR", modeAbsoluteY, 3, 4, true, eor)
	def(0x41, "EOR", modeIndirectX, 2, 6, false, eor)
	def(0x51, "EOR", modeIndirectY, 2, 5, true, eor)

	def(0x09, "ORA", modeImmediate, 2, 2, false, ora)
	def(0x05, "ORA", modeZeroPage, 2, 3, false, ora)
	def(0x15, "ORA", modeZeroPageX, 2, 4, false, ora)
	def(0x0D, "ORA", modeAbsolute, 3, 4, false, ora)
	def(0x1D, "ORA", modeAbsoluteX, 3, 4, true, ora)
	def(0x19, "ORA", modeAbsoluteY, 3, 4, true, ora)
	def(0x01, "ORA", modeIndirectX, 2, 6, false, ora)
	def(0x11, "ORA", modeIndirectY, 2, 5, true, ora)

	def(0x24, "BIT", modeZeroPage, 2, 3, false, bit)
	def(0x2C, "BIT", modeAbsolute, 3, 4, false, bit)

	// Arithmetic.
	def(0x69, "ADC", modeImmediate, 2, 2, false, adc)
	def(0x65, "ADC", modeZeroPage, 2, 3, false, adc)
	def(0x75, "ADC", modeZeroPageX, 2, 4, false, adc)
	def(0x6D, "ADC", modeAbsolute, 3, 4, false, adc)
	def(0x7D, "ADC", modeAbsoluteX, 3, 4, true, adc)
	def(0x79, "ADC", modeAbsoluteY, 3, 4, true, adc)
	def(0x61, "ADC", modeIndirectX, 2, 6, false, adc)
	def(0x71, "ADC", modeIndirectY, 2, 5, true, adc)

	def(0xE9, "SBC", modeImmediate, 2, 2, false, sbc)
	def(0xE5, "SBC", modeZeroPage, 2, 3, false, sbc)
	def(0xF5, "SBC", modeZeroPageX, 2, 4, false, sbc)
	def(0xED, "SBC", modeAbsolute, 3, 4, false, sbc)
	def(0xFD, "SBC", modeAbsoluteX, 3, 4, true, sbc)
	def(0xF9, "SBC", modeAbsoluteY, 3, 4, true, sbc)
	def(0xE1, "SBC", modeIndirectX, 2, 6, false, sbc)
	def(0xF1, "SBC", modeIndirectY, 2, 5, true, sbc)

	def(0xC9, "CMP", modeImmediate, 2, 2, false, cmp)
	def(0xC5, "CMP", modeZeroPage, 2, 3, false, cmp)
	def(0xD5, "CMP", modeZeroPageX, 2, 4, false, cmp)
	def(0xCD, "CMP", modeAbsolute, 3, 4, false, cmp)
	def(0xDD, "CMP", modeAbsoluteX, 3, 4, true, cmp)
	def(0xD9, "CMP", modeAbsoluteY, 3, 4, true, cmp)
	def(0xC1, "CMP", modeIndirectX, 2, 6, false, cmp)
	def(0xD1, "CMP", modeIndirectY, 2, 5, true, cmp)

	def(0xE0, "CPX", modeImmediate, 2, 2, false, cpx)
	def(0xE4, "CPX", modeZeroPage, 2, 3, false, cpx)
	def(0xEC, "CPX", modeAbsolute, 3, 4, false, cpx)

	def(0xC0, "CPY", modeImmediate, 2, 2, false, cpy)
	def(0xC4, "CPY", modeZeroPage, 2, 3, false, cpy)
	def(0xCC, "CPY", modeAbsolute, 3, 4, false, cpy)

	// Increments and decrements.
	def(0xE6, "INC", modeZeroPage, 2, 5, false, inc)
	def(0xF6, "INC", modeZeroPageX, 2, 6, false, inc)
	def(0xEE, "INC", modeAbsolute, 3, 6, false, inc)
	def(0xFE, "INC", modeAbsoluteX, 3, 7, false, inc)

	def(0xC6, "DEC", modeZeroPage, 2, 5, false, dec)
	def(0xD6, "DEC", modeZeroPageX, 2, 6, false, dec)
	def(0xCE, "DEC", modeAbsolute, 3, 6, false, dec)
	def(0xDE, "DEC", modeAbsoluteX, 3, 7, false, dec)

	def(0xE8, "INX", modeImplied, 1, 2, false, inx)
	def(0xC8, "INY", modeImplied, 1, 2, false, iny)
	def(0xCA, "DEX", modeImplied, 1, 2, false, dex)
	def(0x88, "DEY", modeImplied, 1, 2, false, dey)

	// Shifts.
	def(0x0A, "ASL", modeAccumulator, 1, 2, false, asl)
	def(0x06, "ASL", modeZeroPage, 2, 5, false, asl)
	def(0x16, "ASL", modeZeroPageX, 2, 6, false, asl)
	def(0x0E, "ASL", modeAbsolute, 3, 6, false, asl)
	def(0x1E, "ASL", modeAbsoluteX, 3, 7, false, asl)

	def(0x4A, "LSR", modeAccumulator, 1, 2, false, lsr)
	def(0x46, "LSR", modeZeroPage, 2, 5, false, lsr)
	def(0x56, "LSR", modeZeroPageX, 2, 6, false, lsr)
	def(0x4E, "LSR", modeAbsolute, 3, 6, false, lsr)
	def(0x5E, "LSR", modeAbsoluteX, 3, 7, false, lsr)

	def(0x2A, "ROL", modeAccumulator, 1, 2, false, rol)
	def(0x26, "ROL", modeZeroPage, 2, 5, false, rol)
	def(0x36, "ROL", modeZeroPageX, 2, 6, false, rol)
	def(0x2E, "ROL", modeAbsolute, 3, 6, false, rol)
	def(0x3E, "ROL", modeAbsoluteX, 3, 7, false, rol)

	def(0x6A, "ROR", modeAccumulator, 1, 2, false, ror)
	def(0x66, "ROR", modeZeroPage, 2, 5, false, ror)
	def(0x76, "ROR", modeZeroPageX, 2, 6, false, ror)
	def(0x6E, "ROR", modeAbsolute, 3, 6, false, ror)
	def(0x7E, "ROR", modeAbsoluteX, 3, 7, false, ror)

	// Jumps and calls.
	defControl(0x4C, "JMP", modeAbsolute, 3, 3, jmp)
	defControl(0x6C, "JMP", modeIndirect, 3, 5, jmp)
	defControl(0x20, "JSR", modeAbsolute, 3, 6, jsr)
	defControl(0x60, "RTS", modeImplied, 1, 6, rts)

	// Branches.
	defControl(0x90, "BCC", modeRelative, 2, 2, branch(flagCarry, false))
	defControl(0xB0, "BCS", modeRelative, 2, 2, branch(flagCarry, true))
	defControl(0xF0, "BEQ", modeRelative, 2, 2, branch(flagZero, true))
	defControl(0x30, "BMI", modeRelative, 2, 2, branch(flagNegative, true))
	defControl(0xD0, "BNE", modeRelative, 2, 2, branch(flagZero, false))
	defControl(0x10, "BPL", modeRelative, 2, 2, branch(flagNegative, false))
	defControl(0x50, "BVC", modeRelative, 2, 2, branch(flagOverflow, false))
	defControl(0x70, "BVS", modeRelative, 2, 2, branch(flagOverflow, true))

	// Status flag changes.
	def(0x18, "CLC", modeImplied, 1, 2, false, clearFlag(flagCarry))
	def(0xD8, "CLD", modeImplied, 1, 2, false, clearFlag(flagDecimal))
	def(0x58, "CLI", modeImplied, 1, 2, false, clearFlag(flagInterrupt))
	def(0xB8, "CLV", modeImplied, 1, 2, false, clearFlag(flagOverflow))
	def(0x38, "SEC", modeImplied, 1, 2, false, setFlag(flagCarry))
	def(0xF8, "SED", modeImplied, 1, 2, false, setFlag(flagDecimal))
	def(0x78, "SEI", modeImplied, 1, 2, false, setFlag(flagInterrupt))

	// System.
	defControl(0x00, "BRK", modeImplied, 1, 7, brk)
	defControl(0x40, "RTI", modeImplied, 1, 6, rti)
	def(0xEA, "NOP", modeImplied, 1, 2, false, nop)

	defineUnofficial()
}

// defineUnofficial fills in the undocumented opcodes real NES games
// and test ROMs rely on: extra NOP encodings, and the combined
// read-modify-write + ALU ops (SLO/SRE/RLA/RRA/DCP/ISC) plus the
// combined load/store pair (LAX/SAX).
// https://www.nesdev.org/wiki/CPU_unofficial_opcodes
func defineUnofficial() {
	// Undocumented NOPs: implied (1 byte), zero page / zero page,X
	// (read and discard), absolute / absolute,X, and immediate.
	for _, op := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(op, "*NOP", modeImplied, 1, 2, false, nop)
	}
	for _, op := range []byte{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		def(op, "*NOP", modeImmediate, 2, 2, false, nop)
	}
	for _, op := range []byte{0x04, 0x44, 0x64} {
		def(op, "*NOP", modeZeroPage, 2, 3, false, nop)
	}
	for _, op := range []byte{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		def(op, "*NOP", modeZeroPageX, 2, 4, false, nop)
	}
	def(0x0C, "*NOP", modeAbsolute, 3, 4, false, nop)
	for _, op := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		def(op, "*NOP", modeAbsoluteX, 3, 4, true, nop)
	}

	def(0xA7, "*LAX", modeZeroPage, 2, 3, false, lax)
	def(0xB7, "*LAX", modeZeroPageY, 2, 4, false, lax)
	def(0xAF, "*LAX", modeAbsolute, 3, 4, false, lax)
	def(0xBF, "*LAX", modeAbsoluteY, 3, 4, true, lax)
	def(0xA3, "*LAX", modeIndirectX, 2, 6, false, lax)
	def(0xB3, "*LAX", modeIndirectY, 2, 5, true, lax)

	def(0x87, "*SAX", modeZeroPage, 2, 3, false, sax)
	def(0x97, "*SAX", modeZeroPageY, 2, 4, false, sax)
	def(0x8F, "*SAX", modeAbsolute, 3, 4, false, sax)
	def(0x83, "*SAX", modeIndirectX, 2, 6, false, sax)

	def(0x07, "*SLO", modeZeroPage, 2, 5, false, slo)
	def(0x17, "*SLO", modeZeroPageX, 2, 6, false, slo)
	def(0x0F, "*SLO", modeAbsolute, 3, 6, false, slo)
	def(0x1F, "*SLO", modeAbsoluteX, 3, 7, false, slo)
	def(0x1B, "*SLO", modeAbsoluteY, 3, 7, false, slo)
	def(0x03, "*SLO", modeIndirectX, 2, 8, false, slo)
	def(0x13, "*SLO", modeIndirectY, 2, 8, false, slo)

	def(0x47, "*SRE", modeZeroPage, 2, 5, false, sre)
	def(0x57, "*SRE", modeZeroPageX, 2, 6, false, sre)
	def(0x4F, "*SRE", modeAbsolute, 3, 6, false, sre)
	def(0x5F, "*SRE", modeAbsoluteX, 3, 7, false, sre)
	def(0x5B, "*SRE", modeAbsoluteY, 3, 7, false, sre)
	def(0x43, "*SRE", modeIndirectX, 2, 8, false, sre)
	def(0x53, "*SRE", modeIndirectY, 2, 8, false, sre)

	def(0x27, "*RLA", modeZeroPage, 2, 5, false, rla)
	def(0x37, "*RLA", modeZeroPageX, 2, 6, false, rla)
	def(0x2F, "*RLA", modeAbsolute, 3, 6, false, rla)
	def(0x3F, "*RLA", modeAbsoluteX, 3, 7, false, rla)
	def(0x3B, "*RLA", modeAbsoluteY, 3, 7, false, rla)
	def(0x23, "*RLA", modeIndirectX, 2, 8, false, rla)
	def(0x33, "*RLA", modeIndirectY, 2, 8, false, rla)

	def(0x67, "*RRA", modeZeroPage, 2, 5, false, rra)
	def(0x77, "*RRA", modeZeroPageX, 2, 6, false, rra)
	def(0x6F, "*RRA", modeAbsolute, 3, 6, false, rra)
	def(0x7F, "*RRA", modeAbsoluteX, 3, 7, false, rra)
	def(0x7B, "*RRA", modeAbsoluteY, 3, 7, false, rra)
	def(0x63, "*RRA", modeIndirectX, 2, 8, false, rra)
	def(0x73, "*RRA", modeIndirectY, 2, 8, false, rra)

	def(0xC7, "*DCP", modeZeroPage, 2, 5, false, dcp)
	def(0xD7, "*DCP", modeZeroPageX, 2, 6, false, dcp)
	def(0xCF, "*DCP", modeAbsolute, 3, 6, false, dcp)
	def(0xDF, "*DCP", modeAbsoluteX, 3, 7, false, dcp)
	def(0xDB, "*DCP", modeAbsoluteY, 3, 7, false, dcp)
	def(0xC3, "*DCP", modeIndirectX, 2, 8, false, dcp)
	def(0xD3, "*DCP", modeIndirectY, 2, 8, false, dcp)

	def(0xE7, "*ISB", modeZeroPage, 2, 5, false, isb)
	def(0xF7, "*ISB", modeZeroPageX, 2, 6, false, isb)
	def(0xEF, "*ISB", modeAbsolute, 3, 6, false, isb)
	def(0xFF, "*ISB", modeAbsoluteX, 3, 7, false, isb)
	def(0xFB, "*ISB", modeAbsoluteY, 3, 7, false, isb)
	def(0xE3, "*ISB", modeIndirectX, 2, 8, false, isb)
	def(0xF3, "*ISB", modeIndirectY, 2, 8, false, isb)

	def(0xEB, "*SBC", modeImmediate, 2, 2, false, sbc) // identical to 0xE9
}

// --- loads and stores ---

func lda(c *CPU, addr uint16, mode byte) int {
	c.acc = c.Read(addr)
	c.setZN(c.acc)
	return 0
}

func ldx(c *CPU, addr uint16, mode byte) int {
	c.x = c.Read(addr)
	c.setZN(c.x)
	return 0
}

func ldy(c *CPU, addr uint16, mode byte) int {
	c.y = c.Read(addr)
	c.setZN(c.y)
	return 0
}

func sta(c *CPU, addr uint16, mode byte) int {
	c.Write(addr, c.acc)
	return 0
}

func stx(c *CPU, addr uint16, mode byte) int {
	c.Write(addr, c.x)
	return 0
}

func sty(c *CPU, addr uint16, mode byte) int {
	c.Write(addr, c.y)
	return 0
}

func lax(c *CPU, addr uint16, mode byte) int {
	c.acc = c.Read(addr)
	c.x = c.acc
	c.setZN(c.acc)
	return 0
}

func sax(c *CPU, addr uint16, mode byte) int {
	c.Write(addr, c.acc&c.x)
	return 0
}

// --- register transfers ---

func tax(c *CPU, addr uint16, mode byte) int { c.x = c.acc; c.setZN(c.x); return 0 }
func tay(c *CPU, addr uint16, mode byte) int { c.y = c.acc; c.setZN(c.y); return 0 }
func tsx(c *CPU, addr uint16, mode byte) int { c.x = c.sp; c.setZN(c.x); return 0 }
func txa(c *CPU, addr uint16, mode byte) int { c.acc = c.x; c.setZN(c.acc); return 0 }
func txs(c *CPU, addr uint16, mode byte) int { c.sp = c.x; return 0 }
func tya(c *CPU, addr uint16, mode byte) int { c.acc = c.y; c.setZN(c.acc); return 0 }

// --- stack ---

func pha(c *CPU, addr uint16, mode byte) int { c.push(c.acc); return 0 }

func php(c *CPU, addr uint16, mode byte) int {
	c.push(c.status | flagBreak | flagUnused)
	return 0
}

func pla(c *CPU, addr uint16, mode byte) int {
	c.acc = c.pull()
	c.setZN(c.acc)
	return 0
}

func plp(c *CPU, addr uint16, mode byte) int {
	c.status = (c.pull() &^ flagBreak) | flagUnused
	return 0
}

// --- logical ---

func and(c *CPU, addr uint16, mode byte) int {
	c.acc &= c.Read(addr)
	c.setZN(c.acc)
	return 0
}

func eor(c *CPU, addr uint16, mode byte) int {
	c.acc ^= c.Read(addr)
	c.setZN(c.acc)
	return 0
}

func ora(c *CPU, addr uint16, mode byte) int {
	c.acc |= c.Read(addr)
	c.setZN(c.acc)
	return 0
}

func bit(c *CPU, addr uint16, mode byte) int {
	v := c.Read(addr)
	c.flagSet(flagZero, c.acc&v == 0)
	c.flagSet(flagOverflow, v&0x40 != 0)
	c.flagSet(flagNegative, v&0x80 != 0)
	return 0
}

// --- arithmetic ---

func (c *CPU) addWithCarry(v uint8) {
	carry := uint16(0)
	if c.flag(flagCarry) {
		carry = 1
	}
	sum := uint16(c.acc) + uint16(v) + carry
	result := uint8(sum)
	c.flagSet(flagCarry, sum > 0xFF)
	c.flagSet(flagOverflow, (c.acc^v)&0x80 == 0 && (c.acc^result)&0x80 != 0)
	c.acc = result
	c.setZN(c.acc)
}

func adc(c *CPU, addr uint16, mode byte) int {
	c.addWithCarry(c.Read(addr))
	return 0
}

func sbc(c *CPU, addr uint16, mode byte) int {
	c.addWithCarry(^c.Read(addr))
	return 0
}

func (c *CPU) compare(reg, v uint8) {
	c.flagSet(flagCarry, reg >= v)
	c.flagSet(flagZero, reg == v)
	c.flagSet(flagNegative, (reg-v)&0x80 != 0)
}

func cmp(c *CPU, addr uint16, mode byte) int { c.compare(c.acc, c.Read(addr)); return 0 }
func cpx(c *CPU, addr uint16, mode byte) int { c.compare(c.x, c.Read(addr)); return 0 }
func cpy(c *CPU, addr uint16, mode byte) int { c.compare(c.y, c.Read(addr)); return 0 }

// --- increments and decrements ---

func inc(c *CPU, addr uint16, mode byte) int {
	v := c.Read(addr) + 1
	c.Write(addr, v)
	c.setZN(v)
	return 0
}

func dec(c *CPU, addr uint16, mode byte) int {
	v := c.Read(addr) - 1
	c.Write(addr, v)
	c.setZN(v)
	return 0
}

func inx(c *CPU, addr uint16, mode byte) int { c.x++; c.setZN(c.x); return 0 }
func iny(c *CPU, addr uint16, mode byte) int { c.y++; c.setZN(c.y); return 0 }
func dex(c *CPU, addr uint16, mode byte) int { c.x--; c.setZN(c.x); return 0 }
func dey(c *CPU, addr uint16, mode byte) int { c.y--; c.setZN(c.y); return 0 }

// --- shifts and rotates ---

func (c *CPU) shiftOperand(addr uint16, mode byte) uint8 {
	if mode == modeAccumulator {
		return c.acc
	}
	return c.Read(addr)
}

func (c *CPU) storeShifted(addr uint16, mode byte, v uint8) {
	if mode == modeAccumulator {
		c.acc = v
		return
	}
	c.Write(addr, v)
}

func asl(c *CPU, addr uint16, mode byte) int {
	v := c.shiftOperand(addr, mode)
	c.flagSet(flagCarry, v&0x80 != 0)
	v <<= 1
	c.storeShifted(addr, mode, v)
	c.setZN(v)
	return 0
}

func lsr(c *CPU, addr uint16, mode byte) int {
	v := c.shiftOperand(addr, mode)
	c.flagSet(flagCarry, v&0x01 != 0)
	v >>= 1
	c.storeShifted(addr, mode, v)
	c.setZN(v)
	return 0
}

func rol(c *CPU, addr uint16, mode byte) int {
	v := c.shiftOperand(addr, mode)
	oldCarry := uint8(0)
	if c.flag(flagCarry) {
		oldCarry = 1
	}
	c.flagSet(flagCarry, v&0x80 != 0)
	v = v<<1 | oldCarry
	c.storeShifted(addr, mode, v)
	c.setZN(v)
	return 0
}

func ror(c *CPU, addr uint16, mode byte) int {
	v := c.shiftOperand(addr, mode)
	oldCarry := uint8(0)
	if c.flag(flagCarry) {
		oldCarry = 0x80
	}
	c.flagSet(flagCarry, v&0x01 != 0)
	v = v>>1 | oldCarry
	c.storeShifted(addr, mode, v)
	c.setZN(v)
	return 0
}

// --- unofficial read-modify-write combos ---

func slo(c *CPU, addr uint16, mode byte) int {
	asl(c, addr, mode)
	c.acc |= c.Read(addr)
	c.setZN(c.acc)
	return 0
}

func sre(c *CPU, addr uint16, mode byte) int {
	lsr(c, addr, mode)
	c.acc ^= c.Read(addr)
	c.setZN(c.acc)
	return 0
}

func rla(c *CPU, addr uint16, mode byte) int {
	rol(c, addr, mode)
	c.acc &= c.Read(addr)
	c.setZN(c.acc)
	return 0
}

func rra(c *CPU, addr uint16, mode byte) int {
	ror(c, addr, mode)
	c.addWithCarry(c.Read(addr))
	return 0
}

func dcp(c *CPU, addr uint16, mode byte) int {
	v := c.Read(addr) - 1
	c.Write(addr, v)
	c.compare(c.acc, v)
	return 0
}

func isb(c *CPU, addr uint16, mode byte) int {
	v := c.Read(addr) + 1
	c.Write(addr, v)
	c.addWithCarry(^v)
	return 0
}

// --- jumps, calls, branches ---

func jmp(c *CPU, addr uint16, mode byte) int {
	c.pc = addr
	return 0
}

func jsr(c *CPU, addr uint16, mode byte) int {
	c.pushAddr(c.pc + 1)
	c.pc = addr
	return 0
}

func rts(c *CPU, addr uint16, mode byte) int {
	c.pc = c.pullAddr() + 1
	return 0
}

func branch(mask uint8, want bool) func(c *CPU, addr uint16, mode byte) int {
	return func(c *CPU, addr uint16, mode byte) int {
		next := c.pc + 1 // c.pc still points at the relative offset byte
		if c.flag(mask) != want {
			c.pc = next
			return 0
		}
		extra := 1
		if pageCrossed(next, addr) {
			extra++
		}
		c.pc = addr
		return extra
	}
}

// --- flags ---

func setFlag(mask uint8) func(c *CPU, addr uint16, mode byte) int {
	return func(c *CPU, addr uint16, mode byte) int {
		c.flagSet(mask, true)
		return 0
	}
}

func clearFlag(mask uint8) func(c *CPU, addr uint16, mode byte) int {
	return func(c *CPU, addr uint16, mode byte) int {
		c.flagSet(mask, false)
		return 0
	}
}

// --- system ---

func brk(c *CPU, addr uint16, mode byte) int {
	c.pc++ // BRK's second byte is a padding signature byte, skipped on return
	c.pushAddr(c.pc)
	c.push(c.status | flagBreak | flagUnused)
	c.flagSet(flagInterrupt, true)
	c.pc = c.Read16(vecBRK)
	return 0
}

func rti(c *CPU, addr uint16, mode byte) int {
	c.status = (c.pull() &^ flagBreak) | flagUnused
	c.pc = c.pullAddr()
	return 0
}

func nop(c *CPU, addr uint16, mode byte) int {
	return 0
}
