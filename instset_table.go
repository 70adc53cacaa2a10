package avrdisasm

// instructionSet is the static, read-only instruction table: a linear
// scan over this slice recognises one of the ~125 AVR encodings it lists. Order is
// semantically significant — more specific encodings (e.g. SER, a fixed
// LDI immediate) must precede the more general encodings they would
// otherwise be shadowed by, and the raw-data sentinels DW/DB are placed
// last so that real instructions always win the scan.
//
// This table is data, generated once here as a literal; it is never
// mutated after initInstructionSet runs.
var instructionSet []InstructionInfo

// indices of the two sentinel entries, resolved once in initInstructionSet.
var (
	instructionSetWordIndex int
	instructionSetByteIndex int
)

func op(mask uint16, kind OperandKind) Operand { return Operand{Mask: mask, Kind: kind} }

func entry1(mnemonic string, width int, instructionMask uint16, o0 Operand) InstructionInfo {
	return InstructionInfo{
		Mnemonic:        mnemonic,
		Width:           width,
		InstructionMask: instructionMask,
		Operands:        [2]Operand{o0, {}},
		NumOperands:     1,
	}
}

func entry2(mnemonic string, width int, instructionMask uint16, o0, o1 Operand) InstructionInfo {
	return InstructionInfo{
		Mnemonic:        mnemonic,
		Width:           width,
		InstructionMask: instructionMask,
		Operands:        [2]Operand{o0, o1},
		NumOperands:     2,
	}
}

func entry0(mnemonic string, width int, instructionMask uint16) InstructionInfo {
	return InstructionInfo{
		Mnemonic:        mnemonic,
		Width:           width,
		InstructionMask: instructionMask,
	}
}

func initInstructionSet() {
	const (
		rd   = uint16(0x01F0) // bit8 | bits7-4: full 5-bit Rd register field
		rr   = uint16(0x020F) // bit9 | bits3-0: full 5-bit Rr register field
		rd16 = uint16(0x00F0) // bits7-4: 4-bit register field, offset from R16
		rr16 = uint16(0x000F) // bits3-0: 4-bit register field, offset from R16
		k8   = uint16(0x0F0F) // bits11-8 | bits3-0: 8-bit immediate, split
		ioA  = uint16(0x060F) // bits10-9 | bits3-0: 6-bit I/O address (IN/OUT)
		bitA = uint16(0x00F8) // bits7-4 | bit3: 5-bit I/O address (CBI/SBI family)
		bit3 = uint16(0x0007) // bits2-0: bit index 0-7
		q6   = uint16(0x2C07) // bit13 | bits11-10 | bits2-0: 6-bit displacement
	)

	instructionSet = []InstructionInfo{
		// Two-register ALU ops: oooooo rd dddd rrrr
		entry2("add", 2, 0x0C00, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("adc", 2, 0x1C00, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("sub", 2, 0x1800, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("sbc", 2, 0x0800, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("and", 2, 0x2000, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("or", 2, 0x2800, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("eor", 2, 0x2400, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("mov", 2, 0x2C00, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("cp", 2, 0x1400, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("cpc", 2, 0x0400, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("cpse", 2, 0x1000, op(rd, OperandRegister), op(rr, OperandRegister)),
		entry2("mul", 2, 0x9C00, op(rd, OperandRegister), op(rr, OperandRegister)),

		// Immediate ops against R16-R31: oooo KKKK dddd KKKK
		entry2("subi", 2, 0x5000, op(rd16, OperandRegisterFrom16), op(k8, OperandData)),
		entry2("sbci", 2, 0x4000, op(rd16, OperandRegisterFrom16), op(k8, OperandData)),
		entry2("andi", 2, 0x7000, op(rd16, OperandRegisterFrom16), op(k8, OperandData)),
		entry2("ori", 2, 0x6000, op(rd16, OperandRegisterFrom16), op(k8, OperandData)),
		entry2("cpi", 2, 0x3000, op(rd16, OperandRegisterFrom16), op(k8, OperandData)),
		// ser is ldi Rd,0xFF with K fixed; must precede the general ldi entry.
		entry1("ser", 2, 0xEF0F, op(rd16, OperandRegisterFrom16)),
		entry2("ldi", 2, 0xE000, op(rd16, OperandRegisterFrom16), op(k8, OperandData)),

		// Single-register ALU ops: 1001010d dddd oooo
		entry1("com", 2, 0x9400, op(rd, OperandRegister)),
		entry1("neg", 2, 0x9401, op(rd, OperandRegister)),
		entry1("swap", 2, 0x9402, op(rd, OperandRegister)),
		entry1("inc", 2, 0x9403, op(rd, OperandRegister)),
		entry1("asr", 2, 0x9405, op(rd, OperandRegister)),
		entry1("lsr", 2, 0x9406, op(rd, OperandRegister)),
		entry1("ror", 2, 0x9407, op(rd, OperandRegister)),
		entry1("dec", 2, 0x940A, op(rd, OperandRegister)),

		// Word-pair arithmetic
		entry2("adiw", 2, 0x9600, op(uint16(0x0030), OperandRegisterEvenPairFrom24), op(uint16(0x00CF), OperandData)),
		entry2("sbiw", 2, 0x9700, op(uint16(0x0030), OperandRegisterEvenPairFrom24), op(uint16(0x00CF), OperandData)),
		entry2("movw", 2, 0x0100, op(uint16(0x00F0), OperandRegisterEvenPair), op(uint16(0x000F), OperandRegisterEvenPair)),

		// Upper-register-only multiplies
		entry2("muls", 2, 0x0200, op(rd16, OperandRegisterFrom16), op(rr16, OperandRegisterFrom16)),
		entry2("mulsu", 2, 0x0300, op(uint16(0x0070), OperandRegisterFrom16), op(uint16(0x0007), OperandRegisterFrom16)),
		entry2("fmul", 2, 0x0308, op(uint16(0x0070), OperandRegisterFrom16), op(uint16(0x0007), OperandRegisterFrom16)),
		entry2("fmuls", 2, 0x0380, op(uint16(0x0070), OperandRegisterFrom16), op(uint16(0x0007), OperandRegisterFrom16)),
		entry2("fmulsu", 2, 0x0388, op(uint16(0x0070), OperandRegisterFrom16), op(uint16(0x0007), OperandRegisterFrom16)),

		// I/O register access
		entry2("in", 2, 0xB000, op(rd, OperandRegister), op(ioA, OperandIoRegister)),
		entry2("out", 2, 0xB800, op(ioA, OperandIoRegister), op(rd, OperandRegister)),

		// I/O bit ops
		entry2("cbi", 2, 0x9800, op(bitA, OperandIoRegister), op(bit3, OperandBit)),
		entry2("sbic", 2, 0x9900, op(bitA, OperandIoRegister), op(bit3, OperandBit)),
		entry2("sbi", 2, 0x9A00, op(bitA, OperandIoRegister), op(bit3, OperandBit)),
		entry2("sbis", 2, 0x9B00, op(bitA, OperandIoRegister), op(bit3, OperandBit)),

		// Register bit ops
		entry2("bld", 2, 0xF800, op(rd, OperandRegister), op(bit3, OperandBit)),
		entry2("bst", 2, 0xFA00, op(rd, OperandRegister), op(bit3, OperandBit)),
		entry2("sbrc", 2, 0xFC00, op(rd, OperandRegister), op(bit3, OperandBit)),
		entry2("sbrs", 2, 0xFE00, op(rd, OperandRegister), op(bit3, OperandBit)),

		// Data Encryption Standard round
		entry1("des", 2, 0x940B, op(uint16(0x00F0), OperandDesRound)),

		// Conditional branches: 7-bit signed word offset, status bit fixed
		entry2("breq", 2, 0xF001, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brne", 2, 0xF401, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brcs", 2, 0xF000, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brcc", 2, 0xF400, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brmi", 2, 0xF002, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brpl", 2, 0xF402, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brvs", 2, 0xF003, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brvc", 2, 0xF403, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brlt", 2, 0xF004, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brge", 2, 0xF404, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brhs", 2, 0xF005, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brhc", 2, 0xF405, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brts", 2, 0xF006, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brtc", 2, 0xF406, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brie", 2, 0xF007, op(uint16(0x03F8), OperandBranchAddress), Operand{}),
		entry2("brid", 2, 0xF407, op(uint16(0x03F8), OperandBranchAddress), Operand{}),

		// Status flag clear/set, one mnemonic per fixed flag index
		entry0("clc", 2, 0x9488), entry0("clz", 2, 0x9498), entry0("cln", 2, 0x94A8), entry0("clv", 2, 0x94B8),
		entry0("cls", 2, 0x94C8), entry0("clh", 2, 0x94D8), entry0("clt", 2, 0x94E8), entry0("cli", 2, 0x94F8),
		entry0("sec", 2, 0x9408), entry0("sez", 2, 0x9418), entry0("sen", 2, 0x9428), entry0("sev", 2, 0x9438),
		entry0("ses", 2, 0x9448), entry0("seh", 2, 0x9458), entry0("set", 2, 0x9468), entry0("sei", 2, 0x9478),

		// Relative jump/call: 12-bit signed word offset
		entry1("rjmp", 2, 0xC000, op(uint16(0x0FFF), OperandRelativeAddress)),
		entry1("rcall", 2, 0xD000, op(uint16(0x0FFF), OperandRelativeAddress)),

		// Absolute jump/call: 22-bit word address, second word of instruction
		entry1("jmp", 4, 0x940C, op(uint16(0x01F1), OperandLongAbsoluteAddress)),
		entry1("call", 4, 0x940E, op(uint16(0x01F1), OperandLongAbsoluteAddress)),

		// Direct data-memory load/store: 16-bit byte address, second word
		entry2("lds", 4, 0x9000, op(rd, OperandRegister), op(uint16(0x0000), OperandRawWord)),
		entry2("sts", 4, 0x9200, op(uint16(0x0000), OperandRawWord), op(rd, OperandRegister)),

		// Implicit-operand instructions
		entry0("icall", 2, 0x9509), entry0("eicall", 2, 0x9519),
		entry0("ijmp", 2, 0x9409), entry0("eijmp", 2, 0x9419),
		entry0("ret", 2, 0x9508), entry0("reti", 2, 0x9518),
		entry0("sleep", 2, 0x9588), entry0("wdr", 2, 0x95A8), entry0("break", 2, 0x9598),
		entry0("lpm", 2, 0x95C8), entry0("elpm", 2, 0x95D8),
		entry0("spm", 2, 0x95E8), entry0("spm", 2, 0x95F8),
		entry0("nop", 2, 0x0000),

		// Indirect load through X, post-increment, pre-decrement
		entry2("ld", 2, 0x900C, op(rd, OperandRegister), op(0, OperandX)),
		entry2("ld", 2, 0x900D, op(rd, OperandRegister), op(0, OperandXp)),
		entry2("ld", 2, 0x900E, op(rd, OperandRegister), op(0, OperandMx)),
		// Indirect load through Y / Z, post-increment, pre-decrement
		entry2("ld", 2, 0x9009, op(rd, OperandRegister), op(0, OperandYp)),
		entry2("ld", 2, 0x900A, op(rd, OperandRegister), op(0, OperandMy)),
		entry2("ld", 2, 0x9001, op(rd, OperandRegister), op(0, OperandZp)),
		entry2("ld", 2, 0x9002, op(rd, OperandRegister), op(0, OperandMz)),
		// Displaced load/store through Y / Z (covers the plain-pointer form at q=0)
		entry2("ldd", 2, 0x8008, op(rd, OperandRegister), op(q6, OperandYpq)),
		entry2("ldd", 2, 0x8000, op(rd, OperandRegister), op(q6, OperandZpq)),
		entry2("std", 2, 0x8208, op(q6, OperandYpq), op(rd, OperandRegister)),
		entry2("std", 2, 0x8200, op(q6, OperandZpq), op(rd, OperandRegister)),

		// Load program memory
		entry2("lpm", 2, 0x9004, op(rd, OperandRegister), op(0, OperandZ)),
		entry2("lpm", 2, 0x9005, op(rd, OperandRegister), op(0, OperandZp)),
		entry2("elpm", 2, 0x9006, op(rd, OperandRegister), op(0, OperandZ)),
		entry2("elpm", 2, 0x9007, op(rd, OperandRegister), op(0, OperandZp)),

		// Indirect store through X, post-increment, pre-decrement
		entry2("st", 2, 0x920C, op(0, OperandX), op(rd, OperandRegister)),
		entry2("st", 2, 0x920D, op(0, OperandXp), op(rd, OperandRegister)),
		entry2("st", 2, 0x920E, op(0, OperandMx), op(rd, OperandRegister)),
		entry2("st", 2, 0x9209, op(0, OperandYp), op(rd, OperandRegister)),
		entry2("st", 2, 0x920A, op(0, OperandMy), op(rd, OperandRegister)),
		entry2("st", 2, 0x9201, op(0, OperandZp), op(rd, OperandRegister)),
		entry2("st", 2, 0x9202, op(0, OperandMz), op(rd, OperandRegister)),

		entry1("pop", 2, 0x900F, op(rd, OperandRegister)),
		entry1("push", 2, 0x920F, op(rd, OperandRegister)),

		// Atomic read-modify-write through Z (reduced-core / XMEGA)
		entry2("xch", 2, 0x9204, op(0, OperandZ), op(rd, OperandRegister)),
		entry2("las", 2, 0x9205, op(0, OperandZ), op(rd, OperandRegister)),
		entry2("lac", 2, 0x9206, op(0, OperandZ), op(rd, OperandRegister)),
		entry2("lat", 2, 0x9207, op(0, OperandZ), op(rd, OperandRegister)),

		// Raw-data sentinels. Order matters: .dw matches any 16-bit word and
		// must stay second-to-last; .db matches any single byte and must be
		// last. lookup returns .dw for any word no real entry matches, and the
		// decoder's truncated-wide-instruction path points at it directly.
		// .db is never returned by lookup (.dw always matches first); only the
		// decoder's lone-byte path points instructions at it.
		entry1("dw", 2, 0x0000, op(0xFFFF, OperandRawWord)),
		entry1("db", 1, 0x0000, op(0x00FF, OperandRawByte)),
	}

	instructionSetWordIndex = len(instructionSet) - 2
	instructionSetByteIndex = len(instructionSet) - 1
}

func init() {
	initInstructionSet()
}
