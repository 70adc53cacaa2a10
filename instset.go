package avrdisasm

// OperandKind tags the meaning of a decoded operand value so the formatter
// knows how to render it and the decoder knows how to post-process the
// extracted bits.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandRegisterFrom16        // R16+n
	OperandRegisterEvenPair      // 2n
	OperandRegisterEvenPairFrom24 // R24+2n
	OperandIoRegister
	OperandData // 8-bit immediate
	OperandBit  // 0-7
	OperandDesRound
	OperandBranchAddress       // 7-bit signed word offset
	OperandRelativeAddress     // 12-bit signed word offset
	OperandLongAbsoluteAddress // 22-bit absolute word address, second word of a 32-bit instruction
	OperandX
	OperandXp
	OperandMx
	OperandY
	OperandYp
	OperandMy
	OperandYpq
	OperandZ
	OperandZp
	OperandMz
	OperandZpq
	OperandRawWord
	OperandRawByte
)

// Operand describes one operand field of an instruction encoding: the bits
// of the first opcode word that carry its value, and how to interpret them.
type Operand struct {
	Mask uint16
	Kind OperandKind
}

// InstructionInfo is a single static instruction-table entry. The table is
// pure data: a read-only, process-wide singleton with no lifecycle.
//
// Invariant: InstructionMask & (OR of all Operands[i].Mask) == 0 — every bit
// of the first opcode word belongs either to the instruction pattern or to
// exactly one operand.
type InstructionInfo struct {
	Mnemonic        string
	Width           int // 2 or 4 bytes; the .db/.dw fallbacks use 1 and 2
	InstructionMask uint16
	Operands        [2]Operand
	NumOperands     int
}

// operandMaskUnion ORs together the masks of all of an entry's operands.
func (info *InstructionInfo) operandMaskUnion() uint16 {
	var u uint16
	for i := 0; i < info.NumOperands; i++ {
		u |= info.Operands[i].Mask
	}
	return u
}

// matches reports whether the fixed instruction bits of opcode, with the
// operand bits masked out, equal this entry's instruction pattern.
func (info *InstructionInfo) matches(opcode uint16) bool {
	return (opcode &^ info.operandMaskUnion()) == info.InstructionMask
}

// DisassembledInstruction is produced by one decoder pull: owned by the
// caller for exactly one print, then discarded.
type DisassembledInstruction struct {
	Address  uint32
	Width    int
	Opcode   [4]byte
	Info     *InstructionInfo
	Operands [2]int32
}

// bitsFromMask performs a PEXT-style extract: gather the bits of data under
// mask, right-compacted in mask order (bit 0 of the result is the lowest
// set bit of the mask).
func bitsFromMask(data, mask uint16) uint32 {
	var result uint32
	var j uint
	for i := 0; i < 16; i++ {
		bit := uint16(1) << uint(i)
		if mask&bit != 0 {
			if data&bit != 0 {
				result |= 1 << j
			}
			j++
		}
	}
	return result
}

// disasmOperand post-processes a raw extracted operand value according to
// its kind, per spec §4.2 "Operand post-processing by kind".
func disasmOperand(operand uint32, kind OperandKind) int32 {
	switch kind {
	case OperandBranchAddress:
		// 7-bit two's-complement word-offset; sign-extend then scale to bytes.
		var v int32
		if operand&(1<<6) != 0 {
			v = -int32((^operand + 1) & 0x7f)
		} else {
			v = int32(operand & 0x7f)
		}
		return v * 2
	case OperandRelativeAddress:
		// 12-bit two's-complement word-offset; sign-extend then scale to bytes.
		var v int32
		if operand&(1<<11) != 0 {
			v = -int32((^operand + 1) & 0xfff)
		} else {
			v = int32(operand & 0xfff)
		}
		return v * 2
	case OperandLongAbsoluteAddress:
		// Unsigned 22-bit word address; scale to a byte address.
		return int32(operand) * 2
	case OperandRegisterFrom16:
		return int32(operand) + 16
	case OperandRegisterEvenPair:
		return int32(operand) * 2
	case OperandRegisterEvenPairFrom24:
		return int32(operand)*2 + 24
	default:
		return int32(operand)
	}
}
