package avrdisasm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Flags is the independent option bit set of §4.3. DATA_* bits are mutually
// exclusive; ASSEMBLY implies address labels, .org emission, and suppresses
// the opcode column.
type Flags uint

const (
	FlagAssembly Flags = 1 << iota
	FlagAddresses
	FlagOpcodes
	FlagDestinationComment
	FlagDataHex
	FlagDataBin
	FlagDataDec
)

// PrefixSet parameterises operand rendering between the AVRASM and objdump
// textual conventions (spec §4.3's "a prefix table is a parameter").
type PrefixSet struct {
	Register   string
	IoRegister string
	Des        string
}

// AVRASMPrefixes is the default rendering: "R16", "$17", "0x3" for des.
var AVRASMPrefixes = PrefixSet{Register: "R", IoRegister: "$", Des: "0x"}

// ObjdumpPrefixes mirrors avr_format_prefixes_objdump: lower-case register
// names, I/O addresses in plain hex with no '$', no prefix on des rounds.
var ObjdumpPrefixes = PrefixSet{Register: "r", IoRegister: "0x", Des: ""}

// Printer pulls instructions from a Decoder, tracks the expected next
// address, and writes one formatted line per instruction to out.
type Printer struct {
	dec            *Decoder
	out            io.Writer
	flags          Flags
	prefixes       PrefixSet
	labelPrefix    string
	vectorComments bool

	initialized  bool
	nextExpected uint32
}

// NewPrinter constructs a Printer. labelPrefix is only used in assembly
// mode (default "A_" at the CLI layer).
func NewPrinter(dec *Decoder, out io.Writer, flags Flags, prefixes PrefixSet, labelPrefix string, vectorComments bool) *Printer {
	return &Printer{
		dec:            dec,
		out:            out,
		flags:          flags,
		prefixes:       prefixes,
		labelPrefix:    labelPrefix,
		vectorComments: vectorComments,
	}
}

// Step pulls and renders one instruction. It returns io.EOF once the
// decoder is drained, or a stage error (the decoder's own error is
// propagated as-is; write failures are wrapped here as OutputError).
func (p *Printer) Step() error {
	inst, err := p.dec.Read()
	if err != nil {
		return err
	}

	if p.flags&FlagAssembly != 0 && (!p.initialized || inst.Address != p.nextExpected) {
		if _, werr := fmt.Fprintf(p.out, ".org 0x%04x\n", inst.Address); werr != nil {
			return OutputError(StagePrinter, "writing org directive", werr)
		}
	}

	p.initialized = true
	p.nextExpected = inst.Address + uint32(inst.Width)

	if _, werr := fmt.Fprintln(p.out, p.formatLine(inst)); werr != nil {
		return OutputError(StagePrinter, "writing instruction line", werr)
	}
	return nil
}

// Run drains the decoder, calling Step until io.EOF.
func (p *Printer) Run() error {
	for {
		err := p.Step()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (p *Printer) formatLine(inst *DisassembledInstruction) string {
	var sb strings.Builder
	assembly := p.flags&FlagAssembly != 0

	switch {
	case assembly:
		fmt.Fprintf(&sb, "%s%04x:\t", p.labelPrefix, inst.Address)
	case p.flags&FlagAddresses != 0:
		fmt.Fprintf(&sb, "%4x:\t", inst.Address)
	}

	if !assembly && p.flags&FlagOpcodes != 0 {
		// The .dw fallback prints its two bytes in the same order as its
		// hex operand value (high byte first); every other width prints
		// bytes in flash stream order.
		isDW := inst.Info == &instructionSet[instructionSetWordIndex]
		switch inst.Width {
		case 1:
			fmt.Fprintf(&sb, "%02x         \t", inst.Opcode[0])
		case 2:
			if isDW {
				fmt.Fprintf(&sb, "%02x %02x      \t", inst.Opcode[1], inst.Opcode[0])
			} else {
				fmt.Fprintf(&sb, "%02x %02x      \t", inst.Opcode[0], inst.Opcode[1])
			}
		case 4:
			fmt.Fprintf(&sb, "%02x %02x %02x %02x\t", inst.Opcode[0], inst.Opcode[1], inst.Opcode[2], inst.Opcode[3])
		}
	}

	// The raw-data sentinels are printed as assembler directives.
	if inst.Info == &instructionSet[instructionSetWordIndex] || inst.Info == &instructionSet[instructionSetByteIndex] {
		sb.WriteString(".")
	}
	sb.WriteString(inst.Info.Mnemonic)
	sb.WriteString("\t")

	parts := make([]string, 0, inst.Info.NumOperands)
	for i := 0; i < inst.Info.NumOperands; i++ {
		if inst.Info.Operands[i].Kind == OperandNone {
			continue
		}
		parts = append(parts, p.formatOperand(inst.Operands[i], inst.Info.Operands[i].Kind, inst.Address))
	}
	sb.WriteString(strings.Join(parts, ", "))

	p.appendComments(&sb, inst)

	return sb.String()
}

// appendComments writes the destination-address comment (for a
// branch/relative operand, per §4.3) and, when enabled, the interrupt
// vector annotation supplement.
func (p *Printer) appendComments(sb *strings.Builder, inst *DisassembledInstruction) {
	destIdx := -1
	for i := 0; i < inst.Info.NumOperands; i++ {
		k := inst.Info.Operands[i].Kind
		if k == OperandBranchAddress || k == OperandRelativeAddress {
			destIdx = i
			break
		}
	}

	if destIdx >= 0 {
		target := uint32(int64(inst.Address) + int64(inst.Operands[destIdx]) + 2)
		if p.flags&FlagDestinationComment != 0 {
			fmt.Fprintf(sb, "\t; 0x%x", target)
		}
		if p.vectorComments && inst.Info.Operands[destIdx].Kind == OperandRelativeAddress {
			if name, ok := vectorName(target); ok {
				fmt.Fprintf(sb, " (%s)", name)
			}
		}
		return
	}

	if !p.vectorComments {
		return
	}
	for i := 0; i < inst.Info.NumOperands; i++ {
		if inst.Info.Operands[i].Kind != OperandLongAbsoluteAddress {
			continue
		}
		target := uint32(inst.Operands[i])
		if name, ok := vectorName(target); ok {
			fmt.Fprintf(sb, "\t; (%s)", name)
		}
		break
	}
}

func (p *Printer) formatOperand(value int32, kind OperandKind, instrAddr uint32) string {
	switch kind {
	case OperandRegister, OperandRegisterFrom16, OperandRegisterEvenPair, OperandRegisterEvenPairFrom24:
		return p.prefixes.Register + strconv.Itoa(int(value))
	case OperandIoRegister:
		return fmt.Sprintf("%s%02x", p.prefixes.IoRegister, value)
	case OperandBit:
		return strconv.Itoa(int(value))
	case OperandDesRound:
		return fmt.Sprintf("%s%d", p.prefixes.Des, value)
	case OperandX:
		return "X"
	case OperandXp:
		return "X+"
	case OperandMx:
		return "-X"
	case OperandY:
		return "Y"
	case OperandYp:
		return "Y+"
	case OperandMy:
		return "-Y"
	case OperandZ:
		return "Z"
	case OperandZp:
		return "Z+"
	case OperandMz:
		return "-Z"
	case OperandYpq:
		return fmt.Sprintf("Y+%d", value)
	case OperandZpq:
		return fmt.Sprintf("Z+%d", value)
	case OperandData:
		switch {
		case p.flags&FlagDataBin != 0:
			return fmt.Sprintf("0b%08b", uint8(value))
		case p.flags&FlagDataDec != 0:
			return strconv.Itoa(int(uint8(value)))
		default:
			return fmt.Sprintf("0x%02x", uint8(value))
		}
	case OperandLongAbsoluteAddress:
		return fmt.Sprintf("0x%04x", uint32(value)/2)
	case OperandBranchAddress, OperandRelativeAddress:
		if p.flags&FlagAssembly != 0 {
			target := uint32(int64(instrAddr) + int64(value) + 2)
			return fmt.Sprintf("%s%04x", p.labelPrefix, target)
		}
		if value >= 0 {
			return fmt.Sprintf(".+%d", value)
		}
		return fmt.Sprintf(".%d", value)
	case OperandRawWord:
		return fmt.Sprintf("0x%04x", uint16(value))
	case OperandRawByte:
		return fmt.Sprintf("0x%02x", uint8(value))
	default:
		return strconv.Itoa(int(value))
	}
}
