package avrdisasm

import "io"

// windowEntry is one unconsumed byte and its flash address.
type windowEntry struct {
	b    byte
	addr uint32
}

// Decoder holds the sliding window (up to 4 bytes) over a ByteSource and
// turns it into a stream of DisassembledInstruction values. It owns its
// window exclusively; nothing else mutates it.
type Decoder struct {
	src    ByteSource
	window [4]windowEntry
	n      int
	eof    bool
}

// NewDecoder wraps src. The decoder does not call src.Init; the caller
// brackets the source's lifecycle.
func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src}
}

// consecutivePrefixLen returns the count of window entries, starting at
// index 0, whose addresses increase by exactly 1.
func (d *Decoder) consecutivePrefixLen() int {
	if d.n == 0 {
		return 0
	}
	l := 1
	for l < d.n && d.window[l].addr == d.window[l-1].addr+1 {
		l++
	}
	return l
}

func (d *Decoder) pop(k int) {
	copy(d.window[:], d.window[k:d.n])
	d.n -= k
}

// pull reads one more byte from upstream into the window. It is a no-op
// once eof has been observed.
func (d *Decoder) pull() error {
	if d.eof {
		return nil
	}
	if d.n == 4 {
		return DecoderFailure("window overflow")
	}
	b, a, err := d.src.Read()
	if err == io.EOF {
		d.eof = true
		return nil
	}
	if err != nil {
		return InputError(StageDecoder, "reading byte source", err)
	}
	d.window[d.n] = windowEntry{b: b, addr: a}
	d.n++
	return nil
}

// lookup returns the first matching table entry; the .dw sentinel's mask
// matches any opcode, so this always succeeds.
func lookup(opcode uint16) *InstructionInfo {
	for i := range instructionSet {
		if instructionSet[i].matches(opcode) {
			return &instructionSet[i]
		}
	}
	panic("avrdisasm: instruction table has no catch-all entry")
}

func (d *Decoder) emitDB() *DisassembledInstruction {
	e := d.window[0]
	inst := &DisassembledInstruction{
		Address:  e.addr,
		Width:    1,
		Info:     &instructionSet[instructionSetByteIndex],
		Operands: [2]int32{int32(e.b), 0},
	}
	inst.Opcode[0] = e.b
	d.pop(1)
	return inst
}

func (d *Decoder) emitDW(opcode uint16) *DisassembledInstruction {
	inst := &DisassembledInstruction{
		Address:  d.window[0].addr,
		Width:    2,
		Info:     &instructionSet[instructionSetWordIndex],
		Operands: [2]int32{int32(opcode), 0},
	}
	inst.Opcode[0] = d.window[0].b
	inst.Opcode[1] = d.window[1].b
	d.pop(2)
	return inst
}

func (d *Decoder) emitShort(info *InstructionInfo, opcode uint16) *DisassembledInstruction {
	inst := &DisassembledInstruction{Address: d.window[0].addr, Width: 2, Info: info}
	inst.Opcode[0] = d.window[0].b
	inst.Opcode[1] = d.window[1].b
	for i := 0; i < info.NumOperands; i++ {
		raw := bitsFromMask(opcode, info.Operands[i].Mask)
		inst.Operands[i] = disasmOperand(raw, info.Operands[i].Kind)
	}
	d.pop(2)
	return inst
}

// emitLong decodes a 4-byte instruction. Per spec, LongAbsoluteAddress
// operands (jmp/call targets) extend their first-word bits with the second
// word as the low 16 bits of a 22-bit word address. lds/sts address
// operands carry no bits in the first word at all (mask 0) and are a plain
// 16-bit data-memory byte address living entirely in the second word; they
// are folded through the same combine step (as RawWord) rather than
// through LongAbsoluteAddress's word-to-byte doubling, which is the
// resolution of this repo's open question on lds/sts immediate semantics
// (see DESIGN.md).
func (d *Decoder) emitLong(info *InstructionInfo, opcode uint16) *DisassembledInstruction {
	inst := &DisassembledInstruction{Address: d.window[0].addr, Width: 4, Info: info}
	for i := 0; i < 4; i++ {
		inst.Opcode[i] = d.window[i].b
	}
	secondWord := uint16(d.window[3].b)<<8 | uint16(d.window[2].b)
	for i := 0; i < info.NumOperands; i++ {
		raw := bitsFromMask(opcode, info.Operands[i].Mask)
		value := uint32(raw)
		switch info.Operands[i].Kind {
		case OperandLongAbsoluteAddress, OperandRawWord:
			value = uint32(raw)<<16 | uint32(secondWord)
		}
		inst.Operands[i] = disasmOperand(value, info.Operands[i].Kind)
	}
	d.pop(4)
	return inst
}

// Read runs the decision table of §4.2: it either emits one instruction,
// reports io.EOF, or returns a stage error. On Ok the window has advanced
// by exactly the returned instruction's width.
func (d *Decoder) Read() (*DisassembledInstruction, error) {
	for iter := 0; iter < 5; iter++ {
		l := d.consecutivePrefixLen()
		n := d.n

		switch {
		case l == 0 && n == 0 && d.eof:
			return nil, io.EOF

		case l == 1 && (n > 1 || d.eof):
			return d.emitDB(), nil

		case l >= 2:
			opcode := uint16(d.window[1].b)<<8 | uint16(d.window[0].b)
			info := lookup(opcode)
			switch {
			case info.Width == 2:
				return d.emitShort(info, opcode), nil
			case l == 4:
				return d.emitLong(info, opcode), nil
			case (l == 3 && (n > 3 || d.eof)) || (l == 2 && (n > 2 || d.eof)):
				return d.emitDW(opcode), nil
			}
		}

		if err := d.pull(); err != nil {
			return nil, err
		}
	}
	return nil, DecoderFailure("no progress after maximum iterations")
}
