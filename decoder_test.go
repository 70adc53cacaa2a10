package avrdisasm

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 of the boundary scenarios: rjmp, ser, out, out, dec, rjmp.
func TestDecoderScenario1(t *testing.T) {
	src := newContigSource(0, []byte{0x00, 0xC0, 0x0F, 0xEF, 0x07, 0xBB, 0x08, 0xBB, 0x0A, 0x95, 0xFD, 0xCF})
	dec := NewDecoder(src)

	var got []*DisassembledInstruction
	for {
		inst, err := dec.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, inst)
	}

	require.Len(t, got, 6)
	wantMnemonics := []string{"rjmp", "ser", "out", "out", "dec", "rjmp"}
	wantAddrs := []uint32{0, 2, 4, 6, 8, 10}
	wantWidths := []int{2, 2, 2, 2, 2, 2}
	for i, inst := range got {
		assert.Equal(t, wantMnemonics[i], inst.Info.Mnemonic, "instruction %d", i)
		assert.Equal(t, wantAddrs[i], inst.Address, "instruction %d", i)
		assert.Equal(t, wantWidths[i], inst.Width, "instruction %d", i)
	}
	assert.EqualValues(t, 0, got[0].Operands[0]) // rjmp .+0
	assert.EqualValues(t, -6, got[5].Operands[0]) // rjmp .-6
}

// Scenario 2: 32-bit jmp/call and the sts raw-word open question resolution.
func TestDecoderScenario2(t *testing.T) {
	src := newContigSource(0, []byte{
		0xAD, 0x94, 0x5A, 0x5D, // jmp
		0x0E, 0x94, 0x07, 0xF8, // call
		0x20, 0x92, 0x34, 0x12, // sts
	})
	dec := NewDecoder(src)

	jmp, err := dec.Read()
	require.NoError(t, err)
	require.Equal(t, "jmp", jmp.Info.Mnemonic)
	require.Equal(t, 4, jmp.Width)
	assert.EqualValues(t, 0x2abab4, jmp.Operands[0])

	call, err := dec.Read()
	require.NoError(t, err)
	require.Equal(t, "call", call.Info.Mnemonic)
	assert.EqualValues(t, 0x1f00e, call.Operands[0])

	sts, err := dec.Read()
	require.NoError(t, err)
	require.Equal(t, "sts", sts.Info.Mnemonic)
	// Resolution of the open question: a plain, unscaled 16-bit address.
	assert.EqualValues(t, 0x1234, sts.Operands[0])
}

// Scenario 3: a lone byte at EOF emits .db.
func TestDecoderScenario3(t *testing.T) {
	src := newGappedSource([]byte{0x18}, []uint32{0x500})
	dec := NewDecoder(src)

	inst, err := dec.Read()
	require.NoError(t, err)
	assert.Equal(t, "db", inst.Info.Mnemonic)
	assert.Equal(t, 1, inst.Width)
	assert.EqualValues(t, 0x500, inst.Address)
	assert.EqualValues(t, 0x18, inst.Operands[0])

	_, err = dec.Read()
	assert.Equal(t, io.EOF, err)
}

// Scenario 4: a lone byte at an address-boundary gap, followed by a real
// 16-bit instruction once two consecutive bytes appear.
func TestDecoderScenario4(t *testing.T) {
	src := newGappedSource([]byte{0x18, 0x12, 0x33}, []uint32{0x500, 0x502, 0x503})
	dec := NewDecoder(src)

	db, err := dec.Read()
	require.NoError(t, err)
	assert.Equal(t, "db", db.Info.Mnemonic)
	assert.EqualValues(t, 0x500, db.Address)
	assert.EqualValues(t, 0x18, db.Operands[0])

	cpi, err := dec.Read()
	require.NoError(t, err)
	assert.Equal(t, "cpi", cpi.Info.Mnemonic)
	assert.EqualValues(t, 0x502, cpi.Address)
	assert.EqualValues(t, 17, cpi.Operands[0])
	assert.EqualValues(t, 0x32, cpi.Operands[1])

	_, err = dec.Read()
	assert.Equal(t, io.EOF, err)
}

// Scenario 5: a truncated wide-instruction pattern at EOF falls back to
// .dw then .db, exercising the decoder's maximum-iteration budget.
func TestDecoderScenario5(t *testing.T) {
	src := newContigSource(0x500, []byte{0xAE, 0x94, 0xAB})
	dec := NewDecoder(src)

	dw, err := dec.Read()
	require.NoError(t, err)
	assert.Equal(t, "dw", dw.Info.Mnemonic)
	assert.Equal(t, 2, dw.Width)
	assert.EqualValues(t, 0x500, dw.Address)
	assert.EqualValues(t, 0x94ae, dw.Operands[0])

	db, err := dec.Read()
	require.NoError(t, err)
	assert.Equal(t, "db", db.Info.Mnemonic)
	assert.EqualValues(t, 0x502, db.Address)
	assert.EqualValues(t, 0xab, db.Operands[0])

	_, err = dec.Read()
	assert.Equal(t, io.EOF, err)
}

func TestDecoderMaskDisjointness(t *testing.T) {
	for _, info := range instructionSet {
		union := info.operandMaskUnion()
		assert.Zero(t, info.InstructionMask&union, "mnemonic %s has overlapping instruction/operand masks", info.Mnemonic)
	}
}

func TestDecoderTotalCoverageAndMonotonicity(t *testing.T) {
	bytes := []byte{0x00, 0xC0, 0x0F, 0xEF, 0x07, 0xBB, 0x08, 0xBB, 0x0A, 0x95, 0xFD, 0xCF}
	src := newContigSource(0, bytes)
	dec := NewDecoder(src)

	var covered uint32
	var prevEnd uint32
	first := true
	for {
		inst, err := dec.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if !first {
			assert.GreaterOrEqual(t, inst.Address, prevEnd)
		}
		first = false
		prevEnd = inst.Address + uint32(inst.Width)
		covered += uint32(inst.Width)
	}
	assert.EqualValues(t, len(bytes), covered)
}
