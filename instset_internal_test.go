package avrdisasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsFromMaskGathersInMaskOrder(t *testing.T) {
	// mask selects bits 1, 4 and 7; data sets bits 1 and 7 only.
	mask := uint16(0b1001_0010)
	data := uint16(0b1000_0010)
	got := bitsFromMask(data, mask)
	// result bit0 <- data bit1 (1), result bit1 <- data bit4 (0), result bit2 <- data bit7 (1)
	assert.EqualValues(t, 0b101, got)
}

func TestDisasmOperandBranchAddressSignExtension(t *testing.T) {
	// Spec §8: for a 7-bit operand v, stored value == ((v ^ 0x40) - 0x40) * 2.
	cases := []uint32{0, 1, 0x3F, 0x40, 0x41, 0x7F}
	for _, v := range cases {
		want := int32((int32(v)^0x40)-0x40) * 2
		got := disasmOperand(v, OperandBranchAddress)
		assert.Equal(t, want, got, "v=0x%x", v)
	}
}

func TestDisasmOperandRelativeAddressSignExtension(t *testing.T) {
	cases := []uint32{0, 1, 0x7FF, 0x800, 0x801, 0xFFF}
	for _, v := range cases {
		want := int32((int32(v)^0x800)-0x800) * 2
		got := disasmOperand(v, OperandRelativeAddress)
		assert.Equal(t, want, got, "v=0x%x", v)
	}
}

func TestDisasmOperandLongAbsoluteAddressScalesToBytes(t *testing.T) {
	assert.EqualValues(t, 0x2abab4, disasmOperand(0x155D5A, OperandLongAbsoluteAddress))
}

func TestDisasmOperandRegisterFrom16(t *testing.T) {
	assert.EqualValues(t, 17, disasmOperand(1, OperandRegisterFrom16))
}

func TestInstructionTableEndsWithDwThenDbSentinels(t *testing.T) {
	assert.Equal(t, "dw", instructionSet[instructionSetWordIndex].Mnemonic)
	assert.Equal(t, "db", instructionSet[instructionSetByteIndex].Mnemonic)
	assert.Equal(t, instructionSetByteIndex, len(instructionSet)-1)
	assert.Equal(t, instructionSetWordIndex, len(instructionSet)-2)
}
