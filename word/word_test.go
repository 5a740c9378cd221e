package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastFirstRange(t *testing.T) {
	assert.Equal(t, uint16(0b0000_0000_0000_1111), Last(0b0000_0000_0000_1111, I4))
	assert.Equal(t, uint16(0b0000_0000_0000_0111), Last(0b0000_0000_0000_1111, I3))

	assert.Equal(t, uint16(0b0001), First(0b1111_1111_1111_1111, 1))
	assert.Equal(t, uint16(0b1010), First(0b1010_1111_0000_0000, 4))

	// opcode field (bits 1..4, 1-indexed from the MSB) of an ADD
	// instruction 0001 000 001 1 00010 -- opcode is 0b0001
	instr := uint16(0b0001_000_001_1_00010)
	assert.Equal(t, uint16(0b0001), Range(instr, I1, I4))

	assert.True(t, IsSet(0b1000_0000_0000_0000, I1))
	assert.False(t, IsSet(0b0100_0000_0000_0000, I1))
	assert.True(t, IsSet(0b0100_0000_0000_0000, I2))
}

func TestSignExtend(t *testing.T) {
	// 5-bit -1 (0b11111) sign-extends to 16-bit 0xFFFF
	assert.Equal(t, uint16(0xFFFF), SignExtend(0b11111, 5))
	// 5-bit +1 stays +1
	assert.Equal(t, uint16(1), SignExtend(0b00001, 5))
	// 9-bit offsets behave the same way
	assert.Equal(t, uint16(0xFFFF), SignExtend(0b1_1111_1111, 9))
	assert.Equal(t, uint16(3), SignExtend(0b0_0000_0011, 9))

	// identity at n == 16
	assert.Equal(t, uint16(0xBEEF), SignExtend(0xBEEF, 16))

	// idempotent
	once := SignExtend(0b11111, 5)
	assert.Equal(t, once, SignExtend(once, 5))
}
