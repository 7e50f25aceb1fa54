package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode_Fields(t *testing.T) {
	ins := Decode(0xD12F)

	assert.Equal(t, OpDraw, ins.Op)
	assert.Equal(t, uint16(0xD12F), ins.Word)
	assert.Equal(t, uint8(0x1), ins.X)
	assert.Equal(t, uint8(0x2), ins.Y)
	assert.Equal(t, uint8(0xF), ins.N)
	assert.Equal(t, uint8(0x2F), ins.NN)
	assert.Equal(t, uint16(0x12F), ins.NNN)
}

func TestDecode_Ops(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x00E0, OpClear},
		{0x00EE, OpReturn},
		{0x0000, OpUnknown},
		{0x0123, OpUnknown},
		{0x00E1, OpUnknown},
		{0x1ABC, OpJump},
		{0x2ABC, OpCall},
		{0x3A12, OpSkipEqualByte},
		{0x4A12, OpSkipNotEqualByte},
		{0x5AB0, OpSkipEqual},
		{0x5AB1, OpUnknown},
		{0x6A12, OpLoadByte},
		{0x7A12, OpAddByte},
		{0x8AB0, OpLoad},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAdd},
		{0x8AB5, OpSub},
		{0x8AB6, OpShiftRight},
		{0x8AB7, OpSubReverse},
		{0x8ABE, OpShiftLeft},
		{0x8AB8, OpUnknown},
		{0x8ABF, OpUnknown},
		{0x9AB0, OpSkipNotEqual},
		{0x9AB2, OpUnknown},
		{0xA123, OpLoadIndex},
		{0xB123, OpJumpOffset},
		{0xCA12, OpRandom},
		{0xDAB5, OpDraw},
		{0xEA9E, OpSkipKey},
		{0xEAA1, OpSkipNotKey},
		{0xEA00, OpUnknown},
		{0xFA07, OpLoadDelay},
		{0xFA0A, OpWaitKey},
		{0xFA15, OpSetDelay},
		{0xFA18, OpSetSound},
		{0xFA1E, OpAddIndex},
		{0xFA29, OpLoadGlyph},
		{0xFA33, OpStoreDecimal},
		{0xFA55, OpStoreRegisters},
		{0xFA65, OpLoadRegisters},
		{0xFA75, OpUnknown},
		{0xFFFF, OpUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.op, Decode(tt.word).Op)
		})
	}
}

func TestHandlers_Complete(t *testing.T) {
	for op := range opCount {
		assert.True(t, handlers[op] != nil, "missing handler for %s", op)
		assert.NotEmpty(t, op.String())
	}
	assert.Equal(t, "Op(200)", Op(200).String())
}
