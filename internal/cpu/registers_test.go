package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStack_PushPop(t *testing.T) {
	s := NewStack(2)
	assert.Equal(t, 2, s.Depth())

	assert.NoError(t, s.Push(0x202))
	assert.NoError(t, s.Push(0x304))
	assert.Equal(t, []uint16{0x202, 0x304}, s.Entries())

	err := s.Push(0x400)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, 2, s.Len())

	address, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x304), address)

	address, err = s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x202), address)

	_, err = s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestFault_Error(t *testing.T) {
	fault := &Fault{Err: ErrStackUnderflow, PC: 0x234, Opcode: 0x00EE}
	assert.Equal(t, "fault at PC 0234 executing 00ee: stack underflow", fault.Error())
	assert.True(t, errors.Is(fault, ErrStackUnderflow))
}
