package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/memory"
)

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, which doubles as carry, borrow,
	// shift-out and collision flag.
	FlagRegister = 0xF

	// DefaultStackDepth is the number of nested calls supported by default.
	DefaultStackDepth = 16
)

// Registers contains the register file of the CPU.
type Registers struct {
	V  [RegisterCount]uint8 // general purpose registers V0-VF
	I  uint16               // index register, not clamped to the address space
	PC uint16               // program counter
}

// reset sets the power-on register values.
func (r *Registers) reset() {
	*r = Registers{PC: memory.ProgramStart}
}

// Stack is the bounded call stack of return addresses.
type Stack struct {
	entries []uint16
	depth   int
}

// NewStack returns a stack that holds up to depth return addresses.
func NewStack(depth int) *Stack {
	return &Stack{
		entries: make([]uint16, 0, depth),
		depth:   depth,
	}
}

// Push adds a return address to the top of the stack.
func (s *Stack) Push(address uint16) error {
	if len(s.entries) >= s.depth {
		return fmt.Errorf("pushing %04x at depth %d: %w", address, s.depth, ErrStackOverflow)
	}
	s.entries = append(s.entries, address)
	return nil
}

// Pop removes and returns the return address at the top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if len(s.entries) == 0 {
		return 0, ErrStackUnderflow
	}
	address := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return address, nil
}

// Len returns the number of stored return addresses.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Depth returns the maximum number of return addresses.
func (s *Stack) Depth() int {
	return s.depth
}

// Entries returns a copy of the stored return addresses, bottom first.
func (s *Stack) Entries() []uint16 {
	entries := make([]uint16, len(s.entries))
	copy(entries, s.entries)
	return entries
}

func (s *Stack) reset() {
	s.entries = s.entries[:0]
}
