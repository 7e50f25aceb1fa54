package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrInvalidRegister is returned for register indexes above 0xF.
	ErrInvalidRegister = errors.New("invalid register index")

	// ErrUnknownOpcode is returned for instruction words that do not decode to
	// a supported instruction. It is not fatal, the program counter is advanced
	// past the word and execution can continue.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// Fault describes an error that occurred while executing an instruction.
type Fault struct {
	Err    error  // fault kind, one of the package or memory sentinel errors
	PC     uint16 // address of the faulting instruction
	Opcode uint16 // instruction word, 0 if it could not be fetched
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at PC %04x executing %04x: %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Fatal returns whether the fault should halt execution.
func (f *Fault) Fatal() bool {
	return !errors.Is(f.Err, ErrUnknownOpcode)
}
