// Package memory implements the 4KB CHIP-8 address space.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, the font glyphs live at its start (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the number of addressable bytes.
	Size = 4096

	// ProgramStart is the address programs are loaded to and execution begins at.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address.
	MaxAddress = Size - 1

	// ProgramCapacity is the largest program that fits between ProgramStart and MaxAddress.
	ProgramCapacity = Size - ProgramStart
)

var (
	// ErrOutOfRangeAddress is returned for any access beyond MaxAddress.
	ErrOutOfRangeAddress = errors.New("address out of range")

	// ErrCapacityExceeded is returned when a program does not fit into program space.
	ErrCapacityExceeded = errors.New("program exceeds memory capacity")
)

// Memory is the byte addressable storage of the machine.
type Memory struct {
	data    [Size]byte
	program []byte // copy of the loaded program, restored on reset
}

// New returns a memory instance with the font table installed.
func New() *Memory {
	m := &Memory{}
	m.installFont()
	return m
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("reading address %04x: %w", address, ErrOutOfRangeAddress)
	}
	return m.data[address], nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if address > MaxAddress {
		return fmt.Errorf("writing address %04x: %w", address, ErrOutOfRangeAddress)
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big-endian 16 bit word stored at address and address+1.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if err := CheckRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// ReadRange returns a copy of length bytes starting at address.
func (m *Memory) ReadRange(address uint16, length int) ([]byte, error) {
	if err := CheckRange(address, length); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	copy(buf, m.data[address:])
	return buf, nil
}

// WriteRange writes all bytes of data starting at address.
// Nothing is written if the range does not fit into memory.
func (m *Memory) WriteRange(address uint16, data []byte) error {
	if err := CheckRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// LoadProgram copies the program bytes to ProgramStart. Any previously loaded
// program is cleared first.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > ProgramCapacity {
		return fmt.Errorf("loading %d bytes, %d available: %w",
			len(program), ProgramCapacity, ErrCapacityExceeded)
	}

	clear(m.data[ProgramStart:])
	copy(m.data[ProgramStart:], program)
	m.program = append(m.program[:0], program...)
	return nil
}

// ProgramLength returns the size of the last loaded program.
func (m *Memory) ProgramLength() int {
	return len(m.program)
}

// Reset restores the power-on memory contents and reloads the last loaded
// program, undoing any writes done by the program itself.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	m.installFont()
	copy(m.data[ProgramStart:], m.program)
}

// CheckRange validates that length bytes starting at address are addressable.
func CheckRange(address uint16, length int) error {
	if length < 0 || int(address)+length > Size {
		return fmt.Errorf("accessing %d bytes at address %04x: %w", length, address, ErrOutOfRangeAddress)
	}
	return nil
}
