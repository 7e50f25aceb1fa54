// Package disasm converts CHIP-8 instruction words into assembly mnemonics.
// Instruction names come from the retrogolib CHIP-8 opcode table, the operand
// formatting follows the common Cowgod syntax.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup returns the instruction matching the word in the opcode table.
func Lookup(word uint16) (*chip8.Instruction, bool) {
	opcodes := chip8.Opcodes[int(word>>12)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Format returns the assembly representation of an instruction word.
// Words without a matching instruction are rendered as a data word.
func Format(word uint16) string {
	ins, ok := Lookup(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	if params := formatParams(word); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// IsSkip returns whether the word is a conditional skip instruction.
func IsSkip(word uint16) bool {
	ins, ok := Lookup(word)
	if !ok {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// formatParams formats the operands of an instruction word.
func formatParams(word uint16) string {
	x := registerX(word)
	y := registerY(word)
	nn := word & 0x00FF
	nnn := word & 0x0FFF

	switch word & 0xF000 {
	case 0x0000:
		return ""
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", nnn)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", x, nn)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		if n := word & 0x000F; n == 0x6 || n == 0xE {
			return fmt.Sprintf("V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", nnn)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", nnn)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	default:
		return formatMiscParams(word)
	}
}

// formatMiscParams formats the operands of the FxNN family.
func formatMiscParams(word uint16) string {
	x := registerX(word)

	switch word & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return fmt.Sprintf("V%X", x)
	}
}

// registerX extracts the X register nibble from an instruction word.
func registerX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from an instruction word.
func registerY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}
