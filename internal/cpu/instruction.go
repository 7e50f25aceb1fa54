package cpu

import "fmt"

// Op identifies a decoded instruction.
type Op uint8

// Supported instructions, named after the operand pattern of the opcode.
const (
	OpUnknown          Op = iota
	OpClear               // 00E0
	OpReturn              // 00EE
	OpJump                // 1nnn
	OpCall                // 2nnn
	OpSkipEqualByte       // 3xnn
	OpSkipNotEqualByte    // 4xnn
	OpSkipEqual           // 5xy0
	OpLoadByte            // 6xnn
	OpAddByte             // 7xnn
	OpLoad                // 8xy0
	OpOr                  // 8xy1
	OpAnd                 // 8xy2
	OpXor                 // 8xy3
	OpAdd                 // 8xy4
	OpSub                 // 8xy5
	OpShiftRight          // 8xy6
	OpSubReverse          // 8xy7
	OpShiftLeft           // 8xyE
	OpSkipNotEqual        // 9xy0
	OpLoadIndex           // Annn
	OpJumpOffset          // Bnnn
	OpRandom              // Cxnn
	OpDraw                // Dxyn
	OpSkipKey             // Ex9E
	OpSkipNotKey          // ExA1
	OpLoadDelay           // Fx07
	OpWaitKey             // Fx0A
	OpSetDelay            // Fx15
	OpSetSound            // Fx18
	OpAddIndex            // Fx1E
	OpLoadGlyph           // Fx29
	OpStoreDecimal        // Fx33
	OpStoreRegisters      // Fx55
	OpLoadRegisters       // Fx65

	opCount
)

var opNames = [opCount]string{
	OpUnknown:          "unknown",
	OpClear:            "clear",
	OpReturn:           "return",
	OpJump:             "jump",
	OpCall:             "call",
	OpSkipEqualByte:    "skip_equal_byte",
	OpSkipNotEqualByte: "skip_not_equal_byte",
	OpSkipEqual:        "skip_equal",
	OpLoadByte:         "load_byte",
	OpAddByte:          "add_byte",
	OpLoad:             "load",
	OpOr:               "or",
	OpAnd:              "and",
	OpXor:              "xor",
	OpAdd:              "add",
	OpSub:              "sub",
	OpShiftRight:       "shift_right",
	OpSubReverse:       "sub_reverse",
	OpShiftLeft:        "shift_left",
	OpSkipNotEqual:     "skip_not_equal",
	OpLoadIndex:        "load_index",
	OpJumpOffset:       "jump_offset",
	OpRandom:           "random",
	OpDraw:             "draw",
	OpSkipKey:          "skip_key",
	OpSkipNotKey:       "skip_not_key",
	OpLoadDelay:        "load_delay",
	OpWaitKey:          "wait_key",
	OpSetDelay:         "set_delay",
	OpSetSound:         "set_sound",
	OpAddIndex:         "add_index",
	OpLoadGlyph:        "load_glyph",
	OpStoreDecimal:     "store_decimal",
	OpStoreRegisters:   "store_registers",
	OpLoadRegisters:    "load_registers",
}

func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// Instruction is a decoded instruction word with its nibble fields extracted.
type Instruction struct {
	Op   Op
	Word uint16 // raw instruction word

	X   uint8  // second nibble, first register index
	Y   uint8  // third nibble, second register index
	N   uint8  // fourth nibble
	NN  uint8  // low byte
	NNN uint16 // low 12 bits
}

// Decode splits an instruction word into its fields and identifies the instruction.
// Words that do not match any instruction decode to OpUnknown.
func Decode(word uint16) Instruction {
	return Instruction{
		Op:   decodeOp(word),
		Word: word,
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
	}
}

func decodeOp(word uint16) Op {
	n := word & 0x000F
	nn := word & 0x00FF

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpClear
		case 0x00EE:
			return OpReturn
		}

	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualByte
	case 0x4:
		return OpSkipNotEqualByte

	case 0x5:
		if n == 0 {
			return OpSkipEqual
		}

	case 0x6:
		return OpLoadByte
	case 0x7:
		return OpAddByte

	case 0x8:
		return arithmeticOps[n]

	case 0x9:
		if n == 0 {
			return OpSkipNotEqual
		}

	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpOffset
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw

	case 0xE:
		switch nn {
		case 0x9E:
			return OpSkipKey
		case 0xA1:
			return OpSkipNotKey
		}

	case 0xF:
		return miscOps[nn]
	}

	return OpUnknown
}

// arithmeticOps maps the selector nibble of the 8xyN family, unlisted
// selectors are left as OpUnknown.
var arithmeticOps = [16]Op{
	0x0: OpLoad,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAdd,
	0x5: OpSub,
	0x6: OpShiftRight,
	0x7: OpSubReverse,
	0xE: OpShiftLeft,
}

// miscOps maps the selector byte of the FxNN family.
var miscOps = map[uint16]Op{
	0x07: OpLoadDelay,
	0x0A: OpWaitKey,
	0x15: OpSetDelay,
	0x18: OpSetSound,
	0x1E: OpAddIndex,
	0x29: OpLoadGlyph,
	0x33: OpStoreDecimal,
	0x55: OpStoreRegisters,
	0x65: OpLoadRegisters,
}
