package cpu

import (
	"github.com/retroenv/retrochip8/internal/memory"
)

// handler executes a decoded instruction. The program counter already points
// to the next instruction when a handler is called.
type handler func(c *CPU, ins Instruction) error

// handlers maps every Op to its implementation.
var handlers = [opCount]handler{
	OpUnknown:          (*CPU).unknown,
	OpClear:            (*CPU).clear,
	OpReturn:           (*CPU).ret,
	OpJump:             (*CPU).jump,
	OpCall:             (*CPU).call,
	OpSkipEqualByte:    (*CPU).skipEqualByte,
	OpSkipNotEqualByte: (*CPU).skipNotEqualByte,
	OpSkipEqual:        (*CPU).skipEqual,
	OpLoadByte:         (*CPU).loadByte,
	OpAddByte:          (*CPU).addByte,
	OpLoad:             (*CPU).load,
	OpOr:               (*CPU).or,
	OpAnd:              (*CPU).and,
	OpXor:              (*CPU).xor,
	OpAdd:              (*CPU).add,
	OpSub:              (*CPU).sub,
	OpShiftRight:       (*CPU).shiftRight,
	OpSubReverse:       (*CPU).subReverse,
	OpShiftLeft:        (*CPU).shiftLeft,
	OpSkipNotEqual:     (*CPU).skipNotEqual,
	OpLoadIndex:        (*CPU).loadIndex,
	OpJumpOffset:       (*CPU).jumpOffset,
	OpRandom:           (*CPU).rnd,
	OpDraw:             (*CPU).draw,
	OpSkipKey:          (*CPU).skipKey,
	OpSkipNotKey:       (*CPU).skipNotKey,
	OpLoadDelay:        (*CPU).loadDelay,
	OpWaitKey:          (*CPU).waitKey,
	OpSetDelay:         (*CPU).setDelay,
	OpSetSound:         (*CPU).setSound,
	OpAddIndex:         (*CPU).addIndex,
	OpLoadGlyph:        (*CPU).loadGlyph,
	OpStoreDecimal:     (*CPU).storeDecimal,
	OpStoreRegisters:   (*CPU).storeRegisters,
	OpLoadRegisters:    (*CPU).loadRegisters,
}

func (c *CPU) unknown(Instruction) error {
	return ErrUnknownOpcode
}

func (c *CPU) clear(Instruction) error {
	c.display.Clear()
	return nil
}

func (c *CPU) ret(Instruction) error {
	address, err := c.stack.Pop()
	if err != nil {
		return err
	}
	c.regs.PC = address
	return nil
}

func (c *CPU) jump(ins Instruction) error {
	c.regs.PC = ins.NNN
	return nil
}

func (c *CPU) call(ins Instruction) error {
	if err := c.stack.Push(c.regs.PC); err != nil {
		return err
	}
	c.regs.PC = ins.NNN
	return nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.regs.PC += 2
	}
}

func (c *CPU) skipEqualByte(ins Instruction) error {
	c.skipIf(c.regs.V[ins.X] == ins.NN)
	return nil
}

func (c *CPU) skipNotEqualByte(ins Instruction) error {
	c.skipIf(c.regs.V[ins.X] != ins.NN)
	return nil
}

func (c *CPU) skipEqual(ins Instruction) error {
	c.skipIf(c.regs.V[ins.X] == c.regs.V[ins.Y])
	return nil
}

func (c *CPU) skipNotEqual(ins Instruction) error {
	c.skipIf(c.regs.V[ins.X] != c.regs.V[ins.Y])
	return nil
}

func (c *CPU) loadByte(ins Instruction) error {
	c.regs.V[ins.X] = ins.NN
	return nil
}

func (c *CPU) addByte(ins Instruction) error {
	c.regs.V[ins.X] += ins.NN
	return nil
}

func (c *CPU) load(ins Instruction) error {
	c.regs.V[ins.X] = c.regs.V[ins.Y]
	return nil
}

func (c *CPU) or(ins Instruction) error {
	c.regs.V[ins.X] |= c.regs.V[ins.Y]
	return nil
}

func (c *CPU) and(ins Instruction) error {
	c.regs.V[ins.X] &= c.regs.V[ins.Y]
	return nil
}

func (c *CPU) xor(ins Instruction) error {
	c.regs.V[ins.X] ^= c.regs.V[ins.Y]
	return nil
}

// setWithFlag stores the result in Vx and the flag in VF. The flag is written
// last, so it wins when x is the flag register.
func (c *CPU) setWithFlag(x, result uint8, flag bool) {
	c.regs.V[x] = result
	c.regs.V[FlagRegister] = boolToByte(flag)
}

func (c *CPU) add(ins Instruction) error {
	vx, vy := c.regs.V[ins.X], c.regs.V[ins.Y]
	sum := uint16(vx) + uint16(vy)
	c.setWithFlag(ins.X, uint8(sum), sum > 0xFF)
	return nil
}

func (c *CPU) sub(ins Instruction) error {
	vx, vy := c.regs.V[ins.X], c.regs.V[ins.Y]
	c.setWithFlag(ins.X, vx-vy, vx >= vy)
	return nil
}

func (c *CPU) subReverse(ins Instruction) error {
	vx, vy := c.regs.V[ins.X], c.regs.V[ins.Y]
	c.setWithFlag(ins.X, vy-vx, vy >= vx)
	return nil
}

func (c *CPU) shiftRight(ins Instruction) error {
	vx := c.regs.V[ins.X]
	c.setWithFlag(ins.X, vx>>1, vx&0x01 != 0)
	return nil
}

func (c *CPU) shiftLeft(ins Instruction) error {
	vx := c.regs.V[ins.X]
	c.setWithFlag(ins.X, vx<<1, vx&0x80 != 0)
	return nil
}

func (c *CPU) loadIndex(ins Instruction) error {
	c.regs.I = ins.NNN
	return nil
}

func (c *CPU) jumpOffset(ins Instruction) error {
	c.regs.PC = ins.NNN + uint16(c.regs.V[0])
	return nil
}

func (c *CPU) rnd(ins Instruction) error {
	c.regs.V[ins.X] = ins.NN & c.random()
	return nil
}

func (c *CPU) draw(ins Instruction) error {
	sprite, err := c.memory.ReadRange(c.regs.I, int(ins.N))
	if err != nil {
		return err
	}

	x, y := c.regs.V[ins.X], c.regs.V[ins.Y]
	collision := c.display.DrawSprite(x, y, sprite)
	c.regs.V[FlagRegister] = boolToByte(collision)
	return nil
}

func (c *CPU) skipKey(ins Instruction) error {
	c.skipIf(c.keypad.IsPressed(c.regs.V[ins.X]))
	return nil
}

func (c *CPU) skipNotKey(ins Instruction) error {
	c.skipIf(!c.keypad.IsPressed(c.regs.V[ins.X]))
	return nil
}

func (c *CPU) loadDelay(ins Instruction) error {
	c.regs.V[ins.X] = c.timers.Delay()
	return nil
}

// waitKey suspends execution with the program counter kept on this
// instruction until a key press resolves the wait.
func (c *CPU) waitKey(ins Instruction) error {
	c.regs.PC -= 2
	c.keyRegister = ins.X
	c.mode = AwaitingKey
	return nil
}

func (c *CPU) setDelay(ins Instruction) error {
	c.timers.SetDelay(c.regs.V[ins.X])
	return nil
}

func (c *CPU) setSound(ins Instruction) error {
	c.timers.SetSound(c.regs.V[ins.X])
	return nil
}

func (c *CPU) addIndex(ins Instruction) error {
	c.regs.I += uint16(c.regs.V[ins.X])
	return nil
}

func (c *CPU) loadGlyph(ins Instruction) error {
	c.regs.I = memory.GlyphAddress(c.regs.V[ins.X])
	return nil
}

func (c *CPU) storeDecimal(ins Instruction) error {
	vx := c.regs.V[ins.X]
	digits := []byte{vx / 100, vx / 10 % 10, vx % 10}
	return c.memory.WriteRange(c.regs.I, digits)
}

func (c *CPU) storeRegisters(ins Instruction) error {
	return c.memory.WriteRange(c.regs.I, c.regs.V[:ins.X+1])
}

func (c *CPU) loadRegisters(ins Instruction) error {
	values, err := c.memory.ReadRange(c.regs.I, int(ins.X)+1)
	if err != nil {
		return err
	}
	copy(c.regs.V[:], values)
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
