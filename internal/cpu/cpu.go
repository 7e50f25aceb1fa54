// Package cpu implements the CHIP-8 fetch-decode-execute engine.
//
// The CPU owns all machine components: memory, registers, call stack,
// timers, display and keypad. It performs no scheduling of its own, the host
// calls Step at the instruction rate and Tick at the timer rate, serialized
// with its input handling.
package cpu

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// Mode is the execution state of the CPU.
type Mode uint8

const (
	// Running executes one instruction per step.
	Running Mode = iota
	// AwaitingKey suspends execution until a key is pressed.
	AwaitingKey
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting_key"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// CPU is a CHIP-8 machine instance.
type CPU struct {
	logger *log.Logger
	trace  bool
	random func() byte

	memory  *memory.Memory
	regs    Registers
	stack   *Stack
	timers  timer.Timers
	display *display.Display
	keypad  keypad.Keypad

	mode        Mode
	keyRegister uint8 // register receiving the key while awaiting a key press
}

// Option configures optional CPU behavior.
type Option func(*CPU)

// WithStackDepth sets the maximum number of nested calls.
func WithStackDepth(depth int) Option {
	return func(c *CPU) {
		c.stack = NewStack(depth)
	}
}

// WithRandom sets the source of random bytes used by the random instruction.
func WithRandom(random func() byte) Option {
	return func(c *CPU) {
		c.random = random
	}
}

// WithSeed seeds the default random source, making random instructions reproducible.
func WithSeed(seed uint64) Option {
	return func(c *CPU) {
		c.random = newRandom(seed)
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(c *CPU) {
		c.trace = trace
	}
}

// New returns a CPU in power-on state with the font table installed.
func New(logger *log.Logger, options ...Option) *CPU {
	c := &CPU{
		logger:  logger,
		memory:  memory.New(),
		stack:   NewStack(DefaultStackDepth),
		display: display.New(),
	}
	c.regs.reset()

	for _, option := range options {
		option(c)
	}
	if c.random == nil {
		c.random = newRandom(uint64(time.Now().UnixNano()))
	}
	return c
}

func newRandom(seed uint64) func() byte {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return func() byte {
		return byte(rnd.UintN(256))
	}
}

// LoadProgram copies the program to the start of program memory.
func (c *CPU) LoadProgram(program []byte) error {
	if err := c.memory.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// Reset restores the power-on state, the loaded program is kept.
func (c *CPU) Reset() {
	c.memory.Reset()
	c.regs.reset()
	c.stack.reset()
	c.timers.Reset()
	c.display.Clear()
	c.keypad.Reset()
	c.mode = Running
	c.keyRegister = 0
}

// Step executes exactly one instruction. While awaiting a key press no
// instruction is executed, the wait is resolved instead if a key is pressed.
//
// Any returned error is a *Fault. Faults wrapping ErrUnknownOpcode have
// advanced the program counter past the unknown word, all other faults leave
// the program counter on the faulting instruction and the state unmodified.
func (c *CPU) Step() error {
	if c.mode == AwaitingKey {
		if key, ok := c.keypad.FirstPressed(); ok {
			c.resolveKeyWait(key)
		}
		return nil
	}

	pc := c.regs.PC
	word, err := c.memory.ReadWord(pc)
	if err != nil {
		return &Fault{Err: err, PC: pc}
	}

	ins := Decode(word)
	if c.trace {
		c.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", disasm.Format(word)))
	}

	c.regs.PC = pc + 2
	if err := handlers[ins.Op](c, ins); err != nil {
		if !errors.Is(err, ErrUnknownOpcode) {
			c.regs.PC = pc
		}
		return &Fault{Err: err, PC: pc, Opcode: word}
	}
	return nil
}

// Tick decrements the delay and sound timers, it is intended to be called at timer.Rate.
func (c *CPU) Tick() {
	c.timers.Tick()
}

// SetKey sets the pressed state of a logical key. A key press resolves a
// pending key wait immediately.
func (c *CPU) SetKey(index byte, pressed bool) error {
	if err := c.keypad.SetKey(index, pressed); err != nil {
		return err
	}
	if pressed && c.mode == AwaitingKey {
		c.resolveKeyWait(index)
	}
	return nil
}

// IsBlocked returns whether execution is suspended waiting for a key press.
func (c *CPU) IsBlocked() bool {
	return c.mode == AwaitingKey
}

// Display returns the read-only view of the display surface.
func (c *CPU) Display() display.Surface {
	return c.display
}

// SoundActive returns whether the sound timer requests a tone.
func (c *CPU) SoundActive() bool {
	return c.timers.SoundActive()
}

// Memory returns the memory of the machine.
func (c *CPU) Memory() *memory.Memory {
	return c.memory
}

// State is a snapshot of the CPU state.
type State struct {
	Registers
	Stack []uint16
	Delay uint8
	Sound uint8
	Mode  Mode
}

// State returns a snapshot of registers, stack, timers and execution mode.
func (c *CPU) State() State {
	return State{
		Registers: c.regs,
		Stack:     c.stack.Entries(),
		Delay:     c.timers.Delay(),
		Sound:     c.timers.Sound(),
		Mode:      c.mode,
	}
}

// Register returns the value of the general purpose register Vx.
func (c *CPU) Register(x uint8) (uint8, error) {
	if x >= RegisterCount {
		return 0, fmt.Errorf("reading register %d: %w", x, ErrInvalidRegister)
	}
	return c.regs.V[x], nil
}

// SetRegister sets the value of the general purpose register Vx.
func (c *CPU) SetRegister(x, value uint8) error {
	if x >= RegisterCount {
		return fmt.Errorf("writing register %d: %w", x, ErrInvalidRegister)
	}
	c.regs.V[x] = value
	return nil
}

// Index returns the index register I.
func (c *CPU) Index() uint16 {
	return c.regs.I
}

// SetIndex sets the index register I. Like the index instructions it is not
// clamped to the address space.
func (c *CPU) SetIndex(address uint16) {
	c.regs.I = address
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.regs.PC
}

// SetPC sets the program counter. An address outside of memory faults on the
// next fetch.
func (c *CPU) SetPC(address uint16) {
	c.regs.PC = address
}

func (c *CPU) resolveKeyWait(key byte) {
	c.regs.V[c.keyRegister] = key
	c.regs.PC += 2
	c.mode = Running
}
