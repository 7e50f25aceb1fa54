package host

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeMachine struct {
	steps   int
	ticks   int
	blocked bool
	errs    []error // returned by consecutive steps
	keys    []KeyEvent
	screen  *display.Display
	sound   bool
}

func newFakeMachine() *fakeMachine {
	return &fakeMachine{screen: display.New()}
}

func (m *fakeMachine) Step() error {
	m.steps++
	if len(m.errs) == 0 {
		return nil
	}
	err := m.errs[0]
	m.errs = m.errs[1:]
	return err
}

func (m *fakeMachine) Tick() { m.ticks++ }

func (m *fakeMachine) SetKey(index byte, pressed bool) error {
	m.keys = append(m.keys, KeyEvent{Key: index, Pressed: pressed})
	if pressed {
		m.blocked = false
	}
	return nil
}

func (m *fakeMachine) IsBlocked() bool { return m.blocked }
func (m *fakeMachine) Display() display.Surface { return m.screen }
func (m *fakeMachine) SoundActive() bool { return m.sound }

type fakeFrontend struct {
	events   [][]KeyEvent // returned by consecutive polls
	quitAt   int          // poll number requesting quit, 0 disables
	polls    int
	presents int
	sounds   []bool
}

func (f *fakeFrontend) Poll() ([]KeyEvent, bool, error) {
	f.polls++
	if f.quitAt > 0 && f.polls >= f.quitAt {
		return nil, true, nil
	}
	if len(f.events) == 0 {
		return nil, false, nil
	}
	events := f.events[0]
	f.events = f.events[1:]
	return events, false, nil
}

func (f *fakeFrontend) Present(_ display.Surface, sound bool) error {
	f.presents++
	f.sounds = append(f.sounds, sound)
	return nil
}

func TestRunner_Batching(t *testing.T) {
	tests := []struct {
		name   string
		rate   int
		frames int
		steps  int
	}{
		{"default rate", 600, 1, 10},
		{"default rate multiple frames", 600, 6, 60},
		{"rate below timer rate", 30, 4, 2},
		{"remainder carried", 90, 2, 3},
		{"remainder accumulates", 61, 60, 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := newFakeMachine()
			runner := New(log.NewTestLogger(t), machine, &fakeFrontend{}, tt.rate)

			err := runner.RunFrames(context.Background(), tt.frames)
			assert.NoError(t, err)
			assert.Equal(t, tt.steps, machine.steps)
			assert.Equal(t, tt.frames, machine.ticks)
			assert.Equal(t, tt.frames, runner.Frames())
		})
	}
}

func TestRunner_BlockedMachineStepsOncePerFrame(t *testing.T) {
	machine := newFakeMachine()
	machine.blocked = true
	frontend := &fakeFrontend{
		events: [][]KeyEvent{nil, nil, {{Key: 0x5, Pressed: true}}},
	}
	runner := New(log.NewTestLogger(t), machine, frontend, 600)

	assert.NoError(t, runner.RunFrames(context.Background(), 2))
	assert.Equal(t, 2, machine.steps)
	assert.Equal(t, 2, machine.ticks, "timers keep running while blocked")

	assert.NoError(t, runner.RunFrames(context.Background(), 1))
	assert.Equal(t, 12, machine.steps)
	assert.Equal(t, []KeyEvent{{Key: 0x5, Pressed: true}}, machine.keys)
}

func TestRunner_WaitKeyResolvedByHeldKey(t *testing.T) {
	program := []byte{
		0xF3, 0x0A, // ld V3, K
		0x12, 0x02, // jp $202
	}

	c := cpu.New(log.NewTestLogger(t))
	assert.NoError(t, c.LoadProgram(program))

	// the key is pressed before the wait instruction executes
	frontend := &fakeFrontend{
		events: [][]KeyEvent{{{Key: 0x4, Pressed: true}}},
	}
	runner := New(log.NewTestLogger(t), c, frontend, 600)
	assert.NoError(t, runner.RunFrames(context.Background(), 1))

	state := c.State()
	assert.False(t, c.IsBlocked())
	assert.Equal(t, uint8(0x4), state.V[3])
	assert.Equal(t, uint16(0x202), state.PC)

	// no further key events, the held key does not trigger another wait
	assert.NoError(t, runner.RunFrames(context.Background(), 2))
	assert.Equal(t, uint16(0x202), c.State().PC)
}

func TestRunner_WaitKeyHeldAcrossFrames(t *testing.T) {
	program := []byte{
		0xF3, 0x0A, // ld V3, K
		0x12, 0x02, // jp $202
	}

	c := cpu.New(log.NewTestLogger(t))
	assert.NoError(t, c.LoadProgram(program))

	// 1 instruction per frame: the wait is entered in the first frame
	frontend := &fakeFrontend{
		events: [][]KeyEvent{{{Key: 0x7, Pressed: true}}},
	}
	runner := New(log.NewTestLogger(t), c, frontend, 60)

	assert.NoError(t, runner.RunFrames(context.Background(), 1))
	assert.True(t, c.IsBlocked())
	assert.Equal(t, uint16(0x200), c.State().PC)

	// the key is still held, no new press event arrives
	assert.NoError(t, runner.RunFrames(context.Background(), 1))
	assert.False(t, c.IsBlocked())
	assert.Equal(t, uint8(0x7), c.State().V[3])
	assert.Equal(t, uint16(0x202), c.State().PC)
}

func TestRunner_UnknownOpcodeContinues(t *testing.T) {
	machine := newFakeMachine()
	machine.errs = []error{&cpu.Fault{Err: cpu.ErrUnknownOpcode, PC: 0x200, Opcode: 0x0123}}
	runner := New(log.NewTestLogger(t), machine, &fakeFrontend{}, 600)

	err := runner.RunFrames(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 10, machine.steps)
}

func TestRunner_FatalFaultHalts(t *testing.T) {
	machine := newFakeMachine()
	machine.errs = []error{nil, &cpu.Fault{Err: cpu.ErrStackUnderflow, PC: 0x202, Opcode: 0x00EE}}
	runner := New(log.NewTestLogger(t), machine, &fakeFrontend{}, 600)

	err := runner.RunFrames(context.Background(), 3)
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
	assert.Equal(t, 2, machine.steps)
	assert.Equal(t, 0, machine.ticks)

	var fault *cpu.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x202), fault.PC)
}

func TestRunner_Quit(t *testing.T) {
	machine := newFakeMachine()
	frontend := &fakeFrontend{quitAt: 3}
	runner := New(log.NewTestLogger(t), machine, frontend, 600)

	err := runner.RunFrames(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, runner.Frames())
	assert.Equal(t, 20, machine.steps)
}

func TestRunner_PresentOnChange(t *testing.T) {
	machine := newFakeMachine()
	frontend := &fakeFrontend{}
	runner := New(log.NewTestLogger(t), machine, frontend, 600)
	ctx := context.Background()

	assert.NoError(t, runner.RunFrames(ctx, 3))
	assert.Equal(t, 1, frontend.presents, "only the first unchanged frame is presented")

	machine.screen.DrawSprite(0, 0, []byte{0x80})
	assert.NoError(t, runner.RunFrames(ctx, 2))
	assert.Equal(t, 2, frontend.presents)

	machine.sound = true
	assert.NoError(t, runner.RunFrames(ctx, 1))
	assert.Equal(t, 3, frontend.presents)
	assert.Equal(t, []bool{false, false, true}, frontend.sounds)
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := New(log.NewTestLogger(t), newFakeMachine(), &fakeFrontend{}, 600)
	assert.True(t, errors.Is(runner.Run(ctx), context.Canceled))
	assert.True(t, errors.Is(runner.RunFrames(ctx, 1), context.Canceled))
}

func TestRunner_Run(t *testing.T) {
	machine := newFakeMachine()
	frontend := &fakeFrontend{quitAt: 3}
	runner := New(log.NewTestLogger(t), machine, frontend, 600)

	err := runner.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, runner.Frames())
}

func TestRunner_CPU(t *testing.T) {
	// draws the glyph of V0 at position (V1, V1) and loops forever
	program := []byte{
		0x60, 0x08, // ld V0, $08
		0x61, 0x02, // ld V1, $02
		0xF0, 0x29, // ld F, V0
		0xD1, 0x15, // drw V1, V1, 5
		0x12, 0x08, // jp $208
	}

	c := cpu.New(log.NewTestLogger(t))
	assert.NoError(t, c.LoadProgram(program))

	runner := New(log.NewTestLogger(t), c, Headless{}, 600)
	assert.NoError(t, runner.RunFrames(context.Background(), 2))

	var buf bytes.Buffer
	assert.NoError(t, WriteFrame(&buf, c.Display()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, display.Height)
	assert.Len(t, lines[0], display.Width)
	assert.Equal(t, strings.Repeat(".", display.Width), lines[0])
	// glyph 8 is F0 90 F0 90 F0
	assert.Equal(t, "..####..", lines[2][:8])
	assert.Equal(t, "..#..#..", lines[3][:8])
	assert.Equal(t, "..####..", lines[6][:8])
	assert.Equal(t, strings.Repeat(".", display.Width), lines[7])
}
