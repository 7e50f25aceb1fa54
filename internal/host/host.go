// Package host drives a CHIP-8 machine at its instruction and timer rates and
// connects it to a frontend for presentation and input.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the part of the CPU the runner controls.
type Machine interface {
	Step() error
	Tick()
	SetKey(index byte, pressed bool) error
	IsBlocked() bool
	Display() display.Surface
	SoundActive() bool
}

// KeyEvent changes the state of a logical key.
type KeyEvent struct {
	Key     byte
	Pressed bool
}

// Frontend presents the display and collects input. It is called once per frame
// from the runner goroutine.
type Frontend interface {
	// Poll returns the key events since the last call and whether the user
	// requested to quit.
	Poll() (events []KeyEvent, quit bool, err error)
	// Present shows the display surface and the sound state.
	Present(screen display.Surface, sound bool) error
}

// Runner executes instructions in batches, one batch per timer tick.
type Runner struct {
	logger   *log.Logger
	machine  Machine
	frontend Frontend

	rate        int // instructions per second
	accumulator int // instruction budget carried between frames

	frames     int
	generation uint64
	sound      bool
}

// New returns a runner executing rate instructions per second.
func New(logger *log.Logger, machine Machine, frontend Frontend, rate int) *Runner {
	return &Runner{
		logger:   logger,
		machine:  machine,
		frontend: frontend,
		rate:     rate,
	}
}

// Run executes frames at the timer rate until the context is canceled, the
// user quits or a fatal fault occurs.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("Starting execution",
		log.Int("rate", r.rate),
		log.Int("steps_per_frame", r.rate/timer.Rate))

	ticker := time.NewTicker(time.Second / timer.Rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running: %w", ctx.Err())
		case <-ticker.C:
		}

		quit, err := r.Frame()
		if err != nil {
			return err
		}
		if quit {
			r.logger.Info("Execution stopped", log.Int("frames", r.frames))
			return nil
		}
	}
}

// RunFrames executes the given number of frames without waiting between them.
func (r *Runner) RunFrames(ctx context.Context, frames int) error {
	for range frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running: %w", err)
		}

		quit, err := r.Frame()
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	return nil
}

// Frame processes input, executes one batch of instructions, ticks the timers
// and presents the display if it changed.
func (r *Runner) Frame() (bool, error) {
	events, quit, err := r.frontend.Poll()
	if err != nil {
		return false, fmt.Errorf("polling input: %w", err)
	}
	if quit {
		return true, nil
	}
	for _, event := range events {
		if err := r.machine.SetKey(event.Key, event.Pressed); err != nil {
			return false, fmt.Errorf("setting key: %w", err)
		}
	}

	if err := r.executeBatch(); err != nil {
		return false, err
	}
	r.machine.Tick()
	r.frames++

	if err := r.present(); err != nil {
		return false, fmt.Errorf("presenting frame: %w", err)
	}
	return false, nil
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() int {
	return r.frames
}

// executeBatch runs the instructions of one frame. The remainder of the
// division of rate by the timer rate is carried to the next frame.
// A machine waiting for a key gets one step per frame to pick up a key that
// is already held.
func (r *Runner) executeBatch() error {
	r.accumulator += r.rate
	steps := r.accumulator / timer.Rate
	r.accumulator %= timer.Rate

	for range steps {
		blocked := r.machine.IsBlocked()
		if err := r.step(); err != nil {
			return err
		}
		if blocked && r.machine.IsBlocked() {
			return nil
		}
	}
	return nil
}

// step executes one instruction, unknown opcodes are logged and skipped.
func (r *Runner) step() error {
	err := r.machine.Step()
	if err == nil {
		return nil
	}

	var fault *cpu.Fault
	if errors.As(err, &fault) && !fault.Fatal() {
		r.logger.Warn("Skipping unknown opcode",
			log.Hex("pc", fault.PC),
			log.Hex("opcode", fault.Opcode))
		return nil
	}
	return fmt.Errorf("executing program: %w", err)
}

func (r *Runner) present() error {
	screen := r.machine.Display()
	generation := screen.Generation()
	sound := r.machine.SoundActive()

	if r.frames > 1 && generation == r.generation && sound == r.sound {
		return nil
	}
	r.generation = generation
	r.sound = sound
	return r.frontend.Present(screen, sound)
}
