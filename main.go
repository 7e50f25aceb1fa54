// Package main implements the main entry point for the CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

const name = "retrochip8"

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts.Quiet, name, version, commit, date)
			usageErr.ShowUsage()
		}
		if err.Error() != "" {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Flags)
	app.PrintBanner(logger, opts.Quiet, name, version, commit, date)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running program failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	app.PrintInfo(logger, opts.Quiet, rom)

	if opts.Headless {
		machine, err := newMachine(logger, opts, rom.Data)
		if err != nil {
			return err
		}
		return runHeadless(ctx, logger, machine, opts)
	}

	if opts.Trace {
		logger.Warn("Instruction tracing is only logged in headless mode")
	}
	// the terminal frontend owns the screen, log output would draw over it
	runLogger := config.CreateLogger(config.TerminalFlags(opts.Flags))
	machine, err := newMachine(runLogger, opts, rom.Data)
	if err != nil {
		return err
	}

	term, err := terminal.New(opts.HoldFrames)
	if err != nil {
		return err
	}
	defer term.Close()

	runner := host.New(runLogger, machine, term, int(opts.Rate))
	if err := runner.Run(ctx); err != nil {
		return err
	}
	return nil
}

func newMachine(logger *log.Logger, opts options.Program, program []byte) (*cpu.CPU, error) {
	cpuOptions := []cpu.Option{
		cpu.WithStackDepth(opts.StackDepth),
		cpu.WithTrace(opts.Trace && opts.Headless),
	}
	if opts.Seed != 0 {
		cpuOptions = append(cpuOptions, cpu.WithSeed(opts.Seed))
	}

	machine := cpu.New(logger, cpuOptions...)
	if err := machine.LoadProgram(program); err != nil {
		return nil, err
	}
	return machine, nil
}

func runHeadless(ctx context.Context, logger *log.Logger, machine *cpu.CPU, opts options.Program) error {
	runner := host.New(logger, machine, host.Headless{}, int(opts.Rate))
	runErr := runner.RunFrames(ctx, opts.Frames)

	state := machine.State()
	logger.Info("Execution finished",
		log.Int("frames", runner.Frames()),
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.String("mode", state.Mode.String()),
	)

	if err := host.WriteFrame(os.Stdout, machine.Display()); err != nil {
		return err
	}
	return runErr
}
