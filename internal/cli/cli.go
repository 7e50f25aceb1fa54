// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line flags of the emulator.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags, usage: "retrochip8 [options] <ROM file>"}
	}

	if opts.Input != "" && len(args) > 0 {
		return opts, &UsageError{
			msg: fmt.Sprintf("Unexpected argument %s, the ROM file is already set by -i", args[0]),
		}
	}
	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// ParseDisasmFlags parses the command line flags of the disassembler.
func ParseDisasmFlags() (options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	opts := options.NewDisassembler()

	var noHexComments, noOffsets bool
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags, usage: "chip8disasm [options] <file to disassemble>"}
	}
	if err := validateArgs(args); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	opts.HexComments = !noHexComments
	opts.OffsetComments = !noOffsets
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.flags == nil {
		return
	}
	fmt.Printf("usage: %s\n\n", e.usage)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks that the ROM file is the only and last argument
func validateArgs(args []string) error {
	for i, arg := range args {
		switch {
		case i == 0:
		case arg != "" && arg[0] == '-':
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		default:
			return &UsageError{
				msg: fmt.Sprintf("Unexpected argument %s found after ROM file, only one file can be passed", arg),
			}
		}
	}
	return nil
}

// validateOptions checks option values that the flag package can not validate.
func validateOptions(opts options.Program) error {
	switch {
	case opts.Rate <= 0:
		return errors.New("instruction rate must be positive")
	case opts.HoldFrames < 1:
		return errors.New("key hold frames must be at least 1")
	case opts.Headless && opts.Frames < 1:
		return errors.New("frames must be positive in headless mode")
	case opts.StackDepth < 1:
		return errors.New("stack depth must be positive")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.Var(&opts.Rate, "rate", "instruction rate, for example 600Hz or 1KHz")
	flags.IntVar(&opts.HoldFrames, "hold", opts.HoldFrames, "frames a key stays pressed after a terminal key event")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal and print the final frame as text")
	flags.IntVar(&opts.Frames, "frames", opts.Frames, "frames at 60Hz to run in headless mode")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, 0 picks a time based seed")
	flags.IntVar(&opts.StackDepth, "stack", opts.StackDepth, "maximum nested subroutine calls")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
