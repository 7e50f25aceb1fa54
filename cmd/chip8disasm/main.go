// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const name = "chip8disasm"

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := cli.ParseDisasmFlags()
	logger := config.CreateLogger(options.Flags{Quiet: opts.Quiet})
	if err != nil {
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

	// the listing goes to stdout if no output file is given, keep it clean
	app.PrintBanner(logger, opts.Quiet || opts.Output == "", name, version, commit, date)

	if err := disasmFile(logger, opts); err != nil {
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}

func disasmFile(logger *log.Logger, opts options.Disassembler) error {
	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	listing := disasm.New(rom.Data, memory.ProgramStart)
	listingOpts := disasm.Options{
		HexComments:    opts.HexComments,
		OffsetComments: opts.OffsetComments,
	}
	if err := writeListing(listing, opts.Output, listingOpts); err != nil {
		return err
	}

	if opts.Output != "" {
		app.PrintInfo(logger, opts.Quiet, rom)
	}
	return nil
}

// writeListing writes the listing to the named file, or to stdout if no
// file name is given. Stdout is never closed.
func writeListing(listing *disasm.Listing, fileName string, opts disasm.Options) error {
	if fileName == "" {
		if err := listing.Write(os.Stdout, opts); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", fileName, err)
	}

	if err := listing.Write(file, opts); err != nil {
		writeErr := fmt.Errorf("writing listing: %w", err)
		if closeErr := file.Close(); closeErr != nil {
			return errors.Join(writeErr, fmt.Errorf("closing file: %w", closeErr))
		}
		return writeErr
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
