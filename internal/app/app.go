// Package app provides the main application helpers shared by the commands.
package app

import (
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner logs the program name and build version.
func PrintBanner(logger *log.Logger, quiet bool, name, version, commit, date string) {
	if quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo logs information about the loaded ROM.
func PrintInfo(logger *log.Logger, quiet bool, rom loader.ROM) {
	if quiet {
		return
	}

	logger.Info("Loaded CHIP-8 ROM",
		log.String("file", rom.Name),
		log.Int("size", len(rom.Data)),
		log.Int("free", memory.ProgramCapacity-len(rom.Data)),
	)
	if len(rom.Data)%2 != 0 {
		logger.Warn("ROM has an odd size, the last instruction is incomplete")
	}
}
