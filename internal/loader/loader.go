// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrUnsupportedSystem is returned for ROM files of other systems.
	ErrUnsupportedSystem = errors.New("unsupported system")

	// ErrEmptyProgram is returned for ROM files without any content.
	ErrEmptyProgram = errors.New("empty program")
)

// ROM is a loaded program image.
type ROM struct {
	Name   string
	System arch.System
	Data   []byte
}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a ROM file and checks that it fits into program memory.
func (l *Loader) Load(fileName string) (ROM, error) {
	system := DetectSystem(fileName)
	l.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", fileName))

	if system != arch.CHIP8System {
		return ROM{}, fmt.Errorf("file %s: %w '%s'", fileName, ErrUnsupportedSystem, system)
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		return ROM{}, fmt.Errorf("reading file %s: %w", fileName, err)
	}

	switch {
	case len(data) == 0:
		return ROM{}, fmt.Errorf("file %s: %w", fileName, ErrEmptyProgram)
	case len(data) > memory.ProgramCapacity:
		return ROM{}, fmt.Errorf("file %s has %d bytes, %d available: %w",
			fileName, len(data), memory.ProgramCapacity, memory.ErrCapacityExceeded)
	}

	return ROM{
		Name:   filepath.Base(fileName),
		System: system,
		Data:   data,
	}, nil
}

// DetectSystem determines the system type based on the file extension.
// Files without a known extension are treated as CHIP-8 programs.
func DetectSystem(fileName string) arch.System {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8 and .rom files as well as raw dumps
		return arch.CHIP8System
	}
}
