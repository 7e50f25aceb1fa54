package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	logger := log.NewTestLogger(t)

	t.Run("load CHIP8 file", func(t *testing.T) {
		data := []byte{0x12, 0x34, 0x56, 0x78}
		fileName := createTempFile(t, "pong.ch8", data)

		rom, err := New(logger).Load(fileName)
		assert.NoError(t, err)
		assert.Equal(t, "pong.ch8", rom.Name)
		assert.Equal(t, arch.CHIP8System, rom.System)
		assert.Equal(t, data, rom.Data)
	})

	t.Run("load file filling program memory", func(t *testing.T) {
		fileName := createTempFile(t, "full.rom", make([]byte, memory.ProgramCapacity))

		rom, err := New(logger).Load(fileName)
		assert.NoError(t, err)
		assert.Len(t, rom.Data, memory.ProgramCapacity)
	})

	t.Run("error on too large file", func(t *testing.T) {
		fileName := createTempFile(t, "large.ch8", make([]byte, memory.ProgramCapacity+1))

		_, err := New(logger).Load(fileName)
		assert.True(t, errors.Is(err, memory.ErrCapacityExceeded))
	})

	t.Run("error on empty file", func(t *testing.T) {
		fileName := createTempFile(t, "empty.ch8", nil)

		_, err := New(logger).Load(fileName)
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})

	t.Run("error on NES file", func(t *testing.T) {
		fileName := createTempFile(t, "game.nes", []byte{'N', 'E', 'S', 0x1A})

		_, err := New(logger).Load(fileName)
		assert.True(t, errors.Is(err, ErrUnsupportedSystem))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New(logger).Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestDetectSystem(t *testing.T) {
	tests := []struct {
		fileName string
		want     arch.System
	}{
		{"pong.ch8", arch.CHIP8System},
		{"PONG.CH8", arch.CHIP8System},
		{"tetris.c8", arch.CHIP8System},
		{"maze.rom", arch.CHIP8System},
		{"dump", arch.CHIP8System},
		{"game.nes", arch.NES},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSystem(tt.fileName))
		})
	}
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	fileName := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(fileName, data, 0o600)
	assert.NoError(t, err)
	return fileName
}
