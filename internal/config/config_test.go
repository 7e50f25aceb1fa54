package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestTerminalFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags options.Flags
	}{
		{"defaults", options.Flags{}},
		{"debug", options.Flags{Debug: true}},
		{"trace", options.Flags{Trace: true, Debug: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.flags.Rate = options.DefaultRate
			flags := TerminalFlags(tt.flags)
			assert.True(t, flags.Quiet)
			assert.False(t, flags.Debug)
			assert.False(t, flags.Trace)
			assert.Equal(t, options.DefaultRate, flags.Rate)
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(options.Flags{}))
	assert.NotNil(t, CreateLogger(TerminalFlags(options.Flags{Debug: true})))
}
