// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings.
// Instruction tracing logs at debug level and therefore enables it.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	if flags.Debug || flags.Trace {
		cfg.Level = log.DebugLevel
	} else if flags.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// TerminalFlags returns the logging flags to use while a full screen frontend
// owns the terminal. Only errors are logged.
func TerminalFlags(flags options.Flags) options.Flags {
	flags.Debug = false
	flags.Trace = false
	flags.Quiet = true
	return flags
}
