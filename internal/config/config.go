// Package config creates the logger and the interpreter core from the program options.
package config

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with the level selected by the debug and quiet flags.
// Debug takes precedence over quiet.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the interpreter options derived from the program options.
func MachineOptions(opts options.Program) chip8.Options {
	machineOpts := chip8.Options{
		Strict: opts.Strict,
		Trace:  opts.Debug,
	}
	if opts.Seed != 0 {
		machineOpts.Random = chip8.NewRandomSource(opts.Seed)
	}
	return machineOpts
}

// CreateMachine creates an interpreter core in reset state.
func CreateMachine(logger *log.Logger, opts options.Program) *chip8.Machine {
	return chip8.New(logger, MachineOptions(opts))
}
