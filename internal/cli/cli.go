// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	retrocli "github.com/retroenv/retrogolib/cli"
)

// ParseFlags parses command line flags and returns the program options.
// A help request is returned as retrocli.ErrHelpRequested after the usage
// has been printed.
func ParseFlags() (options.Program, error) {
	opts := options.New()
	flags := newFlagSet(&opts)

	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, retrocli.ErrHelpRequested) {
			return opts, err
		}
		// the flag set already printed the usage for parse errors
		return opts, &UsageError{msg: err.Error()}
	}
	if opts.Version {
		return opts, nil
	}
	if opts.Input == "" {
		return opts, &UsageError{flags: flags, msg: "no program file given"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func newFlagSet(opts *options.Program) *retrocli.FlagSet {
	flags := retrocli.NewFlagSet("retrochip8")
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddSection("Emulation", &opts.Emulation)
	flags.AddPositional(&opts.Positional)
	return flags
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *retrocli.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text with all flag sections. Nothing is printed
// if the usage was already shown while parsing.
func (e *UsageError) ShowUsage() {
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks the arguments left over after the program file.
func validateArgs(remaining []string) error {
	for _, arg := range remaining {
		if arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	if len(remaining) > 0 {
		return &UsageError{
			msg: fmt.Sprintf("only one program file can be run, got %d", len(remaining)+1),
		}
	}
	return nil
}

// validateOptions checks option values and combinations
func validateOptions(opts options.Program) error {
	if opts.Rate <= 0 || opts.Rate > options.MaxRate {
		return fmt.Errorf("invalid cycle rate %d, must be between 1 and %d", opts.Rate, options.MaxRate)
	}
	if opts.Disasm && (opts.Render || opts.Keyboard || opts.Wav != "") {
		return errors.New("option -disasm can not be combined with -render, -keyboard or -wav")
	}
	return nil
}
