// Package options contains the program options.
package options

const (
	// DefaultRate is the default number of cycles executed per second.
	DefaultRate = 60
	// MaxRate is the highest supported number of cycles per second.
	MaxRate = 1_000_000
)

// Positional contains the positional command line arguments.
type Positional struct {
	Input string `arg:"positional" usage:"CHIP-8 program file to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Wav string `flag:"wav" usage:"name of a .wav file to record the sound output to"`
}

// Flags contains behavior options.
type Flags struct {
	Debug    bool `flag:"debug" usage:"enable debugging options for extended logging"`
	Quiet    bool `flag:"q" usage:"perform operations quietly"`
	Strict   bool `flag:"strict" usage:"stop on the first unknown opcode, stack or address error"`
	Disasm   bool `flag:"disasm" usage:"print a disassembly listing of the program and exit"`
	Render   bool `flag:"render" usage:"render the display to the console"`
	Keyboard bool `flag:"keyboard" usage:"read keypad input from the terminal"`
	Version  bool `flag:"version" usage:"print version information and exit"`
}

// Emulation contains options controlling the execution loop.
type Emulation struct {
	Rate   int    `flag:"hz" default:"60" usage:"number of cycles to execute per second"`
	Cycles uint64 `flag:"cycles" usage:"number of cycles to execute, 0 runs until interrupted"`
	Seed   uint64 `flag:"seed" usage:"seed for the random number generator, 0 for a random seed"`
}

// Program options of the emulator.
type Program struct {
	Positional
	Parameters
	Flags
	Emulation
}

// New returns a new options instance with default options.
func New() Program {
	return Program{
		Emulation: Emulation{
			Rate: DefaultRate,
		},
	}
}
