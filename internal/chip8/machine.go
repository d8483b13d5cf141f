package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/mnemonic"
	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Options controls the behavior of a Machine.
type Options struct {
	// Strict turns every execution error into a fatal error that is returned
	// from Step. Otherwise errors are logged and the instruction is skipped.
	Strict bool

	// Trace logs every executed instruction at debug level.
	Trace bool

	// Random returns a uniformly distributed byte. Defaults to the
	// process wide generator.
	Random func() byte
}

// Cycle describes the outcome of a single executed cycle.
type Cycle struct {
	PC          uint16 // address the instruction was fetched from
	Instruction Instruction
	Kind        Kind

	// Tone is set when the sound timer was active during this cycle.
	Tone bool
	// Redraw mirrors the redraw requested flag after the cycle.
	Redraw bool
}

// Machine is a CHIP-8 interpreter core. It is not safe for concurrent use.
type Machine struct {
	logger *log.Logger
	opts   Options
	random func() byte

	state State
}

// New returns a new machine in reset state.
func New(logger *log.Logger, opts Options) *Machine {
	m := &Machine{
		logger: logger,
		opts:   opts,
		random: opts.Random,
	}
	if m.random == nil {
		m.random = defaultRandom
	}
	m.Reset()
	return m
}

// NewRandomSource returns a deterministic byte generator for the given seed.
func NewRandomSource(seed uint64) func() byte {
	rnd := rand.New(rand.NewPCG(seed, seed>>1|1))
	return func() byte {
		return byte(rnd.UintN(256))
	}
}

func defaultRandom() byte {
	return byte(rand.UintN(256))
}

// Reset zeroes the machine state, erasing any loaded program, and installs
// the font glyph set.
func (m *Machine) Reset() {
	m.state.reset()
}

// Load copies a program image into memory starting at ProgramStart.
// Images larger than MaxProgramSize are rejected without modifying memory.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.state.Memory[ProgramStart:], program)

	m.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("address", uint16(ProgramStart)))
	return nil
}

// Step runs one cycle: fetch, decode, dispatch, execute and timer tick.
func (m *Machine) Step() (Cycle, error) {
	pc := m.state.PC
	cycle := Cycle{PC: pc}

	word, err := m.fetch(pc)
	if err != nil {
		err = fmt.Errorf("fetching instruction: %w", err)
		if err = m.recoverError(pc, err); err != nil {
			return cycle, err
		}
		cycle.Tone = m.tickTimers()
		cycle.Redraw = m.state.Redraw
		return cycle, nil
	}

	cycle.Instruction = Decode(word)
	cycle.Kind = Lookup(cycle.Instruction)

	if m.opts.Trace {
		m.logger.Debug("Execute",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", mnemonic.Format(word)))
	}

	if err := m.execute(cycle.Kind, cycle.Instruction); err != nil {
		var unknown *UnknownOpcodeError
		if !errors.As(err, &unknown) {
			err = &CPUError{Opcode: word, PC: pc, Err: err}
		}
		if err = m.recoverError(pc, err); err != nil {
			return cycle, err
		}
	}

	cycle.Tone = m.tickTimers()
	cycle.Redraw = m.state.Redraw
	return cycle, nil
}

// recoverError applies the error policy. In strict mode the error is
// returned unchanged, otherwise it is reported and the program counter
// moves past the failed instruction.
func (m *Machine) recoverError(pc uint16, err error) error {
	if m.opts.Strict {
		return err
	}

	var unknown *UnknownOpcodeError
	if errors.As(err, &unknown) {
		m.logger.Warn("Unknown opcode",
			log.Hex("opcode", unknown.Opcode),
			log.Hex("pc", unknown.PC))
	} else {
		m.logger.Warn("Instruction skipped",
			log.Hex("pc", pc),
			log.Err(err))
	}

	m.state.PC = (pc + instructionSize) & MaxAddress
	return nil
}

func (m *Machine) fetch(pc uint16) (uint16, error) {
	high, err := m.readMemory(int(pc))
	if err != nil {
		return 0, err
	}
	low, err := m.readMemory(int(pc) + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// State returns a copy of the machine state.
func (m *Machine) State() State {
	return m.state
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.state.PC
}

// SetKey sets the pressed state of a keypad key.
func (m *Machine) SetKey(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("invalid key %d: %w", key, cpu.ErrKeyIndexOutOfBounds)
	}
	m.state.Keys[key] = pressed
	return nil
}

// Keys returns the current keypad state.
func (m *Machine) Keys() [KeyCount]bool {
	return m.state.Keys
}

// FrameBuffer returns a copy of the frame buffer.
func (m *Machine) FrameBuffer() [FrameBufferSize]byte {
	return m.state.FrameBuffer
}

// Pixel returns the frame buffer cell at the given coordinates.
// Coordinates wrap around the screen edges.
func (m *Machine) Pixel(x, y int) byte {
	return m.state.FrameBuffer[pixelIndex(x, y)]
}

// Redraw returns whether the frame buffer changed since the last ClearRedraw.
func (m *Machine) Redraw() bool {
	return m.state.Redraw
}

// ClearRedraw acknowledges that the frame buffer has been rendered.
func (m *Machine) ClearRedraw() {
	m.state.Redraw = false
}

// Tone returns whether the sound timer is active.
func (m *Machine) Tone() bool {
	return m.state.SoundTimer > 0
}

func pixelIndex(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return y*ScreenWidth + x
}
