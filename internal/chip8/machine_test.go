package chip8

import (
	"errors"
	"testing"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestMachine(t *testing.T, opts Options) *Machine {
	t.Helper()
	return New(log.NewTestLogger(t), opts)
}

// loadWords loads instruction words as a program at ProgramStart.
func loadWords(t *testing.T, m *Machine, words ...uint16) {
	t.Helper()
	program := make([]byte, 0, 2*len(words))
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	assert.NoError(t, m.Load(program))
}

func TestReset(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.state.Registers[3] = 7
	m.state.Index = 0x123
	m.state.PC = 0x456
	m.state.Stack[0] = 0x300
	m.state.StackPointer = 1
	m.state.DelayTimer = 9
	m.state.SoundTimer = 9
	m.state.FrameBuffer[100] = 1
	m.state.Keys[4] = true
	m.state.Memory[0x300] = 0xAA

	m.Reset()

	font := FontSet()
	assert.Equal(t, font[:], m.state.Memory[:len(font)])
	assert.Equal(t, uint16(ProgramStart), m.state.PC)
	assert.Equal(t, [RegisterCount]uint8{}, m.state.Registers)
	assert.Equal(t, uint16(0), m.state.Index)
	assert.Equal(t, [StackDepth]uint16{}, m.state.Stack)
	assert.Equal(t, uint8(0), m.state.StackPointer)
	assert.Equal(t, uint8(0), m.state.DelayTimer)
	assert.Equal(t, uint8(0), m.state.SoundTimer)
	assert.Equal(t, [FrameBufferSize]byte{}, m.state.FrameBuffer)
	assert.Equal(t, [KeyCount]bool{}, m.state.Keys)
	assert.Equal(t, byte(0), m.state.Memory[0x300])
	assert.False(t, m.state.Redraw)
}

func TestLoad(t *testing.T) {
	t.Run("copies program to program start", func(t *testing.T) {
		m := newTestMachine(t, Options{})
		assert.NoError(t, m.Load([]byte{0x12, 0x34, 0x56}))

		assert.Equal(t, byte(0x12), m.state.Memory[ProgramStart])
		assert.Equal(t, byte(0x34), m.state.Memory[ProgramStart+1])
		assert.Equal(t, byte(0x56), m.state.Memory[ProgramStart+2])
	})

	t.Run("accepts maximum size", func(t *testing.T) {
		m := newTestMachine(t, Options{})
		program := make([]byte, MaxProgramSize)
		program[len(program)-1] = 0xEE

		assert.NoError(t, m.Load(program))
		assert.Equal(t, byte(0xEE), m.state.Memory[MaxAddress])
	})

	t.Run("rejects oversized program", func(t *testing.T) {
		m := newTestMachine(t, Options{})
		program := make([]byte, MaxProgramSize+1)
		for i := range program {
			program[i] = 0xFF
		}

		err := m.Load(program)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
		assert.Equal(t, byte(0), m.state.Memory[ProgramStart])
	})
}

func TestStep_TimerTick(t *testing.T) {
	t.Run("delay timer reaches zero without tone", func(t *testing.T) {
		m := newTestMachine(t, Options{})
		loadWords(t, m, 0x6000)
		m.state.DelayTimer = 1

		cycle, err := m.Step()
		assert.NoError(t, err)
		assert.Equal(t, uint8(0), m.state.DelayTimer)
		assert.False(t, cycle.Tone)
	})

	t.Run("sound timer signals tone each cycle", func(t *testing.T) {
		m := newTestMachine(t, Options{})
		loadWords(t, m, 0x6000, 0x6000, 0x6000, 0x6000)
		m.state.SoundTimer = 3

		for i := 0; i < 3; i++ {
			cycle, err := m.Step()
			assert.NoError(t, err)
			assert.True(t, cycle.Tone)
		}
		assert.Equal(t, uint8(0), m.state.SoundTimer)
		assert.False(t, m.Tone())

		cycle, err := m.Step()
		assert.NoError(t, err)
		assert.False(t, cycle.Tone)
	})

	t.Run("timers tick after the instruction", func(t *testing.T) {
		m := newTestMachine(t, Options{})
		loadWords(t, m, 0xF307) // LD V3, DT
		m.state.DelayTimer = 5

		_, err := m.Step()
		assert.NoError(t, err)
		assert.Equal(t, uint8(5), m.state.Registers[3])
		assert.Equal(t, uint8(4), m.state.DelayTimer)
	})
}

func TestStep_CycleResult(t *testing.T) {
	m := newTestMachine(t, Options{})
	loadWords(t, m, 0x6A05)

	cycle, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(ProgramStart), cycle.PC)
	assert.Equal(t, uint16(0x6A05), cycle.Instruction.Word)
	assert.Equal(t, SetImmediate, cycle.Kind)
	assert.False(t, cycle.Redraw)
}

//nolint:funlen // test functions can be long
func TestStep_ErrorPolicy(t *testing.T) {
	tests := []struct {
		name    string
		words   []uint16
		setup   func(m *Machine)
		check   func(t *testing.T, err error)
		lenient uint16 // program counter after a lenient cycle
	}{
		{
			name:  "unknown opcode",
			words: []uint16{0x0123},
			check: func(t *testing.T, err error) {
				t.Helper()
				var unknown *UnknownOpcodeError
				assert.True(t, errors.As(err, &unknown))
				assert.Equal(t, uint16(0x0123), unknown.Opcode)
				assert.Equal(t, uint16(ProgramStart), unknown.PC)
			},
			lenient: ProgramStart + 2,
		},
		{
			name:  "unknown arithmetic selector",
			words: []uint16{0x8128},
			check: func(t *testing.T, err error) {
				t.Helper()
				var unknown *UnknownOpcodeError
				assert.True(t, errors.As(err, &unknown))
			},
			lenient: ProgramStart + 2,
		},
		{
			name:  "stack underflow",
			words: []uint16{0x00EE},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
				var cpuErr *CPUError
				assert.True(t, errors.As(err, &cpuErr))
				assert.Equal(t, uint16(0x00EE), cpuErr.Opcode)
			},
			lenient: ProgramStart + 2,
		},
		{
			name:  "stack overflow",
			words: []uint16{0x2300},
			setup: func(m *Machine) {
				m.state.StackPointer = StackDepth
			},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, errors.Is(err, ErrStackOverflow))
			},
			lenient: ProgramStart + 2,
		},
		{
			name:  "jump with offset out of range",
			words: []uint16{0xBFFF},
			setup: func(m *Machine) {
				m.state.Registers[0] = 0x10
			},
			check: func(t *testing.T, err error) {
				t.Helper()
				var addrErr *AddressError
				assert.True(t, errors.As(err, &addrErr))
				assert.Equal(t, 0x100F, addrErr.Address)
			},
			lenient: ProgramStart + 2,
		},
		{
			name: "fetch beyond memory",
			setup: func(m *Machine) {
				m.state.PC = MaxAddress
			},
			check: func(t *testing.T, err error) {
				t.Helper()
				var addrErr *AddressError
				assert.True(t, errors.As(err, &addrErr))
				assert.Equal(t, MemorySize, addrErr.Address)
			},
			lenient: 0x001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" strict", func(t *testing.T) {
			m := newTestMachine(t, Options{Strict: true})
			loadWords(t, m, tt.words...)
			if tt.setup != nil {
				tt.setup(m)
			}
			before := m.state.PC

			_, err := m.Step()
			assert.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, before, m.state.PC)
		})

		t.Run(tt.name+" lenient", func(t *testing.T) {
			m := newTestMachine(t, Options{})
			loadWords(t, m, tt.words...)
			if tt.setup != nil {
				tt.setup(m)
			}
			m.state.DelayTimer = 2

			_, err := m.Step()
			assert.NoError(t, err)
			assert.Equal(t, tt.lenient, m.state.PC)
			assert.Equal(t, uint8(1), m.state.DelayTimer)
		})
	}
}

func TestUnknownOpcodeLeavesStateUnchanged(t *testing.T) {
	m := newTestMachine(t, Options{})
	loadWords(t, m, 0xE0FF)
	m.state.Registers[0] = 0x42
	before := m.State()

	_, err := m.Step()
	assert.NoError(t, err)

	after := m.State()
	assert.Equal(t, before.Registers, after.Registers)
	assert.Equal(t, before.Memory, after.Memory)
	assert.Equal(t, before.FrameBuffer, after.FrameBuffer)
	assert.Equal(t, before.PC+2, after.PC)
}

func TestSetKey(t *testing.T) {
	m := newTestMachine(t, Options{})

	assert.NoError(t, m.SetKey(0xA, true))
	assert.True(t, m.Keys()[0xA])
	assert.NoError(t, m.SetKey(0xA, false))
	assert.False(t, m.Keys()[0xA])

	assert.True(t, errors.Is(m.SetKey(KeyCount, true), cpu.ErrKeyIndexOutOfBounds))
	assert.Error(t, m.SetKey(-1, true))
}

func TestRedrawFlag(t *testing.T) {
	m := newTestMachine(t, Options{})
	loadWords(t, m, 0xD001)

	assert.False(t, m.Redraw())
	cycle, err := m.Step()
	assert.NoError(t, err)
	assert.True(t, cycle.Redraw)
	assert.True(t, m.Redraw())

	m.ClearRedraw()
	assert.False(t, m.Redraw())
}

func TestNewRandomSource(t *testing.T) {
	a := NewRandomSource(42)
	b := NewRandomSource(42)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a(), b())
	}
}
