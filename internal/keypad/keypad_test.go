package keypad

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testSetter struct {
	keys [chip8.KeyCount]bool
	err  error
}

func (s *testSetter) SetKey(key int, pressed bool) error {
	if s.err != nil {
		return s.err
	}
	s.keys[key] = pressed
	return nil
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		input byte
		key   int
		ok    bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'Q', 0x4, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'p', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			key, ok := MapKey(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.key, key)
			}
		})
	}
}

func TestKeypadHold(t *testing.T) {
	k := New(2)
	setter := &testSetter{}

	assert.True(t, k.Press('w'))
	assert.False(t, k.Press('p'))

	assert.NoError(t, k.Apply(setter))
	assert.True(t, setter.keys[0x5])
	assert.NoError(t, k.Apply(setter))
	assert.True(t, setter.keys[0x5])
	assert.NoError(t, k.Apply(setter))
	assert.False(t, setter.keys[0x5])
}

func TestKeypadDefaultHold(t *testing.T) {
	k := New(0)
	assert.Equal(t, DefaultHoldFrames, k.holdFrames)
}

func TestKeypadApplyError(t *testing.T) {
	k := New(1)
	setter := &testSetter{err: errors.New("boom")}

	assert.ErrorContains(t, k.Apply(setter), "boom")
}

func TestKeypadMachine(t *testing.T) {
	machine := chip8.New(log.NewTestLogger(t), chip8.Options{})
	k := New(1)
	k.Press('z')

	assert.NoError(t, k.Apply(machine))
	assert.True(t, machine.Keys()[0xA])

	assert.NoError(t, k.Apply(machine))
	assert.False(t, machine.Keys()[0xA])
}
