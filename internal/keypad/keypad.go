// Package keypad maps host keyboard input onto the 16 key hexadecimal keypad.
//
// The keypad is laid out on the left block of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
package keypad

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// DefaultHoldFrames is the number of polls a key stays pressed after a
// key press byte has been received. Terminals do not report key releases.
const DefaultHoldFrames = 6

var keyMap = map[byte]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeySetter receives the keypad state, implemented by chip8.Machine.
type KeySetter interface {
	SetKey(key int, pressed bool) error
}

// Source provides keypad input once per cycle.
type Source interface {
	Poll(setter KeySetter) error
	Close() error
}

// MapKey returns the keypad key for a host key byte.
func MapKey(b byte) (int, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyMap[b]
	return key, ok
}

// Keypad tracks pressed keys with a hold counter per key.
type Keypad struct {
	holdFrames int
	hold       [chip8.KeyCount]int
}

// New returns a keypad that keeps keys pressed for holdFrames polls.
func New(holdFrames int) *Keypad {
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}
	return &Keypad{holdFrames: holdFrames}
}

// Press handles a host key byte, unmapped bytes are ignored.
func (k *Keypad) Press(b byte) bool {
	key, ok := MapKey(b)
	if !ok {
		return false
	}
	k.hold[key] = k.holdFrames
	return true
}

// Apply writes the current key state to the setter and ages the hold counters.
func (k *Keypad) Apply(setter KeySetter) error {
	for key := range k.hold {
		pressed := k.hold[key] > 0
		if err := setter.SetKey(key, pressed); err != nil {
			return fmt.Errorf("setting key %X: %w", key, err)
		}
		if pressed {
			k.hold[key]--
		}
	}
	return nil
}
