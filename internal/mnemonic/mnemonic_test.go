package mnemonic

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"jump", 0x1234, "JP $234"},
		{"jump with offset", 0xB300, "JP V0, $300"},
		{"call", 0x2345, "CALL $345"},
		{"skip equal immediate", 0x3A12, "SE VA, $12"},
		{"skip not equal registers", 0x9AB0, "SNE VA, VB"},
		{"load immediate", 0x6A05, "LD VA, $05"},
		{"load index", 0xA123, "LD I, $123"},
		{"add immediate", 0x7102, "ADD V1, $02"},
		{"random", 0xC3FF, "RND V3, $FF"},
		{"draw", 0xD125, "DRW V1, V2, $5"},
		{"clear screen", 0x00E0, "CLS"},
		{"return", 0x00EE, "RET"},
		{"subtract", 0x8125, "SUB V1, V2"},
		{"shift left", 0x812E, "SHL V1"},
		{"skip key", 0xE39E, "SKP V3"},
		{"delay timer", 0xF207, "LD V2, DT"},
		{"wait key", 0xF20A, "LD V2, K"},
		{"bcd", 0xF233, "LD B, V2"},
		{"store registers", 0xF255, "LD [I], V2"},
		{"add index", 0xF21E, "ADD I, V2"},
		{"unknown", 0xF0FF, "DW $F0FF"},
		{"unknown machine routine", 0x0123, "DW $0123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.word))
		})
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, chip8.JpInst, Lookup(0x1234))
	assert.Equal(t, chip8.DrwInst, Lookup(0xD001))
	assert.Equal(t, chip8.JpName, Lookup(0xB123).Name)
	assert.True(t, Lookup(0xF0FF) == nil)
}

func TestDisassemble(t *testing.T) {
	program := []byte{0x12, 0x34, 0x23, 0x45, 0xFF}

	lines := Disassemble(program, 0x200)
	assert.Len(t, lines, 2)

	assert.Equal(t, uint16(0x200), lines[0].Address)
	assert.Equal(t, uint16(0x1234), lines[0].Word)
	assert.Equal(t, Format(0x1234), lines[0].Text)

	assert.Equal(t, uint16(0x202), lines[1].Address)
	assert.Equal(t, uint16(0x2345), lines[1].Word)
}

func TestDisassembleEmpty(t *testing.T) {
	assert.Len(t, Disassemble(nil, 0x200), 0)
}
