package chip8

// Instruction holds the bit-fields of a decoded 16-bit instruction word.
type Instruction struct {
	Word uint16

	Class uint16 // word & 0xF000
	X     uint8  // (word & 0x0F00) >> 8
	Y     uint8  // (word & 0x00F0) >> 4
	N     uint8  // word & 0x000F
	NN    uint8  // word & 0x00FF
	NNN   uint16 // word & 0x0FFF
}

// Decode extracts the instruction fields from a word. It never fails.
func Decode(word uint16) Instruction {
	return Instruction{
		Word:  word,
		Class: word & 0xF000,
		X:     uint8((word & 0x0F00) >> 8),
		Y:     uint8((word & 0x00F0) >> 4),
		N:     uint8(word & 0x000F),
		NN:    uint8(word & 0x00FF),
		NNN:   word & 0x0FFF,
	}
}

// Kind identifies the handler an instruction is routed to.
type Kind uint8

// Instruction kinds. Unknown is the zero value.
const (
	Unknown Kind = iota
	ClearScreen
	Return
	Jump
	Call
	SkipEqualImmediate
	SkipNotEqualImmediate
	SkipRegistersEqual
	SetImmediate
	AddImmediate
	Assign
	Or
	And
	Xor
	AddWithCarry
	SubWithBorrow
	ShiftRight
	ReverseSubtract
	ShiftLeft
	SkipRegistersNotEqual
	SetIndex
	JumpWithOffset
	RandomAnd
	DrawSprite
	SkipKeyPressed
	SkipKeyNotPressed
	GetDelayTimer
	WaitKey
	SetDelayTimer
	SetSoundTimer
	AddIndex
	FontAddress
	StoreBCD
	StoreRegisters
	LoadRegisters
)

var kindNames = [...]string{
	Unknown:               "unknown",
	ClearScreen:           "clear-screen",
	Return:                "return",
	Jump:                  "jump",
	Call:                  "call",
	SkipEqualImmediate:    "skip-if-equal-immediate",
	SkipNotEqualImmediate: "skip-if-not-equal-immediate",
	SkipRegistersEqual:    "skip-if-registers-equal",
	SetImmediate:          "set-immediate",
	AddImmediate:          "add-immediate",
	Assign:                "assign",
	Or:                    "or",
	And:                   "and",
	Xor:                   "xor",
	AddWithCarry:          "add-with-carry",
	SubWithBorrow:         "sub-with-borrow",
	ShiftRight:            "shift-right",
	ReverseSubtract:       "reverse-subtract",
	ShiftLeft:             "shift-left",
	SkipRegistersNotEqual: "skip-if-registers-not-equal",
	SetIndex:              "set-index",
	JumpWithOffset:        "jump-with-offset",
	RandomAnd:             "random-and",
	DrawSprite:            "draw-sprite",
	SkipKeyPressed:        "skip-if-key-pressed",
	SkipKeyNotPressed:     "skip-if-key-not-pressed",
	GetDelayTimer:         "get-delay-timer",
	WaitKey:               "wait-key",
	SetDelayTimer:         "set-delay-timer",
	SetSoundTimer:         "set-sound-timer",
	AddIndex:              "add-index",
	FontAddress:           "font-address",
	StoreBCD:              "store-bcd",
	StoreRegisters:        "store-registers",
	LoadRegisters:         "load-registers",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[Unknown]
}

// Lookup maps a decoded instruction to exactly one kind.
// Words without a handler map to Unknown.
func Lookup(ins Instruction) Kind {
	switch ins.Class {
	case 0x0000:
		switch ins.Word {
		case 0x00E0:
			return ClearScreen
		case 0x00EE:
			return Return
		}
	case 0x1000:
		return Jump
	case 0x2000:
		return Call
	case 0x3000:
		return SkipEqualImmediate
	case 0x4000:
		return SkipNotEqualImmediate
	case 0x5000:
		if ins.N == 0 {
			return SkipRegistersEqual
		}
	case 0x6000:
		return SetImmediate
	case 0x7000:
		return AddImmediate
	case 0x8000:
		return lookupArithmetic(ins.N)
	case 0x9000:
		if ins.N == 0 {
			return SkipRegistersNotEqual
		}
	case 0xA000:
		return SetIndex
	case 0xB000:
		return JumpWithOffset
	case 0xC000:
		return RandomAnd
	case 0xD000:
		return DrawSprite
	case 0xE000:
		switch ins.NN {
		case 0x9E:
			return SkipKeyPressed
		case 0xA1:
			return SkipKeyNotPressed
		}
	case 0xF000:
		return lookupMisc(ins.NN)
	}
	return Unknown
}

func lookupArithmetic(selector uint8) Kind {
	switch selector {
	case 0x0:
		return Assign
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddWithCarry
	case 0x5:
		return SubWithBorrow
	case 0x6:
		return ShiftRight
	case 0x7:
		return ReverseSubtract
	case 0xE:
		return ShiftLeft
	default:
		return Unknown
	}
}

func lookupMisc(selector uint8) Kind {
	switch selector {
	case 0x07:
		return GetDelayTimer
	case 0x0A:
		return WaitKey
	case 0x15:
		return SetDelayTimer
	case 0x18:
		return SetSoundTimer
	case 0x1E:
		return AddIndex
	case 0x29:
		return FontAddress
	case 0x33:
		return StoreBCD
	case 0x55:
		return StoreRegisters
	case 0x65:
		return LoadRegisters
	default:
		return Unknown
	}
}
