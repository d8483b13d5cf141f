package chip8

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Built-in hexadecimal font glyphs (16 x 5 bytes)
//	0x050-0x1FF: Reserved interpreter area
//	0x200-0xFFF: Program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where programs are loaded and begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, overloaded as carry, borrow and collision flag.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the stack can hold.
	StackDepth = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	// ScreenWidth is the width of the frame buffer in pixels.
	ScreenWidth = 64

	// ScreenHeight is the height of the frame buffer in pixels.
	ScreenHeight = 32

	// FrameBufferSize is the number of cells in the frame buffer.
	FrameBufferSize = ScreenWidth * ScreenHeight

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes per font glyph.
	GlyphSize = 5

	// SpriteWidth is the width of a sprite row in pixels.
	SpriteWidth = 8

	instructionSize = 2
)

// fontSet contains the sprites of the hexadecimal digits 0-F.
var fontSet = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// FontSet returns a copy of the built-in font glyph set.
func FontSet() [16 * GlyphSize]byte {
	return fontSet
}

// State is the complete machine state of the interpreter.
// It is plain data, all behavior lives in Machine.
type State struct {
	Memory    [MemorySize]byte
	Registers [RegisterCount]uint8

	// Index is the I register, semantically 12-bit.
	Index uint16
	// PC points to the next instruction to fetch, semantically 12-bit.
	PC uint16

	Stack        [StackDepth]uint16
	StackPointer uint8

	DelayTimer uint8
	SoundTimer uint8

	// FrameBuffer is row-major, one byte per pixel holding 0 or 1.
	FrameBuffer [FrameBufferSize]byte
	Keys        [KeyCount]bool

	// Redraw is set when the frame buffer changed and is cleared by the
	// display collaborator after consuming it.
	Redraw bool
}

// reset zeroes every field, installs the font glyphs and points the
// program counter at the program start.
func (s *State) reset() {
	*s = State{}
	copy(s.Memory[FontStart:], fontSet[:])
	s.PC = ProgramStart
}
