// Package chip8 implements a CHIP-8 interpreter core.
//
// # Machine State
//
// The interpreter owns a single State value:
//   - 4KB of memory, the font glyphs live at FontStart, programs at ProgramStart
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as flag register
//   - the 12-bit index register I and program counter
//   - a 16 entry return address stack
//   - delay and sound timers
//   - a 64x32 monochrome frame buffer and the 16 key keypad state
//
// # Cycle
//
// Step executes one cycle:
//  1. fetch the big endian word at the program counter
//  2. decode its bit-fields (Decode)
//  3. map it to exactly one handler kind (Lookup)
//  4. run the handler, which sets the next program counter
//  5. tick both timers
//
// # Errors
//
// Unknown instructions, stack overflow and underflow and memory accesses
// outside of the address space are reported as errors. By default the
// machine logs them, skips the failing instruction and continues. With
// Options.Strict set Step returns the error instead.
//
// # Drawing
//
// Sprites wrap around the screen edges. Drawing sets the redraw flag which
// the display collaborator clears after rendering.
//
// # Usage Example
//
//	machine := chip8.New(logger, chip8.Options{})
//	if err := machine.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		cycle, err := machine.Step()
//		...
//	}
package chip8
