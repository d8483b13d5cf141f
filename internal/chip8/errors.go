package chip8

import (
	"errors"
	"fmt"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrProgramTooLarge is returned when a program image does not fit into program memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrStackOverflow is returned when a call is executed with a full stack.
	ErrStackOverflow = cpu.ErrStackOverflow
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = cpu.ErrStackUnderflow
)

// UnknownOpcodeError reports an instruction word that has no handler.
type UnknownOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at address %03X", e.Opcode, e.PC)
}

// AddressError reports a memory access outside of the address space.
type AddressError struct {
	Address int
	Op      string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s of address %04X out of range", e.Op, e.Address)
}

func (e *AddressError) Unwrap() error {
	return cpu.ErrMemoryOutOfBounds
}

// CPUError wraps an error that occurred while executing an instruction.
type CPUError struct {
	Opcode uint16
	PC     uint16
	Err    error
}

func (e *CPUError) Error() string {
	return fmt.Sprintf("executing opcode %04X at address %03X: %v", e.Opcode, e.PC, e.Err)
}

func (e *CPUError) Unwrap() error {
	return e.Err
}
