// Package loader handles program image loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Loader handles loading raw program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw program image without header. Images that do not fit
// into program memory are rejected with chip8.ErrProgramTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a raw program image from a reader. At most one byte
// more than the program memory capacity is read to detect oversized images.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", chip8.ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}

// LoadInto reads a program image and copies it into the machine memory.
func (l *Loader) LoadInto(machine *chip8.Machine, path string) ([]byte, error) {
	data, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if err := machine.Load(data); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	return data, nil
}
