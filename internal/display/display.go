// Package display renders the CHIP-8 frame buffer as text.
//
// Two pixel rows are packed into one text line using half block characters,
// so the 64x32 screen occupies 64 columns and 16 lines.
package display

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
)

var blocks = [4]string{
	" ", // both pixels off
	"▀", // upper pixel on
	"▄", // lower pixel on
	"█", // both pixels on
}

// Screen is the display side of the interpreter core.
type Screen interface {
	Redraw() bool
	ClearRedraw()
	FrameBuffer() [chip8.FrameBufferSize]byte
}

// Renderer writes frames to a writer.
type Renderer struct {
	writer *bufio.Writer
	ansi   bool
	frames int
}

// New returns a renderer writing to w. With ansi set every frame is drawn
// over the previous one using terminal escape sequences.
func New(w io.Writer, ansi bool) *Renderer {
	return &Renderer{
		writer: bufio.NewWriter(w),
		ansi:   ansi,
	}
}

// Update renders the screen if a redraw was requested and acknowledges it.
// It returns whether a frame was written.
func (r *Renderer) Update(screen Screen) (bool, error) {
	if !screen.Redraw() {
		return false, nil
	}
	if err := r.Render(screen.FrameBuffer()); err != nil {
		return false, err
	}
	screen.ClearRedraw()
	return true, nil
}

// Render writes a single frame.
func (r *Renderer) Render(frameBuffer [chip8.FrameBufferSize]byte) error {
	if r.ansi {
		if r.frames == 0 {
			if _, err := r.writer.WriteString(clearScreen); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
		}
		if _, err := r.writer.WriteString(cursorHome); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}

	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := 0; x < chip8.ScreenWidth; x++ {
			upper := frameBuffer[y*chip8.ScreenWidth+x] & 1
			lower := frameBuffer[(y+1)*chip8.ScreenWidth+x] & 1
			if _, err := r.writer.WriteString(blocks[upper|lower<<1]); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
		}
		if err := r.writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}

	r.frames++
	if err := r.writer.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() int {
	return r.frames
}
