package keypad

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"
	"github.com/retroenv/retrogolib/log"
)

// DefaultDevice is the controlling terminal.
const DefaultDevice = "/dev/tty"

const readTimeout = 50 * time.Millisecond

// Terminal reads key presses from a terminal in cbreak mode.
// Reading happens on a separate goroutine, the machine is only updated
// from Poll on the caller's goroutine.
type Terminal struct {
	logger *log.Logger
	tty    *term.Term
	keypad *Keypad

	input chan byte
	done  chan struct{}
	read  chan struct{}
}

var _ Source = (*Terminal)(nil)

// OpenTerminal switches the terminal device into cbreak mode and starts reading.
func OpenTerminal(logger *log.Logger, device string, holdFrames int) (*Terminal, error) {
	tty, err := term.Open(device, term.CBreakMode, term.ReadTimeout(readTimeout))
	if err != nil {
		return nil, fmt.Errorf("opening terminal %s: %w", device, err)
	}

	t := &Terminal{
		logger: logger,
		tty:    tty,
		keypad: New(holdFrames),
		input:  make(chan byte, 64),
		done:   make(chan struct{}),
		read:   make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

func (t *Terminal) readLoop() {
	defer close(t.read)

	buf := make([]byte, 16)
	for {
		select {
		case <-t.done:
			return
		default:
		}

		n, err := t.tty.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.input <- b:
			default: // drop input while the emulation is not polling
			}
		}
		if err != nil && !errors.Is(err, io.EOF) {
			t.logger.Error("Reading terminal failed", log.Err(err))
			return
		}
	}
}

// Poll applies all key presses received since the last poll.
func (t *Terminal) Poll(setter KeySetter) error {
	for {
		select {
		case b := <-t.input:
			t.keypad.Press(b)
		default:
			return t.keypad.Apply(setter)
		}
	}
}

// Close stops reading and restores the terminal mode.
func (t *Terminal) Close() error {
	close(t.done)
	<-t.read

	if err := t.tty.Restore(); err != nil {
		_ = t.tty.Close()
		return fmt.Errorf("restoring terminal: %w", err)
	}
	if err := t.tty.Close(); err != nil {
		return fmt.Errorf("closing terminal: %w", err)
	}
	return nil
}
