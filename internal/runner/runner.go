// Package runner orchestrates the emulation workflow: program loading,
// collaborator setup and the paced cycle loop.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/mnemonic"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Display consumes the frame buffer whenever a redraw was requested.
type Display interface {
	Update(screen display.Screen) (bool, error)
}

// Sound consumes the tone signal of every cycle.
type Sound interface {
	AddCycle(tone bool)
}

// Collaborators are the optional external parts driven by the cycle loop.
// Nil fields are skipped.
type Collaborators struct {
	Display Display
	Keys    keypad.Source
	Sound   Sound
}

// Stats summarizes an emulation run.
type Stats struct {
	Cycles     uint64
	ToneCycles uint64
	Frames     uint64
}

// Runner orchestrates the complete emulation workflow.
type Runner struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new runner.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the program named in the options and runs it, or prints
// a disassembly listing when requested.
func (r *Runner) Execute(ctx context.Context, opts options.Program, out io.Writer) (Stats, error) {
	machine := config.CreateMachine(r.logger, opts)

	program, err := r.loader.LoadInto(machine, opts.Input)
	if err != nil {
		return Stats{}, fmt.Errorf("loading program: %w", err)
	}

	if opts.Disasm {
		return Stats{}, writeListing(out, program)
	}

	r.printInfo(opts, len(program))

	collaborators, closeAll, err := r.createCollaborators(opts, out)
	if err != nil {
		return Stats{}, err
	}

	stats, runErr := r.Run(ctx, machine, collaborators, opts.Rate, opts.Cycles)
	if err := closeAll(); err != nil {
		runErr = errors.Join(runErr, err)
	}

	r.logger.Info("Emulation finished",
		log.Int("cycles", int(stats.Cycles)),
		log.Int("tone_cycles", int(stats.ToneCycles)),
		log.Int("frames", int(stats.Frames)))
	return stats, runErr
}

// Run executes cycles at the given rate until the context is cancelled,
// the cycle limit is reached or the machine returns an error.
// A limit of 0 runs until cancelled.
func (r *Runner) Run(ctx context.Context, machine *chip8.Machine, collaborators Collaborators,
	rate int, limit uint64) (Stats, error) {

	if rate <= 0 || rate > options.MaxRate {
		return Stats{}, fmt.Errorf("invalid cycle rate %d", rate)
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	var stats Stats
	for limit == 0 || stats.Cycles < limit {
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("emulation stopped: %w", ctx.Err())
		case <-ticker.C:
		}

		if err := r.cycle(machine, collaborators, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// cycle runs one machine cycle together with its collaborators.
func (r *Runner) cycle(machine *chip8.Machine, collaborators Collaborators, stats *Stats) error {
	if collaborators.Keys != nil {
		if err := collaborators.Keys.Poll(machine); err != nil {
			return fmt.Errorf("polling keypad: %w", err)
		}
	}

	result, err := machine.Step()
	if err != nil {
		return fmt.Errorf("executing cycle %d: %w", stats.Cycles, err)
	}
	stats.Cycles++

	if result.Tone {
		stats.ToneCycles++
	}
	if collaborators.Sound != nil {
		collaborators.Sound.AddCycle(result.Tone)
	}

	if collaborators.Display != nil {
		drawn, err := collaborators.Display.Update(machine)
		if err != nil {
			return fmt.Errorf("updating display: %w", err)
		}
		if drawn {
			stats.Frames++
		}
	} else if result.Redraw {
		machine.ClearRedraw()
		stats.Frames++
	}
	return nil
}

// createCollaborators sets up the collaborators selected in the options.
// The returned function closes all of them.
func (r *Runner) createCollaborators(opts options.Program, out io.Writer) (Collaborators, func() error, error) {
	var collaborators Collaborators
	var closers []func() error

	closeAll := func() error {
		var err error
		for _, c := range closers {
			err = errors.Join(err, c())
		}
		return err
	}

	if opts.Render {
		collaborators.Display = display.New(out, true)
	}

	if opts.Keyboard {
		term, err := keypad.OpenTerminal(r.logger, keypad.DefaultDevice, keypad.DefaultHoldFrames)
		if err != nil {
			return Collaborators{}, nil, fmt.Errorf("opening keypad: %w", err)
		}
		collaborators.Keys = term
		closers = append(closers, term.Close)
	}

	if opts.Wav != "" {
		recorder, err := audio.New(r.logger, opts.Wav, opts.Rate)
		if err != nil {
			_ = closeAll()
			return Collaborators{}, nil, fmt.Errorf("creating audio recorder: %w", err)
		}
		collaborators.Sound = recorder
		closers = append(closers, recorder.Close)
	}

	return collaborators, closeAll, nil
}

// printInfo logs information about the program being run.
func (r *Runner) printInfo(opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	r.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Int("rate", opts.Rate),
	)
	if opts.Strict {
		r.logger.Info("Strict mode enabled, execution errors are fatal")
	}
}

func writeListing(out io.Writer, program []byte) error {
	for _, line := range mnemonic.Disassemble(program, chip8.ProgramStart) {
		if _, err := fmt.Fprintf(out, "%03X  %04X  %s\n", line.Address, line.Word, line.Text); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
