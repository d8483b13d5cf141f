// Package audio records the sound timer tone to a WAV file.
// Samples are buffered in memory in their entirety and written to disk
// when the recorder is closed.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/log"
)

const (
	// SampleRate of the recorded audio in Hz.
	SampleRate = 22050
	// ToneFrequency of the square wave played while the sound timer is active.
	ToneFrequency = 440

	bitDepth      = 8
	channels      = 1
	pcmFormat     = 1
	silence       = 0x80
	toneAmplitude = 0x40
)

// Recorder turns the per cycle tone signal into PCM samples.
type Recorder struct {
	logger   *log.Logger
	filename string

	samplesPerCycle int
	halfPeriod      int
	phase           int

	buffer []int
}

// New returns a recorder for the given cycle rate that writes to filename on Close.
func New(logger *log.Logger, filename string, cycleRate int) (*Recorder, error) {
	if cycleRate <= 0 || cycleRate > SampleRate {
		return nil, fmt.Errorf("unsupported cycle rate %d", cycleRate)
	}
	return &Recorder{
		logger:          logger,
		filename:        filename,
		samplesPerCycle: SampleRate / cycleRate,
		halfPeriod:      SampleRate / (2 * ToneFrequency),
	}, nil
}

// AddCycle appends the samples of one cycle.
func (r *Recorder) AddCycle(tone bool) {
	for i := 0; i < r.samplesPerCycle; i++ {
		if !tone {
			r.buffer = append(r.buffer, silence)
			continue
		}
		if (r.phase/r.halfPeriod)%2 == 0 {
			r.buffer = append(r.buffer, silence+toneAmplitude)
		} else {
			r.buffer = append(r.buffer, silence-toneAmplitude)
		}
		r.phase++
	}
	if !tone {
		r.phase = 0
	}
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int {
	return len(r.buffer)
}

// Encode encodes the recorded samples as WAV.
func (r *Recorder) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, bitDepth, channels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  SampleRate,
		},
		Data:           r.buffer,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav encoding: %w", err)
	}
	return nil
}

// Close writes the recording to the file.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("creating wav file %s: %w", r.filename, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = errors.Join(rerr, fmt.Errorf("closing wav file: %w", err))
		}
	}()

	r.logger.Info("Writing audio",
		log.String("file", r.filename),
		log.Int("samples", len(r.buffer)))
	return r.Encode(f)
}
