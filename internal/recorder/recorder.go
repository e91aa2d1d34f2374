// Package recorder captures meeting audio from an input device into a WAV
// file.
package recorder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/audio"
	"github.com/nguyentantai21042004/echoscribe/internal/errs"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// Source delivers interleaved 16-bit samples from a capture device.
type Source interface {
	Open(sampleRate, channels int) error
	// Read blocks until the next block of samples is available. The block
	// is only valid until the following Read.
	Read() ([]int16, error)
	Close() error
}

// Options describe the capture format. MaxDuration of zero records until
// the context is cancelled.
type Options struct {
	SampleRate  int
	Channels    int
	MaxDuration time.Duration
}

// Recording describes a finished capture.
type Recording struct {
	Path     string
	Duration time.Duration
	Frames   int
}

type Recorder struct {
	source Source
	opts   Options
	logger logger.Logger
}

// New creates a Recorder reading from source.
func New(source Source, opts Options, log logger.Logger) *Recorder {
	return &Recorder{source: source, opts: opts, logger: log}
}

// Record captures audio until ctx is cancelled or MaxDuration elapses,
// appending every block to the WAV file at path as it arrives. Cancellation
// is the normal way to stop and is not reported as an error. On failure, or
// when nothing was captured, path is removed.
func (r *Recorder) Record(ctx context.Context, path string) (Recording, error) {
	if r.opts.SampleRate <= 0 || r.opts.Channels <= 0 {
		return Recording{}, errs.InvalidArgument("recording needs a positive sample rate and channel count, got %d Hz / %d ch", r.opts.SampleRate, r.opts.Channels)
	}

	w, err := audio.CreateWAV(path, audio.Format{SampleRate: r.opts.SampleRate, Channels: r.opts.Channels, BitDepth: 16})
	if err != nil {
		return Recording{}, fmt.Errorf("create recording: %w", err)
	}

	if err := r.source.Open(r.opts.SampleRate, r.opts.Channels); err != nil {
		r.discard(ctx, w, path)
		return Recording{}, fmt.Errorf("open input: %w", err)
	}

	r.logger.Info(ctx, "🎤 Recording started (%d Hz, %d ch). Press Ctrl+C to stop.", r.opts.SampleRate, r.opts.Channels)

	err = r.capture(ctx, w)
	if cerr := r.source.Close(); cerr != nil {
		r.logger.Warn(ctx, "Failed to close input: %v", cerr)
	}
	if err != nil {
		r.discard(ctx, w, path)
		return Recording{}, err
	}
	if w.Frames() == 0 {
		r.discard(ctx, w, path)
		return Recording{}, fmt.Errorf("%w: no audio captured", errs.ErrEmptyInput)
	}

	if err := w.Close(); err != nil {
		return Recording{}, fmt.Errorf("save recording: %w", err)
	}

	rec := Recording{Path: path, Duration: w.Duration(), Frames: w.Frames()}
	r.logger.Info(ctx, "⏹️ Recording stopped: %s (%s)", path, rec.Duration)
	return rec, nil
}

// capture copies blocks from the source into w until ctx is done or the
// frame limit is reached.
func (r *Recorder) capture(ctx context.Context, w *audio.WAVWriter) error {
	maxFrames := 0
	if r.opts.MaxDuration > 0 {
		maxFrames = int(r.opts.MaxDuration.Seconds() * float64(r.opts.SampleRate))
	}

	var ints []int
	for {
		if ctx.Err() != nil {
			return nil
		}

		block, err := r.source.Read()
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		block = block[:len(block)-len(block)%r.opts.Channels]
		if maxFrames > 0 {
			if left := (maxFrames - w.Frames()) * r.opts.Channels; len(block) > left {
				block = block[:left]
			}
		}

		ints = ints[:0]
		for _, s := range block {
			ints = append(ints, int(s))
		}
		if err := w.Write(ints); err != nil {
			return fmt.Errorf("write recording: %w", err)
		}

		if maxFrames > 0 && w.Frames() >= maxFrames {
			return nil
		}
	}
}

func (r *Recorder) discard(ctx context.Context, w *audio.WAVWriter, path string) {
	w.Close()
	if err := os.Remove(path); err != nil {
		r.logger.Warn(ctx, "Failed to remove %s: %v", path, err)
	}
}
