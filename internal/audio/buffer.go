package audio

import (
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

// Format describes interleaved PCM audio.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// FrameBytes is the encoded size of one frame (one sample per channel).
func (f Format) FrameBytes() int {
	return f.Channels * f.BitDepth / 8
}

func (f Format) validate() error {
	if f.SampleRate <= 0 {
		return errs.InvalidArgument("sample rate must be positive, got %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return errs.InvalidArgument("channel count must be positive, got %d", f.Channels)
	}
	switch f.BitDepth {
	case 8, 16, 24, 32:
	default:
		return errs.InvalidArgument("unsupported bit depth %d", f.BitDepth)
	}
	return nil
}

// framesDuration converts a frame count at rate into a duration.
func framesDuration(frames, rate int) time.Duration {
	return time.Duration(int64(frames) * int64(time.Second) / int64(rate))
}

// Buffer is a finite, immutable sequence of interleaved PCM frames.
type Buffer struct {
	format Format
	data   []int
}

// NewBuffer copies samples into a new Buffer. len(samples) must be a whole
// number of frames. 8-bit samples are unsigned, as stored in WAV files.
func NewBuffer(format Format, samples []int) (*Buffer, error) {
	data := make([]int, len(samples))
	copy(data, samples)
	return adoptBuffer(format, data)
}

// adoptBuffer wraps samples without copying. The caller must not keep or
// modify the slice afterwards.
func adoptBuffer(format Format, samples []int) (*Buffer, error) {
	if err := format.validate(); err != nil {
		return nil, err
	}
	if len(samples)%format.Channels != 0 {
		return nil, errs.InvalidArgument("%d samples is not a whole number of %d-channel frames", len(samples), format.Channels)
	}
	return &Buffer{format: format, data: samples}, nil
}

func (b *Buffer) Format() Format { return b.format }

// Frames returns the number of frames in the buffer.
func (b *Buffer) Frames() int {
	return len(b.data) / b.format.Channels
}

func (b *Buffer) Duration() time.Duration {
	return framesDuration(b.Frames(), b.format.SampleRate)
}

// Samples returns a copy of the interleaved samples.
func (b *Buffer) Samples() []int {
	out := make([]int, len(b.data))
	copy(out, b.data)
	return out
}

// view returns frames [start, start+n) without copying. The capacity is
// clipped so an append on the view cannot write into the buffer.
func (b *Buffer) view(start, n int) []int {
	ch := b.format.Channels
	lo, hi := start*ch, (start+n)*ch
	return b.data[lo:hi:hi]
}

// Mono averages all channels into a new single-channel Buffer. A mono
// buffer is returned as is.
func (b *Buffer) Mono() *Buffer {
	ch := b.format.Channels
	if ch == 1 {
		return b
	}

	frames := b.Frames()
	out := make([]int, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < ch; c++ {
			sum += b.data[i*ch+c]
		}
		out[i] = sum / ch
	}

	format := b.format
	format.Channels = 1
	return &Buffer{format: format, data: out}
}

// To16Bit requantizes the buffer to signed 16-bit samples. A 16-bit buffer
// is returned as is.
func (b *Buffer) To16Bit() *Buffer {
	if b.format.BitDepth == 16 {
		return b
	}
	out := &Buffer{format: b.format, data: make([]int, len(b.data))}
	requantize16(out.data, b.data, b.format.BitDepth)
	out.format.BitDepth = 16
	return out
}

// Linear16 returns the buffer as mono 16-bit PCM, the layout LINEAR16
// recognition expects.
func (b *Buffer) Linear16() *Buffer {
	m := b.Mono()
	if m == b || m.format.BitDepth == 16 {
		return m.To16Bit()
	}
	// m is a fresh downmix, so it can be requantized in place
	requantize16(m.data, m.data, m.format.BitDepth)
	m.format.BitDepth = 16
	return m
}

func requantize16(dst, src []int, depth int) {
	for i, v := range src {
		switch {
		case depth == 8:
			dst[i] = (v - 128) << 8
		case depth > 16:
			dst[i] = v >> (depth - 16)
		default:
			dst[i] = v
		}
	}
}
