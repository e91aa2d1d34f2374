package audio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

const wavFormatPCM = 1

// DecodeWAV reads a PCM WAV stream into a Buffer.
func DecodeWAV(r io.ReadSeeker) (*Buffer, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, errs.InvalidArgument("not a valid WAV stream")
	}
	if d.WavAudioFormat != wavFormatPCM {
		return nil, errs.InvalidArgument("unsupported WAV audio format %d (only PCM)", d.WavAudioFormat)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode PCM: %w", err)
	}

	format := Format{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
	}
	return adoptBuffer(format, pcm.Data)
}

// ReadWAV decodes the WAV file at path.
func ReadWAV(path string) (*Buffer, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf, nil
}

// Probe reads only the WAV header at path.
func Probe(path string) (Format, time.Duration, error) {
	f, err := open(path)
	if err != nil {
		return Format{}, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return Format{}, 0, errs.InvalidArgument("%s is not a valid WAV file", path)
	}
	dur, err := d.Duration()
	if err != nil {
		return Format{}, 0, fmt.Errorf("probe %s: %w", path, err)
	}

	return Format{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
	}, dur, nil
}

// EncodeWAV renders buf as an in-memory WAV file.
func EncodeWAV(buf *Buffer) ([]byte, error) {
	var ws writeSeeker
	if err := encode(&ws, buf); err != nil {
		return nil, err
	}
	return ws.buf, nil
}

// WriteWAV writes buf to path as a PCM WAV file.
func WriteWAV(path string, buf *Buffer) error {
	w, err := CreateWAV(path, buf.Format())
	if err != nil {
		return err
	}
	if err := w.Write(buf.data); err != nil {
		w.f.Close()
		return err
	}
	return w.Close()
}

func encode(w io.WriteSeeker, buf *Buffer) error {
	enc := newEncoder(w, buf.Format())
	if err := enc.Write(intBuffer(buf.Format(), buf.data)); err != nil {
		return fmt.Errorf("encode WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize WAV: %w", err)
	}
	return nil
}

func newEncoder(w io.WriteSeeker, format Format) *wav.Encoder {
	return wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, wavFormatPCM)
}

func intBuffer(format Format, samples []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
		Data:           samples,
		SourceBitDepth: format.BitDepth,
	}
}

// WAVWriter appends frames to a WAV file as they arrive, so a long capture
// never has to be held in memory.
type WAVWriter struct {
	f      *os.File
	enc    *wav.Encoder
	format Format
	frames int
}

// CreateWAV creates path and returns a writer for frames in format.
func CreateWAV(path string, format Format) (*WAVWriter, error) {
	if err := format.validate(); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &WAVWriter{f: f, enc: newEncoder(f, format), format: format}, nil
}

// Write appends interleaved samples; len(samples) must be whole frames.
func (w *WAVWriter) Write(samples []int) error {
	if len(samples)%w.format.Channels != 0 {
		return errs.InvalidArgument("%d samples is not a whole number of %d-channel frames", len(samples), w.format.Channels)
	}
	if len(samples) == 0 {
		return nil
	}
	if err := w.enc.Write(intBuffer(w.format, samples)); err != nil {
		return fmt.Errorf("encode WAV: %w", err)
	}
	w.frames += len(samples) / w.format.Channels
	return nil
}

// Frames is the number of frames written so far.
func (w *WAVWriter) Frames() int { return w.frames }

// Duration is the length of the audio written so far.
func (w *WAVWriter) Duration() time.Duration {
	return framesDuration(w.frames, w.format.SampleRate)
}

// Close patches the header sizes and closes the file.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("finalize WAV: %w", err)
	}
	return w.f.Close()
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NotFound(path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// writeSeeker is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch chunk sizes once the data length is known.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	end := w.pos + len(p)
	if end > len(w.buf) {
		if end > cap(w.buf) {
			grown := make([]byte, len(w.buf), 2*end)
			copy(grown, w.buf)
			w.buf = grown
		}
		w.buf = w.buf[:end]
	}
	copy(w.buf[w.pos:], p)
	w.pos = end
	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(w.pos) + offset
	case io.SeekEnd:
		abs = int64(len(w.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative position %d", abs)
	}
	w.pos = int(abs)
	return abs, nil
}
