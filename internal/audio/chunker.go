package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

// Segment is one fixed-duration slice of a Buffer.
type Segment struct {
	Index      int
	StartFrame int
	Frames     int
	ByteLen    int

	format Format
	data   []int
}

func (s Segment) Format() Format { return s.format }

func (s Segment) Duration() time.Duration {
	return framesDuration(s.Frames, s.format.SampleRate)
}

// DurationMs returns the segment length in whole milliseconds.
func (s Segment) DurationMs() int64 {
	return int64(s.Frames) * 1000 / int64(s.format.SampleRate)
}

// Samples returns the segment's interleaved samples. The slice aliases the
// source Buffer and must not be modified.
func (s Segment) Samples() []int { return s.data }

// Buffer returns the segment as a standalone Buffer.
func (s Segment) Buffer() *Buffer {
	return &Buffer{format: s.format, data: s.data}
}

// Split cuts buf into consecutive segments of chunkMs milliseconds. The last
// segment holds the remainder; no empty segment is ever produced.
func Split(buf *Buffer, chunkMs int) ([]Segment, error) {
	if chunkMs <= 0 {
		return nil, errs.InvalidArgument("chunk duration must be positive, got %dms", chunkMs)
	}
	if buf == nil {
		return nil, errs.InvalidArgument("nil audio buffer")
	}

	format := buf.Format()
	perChunk := chunkFrames(format, chunkMs)

	total := buf.Frames()
	segments := make([]Segment, 0, (total+perChunk-1)/perChunk)
	for start, index := 0, 0; start < total; start, index = start+perChunk, index+1 {
		n := perChunk
		if start+n > total {
			n = total - start
		}
		segments = append(segments, Segment{
			Index:      index,
			StartFrame: start,
			Frames:     n,
			ByteLen:    n * format.FrameBytes(),
			format:     format,
			data:       buf.view(start, n),
		})
	}

	return segments, nil
}

func chunkFrames(format Format, chunkMs int) int {
	n := int(int64(format.SampleRate) * int64(chunkMs) / 1000)
	if n < 1 {
		return 1
	}
	return n
}

// ChunkPath names the file for chunk index of src: {stem}_chunk{index}.wav,
// in the same directory as src.
func ChunkPath(src string, index int) string {
	dir := filepath.Dir(src)
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, fmt.Sprintf("%s_chunk%d.wav", stem, index))
}

// WriteSegments writes every segment as a WAV file next to src and returns
// the paths in index order. Existing files with the same name are replaced.
func WriteSegments(src string, segments []Segment) ([]string, error) {
	paths := make([]string, 0, len(segments))
	for _, seg := range segments {
		path := ChunkPath(src, seg.Index)
		if err := WriteWAV(path, seg.Buffer()); err != nil {
			return paths, fmt.Errorf("write chunk %d: %w", seg.Index, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SplitWAV decodes the WAV file at path chunkMs at a time and hands each
// segment to fn in order. Only one chunk of samples is resident at once;
// each segment owns its samples. An error from fn stops the split.
func SplitWAV(path string, chunkMs int, fn func(Segment) error) error {
	if chunkMs <= 0 {
		return errs.InvalidArgument("chunk duration must be positive, got %dms", chunkMs)
	}

	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return errs.InvalidArgument("%s is not a valid WAV file", path)
	}
	if d.WavAudioFormat != wavFormatPCM {
		return errs.InvalidArgument("unsupported WAV audio format %d (only PCM)", d.WavAudioFormat)
	}

	format := Format{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
	}
	if err := format.validate(); err != nil {
		return err
	}
	perChunk := chunkFrames(format, chunkMs)

	for start, index := 0, 0; ; index++ {
		samples, err := readChunk(d, perChunk*format.Channels)
		if err != nil {
			return fmt.Errorf("decode %s chunk %d: %w", path, index, err)
		}
		frames := len(samples) / format.Channels
		if frames == 0 {
			return nil
		}

		seg := Segment{
			Index:      index,
			StartFrame: start,
			Frames:     frames,
			ByteLen:    frames * format.FrameBytes(),
			format:     format,
			data:       samples[: frames*format.Channels : frames*format.Channels],
		}
		if err := fn(seg); err != nil {
			return err
		}
		if frames < perChunk {
			return nil
		}
		start += frames
	}
}

// readChunk fills up to n samples. PCMBuffer may return short reads before
// the end of the data chunk, so it is called until the chunk is full or no
// samples are left.
func readChunk(d *wav.Decoder, n int) ([]int, error) {
	samples := make([]int, n)
	filled := 0
	for filled < n {
		got, err := d.PCMBuffer(&goaudio.IntBuffer{Data: samples[filled:]})
		if err != nil {
			return nil, err
		}
		if got == 0 {
			break
		}
		filled += got
	}
	return samples[:filled], nil
}

// SplitFile splits the WAV file at path into chunkMs chunks and writes them
// beside it, returning the paths in index order.
func SplitFile(path string, chunkMs int) ([]string, error) {
	var paths []string
	err := SplitWAV(path, chunkMs, func(seg Segment) error {
		chunk := ChunkPath(path, seg.Index)
		if err := WriteWAV(chunk, seg.Buffer()); err != nil {
			return fmt.Errorf("write chunk %d: %w", seg.Index, err)
		}
		paths = append(paths, chunk)
		return nil
	})
	return paths, err
}

// RemoveFiles deletes paths, ignoring files that are already gone.
func RemoveFiles(paths []string) error {
	var first error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && first == nil {
			first = err
		}
	}
	return first
}
