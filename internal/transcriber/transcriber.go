package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/nguyentantai21042004/echoscribe/internal/audio"
	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

// TranscribeFile recognizes a single audio file. A WAV file's header sample
// rate overrides the configured one, and WAV audio that is not mono 16-bit
// is requantized before sending. Other files are sent as raw LINEAR16.
func (t *implTranscriber) TranscribeFile(ctx context.Context, path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NotFound(path)
		}
		return nil, fmt.Errorf("stat audio: %w", err)
	}

	rate := t.opts.SampleRate
	var data []byte
	if audio.IsWAV(path) {
		format, _, err := audio.Probe(path)
		switch {
		case err != nil:
			t.logger.Debug(ctx, "Could not read WAV header of %s, using %d Hz: %v", path, rate, err)
		case format.Channels != 1 || format.BitDepth != 16:
			t.logger.Debug(ctx, "Requantizing %s from %d-channel %d-bit to mono 16-bit", path, format.Channels, format.BitDepth)
			if data, err = linear16WAV(path); err != nil {
				return nil, err
			}
			rate = format.SampleRate
		default:
			rate = format.SampleRate
		}
	}

	if data == nil {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read audio: %w", err)
		}
	}

	t.logger.Info(ctx, "Transcribing audio file: %s", path)
	return t.recognize(ctx, path, data, rate)
}

func linear16WAV(path string) ([]byte, error) {
	buf, err := audio.ReadWAV(path)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	data, err := audio.EncodeWAV(buf.Linear16())
	if err != nil {
		return nil, fmt.Errorf("encode audio: %w", err)
	}
	return data, nil
}

func (t *implTranscriber) recognize(ctx context.Context, name string, data []byte, rate int) (*Result, error) {
	res, err := t.engine.Transcribe(ctx, Request{
		Audio:        data,
		Encoding:     EncodingLinear16,
		SampleRate:   rate,
		LanguageCode: t.opts.LanguageCode,
	})
	if err != nil {
		t.logger.Error(ctx, "Transcription failed for %s: %v", name, err)
		return nil, errs.Service("transcribe "+name, err)
	}

	if res == nil {
		t.logger.Warn(ctx, "No transcription results returned for %s", name)
		return nil, nil
	}

	t.logger.Info(ctx, "Transcription complete: %d chars, %.0f%% confidence", len(res.Text), res.Confidence*100)
	return res, nil
}

// TranscribeChunks recognizes each file in order. Failed or silent chunks
// are counted in Transcript.Skipped; only cancellation stops the loop.
func (t *implTranscriber) TranscribeChunks(ctx context.Context, paths []string) (Transcript, error) {
	return t.aggregate(ctx, len(paths), func(i int) (string, *Result, error) {
		res, err := t.TranscribeFile(ctx, paths[i])
		return paths[i], res, err
	})
}

// TranscribeSegments recognizes in-memory segments in index order.
func (t *implTranscriber) TranscribeSegments(ctx context.Context, segments []audio.Segment) (Transcript, error) {
	return t.aggregate(ctx, len(segments), func(i int) (string, *Result, error) {
		seg := segments[i]
		name := fmt.Sprintf("segment %d", seg.Index)

		data, err := audio.EncodeWAV(seg.Buffer().Linear16())
		if err != nil {
			return name, nil, fmt.Errorf("encode %s: %w", name, err)
		}
		res, err := t.recognize(ctx, name, data, seg.Format().SampleRate)
		return name, res, err
	})
}

func (t *implTranscriber) aggregate(ctx context.Context, n int, next func(i int) (string, *Result, error)) (Transcript, error) {
	out := Transcript{Segments: n}
	texts := make([]string, 0, n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		name, res, err := next(i)
		if err != nil {
			t.logger.Error(ctx, "Failed to transcribe %s: %v", name, err)
			out.Skipped++
			continue
		}

		text := ""
		if res != nil {
			text = strings.TrimSpace(res.Text)
		}
		if text == "" {
			t.logger.Warn(ctx, "No speech in %s, skipping", name)
			out.Skipped++
			continue
		}

		texts = append(texts, text)
	}

	out.Text = strings.Join(texts, " ")
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if out.Skipped > 0 {
		t.logger.Warn(ctx, "Transcribed %d/%d segments (%d skipped)", n-out.Skipped, n, out.Skipped)
	}
	return out, nil
}
