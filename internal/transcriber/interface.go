package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/echoscribe/internal/audio"
)

// EncodingLinear16 is the encoding of every Request: mono signed 16-bit PCM,
// WAV-framed or raw.
const EncodingLinear16 = "LINEAR16"

// Request is one synchronous recognition call.
type Request struct {
	Audio        []byte
	Encoding     string
	SampleRate   int
	LanguageCode string
}

// Result is the recognized text of one audio unit. Engines return a nil
// *Result when the audio held no recognizable speech.
type Result struct {
	Text       string
	Confidence float64
	Language   string
	Duration   float64 // seconds
}

// Transcript is the ordered join of every segment that produced text.
type Transcript struct {
	Text     string
	Segments int
	Skipped  int
}

// Engine is a speech-to-text backend.
type Engine interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
	Close() error
}

// Transcriber turns audio files and segments into text.
type Transcriber interface {
	// TranscribeFile recognizes one file. Engine errors are returned as is,
	// wrapped with errs.ErrService.
	TranscribeFile(ctx context.Context, path string) (*Result, error)
	// TranscribeChunks recognizes files in order and joins their text. A
	// segment that fails is logged and skipped.
	TranscribeChunks(ctx context.Context, paths []string) (Transcript, error)
	// TranscribeSegments is TranscribeChunks over in-memory segments.
	TranscribeSegments(ctx context.Context, segments []audio.Segment) (Transcript, error)
}
