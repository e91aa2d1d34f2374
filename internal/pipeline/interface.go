package pipeline

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/publisher"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcriber"
)

// Options tune a single run.
type Options struct {
	// ChunkMs overrides the configured chunk length.
	ChunkMs int
	// Publish enables the Publishing stage.
	Publish  bool
	Channel  string
	ThreadTS string
	// DocxPath, when set, exports the summary and transcript as a Word
	// document and uploads it after the message is posted.
	DocxPath string
	// Title heads the exported document.
	Title string
	// KeepChunks leaves the {stem}_chunk{i}.wav files on disk.
	KeepChunks bool
	// OnTransition is called after every state change.
	OnTransition func(from, to State)
}

// Result is everything a run produced, including the output of stages that
// finished before a failure.
type Result struct {
	RunID      string
	State      State
	FailedAt   State
	Err        error
	Transcript transcriber.Transcript
	Summary    *summarizer.MeetingSummary
	Message    string
	DocxPath   string
	Receipt    *publisher.Receipt
	Upload     *publisher.UploadReceipt
	Duration   time.Duration
}

// Pipeline runs audio or text through summarization and delivery.
type Pipeline interface {
	// Process transcribes audioPath, summarizes the transcript and
	// optionally publishes it. The returned Result is never nil; on failure
	// it is returned alongside the error.
	Process(ctx context.Context, audioPath string, opts Options) (*Result, error)
	// Transcribe runs only the Transcribing stage.
	Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error)
	// SummarizeText runs an existing transcript through Summarizing and
	// Publishing.
	SummarizeText(ctx context.Context, text string, opts Options) (*Result, error)
}
