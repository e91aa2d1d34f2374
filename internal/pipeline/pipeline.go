package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/echoscribe/internal/audio"
	"github.com/nguyentantai21042004/echoscribe/internal/errs"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/internal/publisher"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcriber"
)

// DefaultTitle heads exported documents when Options.Title is empty.
const DefaultTitle = "Meeting Notes"

const uploadComment = "Meeting notes and full transcript"

func (p *implPipeline) start(ctx context.Context, opts Options) (context.Context, *run) {
	id := logger.RunID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = logger.WithRunID(ctx, id)
	}
	return ctx, newRun(id, opts, p.metrics)
}

// Process orchestrates the full meeting pipeline for one recording.
func (p *implPipeline) Process(ctx context.Context, audioPath string, opts Options) (*Result, error) {
	ctx, r := p.start(ctx, opts)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing meeting recording: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Transcribe
	r.advance(Transcribing)
	transcript, err := p.transcribe(ctx, audioPath, opts)
	r.result.Transcript = transcript
	if err != nil {
		p.logger.Error(ctx, "Transcription failed: %v", err)
		return r.fail(fmt.Errorf("transcribe: %w", err))
	}
	p.logger.Info(ctx, "Transcript ready: %d chars from %d segments", len(transcript.Text), transcript.Segments)

	if opts.Title == "" {
		opts.Title = fmt.Sprintf("%s: %s", DefaultTitle, stem(audioPath))
	}

	res, err := p.summarizeAndPublish(ctx, r, transcript.Text, opts)
	if err == nil {
		p.logger.Info(ctx, "========================================")
		p.logger.Info(ctx, "Processing completed in %s", res.Duration)
		p.logger.Info(ctx, "========================================")
	}
	return res, err
}

func (p *implPipeline) Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error) {
	ctx, r := p.start(ctx, opts)

	r.advance(Transcribing)
	transcript, err := p.transcribe(ctx, audioPath, opts)
	r.result.Transcript = transcript
	if err != nil {
		return r.fail(fmt.Errorf("transcribe: %w", err))
	}
	return r.finish()
}

func (p *implPipeline) SummarizeText(ctx context.Context, text string, opts Options) (*Result, error) {
	ctx, r := p.start(ctx, opts)
	r.result.Transcript = transcriber.Transcript{Text: strings.TrimSpace(text)}

	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	return p.summarizeAndPublish(ctx, r, text, opts)
}

// transcribe normalizes the recording to WAV, splits it and aggregates the
// per-segment transcripts.
func (p *implPipeline) transcribe(ctx context.Context, audioPath string, opts Options) (transcriber.Transcript, error) {
	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return transcriber.Transcript{}, errs.NotFound(audioPath)
		}
		return transcriber.Transcript{}, fmt.Errorf("stat audio: %w", err)
	}

	wavPath := audioPath
	if !audio.IsWAV(audioPath) {
		if p.converter == nil {
			return transcriber.Transcript{}, errs.InvalidArgument("%s is not a WAV file and no converter is configured", audioPath)
		}
		converted, err := p.converter.ToWAV(ctx, audioPath, p.cfg.Speech.SampleRate, 1)
		if err != nil {
			return transcriber.Transcript{}, fmt.Errorf("convert audio: %w", err)
		}
		defer p.cleanupTempFile(ctx, converted)
		wavPath = converted
	}

	chunkMs := opts.ChunkMs
	if chunkMs == 0 {
		chunkMs = p.cfg.Audio.ChunkLengthMs
	}
	if chunkMs <= 0 {
		return transcriber.Transcript{}, fmt.Errorf("split audio: %w",
			errs.InvalidArgument("chunk duration must be positive, got %dms", chunkMs))
	}

	format, dur, err := audio.Probe(wavPath)
	if err != nil {
		return transcriber.Transcript{}, fmt.Errorf("read audio: %w", err)
	}
	p.logger.Info(ctx, "Audio is %s at %d Hz, %d channel(s), %d-bit; chunks of up to %d ms",
		dur, format.SampleRate, format.Channels, format.BitDepth, chunkMs)
	if format.Channels > 1 || format.BitDepth != 16 {
		p.logger.Debug(ctx, "Normalizing to mono 16-bit")
	}

	var transcript transcriber.Transcript
	if dur <= time.Duration(chunkMs)*time.Millisecond {
		transcript, err = p.transcribeInMemory(ctx, wavPath, chunkMs)
	} else {
		transcript, err = p.transcribeChunked(ctx, wavPath, audioPath, chunkMs, opts.KeepChunks)
	}
	p.metrics.RecordSegments(transcript.Segments-transcript.Skipped, transcript.Skipped)
	return transcript, err
}

// transcribeInMemory handles recordings no longer than one chunk without
// touching the disk.
func (p *implPipeline) transcribeInMemory(ctx context.Context, wavPath string, chunkMs int) (transcriber.Transcript, error) {
	buf, err := audio.ReadWAV(wavPath)
	if err != nil {
		return transcriber.Transcript{}, fmt.Errorf("read audio: %w", err)
	}

	segments, err := audio.Split(buf.Linear16(), chunkMs)
	if err != nil {
		return transcriber.Transcript{}, fmt.Errorf("split audio: %w", err)
	}
	return p.transcriber.TranscribeSegments(ctx, segments)
}

// transcribeChunked decodes the recording one chunk at a time, writing each
// as {stem}_chunk{i}.wav next to audioPath before recognition.
func (p *implPipeline) transcribeChunked(ctx context.Context, wavPath, audioPath string, chunkMs int, keep bool) (transcriber.Transcript, error) {
	var paths []string
	if !keep {
		defer func() { p.cleanupChunks(ctx, paths) }()
	}

	err := audio.SplitWAV(wavPath, chunkMs, func(seg audio.Segment) error {
		path := audio.ChunkPath(audioPath, seg.Index)
		if err := audio.WriteWAV(path, seg.Buffer().Linear16()); err != nil {
			return fmt.Errorf("write chunk %d: %w", seg.Index, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return transcriber.Transcript{}, fmt.Errorf("split audio: %w", err)
	}

	return p.transcriber.TranscribeChunks(ctx, paths)
}

func (p *implPipeline) summarizeAndPublish(ctx context.Context, r *run, text string, opts Options) (*Result, error) {
	// Step 2: Summarize
	r.advance(Summarizing)
	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		p.logger.Error(ctx, "Summarization failed: %v", err)
		return r.fail(fmt.Errorf("summarize: %w", err))
	}
	r.result.Summary = &summary
	r.result.Message = summarizer.FormatForSlack(summary)

	if opts.DocxPath != "" {
		if err := summarizer.WriteDocx(opts.DocxPath, opts.Title, summary, text); err != nil {
			return r.fail(fmt.Errorf("export docx: %w", err))
		}
		r.result.DocxPath = opts.DocxPath
		p.logger.Info(ctx, "Meeting notes written: %s", opts.DocxPath)
	}

	if !opts.Publish {
		return r.finish()
	}

	// Step 3: Publish
	r.advance(Publishing)
	if p.publisher == nil {
		return r.fail(errs.InvalidArgument("publishing requested but no publisher is configured"))
	}

	var receipt publisher.Receipt
	if opts.ThreadTS != "" {
		receipt, err = p.publisher.Publish(ctx, r.result.Message, opts.Channel, opts.ThreadTS)
	} else {
		receipt, err = p.publisher.PublishMeetingSummary(ctx, r.result.Message, opts.Channel)
	}
	if err != nil {
		return r.fail(fmt.Errorf("publish: %w", err))
	}
	r.result.Receipt = &receipt

	if r.result.DocxPath != "" {
		upload, err := p.publisher.UploadFile(ctx, r.result.DocxPath, r.result.Receipt.Channel, opts.Title, uploadComment)
		if err != nil {
			return r.fail(fmt.Errorf("upload docx: %w", err))
		}
		r.result.Upload = &upload
	}

	return r.finish()
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
