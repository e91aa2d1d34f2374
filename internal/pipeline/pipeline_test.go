package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/echoscribe/internal/audio"
	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/errs"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
	"github.com/nguyentantai21042004/echoscribe/internal/publisher"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcriber"
)

// scriptEngine answers recognition calls in order; an empty text is a
// recognition failure.
type scriptEngine struct {
	texts []string
	calls int
}

func (e *scriptEngine) Transcribe(context.Context, transcriber.Request) (*transcriber.Result, error) {
	i := e.calls
	e.calls++
	if i >= len(e.texts) || e.texts[i] == "" {
		return nil, errors.New("recognition failed")
	}
	return &transcriber.Result{Text: e.texts[i], Confidence: 0.9}, nil
}

func (e *scriptEngine) Close() error { return nil }

type fakeSummarizer struct {
	inputs []string
	err    error
}

func (f *fakeSummarizer) Summarize(_ context.Context, transcript string) (summarizer.MeetingSummary, error) {
	f.inputs = append(f.inputs, transcript)
	if f.err != nil {
		return summarizer.MeetingSummary{}, f.err
	}
	return summarizer.MeetingSummary{
		Summary:     "Summary of: " + transcript,
		ActionItems: []string{"Follow up"},
		KeyPoints:   []string{"Point"},
	}, nil
}

type fakePublisher struct {
	published []string
	threads   []string
	uploads   []string
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, text, channel, threadTS string) (publisher.Receipt, error) {
	if f.err != nil {
		return publisher.Receipt{}, f.err
	}
	f.published = append(f.published, text)
	f.threads = append(f.threads, threadTS)
	return publisher.Receipt{Channel: "C123", Timestamp: "1700000000.000100"}, nil
}

func (f *fakePublisher) PublishMeetingSummary(ctx context.Context, text, channel string) (publisher.Receipt, error) {
	return f.Publish(ctx, publisher.MeetingBanner+text, channel, "")
}

func (f *fakePublisher) UploadFile(_ context.Context, path, channel, title, comment string) (publisher.UploadReceipt, error) {
	f.uploads = append(f.uploads, path)
	return publisher.UploadReceipt{FileID: "F1", Title: title}, nil
}

type transitions []string

func (tr *transitions) record(from, to State) {
	*tr = append(*tr, from.String()+"->"+to.String())
}

func writeRecording(t *testing.T, dir, name string, channels, frames int) string {
	t.Helper()
	samples := make([]int, frames*channels)
	for i := range samples {
		samples[i] = (i * 7) % 2000
	}
	buf, err := audio.NewBuffer(audio.Format{SampleRate: 1000, Channels: channels, BitDepth: 16}, samples)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := audio.WriteWAV(path, buf); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestPipeline(engine transcriber.Engine, sum summarizer.Summarizer, pub publisher.Publisher, m *metrics.Metrics) Pipeline {
	cfg := config.Default()
	return New(cfg, Deps{
		Transcriber: transcriber.New(engine, transcriber.Options{}, logger.Nop()),
		Summarizer:  sum,
		Publisher:   pub,
		Metrics:     m,
	}, logger.Nop())
}

func TestProcessEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeRecording(t, dir, "standup.wav", 1, 150000)

	engine := &scriptEngine{texts: []string{"hello", "world", ""}}
	sum := &fakeSummarizer{}
	pub := &fakePublisher{}
	m := metrics.New()
	var tr transitions

	res, err := newTestPipeline(engine, sum, pub, m).Process(context.Background(), path, Options{
		ChunkMs:      60000,
		Publish:      true,
		OnTransition: tr.record,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if res.Transcript.Text != "hello world" {
		t.Errorf("transcript = %q, want %q", res.Transcript.Text, "hello world")
	}
	if res.Transcript.Segments != 3 || res.Transcript.Skipped != 1 {
		t.Errorf("segments = %d, skipped = %d", res.Transcript.Segments, res.Transcript.Skipped)
	}
	if len(sum.inputs) != 1 || sum.inputs[0] != "hello world" {
		t.Errorf("summarizer inputs = %q", sum.inputs)
	}
	if res.State != Done || res.RunID == "" {
		t.Errorf("result = %+v", res)
	}
	if res.Receipt == nil || res.Receipt.Timestamp == "" {
		t.Errorf("receipt = %+v", res.Receipt)
	}
	if len(pub.published) != 1 || !strings.HasPrefix(pub.published[0], publisher.MeetingBanner+"📝 *Meeting Summary*") {
		t.Errorf("published = %q", pub.published)
	}

	want := "idle->transcribing|transcribing->summarizing|summarizing->publishing|publishing->done"
	if got := strings.Join(tr, "|"); got != want {
		t.Errorf("transitions = %s, want %s", got, want)
	}

	chunks, _ := filepath.Glob(filepath.Join(dir, "standup_chunk*.wav"))
	if len(chunks) != 0 {
		t.Errorf("chunk files left behind: %v", chunks)
	}

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, line := range []string{
		`echoscribe_pipeline_runs_total{state="done"} 1`,
		`echoscribe_segments_total{outcome="transcribed"} 2`,
		`echoscribe_segments_total{outcome="skipped"} 1`,
	} {
		if !strings.Contains(string(body), line) {
			t.Errorf("metrics missing %q", line)
		}
	}
}

func TestProcessKeepChunks(t *testing.T) {
	dir := t.TempDir()
	path := writeRecording(t, dir, "call.wav", 1, 2500)

	_, err := newTestPipeline(&scriptEngine{texts: []string{"a", "b", "c"}}, &fakeSummarizer{}, nil, nil).
		Process(context.Background(), path, Options{ChunkMs: 1000, KeepChunks: true})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := os.Stat(audio.ChunkPath(path, i)); err != nil {
			t.Errorf("chunk %d missing: %v", i, err)
		}
	}
}

func TestProcessStereoSingleSegment(t *testing.T) {
	path := writeRecording(t, t.TempDir(), "stereo.wav", 2, 500)
	engine := &scriptEngine{texts: []string{"just one"}}
	var tr transitions

	res, err := newTestPipeline(engine, &fakeSummarizer{}, nil, nil).
		Process(context.Background(), path, Options{OnTransition: tr.record})
	if err != nil {
		t.Fatal(err)
	}

	if res.Transcript.Text != "just one" || engine.calls != 1 {
		t.Errorf("transcript = %+v, calls = %d", res.Transcript, engine.calls)
	}
	if res.State != Done || strings.Contains(strings.Join(tr, "|"), "publishing") {
		t.Errorf("state = %s, transitions = %v", res.State, tr)
	}
}

func TestProcessMissingFile(t *testing.T) {
	sum := &fakeSummarizer{}
	var tr transitions

	res, err := newTestPipeline(&scriptEngine{}, sum, &fakePublisher{}, nil).
		Process(context.Background(), filepath.Join(t.TempDir(), "absent.wav"), Options{Publish: true, OnTransition: tr.record})

	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Process() error = %v, want ErrNotFound", err)
	}
	if res == nil || res.State != Failed || res.FailedAt != Transcribing {
		t.Fatalf("result = %+v", res)
	}
	if len(sum.inputs) != 0 {
		t.Error("summarizer called after a missing source file")
	}
	if got := strings.Join(tr, "|"); got != "idle->transcribing|transcribing->failed" {
		t.Errorf("transitions = %s", got)
	}
}

func TestProcessNonWAVWithoutConverter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.m4a")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newTestPipeline(&scriptEngine{}, &fakeSummarizer{}, nil, nil).
		Process(context.Background(), path, Options{})
	if !errors.Is(err, errs.ErrInvalidArgument) || res.FailedAt != Transcribing {
		t.Errorf("error = %v, failed at %s", err, res.FailedAt)
	}
}

// wavExecutor stands in for ffmpeg by writing a short WAV to the last
// argument.
type wavExecutor struct {
	t     *testing.T
	calls int
}

func (e *wavExecutor) Execute(_ context.Context, _ string, args ...string) (string, error) {
	e.calls++
	out := args[len(args)-1]
	writeRecording(e.t, filepath.Dir(out), filepath.Base(out), 1, 800)
	return "", nil
}

func (e *wavExecutor) Available(string) bool { return true }

func TestProcessConvertsNonWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memo.mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &wavExecutor{t: t}
	cfg := config.Default()
	p := New(cfg, Deps{
		Transcriber: transcriber.New(&scriptEngine{texts: []string{"converted"}}, transcriber.Options{}, logger.Nop()),
		Summarizer:  &fakeSummarizer{},
		Converter:   audio.NewConverter(exec, "ffmpeg", logger.Nop()),
	}, logger.Nop())

	res, err := p.Process(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if exec.calls != 1 || res.Transcript.Text != "converted" {
		t.Errorf("calls = %d, transcript = %q", exec.calls, res.Transcript.Text)
	}
	if _, err := os.Stat(audio.TempPath(path)); !os.IsNotExist(err) {
		t.Errorf("temp WAV not cleaned up: %v", err)
	}
}

func TestProcessPublishFailureKeepsSummary(t *testing.T) {
	path := writeRecording(t, t.TempDir(), "retro.wav", 1, 500)
	cause := errors.New("not_in_channel")

	res, err := newTestPipeline(&scriptEngine{texts: []string{"retro notes"}}, &fakeSummarizer{}, &fakePublisher{err: errs.Service("post", cause)}, nil).
		Process(context.Background(), path, Options{Publish: true, Channel: "#retro"})

	if !errors.Is(err, errs.ErrService) || !errors.Is(err, cause) {
		t.Fatalf("Process() error = %v", err)
	}
	if res.State != Failed || res.FailedAt != Publishing {
		t.Errorf("state = %s, failed at %s", res.State, res.FailedAt)
	}
	if res.Summary == nil || res.Summary.Summary != "Summary of: retro notes" {
		t.Errorf("summary = %+v", res.Summary)
	}
	if !strings.Contains(res.Message, "Summary of: retro notes") {
		t.Errorf("message = %q", res.Message)
	}
	if res.Receipt != nil {
		t.Errorf("receipt = %+v, want nil", res.Receipt)
	}
}

func TestProcessSummarizerFailureKeepsTranscript(t *testing.T) {
	path := writeRecording(t, t.TempDir(), "sync.wav", 1, 500)

	res, err := newTestPipeline(&scriptEngine{texts: []string{"words"}}, &fakeSummarizer{err: errs.ErrService}, nil, nil).
		Process(context.Background(), path, Options{})

	if !errors.Is(err, errs.ErrService) || res.FailedAt != Summarizing {
		t.Errorf("error = %v, failed at %s", err, res.FailedAt)
	}
	if res.Transcript.Text != "words" || res.Summary != nil {
		t.Errorf("result = %+v", res)
	}
}

func TestProcessPublishWithoutPublisher(t *testing.T) {
	path := writeRecording(t, t.TempDir(), "x.wav", 1, 500)

	res, err := newTestPipeline(&scriptEngine{texts: []string{"x"}}, &fakeSummarizer{}, nil, nil).
		Process(context.Background(), path, Options{Publish: true})
	if !errors.Is(err, errs.ErrInvalidArgument) || res.FailedAt != Publishing {
		t.Errorf("error = %v, failed at %s", err, res.FailedAt)
	}
}

func TestSummarizeText(t *testing.T) {
	docx := filepath.Join(t.TempDir(), "notes.docx")
	sum := &fakeSummarizer{}
	pub := &fakePublisher{}
	var tr transitions

	res, err := newTestPipeline(&scriptEngine{}, sum, pub, nil).SummarizeText(context.Background(), "the transcript", Options{
		Publish:      true,
		ThreadTS:     "1699999999.000200",
		DocxPath:     docx,
		OnTransition: tr.record,
	})
	if err != nil {
		t.Fatalf("SummarizeText() error = %v", err)
	}

	if got := strings.Join(tr, "|"); got != "idle->summarizing|summarizing->publishing|publishing->done" {
		t.Errorf("transitions = %s", got)
	}
	if len(pub.threads) != 1 || pub.threads[0] != "1699999999.000200" {
		t.Errorf("threads = %q", pub.threads)
	}
	if strings.HasPrefix(pub.published[0], publisher.MeetingBanner) {
		t.Error("threaded replies should not carry the recording banner")
	}
	if len(pub.uploads) != 1 || pub.uploads[0] != docx || res.Upload == nil {
		t.Errorf("uploads = %q, upload = %+v", pub.uploads, res.Upload)
	}
	if _, err := os.Stat(docx); err != nil {
		t.Errorf("docx not written: %v", err)
	}
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "meeting.wav")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	dest, err := Archive(src, filepath.Join(dir, "archived"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("archived file missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still present after archive")
	}
}

func TestTranscribeOnly(t *testing.T) {
	path := writeRecording(t, t.TempDir(), "memo.wav", 1, 2500)
	sum := &fakeSummarizer{}
	var tr transitions

	res, err := newTestPipeline(&scriptEngine{texts: []string{"one", "two", "three"}}, sum, nil, nil).
		Transcribe(context.Background(), path, Options{ChunkMs: 1000, OnTransition: tr.record})
	if err != nil {
		t.Fatal(err)
	}

	if res.Transcript.Text != "one two three" || res.State != Done {
		t.Errorf("result = %+v", res)
	}
	if len(sum.inputs) != 0 {
		t.Error("summarizer called by Transcribe")
	}
	if got := strings.Join(tr, "|"); got != "idle->transcribing|transcribing->done" {
		t.Errorf("transitions = %s", got)
	}
}

// formatEngine records the WAV format of every request.
type formatEngine struct {
	formats   []audio.Format
	encodings []string
}

func (e *formatEngine) Transcribe(_ context.Context, req transcriber.Request) (*transcriber.Result, error) {
	buf, err := audio.DecodeWAV(bytes.NewReader(req.Audio))
	if err != nil {
		return nil, err
	}
	e.formats = append(e.formats, buf.Format())
	e.encodings = append(e.encodings, req.Encoding)
	return &transcriber.Result{Text: "ok", Confidence: 0.9}, nil
}

func (e *formatEngine) Close() error { return nil }

func TestProcessRequantizes24BitRecordings(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		segments int
	}{
		{name: "single segment", frames: 800, segments: 1},
		{name: "chunked", frames: 2500, segments: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]int, tt.frames*2)
			for i := range samples {
				samples[i] = (i % 100) << 12
			}
			buf, err := audio.NewBuffer(audio.Format{SampleRate: 1000, Channels: 2, BitDepth: 24}, samples)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(t.TempDir(), "studio.wav")
			if err := audio.WriteWAV(path, buf); err != nil {
				t.Fatal(err)
			}

			engine := &formatEngine{}
			res, err := newTestPipeline(engine, &fakeSummarizer{}, nil, nil).
				Transcribe(context.Background(), path, Options{ChunkMs: 1000})
			if err != nil {
				t.Fatal(err)
			}
			if res.Transcript.Segments != tt.segments || res.Transcript.Skipped != 0 {
				t.Fatalf("transcript = %+v, want %d clean segments", res.Transcript, tt.segments)
			}

			want := audio.Format{SampleRate: 1000, Channels: 1, BitDepth: 16}
			for i, f := range engine.formats {
				if f != want {
					t.Errorf("request %d format = %+v, want %+v", i, f, want)
				}
				if engine.encodings[i] != transcriber.EncodingLinear16 {
					t.Errorf("request %d encoding = %s", i, engine.encodings[i])
				}
			}
		})
	}
}
