package transcriber

import (
	"bytes"
	"context"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type whisperEngine struct {
	client *openai.Client
}

// NewWhisperEngine uses the OpenAI audio transcription endpoint.
func NewWhisperEngine(apiKey string) Engine {
	return &whisperEngine{client: openai.NewClient(apiKey)}
}

func (e *whisperEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(req.Audio),
		Language: isoLanguage(req.LanguageCode),
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, nil
	}

	res := &Result{
		Text:     text,
		Language: req.LanguageCode,
		Duration: resp.Duration,
	}

	// whisper has no confidence score; the mean token probability of its
	// segments stands in for one
	if n := len(resp.Segments); n > 0 {
		sum := 0.0
		for _, s := range resp.Segments {
			sum += math.Exp(s.AvgLogprob)
		}
		res.Confidence = math.Min(1, sum/float64(n))
	}

	return res, nil
}

func (e *whisperEngine) Close() error { return nil }

// isoLanguage maps a BCP-47 tag such as en-US to its ISO-639-1 prefix.
func isoLanguage(tag string) string {
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
