package transcriber

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

// Options are the recognition parameters sent with every request.
type Options struct {
	LanguageCode string
	SampleRate   int
}

type implTranscriber struct {
	engine Engine
	opts   Options
	logger logger.Logger
}

// New creates a Transcriber that sends every request to engine.
func New(engine Engine, opts Options, log logger.Logger) Transcriber {
	if opts.LanguageCode == "" {
		opts.LanguageCode = config.DefaultLanguage
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = config.DefaultSpeechRate
	}
	return &implTranscriber{
		engine: engine,
		opts:   opts,
		logger: log,
	}
}

// OptionsFrom reads recognition options from cfg.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		LanguageCode: cfg.Speech.Language,
		SampleRate:   cfg.Speech.SampleRate,
	}
}

// NewEngine builds the engine selected by speech.provider.
func NewEngine(ctx context.Context, cfg *config.Config, exec executor.Executor) (Engine, error) {
	switch cfg.Speech.Provider {
	case "google":
		return NewGoogleEngine(ctx, cfg.Speech.CredentialsFile)
	case "whisper":
		return NewWhisperEngine(cfg.OpenAI.APIKey), nil
	case "whispercpp":
		return NewWhisperCppEngine(exec, cfg.Whisper), nil
	default:
		return nil, fmt.Errorf("unknown speech provider %q", cfg.Speech.Provider)
	}
}
