package summarizer

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

type implSummarizer struct {
	completer Completer
	maxTokens int
	logger    logger.Logger
}

// New creates a Summarizer. maxTokens bounds the action item and key point
// responses; zero means config.DefaultMaxTokens.
func New(completer Completer, maxTokens int, log logger.Logger) Summarizer {
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}
	return &implSummarizer{
		completer: completer,
		maxTokens: maxTokens,
		logger:    log,
	}
}

// NewCompleter builds the backend selected by summarizer.provider.
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, error) {
	switch cfg.Summarizer.Provider {
	case "openai":
		return NewOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case "gemini":
		return NewGeminiCompleter(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Summarizer.Provider)
	}
}
