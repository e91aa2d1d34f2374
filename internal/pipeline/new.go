package pipeline

import (
	"github.com/nguyentantai21042004/echoscribe/internal/audio"
	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
	"github.com/nguyentantai21042004/echoscribe/internal/publisher"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcriber"
)

// Deps are the stage implementations a Pipeline sequences. Publisher may be
// nil when no run publishes; Converter may be nil when every input is WAV.
type Deps struct {
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Publisher   publisher.Publisher
	Converter   *audio.Converter
	Metrics     *metrics.Metrics
}

type implPipeline struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	publisher   publisher.Publisher
	converter   *audio.Converter
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// New creates a Pipeline.
func New(cfg *config.Config, deps Deps, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		publisher:   deps.Publisher,
		converter:   deps.Converter,
		metrics:     deps.Metrics,
		logger:      log,
	}
}
