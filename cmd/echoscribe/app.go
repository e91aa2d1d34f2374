package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/echoscribe/internal/audio"
	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/errs"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
	"github.com/nguyentantai21042004/echoscribe/internal/pipeline"
	"github.com/nguyentantai21042004/echoscribe/internal/publisher"
	"github.com/nguyentantai21042004/echoscribe/internal/summarizer"
	"github.com/nguyentantai21042004/echoscribe/internal/transcriber"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	exec   executor.Executor
	closer []func() error
}

// newApp loads configuration. The default config.yaml is optional; an
// explicit --config path must exist.
func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if errors.Is(err, errs.ErrNotFound) && !cmd.Flags().Changed("config") {
		cfg, err = config.Load("")
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}

	return &app{
		cfg:  cfg,
		log:  logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format),
		exec: executor.New(),
	}, nil
}

func (a *app) Close() {
	for _, c := range a.closer {
		if err := c(); err != nil {
			a.log.Warn(context.Background(), "Failed to close client: %v", err)
		}
	}
}

// requireCredentials fails when a stage the command runs has no
// credentials configured.
func (a *app) requireCredentials(s stages) error {
	missing := a.cfg.MissingFor(s.publish, s.summarize, s.transcribe)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", errs.ErrInvalidArgument, strings.Join(missing, "; "))
}

func (a *app) transcriber(ctx context.Context) (transcriber.Transcriber, error) {
	engine, err := transcriber.NewEngine(ctx, a.cfg, a.exec)
	if err != nil {
		return nil, fmt.Errorf("create %s engine: %w", a.cfg.Speech.Provider, err)
	}
	a.closer = append(a.closer, engine.Close)
	return transcriber.New(engine, transcriber.OptionsFrom(a.cfg), a.log), nil
}

func (a *app) summarizer(ctx context.Context) (summarizer.Summarizer, error) {
	completer, err := summarizer.NewCompleter(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s completer: %w", a.cfg.Summarizer.Provider, err)
	}
	return summarizer.New(completer, a.cfg.OpenAI.MaxTokens, a.log), nil
}

func (a *app) publisher() publisher.Publisher {
	return publisher.New(publisher.NewSlackMessenger(a.cfg.Slack.APIToken), a.cfg.Slack.Channel, a.log)
}

// stages selects which backends a pipeline is built with.
type stages struct {
	transcribe bool
	summarize  bool
	publish    bool
}

func (a *app) pipeline(ctx context.Context, s stages, m *metrics.Metrics) (pipeline.Pipeline, error) {
	deps := pipeline.Deps{
		Converter: audio.NewConverter(a.exec, a.cfg.FFmpeg.BinaryPath, a.log),
		Metrics:   m,
	}

	var err error
	if s.transcribe {
		if deps.Transcriber, err = a.transcriber(ctx); err != nil {
			return nil, err
		}
	}
	if s.summarize {
		if deps.Summarizer, err = a.summarizer(ctx); err != nil {
			return nil, err
		}
	}
	if s.publish {
		deps.Publisher = a.publisher()
	}

	return pipeline.New(a.cfg, deps, a.log), nil
}

// progress logs every pipeline state change.
func (a *app) progress(ctx context.Context) func(from, to pipeline.State) {
	return func(from, to pipeline.State) {
		a.log.Info(ctx, "Pipeline: %s -> %s", from, to)
	}
}
