package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
	"github.com/nguyentantai21042004/echoscribe/internal/pipeline"
	"github.com/nguyentantai21042004/echoscribe/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var channel string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process every recording dropped into the inbox folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			cfg := a.cfg

			s := stages{transcribe: true, summarize: true, publish: true}
			if err := a.requireCredentials(s); err != nil {
				return err
			}
			if err := ensureDirectories(cfg.Paths.Inbox, cfg.Paths.Archived); err != nil {
				return err
			}

			m := metrics.New()
			pipe, err := a.pipeline(ctx, s, m)
			if err != nil {
				return err
			}

			handler := func(ctx context.Context, path string) error {
				res, err := pipe.Process(ctx, path, pipeline.Options{
					Publish:      true,
					Channel:      channel,
					OnTransition: a.progress(ctx),
				})
				if err != nil {
					return err
				}

				archived, err := pipeline.Archive(path, cfg.Paths.Archived)
				if err != nil {
					a.log.Warn(ctx, "Failed to move recording to archived folder: %v", err)
					return nil
				}
				a.log.Info(ctx, "Run %s done, recording archived to %s", res.RunID, archived)
				return nil
			}

			w, err := watcher.New(cfg.Paths.Inbox, handler, a.log, watcher.Options{MaxConcurrent: cfg.Performance.MaxConcurrent})
			if err != nil {
				return err
			}
			defer w.Stop()

			if cfg.Metrics.Addr != "" {
				srv := serveMetrics(ctx, a, cfg.Metrics.Addr, m)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					srv.Shutdown(shutdownCtx)
				}()
			}

			a.log.Info(ctx, "========================================")
			a.log.Info(ctx, "echoscribe is ready!")
			a.log.Info(ctx, "Inbox:    %s", cfg.Paths.Inbox)
			a.log.Info(ctx, "Archived: %s", cfg.Paths.Archived)
			a.log.Info(ctx, "Press Ctrl+C to stop")
			a.log.Info(ctx, "========================================")

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.log.Info(context.Background(), "Shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Slack channel (default from config)")
	return cmd
}

func serveMetrics(ctx context.Context, a *app, addr string, m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.log.Info(ctx, "Metrics listening on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "Metrics server failed: %v", err)
		}
	}()
	return srv
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
