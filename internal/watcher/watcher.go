package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// SupportedFormats are the recording extensions picked up from the inbox.
var SupportedFormats = []string{".wav", ".mp3", ".m4a", ".ogg", ".flac", ".webm", ".mp4"}

// chunkStem matches the {stem}_chunk{i} files the pipeline writes beside a
// recording.
var chunkStem = regexp.MustCompile(`_chunk\d+$`)

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	settle        time.Duration
	sem           *semaphore.Weighted
	wg            sync.WaitGroup
}

// Start monitors the inbox until ctx is done, handing every new recording
// to the handler.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(SupportedFormats, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !IsRecording(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-audio file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)

			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				continue
			}

			if err := w.sem.Acquire(ctx, 1); err != nil {
				continue
			}
			w.wg.Add(1)
			go func(filePath string) {
				defer w.wg.Done()
				defer w.sem.Release(1)

				if err := w.handler(ctx, filePath); err != nil {
					w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
				}
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// IsRecording reports whether path has a supported audio extension. Chunk
// files written by the pipeline itself are not recordings.
func IsRecording(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if chunkStem.MatchString(stem) {
		return false
	}

	ext := filepath.Ext(base)
	for _, format := range SupportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
