package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// DefaultSettle is how long a new file is left alone before it is handed
// to the handler, so recorders can finish writing it.
const DefaultSettle = 500 * time.Millisecond

// Options tune a Watcher.
type Options struct {
	// MaxConcurrent bounds in-flight handlers; zero means one at a time.
	MaxConcurrent int
	Settle        time.Duration
}

// New creates a new Watcher over inboxDir with concurrency control
func New(inboxDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}

	return &implWatcher{
		inboxDir:      inboxDir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: opts.MaxConcurrent,
		settle:        opts.Settle,
		sem:           semaphore.NewWeighted(int64(opts.MaxConcurrent)),
	}, nil
}
