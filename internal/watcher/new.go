package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// Options configures a drop-folder watcher.
type Options struct {
	Dir           string
	Extensions    []string
	MaxConcurrent int
	// SettleDelay is the interval between size checks while a new file is
	// still being copied in.
	SettleDelay time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 500 * time.Millisecond
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	return &implWatcher{
		opts:       opts,
		extensions: exts,
		handler:    handler,
		logger:     log,
		watcher:    watcher,
		semaphore:  make(chan struct{}, opts.MaxConcurrent),
		inFlight:   make(map[string]string),
	}, nil
}
