package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// maxSettleChecks bounds how long a growing file is waited for.
const maxSettleChecks = 120

type implWatcher struct {
	opts       Options
	extensions map[string]bool
	handler    EventHandler
	logger     logger.Logger
	watcher    *fsnotify.Watcher
	semaphore  chan struct{}
	wg         sync.WaitGroup

	mu       sync.Mutex
	// inFlight maps a video stem to the path being processed under it.
	inFlight map[string]string
}

// Start monitors the drop folder and hands every new video to the handler.
// It returns when ctx is cancelled, after in-progress videos finish.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.opts.Dir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(w.opts.Extensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// moved-in files also arrive as Create
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}
			if holder, ok := w.claim(event.Name); !ok {
				if holder != event.Name {
					w.logger.Warn(ctx, "Skipping %s: work dir already in use by %s", event.Name, filepath.Base(holder))
				}
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)
			w.wg.Add(1)
			go w.handle(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) handle(ctx context.Context, path string) {
	defer w.wg.Done()
	defer w.release(path)

	if err := waitStable(ctx, path, w.opts.SettleDelay, maxSettleChecks); err != nil {
		w.logger.Warn(ctx, "Skipping %s: %v", path, err)
		return
	}

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-w.semaphore }()

	if err := w.handler(ctx, path); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", path, err)
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// claim reserves path's stem. Videos sharing a stem share a work dir, so only
// one of them may be in flight; the holder's path is returned on conflict.
func (w *implWatcher) claim(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := stem(path)
	if holder, busy := w.inFlight[key]; busy {
		return holder, false
	}
	w.inFlight[key] = path
	return path, true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := stem(path)
	if w.inFlight[key] == path {
		delete(w.inFlight, key)
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// isVideoFile checks if the file has a configured video extension
func (w *implWatcher) isVideoFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// waitStable returns once path has a non-zero size that did not change over
// one delay interval.
func waitStable(ctx context.Context, path string, delay time.Duration, maxChecks int) error {
	last := int64(-1)
	for i := 0; i < maxChecks; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat: %w", err)
		}
		size := info.Size()
		if size > 0 && size == last {
			return nil
		}
		last = size

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("file still changing after %d checks", maxChecks)
}
