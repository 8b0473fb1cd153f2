package watcher

import "context"

// Watcher hands lecture videos dropped into a directory to a handler.
type Watcher interface {
	// Start blocks until ctx is cancelled and in-flight videos are done.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one settled video file.
type EventHandler func(ctx context.Context, videoPath string) error
