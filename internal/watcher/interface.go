package watcher

import "context"

// Watcher feeds new lecture videos dropped into a directory to a handler.
type Watcher interface {
	// Start blocks until ctx is done or the underlying watcher fails.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one new video. Calls never overlap; a returned
// error is logged and watching continues.
type EventHandler func(ctx context.Context, videoPath string) error
