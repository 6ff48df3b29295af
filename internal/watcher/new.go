package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
)

// defaultSettle is how long a new file is left alone before it is handled,
// so a copy in progress can finish.
const defaultSettle = 500 * time.Millisecond

// New creates a Watcher on dir. The handler is called for one file at a time.
func New(dir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperr.Filesystem("create watcher", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, apperr.Filesystem("add watch path "+dir, err)
	}

	return &implWatcher{
		dir:     dir,
		handler: handler,
		logger:  log,
		watcher: watcher,
		settle:  defaultSettle,
	}, nil
}
