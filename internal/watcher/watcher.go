// Package watcher turns filesystem events on the input directory into
// wake-up hints for the upload loop. Polling remains the correctness
// mechanism; the watcher only shortens the latency between a file
// landing in the input directory and its upload.
package watcher

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrijs2005/syncbox/internal/logging"
)

// Watcher coalesces fsnotify events into a 1-buffered hint channel.
// Consumers that are already awake lose nothing when hints are dropped,
// because the next poll covers the same files.
type Watcher struct {
	fsw    *fsnotify.Watcher
	hints  chan struct{}
	logger logging.Logger
}

// New starts watching dir. The returned watcher must be closed.
func New(dir string, logger logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		hints:  make(chan struct{}, 1),
		logger: logger.With("module", "watcher"),
	}
	go w.pump()

	return w, nil
}

// Hints returns the channel that receives a value whenever something
// changed in the watched directory since the last hint was consumed.
func (w *Watcher) Hints() <-chan struct{} {
	return w.hints
}

// Close releases the underlying fsnotify watcher. The hint channel is
// closed once the event pump drains.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) pump() {
	defer close(w.hints)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.hints <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn(context.Background(), "watch error", "error", err)
		}
	}
}
