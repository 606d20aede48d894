package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a fixed set of files.
// The parent directories are watched, so editors that replace a file on
// save are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	targets  map[string]string // absolute path -> path as given
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher starts watching paths. Call Run to receive changes and Close
// to release the watcher.
func NewWatcher(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  watcher,
		targets:  make(map[string]string, len(paths)),
		debounce: debounce,
		logger:   logger,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.targets[abs] = p
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("watching directory", "dir", dir)
	}

	return w, nil
}

// Run calls fn with the path of every changed file until ctx is cancelled.
// Bursts of events for one file within the debounce window are reported
// once. fn is always called from the Run goroutine.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	ready := make(chan string)
	done := make(chan struct{})
	timers := make(map[string]*time.Timer)
	defer func() {
		close(done)
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			path, tracked := w.targets[abs]
			if !tracked {
				continue
			}

			if t, ok := timers[abs]; ok {
				t.Stop()
			}
			timers[abs] = time.AfterFunc(w.debounce, func() {
				deliver(path, ready, done)
			})

		case path := <-ready:
			w.logger.Debug("change detected", "path", path)
			fn(path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// deliver hands path to Run, giving up once Run has returned.
func deliver(path string, ready chan<- string, done <-chan struct{}) bool {
	select {
	case ready <- path:
		return true
	case <-done:
		return false
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
