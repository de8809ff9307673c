// Package watch reloads the catalog when its file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mmcdole/cinephile/internal/debounce"
)

// DefaultSettle is how long writes must pause before a reload is signalled
const DefaultSettle = 250 * time.Millisecond

// Watcher signals when a single file has been rewritten and settled.
type Watcher struct {
	path     string
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	debounce *debounce.Debouncer

	events chan struct{}
}

// New watches path. Editors often replace files instead of writing in
// place, so the parent directory is watched and events are filtered by name.
func New(path string, settle time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	abs = filepath.Clean(abs)

	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to add watch: %w", err)
	}

	return &Watcher{
		path:     abs,
		logger:   logger,
		watcher:  fw,
		debounce: debounce.New(settle),
		events:   make(chan struct{}, 1),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Events delivers one value per settled change. Bursts collapse into one.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Run processes filesystem events until ctx is done, then releases the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.logger.Debug("catalog changed", "path", w.path, "op", event.Op.String())
		w.debounce.Trigger(w.emit)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Replacement writes arrive as a later Create
		w.logger.Debug("catalog moved or removed", "path", w.path, "op", event.Op.String())
	}
}

// emit never blocks; an unread signal already covers this change
func (w *Watcher) emit() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *Watcher) close() {
	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("failed to close catalog watcher", "error", err)
	}
}
