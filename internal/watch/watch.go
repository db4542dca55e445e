// Package watch re-runs a callback when files in a package directory change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/decisionhub/internal/logger"
)

// DefaultDebounce coalesces the bursts of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Option customises a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// Watcher observes a single directory, non-recursively.
type Watcher struct {
	log      *logger.Logger
	debounce time.Duration
}

// New creates a Watcher.
func New(log *logger.Logger, opts ...Option) *Watcher {
	w := &Watcher{log: log, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run calls onChange once per quiet period after files in dir are created,
// written, removed or renamed. It blocks until ctx is done and then returns nil.
func (w *Watcher) Run(ctx context.Context, dir string, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log := w.log.With("dir", dir)
	log.Debug("watching for changes")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			log.With("file", filepath.Base(event.Name)).Debug("change detected")
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "watch error")

		case <-timer.C:
			onChange()
		}
	}
}

func relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	// Editor swap and backup files.
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
