package worklist

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/takak2166/worklist/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last change
const DefaultDebounce = 500 * time.Millisecond

// WatchOptions configures a Watcher
type WatchOptions struct {
	Debounce time.Duration
	// Ignore lists paths whose changes never trigger a rebuild
	Ignore []string
}

// Watcher rebuilds the work list whenever the source directory changes
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	ignore   map[string]bool
}

// NewWatcher starts watching dir. The caller must call Run or Close.
func NewWatcher(dir string, opts WatchOptions) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: opts.Debounce,
		ignore:   make(map[string]bool, len(opts.Ignore)),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	for _, path := range opts.Ignore {
		w.ignore[absPath(path)] = true
	}
	return w, nil
}

// Run calls rebuild once per burst of changes until ctx is cancelled. Rebuild
// errors are logged and do not stop the loop. Run closes the watcher.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Change detected", map[string]interface{}{
				"path": event.Name,
				"op":   event.Op.String(),
			})
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			logger.Info("Rebuilding work list due to changes")
			if err := rebuild(ctx); err != nil {
				logger.Warn("Rebuild failed", map[string]interface{}{
					"error": err.Error(),
				})
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", err)
		}
	}
}

// Close stops watching without running
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !w.ignore[absPath(event.Name)]
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
