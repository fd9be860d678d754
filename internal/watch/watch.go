// Package watch reloads a file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce absorbs the burst of events editors produce on save.
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher calls OnChange once a watched file has been quiet for the
// debounce period. It watches the parent directory so atomic renames and
// recreated files are still seen.
type FileWatcher struct {
	path     string
	onChange func(path string)
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending time.Time
}

// New returns a watcher for path. onChange runs on the watcher goroutine.
func New(path string, debounce time.Duration, logger *zap.Logger, onChange func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{
		path:     abs,
		onChange: onChange,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Run watches until ctx is done.
func (fw *FileWatcher) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(fw.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	fw.logger.Info("watching file", zap.String("path", fw.path))

	tick := fw.debounce / 3
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			fw.handleEvent(event)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			if fw.due(now) {
				fw.logger.Debug("file changed", zap.String("path", fw.path))
				fw.onChange(fw.path)
			}
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	fw.mu.Lock()
	fw.pending = time.Now()
	fw.mu.Unlock()
}

// due reports whether a pending change has settled, clearing it if so.
func (fw *FileWatcher) due(now time.Time) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.pending.IsZero() || now.Sub(fw.pending) < fw.debounce {
		return false
	}
	fw.pending = time.Time{}
	return true
}
