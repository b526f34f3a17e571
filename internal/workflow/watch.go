package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/anonsum/anonsum/internal/logger"
)

// debounce absorbs the burst of events editors emit on save.
const debounce = 250 * time.Millisecond

// Watch runs fn once immediately, then again every time the file at path
// changes, until ctx is cancelled. The parent directory is watched rather
// than the file itself because most editors save by replacing the file,
// which would drop a direct watch. Errors from fn are logged, not fatal:
// a failed run should not stop the watch loop.
func Watch(ctx context.Context, path string, log *logger.Logger, fn func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	run := func() {
		if err := fn(); err != nil {
			log.Error("watched run failed", zap.Error(err))
		}
	}
	run()

	log.Info("watching for changes", zap.String("path", abs))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			log.Info("input changed, rerunning", zap.String("path", abs))
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", zap.Error(err))
		}
	}
}
