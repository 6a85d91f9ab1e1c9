package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-validates the corpus whenever its directory changes and hands
// each report to onReport. Events are debounced so editors that write a
// file several times per save trigger one run. Runs are serialized, so
// onReport is never called concurrently. An initial run happens
// immediately. Watch blocks until ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, debounce time.Duration, onReport func(*Report)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.loader.Dir()); err != nil {
		return fmt.Errorf("watch directory %s: %w", r.loader.Dir(), err)
	}

	var runMu sync.Mutex
	run := func() {
		runMu.Lock()
		defer runMu.Unlock()
		r.cache.Reset()
		report, err := r.Run(ctx)
		if err != nil {
			slog.Error("corpus run", "err", err)
			return
		}
		onReport(report)
	}

	run()

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only .json files matter; editors also drop swap and
			// backup files in the directory.
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("fsnotify error", "err", err)
		}
	}
}
