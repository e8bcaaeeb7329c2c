package background

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// DataWatcher reports external changes to the data directory. Bursts of
// events (temp file, rename, chmod) collapse into one onChange call.
type DataWatcher struct {
	watcher  *fsnotify.Watcher
	match    func(path string) bool
	onChange func()
	delay    time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// StartDataWatcher watches dir until ctx is cancelled or Stop is called.
// match filters event paths; nil accepts every file in dir.
func StartDataWatcher(ctx context.Context, dir string, match func(path string) bool, onChange func()) (*DataWatcher, error) {
	return startDataWatcher(ctx, dir, match, onChange, defaultDebounce)
}

func startDataWatcher(ctx context.Context, dir string, match func(path string) bool, onChange func(), delay time.Duration) (*DataWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if match == nil {
		match = func(string) bool { return true }
	}

	w := &DataWatcher{
		watcher:  watcher,
		match:    match,
		onChange: onChange,
		delay:    delay,
	}
	w.wg.Add(1)
	go w.eventLoop(ctx)

	slog.Debug("watching data directory", "dir", dir)
	return w, nil
}

// Stop ends the watch and drops any pending notification.
func (w *DataWatcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	_ = w.watcher.Close()
	w.wg.Wait()
}

func (w *DataWatcher) eventLoop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("data directory watch error", "error", err)

		case <-ctx.Done():
			go w.Stop()
			return
		}
	}
}

func (w *DataWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	if !w.match(event.Name) {
		return
	}
	slog.Debug("data file changed", "path", event.Name, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.flush)
}

func (w *DataWatcher) flush() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped || w.onChange == nil {
		return
	}
	w.onChange()
}
