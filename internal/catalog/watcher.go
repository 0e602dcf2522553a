package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rai-review-backend/internal/shared/telemetry"
)

// DefaultDebounce coalesces editor save bursts into one reload.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a catalog file into a Holder when it changes on disk.
// A reload that fails validation is logged and the previous catalog stays published.
type Watcher struct {
	path     string
	holder   *Holder
	debounce time.Duration
	onReload func(*Catalog, error)

	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	timer     *time.Timer
	done      chan struct{}
	closeOnce sync.Once
}

// WatcherOption customizes a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithReloadHook is called after every reload attempt.
func WithReloadHook(fn func(*Catalog, error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher watches the directory containing path. Watching the directory
// rather than the file survives editors that replace the file by rename.
func NewWatcher(path string, holder *Holder, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:     abs,
		holder:   holder,
		debounce: DefaultDebounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run processes file events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			telemetry.Warn("catalog.watch_error", map[string]any{"error": err})
		}
	}
}

// Close releases the underlying fsnotify watcher. It is safe to call more
// than once and on a watcher whose Run was never started.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() { err = w.watcher.Close() })
	return err
}

// Done is closed when Run returns.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	next, err := Load(w.path)
	if err != nil {
		telemetry.Warn("catalog.reload_rejected", map[string]any{"path": w.path, "error": err})
	} else {
		prev := w.holder.Swap(next)
		fields := map[string]any{"path": w.path, "version": next.Version}
		if prev != nil {
			fields["previous_version"] = prev.Version
		}
		telemetry.Info("catalog.reloaded", fields)
	}
	if w.onReload != nil {
		w.onReload(next, err)
	}
}
