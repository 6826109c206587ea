// Package watch reruns generation when declaration sources change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Handler is called with the changed paths after a quiet period.
type Handler func(ctx context.Context, changed []string) error

// Watcher reports changes to a fixed set of files and directories.
type Watcher struct {
	paths    []string
	match    func(path string) bool
	debounce time.Duration
	log      *zap.Logger

	pending map[string]struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the handler runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithFilter restricts events to paths for which match returns true.
func WithFilter(match func(path string) bool) Option {
	return func(w *Watcher) { w.match = match }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// New creates a Watcher over paths. Files are watched through their
// directory so that editors replacing the file on save are still seen.
func New(paths []string, opts ...Option) *Watcher {
	w := &Watcher{
		paths:    paths,
		match:    func(string) bool { return true },
		debounce: DefaultDebounce,
		log:      zap.NewNop(),
		pending:  make(map[string]struct{}),
	}

	for _, o := range opts {
		o(w)
	}

	return w
}

// Run blocks until ctx is done, calling h after each batch of changes.
// Handler errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	files := make(map[string]struct{})

	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}

		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}

		dir := abs
		if !info.IsDir() {
			dir = filepath.Dir(abs)
			files[abs] = struct{}{}
		}

		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}

		w.log.Debug("watching", zap.String("path", abs))
	}

	wanted := func(name string) bool {
		if len(files) > 0 {
			if _, ok := files[name]; !ok && !w.underDir(name) {
				return false
			}
		}

		return w.match(name)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			name, _ := filepath.Abs(ev.Name)
			if !wanted(name) {
				continue
			}

			w.pending[name] = struct{}{}

			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			changed := w.drain()
			if len(changed) == 0 {
				continue
			}

			w.log.Info("change detected", zap.Strings("paths", changed))

			if err := h(ctx, changed); err != nil {
				w.log.Error("regeneration failed", zap.Error(err))
			}
		}
	}
}

// underDir reports whether name lives in one of the watched directories.
func (w *Watcher) underDir(name string) bool {
	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}

		if info, err := os.Stat(abs); err == nil && info.IsDir() && filepath.Dir(name) == abs {
			return true
		}
	}

	return false
}

func (w *Watcher) drain() []string {
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}

	clear(w.pending)
	sort.Strings(out)

	return out
}
