// Package watch reloads templates when files in the templates directory
// change.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/motion"
)

// DefaultDebounce is the quiet period before a burst of events triggers a
// reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls onChange once per debounced burst of template file events
// under a directory.
type Watcher struct {
	dir      string
	onChange func()
	debounce time.Duration
	logger   *zap.Logger

	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	flushes sync.WaitGroup
	run     sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	stopped bool
}

// New creates a watcher for dir. A zero debounce uses DefaultDebounce.
func New(dir string, debounce time.Duration, logger *zap.Logger, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{dir: dir, onChange: onChange, debounce: debounce, logger: logger, fsw: fsw}, nil
}

// Start begins watching. It fails when dir cannot be watched.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.loop(ctx)
	w.logger.Info("template watcher started", zap.String("dir", w.dir))
	return nil
}

// Stop shuts down the watcher and cancels any pending reload. A reload
// already running finishes before Stop returns; onChange is never called
// after that.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	_ = w.fsw.Close()

	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.flushes.Wait()
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("template watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if !motion.IsTemplateFile(event.Name) {
		return
	}
	w.logger.Debug("template file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.pending = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if !w.pending || w.stopped {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.flushes.Add(1)
	w.mu.Unlock()
	defer w.flushes.Done()

	// Reloads never overlap.
	w.run.Lock()
	defer w.run.Unlock()
	w.onChange()
}
