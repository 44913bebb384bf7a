package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"stickynotes/internal/logger"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports edits made to the configuration file by other programs.
// Writes performed through the Store it watches are ignored.
type Watcher struct {
	store   *Store
	log     logger.Logger
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatcher(store *Store, log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Atomic saves replace the file, so the directory is watched instead.
	dir := filepath.Dir(store.Path())
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{
		store:   store,
		log:     log,
		watcher: fw,
		done:    make(chan struct{}),
	}, nil
}

// Start delivers every external change on a background goroutine. onChange
// must not touch GUI state directly.
func (w *Watcher) Start(ctx context.Context, onChange func(Settings)) {
	runCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	go w.run(runCtx, onChange)
}

func (w *Watcher) run(ctx context.Context, onChange func(Settings)) {
	defer close(w.done)
	target := filepath.Clean(w.store.Path())

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.schedule(ctx, onChange)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("Watcher", err, map[string]interface{}{"path": target})
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, onChange func(Settings)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.check(onChange)
	})
}

func (w *Watcher) check(onChange func(Settings)) {
	data, err := os.ReadFile(w.store.Path())
	if err != nil {
		// Removed or mid-replace; the next event settles it.
		return
	}
	if w.store.isOwnContent(data) {
		return
	}

	settings, err := DecodeSettings(data)
	if err != nil {
		w.log.Warning("Watcher", "ignoring unreadable external edit", map[string]interface{}{
			"path":  w.store.Path(),
			"error": err.Error(),
		})
		return
	}
	w.store.remember(data)

	w.log.Info("Watcher", "external edit detected", map[string]interface{}{
		"path": w.store.Path(),
	})
	onChange(settings)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()

	err := w.watcher.Close()
	if cancel != nil {
		cancel()
		<-w.done
	}
	return err
}
