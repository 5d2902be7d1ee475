package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vellum-editor/vellum/internal/logging"
)

// DefaultDebounce is the delay between the last observed file event and
// the reload, absorbing editors that write config files in several steps.
const DefaultDebounce = 100 * time.Millisecond

// ReloadHandler receives the freshly loaded configuration.
type ReloadHandler func(Config)

// Watcher reloads the configuration when its file changes. The parent
// directory is watched rather than the file itself, so atomic
// rename-into-place saves are seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  ReloadHandler
	log      *logging.Logger

	fsw     *fsnotify.Watcher
	closeCh chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewWatcher creates a watcher for the config file at path. A zero
// debounce uses DefaultDebounce; a nil logger discards.
func NewWatcher(path string, debounce time.Duration, log *logging.Logger, handler ReloadHandler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		handler:  handler,
		log:      log.WithComponent("config-watcher"),
		fsw:      fsw,
		closeCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. It is a no-op when already started.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return nil
	}
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.started = true
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	started := w.started
	w.mu.Unlock()

	close(w.closeCh)
	err := w.fsw.Close()
	if started {
		w.wg.Wait()
	}
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		case <-fire:
			timer = nil
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("reload failed: %v", err)
		return
	}
	w.log.Debug("config reloaded from %s", w.path)
	if w.handler != nil {
		w.handler(cfg)
	}
}
