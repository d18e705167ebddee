package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	debounce time.Duration

	onChange func(*Config)
	onError  func(error)

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long to wait after the last event before reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnError sets the callback for watch and parse errors.
func WithOnError(fn func(error)) WatchOption {
	return func(w *Watcher) { w.onError = fn }
}

// Watch starts watching path. onChange receives each successfully
// reloaded config. The directory is watched rather than the file so
// editors that replace the file on save are still seen.
func Watch(path string, onChange func(*Config), opts ...WatchOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		fs:       fs,
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fs.Add(filepath.Dir(w.path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
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
	select {
	case <-w.done:
		return
	default:
	}
	cfg, err := Load(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
