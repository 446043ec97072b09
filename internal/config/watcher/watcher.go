// Package watcher watches a single config file for changes, debounces
// bursts of writes, and invokes a reload callback.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one config file path and calls onReload after a
// debounced write/create event settles.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload func()

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New starts watching path, invoking onReload no sooner than debounce
// after the last qualifying write settles. It watches the containing
// directory rather than the file itself, so it survives editors that
// replace the file via rename-over-write.
func New(path string, debounce time.Duration, onReload func()) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		debounce: debounce,
		onReload: onReload,
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// run drains fsnotify events until Close, debouncing qualifying writes
// to path into a single onReload call.
func (w *Watcher) run() {
	defer w.wg.Done()

	var timerC <-chan time.Time
	var timer *time.Timer

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timerC = nil
			w.onReload()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops watching and waits for the run loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}
