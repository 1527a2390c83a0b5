package backend

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/image-sourcery/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDirChanged Kind = iota
)

// Event reports that the watched directory changed, or that watching failed.
type Event struct {
	Kind Kind
	Dir  string
	Err  error
}

// Watcher follows a single directory and publishes coalesced change events.
type Watcher struct {
	interval time.Duration
	fsw      *fsnotify.Watcher

	mu  sync.Mutex
	dir string

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that emits at most one event per interval.
func NewWatcher(interval time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		fsw:      fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Watch switches the watched directory. An empty dir stops watching.
func (w *Watcher) Watch(dir string) error {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		dir = abs
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsw.Remove(w.dir); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
			return fmt.Errorf("unwatch %s: %w", w.dir, err)
		}
		w.dir = ""
	}
	if dir == "" {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Dir returns the directory currently watched.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fsw.Close()

	throttle := newThrottle(w.interval)
	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !listingChanged(evt) {
				continue
			}
			if !throttle.wait(w.ctx) {
				return
			}
			w.drain()
			dir := w.Dir()
			events.Host.DirChanged(dir)
			if !w.emit(Event{Kind: KindDirChanged, Dir: dir}) {
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindDirChanged, Dir: w.Dir(), Err: err}) {
				return
			}
		}
	}
}

// drain discards events that queued up while the throttle was waiting; they
// are covered by the event about to be emitted.
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func listingChanged(evt fsnotify.Event) bool {
	return evt.Has(fsnotify.Create) || evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename)
}
