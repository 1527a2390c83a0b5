// Package host owns the filesystem and the update lifecycle. It serves
// requests from the UI over an in-process channel one at a time, so requests
// are handled in the order they were sent and file operations never overlap.
package host

import (
	"context"
	"errors"
	"sync"

	"github.com/atomicstack/image-sourcery/internal/logging/events"
)

// ErrStopped is returned to callers once the serve loop has exited.
var ErrStopped = errors.New("host stopped")

// UpdateService is the slice of the updater the host drives.
type UpdateService interface {
	Check(ctx context.Context) error
	Apply() error
}

// Host answers UI requests and publishes update notifications.
type Host struct {
	version string

	mu      sync.Mutex
	updates UpdateService
	closed  bool

	requests chan Request
	events   chan Notification
	stopped  chan struct{}
	router   *router

	checkOnce sync.Once
	workers   sync.WaitGroup
	serveOnce sync.Once
}

// New creates a host reporting the given application version.
func New(version string) *Host {
	h := &Host{
		version:  version,
		requests: make(chan Request),
		events:   make(chan Notification, 16),
		stopped:  make(chan struct{}),
	}
	h.router = newRouter(h)
	return h
}

// SetUpdates attaches the update service. A nil service disables update
// checks and restart requests.
func (h *Host) SetUpdates(updates UpdateService) {
	h.mu.Lock()
	h.updates = updates
	h.mu.Unlock()
}

func (h *Host) updateService() UpdateService {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.updates
}

// Client returns a handle the UI uses to talk to this host.
func (h *Host) Client() *Client {
	return &Client{requests: h.requests, stopped: h.stopped}
}

// Events returns the notification channel. It is closed after Serve returns.
func (h *Host) Events() <-chan Notification {
	return h.events
}

// Notify queues a notification for the UI. Notifications raised after the
// host stopped, or while the queue is full, are dropped.
func (h *Host) Notify(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		events.Host.Dropped(n.Kind.String())
		return
	}
	select {
	case h.events <- n:
		events.Host.Notify(n.Kind.String())
	default:
		events.Host.Dropped(n.Kind.String())
	}
}

// Serve processes requests until ctx is cancelled. It returns nil on
// cancellation; Serve may only run once per Host.
func (h *Host) Serve(ctx context.Context) error {
	started := false
	h.serveOnce.Do(func() { started = true })
	if !started {
		return errors.New("host already served")
	}
	defer func() {
		close(h.stopped)
		h.workers.Wait()
		h.mu.Lock()
		h.closed = true
		close(h.events)
		h.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-h.requests:
			events.Host.Request(req.ID, string(req.Kind))
			reply := h.router.dispatch(ctx, req)
			events.Host.Reply(req.ID, string(req.Kind), reply.Err)
			if req.reply != nil {
				req.reply <- reply
			}
		}
	}
}
