package sink

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrQueueFull is returned when the async queue cannot take another entry.
var ErrQueueFull = errors.New("sink queue is full")

const (
	DefaultQueueSize    = 1024
	DefaultWriteTimeout = 5 * time.Second
)

// Async decouples callers from a slow or unavailable sink. Write only enqueues;
// a single worker forwards entries to the wrapped sink in order, each under its
// own timeout. Entries that fail are logged and dropped, never retried.
type Async struct {
	next    Sink
	timeout time.Duration
	queue   chan Entry

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsync starts the worker for next.
func NewAsync(next Sink, queueSize int, timeout time.Duration) *Async {
	if next == nil {
		panic("sink: next must not be nil")
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	a := &Async{
		next:    next,
		timeout: timeout,
		queue:   make(chan Entry, queueSize),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

// Write enqueues entry without blocking. ctx is not used for the eventual
// delivery, which outlives the caller.
func (a *Async) Write(_ context.Context, entry Entry) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- entry:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops intake, delivers what is queued, then closes the wrapped sink.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	<-a.done
	return a.next.Close()
}

func (a *Async) run() {
	defer close(a.done)
	for entry := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.next.Write(ctx, entry); err != nil {
			slog.Warn("[Sink] Audit write failed, entry dropped",
				"kind", entry.Kind,
				"event_id", entry.EventID,
				"error", err)
		}
		cancel()
	}
}
