// Package dispatch provides the single execution context that owns
// presentation state.
//
// View-models run external work on other goroutines and hand completions
// back through a Dispatcher before touching observable state or hooks.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Dispatcher schedules fn on the execution context it represents.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatcherFunc) Dispatch(fn func()) {
	f(fn)
}

// Refuser is a Dispatcher that can refuse callbacks, such as a closed Queue.
type Refuser interface {
	Dispatcher

	// TryDispatch schedules fn and reports whether it was accepted.
	TryDispatch(fn func()) bool
}

// Submit schedules fn on d and reports whether it was accepted.
// Dispatchers that cannot refuse always accept.
func Submit(d Dispatcher, fn func()) bool {
	if r, ok := d.(Refuser); ok {
		return r.TryDispatch(fn)
	}
	d.Dispatch(fn)
	return true
}

// Inline runs callbacks immediately on the calling goroutine.
var Inline Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// DefaultQueueSize is the buffer size used when NewQueue is given size <= 0.
const DefaultQueueSize = 64

// ErrClosed is returned by Run when the queue was closed.
var ErrClosed = errors.New("dispatch: queue closed")

// Queue is an event loop: callbacks dispatched to it run one at a time,
// in dispatch order, on the goroutine that calls Run.
type Queue struct {
	ch     chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewQueue creates a queue buffering up to size pending callbacks.
func NewQueue(size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		ch:     make(chan func(), size),
		done:   make(chan struct{}),
		logger: logger.With("component", "dispatch"),
	}
}

// Dispatch enqueues fn. It blocks while the buffer is full and discards
// fn once the queue is closed.
func (q *Queue) Dispatch(fn func()) {
	q.TryDispatch(fn)
}

// TryDispatch is Dispatch that reports whether fn was queued. It returns
// false for a nil fn and once the queue is closed.
func (q *Queue) TryDispatch(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-q.done:
		q.logger.Debug("queue closed, discarding callback")
		return false
	default:
	}

	select {
	case q.ch <- fn:
		return true
	case <-q.done:
		q.logger.Debug("queue closed, discarding callback")
		return false
	}
}

// Run executes queued callbacks until Close is called or ctx is done.
// It returns ErrClosed after Close and ctx.Err() on cancellation.
// Callbacks already queued when Close is called are still executed.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-q.ch:
			q.exec(fn)
		case <-q.done:
			q.drain()
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops the loop. It is safe to call more than once and from
// inside a callback.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

func (q *Queue) drain() {
	for {
		select {
		case fn := <-q.ch:
			q.exec(fn)
		default:
			return
		}
	}
}

func (q *Queue) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("dispatched callback panicked", "panic", r)
		}
	}()
	fn()
}
