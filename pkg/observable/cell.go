package observable

import (
	"sync"
	"sync/atomic"
)

// Listener receives the value of a cell after every write.
type Listener[T any] func(T)

// subscriptionIDs hands out process-unique subscription handles.
var subscriptionIDs atomic.Uint64

// Cell is a single-value container that notifies its listener on every write.
type Cell[T any] struct {
	// value is the current cell value.
	value T

	// listener is the primary listener, replaced by Bind.
	listener Listener[T]

	// observers are the extra listeners registered via Observe.
	observers []observer[T]

	// mu protects value, listener and observers.
	mu sync.RWMutex
}

type observer[T any] struct {
	id uint64
	fn Listener[T]
}

// New creates a cell holding the given initial value.
func New[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Bind replaces the primary listener without invoking it.
func (c *Cell[T]) Bind(l Listener[T]) {
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

// BindAndFire replaces the primary listener and invokes it once with the
// current value.
func (c *Cell[T]) BindAndFire(l Listener[T]) {
	c.mu.Lock()
	c.listener = l
	value := c.value
	c.mu.Unlock()

	if l != nil {
		l(value)
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores the value and then notifies listeners with it.
// Setting a value equal to the current one still notifies.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()

	c.notify(value)
}

// Update atomically reads and replaces the value, then notifies listeners.
func (c *Cell[T]) Update(fn func(T) T) {
	c.mu.Lock()
	value := fn(c.value)
	c.value = value
	c.mu.Unlock()

	c.notify(value)
}

// Observe registers an additional listener and returns its handle.
func (c *Cell[T]) Observe(l Listener[T]) *Subscription {
	if l == nil {
		return &Subscription{}
	}

	id := subscriptionIDs.Add(1)
	c.mu.Lock()
	c.observers = append(c.observers, observer[T]{id: id, fn: l})
	c.mu.Unlock()

	return &Subscription{id: id, cancel: func() { c.unobserve(id) }}
}

// unobserve removes the observer with the given handle, keeping order.
func (c *Cell[T]) unobserve(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, o := range c.observers {
		if o.id == id {
			c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
			return
		}
	}
}

// notify calls the primary listener and then every observer.
// Listeners are copied under the lock and invoked outside it so that a
// listener may write back into the cell.
func (c *Cell[T]) notify(value T) {
	c.mu.RLock()
	listener := c.listener
	observers := make([]observer[T], len(c.observers))
	copy(observers, c.observers)
	c.mu.RUnlock()

	if listener != nil {
		listener(value)
	}
	for _, o := range observers {
		o.fn(value)
	}
}

// Subscription is the handle of a listener registered with Observe.
type Subscription struct {
	id     uint64
	cancel func()
	once   sync.Once
}

// ID returns the handle's identifier. The zero Subscription has ID 0.
func (s *Subscription) ID() uint64 {
	return s.id
}

// Cancel removes the observer. Calling it more than once is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}
