package statecell

import (
	"context"
	"sync"
)

// Cell is a single-slot broadcast holder of the latest value of type T.
//
// A Cell created with New starts empty: subscribers receive nothing until the
// first Set. A Cell created with NewWith starts resolved, and every new
// subscriber immediately receives that value. In both cases subscribers only
// ever observe the most recent value, never buffered history.
type Cell[T any] struct {
	mu       sync.Mutex
	value    T
	hasValue bool
	nextID   int
	subs     map[int]chan T
}

// New creates an empty cell. Subscribers wait for the first Set.
func New[T any]() *Cell[T] {
	return &Cell[T]{subs: make(map[int]chan T)}
}

// NewWith creates a cell already holding value.
func NewWith[T any](value T) *Cell[T] {
	c := New[T]()
	c.value = value
	c.hasValue = true
	return c
}

// Set publishes value as the new current value and broadcasts it to all
// subscribers. It never blocks: a subscriber that has not consumed the
// previous value has it replaced by this one.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.hasValue = true
	for _, ch := range c.subs {
		deliver(ch, value)
	}
}

// Get returns the current value and whether one has ever been set.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.hasValue
}

// Subscribe registers a new observer. The returned channel immediately yields
// the current value if one exists, then every subsequent value, conflated to
// the latest. The subscription ends when ctx is cancelled; the channel is
// closed at that point.
func (c *Cell[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	if c.hasValue {
		deliver(ch, c.value)
	}
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		close(ch)
	}()

	return ch
}

// deliver places value into a one-slot channel, evicting an undelivered
// predecessor. The second send only races against the subscriber consuming,
// so dropping into the default branch means the slot was taken by a newer
// concurrent publisher, which is fine: latest wins.
func deliver[T any](ch chan T, value T) {
	select {
	case ch <- value:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- value:
	default:
	}
}
