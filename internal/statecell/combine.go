package statecell

import (
	"context"
	"sync"
)

// Combiner derives a single output cell from two input cells. Whenever either
// input publishes, the merge function is re-evaluated over the latest value of
// both inputs and the result is published to the output.
//
// The inputs can be swapped wholesale with Bind. The output cell is allocated
// once and survives every rebinding, so downstream subscribers keep receiving
// updates seamlessly after the inputs change.
type Combiner[A, B, C any] struct {
	merge func(A, B) C
	out   *Cell[C]

	mu     sync.Mutex
	cancel context.CancelFunc
	a      A
	b      B
	// epoch guards against emissions from a superseded binding racing with a
	// newer one after their subscription context is cancelled.
	epoch int
}

// NewCombiner creates a combiner with no inputs bound yet. The output cell
// stays empty until the first Bind delivers an input value.
func NewCombiner[A, B, C any](merge func(A, B) C) *Combiner[A, B, C] {
	return &Combiner[A, B, C]{
		merge: merge,
		out:   New[C](),
	}
}

// Out returns the combined output cell. The same cell is returned for the
// lifetime of the combiner.
func (m *Combiner[A, B, C]) Out() *Cell[C] {
	return m.out
}

// Bind subscribes the combiner to a new pair of input cells, replacing any
// previous pair. Emissions from the previous pair stop feeding the output.
// The latest values seen so far are reset, so the output reflects only the
// new inputs.
func (m *Combiner[A, B, C]) Bind(a *Cell[A], b *Cell[B]) {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = cancel
	m.epoch++
	epoch := m.epoch
	var zeroA A
	var zeroB B
	m.a = zeroA
	m.b = zeroB
	m.mu.Unlock()

	chA := a.Subscribe(ctx)
	chB := b.Subscribe(ctx)

	go func() {
		for va := range chA {
			m.update(epoch, func() { m.a = va })
		}
	}()
	go func() {
		for vb := range chB {
			m.update(epoch, func() { m.b = vb })
		}
	}()
}

// update applies a latest-value mutation and republishes the merged result,
// unless the binding that produced it has been superseded.
func (m *Combiner[A, B, C]) update(epoch int, apply func()) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	apply()
	merged := m.merge(m.a, m.b)
	m.mu.Unlock()

	m.out.Set(merged)
}
