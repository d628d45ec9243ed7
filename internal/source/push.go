package source

import (
	"context"
	"sync"

	"github.com/vk/quizgridgo/internal/model"
	"github.com/vk/quizgridgo/internal/statecell"
)

// Push is the in-process hub concrete sources publish through. It fans every
// accepted emission out to all subscribers, replays the latest list to late
// subscribers, and drops emissions whose list equals the previous one.
type Push struct {
	mu   sync.Mutex
	last model.List
	seen bool
	cell *statecell.Cell[model.List]
}

// NewPush creates an empty hub with no list emitted yet.
func NewPush() *Push {
	return &Push{cell: statecell.New[model.List]()}
}

// Emit publishes list to all subscribers. A list equal in value to the
// previously emitted one is dropped, and Emit reports whether the emission was
// accepted.
func (p *Push) Emit(list model.List) bool {
	p.mu.Lock()
	if p.seen && p.last.Equal(list) {
		p.mu.Unlock()
		return false
	}
	p.last = list
	p.seen = true
	p.mu.Unlock()

	p.cell.Set(list)
	return true
}

// Subscribe implements Source.
func (p *Push) Subscribe(ctx context.Context) (<-chan model.List, error) {
	return p.cell.Subscribe(ctx), nil
}
