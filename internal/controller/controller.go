// Package controller is the public entry point of the session engine. It
// starts sessions, accepts commands, and exposes the current question as an
// always-current observable.
//
// # Concurrency Model
//
// Each session owns exactly one executor goroutine fed by a multi-producer
// FIFO queue. All session-state mutation happens on that goroutine, so the
// state itself needs no locking; mutual exclusion is structural. Submission
// is non-blocking: callers either get their command accepted or see an
// immediate Failure on the command's ack sink, never a stall.
//
// Starting a new session supersedes the previous one. The old queue is
// abandoned rather than drained to a stop; commands still tagged with the old
// identity are filtered out by the executor, so their effects never reach the
// new session's cells.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/quizgridgo/internal/asyncresult"
	"github.com/vk/quizgridgo/internal/command"
	"github.com/vk/quizgridgo/internal/ctxlog"
	"github.com/vk/quizgridgo/internal/model"
	"github.com/vk/quizgridgo/internal/session"
	"github.com/vk/quizgridgo/internal/source"
	"github.com/vk/quizgridgo/internal/statecell"
)

var (
	// ErrNoSession is returned on every observable when an operation is
	// attempted before any session has begun.
	ErrNoSession = errors.New("session not initialized")

	// ErrQueueSaturated indicates the non-blocking enqueue attempt failed
	// because the command queue is full.
	ErrQueueSaturated = errors.New("command queue saturated")
)

// queueCapacity bounds the per-session command queue. Submission fails fast
// when the queue is saturated instead of blocking the caller.
const queueCapacity = 1024

// QuestionResult is the observable value type of CurrentQuestion.
type QuestionResult = asyncresult.Result[model.EphemeralQuestion]

// Controller manages at most one active session at a time.
type Controller struct {
	mu       sync.Mutex
	active   *sessionRun
	combiner *statecell.Combiner[model.List, QuestionResult, QuestionResult]
}

// New creates a controller with no active session.
func New() *Controller {
	return &Controller{
		// The merged value is the latest derived question; a list emission
		// triggers re-evaluation but does not override the executor's
		// derivation.
		combiner: statecell.NewCombiner(func(_ model.List, res QuestionResult) QuestionResult {
			return res
		}),
	}
}

// NewAck allocates an ack sink in the Pending state, ready to attach to a
// command.
func NewAck() command.AckSink {
	return statecell.NewWith(asyncresult.Pending[asyncresult.Unit]())
}

// BeginSession mints a new session identity, wires the source into it, and
// submits the initialization command. The returned cell resolves to Success
// once initialization has run, or Failure if it could not.
//
// The previous session, if any, is superseded immediately: its executor stops
// and its observable outputs are disconnected from CurrentQuestion.
func (c *Controller) BeginSession(ctx context.Context, src source.Source) command.AckSink {
	logger := ctxlog.FromContext(ctx)
	ack := NewAck()

	id, err := session.NewIdentity()
	if err != nil {
		ack.Set(asyncresult.Fail[asyncresult.Unit](err))
		return ack
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &sessionRun{
		id:      id,
		queue:   make(chan command.Command, queueCapacity),
		results: statecell.New[QuestionResult](),
		lists:   statecell.New[model.List](),
		cancel:  cancel,
	}

	c.mu.Lock()
	old := c.active
	c.active = run
	c.mu.Unlock()
	if old != nil {
		logger.Debug("Superseding previous session.", "old_session", old.id, "new_session", id)
		old.cancel()
	}

	// Rebind the combined observable to the fresh cells. Existing subscribers
	// of CurrentQuestion keep their subscription and start seeing the new
	// session's values.
	c.combiner.Bind(run.lists, run.results)

	go run.loop(runCtx)

	// Subscribe before Initialize per the session contract, but only start
	// forwarding after Initialize is enqueued so the executor sees it first.
	listCh, err := src.Subscribe(runCtx)
	if err != nil {
		ack.Set(asyncresult.Fail[asyncresult.Unit](fmt.Errorf("subscribe question source: %w", err)))
		return ack
	}

	run.enqueue(ctx, command.Initialize{ID: id, Sink: ack})

	go func() {
		for list := range listCh {
			run.lists.Set(list)
			run.enqueue(runCtx, command.ReceiveQuestionList{ID: id, List: list})
		}
	}()

	return ack
}

// CurrentQuestion returns the observable merging the latest question-list
// state with the latest derived question. Before any session has begun the
// returned cell is already resolved to a Failure.
func (c *Controller) CurrentQuestion() *statecell.Cell[QuestionResult] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return statecell.NewWith(asyncresult.Fail[model.EphemeralQuestion](ErrNoSession))
	}
	return c.combiner.Out()
}

// Submit enqueues a command for the active session without blocking. When no
// session has begun, or the queue rejects the command, the command's sink (if
// any) resolves immediately to Failure and Submit returns.
func (c *Controller) Submit(ctx context.Context, cmd command.Command) {
	c.mu.Lock()
	run := c.active
	c.mu.Unlock()

	if run == nil {
		if sink, ok := command.Sink(cmd); ok {
			sink.Set(asyncresult.Fail[asyncresult.Unit](ErrNoSession))
		}
		ctxlog.FromContext(ctx).Debug("Command submitted with no active session.", "command", fmt.Sprintf("%T", cmd))
		return
	}
	run.enqueue(ctx, cmd)
}

// SessionIdentity returns the identity of the active session, or false when
// no session has begun. Callers use it to tag commands for Submit.
func (c *Controller) SessionIdentity() (session.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return "", false
	}
	return c.active.id, true
}
