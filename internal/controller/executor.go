package controller

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/quizgridgo/internal/asyncresult"
	"github.com/vk/quizgridgo/internal/command"
	"github.com/vk/quizgridgo/internal/ctxlog"
	"github.com/vk/quizgridgo/internal/model"
	"github.com/vk/quizgridgo/internal/session"
	"github.com/vk/quizgridgo/internal/statecell"
)

// sessionRun holds everything owned by one session: its identity, its command
// queue, the executor's exclusive state, and the cells its effects publish to.
type sessionRun struct {
	id     session.Identity
	queue  chan command.Command
	cancel context.CancelFunc

	// results carries the derived current question; lists mirrors the latest
	// upstream emission for the combiner.
	results *statecell.Cell[QuestionResult]
	lists   *statecell.Cell[model.List]

	// state is touched only by the executor goroutine.
	state *session.State
}

// enqueue attempts a non-blocking submission to this run's queue. On
// rejection the command's sink, if any, resolves to Failure immediately.
func (r *sessionRun) enqueue(ctx context.Context, cmd command.Command) {
	select {
	case r.queue <- cmd:
	default:
		ctxlog.FromContext(ctx).Warn("Command queue saturated, rejecting command.",
			"session", r.id, "command", fmt.Sprintf("%T", cmd))
		if sink, ok := command.Sink(cmd); ok {
			sink.Set(asyncresult.Fail[asyncresult.Unit](ErrQueueSaturated))
		}
	}
}

// loop is the single-writer worker draining the queue. It applies one command
// at a time against the session state until the session is superseded.
func (r *sessionRun) loop(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).With("session", r.id)
	logger.Debug("Session executor started.")
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Session executor stopped.", "reason", ctx.Err())
			return
		case cmd := <-r.queue:
			r.apply(ctx, cmd)
		}
	}
}

// apply dispatches a single command. Faults raised while processing are
// caught here, converted to a Failure on the command's own sink, and never
// terminate the worker.
func (r *sessionRun) apply(ctx context.Context, cmd command.Command) {
	logger := ctxlog.FromContext(ctx).With("session", r.id, "command", fmt.Sprintf("%T", cmd))

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Command processing panicked.", "panic", rec)
			if sink, ok := command.Sink(cmd); ok {
				sink.Set(asyncresult.Fail[asyncresult.Unit](fmt.Errorf("command processing fault: %v", rec)))
			}
		}
	}()

	// Stale-session mismatch is not an error: a superseded session's commands
	// may still be draining and their effects must never surface here.
	if cmd.Session() != r.id {
		logger.Debug("Dropping command for stale session.", "stale_session", cmd.Session())
		return
	}

	switch c := cmd.(type) {
	case command.Initialize:
		r.state = session.NewState(r.id)
		r.recompute()
		logger.Debug("Session state initialized.")
		c.Sink.Set(asyncresult.Ok(asyncresult.Unit{}))

	case command.ReceiveQuestionList:
		if r.state == nil {
			logger.Debug("Question list arrived before initialization, dropping.")
			return
		}
		if r.state.Initialized && r.state.Questions.Equal(c.List) {
			// Guard against notify storms when the upstream re-emits an
			// unchanged list.
			logger.Debug("Question list unchanged, skipping re-derivation.")
			return
		}
		r.state.Questions = slices.Clone(c.List)
		r.state.Initialized = true
		r.recompute()
		logger.Debug("Question list stored.", "count", len(c.List))

	case command.RecomputeAndNotify:
		r.recompute()

	default:
		logger.Warn("Command variant not supported yet.")
		if sink, ok := command.Sink(cmd); ok {
			sink.Set(asyncresult.Fail[asyncresult.Unit](fmt.Errorf("%w: %T", command.ErrUnsupported, cmd)))
		}
	}
}

// recompute re-derives the current question from session state and publishes
// it to the results cell.
func (r *sessionRun) recompute() {
	r.results.Set(session.DeriveCurrent(r.state))
}
