package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/quizgridgo/internal/asyncresult"
	"github.com/vk/quizgridgo/internal/command"
	"github.com/vk/quizgridgo/internal/model"
	"github.com/vk/quizgridgo/internal/source"
)

func listOf(ids ...string) model.List {
	var list model.List
	for _, id := range ids {
		list = append(list, model.Question{ID: id, Prompt: "Prompt " + id})
	}
	return list
}

// waitFor drains an observable subscription until a value satisfies pred.
func waitFor[T any](t *testing.T, ch <-chan T, pred func(T) bool) T {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case v, ok := <-ch:
			require.True(t, ok, "subscription closed before a matching value arrived")
			if pred(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for a matching value")
			panic("unreachable")
		}
	}
}

func TestCurrentQuestion_FailsBeforeAnySession(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := New()

	// --- Act ---
	res, ok := c.CurrentQuestion().Get()

	// --- Assert ---
	require.True(t, ok, "the no-session cell must be resolved immediately")
	require.True(t, res.IsFailure())
	require.ErrorIs(t, res.Err(), ErrNoSession)
}

func TestSubmit_FailsWithoutBlockingWhenNoSessionEverBegan(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := New()
	ack := NewAck()

	// --- Act ---
	c.Submit(context.Background(), command.MoveNext{ID: "nobody", Sink: ack})

	// --- Assert ---
	res, ok := ack.Get()
	require.True(t, ok)
	require.True(t, res.IsFailure(), "submission without a session must resolve the sink synchronously")
	require.ErrorIs(t, res.Err(), ErrNoSession)
}

func TestBeginSession_DeliversFirstQuestion(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New()
	push := source.NewPush()
	push.Emit(listOf("q0", "q1", "q2"))

	// --- Act ---
	ack := c.BeginSession(ctx, push)

	// --- Assert ---
	initRes := waitFor(t, ack.Subscribe(ctx), func(r asyncresult.Result[asyncresult.Unit]) bool {
		return !r.IsPending()
	})
	require.True(t, initRes.IsSuccess(), "initialization should succeed: %v", initRes.Err())

	questionRes := waitFor(t, c.CurrentQuestion().Subscribe(ctx), func(r QuestionResult) bool {
		return r.IsSuccess()
	})
	current, _ := questionRes.Value()
	require.Equal(t, "q0", current.Question.ID, "the current question is always the first list entry")
	require.Equal(t, 0, current.Index)
}

func TestCurrentQuestion_PendingBeforeListArrives(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New()
	push := source.NewPush() // nothing emitted yet

	// --- Act ---
	c.BeginSession(ctx, push)

	// --- Assert ---
	// The first observable value after initialization is Pending: never a
	// Failure and never a stale Success.
	first := waitFor(t, c.CurrentQuestion().Subscribe(ctx), func(QuestionResult) bool {
		return true
	})
	require.True(t, first.IsPending(), "expected Pending before the upstream list arrives, got %v", first.Status())
}

func TestBeginSession_SecondSessionSupersedesFirst(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New()

	firstPush := source.NewPush()
	firstPush.Emit(listOf("old0", "old1"))
	c.BeginSession(ctx, firstPush)

	waitFor(t, c.CurrentQuestion().Subscribe(ctx), func(r QuestionResult) bool {
		return r.IsSuccess()
	})
	firstID, ok := c.SessionIdentity()
	require.True(t, ok)

	// --- Act ---
	secondPush := source.NewPush()
	c.BeginSession(ctx, secondPush)

	// The new session has no list yet, so the observable returns to Pending.
	sub := c.CurrentQuestion().Subscribe(ctx)
	waitFor(t, sub, func(r QuestionResult) bool { return r.IsPending() })

	// A command still tagged with the first session's identity arrives late.
	c.Submit(ctx, command.ReceiveQuestionList{ID: firstID, List: listOf("stale0")})

	secondPush.Emit(listOf("new0", "new1"))

	// --- Assert ---
	questionRes := waitFor(t, sub, func(r QuestionResult) bool { return r.IsSuccess() })
	current, _ := questionRes.Value()
	require.Equal(t, "new0", current.Question.ID, "only the second session's list may ever be observed")
}

func TestSubmit_ConcurrentCommandsAllApplied(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New()
	push := source.NewPush()
	ack := c.BeginSession(ctx, push)
	waitFor(t, ack.Subscribe(ctx), func(r asyncresult.Result[asyncresult.Unit]) bool {
		return r.IsSuccess()
	})
	id, ok := c.SessionIdentity()
	require.True(t, ok)

	// --- Act ---
	// N independent callers submit distinct lists concurrently.
	const callers = 20
	submitted := make([]model.List, callers)
	var wg sync.WaitGroup
	for i := range callers {
		submitted[i] = listOf("q" + string(rune('a'+i)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Submit(ctx, command.ReceiveQuestionList{ID: id, List: submitted[i]})
		}()
	}
	wg.Wait()

	// A sentinel submitted after all callers finished is, by FIFO, processed
	// after every one of them.
	sentinel := NewAck()
	c.Submit(ctx, command.MoveNext{ID: id, Sink: sentinel})
	waitFor(t, sentinel.Subscribe(ctx), func(r asyncresult.Result[asyncresult.Unit]) bool {
		return !r.IsPending()
	})

	// --- Assert ---
	// No torn state: the observed question is exactly the head of one of the
	// submitted lists.
	res, ok := c.CurrentQuestion().Get()
	require.True(t, ok)
	require.True(t, res.IsSuccess())
	current, _ := res.Value()
	found := false
	for _, list := range submitted {
		if list[0].ID == current.Question.ID {
			found = true
			break
		}
	}
	require.True(t, found, "observed question %q must come from a submitted list", current.Question.ID)
}

func TestSubmit_ReservedCommandResolvesUnsupported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New()
	push := source.NewPush()
	ack := c.BeginSession(ctx, push)
	waitFor(t, ack.Subscribe(ctx), func(r asyncresult.Result[asyncresult.Unit]) bool {
		return r.IsSuccess()
	})
	id, _ := c.SessionIdentity()

	// --- Act / Assert ---
	reserved := []command.Command{
		command.FinishSession{ID: id, Sink: NewAck()},
		command.MoveNext{ID: id, Sink: NewAck()},
		command.MovePrevious{ID: id, Sink: NewAck()},
		command.SubmitAnswer{ID: id, Answer: "42", Sink: NewAck()},
		command.SavePartial{ID: id, Sink: NewAck()},
		command.SaveFull{ID: id, Sink: NewAck()},
	}
	for _, cmd := range reserved {
		c.Submit(ctx, cmd)
		sink, _ := command.Sink(cmd)
		res := waitFor(t, sink.Subscribe(ctx), func(r asyncresult.Result[asyncresult.Unit]) bool {
			return !r.IsPending()
		})
		require.True(t, res.IsFailure())
		require.ErrorIs(t, res.Err(), command.ErrUnsupported,
			"reserved variants must fail with the distinct unsupported error, not a processing fault")
	}

	// The worker must still be alive after a run of unsupported commands.
	push.Emit(listOf("q0"))
	questionRes := waitFor(t, c.CurrentQuestion().Subscribe(ctx), func(r QuestionResult) bool {
		return r.IsSuccess()
	})
	current, _ := questionRes.Value()
	require.Equal(t, "q0", current.Question.ID)
}
