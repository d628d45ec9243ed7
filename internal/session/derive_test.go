package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/quizgridgo/internal/model"
)

func TestDeriveCurrent_PendingBeforeListArrives(t *testing.T) {
	t.Parallel()

	state := NewState("some-session")

	res := DeriveCurrent(state)

	require.True(t, res.IsPending(), "an uninitialized list must derive to Pending, never an error")
}

func TestDeriveCurrent_NilStateIsPending(t *testing.T) {
	t.Parallel()

	res := DeriveCurrent(nil)

	require.True(t, res.IsPending())
}

func TestDeriveCurrent_EmptyInitializedListFails(t *testing.T) {
	t.Parallel()

	state := NewState("some-session")
	state.Initialized = true
	state.Questions = model.List{}

	res := DeriveCurrent(state)

	require.True(t, res.IsFailure())
	require.ErrorIs(t, res.Err(), ErrEmptyList)
}

// Known limitation: the derivation always surfaces the first question and has
// no advancement logic. This test pins that behavior down so a future change
// to real pagination is a conscious one.
func TestDeriveCurrent_AlwaysFirstQuestion(t *testing.T) {
	t.Parallel()

	state := NewState("some-session")
	state.Initialized = true
	state.Questions = model.List{
		{ID: "q1", Prompt: "First?"},
		{ID: "q2", Prompt: "Second?"},
		{ID: "q3", Prompt: "Third?"},
	}

	res := DeriveCurrent(state)

	require.True(t, res.IsSuccess())
	current, _ := res.Value()
	require.Equal(t, "q1", current.Question.ID)
	require.Equal(t, 0, current.Index)
}

func TestDeriveCurrent_IsPureGivenState(t *testing.T) {
	t.Parallel()

	state := NewState("some-session")
	state.Initialized = true
	state.Questions = model.List{{ID: "q1", Prompt: "First?"}}

	first := DeriveCurrent(state)
	second := DeriveCurrent(state)

	require.Equal(t, first, second, "derivation must be deterministic for the same state")
}

func TestNewIdentity_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[Identity]struct{})
	for range 100 {
		id, err := NewIdentity()
		require.NoError(t, err)
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "identities must be unique")
		seen[id] = struct{}{}
	}
}
