package socketiosource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeList_MapPayload(t *testing.T) {
	t.Parallel()

	// Socket.IO delivers JSON payloads as []any of map[string]any.
	payload := []any{
		map[string]any{
			"id":          "q1",
			"prompt":      "How did you hear about us?",
			"answer_type": "string",
			"options":     []any{"search", "friend"},
		},
		map[string]any{
			"id":     "q2",
			"prompt": "Years of experience?",
		},
	}

	list, err := DecodeList(payload)

	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "q1", list[0].ID)
	require.Equal(t, []string{"search", "friend"}, list[0].Options)
	require.Equal(t, "string", list[1].AnswerType, "answer type defaults to string")
}

func TestDecodeList_EmptyArray(t *testing.T) {
	t.Parallel()

	list, err := DecodeList([]any{})

	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDecodeList_RejectsNonArrayPayload(t *testing.T) {
	t.Parallel()

	_, err := DecodeList(map[string]any{"prompt": "not an array"})

	require.Error(t, err)
	require.ErrorContains(t, err, "not a question array")
}

func TestDecodeList_RejectsQuestionWithoutPrompt(t *testing.T) {
	t.Parallel()

	_, err := DecodeList([]any{map[string]any{"id": "q1"}})

	require.Error(t, err)
	require.ErrorContains(t, err, "has no prompt")
}

func TestDecodeList_RejectsUnserializablePayload(t *testing.T) {
	t.Parallel()

	_, err := DecodeList(make(chan int))

	require.Error(t, err)
	require.ErrorContains(t, err, "not serializable")
}
