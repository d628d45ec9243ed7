package hclsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/quizgridgo/internal/model"
)

func TestSource_StartEmitsInitialList(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeDeck(t, map[string]string{
		"main.hcl": `question "q1" { prompt = "Initial?" }`,
	})
	src := New(dir, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Act ---
	deck, err := src.Start(ctx)
	require.NoError(t, err)

	ch, err := src.Subscribe(ctx)
	require.NoError(t, err)

	// --- Assert ---
	require.Len(t, deck.Questions, 1)
	select {
	case list := <-ch:
		require.Equal(t, "q1", list[0].ID, "a subscriber must immediately see the initial list")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the initial emission")
	}
}

func TestSource_StartFailsSynchronouslyOnBadDeck(t *testing.T) {
	t.Parallel()

	dir := writeDeck(t, map[string]string{
		"bad.hcl": `question "q1" { prompt = `,
	})
	src := New(dir, 50*time.Millisecond)

	_, err := src.Start(context.Background())

	require.Error(t, err)
	require.ErrorContains(t, err, "initial deck load")
}

func TestSource_ReemitsOnlyWhenDeckChanges(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeDeck(t, map[string]string{
		"main.hcl": `question "q1" { prompt = "Version one?" }`,
	})
	src := New(dir, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := src.Start(ctx)
	require.NoError(t, err)

	ch, err := src.Subscribe(ctx)
	require.NoError(t, err)

	first := waitForList(t, ch)
	require.Equal(t, "Version one?", first[0].Prompt)

	// Several poll cycles with an unchanged deck must stay silent.
	select {
	case list := <-ch:
		t.Fatalf("unchanged deck must not re-emit, got %d questions", len(list))
	case <-time.After(150 * time.Millisecond):
	}

	// --- Act ---
	path := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`question "q1" { prompt = "Version two?" }`), 0644))

	// --- Assert ---
	changed := waitForList(t, ch)
	require.Equal(t, "Version two?", changed[0].Prompt)
}

func waitForList(t *testing.T, ch <-chan model.List) model.List {
	t.Helper()
	select {
	case list := <-ch:
		return list
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a list emission")
		panic("unreachable")
	}
}
