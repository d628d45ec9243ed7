// Package hclsource provides the file-backed question source: decks declared
// in .hcl files, reloaded on an interval, re-emitted only when their content
// changes.
package hclsource

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/quizgridgo/internal/ctxlog"
	"github.com/vk/quizgridgo/internal/model"
	"github.com/vk/quizgridgo/internal/source"
)

// defaultPollInterval is used when the caller passes a non-positive interval.
const defaultPollInterval = 2 * time.Second

// Source watches a deck path and pushes the question list to subscribers
// whenever a reload produces a different list.
type Source struct {
	path     string
	interval time.Duration
	push     *source.Push
}

// New creates a deck source for the given path. Nothing is loaded until Start.
func New(path string, interval time.Duration) *Source {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Source{
		path:     path,
		interval: interval,
		push:     source.NewPush(),
	}
}

// Start loads the deck once, surfacing load errors synchronously, then keeps
// polling the path until ctx is cancelled. Reload failures after a successful
// start are logged and skipped; the previously emitted list stays current.
func (s *Source) Start(ctx context.Context) (*Deck, error) {
	deck, err := Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("initial deck load: %w", err)
	}
	s.push.Emit(deck.Questions)

	go s.poll(ctx)
	return deck, nil
}

// Subscribe implements source.Source.
func (s *Source) Subscribe(ctx context.Context) (<-chan model.List, error) {
	return s.push.Subscribe(ctx)
}

func (s *Source) poll(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).With("deck_path", s.path)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Deck polling stopped.", "reason", ctx.Err())
			return
		case <-ticker.C:
			deck, err := Load(s.path)
			if err != nil {
				logger.Warn("Deck reload failed, keeping previous list.", "error", err)
				continue
			}
			if s.push.Emit(deck.Questions) {
				logger.Info("Deck changed, re-emitting question list.", "questions", len(deck.Questions))
			}
		}
	}
}
