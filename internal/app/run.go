package app

import (
	"context"
	"fmt"

	"github.com/vk/quizgridgo/internal/ctxlog"
	"github.com/vk/quizgridgo/internal/hclsource"
	"github.com/vk/quizgridgo/internal/socketiosource"
	"github.com/vk/quizgridgo/internal/source"
)

// Run executes the main application logic: it connects the configured
// question source to a fresh session and streams current-question updates
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	src, err := a.buildSource(ctx)
	if err != nil {
		return fmt.Errorf("failed to start question source: %w", err)
	}

	a.logger.Info("🚀 Beginning session...")
	ack := a.controller.BeginSession(ctx, src)

	for res := range ack.Subscribe(ctx) {
		if res.IsPending() {
			continue
		}
		if err := res.Err(); err != nil {
			return fmt.Errorf("session initialization failed: %w", err)
		}
		a.logger.Info("🏁 Session initialized.")
		break
	}

	a.streamQuestions(ctx)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// buildSource constructs the question source the config selects: a remote
// Socket.IO feed when a feed URL is set, otherwise the HCL deck path.
func (a *App) buildSource(ctx context.Context) (source.Source, error) {
	if a.config.FeedURL != "" {
		feed := socketiosource.New(socketiosource.Config{
			URL:       a.config.FeedURL,
			Namespace: a.config.FeedNamespace,
			Event:     a.config.FeedEvent,
		})
		if err := feed.Start(ctx); err != nil {
			return nil, err
		}
		a.logger.Info("Question feed connected.", "url", a.config.FeedURL)
		return feed, nil
	}

	deckSrc := hclsource.New(a.config.DeckPath, a.config.PollInterval)
	deck, err := deckSrc.Start(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Deck loaded.", "title", deck.Title, "questions", len(deck.Questions))
	return deckSrc, nil
}

// streamQuestions logs every change of the current question until ctx is
// cancelled.
func (a *App) streamQuestions(ctx context.Context) {
	for res := range a.controller.CurrentQuestion().Subscribe(ctx) {
		switch {
		case res.IsPending():
			a.logger.Info("⏳ Waiting for question list...")
		case res.IsFailure():
			a.logger.Warn("Current question unavailable.", "error", res.Err())
		default:
			current, _ := res.Value()
			a.logger.Info("❓ Current question", "id", current.Question.ID, "prompt", current.Question.Prompt)
			fmt.Fprintln(a.outW, current.Question.Prompt)
		}
	}
}
