// Package socketiosource provides the remote question source: a Socket.IO
// namespace that pushes the full question list in an event whenever the list
// changes on the server.
package socketiosource

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/quizgridgo/internal/ctxlog"
	"github.com/vk/quizgridgo/internal/model"
	"github.com/vk/quizgridgo/internal/source"
)

// Config describes the feed to subscribe to.
type Config struct {
	// URL is the Socket.IO endpoint, including path (e.g. wss://host/socket.io).
	URL string
	// Namespace is the Socket.IO namespace to join. Empty means the default.
	Namespace string
	// Event is the event name carrying question-list payloads.
	Event string
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Source connects to a Socket.IO feed and re-emits decoded question lists.
type Source struct {
	cfg  Config
	push *source.Push
}

// New creates a feed source. Nothing connects until Start.
func New(cfg Config) *Source {
	return &Source{cfg: cfg, push: source.NewPush()}
}

// Start dials the feed and begins translating events into list emissions. The
// connection is torn down when ctx is cancelled. Connection errors after
// startup are logged; the Socket.IO manager reconnects on its own.
func (s *Source) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("url", s.cfg.URL, "namespace", s.cfg.Namespace, "event", s.cfg.Event)

	parsedURL, err := url.Parse(s.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse feed URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	if s.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to question feed", "sid", io.Id())
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Warn("Question feed connection error", "error", fmt.Sprint(errs...))
	})

	io.On(types.EventName(s.cfg.Event), func(data ...any) {
		if len(data) == 0 {
			logger.Warn("Question feed event carried no payload, ignoring")
			return
		}
		list, err := DecodeList(data[0])
		if err != nil {
			logger.Warn("Failed to decode question feed payload, ignoring", "error", err)
			return
		}
		if s.push.Emit(list) {
			logger.Debug("Question feed emitted a new list.", "questions", len(list))
		}
	})

	io.Connect()

	go func() {
		<-ctx.Done()
		logger.Debug("Disconnecting question feed.", "reason", ctx.Err())
		io.Disconnect()
	}()

	return nil
}

// Subscribe implements source.Source.
func (s *Source) Subscribe(ctx context.Context) (<-chan model.List, error) {
	return s.push.Subscribe(ctx)
}
