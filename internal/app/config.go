package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DeckPath     string        // path to a .hcl deck file or a directory of them
	PollInterval time.Duration // how often the deck path is re-checked for changes

	FeedURL       string // Socket.IO endpoint for a remote question feed
	FeedNamespace string
	FeedEvent     string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeckPath == "" && cfg.FeedURL == "" {
		return nil, errors.New("either a deck path or a feed URL is required")
	}
	if cfg.DeckPath != "" && cfg.FeedURL != "" {
		return nil, errors.New("deck path and feed URL are mutually exclusive")
	}
	if cfg.FeedURL != "" && cfg.FeedEvent == "" {
		cfg.FeedEvent = "questions"
	}

	return &cfg, nil
}
