package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vk/quizgridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("quizgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
QuizGridGo - A declarative, concurrency-first interactive question-session engine.

Usage:
  quizgridgo [options] [DECK_PATH]

Arguments:
  DECK_PATH
    Path to a single .hcl deck file or a directory containing .hcl deck files.

Options:
`)
		flagSet.PrintDefaults()
	}

	deckFlag := flagSet.String("deck", "", "Path to the deck file or directory.")
	dFlag := flagSet.String("d", "", "Path to the deck file or directory (shorthand).")
	pollFlag := flagSet.Duration("poll-interval", 2*time.Second, "How often the deck path is re-checked for changes.")
	feedURLFlag := flagSet.String("feed-url", "", "Socket.IO endpoint of a remote question feed. Mutually exclusive with a deck path.")
	feedNamespaceFlag := flagSet.String("feed-namespace", "", "Socket.IO namespace of the question feed.")
	feedEventFlag := flagSet.String("feed-event", "questions", "Event name carrying question-list payloads.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *deckFlag != "" {
		path = *deckFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Deck path determined.", "path", path)

	if path == "" && *feedURLFlag == "" {
		slog.Debug("No question source provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DeckPath:        path,
		PollInterval:    *pollFlag,
		FeedURL:         *feedURLFlag,
		FeedNamespace:   *feedNamespaceFlag,
		FeedEvent:       *feedEventFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
