package app

import (
	"io"
	"log/slog"

	"github.com/vk/quizgridgo/internal/controller"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	controller *controller.Controller
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and session controller.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:       outW,
		logger:     logger,
		config:     config,
		controller: controller.New(),
	}
}

// Controller returns the application's session controller. This is primarily
// for testing.
func (a *App) Controller() *controller.Controller {
	return a.controller
}
