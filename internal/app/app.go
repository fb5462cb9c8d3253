package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/asmprep/internal/config"
	"github.com/vk/asmprep/internal/ctxlog"
	"github.com/vk/asmprep/internal/notify"
	"github.com/vk/asmprep/internal/toolchain"
)

// Notifier publishes the final status of a run.
type Notifier interface {
	Publish(ctx context.Context, status notify.Status) error
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	runner *toolchain.Runner

	newNotifier func(config.Notify) Notifier
}

// Option customises an App.
type Option func(*App)

// WithRunner replaces the toolchain runner, mainly to capture tool output.
func WithRunner(r *toolchain.Runner) Option {
	return func(a *App) { a.runner = r }
}

// WithNotifier replaces the socket.io publisher.
func WithNotifier(fn func(config.Notify) Notifier) Option {
	return func(a *App) { a.newNotifier = fn }
}

// NewApp is the constructor for the main application. Logs go to outW.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		runner: toolchain.NewRunner(),
		newNotifier: func(n config.Notify) Notifier {
			return notify.NewPublisher(n)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
