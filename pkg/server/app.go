package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"btcwave/internal/usecase"
	"btcwave/pkg/config"
	"btcwave/pkg/http"
	"btcwave/pkg/logger"
)

// App ties the analysis pipeline to its two delivery modes: a one-shot
// console report, or a long-running HTTP server exposing the same
// analysis on demand.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	analyzer *usecase.Analyzer
	handler  http.Handler
	closers  []func() error
}

type AppOption func(*App)

// WithCloser registers a resource to release on shutdown.
func WithCloser(fn func() error) AppOption {
	return func(a *App) { a.closers = append(a.closers, fn) }
}

func NewApp(cfg *config.Config, log *logger.Logger, analyzer *usecase.Analyzer, handler http.Handler, opts ...AppOption) *App {
	a := &App{
		cfg:      cfg,
		log:      log,
		analyzer: analyzer,
		handler:  handler,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the app in the requested mode and blocks until done.
func (a *App) Run(ctx context.Context, serve bool) error {
	defer a.close()

	if !serve {
		return a.runOnce(ctx)
	}
	return a.serve(ctx)
}

func (a *App) runOnce(ctx context.Context) error {
	report, err := a.analyzer.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(report.Text())
	return nil
}

func (a *App) serve(ctx context.Context) error {
	srv := http.NewServer(a.handler,
		http.WithPort(a.cfg.Server.Port),
		http.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	a.log.Info("serving analysis", logger.Int("port", a.cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		a.log.Info("shutting down", logger.String("signal", sig.String()))
	case <-ctx.Done():
		a.log.Info("shutting down", logger.String("reason", "context canceled"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func (a *App) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.log.Warn("close failed", logger.Error(err))
		}
	}
}
