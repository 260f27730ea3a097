// Package server manages the process lifecycle: HTTP serving, background
// maintenance, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/jellyrelay/internal/events"
	"github.com/vmunix/jellyrelay/internal/relay"
)

// Config for the runner.
type Config struct {
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration
	// PruneInterval is how often the event log is pruned. Zero disables
	// pruning.
	PruneInterval time.Duration
	// RetainEvents is how long logged events are kept.
	RetainEvents time.Duration
}

// Runner ties the HTTP server and background maintenance together. Run
// blocks until the context is canceled, then drains in-flight relay work
// before returning.
type Runner struct {
	httpSrv  *http.Server
	engine   *relay.Engine
	bus      *events.Bus
	eventLog *events.EventLog
	config   Config
	logger   *slog.Logger
}

// NewRunner creates a new runner. bus and eventLog may be nil.
func NewRunner(httpSrv *http.Server, engine *relay.Engine, bus *events.Bus, eventLog *events.EventLog, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		httpSrv:  httpSrv,
		engine:   engine,
		bus:      bus,
		eventLog: eventLog,
		config:   cfg,
		logger:   logger.With("component", "server"),
	}
}

// Run starts the HTTP server and maintenance loops. It blocks until the
// context is canceled or the listener fails.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("listening", "addr", r.httpSrv.Addr)
		if err := r.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if r.eventLog != nil && r.config.PruneInterval > 0 {
		g.Go(func() error {
			r.pruneLoop(ctx)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		r.shutdown()
		return ctx.Err()
	})

	return g.Wait()
}

func (r *Runner) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.eventLog.Prune(r.config.RetainEvents)
			if err != nil {
				r.logger.Warn("event log prune failed", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Debug("pruned events", "count", n)
			}
		}
	}
}

// shutdown stops accepting requests, waits for in-flight relay tasks to
// finish, and closes the event bus.
func (r *Runner) shutdown() {
	r.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
	defer cancel()
	if err := r.httpSrv.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("http shutdown", "error", err)
	}

	if r.engine != nil {
		r.engine.Shutdown()
	}
	if r.bus != nil {
		r.bus.Close()
	}
	r.logger.Info("stopped")
}
