package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/jellyrelay/internal/api/v1"
	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/events"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
	"github.com/vmunix/jellyrelay/internal/migrations"
	"github.com/vmunix/jellyrelay/internal/pushover"
	"github.com/vmunix/jellyrelay/internal/relay"
	"github.com/vmunix/jellyrelay/internal/server"
)

const (
	eventPruneInterval = time.Hour
	eventRetention     = 30 * 24 * time.Hour
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string, writeConfig bool) error {
	// Locate config
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			if !writeConfig {
				return fmt.Errorf("config: %w (run with -write-config to create one)", err)
			}
			discovered = config.DefaultPath()
		}
		configPath = discovered
	}

	if writeConfig {
		if err := config.WriteDefault(configPath); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("wrote %s\n", configPath)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	mgr := config.NewManager(configPath, cfg)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	if _, err := mgr.EnsureWebhookToken(); err != nil {
		return fmt.Errorf("webhook token: %w", err)
	}

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))

	// === Clients (optional - nil if not configured) ===
	var mediaServer relay.MediaServer
	if cfg.Jellyfin.URL != "" && cfg.Jellyfin.APIKey != "" {
		mediaServer = jellyfin.NewClient(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, logger.With("component", "jellyfin"))
	}

	var notifier relay.Notifier
	if cfg.Pushover.AppToken != "" && cfg.Pushover.UserKey != "" {
		notifier = pushover.NewClient(cfg.Pushover.AppToken, cfg.Pushover.UserKey)
	}

	engine := relay.NewEngine(mgr, mediaServer, notifier, bus, logger)

	// Resolve the poll user and library view ids up front when possible.
	if mediaServer != nil {
		syncCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if result, err := engine.SyncLibraries(syncCtx); err != nil {
			logger.Warn("startup library sync failed", "error", err)
		} else {
			logger.Info("library sync", "added", result.Added, "updated", result.Updated, "total", result.Total)
		}
		cancel()
	}

	// === HTTP Setup ===
	mux := http.NewServeMux()
	apiV1, err := v1.New(v1.ServerDeps{
		Config:   mgr,
		Engine:   engine,
		Server:   mediaServer,
		Notifier: notifier,
		Bus:      bus,
		EventLog: eventLog,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("relay starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"jellyfin", mediaServer != nil,
		"pushover", notifier != nil,
		"libraries", len(mgr.Current().Libraries),
		"log_level", cfg.Server.LogLevel,
	)

	httpSrv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}
	runner := server.NewRunner(httpSrv, engine, bus, eventLog, server.Config{
		ShutdownTimeout: 30 * time.Second,
		PruneInterval:   eventPruneInterval,
		RetainEvents:    eventRetention,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
