package relay

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/events"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
	"github.com/vmunix/jellyrelay/internal/pushover"
)

// Engine sequences the pipeline for each accepted file path: resolve
// library, trigger scan, poll for metadata, route, format, dispatch.
// One goroutine runs per accepted path; a weighted semaphore caps how
// many polls are in flight at once.
type Engine struct {
	cfg      *config.Manager
	server   MediaServer // nil when the media server is unconfigured
	notifier Notifier    // nil when the notifier is unconfigured
	bus      *events.Bus
	dedup    *Dedup
	sem      *semaphore.Weighted
	log      *slog.Logger

	// newPoller is swapped out in tests for an instant clock.
	newPoller func(server MediaServer, attempts int, interval time.Duration, log *slog.Logger) *Poller

	// baseCtx is the lifetime of background tasks; Shutdown cancels it.
	baseCtx     context.Context
	cancelTasks context.CancelFunc

	wg       sync.WaitGroup
	inFlight atomic.Int64
}

// NewEngine builds the relay engine. server and notifier may be nil;
// tasks abort at the config gate or skip dispatch respectively.
func NewEngine(cfg *config.Manager, server MediaServer, notifier Notifier, bus *events.Bus, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	rc := cfg.Current().Relay
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Engine{
		cfg:         cfg,
		server:      server,
		notifier:    notifier,
		bus:         bus,
		dedup:       NewDedup(time.Duration(rc.DedupWindowSeconds) * time.Second),
		sem:         semaphore.NewWeighted(int64(rc.MaxInFlight)),
		log:         log.With("component", "relay"),
		newPoller:   NewPoller,
		baseCtx:     baseCtx,
		cancelTasks: cancel,
	}
}

// Dedup exposes the dedup cache for status reporting.
func (e *Engine) Dedup() *Dedup { return e.dedup }

// InFlight reports the number of tasks currently queued or running.
func (e *Engine) InFlight() int { return int(e.inFlight.Load()) }

// Submit runs intake for a webhook payload: extract paths, filter
// non-video files, dedup, and spawn one background task per accepted
// path. It returns the number of accepted paths.
func (e *Engine) Submit(ctx context.Context, payload *WebhookPayload) int {
	paths := payload.FilePaths()

	e.publish(ctx, &events.WebhookReceived{
		BaseEvent: events.NewBaseEvent(events.EventWebhookReceived, events.EntityWebhook, payload.Source()),
		Source:    payload.Source(),
		MediaType: payload.MediaType(),
		FileCount: len(paths),
	})

	accepted := 0
	for _, p := range paths {
		if !IsVideoFile(p) {
			e.log.Info("ignoring non-video file", "path", p)
			continue
		}
		if !e.dedup.ShouldProcess(p) {
			age, _ := e.dedup.Age(p)
			e.log.Info("duplicate event suppressed", "path", p, "age", age)
			e.publish(ctx, &events.FileDuplicate{
				BaseEvent:  events.NewBaseEvent(events.EventFileDuplicate, events.EntityFile, p),
				Path:       p,
				AgeSeconds: age.Seconds(),
			})
			continue
		}

		e.log.Info("new file accepted", "path", p, "upgrade", payload.IsUpgrade)
		e.publish(ctx, &events.FileAccepted{
			BaseEvent: events.NewBaseEvent(events.EventFileAccepted, events.EntityFile, p),
			Path:      p,
			MediaType: payload.MediaType(),
		})

		accepted++
		e.spawn(p, payload.IsUpgrade)
	}
	return accepted
}

// spawn starts the per-path pipeline task. The task acquires a
// semaphore slot before doing any work so webhook bursts queue instead
// of flooding the media server.
func (e *Engine) spawn(path string, isUpgrade bool) {
	e.wg.Add(1)
	e.inFlight.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.inFlight.Add(-1)

		// Tasks outlive the webhook request; they run on the engine's
		// own context and stop when Shutdown cancels it.
		ctx := e.baseCtx
		if err := e.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer e.sem.Release(1)

		e.handleNewFile(ctx, path, isUpgrade)
	}()
}

// Wait blocks until all in-flight tasks finish. Used by tests.
func (e *Engine) Wait() { e.wg.Wait() }

// Shutdown cancels in-flight tasks and waits for them to unwind.
func (e *Engine) Shutdown() {
	e.cancelTasks()
	e.wg.Wait()
}

// handleNewFile is the pipeline state machine for one file path.
func (e *Engine) handleNewFile(ctx context.Context, path string, isUpgrade bool) {
	cfg := e.cfg.Current()

	// Config gate: a reachable server and a cached user id are hard
	// preconditions. No retry.
	if e.server == nil || !cfg.JellyfinReady() {
		e.log.Warn("media server not configured, dropping file", "path", path)
		return
	}
	userID := cfg.Jellyfin.UserID

	views := e.currentViews(ctx, userID)

	// Scan stage. Failures degrade to a full-server refresh; a
	// disabled scan still proceeds to polling.
	libraryID, libraryName, lib := ResolveTargetLibrary(path, cfg.Libraries, views)
	scanEnabled := lib == nil || lib.ScanEnabled
	if scanEnabled {
		e.triggerScan(ctx, libraryID, libraryName, path)
	} else {
		e.log.Info("scan disabled for library", "library", libraryName, "path", path)
	}

	// Poll stage.
	rc := cfg.Relay
	poller := e.newPoller(e.server, rc.PollAttempts, time.Duration(rc.PollIntervalSeconds)*time.Second, e.log)
	item, attempts := poller.Poll(ctx, userID, filepath.Base(path))
	if item == nil {
		e.log.Warn("metadata never appeared, skipping notification", "path", path)
		e.publish(ctx, &events.PollTimeout{
			BaseEvent: events.NewBaseEvent(events.EventPollTimeout, events.EntityFile, path),
			Path:      path,
			Attempts:  attempts,
		})
		return
	}
	e.publish(ctx, &events.PollMatched{
		BaseEvent: events.NewBaseEvent(events.EventPollMatched, events.EntityFile, path),
		Path:      path,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Attempts:  attempts,
	})

	// Notify stage.
	e.notify(ctx, item, path, userID, isUpgrade, views)
}

// currentViews fetches live server views; a transport failure logs and
// returns nil so resolution falls open to the global fallback.
func (e *Engine) currentViews(ctx context.Context, userID string) []jellyfin.View {
	views, err := e.server.GetViews(ctx, userID)
	if err != nil {
		e.log.Warn("fetching views failed, using global fallback", "error", err)
		return nil
	}
	return views
}

func (e *Engine) triggerScan(ctx context.Context, libraryID, libraryName, path string) {
	var err error
	if libraryID != "" {
		e.log.Info("triggering library scan", "library", libraryName, "path", path)
		err = e.server.RefreshLibrary(ctx, libraryID)
	} else {
		e.log.Info("triggering full library scan", "path", path)
		err = e.server.RefreshAllLibraries(ctx)
	}
	if err != nil {
		e.log.Warn("scan trigger failed", "library", libraryName, "error", err)
		return
	}
	e.publish(ctx, &events.ScanTriggered{
		BaseEvent: events.NewBaseEvent(events.EventScanTriggered, events.EntityFile, path),
		Library:   libraryName,
		LibraryID: libraryID,
		Path:      path,
	})
}

func (e *Engine) notify(ctx context.Context, item *jellyfin.Item, path, userID string, isUpgrade bool, views []jellyfin.View) {
	cfg := e.cfg.Current()

	router := NewRouter(e.server, e.log)
	decision := router.Resolve(ctx, item, path, userID, cfg.Libraries, views)
	if !decision.NotifyEnabled {
		e.log.Info("notification disabled for library",
			"item", item.Name, "library", decision.Library, "match", decision.Kind.String())
		e.publish(ctx, &events.NotifySkipped{
			BaseEvent: events.NewBaseEvent(events.EventNotifySkipped, events.EntityFile, path),
			Path:      path,
			Reason:    "library disabled: " + decision.Library,
		})
		return
	}
	if e.notifier == nil {
		e.log.Warn("notifier not configured, skipping dispatch", "item", item.Name)
		e.publish(ctx, &events.NotifySkipped{
			BaseEvent: events.NewBaseEvent(events.EventNotifySkipped, events.EntityFile, path),
			Path:      path,
			Reason:    "notifier not configured",
		})
		return
	}

	mediaType := "episode"
	if item.IsMovie() {
		mediaType = "movie"
	}
	opts := cfg.Options(mediaType)

	title := FormatTitle(item, isUpgrade, opts)
	body := FormatBody(item, path, opts, "")

	var image []byte
	if opts.IncludePoster {
		data, err := e.server.GetItemImage(ctx, item.PosterItemID())
		if err != nil {
			e.log.Warn("poster fetch failed", "item", item.Name, "error", err)
		} else {
			image = data
		}
	}

	msg := pushover.Message{
		Title:    title,
		Body:     body,
		Image:    image,
		Device:   decision.Device,
		Priority: decision.Priority,
	}
	if err := e.notifier.Send(ctx, msg); err != nil {
		e.log.Error("notification dispatch failed", "item", item.Name, "error", err)
		return
	}

	e.log.Info("notification sent",
		"item", item.Name, "library", decision.Library, "match", decision.Kind.String())
	e.publish(ctx, &events.NotifySent{
		BaseEvent: events.NewBaseEvent(events.EventNotifySent, events.EntityFile, path),
		Path:      path,
		Title:     title,
		Library:   decision.Library,
		Device:    decision.Device,
	})
}

func (e *Engine) publish(ctx context.Context, ev events.Event) {
	if e.bus == nil {
		return
	}
	_ = e.bus.Publish(ctx, ev)
}
