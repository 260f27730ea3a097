package relay

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vmunix/jellyrelay/internal/jellyfin"
)

// Poller waits for a newly scanned file to show up in the server's
// latest items with enriched metadata. The server indexes a file before
// metadata providers fill in its description, so a non-empty overview
// is the readiness signal.
type Poller struct {
	server   MediaServer
	attempts int
	interval time.Duration
	log      *slog.Logger

	// sleep is swapped out in tests for an instant clock.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a poller with the given attempt budget.
func NewPoller(server MediaServer, attempts int, interval time.Duration, log *slog.Logger) *Poller {
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		server:   server,
		attempts: attempts,
		interval: interval,
		log:      log.With("component", "poller"),
		sleep:    sleepCtx,
	}
}

// Poll blocks until an item matching filename appears with a non-empty
// overview, or the attempt budget runs out (nil). It returns the item
// and the number of attempts used. Transport errors on individual
// attempts are logged and count as non-matching attempts.
func (p *Poller) Poll(ctx context.Context, userID, filename string) (*jellyfin.Item, int) {
	target := strings.ToLower(filename)

	for attempt := 1; attempt <= p.attempts; attempt++ {
		if err := p.sleep(ctx, p.interval); err != nil {
			p.log.Debug("poll cancelled", "file", filename, "attempt", attempt)
			return nil, attempt
		}

		items, err := p.server.GetLatestItems(ctx, userID, jellyfin.DefaultLatestLimit)
		if err != nil {
			p.log.Warn("poll attempt failed", "file", filename, "attempt", attempt, "error", err)
			continue
		}

		for i := range items {
			if itemMatches(&items[i], target) {
				p.log.Info("item ready", "file", filename, "item", items[i].Name, "attempts", attempt)
				return &items[i], attempt
			}
		}
	}
	return nil, p.attempts
}

// Attempts returns the configured attempt budget.
func (p *Poller) Attempts() int { return p.attempts }

// itemMatches checks the readiness condition: the target filename is a
// substring of the item's path or name, and the overview is populated.
func itemMatches(item *jellyfin.Item, target string) bool {
	if strings.TrimSpace(item.Overview) == "" {
		return false
	}
	return strings.Contains(strings.ToLower(item.Path), target) ||
		strings.Contains(strings.ToLower(item.Name), target)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
