package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/events"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
	"github.com/vmunix/jellyrelay/internal/pushover"
)

// suggestionThreshold is the minimum similarity for proposing a view
// as the intended match for an orphaned library entry.
const suggestionThreshold = 0.7

// Suggestion pairs a configured library that matches no server view
// with the closest-named view, so a rename typo can be surfaced
// instead of silently dropping the entry.
type Suggestion struct {
	Library     string  `json:"library"`
	ClosestView string  `json:"closest_view"`
	Score       float64 `json:"score"`
}

// SyncResult summarizes a library sync run.
type SyncResult struct {
	Added       int          `json:"added"`
	Updated     int          `json:"updated"`
	Total       int          `json:"total"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// ErrServerUnconfigured is returned by operations that need a media
// server connection when none is configured.
var ErrServerUnconfigured = errors.New("media server not configured")

// ErrNotifierUnconfigured is returned by test dispatch when no
// notifier credentials are configured.
var ErrNotifierUnconfigured = errors.New("notifier not configured")

// SyncLibraries pulls views from the media server and reconciles the
// configured library table: new views are appended with defaults,
// known views get their cached id refreshed. The first user's id is
// cached when none is set. Config libraries matching no view produce
// rename suggestions.
func (e *Engine) SyncLibraries(ctx context.Context) (*SyncResult, error) {
	if e.server == nil {
		return nil, ErrServerUnconfigured
	}

	userID := e.cfg.Current().Jellyfin.UserID
	if userID == "" {
		users, err := e.server.GetUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching users: %w", err)
		}
		if len(users) == 0 {
			return nil, errors.New("media server reported no users")
		}
		userID = users[0].ID
		e.log.Info("cached media server user", "user", users[0].Name)
	}

	views, err := e.server.GetViews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching views: %w", err)
	}

	result := &SyncResult{}
	err = e.cfg.Update(func(cfg *config.Config) error {
		cfg.Jellyfin.UserID = userID
		for _, v := range views {
			if lib := cfg.Library(v.Name); lib != nil {
				if lib.ID != v.ID {
					lib.ID = v.ID
					result.Updated++
				}
				continue
			}
			cfg.Libraries = append(cfg.Libraries, config.Library{
				Name:          v.Name,
				ScanEnabled:   true,
				NotifyEnabled: true,
				ID:            v.ID,
			})
			result.Added++
		}
		result.Total = len(cfg.Libraries)
		result.Suggestions = suggestRenames(cfg.Libraries, views)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("library sync complete",
		"added", result.Added, "updated", result.Updated, "total", result.Total)
	e.publish(ctx, &events.LibrarySynced{
		BaseEvent: events.NewBaseEvent(events.EventLibrarySynced, events.EntityLibrary, "all"),
		Added:     result.Added,
		Updated:   result.Updated,
		Total:     result.Total,
	})
	return result, nil
}

// suggestRenames finds, for each configured library that names no
// current view, the closest view by Jaro-Winkler similarity.
func suggestRenames(libraries []config.Library, views []jellyfin.View) []Suggestion {
	viewNames := make(map[string]bool, len(views))
	for _, v := range views {
		viewNames[v.Name] = true
	}

	var suggestions []Suggestion
	for _, lib := range libraries {
		if viewNames[lib.Name] {
			continue
		}
		best := Suggestion{Library: lib.Name}
		for _, v := range views {
			score := float64(edlib.JaroWinklerSimilarity(lib.Name, v.Name))
			if score > best.Score {
				best.ClosestView = v.Name
				best.Score = score
			}
		}
		if best.Score >= suggestionThreshold {
			suggestions = append(suggestions, best)
		}
	}
	return suggestions
}

// SendTest formats and dispatches a notification from caller-supplied
// item data, bypassing the scan and poll stages. filesize overrides
// disk access; device and priority override routing.
func (e *Engine) SendTest(ctx context.Context, item *jellyfin.Item, path, filesize, device string, priority int) error {
	if e.notifier == nil {
		return ErrNotifierUnconfigured
	}

	mediaType := "episode"
	if item.IsMovie() {
		mediaType = "movie"
	}
	opts := e.cfg.Current().Options(mediaType)

	msg := pushover.Message{
		Title:    FormatTitle(item, false, opts),
		Body:     FormatBody(item, path, opts, filesize),
		Device:   device,
		Priority: priority,
	}
	if err := e.notifier.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending test notification: %w", err)
	}

	e.publish(ctx, &events.NotifySent{
		BaseEvent: events.NewBaseEvent(events.EventNotifySent, events.EntityFile, path),
		Path:      path,
		Title:     msg.Title,
		Device:    device,
	})
	return nil
}
