// Package relay implements the webhook-to-notification pipeline:
// dedup, library resolution, scan triggering, metadata polling,
// notification routing, and message formatting.
package relay

import (
	"context"

	"github.com/vmunix/jellyrelay/internal/jellyfin"
	"github.com/vmunix/jellyrelay/internal/pushover"
)

// MediaServer is the subset of the Jellyfin client the relay needs.
type MediaServer interface {
	GetUsers(ctx context.Context) ([]jellyfin.User, error)
	GetViews(ctx context.Context, userID string) ([]jellyfin.View, error)
	GetItem(ctx context.Context, itemID, userID string) (*jellyfin.Item, error)
	GetLatestItems(ctx context.Context, userID string, limit int) ([]jellyfin.Item, error)
	RefreshLibrary(ctx context.Context, libraryID string) error
	RefreshAllLibraries(ctx context.Context) error
	GetItemImage(ctx context.Context, itemID string) ([]byte, error)
}

// Notifier delivers a formatted notification. Failures are logged by
// the caller, never retried.
type Notifier interface {
	Send(ctx context.Context, msg pushover.Message) error
}
