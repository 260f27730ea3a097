package v1

import (
	"errors"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/events"
	"github.com/vmunix/jellyrelay/internal/relay"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Config *config.Manager
	Engine *relay.Engine

	// Optional dependencies (nil if not configured)
	Server   relay.MediaServer // nil until Jellyfin is configured
	Notifier relay.Notifier    // nil until Pushover is configured
	Bus      *events.Bus       // Optional: for event-driven mode
	EventLog *events.EventLog  // Optional: for event audit log
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Config == nil {
		return errors.New("config manager is required")
	}
	if d.Engine == nil {
		return errors.New("relay engine is required")
	}
	return nil
}
