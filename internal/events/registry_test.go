// internal/events/registry_test.go
package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Unmarshal(t *testing.T) {
	registry := NewRegistry()

	// Register event types
	registry.Register(EventFileAccepted, func() Event { return &FileAccepted{} })
	registry.Register(EventPollMatched, func() Event { return &PollMatched{} })

	// Test unmarshaling FileAccepted
	raw := RawEvent{
		EventType: EventFileAccepted,
		Payload:   `{"type":"file.accepted","entity_type":"file","entity_key":"/media/Movies/Heat.mkv","occurred_at":"2024-01-01T00:00:00Z","path":"/media/Movies/Heat.mkv","media_type":"movie","library":"Movies"}`,
	}

	event, err := registry.Unmarshal(raw)
	require.NoError(t, err)

	accepted, ok := event.(*FileAccepted)
	require.True(t, ok)
	assert.Equal(t, "/media/Movies/Heat.mkv", accepted.Path)
	assert.Equal(t, "movie", accepted.MediaType)
	assert.Equal(t, "Movies", accepted.Library)
}

func TestRegistry_UnmarshalUnknownType(t *testing.T) {
	registry := NewRegistry()

	raw := RawEvent{
		EventType: "unknown.event",
		Payload:   `{}`,
	}

	_, err := registry.Unmarshal(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestRegistry_UnmarshalInvalidJSON(t *testing.T) {
	registry := NewRegistry()
	registry.Register(EventFileAccepted, func() Event { return &FileAccepted{} })

	raw := RawEvent{
		EventType: EventFileAccepted,
		Payload:   `{invalid json`,
	}

	_, err := registry.Unmarshal(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal event payload")
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	// Verify all event types are registered
	eventTypes := []string{
		EventWebhookReceived,
		EventFileAccepted,
		EventFileDuplicate,
		EventScanTriggered,
		EventPollMatched,
		EventPollTimeout,
		EventNotifySent,
		EventNotifySkipped,
		EventLibrarySynced,
	}

	for _, eventType := range eventTypes {
		t.Run(eventType, func(t *testing.T) {
			raw := RawEvent{
				EventType: eventType,
				Payload:   `{"type":"` + eventType + `","entity_type":"file","entity_key":"/media/a.mkv","occurred_at":"2024-01-01T00:00:00Z"}`,
			}
			event, err := registry.Unmarshal(raw)
			require.NoError(t, err, "Failed to unmarshal %s", eventType)
			assert.Equal(t, eventType, event.EventType())
		})
	}
}

func TestRegistry_UnmarshalPollMatched(t *testing.T) {
	registry := DefaultRegistry()

	raw := RawEvent{
		EventType: EventPollMatched,
		Payload:   `{"type":"poll.matched","entity_type":"file","entity_key":"/media/Movies/Heat.mkv","occurred_at":"2024-01-01T12:00:00Z","path":"/media/Movies/Heat.mkv","item_id":"abc123","item_name":"Heat","attempts":3}`,
	}

	event, err := registry.Unmarshal(raw)
	require.NoError(t, err)

	matched, ok := event.(*PollMatched)
	require.True(t, ok)
	assert.Equal(t, "abc123", matched.ItemID)
	assert.Equal(t, "Heat", matched.ItemName)
	assert.Equal(t, 3, matched.Attempts)
	assert.Equal(t, "/media/Movies/Heat.mkv", matched.EntityKey())
}

func TestRegistry_UnmarshalLibrarySynced(t *testing.T) {
	registry := DefaultRegistry()

	raw := RawEvent{
		EventType: EventLibrarySynced,
		Payload:   `{"type":"library.synced","entity_type":"library","entity_key":"all","occurred_at":"2024-01-01T00:00:00Z","added":2,"updated":1,"total":4}`,
	}

	event, err := registry.Unmarshal(raw)
	require.NoError(t, err)

	synced, ok := event.(*LibrarySynced)
	require.True(t, ok)
	assert.Equal(t, 2, synced.Added)
	assert.Equal(t, 1, synced.Updated)
	assert.Equal(t, 4, synced.Total)
}
