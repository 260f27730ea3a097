package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vmunix/jellyrelay/internal/events"
)

// EventResponse is the API representation of a logged event.
type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityKey  string          `json:"entity_key"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt string          `json:"occurred_at"`
}

// listEventsResponse is the response for GET /events.
type listEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	var (
		raw []events.RawEvent
		err error
	)
	switch {
	case r.URL.Query().Get("path") != "":
		raw, err = s.deps.EventLog.ForEntity(events.EntityFile, r.URL.Query().Get("path"))
	case r.URL.Query().Get("since") != "":
		var since time.Time
		since, err = time.Parse(time.RFC3339, r.URL.Query().Get("since"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_SINCE", "since must be RFC3339")
			return
		}
		raw, err = s.deps.EventLog.Since(since)
	default:
		raw, err = s.deps.EventLog.Recent(limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	if typ := r.URL.Query().Get("type"); typ != "" {
		filtered := raw[:0]
		for _, e := range raw {
			if e.EventType == typ {
				filtered = append(filtered, e)
			}
		}
		raw = filtered
	}
	if len(raw) > limit {
		raw = raw[:limit]
	}

	resp := listEventsResponse{
		Items: make([]EventResponse, len(raw)),
		Total: len(raw),
		Limit: limit,
	}
	for i, e := range raw {
		resp.Items[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityKey:  e.EntityKey,
			Payload:    json.RawMessage(e.Payload),
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
