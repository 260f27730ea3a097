package v1

import (
	"crypto/subtle"
	"net/http"
)

// requireAuth wraps a handler and rejects requests whose X-Api-Key header
// does not match the configured webhook token. Comparison is constant-time.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := s.deps.Config.Current().Webhook.Token
		if token == "" {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "API token not configured")
			return
		}
		key := r.Header.Get("X-Api-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(token)) != 1 {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
			return
		}
		next(w, r)
	}
}

// requireServer wraps a handler and returns 503 if the media server is not configured.
func (s *Server) requireServer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Server == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Jellyfin not configured")
			return
		}
		next(w, r)
	}
}

// requireNotifier wraps a handler and returns 503 if the notifier is not configured.
func (s *Server) requireNotifier(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Notifier == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Pushover not configured")
			return
		}
		next(w, r)
	}
}

// requireEventLog wraps a handler and returns 503 if the event log is not configured.
func (s *Server) requireEventLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.EventLog == nil {
			writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "Event log not configured")
			return
		}
		next(w, r)
	}
}
