package v1

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/vmunix/jellyrelay/internal/relay"
)

// webhookResponse is the response for POST /webhook/{token}.
type webhookResponse struct {
	Accepted int    `json:"accepted"`
	Source   string `json:"source"`
}

// handleWebhook ingests a Sonarr/Radarr webhook delivery. Returns 202 when
// at least one file was accepted for processing, 200 when the payload was
// valid but contained nothing actionable.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	token := s.deps.Config.Current().Webhook.Token
	if token == "" {
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Webhook token not configured")
		return
	}
	if subtle.ConstantTimeCompare([]byte(r.PathValue("token")), []byte(token)) != 1 {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid webhook token")
		return
	}

	var payload relay.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	accepted := s.deps.Engine.Submit(r.Context(), &payload)

	code := http.StatusOK
	if accepted > 0 {
		code = http.StatusAccepted
	}
	writeJSON(w, code, webhookResponse{Accepted: accepted, Source: payload.Source()})
}

// webhookMissingToken rejects deliveries to the bare webhook path so the
// caller gets an explicit auth error instead of a 404.
func (s *Server) webhookMissingToken(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Webhook token missing from URL")
}
