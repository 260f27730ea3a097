// Package v1 implements the native REST API and the webhook endpoint.
package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
}

// New creates a new v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return &Server{deps: deps}, nil
}

// RegisterRoutes registers API routes on the given mux. Webhook intake
// authenticates via the token in the path; everything under /api/v1
// requires the same token in the X-Api-Key header.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Webhook intake
	mux.HandleFunc("POST /webhook/{token}", s.handleWebhook)
	mux.HandleFunc("POST /webhook", s.webhookMissingToken)

	// System
	mux.HandleFunc("GET /api/v1/status", s.requireAuth(s.getStatus))
	mux.HandleFunc("POST /api/v1/scan", s.requireAuth(s.requireServer(s.triggerScan)))

	// Libraries
	mux.HandleFunc("GET /api/v1/libraries", s.requireAuth(s.listLibraries))
	mux.HandleFunc("POST /api/v1/libraries/sync", s.requireAuth(s.requireServer(s.syncLibraries)))
	mux.HandleFunc("PUT /api/v1/libraries/{name}", s.requireAuth(s.updateLibrary))

	// Notification settings
	mux.HandleFunc("GET /api/v1/settings/notifications", s.requireAuth(s.getNotificationSettings))
	mux.HandleFunc("PUT /api/v1/settings/notifications", s.requireAuth(s.updateNotificationSettings))
	mux.HandleFunc("POST /api/v1/notifications/test", s.requireAuth(s.requireNotifier(s.testNotification)))

	// Events
	mux.HandleFunc("GET /api/v1/events", s.requireAuth(s.requireEventLog(s.listEvents)))
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.deps.Config.Current()

	writeJSON(w, http.StatusOK, statusResponse{
		Status:             "ok",
		JellyfinConfigured: cfg.JellyfinReady(),
		PushoverConfigured: cfg.Pushover.AppToken != "" && cfg.Pushover.UserKey != "",
		Libraries:          len(cfg.Libraries),
		TrackedFiles:       s.deps.Engine.Dedup().Len(),
		InFlight:           s.deps.Engine.InFlight(),
	})
}

func (s *Server) triggerScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
	}

	if req.Library != "" {
		lib := s.deps.Config.Current().Library(req.Library)
		if lib == nil {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Library not found")
			return
		}
		if lib.ID == "" {
			writeError(w, http.StatusConflict, "NO_LIBRARY_ID", "Library has no cached server id; run a sync first")
			return
		}
		if err := s.deps.Server.RefreshLibrary(r.Context(), lib.ID); err != nil {
			writeError(w, http.StatusBadGateway, "SERVER_ERROR", err.Error())
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "scan triggered", "library": req.Library})
		return
	}

	if err := s.deps.Server.RefreshAllLibraries(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "SERVER_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scan triggered"})
}
