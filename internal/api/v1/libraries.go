package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/jellyrelay/internal/config"
)

var errLibraryNotFound = errors.New("library not found")

func (s *Server) listLibraries(w http.ResponseWriter, r *http.Request) {
	cfg := s.deps.Config.Current()
	libs := cfg.Libraries

	// Join against live views when the server is reachable.
	var viewNames map[string]bool
	if s.deps.Server != nil && cfg.JellyfinReady() {
		if views, err := s.deps.Server.GetViews(r.Context(), cfg.Jellyfin.UserID); err == nil {
			viewNames = make(map[string]bool, len(views))
			for _, v := range views {
				viewNames[v.Name] = true
			}
		}
	}

	resp := listLibrariesResponse{
		Libraries: make([]libraryResponse, 0, len(libs)),
		Total:     len(libs),
	}
	for _, l := range libs {
		lr := libraryToResponse(l)
		if viewNames != nil {
			matched := viewNames[l.Name]
			lr.ViewMatched = &matched
		}
		resp.Libraries = append(resp.Libraries, lr)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) syncLibraries(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.Engine.SyncLibraries(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "SERVER_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) updateLibrary(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req updateLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	var updated config.Library
	err := s.deps.Config.Update(func(cfg *config.Config) error {
		lib := cfg.Library(name)
		if lib == nil {
			return errLibraryNotFound
		}
		if req.WatchPath != nil {
			lib.WatchPath = *req.WatchPath
		}
		if req.ScanEnabled != nil {
			lib.ScanEnabled = *req.ScanEnabled
		}
		if req.NotifyEnabled != nil {
			lib.NotifyEnabled = *req.NotifyEnabled
		}
		if req.Device != nil {
			lib.Device = *req.Device
		}
		if req.Priority != nil {
			lib.Priority = *req.Priority
		}
		updated = *lib
		return nil
	})
	if err != nil {
		if errors.Is(err, errLibraryNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Library not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "UPDATE_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, libraryToResponse(updated))
}
