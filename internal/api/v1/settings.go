package v1

import (
	"encoding/json"
	"net/http"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
)

func (s *Server) getNotificationSettings(w http.ResponseWriter, r *http.Request) {
	n := s.deps.Config.Current().Notifications
	writeJSON(w, http.StatusOK, notificationSettingsResponse{
		Movie:   optionsToPayload(n.Movie),
		Episode: optionsToPayload(n.Episode),
	})
}

func (s *Server) updateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var req notificationSettingsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	err := s.deps.Config.Update(func(cfg *config.Config) error {
		cfg.Notifications.Movie = payloadToOptions(req.Movie)
		cfg.Notifications.Episode = payloadToOptions(req.Episode)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "UPDATE_FAILED", err.Error())
		return
	}

	n := s.deps.Config.Current().Notifications
	writeJSON(w, http.StatusOK, notificationSettingsResponse{
		Movie:   optionsToPayload(n.Movie),
		Episode: optionsToPayload(n.Episode),
	})
}

func (s *Server) testNotification(w http.ResponseWriter, r *http.Request) {
	var req testNotificationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
	}

	item, path, filesize := sampleItem(req.MediaType)
	applyItemOverrides(item, &path, &filesize, req)
	if err := s.deps.Engine.SendTest(r.Context(), item, path, filesize, req.Device, req.Priority); err != nil {
		writeError(w, http.StatusBadGateway, "NOTIFY_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// applyItemOverrides replaces sample fields with caller-supplied mock
// data so a preview reflects the exact item being tested.
func applyItemOverrides(item *jellyfin.Item, path, filesize *string, req testNotificationRequest) {
	if item.IsMovie() {
		if req.MovieName != "" {
			item.Name = req.MovieName
		}
		if req.MovieYear != 0 {
			item.ProductionYear = req.MovieYear
		}
	} else {
		if req.SeriesName != "" {
			item.SeriesName = req.SeriesName
		}
		if req.EpisodeName != "" {
			item.Name = req.EpisodeName
		}
		if req.SeasonNum != 0 {
			item.ParentIndexNumber = req.SeasonNum
		}
		if req.EpisodeNum != 0 {
			item.IndexNumber = req.EpisodeNum
		}
	}
	if req.Overview != "" {
		item.Overview = req.Overview
	}
	if req.Codec != "" {
		item.MediaSources = []jellyfin.MediaSource{
			{MediaStreams: []jellyfin.MediaStream{{Codec: req.Codec}}},
		}
	}
	if req.Path != "" {
		*path = req.Path
	}
	if req.Filesize != "" {
		*filesize = req.Filesize
	}
}

// sampleItem builds a synthetic item so test notifications render every
// configured block without touching the media server.
func sampleItem(mediaType string) (*jellyfin.Item, string, string) {
	if mediaType == "episode" {
		return &jellyfin.Item{
			Type:              jellyfin.ItemTypeEpisode,
			Name:              "Test Episode",
			SeriesName:        "Test Series",
			ParentIndexNumber: 1,
			IndexNumber:       1,
			Overview:          "This is a test notification. If you can read this, relaying works end to end.",
			MediaSources: []jellyfin.MediaSource{
				{MediaStreams: []jellyfin.MediaStream{{Codec: "hevc"}}},
			},
		}, "/media/tv/Test Series/Season 01/Test.Episode.S01E01.mkv", "1.4 GB"
	}
	return &jellyfin.Item{
		Type:           jellyfin.ItemTypeMovie,
		Name:           "Test Movie",
		ProductionYear: 2024,
		Overview:       "This is a test notification. If you can read this, relaying works end to end.",
		MediaSources: []jellyfin.MediaSource{
			{MediaStreams: []jellyfin.MediaStream{{Codec: "hevc"}}},
		},
	}, "/media/movies/Test Movie (2024)/Test.Movie.2024.mkv", "1.4 GB"
}
