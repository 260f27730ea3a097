// internal/api/v1/types.go
package v1

import "github.com/vmunix/jellyrelay/internal/config"

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status             string `json:"status"`
	JellyfinConfigured bool   `json:"jellyfin_configured"`
	PushoverConfigured bool   `json:"pushover_configured"`
	Libraries          int    `json:"libraries"`
	TrackedFiles       int    `json:"tracked_files"`
	InFlight           int    `json:"in_flight"`
}

// scanRequest is the optional body for POST /scan. An empty body or
// empty library name scans everything.
type scanRequest struct {
	Library string `json:"library,omitempty"`
}

// libraryResponse is the API representation of a configured library.
type libraryResponse struct {
	Name          string `json:"name"`
	WatchPath     string `json:"watch_path"`
	ScanEnabled   bool   `json:"scan_enabled"`
	NotifyEnabled bool   `json:"notify_enabled"`
	Device        string `json:"device,omitempty"`
	Priority      int    `json:"priority"`
	ID            string `json:"id,omitempty"`
	// ViewMatched reports whether a live server view with this name
	// exists. Omitted when the media server is unreachable.
	ViewMatched *bool `json:"view_matched,omitempty"`
}

// listLibrariesResponse is the response for GET /libraries.
type listLibrariesResponse struct {
	Libraries []libraryResponse `json:"libraries"`
	Total     int               `json:"total"`
}

// updateLibraryRequest is the body for PUT /libraries/{name}. Pointer
// fields distinguish "leave unchanged" from an explicit value.
type updateLibraryRequest struct {
	WatchPath     *string `json:"watch_path,omitempty"`
	ScanEnabled   *bool   `json:"scan_enabled,omitempty"`
	NotifyEnabled *bool   `json:"notify_enabled,omitempty"`
	Device        *string `json:"device,omitempty"`
	Priority      *int    `json:"priority,omitempty"`
}

// notifyOptionsPayload mirrors config.NotifyOptions for JSON transport.
type notifyOptionsPayload struct {
	TitleFormat     string `json:"title_format"`
	IncludeOverview bool   `json:"include_overview"`
	IncludeCodec    bool   `json:"include_codec"`
	IncludeFilesize bool   `json:"include_filesize"`
	IncludePath     bool   `json:"include_path"`
	IncludePoster   bool   `json:"include_poster"`
	UseEmojis       bool   `json:"use_emojis"`
}

// notificationSettingsResponse is the response for GET /settings/notifications
// and the body for PUT.
type notificationSettingsResponse struct {
	Movie   notifyOptionsPayload `json:"movie"`
	Episode notifyOptionsPayload `json:"episode"`
}

// testNotificationRequest is the body for POST /notifications/test.
// The item fields are optional; anything omitted falls back to the
// built-in sample so a bare POST still renders every configured block.
type testNotificationRequest struct {
	MediaType string `json:"media_type,omitempty"` // "movie" (default) or "episode"
	Device    string `json:"device,omitempty"`
	Priority  int    `json:"priority,omitempty"`

	MovieName   string `json:"movie_name,omitempty"`
	MovieYear   int    `json:"movie_year,omitempty"`
	SeriesName  string `json:"series_name,omitempty"`
	SeasonNum   int    `json:"season_num,omitempty"`
	EpisodeNum  int    `json:"episode_num,omitempty"`
	EpisodeName string `json:"episode_name,omitempty"`
	Overview    string `json:"overview,omitempty"`
	Codec       string `json:"codec,omitempty"`
	Path        string `json:"path,omitempty"`
	Filesize    string `json:"filesize,omitempty"`
}

func libraryToResponse(l config.Library) libraryResponse {
	return libraryResponse{
		Name:          l.Name,
		WatchPath:     l.WatchPath,
		ScanEnabled:   l.ScanEnabled,
		NotifyEnabled: l.NotifyEnabled,
		Device:        l.Device,
		Priority:      l.Priority,
		ID:            l.ID,
	}
}

func optionsToPayload(o config.NotifyOptions) notifyOptionsPayload {
	return notifyOptionsPayload{
		TitleFormat:     o.TitleFormat,
		IncludeOverview: o.IncludeOverview,
		IncludeCodec:    o.IncludeCodec,
		IncludeFilesize: o.IncludeFilesize,
		IncludePath:     o.IncludePath,
		IncludePoster:   o.IncludePoster,
		UseEmojis:       o.UseEmojis,
	}
}

func payloadToOptions(p notifyOptionsPayload) config.NotifyOptions {
	return config.NotifyOptions{
		TitleFormat:     p.TitleFormat,
		IncludeOverview: p.IncludeOverview,
		IncludeCodec:    p.IncludeCodec,
		IncludeFilesize: p.IncludeFilesize,
		IncludePath:     p.IncludePath,
		IncludePoster:   p.IncludePoster,
		UseEmojis:       p.UseEmojis,
	}
}
