package relay

import (
	"path"
	"strings"
)

// WebhookPayload is the subset of the Sonarr/Radarr webhook body the
// relay acts on. Radarr sends movieFile; Sonarr sends the series path
// plus one or more relative episode file paths.
type WebhookPayload struct {
	EventType string `json:"eventType"`
	IsUpgrade bool   `json:"isUpgrade"`

	MovieFile    *MovieFile    `json:"movieFile"`
	Series       *SeriesRef    `json:"series"`
	EpisodeFile  *EpisodeFile  `json:"episodeFile"`
	EpisodeFiles []EpisodeFile `json:"episodeFiles"`
}

// MovieFile is Radarr's imported-file reference.
type MovieFile struct {
	Path string `json:"path"`
}

// SeriesRef carries the series root folder from Sonarr payloads.
type SeriesRef struct {
	Path string `json:"path"`
}

// EpisodeFile is a Sonarr file reference relative to the series root.
type EpisodeFile struct {
	RelativePath string `json:"relativePath"`
}

// Source guesses which tool sent the payload, for logging only.
func (p *WebhookPayload) Source() string {
	if p.MovieFile != nil {
		return "radarr"
	}
	if p.Series != nil {
		return "sonarr"
	}
	return "unknown"
}

// MediaType returns "movie" or "episode" based on payload shape.
func (p *WebhookPayload) MediaType() string {
	if p.MovieFile != nil {
		return "movie"
	}
	return "episode"
}

// FilePaths extracts the absolute file paths named by the payload.
// Episode paths are joined against the series path. Order follows the
// payload.
func (p *WebhookPayload) FilePaths() []string {
	var paths []string

	baseFolder := ""
	if p.Series != nil {
		baseFolder = p.Series.Path
	}

	switch {
	case p.MovieFile != nil && p.MovieFile.Path != "":
		paths = append(paths, p.MovieFile.Path)
	case baseFolder != "" && p.EpisodeFile != nil && p.EpisodeFile.RelativePath != "":
		paths = append(paths, path.Join(baseFolder, p.EpisodeFile.RelativePath))
	case baseFolder != "" && len(p.EpisodeFiles) > 0:
		for _, ef := range p.EpisodeFiles {
			if ef.RelativePath != "" {
				paths = append(paths, path.Join(baseFolder, ef.RelativePath))
			}
		}
	}

	return paths
}

// videoExtensions lists the file extensions the relay treats as video.
var videoExtensions = []string{".mkv", ".mp4", ".avi", ".mov", ".wmv", ".m4v", ".ts", ".webm"}

// IsVideoFile reports whether the filename has a recognized video
// extension.
func IsVideoFile(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
