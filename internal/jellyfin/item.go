package jellyfin

// Item type constants as reported by the Jellyfin API.
const (
	ItemTypeMovie   = "Movie"
	ItemTypeEpisode = "Episode"
)

// User is a Jellyfin user account.
type User struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// View is a top-level library folder visible to a user.
type View struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// MediaStream carries per-stream technical metadata. Only the codec is
// relevant here.
type MediaStream struct {
	Codec string `json:"Codec"`
}

// MediaSource is one playable version of an item.
type MediaSource struct {
	MediaStreams []MediaStream `json:"MediaStreams"`
}

// Item is a media item as reported by the Jellyfin API. Items returned by
// the client are never mutated after decoding.
type Item struct {
	ID                string        `json:"Id"`
	Type              string        `json:"Type"`
	Name              string        `json:"Name"`
	Overview          string        `json:"Overview"`
	Path              string        `json:"Path"`
	SeriesName        string        `json:"SeriesName"`
	ParentIndexNumber int           `json:"ParentIndexNumber"`
	IndexNumber       int           `json:"IndexNumber"`
	ProductionYear    int           `json:"ProductionYear"`
	ParentID          string        `json:"ParentId"`
	SeasonID          string        `json:"SeasonId"`
	SeriesID          string        `json:"SeriesId"`
	MediaSources      []MediaSource `json:"MediaSources"`
}

// IsMovie reports whether the item is a movie (anything else is treated as
// an episode for notification purposes).
func (i *Item) IsMovie() bool {
	return i.Type == ItemTypeMovie
}

// Codec returns the first stream codec of the first media source, or ""
// when no stream information is present.
func (i *Item) Codec() string {
	if len(i.MediaSources) == 0 || len(i.MediaSources[0].MediaStreams) == 0 {
		return ""
	}
	return i.MediaSources[0].MediaStreams[0].Codec
}

// PosterItemID returns the best item id to fetch a poster image for:
// the series for episodes, the season as a fallback, the item itself
// otherwise.
func (i *Item) PosterItemID() string {
	if i.SeriesID != "" {
		return i.SeriesID
	}
	if i.SeasonID != "" {
		return i.SeasonID
	}
	return i.ID
}

// ParentLinkID returns the id used for upward ancestor traversal:
// the direct parent, else the season, else the series.
func (i *Item) ParentLinkID() string {
	if i.ParentID != "" {
		return i.ParentID
	}
	if i.SeasonID != "" {
		return i.SeasonID
	}
	return i.SeriesID
}
