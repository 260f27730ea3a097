package relay

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
)

const (
	prefixNew     = "✨"
	prefixUpgrade = "⏫"

	overviewLimit = 250

	emojiOverview = "📝"
	emojiCodec    = "🎞️"
	emojiFilesize = "💾"
	emojiPath     = "📁"
)

// FormatTitle interpolates the per-media-type title template. {prefix}
// resolves to an upgrade or new marker; season and episode numbers are
// zero-padded to two digits.
func FormatTitle(item *jellyfin.Item, isUpgrade bool, opts config.NotifyOptions) string {
	prefix := prefixNew
	if isUpgrade {
		prefix = prefixUpgrade
	}

	values := map[string]string{"prefix": prefix}
	if item.IsMovie() {
		values["movie_name"] = orNA(item.Name)
		values["movie_year"] = yearString(item.ProductionYear)
	} else {
		values["series_name"] = orNA(item.SeriesName)
		values["season_num"] = fmt.Sprintf("%02d", item.ParentIndexNumber)
		values["episode_num"] = fmt.Sprintf("%02d", item.IndexNumber)
		values["episode_name"] = orNA(item.Name)
	}

	title := opts.TitleFormat
	for key, val := range values {
		title = strings.ReplaceAll(title, "{"+key+"}", val)
	}
	return title
}

// FormatBody builds the notification body from independently toggled
// blocks: overview, codec, filesize, path. A single blank line
// separates the overview from the first detail block when both are
// present. sizeOverride bypasses disk access for test notifications.
func FormatBody(item *jellyfin.Item, filePath string, opts config.NotifyOptions, sizeOverride string) string {
	var blocks []string

	overview := ""
	if opts.IncludeOverview {
		overview = truncateOverview(item.Overview)
		if overview != "" {
			blocks = append(blocks, withEmoji(emojiOverview, opts.UseEmojis, overview))
		}
	}

	detailAdded := false
	addDetail := func(emoji, text string) {
		if overview != "" && !detailAdded {
			blocks = append(blocks, "")
		}
		blocks = append(blocks, withEmoji(emoji, opts.UseEmojis, text))
		detailAdded = true
	}

	if opts.IncludeCodec {
		// Silently omitted when the server reported no stream info.
		if codec := item.Codec(); codec != "" {
			addDetail(emojiCodec, "Codec: "+strings.ToUpper(codec))
		}
	}

	if opts.IncludeFilesize {
		size := sizeOverride
		if size == "" {
			size = FormatFilesize(filePath)
		}
		addDetail(emojiFilesize, "Size: "+size)
	}

	if opts.IncludePath && filePath != "" {
		addDetail(emojiPath, "Path: "+filePath)
	}

	return strings.Join(blocks, "\n")
}

// truncateOverview trims an overview to the limit at the last whole
// word, appending a continuation marker. Empty input yields "". The
// limit counts runes, not bytes, so multibyte text is never cut
// mid-character.
func truncateOverview(overview string) string {
	s := strings.TrimSpace(overview)
	runes := []rune(s)
	if len(runes) <= overviewLimit {
		return s
	}
	cut := string(runes[:overviewLimit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// FormatFilesize returns a human-readable size for the file at path
// with binary scaling, "0B" for empty files, or "N/A" when the file is
// inaccessible.
func FormatFilesize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "N/A"
	}
	return humanSize(info.Size())
}

func humanSize(bytes int64) string {
	if bytes == 0 {
		return "0B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}

func withEmoji(emoji string, use bool, text string) string {
	if !use {
		return text
	}
	return emoji + " " + text
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yearString(year int) string {
	if year == 0 {
		return "N/A"
	}
	return strconv.Itoa(year)
}
