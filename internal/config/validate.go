// internal/config/validate.go
package config

import (
	"fmt"
	"regexp"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Title-format placeholders form a closed set per media type, checked at
// load time so a bad template fails configuration, not a notification.
var (
	moviePlaceholders = map[string]bool{
		"prefix": true, "movie_name": true, "movie_year": true,
	}
	episodePlaceholders = map[string]bool{
		"prefix": true, "series_name": true, "season_num": true,
		"episode_num": true, "episode_name": true,
	}
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// ValidateTitleFormat checks that a title format only references the
// placeholders defined for the given media type ("movie" or "episode").
func ValidateTitleFormat(mediaType, format string) error {
	allowed := episodePlaceholders
	if mediaType == "movie" {
		allowed = moviePlaceholders
	}
	for _, m := range placeholderPattern.FindAllStringSubmatch(format, -1) {
		if !allowed[m[1]] {
			return fmt.Errorf("unknown placeholder {%s} for %s title format", m[1], mediaType)
		}
	}
	return nil
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Jellyfin settings are optional as a whole (the relay degrades to a
	// config-gate abort), but partial settings are a configuration mistake.
	if c.Jellyfin.URL != "" && c.Jellyfin.APIKey == "" {
		errs = append(errs, "jellyfin.api_key: required when jellyfin.url is set")
	}
	if c.Jellyfin.URL == "" && c.Jellyfin.APIKey != "" {
		errs = append(errs, "jellyfin.url: required when jellyfin.api_key is set")
	}

	if c.Pushover.AppToken != "" && c.Pushover.UserKey == "" {
		errs = append(errs, "pushover.user_key: required when pushover.app_token is set")
	}
	if c.Pushover.AppToken == "" && c.Pushover.UserKey != "" {
		errs = append(errs, "pushover.app_token: required when pushover.user_key is set")
	}

	// Relay tuning
	if c.Relay.PollAttempts < 0 {
		errs = append(errs, fmt.Sprintf("relay.poll_attempts: must be positive, got %d", c.Relay.PollAttempts))
	}
	if c.Relay.MaxInFlight < 0 {
		errs = append(errs, fmt.Sprintf("relay.max_in_flight: must be positive, got %d", c.Relay.MaxInFlight))
	}

	// Libraries: names are the join key against server views and must be
	// unique and non-empty.
	seen := make(map[string]bool, len(c.Libraries))
	for i, lib := range c.Libraries {
		if strings.TrimSpace(lib.Name) == "" {
			errs = append(errs, fmt.Sprintf("libraries[%d].name: required", i))
			continue
		}
		if seen[lib.Name] {
			errs = append(errs, fmt.Sprintf("libraries[%d].name: duplicate library %q", i, lib.Name))
		}
		seen[lib.Name] = true
	}

	// Title formats
	if err := ValidateTitleFormat("movie", c.Notifications.Movie.TitleFormat); err != nil {
		errs = append(errs, "notifications.movie.title_format: "+err.Error())
	}
	if err := ValidateTitleFormat("episode", c.Notifications.Episode.TitleFormat); err != nil {
		errs = append(errs, "notifications.episode.title_format: "+err.Error())
	}

	return errs
}
