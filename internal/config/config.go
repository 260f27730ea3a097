// Package config handles TOML configuration loading with environment
// variable substitution, plus persistence of settings changed at runtime
// (library table updates, cached ids, notification options).
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Jellyfin      JellyfinConfig      `toml:"jellyfin"`
	Pushover      PushoverConfig      `toml:"pushover"`
	Webhook       WebhookConfig       `toml:"webhook"`
	Relay         RelayConfig         `toml:"relay"`
	Libraries     []Library           `toml:"libraries"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type JellyfinConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
	// UserID is cached by the library sync operation; API calls are scoped
	// to this user.
	UserID string `toml:"user_id"`
}

type PushoverConfig struct {
	AppToken string `toml:"app_token"`
	UserKey  string `toml:"user_key"`
}

type WebhookConfig struct {
	// Token authorizes webhook deliveries (part of the webhook URL) and
	// admin API calls. Generated on first start when empty.
	Token string `toml:"token"`
}

// RelayConfig tunes the relay engine. The defaults match what the *arr
// webhook flow expects; they are exposed mainly for tests.
type RelayConfig struct {
	DedupWindowSeconds  int `toml:"dedup_window_seconds"`
	PollAttempts        int `toml:"poll_attempts"`
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	MaxInFlight         int `toml:"max_in_flight"`
}

// Library holds per-library relay settings. The array order in the config
// file is the resolution order for watch-folder matching.
type Library struct {
	Name          string `toml:"name"`
	WatchPath     string `toml:"watch_path"`
	ScanEnabled   bool   `toml:"scan_enabled"`
	NotifyEnabled bool   `toml:"notify_enabled"`
	Device        string `toml:"device"`
	Priority      int    `toml:"priority"`
	// ID is the server-side view id, cached by the library sync operation.
	// May be stale; the relay re-resolves against live views per event.
	ID string `toml:"id"`
}

type NotificationsConfig struct {
	Movie   NotifyOptions `toml:"movie"`
	Episode NotifyOptions `toml:"episode"`
}

// NotifyOptions is the per-media-type formatting configuration.
type NotifyOptions struct {
	TitleFormat     string `toml:"title_format"`
	IncludeOverview bool   `toml:"include_overview"`
	IncludeCodec    bool   `toml:"include_codec"`
	IncludeFilesize bool   `toml:"include_filesize"`
	IncludePath     bool   `toml:"include_path"`
	IncludePoster   bool   `toml:"include_poster"`
	UseEmojis       bool   `toml:"use_emojis"`
}

// Default title formats. {prefix} resolves to an upgrade/new marker at
// format time.
const (
	DefaultMovieTitleFormat   = "{prefix} New Movie: {movie_name} ({movie_year})"
	DefaultEpisodeTitleFormat = "{prefix} New Episode: {series_name} S{season_num}E{episode_num} - {episode_name}"
)

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes configuration from TOML text and applies defaults.
func Parse(content string) (*Config, error) {
	content, missing := substituteEnvVars(content)
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyLibraryToggleDefaults(content, &cfg)
	cfg.applyDefaults()
	return &cfg, nil
}

// applyLibraryToggleDefaults makes omitted scan_enabled/notify_enabled
// keys default to enabled. Library decodes them as plain bools, which
// cannot tell "absent" from "false", so the library tables are re-read
// with optional fields.
func applyLibraryToggleDefaults(content string, cfg *Config) {
	var raw struct {
		Libraries []struct {
			ScanEnabled   *bool `toml:"scan_enabled"`
			NotifyEnabled *bool `toml:"notify_enabled"`
		} `toml:"libraries"`
	}
	if _, err := toml.Decode(content, &raw); err != nil {
		return
	}
	for i := range cfg.Libraries {
		if i >= len(raw.Libraries) {
			break
		}
		if raw.Libraries[i].ScanEnabled == nil {
			cfg.Libraries[i].ScanEnabled = true
		}
		if raw.Libraries[i].NotifyEnabled == nil {
			cfg.Libraries[i].NotifyEnabled = true
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8486
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/jellyrelay.db"
	}
	if c.Relay.DedupWindowSeconds == 0 {
		c.Relay.DedupWindowSeconds = 10
	}
	if c.Relay.PollAttempts == 0 {
		c.Relay.PollAttempts = 36
	}
	if c.Relay.PollIntervalSeconds == 0 {
		c.Relay.PollIntervalSeconds = 5
	}
	if c.Relay.MaxInFlight == 0 {
		c.Relay.MaxInFlight = 16
	}
	if c.Notifications.Movie.TitleFormat == "" {
		c.Notifications.Movie.TitleFormat = DefaultMovieTitleFormat
	}
	if c.Notifications.Episode.TitleFormat == "" {
		c.Notifications.Episode.TitleFormat = DefaultEpisodeTitleFormat
	}
}

// Library returns the library config with the given name, or nil.
func (c *Config) Library(name string) *Library {
	for i := range c.Libraries {
		if c.Libraries[i].Name == name {
			return &c.Libraries[i]
		}
	}
	return nil
}

// Options returns the notification options for a media type key
// ("movie" or "episode").
func (c *Config) Options(mediaType string) NotifyOptions {
	if mediaType == "movie" {
		return c.Notifications.Movie
	}
	return c.Notifications.Episode
}

// JellyfinReady reports whether the connection settings required by the
// relay pipeline are present.
func (c *Config) JellyfinReady() bool {
	return c.Jellyfin.URL != "" && c.Jellyfin.APIKey != "" && c.Jellyfin.UserID != ""
}

// Clone returns a deep copy. Used by Manager to hand out mutable copies
// without exposing shared slices.
func (c *Config) Clone() *Config {
	out := *c
	out.Libraries = make([]Library, len(c.Libraries))
	copy(out.Libraries, c.Libraries)
	return &out
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Supports ${VAR:-default} (fallback when unset or empty) and ${VAR:?message}
// (required, recorded as missing with the message). Plain ${VAR} references
// to unset variables are left unchanged and reported in missing.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return def
		}

		if name, msg, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			missing = append(missing, name+": "+strings.TrimSpace(msg))
			return match
		}

		if value, ok := os.LookupEnv(expr); ok {
			return value
		}
		missing = append(missing, expr)
		return match
	})

	return result, missing
}
