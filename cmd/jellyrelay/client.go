package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the jellyrelay daemon.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new jellyrelay API client.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		baseURL: serverURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.do(http.MethodPut, path, body, result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status             string `json:"status"`
	JellyfinConfigured bool   `json:"jellyfin_configured"`
	PushoverConfigured bool   `json:"pushover_configured"`
	Libraries          int    `json:"libraries"`
	TrackedFiles       int    `json:"tracked_files"`
	InFlight           int    `json:"in_flight"`
}

type LibraryResponse struct {
	Name          string `json:"name"`
	WatchPath     string `json:"watch_path"`
	ScanEnabled   bool   `json:"scan_enabled"`
	NotifyEnabled bool   `json:"notify_enabled"`
	Device        string `json:"device,omitempty"`
	Priority      int    `json:"priority"`
	ID            string `json:"id,omitempty"`
	ViewMatched   *bool  `json:"view_matched,omitempty"`
}

type ListLibrariesResponse struct {
	Libraries []LibraryResponse `json:"libraries"`
	Total     int               `json:"total"`
}

type SyncSuggestion struct {
	Library     string  `json:"library"`
	ClosestView string  `json:"closest_view"`
	Score       float64 `json:"score"`
}

type SyncResponse struct {
	Added       int              `json:"added"`
	Updated     int              `json:"updated"`
	Total       int              `json:"total"`
	Suggestions []SyncSuggestion `json:"suggestions,omitempty"`
}

type UpdateLibraryRequest struct {
	WatchPath     *string `json:"watch_path,omitempty"`
	ScanEnabled   *bool   `json:"scan_enabled,omitempty"`
	NotifyEnabled *bool   `json:"notify_enabled,omitempty"`
	Device        *string `json:"device,omitempty"`
	Priority      *int    `json:"priority,omitempty"`
}

type NotifyOptions struct {
	TitleFormat     string `json:"title_format"`
	IncludeOverview bool   `json:"include_overview"`
	IncludeCodec    bool   `json:"include_codec"`
	IncludeFilesize bool   `json:"include_filesize"`
	IncludePath     bool   `json:"include_path"`
	IncludePoster   bool   `json:"include_poster"`
	UseEmojis       bool   `json:"use_emojis"`
}

type NotificationSettings struct {
	Movie   NotifyOptions `json:"movie"`
	Episode NotifyOptions `json:"episode"`
}

type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityKey  string          `json:"entity_key"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt string          `json:"occurred_at"`
}

type ListEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Libraries() (*ListLibrariesResponse, error) {
	var resp ListLibrariesResponse
	if err := c.get("/api/v1/libraries", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SyncLibraries() (*SyncResponse, error) {
	var resp SyncResponse
	if err := c.post("/api/v1/libraries/sync", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateLibrary(name string, req *UpdateLibraryRequest) (*LibraryResponse, error) {
	var resp LibraryResponse
	if err := c.put("/api/v1/libraries/"+url.PathEscape(name), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) NotificationSettings() (*NotificationSettings, error) {
	var resp NotificationSettings
	if err := c.get("/api/v1/settings/notifications", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateNotificationSettings(s *NotificationSettings) (*NotificationSettings, error) {
	var resp NotificationSettings
	if err := c.put("/api/v1/settings/notifications", s, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) TestNotification(mediaType, device string, priority int) error {
	req := map[string]any{
		"media_type": mediaType,
		"device":     device,
		"priority":   priority,
	}
	return c.post("/api/v1/notifications/test", req, nil)
}

// Scan triggers a library scan; empty library scans everything.
func (c *Client) Scan(library string) error {
	if library == "" {
		return c.post("/api/v1/scan", nil, nil)
	}
	return c.post("/api/v1/scan", map[string]any{"library": library}, nil)
}

func (c *Client) Events(limit int) (*ListEventsResponse, error) {
	path := fmt.Sprintf("/api/v1/events?limit=%d", limit)
	var resp ListEventsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
