// Package jellyfin implements a minimal Jellyfin REST API client covering
// the operations the relay needs: user/view discovery, item lookup, latest
// items, library refresh triggers and poster fetches.
//
// API reference: https://api.jellyfin.org/
package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultLatestLimit is the number of recent items fetched per poll attempt.
const DefaultLatestLimit = 25

// latestItemFields are the extra fields requested so that poll matches can
// be routed and formatted without a second lookup.
const latestItemFields = "Path,DateCreated,ProviderIds,ParentId,SeriesId,SeasonId,MediaSources,Overview"

// Client interacts with the Jellyfin server API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new Jellyfin client.
func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		log:     log.With("component", "jellyfin"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// itemsResponse is the envelope Jellyfin uses for item collections.
type itemsResponse struct {
	Items []Item `json:"Items"`
}

// viewsResponse is the envelope for /Users/{id}/Views.
type viewsResponse struct {
	Items []View `json:"Items"`
}

// GetUsers returns all users on the server.
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/Users", nil, &users); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

// GetViews returns the library views visible to a user.
func (c *Client) GetViews(ctx context.Context, userID string) ([]View, error) {
	var result viewsResponse
	path := fmt.Sprintf("/Users/%s/Views", url.PathEscape(userID))
	if err := c.getJSON(ctx, path, nil, &result); err != nil {
		return nil, fmt.Errorf("get views: %w", err)
	}
	return result.Items, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, itemID, userID string) (*Item, error) {
	var item Item
	path := fmt.Sprintf("/Users/%s/Items/%s", url.PathEscape(userID), url.PathEscape(itemID))
	if err := c.getJSON(ctx, path, nil, &item); err != nil {
		return nil, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return &item, nil
}

// GetLatestItems returns the most recently created movies and episodes for
// a user, newest first. A limit of 0 uses DefaultLatestLimit.
func (c *Client) GetLatestItems(ctx context.Context, userID string, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	query := url.Values{
		"Recursive":        {"true"},
		"IncludeItemTypes": {"Movie,Episode"},
		"SortBy":           {"DateCreated"},
		"SortOrder":        {"Descending"},
		"Limit":            {strconv.Itoa(limit)},
		"Fields":           {latestItemFields},
	}

	var result itemsResponse
	path := fmt.Sprintf("/Users/%s/Items", url.PathEscape(userID))
	if err := c.getJSON(ctx, path, query, &result); err != nil {
		return nil, fmt.Errorf("get latest items: %w", err)
	}
	return result.Items, nil
}

// RefreshLibrary triggers a targeted scan of one library.
func (c *Client) RefreshLibrary(ctx context.Context, libraryID string) error {
	query := url.Values{
		"Recursive":           {"true"},
		"ImageRefreshMode":    {"Default"},
		"MetadataRefreshMode": {"Default"},
		"ReplaceAllMetadata":  {"false"},
	}
	path := fmt.Sprintf("/Items/%s/Refresh", url.PathEscape(libraryID))
	req, err := c.newRequest(ctx, http.MethodPost, path, query)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh library %s: %w", libraryID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("refresh library %s: unexpected status: %d", libraryID, resp.StatusCode)
	}
	return nil
}

// RefreshAllLibraries triggers a global library scan.
func (c *Client) RefreshAllLibraries(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/Library/Refresh", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh all libraries: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("refresh all libraries: unexpected status: %d", resp.StatusCode)
	}
	return nil
}

// GetItemImage fetches the primary image for an item. Returns nil bytes
// (and no error) when the item has no primary image.
func (c *Client) GetItemImage(ctx context.Context, itemID string) ([]byte, error) {
	path := fmt.Sprintf("/Items/%s/Images/Primary", url.PathEscape(itemID))
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get image for %s: %w", itemID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get image for %s: unexpected status: %d", itemID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image for %s: %w", itemID, err)
	}
	return data, nil
}
