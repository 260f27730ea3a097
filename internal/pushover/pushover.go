// Package pushover sends push notifications through the Pushover message
// API, including optional image attachments.
package pushover

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpoint is the Pushover messages API URL.
const DefaultEndpoint = "https://api.pushover.net/1/messages.json"

// Message is one notification to deliver.
type Message struct {
	Title    string
	Body     string
	Image    []byte // optional poster attachment (JPEG/PNG bytes)
	Device   string // optional target device, empty = all devices
	Priority int
}

// Client sends notifications via Pushover.
type Client struct {
	endpoint   string
	appToken   string
	userKey    string
	httpClient *http.Client
}

// NewClient creates a Pushover client for the given application token and
// user key.
func NewClient(appToken, userKey string) *Client {
	return &Client{
		endpoint: DefaultEndpoint,
		appToken: appToken,
		userKey:  userKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetEndpoint overrides the API endpoint. Used by tests.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Send delivers a notification. Delivery failures are returned as errors;
// callers decide whether they are fatal (for this relay they never are).
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.appToken == "" || c.userKey == "" {
		return fmt.Errorf("pushover credentials not configured")
	}

	var req *http.Request
	var err error
	if len(msg.Image) > 0 {
		req, err = c.multipartRequest(ctx, msg)
	} else {
		req, err = c.formRequest(ctx, msg)
	}
	if err != nil {
		return fmt.Errorf("build pushover request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send pushover notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("pushover returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) formValues(msg Message) url.Values {
	values := url.Values{
		"token":    {c.appToken},
		"user":     {c.userKey},
		"title":    {msg.Title},
		"message":  {msg.Body},
		"html":     {"1"},
		"priority": {strconv.Itoa(msg.Priority)},
	}
	if msg.Device != "" {
		values.Set("device", msg.Device)
	}
	return values
}

func (c *Client) formRequest(ctx context.Context, msg Message) (*http.Request, error) {
	body := strings.NewReader(c.formValues(msg).Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func (c *Client) multipartRequest(ctx context.Context, msg Message) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, vals := range c.formValues(msg) {
		if err := w.WriteField(key, vals[0]); err != nil {
			return nil, err
		}
	}

	part, err := w.CreateFormFile("attachment", "poster.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(msg.Image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}
