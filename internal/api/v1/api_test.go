package v1

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/events"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
	"github.com/vmunix/jellyrelay/internal/migrations"
	"github.com/vmunix/jellyrelay/internal/pushover"
	"github.com/vmunix/jellyrelay/internal/relay"
	"github.com/vmunix/jellyrelay/internal/relay/mocks"
)

const testToken = "test-token-123"

const baseConfig = `
[webhook]
token = "test-token-123"

[[libraries]]
name = "Movies"
watch_path = "/media/movies"
scan_enabled = true
notify_enabled = true
id = "v1"

[[libraries]]
name = "TV"
watch_path = "/media/tv"
scan_enabled = true
notify_enabled = true
`

func testManager(t *testing.T, toml string) *config.Manager {
	t.Helper()
	cfg, err := config.Parse(toml)
	require.NoError(t, err)
	return config.NewManager("", cfg)
}

// newTestServer wires a server around a real engine. Server and notifier
// may be nil to exercise the unconfigured paths.
func newTestServer(t *testing.T, mgr *config.Manager, ms relay.MediaServer, n relay.Notifier, log *events.EventLog) (*Server, *http.ServeMux) {
	t.Helper()
	engine := relay.NewEngine(mgr, ms, n, nil, slog.Default())
	srv, err := New(ServerDeps{
		Config:   mgr,
		Engine:   engine,
		Server:   ms,
		Notifier: n,
		EventLog: log,
	})
	require.NoError(t, err)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	return srv, mux
}

func authedRequest(method, target string, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set("X-Api-Key", testToken)
	return r
}

func TestNew_MissingDeps(t *testing.T) {
	_, err := New(ServerDeps{})
	assert.Error(t, err)

	_, err = New(ServerDeps{Config: testManager(t, baseConfig)})
	assert.Error(t, err)
}

func TestWebhook_Accepted(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	body := `{"eventType": "Download", "movieFile": {"path": "/media/movies/Foo (2020)/foo.mkv"}}`
	req := httptest.NewRequest("POST", "/webhook/"+testToken, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp webhookResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, "radarr", resp.Source)
}

func TestWebhook_NothingActionable(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	req := httptest.NewRequest("POST", "/webhook/"+testToken, strings.NewReader(`{"eventType": "Test"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp webhookResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Accepted)
}

func TestWebhook_InvalidToken(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	req := httptest.NewRequest("POST", "/webhook/wrong-token", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_MissingToken(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_InvalidJSON(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	req := httptest.NewRequest("POST", "/webhook/"+testToken, strings.NewReader(`{not json`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "INVALID_JSON", resp.Code)
}

func TestAPI_RequiresKey(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/status", nil)
	req.Header.Set("X-Api-Key", "wrong")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetStatus(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/status", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.JellyfinConfigured)
	assert.False(t, resp.PushoverConfigured)
	assert.Equal(t, 2, resp.Libraries)
	assert.Equal(t, 0, resp.TrackedFiles)
}

func TestListLibraries(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/libraries", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp listLibrariesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "Movies", resp.Libraries[0].Name)
	assert.Equal(t, "v1", resp.Libraries[0].ID)
	assert.Equal(t, "TV", resp.Libraries[1].Name)
}

func TestListLibraries_JoinsViews(t *testing.T) {
	const cfgWithJellyfin = baseConfig + `
[jellyfin]
url = "http://jellyfin:8096"
api_key = "key"
user_id = "user1"
`
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)
	server.EXPECT().
		GetViews(gomock.Any(), "user1").
		Return([]jellyfin.View{{ID: "v1", Name: "Movies"}}, nil)

	_, mux := newTestServer(t, testManager(t, cfgWithJellyfin), server, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/libraries", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp listLibrariesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 2, resp.Total)
	require.NotNil(t, resp.Libraries[0].ViewMatched)
	assert.True(t, *resp.Libraries[0].ViewMatched)
	require.NotNil(t, resp.Libraries[1].ViewMatched)
	assert.False(t, *resp.Libraries[1].ViewMatched)
}

func TestUpdateLibrary(t *testing.T) {
	mgr := testManager(t, baseConfig)
	_, mux := newTestServer(t, mgr, nil, nil, nil)

	body := `{"notify_enabled": false, "device": "phone", "priority": 1}`
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("PUT", "/api/v1/libraries/Movies", body))

	require.Equal(t, http.StatusOK, w.Code)

	var resp libraryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.NotifyEnabled)
	assert.Equal(t, "phone", resp.Device)
	assert.Equal(t, 1, resp.Priority)
	// Untouched fields survive
	assert.Equal(t, "/media/movies", resp.WatchPath)
	assert.True(t, resp.ScanEnabled)

	lib := mgr.Current().Library("Movies")
	require.NotNil(t, lib)
	assert.False(t, lib.NotifyEnabled)
}

func TestUpdateLibrary_NotFound(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("PUT", "/api/v1/libraries/Nope", `{"priority": 1}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationSettings_RoundTrip(t *testing.T) {
	mgr := testManager(t, baseConfig)
	_, mux := newTestServer(t, mgr, nil, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/settings/notifications", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var got notificationSettingsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))

	got.Movie.IncludePath = true
	got.Movie.UseEmojis = false
	body, err := json.Marshal(got)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("PUT", "/api/v1/settings/notifications", string(body)))
	require.Equal(t, http.StatusOK, w.Code)

	opts := mgr.Current().Options("movie")
	assert.True(t, opts.IncludePath)
	assert.False(t, opts.UseEmojis)
}

func TestTestNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)

	var sent pushover.Message
	notifier.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, msg pushover.Message) error {
			sent = msg
			return nil
		})

	_, mux := newTestServer(t, testManager(t, baseConfig), nil, notifier, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("POST", "/api/v1/notifications/test", `{"device": "phone"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, sent.Title, "Test Movie")
	assert.Equal(t, "phone", sent.Device)
}

func TestTestNotification_MockItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)

	var sent pushover.Message
	notifier.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, msg pushover.Message) error {
			sent = msg
			return nil
		})

	cfg := baseConfig + `
[notifications.episode]
include_overview = true
include_codec = true
include_filesize = true
include_path = true
`
	_, mux := newTestServer(t, testManager(t, cfg), nil, notifier, nil)

	body := `{
		"media_type": "episode",
		"series_name": "The Wire",
		"season_num": 3,
		"episode_num": 11,
		"episode_name": "Middle Ground",
		"overview": "Omar and Brother Mouzone settle accounts.",
		"codec": "av1",
		"path": "/media/tv/The Wire/Season 03/s03e11.mkv",
		"filesize": "2.1 GB"
	}`
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("POST", "/api/v1/notifications/test", body))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, sent.Title, "The Wire")
	assert.Contains(t, sent.Title, "S03E11")
	assert.Contains(t, sent.Body, "Omar and Brother Mouzone settle accounts.")
	assert.Contains(t, sent.Body, "Codec: AV1")
	assert.Contains(t, sent.Body, "Size: 2.1 GB")
	assert.Contains(t, sent.Body, "Path: /media/tv/The Wire/Season 03/s03e11.mkv")
}

func TestTestNotification_NoNotifier(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("POST", "/api/v1/notifications/test", ""))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTriggerScan_All(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)
	server.EXPECT().RefreshAllLibraries(gomock.Any()).Return(nil)

	_, mux := newTestServer(t, testManager(t, baseConfig), server, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("POST", "/api/v1/scan", ""))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTriggerScan_Library(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)
	server.EXPECT().RefreshLibrary(gomock.Any(), "v1").Return(nil)

	_, mux := newTestServer(t, testManager(t, baseConfig), server, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("POST", "/api/v1/scan", `{"library": "Movies"}`))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTriggerScan_LibraryWithoutID(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	_, mux := newTestServer(t, testManager(t, baseConfig), server, nil, nil)

	// TV has no cached view id
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("POST", "/api/v1/scan", `{"library": "TV"}`))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTriggerScan_NoServer(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("POST", "/api/v1/scan", ""))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func setupEventLog(t *testing.T) *events.EventLog {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)
	return events.NewEventLog(db)
}

func TestListEvents(t *testing.T) {
	log := setupEventLog(t)
	for _, p := range []string{"/m/a.mkv", "/m/b.mkv", "/m/c.mkv"} {
		_, err := log.Append(&events.FileAccepted{
			BaseEvent: events.NewBaseEvent(events.EventFileAccepted, events.EntityFile, p),
			Path:      p,
		})
		require.NoError(t, err)
	}

	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, log)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/events?limit=2", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp listEventsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Items, 2)
	// Newest first
	assert.Equal(t, "/m/c.mkv", resp.Items[0].EntityKey)
	assert.Equal(t, events.EventFileAccepted, resp.Items[0].EventType)
	assert.NotEmpty(t, resp.Items[0].Payload)
}

func TestListEvents_ByPath(t *testing.T) {
	log := setupEventLog(t)
	for _, p := range []string{"/m/a.mkv", "/m/b.mkv"} {
		_, err := log.Append(&events.FileAccepted{
			BaseEvent: events.NewBaseEvent(events.EventFileAccepted, events.EntityFile, p),
			Path:      p,
		})
		require.NoError(t, err)
	}

	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, log)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/events?path=/m/a.mkv", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp listEventsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "/m/a.mkv", resp.Items[0].EntityKey)
}

func TestListEvents_TypeFilter(t *testing.T) {
	log := setupEventLog(t)
	_, err := log.Append(&events.FileAccepted{
		BaseEvent: events.NewBaseEvent(events.EventFileAccepted, events.EntityFile, "/m/a.mkv"),
		Path:      "/m/a.mkv",
	})
	require.NoError(t, err)
	_, err = log.Append(&events.PollTimeout{
		BaseEvent: events.NewBaseEvent(events.EventPollTimeout, events.EntityFile, "/m/a.mkv"),
		Path:      "/m/a.mkv",
		Attempts:  36,
	})
	require.NoError(t, err)

	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, log)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/events?type=poll.timeout", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp listEventsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, events.EventPollTimeout, resp.Items[0].EventType)
}

func TestListEvents_NoLog(t *testing.T) {
	_, mux := newTestServer(t, testManager(t, baseConfig), nil, nil, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest("GET", "/api/v1/events", ""))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
