package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/jellyrelay/internal/jellyfin"
)

func TestEngine_SyncLibraries_AddsViews(t *testing.T) {
	server := &fakeServer{
		users: []jellyfin.User{{ID: "user1", Name: "admin"}},
		views: []jellyfin.View{
			{ID: "v1", Name: "Movies"},
			{ID: "v2", Name: "TV"},
		},
	}
	mgr := testConfig(t, `
[jellyfin]
url = "http://jellyfin:8096"
api_key = "key"
`)
	engine := newTestEngine(t, mgr, server, nil)

	result, err := engine.SyncLibraries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 2, result.Total)
	assert.Empty(t, result.Suggestions)

	cfg := mgr.Current()
	assert.Equal(t, "user1", cfg.Jellyfin.UserID, "first user id cached")
	movies := cfg.Library("Movies")
	require.NotNil(t, movies)
	assert.Equal(t, "v1", movies.ID)
	assert.True(t, movies.ScanEnabled)
	assert.True(t, movies.NotifyEnabled)
}

func TestEngine_SyncLibraries_UpdatesStaleID(t *testing.T) {
	server := &fakeServer{
		views: []jellyfin.View{{ID: "v1-new", Name: "Movies"}},
	}
	mgr := testConfig(t, readyConfig+`
[[libraries]]
name = "Movies"
watch_path = "/media/Movies"
id = "v1-old"
`)
	engine := newTestEngine(t, mgr, server, nil)

	result, err := engine.SyncLibraries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, "v1-new", mgr.Current().Library("Movies").ID)
	// Local settings survive the sync
	assert.Equal(t, "/media/Movies", mgr.Current().Library("Movies").WatchPath)
}

func TestEngine_SyncLibraries_SuggestsRename(t *testing.T) {
	server := &fakeServer{
		views: []jellyfin.View{{ID: "v1", Name: "Movies"}},
	}
	mgr := testConfig(t, readyConfig+`
[[libraries]]
name = "Moviez"
watch_path = "/media/Movies"
`)
	engine := newTestEngine(t, mgr, server, nil)

	result, err := engine.SyncLibraries(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Moviez", result.Suggestions[0].Library)
	assert.Equal(t, "Movies", result.Suggestions[0].ClosestView)
	assert.GreaterOrEqual(t, result.Suggestions[0].Score, suggestionThreshold)
}

func TestEngine_SyncLibraries_NoServer(t *testing.T) {
	engine := newTestEngine(t, testConfig(t, ""), nil, nil)

	_, err := engine.SyncLibraries(context.Background())
	assert.ErrorIs(t, err, ErrServerUnconfigured)
}

func TestEngine_SendTest(t *testing.T) {
	notifier := &fakeNotifier{}
	engine := newTestEngine(t, testConfig(t, readyConfig+`
[notifications.movie]
include_overview = true
include_filesize = true
`), nil, notifier)

	item := &jellyfin.Item{
		Type:           jellyfin.ItemTypeMovie,
		Name:           "Heat",
		ProductionYear: 1995,
		Overview:       "Bank robbers.",
	}
	err := engine.SendTest(context.Background(), item, "/media/Movies/heat.mkv", "4.2 GB", "phone", 1)
	require.NoError(t, err)

	msgs := notifier.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "✨ New Movie: Heat (1995)", msgs[0].Title)
	assert.Contains(t, msgs[0].Body, "Size: 4.2 GB")
	assert.Equal(t, "phone", msgs[0].Device)
	assert.Equal(t, 1, msgs[0].Priority)
}

func TestEngine_SendTest_NoNotifier(t *testing.T) {
	engine := newTestEngine(t, testConfig(t, readyConfig), nil, nil)

	err := engine.SendTest(context.Background(), &jellyfin.Item{Type: jellyfin.ItemTypeMovie}, "", "", "", 0)
	assert.ErrorIs(t, err, ErrNotifierUnconfigured)
}
