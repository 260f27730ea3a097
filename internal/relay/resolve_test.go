package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
)

func TestResolveTargetLibrary_FolderMatch(t *testing.T) {
	libs := []config.Library{
		{Name: "Movies", WatchPath: "/media/Movies"},
		{Name: "TV", WatchPath: "/media/TV"},
	}
	views := []jellyfin.View{
		{ID: "v1", Name: "Movies"},
		{ID: "v2", Name: "TV"},
	}

	id, name, lib := ResolveTargetLibrary("/media/Movies/Heat (1995)/heat.mkv", libs, views)
	assert.Equal(t, "v1", id)
	assert.Equal(t, "Movies", name)
	require.NotNil(t, lib)
	assert.Equal(t, "Movies", lib.Name)
}

func TestResolveTargetLibrary_FirstMatchInStoredOrder(t *testing.T) {
	// Both watch folders appear as segments; the first configured
	// library must win.
	libs := []config.Library{
		{Name: "Archive", WatchPath: "/archive"},
		{Name: "Movies", WatchPath: "/media/Movies"},
	}
	views := []jellyfin.View{
		{ID: "a1", Name: "Archive"},
		{ID: "m1", Name: "Movies"},
	}

	id, name, _ := ResolveTargetLibrary("/archive/Movies/heat.mkv", libs, views)
	assert.Equal(t, "a1", id)
	assert.Equal(t, "Archive", name)
}

func TestResolveTargetLibrary_CaseInsensitive(t *testing.T) {
	libs := []config.Library{{Name: "Movies", WatchPath: "/media/MOVIES"}}

	_, name, lib := ResolveTargetLibrary("/Media/movies/heat.mkv", libs, nil)
	assert.Equal(t, "Movies", name)
	assert.NotNil(t, lib)
}

func TestResolveTargetLibrary_NoMatch(t *testing.T) {
	libs := []config.Library{{Name: "Movies", WatchPath: "/media/Movies"}}

	id, name, lib := ResolveTargetLibrary("/downloads/heat.mkv", libs, nil)
	assert.Empty(t, id)
	assert.Equal(t, GlobalName, name)
	assert.Nil(t, lib)
}

func TestResolveTargetLibrary_UnknownView(t *testing.T) {
	// Config matches but the server has no view with that name; the
	// library is still resolved with an empty id.
	libs := []config.Library{{Name: "Movies", WatchPath: "/media/Movies"}}
	views := []jellyfin.View{{ID: "t1", Name: "TV"}}

	id, name, lib := ResolveTargetLibrary("/media/Movies/heat.mkv", libs, views)
	assert.Empty(t, id)
	assert.Equal(t, "Movies", name)
	assert.NotNil(t, lib)
}

func TestResolveTargetLibrary_EmptyWatchPathSkipped(t *testing.T) {
	libs := []config.Library{
		{Name: "Unset", WatchPath: ""},
		{Name: "Movies", WatchPath: "/media/Movies"},
	}

	_, name, _ := ResolveTargetLibrary("/media/Movies/heat.mkv", libs, nil)
	assert.Equal(t, "Movies", name)
}

func TestResolveTargetLibrary_WindowsPath(t *testing.T) {
	libs := []config.Library{{Name: "TV", WatchPath: "/media/TV Shows"}}

	_, name, _ := ResolveTargetLibrary(`D:\media\TV Shows\Show\S01E01.mkv`, libs, nil)
	assert.Equal(t, "TV", name)
}
