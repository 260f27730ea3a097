package relay

import (
	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
)

// GlobalName is the library name reported when no watch folder matches.
const GlobalName = "Global"

// ResolveTargetLibrary maps a file path to a configured library by
// watch-folder segment match. Libraries are tested in stored order and
// the first match wins. The returned id comes from the live server
// views (matched by exact name); it is empty when the view is unknown.
// No match returns ("", GlobalName, nil).
func ResolveTargetLibrary(filePath string, libraries []config.Library, views []jellyfin.View) (string, string, *config.Library) {
	normalized := NormalizePath(filePath)

	for i := range libraries {
		lib := &libraries[i]
		seg := WatchSegment(lib.WatchPath)
		if !segmentInPath(seg, normalized) {
			continue
		}
		id := ""
		for _, v := range views {
			if v.Name == lib.Name {
				id = v.ID
				break
			}
		}
		return id, lib.Name, lib
	}
	return "", GlobalName, nil
}
