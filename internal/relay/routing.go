package relay

import (
	"context"
	"log/slog"

	"github.com/vmunix/jellyrelay/internal/config"
	"github.com/vmunix/jellyrelay/internal/jellyfin"
)

// MatchKind records how a routing decision was reached.
type MatchKind int

const (
	FolderMatch MatchKind = iota
	AncestorMatch
	GlobalDefault
)

func (k MatchKind) String() string {
	switch k {
	case FolderMatch:
		return "folder"
	case AncestorMatch:
		return "ancestor"
	default:
		return "global"
	}
}

// maxAncestorHops bounds the upward traversal so a parent cycle in
// server data cannot loop forever.
const maxAncestorHops = 5

// Decision holds the delivery settings resolved for one notification.
type Decision struct {
	NotifyEnabled bool
	Device        string
	Priority      int
	Library       string
	Kind          MatchKind
}

// Router resolves which library owns a completed item and what
// delivery settings apply.
type Router struct {
	server MediaServer
	log    *slog.Logger
}

// NewRouter creates a notification router.
func NewRouter(server MediaServer, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{server: server, log: log.With("component", "router")}
}

// Resolve picks routing in two phases: a watch-folder segment match on
// the originating path, then an ancestor walk from the item up to a
// known server view. When neither applies, notifications fall through
// to an enabled global default.
func (r *Router) Resolve(ctx context.Context, item *jellyfin.Item, filePath, userID string, libraries []config.Library, views []jellyfin.View) Decision {
	// Phase A: folder match against the trigger path.
	if filePath != "" {
		if _, name, lib := ResolveTargetLibrary(filePath, libraries, views); lib != nil {
			return decisionFor(name, lib, FolderMatch)
		}
	}

	// Phase B: walk parent linkage up to a known view.
	if item != nil && r.server != nil {
		if name := r.ancestorView(ctx, item, userID, views); name != "" {
			for i := range libraries {
				if libraries[i].Name == name {
					return decisionFor(name, &libraries[i], AncestorMatch)
				}
			}
		}
	}

	return Decision{NotifyEnabled: true, Library: GlobalName, Kind: GlobalDefault}
}

// ancestorView walks upward through parent/season/series linkage and
// returns the name of the first known view encountered, or "".
func (r *Router) ancestorView(ctx context.Context, item *jellyfin.Item, userID string, views []jellyfin.View) string {
	viewNames := make(map[string]string, len(views))
	for _, v := range views {
		viewNames[v.ID] = v.Name
	}

	current := item
	for hop := 0; hop < maxAncestorHops; hop++ {
		if name, ok := viewNames[current.ID]; ok {
			return name
		}
		parentID := current.ParentLinkID()
		if parentID == "" {
			return ""
		}
		if name, ok := viewNames[parentID]; ok {
			return name
		}
		parent, err := r.server.GetItem(ctx, parentID, userID)
		if err != nil {
			r.log.Warn("ancestor lookup failed", "item", parentID, "error", err)
			return ""
		}
		current = parent
	}
	return ""
}

func decisionFor(name string, lib *config.Library, kind MatchKind) Decision {
	return Decision{
		NotifyEnabled: lib.NotifyEnabled,
		Device:        lib.Device,
		Priority:      lib.Priority,
		Library:       name,
		Kind:          kind,
	}
}
