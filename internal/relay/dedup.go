package relay

import (
	"sync"
	"time"
)

// Dedup suppresses repeated events for the same file path inside a
// fixed window. Entries are swept opportunistically on each intake, so
// no background timer is needed.
type Dedup struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

// NewDedup creates a dedup cache with the given suppression window.
func NewDedup(window time.Duration) *Dedup {
	return &Dedup{
		window:  window,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// ShouldProcess reports whether path should spawn a task. The first
// call for a path inside the window returns true and records it; later
// calls within the window return false. Expired entries are removed as
// a side effect.
func (d *Dedup) ShouldProcess(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.sweepLocked(now)

	if seen, ok := d.entries[path]; ok && now.Sub(seen) < d.window {
		return false
	}
	d.entries[path] = now
	return true
}

// Age returns how long ago path was first seen, and whether it is
// currently tracked.
func (d *Dedup) Age(path string) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	seen, ok := d.entries[path]
	if !ok {
		return 0, false
	}
	return d.now().Sub(seen), true
}

// Len returns the number of tracked entries. Used by the status API.
func (d *Dedup) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

func (d *Dedup) sweepLocked(now time.Time) {
	for p, seen := range d.entries {
		if now.Sub(seen) >= d.window {
			delete(d.entries, p)
		}
	}
}
