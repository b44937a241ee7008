package cmd

import (
	"sync"
	"time"

	"github.com/wmhints/wmctl/internal/hints"
)

// windowCacheEntry holds a cached window listing with its timestamp.
type windowCacheEntry struct {
	windows   []windowEntry
	timestamp time.Time
}

// windowListCache provides a TTL-based cache for window listings, keyed by
// ordering. Listing walks every managed window for its title, desktop, and
// PID, which is several round trips an agent tends to repeat in quick
// succession.
type windowListCache struct {
	mu      sync.Mutex
	entries map[bool]windowCacheEntry
	ttl     time.Duration
}

// newWindowListCache creates a new cache. A ttl of 0 disables caching.
func newWindowListCache(ttl time.Duration) *windowListCache {
	return &windowListCache{
		entries: make(map[bool]windowCacheEntry),
		ttl:     ttl,
	}
}

// list returns cached window entries if within TTL, otherwise reads fresh.
// The caller holds the connection lock.
func (c *windowListCache) list(client *hints.Client, stacking bool) ([]windowEntry, error) {
	if c.ttl == 0 {
		return listWindows(client, stacking)
	}

	c.mu.Lock()
	if entry, ok := c.entries[stacking]; ok && time.Since(entry.timestamp) < c.ttl {
		windows := entry.windows
		c.mu.Unlock()
		return windows, nil
	}
	c.mu.Unlock()

	windows, err := listWindows(client, stacking)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[stacking] = windowCacheEntry{windows: windows, timestamp: time.Now()}
	c.mu.Unlock()

	return windows, nil
}

// invalidate clears the cache, used after requests that change the window
// list.
func (c *windowListCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[bool]windowCacheEntry)
}

