package store

import (
	"sync"

	"video-digest/pkg/domain"
)

// SessionCache is the short-lived in-process cache consulted before the
// durable store. It is owned by whoever wires the pipeline (dependency
// injection, never a package-level singleton) and resets with the process.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]domain.StoredSummary
}

// NewSessionCache creates an empty session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{entries: make(map[string]domain.StoredSummary)}
}

// Get returns the cached entry for videoID, if present.
func (c *SessionCache) Get(videoID string) (domain.StoredSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[videoID]
	return entry, ok
}

// Put stores entry, replacing any previous one. Unlike the durable store the
// session cache has no insert-only discipline; it only ever mirrors what the
// durable store accepted.
func (c *SessionCache) Put(entry domain.StoredSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.VideoID] = entry
}

// Len reports the number of cached entries.
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
