// Package eventdedup remembers recently handled webhook event ids so platform redeliveries
// are acknowledged without being processed twice.
package eventdedup

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a TTL set of webhook event ids.
type Cache struct {
	cache *cache.Cache
}

// New creates a Cache that remembers ids for ttl. A non-positive ttl disables deduplication
// and New returns nil; a nil *Cache reports every event as new.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return nil
	}
	return &Cache{
		cache: cache.New(ttl, 2*ttl),
	}
}

// FirstSeen records eventID and reports whether it had not been recorded yet.
// Events without an id are always new.
func (c *Cache) FirstSeen(eventID string) bool {
	if c == nil || eventID == "" {
		return true
	}
	// Add fails when the key is already present and unexpired.
	return c.cache.Add(eventID, struct{}{}, cache.DefaultExpiration) == nil
}

// Len returns the number of remembered ids, expired entries included until cleanup runs.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}
