// Package cache holds recently resolved prices in memory so repeated
// lookups of the same product do not re-scrape the competitor site.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/use-agent/pricescout/match"
	"github.com/use-agent/pricescout/models"
)

// entry holds a cached resolution with its creation timestamp.
type entry struct {
	resolution models.Resolution
	createdAt  time.Time
}

// Cache is an in-memory TTL cache for successful resolutions.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache with the given capacity and entry TTL. A background
// goroutine sweeps expired entries every 5 minutes. A zero or negative TTL
// returns nil, disabling caching at the call sites.
func New(maxEntries int, ttl time.Duration) *Cache {
	if ttl <= 0 {
		return nil
	}
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
	go c.cleanupLoop()
	return c
}

// Key derives a cache key from the competitor and the normalized product
// name, so trivial formatting differences share an entry.
func Key(competitorKey, productName string) string {
	h := sha256.New()
	h.Write([]byte(competitorKey))
	h.Write([]byte("|"))
	h.Write([]byte(match.Normalize(productName)))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached resolution if it exists and has not expired.
// The resolution is returned by value so callers can annotate it freely.
func (c *Cache) Get(key string) (models.Resolution, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return models.Resolution{}, false
	}
	return e.resolution, true
}

// Set stores a resolution. If the key is new and the cache is at capacity,
// a random entry is evicted to make room (map iteration order is random in
// Go). Overwriting an existing key never evicts.
func (c *Cache) Set(key string, res models.Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{resolution: res, createdAt: time.Now()}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
