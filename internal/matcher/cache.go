package matcher

import (
	"sync"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
)

type cacheEntry struct {
	result    models.MatchResult
	expiresAt time.Time
}

// Cache keeps match results by ERP code for fixed time.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	entries map[string]cacheEntry
}

// NewCache returns new Cache with entries living for ttl.
func NewCache(ttl time.Duration, clock Clock) *Cache {
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns not expired result cached for code.
func (c *Cache) Get(code string) (models.MatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[code]
	if !ok {
		return models.MatchResult{}, false
	}

	if !c.clock.Now().Before(entry.expiresAt) {
		delete(c.entries, code)
		return models.MatchResult{}, false
	}

	return entry.result, true
}

// Set caches result for code.
func (c *Cache) Set(code string, result models.MatchResult) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[code] = cacheEntry{
		result:    result,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// Invalidate removes result cached for code.
func (c *Cache) Invalidate(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, code)
}

// Len returns number of cached entries, including expired ones not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
