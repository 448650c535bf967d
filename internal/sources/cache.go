// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources provides clients for the external bibliographic APIs:
// arXiv, Crossref, OpenAlex, and Semantic Scholar. Every exported adapter
// operation caches its response process-wide and contains failures —
// network errors, timeouts, and non-2xx statuses all yield empty results
// so the resolution cascade can fall through to the next tier.
package sources

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
	"time"
)

// DefaultTTL is the lifetime of cached adapter responses.
const DefaultTTL = 24 * time.Hour

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// Cache memoizes adapter responses, keyed by operation name and arguments.
// Entries expire after the TTL. Writes for the same key are idempotent
// (the same call always recomputes the same value), so a single mutex is
// all the coordination needed.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry

	// now is replaceable in tests to exercise expiry.
	now func() time.Time
}

// NewCache returns a Cache with the given TTL. A non-positive TTL falls
// back to DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) put(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: v, storedAt: c.now()}
}

// cacheKey builds a stable key from an operation name and its ordered
// arguments. Arguments are hashed so that keys stay bounded regardless of
// input length.
func cacheKey(op string, args ...string) string {
	h := sha256.New()
	io.WriteString(h, op)
	for _, a := range args {
		h.Write([]byte{0})
		io.WriteString(h, a)
	}
	return op + ":" + hex.EncodeToString(h.Sum(nil)[:8])
}
