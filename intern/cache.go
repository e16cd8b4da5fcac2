// Package intern bounds the allocation churn of repeated Atom and
// Bitstring payloads decoded at the handle boundary: an LRU keyed on
// content, sized once at construction and shared across any number of
// decode calls.
package intern

import lru "github.com/hashicorp/golang-lru"

// DefaultSize is used by NewCache(0).
const DefaultSize = 4096

// Cache deduplicates byte payloads by content so that decoding the
// same Atom or Bitstring name repeatedly reuses one backing array
// instead of allocating a fresh one each time.
type Cache struct {
	lru *lru.ARCCache
}

// NewCache creates a cache holding up to size distinct payloads. A
// size of 0 uses DefaultSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.NewARC(size)
	if err != nil {
		// Only invalid (non-positive) sizes cause NewARC to fail, and
		// size is normalized above, so this is unreachable in practice.
		panic(err)
	}
	return &Cache{lru: c}
}

// Intern returns a byte slice with the same contents as payload,
// reusing a previously cached copy when one exists for that exact
// content, and otherwise storing and returning a fresh copy. The
// returned slice must be treated as immutable by the caller.
func (c *Cache) Intern(payload []byte) []byte {
	key := string(payload)
	if v, ok := c.lru.Get(key); ok {
		return v.([]byte)
	}
	stored := make([]byte, len(payload))
	copy(stored, payload)
	c.lru.Add(key, stored)
	return stored
}

// Contains reports whether payload's exact content is currently cached.
func (c *Cache) Contains(payload []byte) bool {
	return c.lru.Contains(string(payload))
}

// Len returns the number of distinct payloads currently cached.
func (c *Cache) Len() int {
	return c.lru.Len()
}
