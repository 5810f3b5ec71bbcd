package qdrantDB

import "sync"

// CollectionCache remembers which collections are known to exist so repeat
// ingestions skip the existence round-trip. It is owned by one Store, not a
// package global, and Clear gives tests a defined reset point. Only positive
// results are cached: absence is always re-checked.
type CollectionCache struct {
	mu    sync.RWMutex
	known map[string]bool
}

func NewCollectionCache() *CollectionCache {
	return &CollectionCache{known: make(map[string]bool)}
}

func (c *CollectionCache) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.known[name]
}

func (c *CollectionCache) Set(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.known[name] = true
}

func (c *CollectionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.known = make(map[string]bool)
}
