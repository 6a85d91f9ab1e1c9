package corpus

import (
	"sync"

	"zonewarden/internal/types"
)

// cacheEntry remembers one parse outcome, success or failure.
type cacheEntry struct {
	doc *types.Document
	err error
}

// Cache is a parse cache keyed by document name, populated at most once per
// name within a run. A race to populate the same entry is benign: both
// writers produce the same value. Entries are never invalidated within a
// run; Reset starts a fresh one.
type Cache struct {
	loader *Loader

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache creates an empty cache backed by the given loader.
func NewCache(loader *Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the parsed document for name, loading it on first access.
func (c *Cache) Get(name string) (*types.Document, error) {
	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		return entry.doc, entry.err
	}

	doc, err := c.loader.Load(name)

	c.mu.Lock()
	c.entries[name] = cacheEntry{doc: doc, err: err}
	c.mu.Unlock()
	return doc, err
}

// Reset drops every cached entry so changed files are re-parsed on the next
// run.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
