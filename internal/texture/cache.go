package texture

import (
	"fmt"
	"image"
	"sync"

	"iso-landgen/internal/terrain"
)

// Resolver resolves a stencil name to a decoded grayscale matte.
type Resolver interface {
	Resolve(name string) (*image.Gray, error)
}

// Cache is a concurrency-safe stencil cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	matte *image.Gray
	err   error
}

// NewCache creates a new stencil cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a stencil by name. Load failures are cached too;
// a stencil that failed once fails the same way on every lookup.
func (c *Cache) Resolve(name string) (*image.Gray, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, fmt.Errorf("texture: %w: %s under %s", terrain.ErrStencilNotFound, name, c.index.Root())
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.matte, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	matte, err := LoadMatte(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.matte, entry.err
	}
	c.items[path] = &cacheEntry{matte: matte, err: err}
	return matte, err
}
