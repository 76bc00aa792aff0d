package tileset

import (
	"image"
	"sync"

	"iso-landgen/internal/terrain"
)

type tileKey struct {
	arch terrain.Archetype
	step int
}

// BuildFunc derives one transformed tile.
type BuildFunc func(a terrain.Archetype, step int) (*image.NRGBA, error)

// TileCache memoizes transformed tiles per (archetype, rotation step).
// Each key is built at most once; concurrent callers for the same key wait
// for the first build and share its result.
type TileCache struct {
	mu    sync.RWMutex
	items map[tileKey]*tileEntry
	build BuildFunc
}

type tileEntry struct {
	once sync.Once
	img  *image.NRGBA
	err  error
}

// NewTileCache creates an empty cache backed by build.
func NewTileCache(build BuildFunc) *TileCache {
	return &TileCache{
		items: make(map[tileKey]*tileEntry),
		build: build,
	}
}

// Get returns the cached tile, building it on first access.
func (c *TileCache) Get(a terrain.Archetype, step int) (*image.NRGBA, error) {
	key := tileKey{a, step}

	// Fast path: read lock
	c.mu.RLock()
	entry, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		// Write lock with double-check
		c.mu.Lock()
		if entry, exists = c.items[key]; !exists {
			entry = &tileEntry{}
			c.items[key] = entry
		}
		c.mu.Unlock()
	}

	entry.once.Do(func() {
		entry.img, entry.err = c.build(a, step)
	})
	return entry.img, entry.err
}

// Len returns the number of keys that have been requested.
func (c *TileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
