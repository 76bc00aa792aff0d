package tileset

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"

	"iso-landgen/internal/terrain"
)

func TestTileCacheBuildsEachKeyOnce(t *testing.T) {
	var builds atomic.Int64
	cache := NewTileCache(func(a terrain.Archetype, step int) (*image.NRGBA, error) {
		builds.Add(1)
		return image.NewNRGBA(image.Rect(0, 0, int(a)+1, step+1)), nil
	})

	var wg sync.WaitGroup
	results := make([]*image.NRGBA, 64)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := cache.Get(terrain.CliffLeft, 3)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = img
		}()
	}
	wg.Wait()

	if n := builds.Load(); n != 1 {
		t.Errorf("expected 1 build, got %d", n)
	}
	for i, img := range results {
		if img != results[0] {
			t.Errorf("caller %d observed a different tile", i)
		}
	}

	if _, err := cache.Get(terrain.FlatLand, 0); err != nil {
		t.Fatal(err)
	}
	if builds.Load() != 2 || cache.Len() != 2 {
		t.Errorf("expected 2 builds and 2 keys, got %d and %d", builds.Load(), cache.Len())
	}
}

func TestTileCacheRemembersErrors(t *testing.T) {
	boom := errors.New("boom")
	var builds atomic.Int64
	cache := NewTileCache(func(terrain.Archetype, int) (*image.NRGBA, error) {
		builds.Add(1)
		return nil, boom
	})
	for i := 0; i < 3; i++ {
		if _, err := cache.Get(terrain.FlatLand, 0); !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	}
	if builds.Load() != 1 {
		t.Errorf("expected a single build attempt, got %d", builds.Load())
	}
}
