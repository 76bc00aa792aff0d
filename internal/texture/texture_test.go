package texture

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"iso-landgen/internal/terrain"

	"github.com/disintegration/imaging"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSourceIsSquareAtResolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grass.png")
	writePNG(t, path, imaging.New(37, 90, color.NRGBA{30, 160, 40, 255}))

	for _, r := range []int{1, 2, 3} {
		src, err := LoadSource(path, r)
		if err != nil {
			t.Fatalf("resolution %d: %v", r, err)
		}
		want := 128 * r
		if src.Bounds().Dx() != want || src.Bounds().Dy() != want {
			t.Errorf("resolution %d: expected %dx%d, got %v", r, want, want, src.Bounds())
		}
	}
}

func TestLoadSourceKeepsPixelsSharp(t *testing.T) {
	// Two-colour checker: nearest-neighbour must not invent blended colours.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	black, white := color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 255}
	img.SetNRGBA(0, 0, black)
	img.SetNRGBA(1, 1, black)
	img.SetNRGBA(1, 0, white)
	img.SetNRGBA(0, 1, white)
	path := filepath.Join(t.TempDir(), "checker.png")
	writePNG(t, path, img)

	src, err := LoadSource(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			c := src.NRGBAAt(x, y)
			if c != black && c != white {
				t.Fatalf("pixel (%d,%d) = %v is neither black nor white", x, y, c)
			}
		}
	}
}

func TestLoadSourceMissing(t *testing.T) {
	_, err := LoadSource(filepath.Join(t.TempDir(), "nope.png"), 1)
	if !errors.Is(err, terrain.ErrInputNotFound) {
		t.Errorf("expected ErrInputNotFound, got %v", err)
	}
}

func TestLoadSourceUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSource(path, 1); !errors.Is(err, terrain.ErrInputNotFound) {
		t.Errorf("expected ErrInputNotFound, got %v", err)
	}
}

func TestIndexResolvePath(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "flat_land.png"), image.NewGray(image.Rect(0, 0, 4, 4)))
	writePNG(t, filepath.Join(root, "compound", "Flat_Left.png"), image.NewGray(image.Rect(0, 0, 4, 4)))
	if err := os.WriteFile(filepath.Join(root, "README.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 2 {
		t.Errorf("expected 2 stencils, got %d", idx.Len())
	}
	for _, name := range []string{"flat_land.png", "compound/flat_left.png", "compound\\FLAT_LEFT.png"} {
		if _, ok := idx.ResolvePath(name); !ok {
			t.Errorf("%s: not resolved", name)
		}
	}
	if _, ok := idx.ResolvePath("cliff_left.png"); ok {
		t.Error("cliff_left.png should not resolve")
	}
}

func TestCacheResolve(t *testing.T) {
	root := t.TempDir()
	rgba := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	rgba.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	rgba.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 0}) // white but transparent
	rgba.SetNRGBA(2, 0, color.NRGBA{0, 0, 0, 255})
	writePNG(t, filepath.Join(root, "flat_land.png"), rgba)

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatal(err)
	}
	cache := NewCache(idx)

	var wg sync.WaitGroup
	got := make([]*image.Gray, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := cache.Resolve("flat_land.png")
			if err != nil {
				t.Error(err)
				return
			}
			got[i] = m
		}()
	}
	wg.Wait()

	first := got[0]
	if first == nil {
		t.Fatal("no matte resolved")
	}
	for i, m := range got {
		if m != first {
			t.Errorf("lookup %d returned a different matte", i)
		}
	}
	want := []uint8{255, 0, 0}
	for x, v := range want {
		if first.GrayAt(x, 0).Y != v {
			t.Errorf("pixel %d: expected %d, got %d", x, v, first.GrayAt(x, 0).Y)
		}
	}

	if _, err := cache.Resolve("compound/flat_right.png"); !errors.Is(err, terrain.ErrStencilNotFound) {
		t.Errorf("expected ErrStencilNotFound, got %v", err)
	}
}
