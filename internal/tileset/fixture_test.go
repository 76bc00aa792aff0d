package tileset

import (
	"image"
	"image/color"
	"testing"

	"iso-landgen/internal/stencil"
	"iso-landgen/internal/terrain"
	"iso-landgen/internal/texture"

	"github.com/disintegration/imaging"
)

// newTestEngine builds an engine over a flat white source and a freshly
// synthesized stencil set.
func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	return newTestEngineFrom(t, imaging.New(128, 128, color.NRGBA{255, 255, 255, 255}), opts)
}

func newTestEngineFrom(t *testing.T, src *image.NRGBA, opts Options) *Engine {
	t.Helper()
	dir := t.TempDir()
	tables := terrain.DefaultTables()
	if _, err := stencil.Generate(dir, tables, src.Bounds().Dx()/texture.BaseSize); err != nil {
		t.Fatalf("stencils: %v", err)
	}
	idx, err := texture.BuildIndex(dir)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	e, err := New(src, tables, texture.NewCache(idx), opts)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

// gradient is a source whose rotations are all distinct.
func gradient(side int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / side), uint8(y * 255 / side), 90, 255})
		}
	}
	return img
}

func sameImage(a, b *image.NRGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := 0; y < a.Bounds().Dy(); y++ {
		for x := 0; x < a.Bounds().Dx(); x++ {
			if a.NRGBAAt(a.Bounds().Min.X+x, a.Bounds().Min.Y+y) != b.NRGBAAt(b.Bounds().Min.X+x, b.Bounds().Min.Y+y) {
				return false
			}
		}
	}
	return true
}
