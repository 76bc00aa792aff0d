package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"iso-landgen/internal/mathutil"
	"iso-landgen/internal/terrain"

	"github.com/disintegration/imaging"
)

func opaque(side int) *image.NRGBA {
	return imaging.New(side, side, color.NRGBA{255, 255, 255, 255})
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		w, h   int
		ww, wh int
	}{
		{128, 128, 384, 384},
		{256, 256, 768, 768},
		{3, 5, 8, 16}, // round(4.5)=4 (ties to even), round(7.5)=8
		{1, 1, 4, 4},
	}
	for _, tt := range tests {
		gw, gh := CanvasSize(tt.w, tt.h)
		if gw != tt.ww || gh != tt.wh {
			t.Errorf("CanvasSize(%d,%d): expected %dx%d, got %dx%d", tt.w, tt.h, tt.ww, tt.wh, gw, gh)
		}
	}
}

func TestCoefficientsFlatLand(t *testing.T) {
	m, _ := terrain.DefaultTables().Matrix(terrain.FlatLand)
	got := Coefficients(m, 128, 128)
	want := mathutil.Aff{1, -2, 352, 1, 2, -672}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestProjectCanvasForEveryArchetypeAndStep(t *testing.T) {
	tables := terrain.DefaultTables()
	bases, err := Expand(opaque(128), StepsDiagonal)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range terrain.Archetypes() {
		m, _ := tables.Matrix(a)
		for step, base := range bases {
			out := Project(base, m)
			b := base.Bounds()
			w, h := int(math.RoundToEven(float64(b.Dx())*1.5))*2, int(math.RoundToEven(float64(b.Dy())*1.5))*2
			if out.Bounds().Dx() != w || out.Bounds().Dy() != h {
				t.Errorf("%v step %d: expected %dx%d, got %v", a, step, w, h, out.Bounds())
			}
		}
	}
}

func TestProjectFlatLandIsDiamond(t *testing.T) {
	m, _ := terrain.DefaultTables().Matrix(terrain.FlatLand)
	out := Project(opaque(128), m)

	minX, minY, maxX, maxY := out.Bounds().Dx(), out.Bounds().Dy(), -1, -1
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			if out.NRGBAAt(x, y).A == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		t.Fatal("projection is empty")
	}
	w, h := maxX-minX+1, maxY-minY+1
	// A square under the flat-land matrix becomes a 2:1 diamond.
	if w < 2*h-4 || w > 2*h+4 {
		t.Errorf("expected a 2:1 diamond, got %dx%d", w, h)
	}
	// Diamond corners are transparent.
	if out.NRGBAAt(minX, minY).A != 0 || out.NRGBAAt(maxX, maxY).A != 0 {
		t.Error("expected transparent bounding-box corners")
	}
}
