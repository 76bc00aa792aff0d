package stencil

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"iso-landgen/internal/postprocess"
	"iso-landgen/internal/raster"
	"iso-landgen/internal/terrain"
	"iso-landgen/internal/texture"

	"github.com/disintegration/imaging"
)

func TestGenerateWritesFullSet(t *testing.T) {
	dir := t.TempDir()
	tables := terrain.DefaultTables()
	files, err := Generate(dir, tables, 1)
	if err != nil {
		t.Fatal(err)
	}

	// 9 archetype stencils + 12 distinct compound halves
	if len(files) != 21 {
		t.Errorf("expected 21 files, got %d", len(files))
	}
	for _, a := range terrain.Archetypes() {
		if _, err := os.Stat(filepath.Join(dir, a.StencilName())); err != nil {
			t.Errorf("%v: %v", a, err)
		}
	}
	for _, def := range tables.Composites {
		for _, e := range def.Entries {
			if _, err := os.Stat(filepath.Join(dir, "compound", e.Stencil)); err != nil {
				t.Errorf("%s: %v", e.Stencil, err)
			}
		}
	}

	m, err := texture.LoadMatte(filepath.Join(dir, "flat_land.png"))
	if err != nil {
		t.Fatal(err)
	}
	square := imaging.New(texture.BaseSize, texture.BaseSize, color.NRGBA{255, 255, 255, 255})
	cropped, err := postprocess.CropAlpha(raster.Project(square, tables.Matrices[terrain.FlatLand]))
	if err != nil {
		t.Fatal(err)
	}
	if m.Bounds().Dx() != cropped.Bounds().Dx()-2 {
		t.Errorf("stencil should be 2px narrower than the projection: %v vs %v", m.Bounds(), cropped.Bounds())
	}
	if m.Bounds().Dy() < cropped.Bounds().Dy()-2 || m.Bounds().Dy() > cropped.Bounds().Dy() {
		t.Errorf("stencil height %d out of range for projection %v", m.Bounds().Dy(), cropped.Bounds())
	}
	if m.GrayAt(m.Bounds().Dx()/2, m.Bounds().Dy()/2).Y != 255 {
		t.Error("stencil centre should be opaque")
	}
}

func TestHalf(t *testing.T) {
	full := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range full.Pix {
		full.Pix[i] = 255
	}
	tests := []struct {
		side    string
		on, off image.Point
	}{
		{"left", image.Pt(1, 1), image.Pt(2, 1)},
		{"right", image.Pt(2, 1), image.Pt(1, 1)},
		{"upper", image.Pt(1, 1), image.Pt(1, 2)},
		{"lower", image.Pt(1, 2), image.Pt(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.side, func(t *testing.T) {
			h, err := Half(full, tt.side)
			if err != nil {
				t.Fatal(err)
			}
			if h.Bounds() != full.Bounds() {
				t.Errorf("half must keep the canvas, got %v", h.Bounds())
			}
			if h.GrayAt(tt.on.X, tt.on.Y).Y != 255 || h.GrayAt(tt.off.X, tt.off.Y).Y != 0 {
				t.Errorf("wrong half kept")
			}
		})
	}

	if _, err := Half(full, "middle"); !errors.Is(err, terrain.ErrInvalidComposite) {
		t.Errorf("expected ErrInvalidComposite, got %v", err)
	}
}

func TestGenerateRejectsZeroResolution(t *testing.T) {
	if _, err := Generate(t.TempDir(), terrain.DefaultTables(), 0); err == nil {
		t.Error("expected an error")
	}
}
