package stencil

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"iso-landgen/internal/postprocess"
	"iso-landgen/internal/raster"
	"iso-landgen/internal/terrain"
	"iso-landgen/internal/texture"

	"github.com/disintegration/imaging"
)

// Generate writes a default stencil set for resolution under dir: one
// silhouette per archetype plus the compound halves the composite table
// names (in dir/compound). It returns the files written.
func Generate(dir string, tables *terrain.Tables, resolution int) ([]string, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("stencil: resolution must be >= 1, got %d", resolution)
	}
	if err := os.MkdirAll(filepath.Join(dir, "compound"), 0755); err != nil {
		return nil, fmt.Errorf("stencil: %w", err)
	}

	side := texture.BaseSize * resolution
	square := imaging.New(side, side, color.NRGBA{255, 255, 255, 255})

	var written []string
	silhouettes := make(map[terrain.Archetype]*image.Gray)
	for _, a := range terrain.Archetypes() {
		m, err := tables.Matrix(a)
		if err != nil {
			return nil, err
		}
		sil, err := Silhouette(raster.Project(square, m))
		if err != nil {
			return nil, fmt.Errorf("stencil: %v: %w", a, err)
		}
		silhouettes[a] = sil

		path := filepath.Join(dir, a.StencilName())
		if err := imaging.Save(sil, path); err != nil {
			return nil, fmt.Errorf("stencil: write %s: %w", path, err)
		}
		written = append(written, path)
	}

	seen := make(map[string]bool)
	for _, def := range tables.Composites {
		for _, e := range def.Entries {
			if seen[e.Stencil] {
				continue
			}
			seen[e.Stencil] = true

			half, err := Half(silhouettes[e.Archetype], e.Side())
			if err != nil {
				return nil, fmt.Errorf("stencil: %s: %w", e.Stencil, err)
			}
			path := filepath.Join(dir, "compound", e.Stencil)
			if err := imaging.Save(half, path); err != nil {
				return nil, fmt.Errorf("stencil: write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}

// Silhouette turns a projected opaque square into a binary matte two pixels
// narrower than the projection, the margin the crop pipeline scales back.
func Silhouette(projected *image.NRGBA) (*image.Gray, error) {
	cropped, err := postprocess.CropAlpha(projected)
	if err != nil {
		return nil, err
	}
	b := cropped.Bounds()
	w := b.Dx() - 2
	if w < 1 {
		return nil, fmt.Errorf("projection too narrow (%dpx)", b.Dx())
	}
	h := int(math.Round(float64(w) * float64(b.Dy()) / float64(b.Dx())))
	if h < 1 {
		h = 1
	}
	shrunk := imaging.Resize(cropped, w, h, imaging.NearestNeighbor)

	matte := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if shrunk.Pix[shrunk.PixOffset(x, y)+3] > 0 {
				matte.Pix[matte.PixOffset(x, y)] = 255
			}
		}
	}
	return matte, nil
}

// Half keeps one half of a matte ("left", "right", "upper" or "lower") and
// blanks the other. The canvas keeps its size so it centres the same way
// the full silhouette does.
func Half(matte *image.Gray, side string) (*image.Gray, error) {
	b := matte.Bounds()
	w, h := b.Dx(), b.Dy()

	var keep image.Rectangle
	switch side {
	case "left":
		keep = image.Rect(0, 0, w/2, h)
	case "right":
		keep = image.Rect(w/2, 0, w, h)
	case "upper":
		keep = image.Rect(0, 0, w, h/2)
	case "lower":
		keep = image.Rect(0, h/2, w, h)
	default:
		return nil, fmt.Errorf("%w: no half named %q", terrain.ErrInvalidComposite, side)
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := keep.Min.Y; y < keep.Max.Y; y++ {
		for x := keep.Min.X; x < keep.Max.X; x++ {
			out.Pix[out.PixOffset(x, y)] = matte.Pix[matte.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return out, nil
}
