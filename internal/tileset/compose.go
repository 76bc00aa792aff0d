package tileset

import (
	"fmt"
	"image"
	"image/color"
	"path"
	"sort"
	"strings"

	"iso-landgen/internal/postprocess"
	"iso-landgen/internal/raster"
	"iso-landgen/internal/terrain"

	"github.com/disintegration/imaging"
)

// CompoundDir holds the half-tile stencils named by composite definitions.
const CompoundDir = "compound"

// sourceStep picks the rotation a composite half is cut from. In
// diagonal-on-slopes mode the upper/lower cliff halves come from the
// diagonally adjacent rotation so cliff corners blend into diagonal slopes.
func sourceStep(entry terrain.CompositeEntry, step int, diagonalOnSlopes bool) int {
	if !diagonalOnSlopes || !entry.Archetype.IsCliff() {
		return step
	}
	if strings.Contains(entry.Stencil, "lower") || strings.Contains(entry.Stencil, "upper") {
		return (step + 3) % raster.StepsDiagonal
	}
	return step
}

// Compose builds one composite image per rotation step.
func (e *Engine) Compose(def terrain.CompositeDefinition) ([]*image.NRGBA, error) {
	out := make([]*image.NRGBA, e.Steps())
	for step := range out {
		img, err := e.ComposeStep(def, step)
		if err != nil {
			return nil, err
		}
		out[step] = img
	}
	return out, nil
}

// ComposeStep builds the composite for a single rotation step.
func (e *Engine) ComposeStep(def terrain.CompositeDefinition, step int) (*image.NRGBA, error) {
	halves := make(map[string]*image.NRGBA, len(def.Entries))
	for _, entry := range def.Entries {
		src := sourceStep(entry, step, e.opts.DiagonalOnSlopes)
		tile, err := e.Tile(entry.Archetype, src)
		if err != nil {
			return nil, err
		}

		matte, err := e.stencils.Resolve(path.Join(CompoundDir, entry.Stencil))
		if err != nil {
			return nil, fmt.Errorf("tileset: composite %d: %w", def.Index, err)
		}
		half, err := postprocess.ClipToMatte(tile, matte)
		if err != nil {
			return nil, fmt.Errorf("tileset: composite %d: %v rotation %d with %s: %w",
				def.Index, entry.Archetype, src, entry.Stencil, err)
		}

		side := entry.Side()
		if side == "" {
			return nil, fmt.Errorf("tileset: composite %d: %w: %s names no side",
				def.Index, terrain.ErrInvalidComposite, entry.Stencil)
		}
		if _, dup := halves[side]; dup {
			return nil, fmt.Errorf("tileset: composite %d: %w: two %s halves",
				def.Index, terrain.ErrInvalidComposite, side)
		}
		halves[side] = half
	}

	img, err := Join(halves)
	if err != nil {
		return nil, fmt.Errorf("tileset: composite %d: %w", def.Index, err)
	}
	return img, nil
}

// Join assembles a left/right or upper/lower pair of halves. Left/right sit
// side by side; upper/lower are stacked with a 1px overlap so no seam shows.
// Any other set of halves is ErrInvalidComposite.
func Join(halves map[string]*image.NRGBA) (*image.NRGBA, error) {
	if len(halves) == 2 {
		if left, right := halves["left"], halves["right"]; left != nil && right != nil {
			lb, rb := left.Bounds(), right.Bounds()
			canvas := imaging.New(lb.Dx()+rb.Dx(), max(lb.Dy(), rb.Dy()), color.NRGBA{})
			canvas = imaging.Paste(canvas, left, image.Pt(0, 0))
			return imaging.Paste(canvas, right, image.Pt(lb.Dx(), 0)), nil
		}
		if upper, lower := halves["upper"], halves["lower"]; upper != nil && lower != nil {
			ub, lb := upper.Bounds(), lower.Bounds()
			canvas := imaging.New(max(ub.Dx(), lb.Dx()), ub.Dy()+lb.Dy()-1, color.NRGBA{})
			canvas = imaging.Paste(canvas, upper, image.Pt(0, 0))
			return imaging.Paste(canvas, lower, image.Pt(0, ub.Dy()-1)), nil
		}
	}

	sides := make([]string, 0, len(halves))
	for s := range halves {
		sides = append(sides, s)
	}
	sort.Strings(sides)
	return nil, fmt.Errorf("%w: halves %v", terrain.ErrInvalidComposite, sides)
}
