package raster

import (
	"fmt"
	"image"

	"iso-landgen/internal/mathutil"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Orthogonal and diagonal rotation step counts.
const (
	StepsOrthogonal = 4
	StepsDiagonal   = 8
)

// Expand returns one base image per rotation step. Steps 0–3 turn the source
// by multiples of 90°; steps 4–7 (diagonal mode) add a further 45°.
func Expand(src *image.NRGBA, steps int) ([]*image.NRGBA, error) {
	if steps != StepsOrthogonal && steps != StepsDiagonal {
		return nil, fmt.Errorf("raster: rotation steps must be %d or %d, got %d", StepsOrthogonal, StepsDiagonal, steps)
	}
	bases := make([]*image.NRGBA, steps)
	for i := range bases {
		bases[i] = RotateStep(src, i)
	}
	return bases, nil
}

// RotateStep returns the base image for a single rotation step.
func RotateStep(src *image.NRGBA, step int) *image.NRGBA {
	switch step {
	case 0:
		return imaging.Clone(src)
	case 1:
		return imaging.Rotate90(src)
	case 2:
		return imaging.Rotate180(src)
	case 3:
		return imaging.Rotate270(src)
	}
	return rotateDiagonal(src, 90*float64(step-4)+45)
}

// rotateDiagonal tiles the source 3×3, turns the whole canvas and cuts the
// centre cell back out, so the corners a 45° turn would leave empty are
// filled by the neighbouring copies instead.
func rotateDiagonal(src *image.NRGBA, deg float64) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	tiled := image.NewNRGBA(image.Rect(0, 0, w*3, h*3))
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			draw.Copy(tiled, image.Pt(w*x, h*y), src, b, draw.Src, nil)
		}
	}

	rotated := image.NewNRGBA(tiled.Bounds())
	s2d := mathutil.RotationAbout(deg, float64(w*3)/2, float64(h*3)/2)
	draw.NearestNeighbor.Transform(rotated, s2d.F64(), tiled, tiled.Bounds(), draw.Src, nil)

	return imaging.Crop(rotated, image.Rect(w, h, w*2, h*2))
}
