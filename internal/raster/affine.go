package raster

import (
	"image"
	"math"

	"iso-landgen/internal/mathutil"

	"golang.org/x/image/draw"
)

// projectionScale ties the translation to the 1.5×2 canvas oversize below.
// It was fixed empirically; changing the canvas factors means re-deriving it.
const projectionScale = 4

// halfCanvas is the un-doubled projection canvas side: round(n·1.5), with
// ties going to even.
func halfCanvas(n int) int {
	return int(math.RoundToEven(float64(n) * 1.5))
}

// CanvasSize returns the projection canvas for a w×h base image.
func CanvasSize(w, h int) (int, int) {
	return halfCanvas(w) * 2, halfCanvas(h) * 2
}

// Coefficients returns the destination-to-source affine map that projects a
// w×h base image through the archetype matrix m.
func Coefficients(m mathutil.Mat2, w, h int) mathutil.Aff {
	// Image coordinates are transposed relative to the table convention.
	combo := mathutil.Mat2Mul(mathutil.SwapXY, m).Transpose()

	nw, nh := float64(halfCanvas(w)), float64(halfCanvas(h))
	tc := combo.MulVec2(mathutil.Vec2{float64(w) / 2, float64(h) / 2})

	c := nw/2 - tc[0]*projectionScale
	f := nh/2 - tc[1]*projectionScale
	return mathutil.NewAff(combo, mathutil.Vec2{c, f})
}

// Project applies the archetype matrix to a base image. The result sits on
// an oversized transparent canvas; crop it before use.
func Project(base *image.NRGBA, m mathutil.Mat2) *image.NRGBA {
	b := base.Bounds()
	cw, ch := CanvasSize(b.Dx(), b.Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, cw, ch))

	d2s := Coefficients(m, b.Dx(), b.Dy())
	if b.Min != (image.Point{}) {
		d2s[2] += float64(b.Min.X)
		d2s[5] += float64(b.Min.Y)
	}
	draw.NearestNeighbor.Transform(dst, d2s.Invert().F64(), base, b, draw.Src, nil)
	return dst
}
