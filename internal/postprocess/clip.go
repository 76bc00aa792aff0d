package postprocess

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// FitToStencil scales a cropped tile so it is two pixels wider than the
// stencil, keeping the tile's aspect ratio.
func FitToStencil(img *image.NRGBA, stencil *image.Gray) *image.NRGBA {
	b := img.Bounds()
	w := stencil.Bounds().Dx() + 2
	h := int(math.RoundToEven(float64(w) / float64(b.Dx()) * float64(b.Dy())))
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.CatmullRom)
}

// ClipToMatte centres the matte over img and multiplies img's alpha by it.
// Everything outside the matte footprint becomes fully transparent. The
// result is cropped to what survives.
func ClipToMatte(img *image.NRGBA, matte *image.Gray) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	mb := matte.Bounds()
	offX := floorDiv(w-mb.Dx(), 2)
	offY := floorDiv(h-mb.Dy(), 2)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		my := y - offY
		if my < 0 || my >= mb.Dy() {
			continue
		}
		srcOff := img.PixOffset(b.Min.X, b.Min.Y+y)
		dstOff := y * out.Stride
		for x := 0; x < w; x++ {
			mx := x - offX
			if mx < 0 || mx >= mb.Dx() {
				continue
			}
			m := matte.Pix[matte.PixOffset(mb.Min.X+mx, mb.Min.Y+my)]
			if m == 0 {
				continue
			}
			si := srcOff + x*4
			di := dstOff + x*4
			out.Pix[di] = img.Pix[si]
			out.Pix[di+1] = img.Pix[si+1]
			out.Pix[di+2] = img.Pix[si+2]
			out.Pix[di+3] = uint8((int(img.Pix[si+3])*int(m) + 127) / 255)
		}
	}
	return CropAlpha(out)
}

// floorDiv divides rounding toward negative infinity, so a matte larger than
// the tile is centred the same way as a smaller one.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CutToStencil runs the per-archetype crop/mask pipeline: crop the
// projection, scale it to the stencil, clip it and crop again.
func CutToStencil(projected *image.NRGBA, stencil *image.Gray) (*image.NRGBA, error) {
	cropped, err := CropAlpha(projected)
	if err != nil {
		return nil, err
	}
	return ClipToMatte(FitToStencil(cropped, stencil), stencil)
}
