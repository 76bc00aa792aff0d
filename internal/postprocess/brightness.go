package postprocess

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Brighten scales the RGB channels of img by factor; alpha is left alone.
func Brighten(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clamp8(float64(c.R) * factor),
			G: clamp8(float64(c.G) * factor),
			B: clamp8(float64(c.B) * factor),
			A: c.A,
		}
	})
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
