package postprocess

import (
	"fmt"
	"image"

	"iso-landgen/internal/terrain"

	"github.com/disintegration/imaging"
)

// AlphaBounds returns the bounding box of pixels with non-zero alpha, or an
// empty rectangle if the image is fully transparent.
func AlphaBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			px := b.Min.X + x
			if px < minX {
				minX = px
			}
			if px > maxX {
				maxX = px
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < minX || maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// CropAlpha crops to the bounding box of non-transparent pixels. A fully
// transparent image has nothing to crop to and yields ErrEmptyBoundingBox.
func CropAlpha(img *image.NRGBA) (*image.NRGBA, error) {
	bbox := AlphaBounds(img)
	if bbox.Empty() {
		return nil, fmt.Errorf("postprocess: %w (%dx%d image is fully transparent)",
			terrain.ErrEmptyBoundingBox, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return imaging.Crop(img, bbox), nil
}
