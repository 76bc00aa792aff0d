package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"iso-landgen/internal/terrain"

	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// BaseSize is the source texture side at resolution 1.
const BaseSize = 128

// LoadSource reads the top-down texture and forces it square at
// BaseSize*resolution pixels. Nearest-neighbour keeps pixel art sharp.
func LoadSource(path string, resolution int) (*image.NRGBA, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("texture: resolution must be >= 1, got %d", resolution)
	}
	img, err := Decode(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w: %s: %w", terrain.ErrInputNotFound, path, err)
	}
	return Square(img, resolution), nil
}

// decoders maps a lower-case file extension to its decoder. The tga
// package registers itself with an empty magic string and would claim
// every file passed to image.Decode, so known formats never go through
// format sniffing.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".gif":  gif.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
}

// Decode reads an image file, picking the decoder by extension. Unknown
// extensions fall back to image.Decode.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if dec, ok := decoders[strings.ToLower(filepath.Ext(path))]; ok {
		img, err := dec(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return img, nil
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Square resizes any image to the BaseSize*resolution square source.
func Square(img image.Image, resolution int) *image.NRGBA {
	side := BaseSize * resolution
	return imaging.Resize(img, side, side, imaging.NearestNeighbor)
}

// LoadMatte reads a stencil and converts it to a grayscale matte. Colour
// is premultiplied by alpha first, so transparent stencil pixels clip.
func LoadMatte(path string) (*image.Gray, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open stencil %s: %w", path, err)
	}
	return toGray(img), nil
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetGray(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(src.At(x, y)).(color.Gray))
		}
	}
	return dst
}
