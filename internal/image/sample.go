package image

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/colour"
)

// DefaultMaxDimension is the longest side an image is reduced to before sampling.
const DefaultMaxDimension = 512

// Sample returns the image's pixels in row-major order. Images whose longer
// side exceeds maxDimension are first scaled down with bilinear filtering,
// keeping the aspect ratio. A non-positive maxDimension samples every pixel.
// Alpha is ignored.
func Sample(img image.Image, maxDimension int) []colour.RGB {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil
	}

	targetW, targetH := ScaledSize(width, height, maxDimension)
	dst := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
	if targetW == width && targetH == height {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}

	pixels := make([]colour.RGB, 0, targetW*targetH)
	for y := 0; y < targetH; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+targetW*4]
		for x := 0; x < len(row); x += 4 {
			pixels = append(pixels, colour.RGB{R: row[x], G: row[x+1], B: row[x+2]})
		}
	}
	return pixels
}

// ScaledSize returns the dimensions after fitting the longer side within
// maxDimension. Sizes already within bounds are returned unchanged.
func ScaledSize(width, height, maxDimension int) (int, int) {
	longest := max(width, height)
	if maxDimension <= 0 || longest <= maxDimension {
		return width, height
	}
	w := max(width*maxDimension/longest, 1)
	h := max(height*maxDimension/longest, 1)
	return w, h
}
