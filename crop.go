package facextract

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/facextract/utils"
)

// CropRegion cuts the face region out of the source image together with some
// surrounding context. The box is expanded on all sides by an eighth of the
// summed region sides (12.5% padding) and clamped to the image bounds, so the
// resulting crop can be smaller than the padded box near the image edges.
func CropRegion(src *image.NRGBA, reg Region) *image.NRGBA {
	padding := (reg.W + reg.H) / 8
	bounds := src.Bounds()

	x0 := utils.Max(reg.X-padding, 0)
	y0 := utils.Max(reg.Y-padding, 0)
	x1 := utils.Min(reg.X+reg.W+padding, bounds.Max.X)
	y1 := utils.Min(reg.Y+reg.H+padding, bounds.Max.Y)

	return imaging.Crop(src, image.Rect(x0, y0, x1, y1))
}
