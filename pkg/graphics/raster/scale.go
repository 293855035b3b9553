package raster

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Scale resamples src by factor with a Catmull-Rom filter. A factor of 1 or
// less than or equal to zero returns a plain RGBA copy of src.
func Scale(src image.Image, factor float64) *image.RGBA {
	b := src.Bounds()
	if factor <= 0 || factor == 1 {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
		return dst
	}
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
