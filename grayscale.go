package outline

import "image"

// Grayscale converts the image to an 8 bit intensity grid with the min point at (0, 0).
// Transparent pixels are composited over a white backdrop, so they end up as background.
func Grayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	if g, ok := src.(*image.Gray); ok && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		return g
	}

	dx, dy := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, dx, dy))

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// The color components are alpha premultiplied, add the missing white part.
			bg := 0xffff - a
			r, g, b = r+bg, g+bg, b+bg

			lum := (19595*r + 38470*g + 7471*b + 1<<15) >> 24
			dst.Pix[y*dst.Stride+x] = uint8(lum)
		}
	}
	return dst
}

// grayAt returns the intensity of the pixel at (x, y) of a zero based gray image.
func grayAt(img *image.Gray, x, y int) uint8 {
	return img.Pix[y*img.Stride+x]
}

