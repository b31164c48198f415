package outline

import "image"

// DefaultThreshold is the intensity separating foreground from background.
const DefaultThreshold uint8 = 128

// Binarize converts the grayscale image into a bitmap, where every pixel
// with an intensity lower than or equal to the threshold becomes foreground.
func Binarize(gray *image.Gray, threshold uint8) *Bitmap {
	// Translate the image to the origin, if that's not the case already.
	gray = Grayscale(gray)

	dx, dy := gray.Bounds().Dx(), gray.Bounds().Dy()
	bmp := NewBitmap(dx, dy)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			bmp.Pix[y*dx+x] = grayAt(gray, x, y) <= threshold
		}
	}
	return bmp
}
