package outline

import "image"

// Bitmap is a two level image. A true value marks a foreground pixel.
// The pixels are stored in row-major order.
type Bitmap struct {
	Width  int
	Height int
	Pix    []bool
}

// NewBitmap returns an empty (all background) bitmap of the given size.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// Bounds returns the bitmap domain.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At reports whether the pixel at (x, y) is foreground.
// Pixels outside the bitmap are background.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x]
}

// Set changes the pixel value at (x, y). Out of range coordinates are ignored.
func (b *Bitmap) Set(x, y int, fg bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = fg
}

// Count returns the number of foreground pixels.
func (b *Bitmap) Count() int {
	var n int
	for _, fg := range b.Pix {
		if fg {
			n++
		}
	}
	return n
}

// Valid reports whether the pixel buffer matches the bitmap dimensions.
func (b *Bitmap) Valid() bool {
	return b != nil && b.Width >= 0 && b.Height >= 0 && len(b.Pix) == b.Width*b.Height
}
