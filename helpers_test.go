package outline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// parseBitmap builds a bitmap from a textual picture, where '#' marks a foreground pixel.
func parseBitmap(rows ...string) *Bitmap {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	bmp := NewBitmap(width, height)
	for y, row := range rows {
		for x, c := range row {
			bmp.Set(x, y, c == '#')
		}
	}
	return bmp
}

// newGrayImage returns a white image with a black w x h block at (x0, y0).
func newGrayImage(width, height, x0, y0, w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	return img
}

func encodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t testing.TB, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}
