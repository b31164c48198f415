package outline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareBitmap returns a bitmap of the given size with an n x n square at (x0, y0).
func squareBitmap(width, height, x0, y0, n int) *Bitmap {
	bmp := NewBitmap(width, height)
	for y := y0; y < y0+n; y++ {
		for x := x0; x < x0+n; x++ {
			bmp.Set(x, y, true)
		}
	}
	return bmp
}

// noiseBitmap fills a bitmap with a deterministic pseudo random pattern.
func noiseBitmap(width, height int, seed uint32) *Bitmap {
	bmp := NewBitmap(width, height)
	for i := range bmp.Pix {
		seed = seed*1664525 + 1013904223
		bmp.Pix[i] = seed>>29 < 3
	}
	return bmp
}

func TestTrace_Square(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8} {
		bmp := squareBitmap(12, 12, 2, 3, n)

		contours, err := Trace(bmp)
		require.NoError(t, err)
		require.Len(t, contours, 1)

		c := contours[0]
		assert.Equal(t, 1, c.Region)
		assert.Equal(t, n*n, c.Area)
		assert.Len(t, c.Points, 4*(n-1))

		// Clockwise, starting from the top left corner.
		assert.Equal(t, Point{2, 3}, c.Points[0])
		assert.Equal(t, Point{3, 3}, c.Points[1])
		assert.Equal(t, Point{2, 4}, c.Points[len(c.Points)-1])

		seen := make(map[Point]bool)
		for _, p := range c.Points {
			onPerimeter := p.X == 2 || p.X == 2+n-1 || p.Y == 3 || p.Y == 3+n-1
			assert.True(t, onPerimeter, "%v is not on the square perimeter", p)
			assert.False(t, seen[p], "%v visited twice", p)
			seen[p] = true
		}
		assert.Equal(t, c.Bounds().Dx(), n)
		assert.Equal(t, c.Bounds().Dy(), n)
	}
}

func TestTrace_TwoByTwoBlock(t *testing.T) {
	bmp := parseBitmap(
		"....",
		".##.",
		".##.",
		"....",
	)
	contours, err := Trace(bmp)
	require.NoError(t, err)
	require.Len(t, contours, 1)

	assert.Equal(t, []Point{{1, 1}, {2, 1}, {2, 2}, {1, 2}}, contours[0].Points)
}

func TestTrace_BorderRegion(t *testing.T) {
	bmp := parseBitmap(
		"###",
		"###",
		"###",
	)
	contours, err := Trace(bmp)
	require.NoError(t, err)
	require.Len(t, contours, 1)

	expected := []Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}
	assert.Equal(t, expected, contours[0].Points)
}

func TestTrace_EmptyImage(t *testing.T) {
	contours, err := Trace(NewBitmap(10, 10))
	require.NoError(t, err)
	assert.Empty(t, contours)

	contours, err = Trace(NewBitmap(0, 0))
	require.NoError(t, err)
	assert.Empty(t, contours)
}

func TestTrace_SinglePixel(t *testing.T) {
	bmp := NewBitmap(10, 10)
	bmp.Set(5, 5, true)

	contours, err := Trace(bmp)
	require.NoError(t, err)
	require.Len(t, contours, 1)
	assert.Equal(t, []Point{{5, 5}}, contours[0].Points)
	assert.True(t, contours[0].Closed())

	path, ok := Assemble(contours[0])
	require.True(t, ok)
	assert.Equal(t, "M5,5 Z", path.String())
}

func TestTrace_ThinLine(t *testing.T) {
	bmp := parseBitmap(
		".....",
		".###.",
		".....",
	)
	contours, err := Trace(bmp)
	require.NoError(t, err)
	require.Len(t, contours, 1)

	// A one pixel wide region is walked forth and back.
	assert.Equal(t, []Point{{1, 1}, {2, 1}, {3, 1}, {2, 1}}, contours[0].Points)
}

func TestTrace_DiagonalPixelsAreConnected(t *testing.T) {
	bmp := parseBitmap(
		"#...",
		".#..",
		"..#.",
		"...#",
	)
	contours, err := Trace(bmp)
	require.NoError(t, err)
	require.Len(t, contours, 1)
	assert.Equal(t, 4, contours[0].Area)
}

func TestTrace_RegionOrder(t *testing.T) {
	bmp := parseBitmap(
		"......##",
		"##....##",
		"##......",
		"....#...",
	)
	contours, err := Trace(bmp)
	require.NoError(t, err)
	require.Len(t, contours, 3)

	assert.Equal(t, Point{6, 0}, contours[0].Points[0])
	assert.Equal(t, Point{0, 1}, contours[1].Points[0])
	assert.Equal(t, Point{4, 3}, contours[2].Points[0])
	for i, c := range contours {
		assert.Equal(t, i+1, c.Region)
	}
}

func TestTrace_RingYieldsOneContour(t *testing.T) {
	bmp := parseBitmap(
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	)
	contours, err := Trace(bmp)
	require.NoError(t, err)
	require.Len(t, contours, 1)
	assert.Len(t, contours[0].Points, 8)
}

func TestTrace_Deterministic(t *testing.T) {
	bmp := noiseBitmap(40, 30, 7)

	first, err := Trace(bmp)
	require.NoError(t, err)
	second, err := Trace(bmp)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTrace_CoverageAndDisjointness(t *testing.T) {
	for _, seed := range []uint32{1, 42, 1234} {
		bmp := noiseBitmap(50, 40, seed)

		labels, regions, err := Label(bmp)
		require.NoError(t, err)

		contours, err := Trace(bmp)
		require.NoError(t, err)
		require.Len(t, contours, regions)

		// Every foreground pixel belongs to exactly one region.
		area := 0
		for idx, fg := range bmp.Pix {
			if fg {
				assert.Greater(t, labels[idx], int32(0))
			} else {
				assert.Equal(t, int32(0), labels[idx])
			}
		}
		for _, c := range contours {
			area += c.Area
		}
		assert.Equal(t, bmp.Count(), area)

		// Adjacent foreground pixels share the label, so regions are maximal.
		for y := 0; y < bmp.Height; y++ {
			for x := 0; x < bmp.Width; x++ {
				if !bmp.At(x, y) {
					continue
				}
				for _, d := range moore {
					if bmp.At(x+d.X, y+d.Y) {
						assert.Equal(t, labels[y*bmp.Width+x], labels[(y+d.Y)*bmp.Width+x+d.X])
					}
				}
			}
		}

		// Contour points lie on the boundary of their own region only.
		for _, c := range contours {
			require.NotEmpty(t, c.Points)
			for _, p := range c.Points {
				assert.Equal(t, int32(c.Region), labels[p.Y*bmp.Width+p.X])

				boundary := false
				for _, d := range moore {
					if !bmp.At(p.X+d.X, p.Y+d.Y) {
						boundary = true
						break
					}
				}
				assert.True(t, boundary, "%v is an interior pixel", p)
			}
		}
	}
}

func TestTrace_InvalidInput(t *testing.T) {
	bmp := &Bitmap{Width: 4, Height: 4, Pix: make([]bool, 3)}

	_, err := Trace(bmp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, _, err = Label(bmp)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func BenchmarkTrace(b *testing.B) {
	bmp := noiseBitmap(512, 512, 99)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Trace(bmp); err != nil {
			b.FailNow()
		}
	}
}
