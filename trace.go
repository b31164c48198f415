package outline

import "image"

// Point is an integer pixel coordinate.
type Point struct {
	X int
	Y int
}

// Contour is the ordered outer boundary of a connected foreground region.
// The first and the last point are implicitly connected.
type Contour struct {
	Points []Point
	// Region is the 1-based label of the traced region.
	Region int
	// Area is the number of pixels of the traced region.
	Area int
}

// Closed reports whether the contour describes a polygon, i.e. it has at least one point.
func (c Contour) Closed() bool {
	return len(c.Points) > 0
}

// Bounds returns the smallest rectangle containing every contour point.
func (c Contour) Bounds() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(c.Points[0].X, c.Points[0].Y, c.Points[0].X+1, c.Points[0].Y+1)
	for _, p := range c.Points[1:] {
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	}
	return r
}

// west is the index of the left neighbor in the moore table.
const west = 0

// moore lists the 8 neighbors of a pixel in clockwise order (y axis pointing down),
// starting from the left neighbor.
var moore = [8]Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// mooreIndex maps a (dx+1, dy+1) offset to its position in the moore table.
var mooreIndex = [3][3]int{
	{1, 0, 7},  // dx = -1: NW, W, SW
	{2, -1, 6}, // dx = 0: N, self, S
	{3, 4, 5},  // dx = 1: NE, E, SE
}

// Label assigns the same positive label to every pixel of an 8-connected foreground region.
// The returned slice is indexed by y*Width+x; background pixels keep the zero label.
// Regions are numbered from 1 in the row-major order of their first pixel.
func Label(b *Bitmap) ([]int32, int, error) {
	if !b.Valid() {
		return nil, 0, newError(ErrInvalidInput, "bitmap size %dx%d does not match %d pixels", b.Width, b.Height, len(b.Pix))
	}
	l := newLabeler(b)
	l.run()

	return l.labels, len(l.seeds), nil
}

// Trace follows the outer boundary of every 8-connected foreground region of the bitmap.
// It returns one contour per region ordered by the row-major position of the region's
// first pixel. The boundary points are listed in clockwise order.
func Trace(b *Bitmap) ([]Contour, error) {
	if !b.Valid() {
		return nil, newError(ErrInvalidInput, "bitmap size %dx%d does not match %d pixels", b.Width, b.Height, len(b.Pix))
	}
	l := newLabeler(b)
	l.run()

	contours := make([]Contour, 0, len(l.seeds))
	for i, seed := range l.seeds {
		start := Point{X: seed % b.Width, Y: seed / b.Width}
		contours = append(contours, Contour{
			Points: follow(b, start),
			Region: i + 1,
			Area:   l.areas[i],
		})
	}
	return contours, nil
}

// labeler holds the scan state shared across the whole labeling sweep.
type labeler struct {
	bmp    *Bitmap
	labels []int32
	seeds  []int // the pixel offset of each region's first pixel
	areas  []int
	stack  []int
}

func newLabeler(b *Bitmap) *labeler {
	return &labeler{
		bmp:    b,
		labels: make([]int32, len(b.Pix)),
	}
}

// run scans the bitmap in row-major order and flood fills every unlabeled foreground pixel.
func (l *labeler) run() {
	for idx, fg := range l.bmp.Pix {
		if !fg || l.labels[idx] != 0 {
			continue
		}
		l.seeds = append(l.seeds, idx)
		l.areas = append(l.areas, l.fill(idx, int32(len(l.seeds))))
	}
}

// fill labels the region containing the seed pixel and returns its area.
func (l *labeler) fill(seed int, label int32) int {
	w := l.bmp.Width
	area := 0

	l.labels[seed] = label
	l.stack = append(l.stack[:0], seed)

	for len(l.stack) > 0 {
		idx := l.stack[len(l.stack)-1]
		l.stack = l.stack[:len(l.stack)-1]
		area++

		x, y := idx%w, idx/w
		for _, d := range moore {
			nx, ny := x+d.X, y+d.Y
			if !l.bmp.At(nx, ny) {
				continue
			}
			n := ny*w + nx
			if l.labels[n] == 0 {
				l.labels[n] = label
				l.stack = append(l.stack, n)
			}
		}
	}
	return area
}

// follow walks the boundary of the region containing start using Moore neighbor tracing.
// The start pixel must be the first pixel of its region in row-major order, so that its
// left neighbor is guaranteed to be background. The walk terminates once the tracer
// is back on the start pixel and about to repeat its first move.
func follow(b *Bitmap, start Point) []Point {
	var (
		points = []Point{start}
		cur    = start
		back   = west
		second Point
	)
	// Every boundary pixel can be entered at most once from each side.
	limit := 8*len(b.Pix) + 8

	for steps := 0; steps < limit; steps++ {
		next, nback, ok := step(b, cur, back)
		if !ok {
			// Isolated pixel.
			return points
		}
		if steps == 0 {
			second = next
		} else if cur == start && next == second {
			break
		}
		points = append(points, next)
		cur, back = next, nback
	}

	// The walk ends on the start pixel, which is already the first point.
	if n := len(points); n > 1 && points[n-1] == start {
		points = points[:n-1]
	}
	return points
}

// step scans the neighbors of cur clockwise, beginning right after the backtrack neighbor,
// and returns the first foreground pixel found together with the position of the new
// backtrack pixel relative to it.
func step(b *Bitmap, cur Point, back int) (Point, int, bool) {
	for i := 1; i < len(moore); i++ {
		k := (back + i) % len(moore)
		next := Point{X: cur.X + moore[k].X, Y: cur.Y + moore[k].Y}
		if !b.At(next.X, next.Y) {
			continue
		}
		// The neighbor checked right before next is background and adjacent to next.
		prev := moore[(k+len(moore)-1)%len(moore)]
		dx := cur.X + prev.X - next.X
		dy := cur.Y + prev.Y - next.Y

		return next, mooreIndex[dx+1][dy+1], true
	}
	return cur, back, false
}
