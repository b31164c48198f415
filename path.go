package outline

import (
	"strconv"
	"strings"
)

// Path drawing operations.
const (
	MoveTo = 'M'
	LineTo = 'L'
	Close  = 'Z'
)

// Command is a single drawing instruction. X and Y are ignored by Close.
type Command struct {
	Op byte
	X  int
	Y  int
}

// Path is a closed polygon: one MoveTo, a LineTo for every further vertex and a Close.
type Path []Command

// Assemble converts the contour into a closed path.
// It returns false if the contour has no points.
func Assemble(c Contour) (Path, bool) {
	if len(c.Points) == 0 {
		return nil, false
	}
	path := make(Path, 0, len(c.Points)+1)

	start := c.Points[0]
	path = append(path, Command{Op: MoveTo, X: start.X, Y: start.Y})
	for _, p := range c.Points[1:] {
		path = append(path, Command{Op: LineTo, X: p.X, Y: p.Y})
	}
	path = append(path, Command{Op: Close})

	return path, true
}

// AssembleAll converts every non-empty contour into a path, preserving their order.
func AssembleAll(contours []Contour) []Path {
	paths := make([]Path, 0, len(contours))
	for _, c := range contours {
		if path, ok := Assemble(c); ok {
			paths = append(paths, path)
		}
	}
	return paths
}

// String returns the path data, e.g. "M1,1 L2,1 L2,2 Z".
func (p Path) String() string {
	var sb strings.Builder
	for i, cmd := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(cmd.Op)
		if cmd.Op == Close {
			continue
		}
		sb.WriteString(strconv.Itoa(cmd.X))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(cmd.Y))
	}
	return sb.String()
}
