package outline

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// Style holds the paint attributes shared by every path of a document.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth int
}

// DefaultStyle paints the outlines with opaque black.
var DefaultStyle = Style{
	Fill:        "black",
	Stroke:      "black",
	StrokeWidth: 1,
}

// Document is an SVG canvas having the size of the source image.
type Document struct {
	Width  int
	Height int
	Style  Style
	Paths  []Path
}

// NewDocument creates a new document. The paths are kept in the provided order.
func NewDocument(width, height int, paths []Path, style Style) *Document {
	return &Document{
		Width:  width,
		Height: height,
		Style:  style,
		Paths:  paths,
	}
}

// WriteTo serializes the document as SVG markup. The output depends only
// on the document content, so the same document always yields the same bytes.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}

	canvas := svg.New(cw)
	canvas.Startview(d.Width, d.Height, 0, 0, d.Width, d.Height)
	attrs := d.styleAttrs()
	for _, p := range d.Paths {
		canvas.Path(p.String(), attrs...)
	}
	canvas.End()

	return cw.n, cw.err
}

// Bytes returns the SVG markup of the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	// Writing into a bytes.Buffer does not fail.
	_, _ = d.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the SVG markup of the document.
func (d *Document) String() string {
	return string(d.Bytes())
}

// styleAttrs renders the paint attributes once for all the paths.
func (d *Document) styleAttrs() []string {
	return []string{
		`fill="` + escape(d.Style.Fill) + `"`,
		`stroke="` + escape(d.Style.Stroke) + `"`,
		`stroke-width="` + strconv.Itoa(d.Style.StrokeWidth) + `"`,
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// countWriter counts the written bytes and keeps the first write error,
// since the canvas methods do not report them.
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
