package outline

import (
	"bytes"
	"context"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/esimov/outline/logger"
	"github.com/esimov/outline/utils"
	"go.uber.org/zap"
)

// Processor options
type Processor struct {
	// Threshold is the highest intensity considered foreground.
	Threshold uint8
	// Style is applied to every generated path.
	Style Style
	// Spinner is an optional progress indicator used in Execute.
	Spinner *utils.Spinner
}

// NewProcessor returns a processor using the default threshold and style.
func NewProcessor() *Processor {
	return &Processor{
		Threshold: DefaultThreshold,
		Style:     DefaultStyle,
	}
}

// Vectorize traces the outlines of the image and returns them as a vector document
// sized to the image dimensions.
func (p *Processor) Vectorize(img image.Image) (*Document, error) {
	gray := Grayscale(img)
	bmp := Binarize(gray, p.Threshold)

	contours, err := Trace(bmp)
	if err != nil {
		return nil, err
	}
	return NewDocument(bmp.Width, bmp.Height, AssembleAll(contours), p.Style), nil
}

// Process decodes the source image, traces it and writes the resulting SVG into w.
// Nothing is written unless the whole document has been generated.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return wrapError(ErrDecode, err, "could not decode the source image")
	}
	bounds := src.Bounds()
	logger.Debug(ctx, "image decoded", zap.Int("width", bounds.Dx()), zap.Int("height", bounds.Dy()))

	doc, err := p.Vectorize(src)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "image traced", zap.Int("paths", len(doc.Paths)))

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return wrapError(ErrOutputWrite, err, "could not render the document")
	}
	if _, err := buf.WriteTo(w); err != nil {
		return wrapError(ErrOutputWrite, err, "could not write the document")
	}
	return nil
}
