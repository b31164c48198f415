/*
Package outline is a raster to vector converter, which traces the outer boundary of every
connected dark region of an image and saves the boundaries as closed polygons in an SVG file.

The conversion runs in four steps: the source image is converted to grayscale and binarized
by a fixed threshold, the foreground regions are labeled and their outer boundary is followed
with a Moore neighborhood tracer, every boundary becomes an M/L/Z path, and the paths are
collected into a single SVG document having the same dimensions as the source image.

The package provides a command line interface, supporting various flags. To check the supported commands type:

	$ outline --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"
		"os"

		"github.com/esimov/outline"
	)

	func main() {
		p := &outline.Processor{
			Threshold: outline.DefaultThreshold,
			Style:     outline.DefaultStyle,
		}

		in, _ := os.Open("input.png")
		out, _ := os.Create("output.svg")

		if err := p.Process(context.Background(), in, out); err != nil {
			fmt.Printf("Error tracing image: %s", err.Error())
		}
	}
*/
package outline
