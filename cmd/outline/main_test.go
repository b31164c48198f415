package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSquare(t *testing.T, path string) {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetErr(&stderr)
	cmd.SetOut(&stderr)

	err := cmd.Execute()
	return stderr.String(), err
}

func TestMain_MissingArguments(t *testing.T) {
	out, err := execute(t, "input.png")
	assert.Error(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestMain_TraceSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "square.png")
	dst := filepath.Join(dir, "square.svg")
	writeSquare(t, src)

	_, err := execute(t, "--quiet", "--fill", "red", src, dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)

	svg := string(data)
	assert.Contains(t, svg, `viewBox="0 0 8 8"`)
	assert.Contains(t, svg, `fill="red"`)
	assert.Equal(t, 1, strings.Count(svg, "<path "))
}

func TestMain_MissingSource(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--quiet", filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.svg"))
	assert.Error(t, err)
}

func TestMain_InvalidThreshold(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "square.png")
	writeSquare(t, src)

	_, err := execute(t, "--quiet", "--threshold", "512", src, filepath.Join(dir, "out.svg"))
	assert.Error(t, err)
}
