package services

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestParseAlignment(t *testing.T) {
	assert.Equal(t, AlignLeft, ParseAlignment(""))
	assert.Equal(t, AlignLeft, ParseAlignment("left"))
	assert.Equal(t, AlignCenter, ParseAlignment("Center"))
	assert.Equal(t, AlignRight, ParseAlignment(" right "))
	assert.Equal(t, "center", AlignCenter.String())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("white")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c)

	c, err = ParseColor("#ff0000")
	require.NoError(t, err)
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)

	_, err = ParseColor("00ff00")
	assert.NoError(t, err)

	_, err = ParseColor("notacolor")
	assert.Error(t, err)
}

func TestWrapText(t *testing.T) {
	face := basicfont.Face7x13

	// 7px per glyph: "hello world" is 77px wide.
	assert.Equal(t, []string{"hello world"}, WrapText("hello world", face, 100))
	assert.Equal(t, []string{"hello", "world"}, WrapText("hello world", face, 50))

	// A long word overflows instead of being split.
	lines := WrapText("a supercalifragilistic b", face, 20)
	assert.Equal(t, []string{"a", "supercalifragilistic", "b"}, lines)

	assert.Equal(t, []string{""}, WrapText("", face, 100))
}

func TestTextRenderService_RenderText(t *testing.T) {
	dir := t.TempDir()
	service := NewTextRenderService(filepath.Join(dir, "missing.ttf"))
	assert.Equal(t, "text", service.Name())

	output := filepath.Join(dir, "caption.png")
	path, err := service.RenderText("hello world", output, 13, "red", 50, AlignCenter)
	require.NoError(t, err)
	assert.Equal(t, output, path)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	require.NoError(t, err)
	// Two lines of five 7px glyphs plus the padding on each side.
	assert.Equal(t, 5*7+4, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 2*13)

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a, "corner should stay transparent")
}

func TestTextRenderService_RenderText_BadColor(t *testing.T) {
	service := NewTextRenderService("")
	_, err := service.RenderText("x", filepath.Join(t.TempDir(), "x.png"), 12, "nope", 100, AlignLeft)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown color"))
}

func TestTextRenderService_RenderText_Limits(t *testing.T) {
	dir := t.TempDir()
	service := NewTextRenderService(filepath.Join(dir, "missing.ttf"))

	for _, size := range []float64{0, -4, 1e9, math.NaN(), math.Inf(1)} {
		_, err := service.RenderText("hi", filepath.Join(dir, "size.png"), size, "white", 100, AlignLeft)
		assert.ErrorContains(t, err, "font size", "size %g", size)
	}

	// One unbreakable word of 7px glyphs wider than the canvas limit.
	output := filepath.Join(dir, "wide.png")
	_, err := service.RenderText(strings.Repeat("w", MaxCanvasSide/7+1), output, 13, "white", 100, AlignLeft)
	assert.ErrorContains(t, err, "exceeds")
	assert.NoFileExists(t, output)

	// Too many wrapped lines for the canvas height.
	output = filepath.Join(dir, "tall.png")
	_, err = service.RenderText(strings.Repeat("w ", MaxCanvasSide/13+1), output, 13, "white", 1, AlignLeft)
	assert.ErrorContains(t, err, "exceeds")
	assert.NoFileExists(t, output)
}
