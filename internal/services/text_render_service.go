package services

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"iscript/internal/logger"
)

// Alignment controls how wrapped lines are justified against each other.
type Alignment int

const (
	// AlignLeft justifies lines to the left edge
	AlignLeft Alignment = iota
	// AlignCenter centers each line
	AlignCenter
	// AlignRight justifies lines to the right edge
	AlignRight
)

// String returns the alignment keyword.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment maps a keyword to an Alignment, defaulting to AlignLeft.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre", "middle":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// FontCandidates are probed in order when no font path is configured.
var FontCandidates = []string{
	"/system/fonts/Roboto-Regular.ttf",
	"/system/fonts/DroidSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

const (
	// textPadding is the transparent margin around the rendered ink.
	textPadding = 2
	// MaxTextSize is the largest accepted font size in points.
	MaxTextSize = 1024
	// MaxCanvasSide bounds both dimensions of a rendered caption in pixels.
	MaxCanvasSide = 8192
)

// TextRenderService draws captions into transparent PNG images.
type TextRenderService struct {
	fontPath string
}

// NewTextRenderService creates a TextRenderService. An empty fontPath selects
// the first available entry of FontCandidates.
func NewTextRenderService(fontPath string) *TextRenderService {
	return &TextRenderService{fontPath: fontPath}
}

// Name returns the service name "text".
func (t *TextRenderService) Name() string {
	return "text"
}

// RenderText wraps text at spaces to wrapWidth pixels and writes it to output.
// Words wider than wrapWidth are kept whole on their own line.
func (t *TextRenderService) RenderText(text string, output string, size float64, colorSpec string, wrapWidth float64, align Alignment) (string, error) {
	if math.IsNaN(size) || size <= 0 || size > MaxTextSize {
		return "", fmt.Errorf("font size %g outside (0, %d]", size, MaxTextSize)
	}
	fill, err := ParseColor(colorSpec)
	if err != nil {
		return "", err
	}

	face := t.loadFace(size)
	defer func() { _ = face.Close() }()

	lines := WrapText(text, face, wrapWidth)

	widths := make([]int, len(lines))
	maxWidth := 0
	for i, line := range lines {
		widths[i] = font.MeasureString(face, line).Ceil()
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = ascent + metrics.Descent.Ceil()
	}
	inkHeight := lineHeight*(len(lines)-1) + ascent + metrics.Descent.Ceil()

	width, height := maxWidth+2*textPadding, inkHeight+2*textPadding
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return "", fmt.Errorf("caption canvas %dx%d exceeds %dx%d", width, height, MaxCanvasSide, MaxCanvasSide)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(fill), Face: face}
	for i, line := range lines {
		x := textPadding
		switch align {
		case AlignCenter:
			x += (maxWidth - widths[i]) / 2
		case AlignRight:
			x += maxWidth - widths[i]
		}
		drawer.Dot = fixed.P(x, textPadding+ascent+i*lineHeight)
		drawer.DrawString(line)
	}

	f, err := os.Create(output)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", output, err)
	}

	logger.Debug("Rendered text image", "output", output, "width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "align", align.String())
	return output, nil
}

// loadFace opens the configured or discovered TrueType font at size points,
// falling back to the built-in bitmap face.
func (t *TextRenderService) loadFace(size float64) font.Face {
	paths := FontCandidates
	if t.fontPath != "" {
		paths = []string{t.fontPath}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			logger.Warn("Unreadable font", "path", path, "error", err)
			continue
		}
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			logger.Warn("Unusable font size", "path", path, "size", size, "error", err)
			continue
		}
		return face
	}
	logger.Debug("No TrueType font available, using bitmap face")
	return basicfont.Face7x13
}

// WrapText splits text into lines at single spaces so that each line measures
// at most maxWidth pixels in face. A line always holds at least one word.
func WrapText(text string, face font.Face, maxWidth float64) []string {
	words := strings.Split(text, " ")
	var lines []string
	var current []string

	for _, word := range words {
		candidate := strings.Join(append(append([]string{}, current...), word), " ")
		width := float64(font.MeasureString(face, candidate)) / 64
		if width <= maxWidth || len(current) == 0 {
			current = append(current, word)
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// ParseColor accepts an SVG colour name or a #rgb / #rrggbb hex string.
func ParseColor(spec string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(spec))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	hex := name
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("unknown color '%s'", spec)
	}
	return c.Clamped(), nil
}
