package services

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// HaldLevel is the level of generated colour lookup tables. A level-n table
// holds n^2 steps per channel in an n^3 x n^3 image.
const HaldLevel = 6

// HaldService generates HALD colour lookup tables for the haldclut filter.
type HaldService struct {
	level int
}

// NewHaldService creates a HaldService producing level HaldLevel tables.
func NewHaldService() *HaldService {
	return &HaldService{level: HaldLevel}
}

// Name returns the service name "hald".
func (h *HaldService) Name() string {
	return "hald"
}

// Generate writes an identity table with every entry's hue rotated by hue
// degrees and returns output.
func (h *HaldService) Generate(hue float64, output string) (string, error) {
	img := HaldImage(h.level, hue)

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
	return output, nil
}

// HaldImage builds a level-sized table in memory.
func HaldImage(level int, hue float64) *image.NRGBA {
	steps := level * level
	side := steps * level
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	scale := float64(steps - 1)

	for i := 0; i < side*side; i++ {
		r := i % steps
		g := (i / steps) % steps
		b := i / (steps * steps)
		c := colorful.Color{R: float64(r) / scale, G: float64(g) / scale, B: float64(b) / scale}
		if hue != 0 {
			hh, s, v := c.Hsv()
			hh = math.Mod(hh+hue, 360)
			if hh < 0 {
				hh += 360
			}
			c = colorful.Hsv(hh, s, v).Clamped()
		}
		cr, cg, cb := c.RGB255()
		img.SetNRGBA(i%side, i/side, color.NRGBA{R: cr, G: cg, B: cb, A: 255})
	}
	return img
}
