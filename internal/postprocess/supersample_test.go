package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsampleSize(t *testing.T) {
	out := Downsample(fill(64, 32, color.NRGBA{10, 20, 30, 255}), 16, 8)
	assert.Equal(t, image.Rect(0, 0, 16, 8), out.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, out.NRGBAAt(7, 3))
}

func TestDownsampleNoop(t *testing.T) {
	img := fill(8, 8, color.NRGBA{1, 2, 3, 4})
	assert.Same(t, img, Downsample(img, 8, 8))
	assert.Same(t, img, Downsample(img, 16, 16))
}

// Fully transparent red pixels must not tint their opaque neighbors.
func TestDownsampleNoHalo(t *testing.T) {
	img := fill(8, 8, color.NRGBA{200, 200, 200, 255})
	for y := range 8 {
		for x := 4; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 0})
		}
	}
	out := Downsample(img, 4, 4)
	for y := range 4 {
		c := out.NRGBAAt(1, y)
		if c.A == 0 {
			continue
		}
		assert.Equal(t, c.G, c.R, "row %d", y)
		assert.Equal(t, c.G, c.B, "row %d", y)
	}
}
