package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Color is display-space RGBA, not premultiplied.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []float64 // RGBA interleaved, len = W*H*4
	Depth  []float64 // NDC depth per pixel, len = W*H, initialized to +inf
}

// NewFrameBuffer allocates a transparent color buffer and +inf depth buffer.
// Negative sizes are treated as zero.
func NewFrameBuffer(w, h int) *FrameBuffer {
	w, h = max(w, 0), max(h, 0)
	n := w * h
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]float64, n*4),
		Depth:  make([]float64, n),
	}
	fb.Clear(mgl64.Vec4{})
	return fb
}

// Clear fills the color buffer with bg and resets depth.
func (fb *FrameBuffer) Clear(bg mgl64.Vec4) {
	for i := range fb.Depth {
		fb.Depth[i] = math.Inf(1)
		copy(fb.Color[i*4:i*4+4], bg[:])
	}
}

// At returns the color of pixel x, y.
func (fb *FrameBuffer) At(x, y int) mgl64.Vec4 {
	i := (y*fb.Width + x) * 4
	return mgl64.Vec4{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

// blend composites c over pixel i.
func (fb *FrameBuffer) blend(i int, c mgl64.Vec4) {
	p := fb.Color[i*4 : i*4+4]
	a := clamp01(c[3])
	if a >= 1 {
		copy(p, c[:])
		return
	}
	for k := range 3 {
		p[k] = p[k]*(1-a) + c[k]*a
	}
	p[3] = a + p[3]*(1-a)
}

// Image converts the buffer to 8-bit NRGBA.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, v := range fb.Color {
		img.Pix[i] = clamp255(v * 255)
	}
	return img
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clamp255(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
