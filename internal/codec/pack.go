// Package codec packs scalars and HDR colors into 8-bit-per-channel RGBA.
package codec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

var (
	packShift = mgl64.Vec4{256 * 256 * 256, 256 * 256, 256, 1}
	packMask  = mgl64.Vec4{0, 1.0 / 256, 1.0 / 256, 1.0 / 256}
	unpackDot = mgl64.Vec4{1.0 / (256 * 256 * 256), 1.0 / (256 * 256), 1.0 / 256, 1}
)

// PackFloat splits v, which must lie in [0, 1), over four channels. w holds
// the most significant byte and x the least. Values outside [0, 1) wrap.
func PackFloat(v float64) mgl64.Vec4 {
	var c mgl64.Vec4
	for i := range 4 {
		c[i] = mathutil.Fract(v * packShift[i])
	}
	// Remove the part of each channel already carried by the next finer one.
	carry := mgl64.Vec4{c[0], c[0], c[1], c[2]}
	for i := range 4 {
		c[i] -= carry[i] * packMask[i]
	}
	return c
}

// UnpackFloat is the inverse of PackFloat.
func UnpackFloat(c mgl64.Vec4) float64 {
	return c.Dot(unpackDot)
}

// PackRGBA8 quantizes v in [0, 1) to four bytes. Byte b stands for the
// channel value b/256, so UnpackFloat of the scaled bytes equals
// UnpackRGBA8. The round trip error is below 2^-32.
func PackRGBA8(v float64) [4]uint8 {
	v = mathutil.Fract(v)
	n := uint32(math.Min(math.Floor(v*(1<<32)), math.MaxUint32))
	return [4]uint8{uint8(n), uint8(n >> 8), uint8(n >> 16), uint8(n >> 24)}
}

// UnpackRGBA8 is the inverse of PackRGBA8.
func UnpackRGBA8(b [4]uint8) float64 {
	return UnpackFloat(BytesToVec4(b))
}

// BytesToVec4 maps bytes to the b/256 channel convention used by the packers.
func BytesToVec4(b [4]uint8) mgl64.Vec4 {
	return mgl64.Vec4{float64(b[0]) / 256, float64(b[1]) / 256, float64(b[2]) / 256, float64(b[3]) / 256}
}
