package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Mix linearly interpolates between a and b (GLSL mix).
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func MixVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{Mix(a[0], b[0], t), Mix(a[1], b[1], t), Mix(a[2], b[2], t)}
}

func MixVec4(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return mgl64.Vec4{Mix(a[0], b[0], t), Mix(a[1], b[1], t), Mix(a[2], b[2], t), Mix(a[3], b[3], t)}
}

// Smoothstep is the Hermite step between edge0 and edge1. Degenerate edges
// collapse to a hard step at edge0 instead of dividing by zero.
func Smoothstep(edge0, edge1, x float64) float64 {
	d := edge1 - edge0
	if math.Abs(d) < Epsilon {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / d)
	return t * t * (3 - 2*t)
}

// Fract returns x - floor(x), always in [0, 1).
func Fract(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// Step returns 0 when x < edge and 1 otherwise.
func Step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}
