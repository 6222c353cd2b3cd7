package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to normalize. mgl64.Vec3.Normalize would return NaNs instead.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// MulVec3 is the component-wise product.
func MulVec3(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// MinVec3 is the component-wise minimum of v and s.
func MinVec3(v mgl64.Vec3, s float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(v[0], s), math.Min(v[1], s), math.Min(v[2], s)}
}

// MaxVec3 is the component-wise maximum of v and s.
func MaxVec3(v mgl64.Vec3, s float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(v[0], s), math.Max(v[1], s), math.Max(v[2], s)}
}

// PowVec3 raises every component to exp through SafePow.
func PowVec3(v mgl64.Vec3, exp float64) mgl64.Vec3 {
	return mgl64.Vec3{SafePow(v[0], exp), SafePow(v[1], exp), SafePow(v[2], exp)}
}

// ExpVec3 is the component-wise natural exponent.
func ExpVec3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Exp(v[0]), math.Exp(v[1]), math.Exp(v[2])}
}

// Reflect mirrors the incident vector i about the normal n (GLSL reflect).
func Reflect(i, n mgl64.Vec3) mgl64.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}
