package codec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

// LogLuvM transforms linear RGB into (X', Y, XYZ'), the basis of the LogLuv
// encoding. Rows are the output components.
var LogLuvM = mgl64.Mat3FromRows(
	mgl64.Vec3{0.2209, 0.1138, 0.0102},
	mgl64.Vec3{0.3390, 0.6780, 0.1130},
	mgl64.Vec3{0.4184, 0.7319, 0.2969},
)

// LogLuvInverseM maps (X', Y, XYZ') back to linear RGB.
var LogLuvInverseM = LogLuvM.Inv()

// EncodeLogLuv stores rgb as chromaticity in xy and a 16-bit log luminance
// split over z (high) and w (low).
func EncodeLogLuv(rgb mgl64.Vec3) mgl64.Vec4 {
	xyz := mathutil.MaxVec3(LogLuvM.Mul3x1(rgb), mathutil.LogFloor)

	var c mgl64.Vec4
	c[0] = xyz[0] / xyz[2]
	c[1] = xyz[1] / xyz[2]

	le := 2*mathutil.SafeLog2(xyz[1]) + 127
	c[3] = mathutil.Fract(le)
	c[2] = (le - math.Floor(c[3]*255)/255) / 255
	return c
}

// DecodeLogLuv is the inverse of EncodeLogLuv. The result is clamped to be
// non-negative.
func DecodeLogLuv(c mgl64.Vec4) mgl64.Vec3 {
	le := c[2]*255 + c[3]
	y := math.Exp2((le - 127) / 2)
	z := y / mathutil.SafeDenom(c[1])
	x := c[0] * z
	return mathutil.MaxVec3(LogLuvInverseM.Mul3x1(mgl64.Vec3{x, y, z}), 0)
}
