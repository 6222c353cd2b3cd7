package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Orbit returns a point at distance dist from target, rotated by yaw around Y
// and pitch around X (degrees). Used to place preview cameras.
func Orbit(target mgl64.Vec3, dist, yawDeg, pitchDeg float64) mgl64.Vec3 {
	yaw, pitch := Deg2Rad(yawDeg), Deg2Rad(pitchDeg)
	offset := mgl64.Vec3{
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Cos(yaw),
	}
	return target.Add(offset.Mul(dist))
}
