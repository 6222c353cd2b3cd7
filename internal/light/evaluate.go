package light

import (
	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

// Incident is the light arriving at a surface point.
//
// View is the unit vector toward the eye and is left for the caller to fill,
// Dir is the unit vector toward the light and Intensity is the attenuated
// light color.
type Incident struct {
	View      mgl64.Vec3
	Dir       mgl64.Vec3
	Intensity mgl64.Vec3
}

// Evaluate computes the light l reaching position. The boolean is false for
// lights that are off; callers iterating a List must stop there. A light of
// an unknown type reports true with zero intensity.
//
// Spot lights multiply the distance falloff by the cone factor:
// (1 - min(1, d/range)) * smoothstep(cosOuter, cosInner, cosAngle).
func Evaluate(l Light, position mgl64.Vec3) (Incident, bool) {
	base := mgl64.Vec3{l.Color[0], l.Color[1], l.Color[2]}.Mul(l.Color[3])

	switch l.Type {
	case Off:
		return Incident{}, false

	case Directional:
		return Incident{
			Dir:       mathutil.Normalize(l.Direction.Mul(-1)),
			Intensity: base,
		}, true

	case Point:
		toLight := l.Position.Sub(position)
		return Incident{
			Dir:       mathutil.Normalize(toLight),
			Intensity: base.Mul(Falloff(toLight.Len(), l.Range())),
		}, true

	case Spot:
		toLight := l.Position.Sub(position)
		dir := mathutil.Normalize(toLight)
		cosAngle := dir.Dot(mathutil.Normalize(l.Direction).Mul(-1))
		spot := mathutil.Smoothstep(l.Misc[1], l.Misc[2], cosAngle)
		return Incident{
			Dir:       dir,
			Intensity: base.Mul(Falloff(toLight.Len(), l.Range()) * spot),
		}, true
	}

	if l.Type < Off {
		return Incident{}, false
	}
	return Incident{}, true
}

// Falloff is the linear distance attenuation 1 - min(1, dist/range). The
// range is clamped to mathutil.Epsilon.
func Falloff(dist, rng float64) float64 {
	return 1 - min(1, dist/mathutil.SafeDenom(rng))
}
