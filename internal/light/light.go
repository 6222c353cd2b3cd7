// Package light describes light sources and evaluates the light reaching a
// surface point.
package light

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

// Type selects how a light is attenuated. The numeric values are the ones
// stored in the w component of the packed Misc vector.
type Type int

const (
	Off Type = iota
	Directional
	Point
	Spot
)

var ErrUnknownType = errors.New("light: unknown type")

var typeNames = [...]string{"off", "directional", "point", "spot"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType accepts the lowercase names returned by String.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), nil
		}
	}
	return Off, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Light is a single light source.
//
// Direction points from the light toward the scene. Color.rgb is the diffuse
// color and Color.a scales it. Misc.x is the range of point and spot lights,
// Misc.y and Misc.z are the cosines of the outer and inner cone angles of a
// spot light.
type Light struct {
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	Color     mgl64.Vec4
	Misc      mgl64.Vec4
	Type      Type
}

// NewDirectional returns a directional light shining along dir.
func NewDirectional(dir, rgb mgl64.Vec3, intensity float64) Light {
	return Light{
		Direction: mathutil.Normalize(dir),
		Color:     rgb.Vec4(intensity),
		Type:      Directional,
	}
}

// NewPoint returns a point light with linear falloff over rng.
func NewPoint(pos, rgb mgl64.Vec3, intensity, rng float64) Light {
	return Light{
		Position: pos,
		Color:    rgb.Vec4(intensity),
		Misc:     mgl64.Vec4{rng, 0, 0, 0},
		Type:     Point,
	}
}

// NewSpot returns a spot light. outerDeg and innerDeg are half angles of the
// cone; the light fades out between them.
func NewSpot(pos, dir, rgb mgl64.Vec3, intensity, rng, outerDeg, innerDeg float64) Light {
	if innerDeg > outerDeg {
		innerDeg, outerDeg = outerDeg, innerDeg
	}
	return Light{
		Position:  pos,
		Direction: mathutil.Normalize(dir),
		Color:     rgb.Vec4(intensity),
		Misc: mgl64.Vec4{
			rng,
			math.Cos(mathutil.Deg2Rad(outerDeg)),
			math.Cos(mathutil.Deg2Rad(innerDeg)),
			0,
		},
		Type: Spot,
	}
}

// Range returns the falloff distance of point and spot lights.
func (l Light) Range() float64 { return l.Misc[0] }

// SpotAngles returns the outer and inner cone half angles in degrees.
func (l Light) SpotAngles() (outerDeg, innerDeg float64) {
	return mathutil.Rad2Deg(math.Acos(mathutil.Clamp(l.Misc[1], -1, 1))),
		mathutil.Rad2Deg(math.Acos(mathutil.Clamp(l.Misc[2], -1, 1)))
}

// Enabled reports whether the slot is occupied. Evaluation of a List stops at
// the first slot that is not.
func (l Light) Enabled() bool {
	return l.Type > Off
}
