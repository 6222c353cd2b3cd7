// Package brdf implements the interchangeable reflectance models of the
// shading library. A material picks one Model once; models are never blended.
package brdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

// Model names a reflectance function.
type Model int

const (
	Lambert Model = iota
	CookTorrance
	Szirmay
	Optimized
	BlinnPhong
	Phong
)

var ErrUnknownModel = errors.New("brdf: unknown model")

var modelNames = [...]string{"lambert", "cooktorrance", "szirmay", "optimized", "blinn", "phong"}

func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return fmt.Sprintf("Model(%d)", int(m))
	}
	return modelNames[m]
}

// ParseModel accepts the names returned by String, case-insensitively, with
// or without the "shade" prefix used by material definitions
// ("shadeCookTorrance").
func ParseModel(s string) (Model, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "shade")
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	if name == "blinnphong" {
		name = "blinn"
	}
	for i, n := range modelNames {
		if n == name {
			return Model(i), nil
		}
	}
	return Lambert, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// Input carries everything a reflectance model needs for one light.
// View, Normal and Light are unit vectors pointing away from the surface.
// Albedo and Specular are linear colors, Power is the specular exponent.
type Input struct {
	View      mgl64.Vec3
	Normal    mgl64.Vec3
	Light     mgl64.Vec3
	Intensity mgl64.Vec3
	Albedo    mgl64.Vec3
	Specular  mgl64.Vec3
	Power     float64
}

// Func computes the radiance one light contributes.
type Func func(in Input) mgl64.Vec3

var funcs = [...]Func{
	Lambert:      ShadeLambert,
	CookTorrance: ShadeCookTorrance,
	Szirmay:      ShadeSzirmay,
	Optimized:    ShadeOptimized,
	BlinnPhong:   ShadeBlinnPhong,
	Phong:        ShadePhong,
}

// Func returns the reflectance function of m. Unknown models fall back to
// Lambert.
func (m Model) Func() Func {
	if m < 0 || int(m) >= len(funcs) {
		return ShadeLambert
	}
	return funcs[m]
}

// Shade evaluates model m.
func Shade(m Model, in Input) mgl64.Vec3 {
	return m.Func()(in)
}

// FastFresnel is the cheap Schlick-style approximation
// mix(R, min(60R, 1), (1 - dotLH)^4).
func FastFresnel(r mgl64.Vec3, dotLH float64) mgl64.Vec3 {
	t := mathutil.SafePow(1-dotLH, 4)
	return mathutil.MixVec3(r, mathutil.MinVec3(r.Mul(60), 1), t)
}

// terms holds the clamped dot products shared by the microfacet models.
type terms struct {
	dotNL, dotNH, dotNV, dotLH float64
}

func dots(in Input) terms {
	h := mathutil.Normalize(in.View.Add(in.Light))
	if h == (mgl64.Vec3{}) {
		h = in.Normal
	}
	return terms{
		dotNL: max(in.Normal.Dot(in.Light), 0),
		dotNH: max(in.Normal.Dot(h), 0),
		dotNV: max(in.Normal.Dot(in.View), 0),
		dotLH: max(in.Light.Dot(h), 0),
	}
}

// combine returns (brdf * specular + albedo) * dotNL * I.
func combine(in Input, brdf mgl64.Vec3, dotNL float64) mgl64.Vec3 {
	c := mathutil.MulVec3(brdf, in.Specular).Add(in.Albedo)
	return mathutil.MulVec3(c, in.Intensity).Mul(dotNL)
}
