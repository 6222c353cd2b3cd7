package brdf

import (
	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

// ShadeLambert is albedo * max(dot(N, L), 0) * I. No specular term.
func ShadeLambert(in Input) mgl64.Vec3 {
	dotNL := max(in.Normal.Dot(in.Light), 0)
	return mathutil.MulVec3(in.Albedo, in.Intensity).Mul(dotNL)
}

// ShadeCookTorrance is the microfacet model with a Blinn-Phong distribution,
// FastFresnel and the Cook-Torrance geometric term:
//
//	BRDF = D*F*G / (4 * dotNV * dotNL)
func ShadeCookTorrance(in Input) mgl64.Vec3 {
	t := dots(in)
	d := mathutil.SafePow(t.dotNH, in.Power)
	f := FastFresnel(in.Specular, t.dotLH)
	g := mathutil.Clamp01(2 * t.dotNH * min(t.dotNV, t.dotNL) / mathutil.SafeDenom(t.dotLH))
	brdf := f.Mul(d * g / mathutil.SafeDenom(4*t.dotNV*t.dotNL))
	return combine(in, brdf, t.dotNL)
}

// ShadeSzirmay drops the geometric and view terms of Cook-Torrance:
//
//	BRDF = D*F / (4 * dotLH^2)
func ShadeSzirmay(in Input) mgl64.Vec3 {
	t := dots(in)
	d := mathutil.SafePow(t.dotNH, in.Power)
	f := FastFresnel(in.Specular, t.dotLH)
	brdf := f.Mul(d / mathutil.SafeDenom(4*t.dotLH*t.dotLH))
	return combine(in, brdf, t.dotNL)
}

// ShadeOptimized drops Fresnel as well:
//
//	BRDF = D / (4 * dotLH^3)
func ShadeOptimized(in Input) mgl64.Vec3 {
	t := dots(in)
	d := mathutil.SafePow(t.dotNH, in.Power)
	s := d / mathutil.SafeDenom(4*t.dotLH*t.dotLH*t.dotLH)
	return combine(in, mgl64.Vec3{s, s, s}, t.dotNL)
}

// ShadeBlinnPhong is (albedo + specular * dotNH^power) * dotNL * I.
func ShadeBlinnPhong(in Input) mgl64.Vec3 {
	t := dots(in)
	s := mathutil.SafePow(t.dotNH, in.Power)
	return combine(in, mgl64.Vec3{s, s, s}, t.dotNL)
}

// ShadePhong uses the mirrored light vector instead of the half vector.
func ShadePhong(in Input) mgl64.Vec3 {
	dotNL := max(in.Normal.Dot(in.Light), 0)
	r := mathutil.Reflect(in.Light.Mul(-1), in.Normal)
	s := mathutil.SafePow(max(r.Dot(in.View), 0), in.Power)
	return combine(in, mgl64.Vec3{s, s, s}, dotNL)
}
