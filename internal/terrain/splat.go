// Package terrain blends splat-mapped terrain layers.
package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
	"glib-shading/internal/texture"
)

// SlopeContrast is the contrast applied around 0.5 by BlendSlope.
const SlopeContrast = 5

// Layers is one set of terrain textures. Each splat channel blends its layer
// over the result so far: B over G over R over Base, then A when present,
// then Slope over everything. A nil layer is skipped.
type Layers struct {
	Base  texture.Sampler
	R     texture.Sampler
	G     texture.Sampler
	B     texture.Sampler
	A     texture.Sampler
	Slope texture.Sampler
}

// Set pairs the diffuse and normal layers of a terrain.
type Set struct {
	Diffuse Layers
	Normal  Layers
}

// BlendSlope turns a surface slope in [0, 1] into the blend factor of the
// slope layer. The red channel of mask is overlaid onto the slope with a
// contrast curve pivoting at 0.5, then sharpened by SlopeContrast.
func BlendSlope(mask texture.Sampler, slope float64, uv mgl64.Vec2) float64 {
	var blend float64
	if mask != nil {
		blend = mask.Sample(uv)[0]
	}
	if slope < 0.5 {
		blend = 2 * slope * blend
	} else {
		blend = 1 - 2*(1-slope)*(1-blend)
	}
	return mathutil.Clamp01((blend-0.5)*SlopeContrast + 0.5)
}

// SplatColor blends the diffuse layers with the splat weights and then mixes
// in the slope layer by slope, which is usually the result of BlendSlope.
func SplatColor(l Layers, uv mgl64.Vec2, splat mgl64.Vec4, slope float64) mgl64.Vec4 {
	return splat4(l, uv, splat, slope)
}

// SplatNormal blends the normal layers like SplatColor and decodes the
// result. Normal maps store a Y-up normal in xzy order.
func SplatNormal(l Layers, uv mgl64.Vec2, splat mgl64.Vec4, slope float64) mgl64.Vec3 {
	n := splat4(l, uv, splat, slope)
	return mathutil.Normalize(mgl64.Vec3{n[0]*2 - 1, n[2]*2 - 1, n[1]*2 - 1})
}

func splat4(l Layers, uv mgl64.Vec2, splat mgl64.Vec4, slope float64) mgl64.Vec4 {
	var c mgl64.Vec4
	if l.Base != nil {
		c = l.Base.Sample(uv)
	}
	c = over(c, l.R, uv, splat[0])
	c = over(c, l.G, uv, splat[1])
	c = over(c, l.B, uv, splat[2])
	c = over(c, l.A, uv, splat[3])
	return over(c, l.Slope, uv, slope)
}

func over(c mgl64.Vec4, layer texture.Sampler, uv mgl64.Vec2, w float64) mgl64.Vec4 {
	if layer == nil || w == 0 {
		return c
	}
	return mathutil.MixVec4(c, layer.Sample(uv), w)
}

// SlopeOf returns 0 for a flat surface and 1 for a vertical one.
func SlopeOf(normal mgl64.Vec3) float64 {
	return 1 - mathutil.Clamp01(normal[1])
}
