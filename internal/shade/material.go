package shade

import (
	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/fog"
	"glib-shading/internal/texture"
)

// Material holds the per-object uniforms of a shading program. Maps left nil
// fall back to the constant colors. AmbientMap replaces AmbientColor and the
// red channel of OcclusionMap scales the ambient term.
type Material struct {
	DiffuseColor  mgl64.Vec3
	SpecularColor mgl64.Vec3
	AmbientColor  mgl64.Vec3
	GroundColor   mgl64.Vec3
	SkyDirection  mgl64.Vec3
	EmissionColor mgl64.Vec3

	Alpha         float64
	AlphaClip     float64
	SpecularPower float64
	Gamma         float64

	DiffuseMap   texture.Sampler
	NormalMap    texture.Sampler
	SpecularMap  texture.Sampler
	EmissionMap  texture.Sampler
	AmbientMap   texture.Sampler
	OcclusionMap texture.Sampler

	DiffuseMapScaleOffset   texture.ScaleOffset
	NormalMapScaleOffset    texture.ScaleOffset
	SpecularMapScaleOffset  texture.ScaleOffset
	EmissionMapScaleOffset  texture.ScaleOffset
	AmbientMapScaleOffset   texture.ScaleOffset
	OcclusionMapScaleOffset texture.ScaleOffset

	// Hemisphere blends AmbientColor (sky) and GroundColor by the normal.
	Hemisphere bool
	// ClipAlpha discards fragments whose alpha does not exceed AlphaClip.
	ClipAlpha bool
	// VertexColor multiplies the diffuse color by the interpolated vertex color.
	VertexColor bool

	Fog      fog.Params
	FogColor mgl64.Vec3
}

// DefaultMaterial returns the library defaults: white diffuse and specular,
// 0.2 ambient, gamma 2.2, specular power 16, sky straight up and linear fog
// between 100 and 1000 (disabled). Texture coordinates are not transformed.
func DefaultMaterial() Material {
	return Material{
		DiffuseColor:  mgl64.Vec3{1, 1, 1},
		SpecularColor: mgl64.Vec3{1, 1, 1},
		AmbientColor:  mgl64.Vec3{0.2, 0.2, 0.2},
		GroundColor:   mgl64.Vec3{0.2, 0.2, 0.2},
		SkyDirection:  mgl64.Vec3{0, 1, 0},
		Alpha:         1,
		AlphaClip:     0,
		SpecularPower: 16,
		Gamma:         2.2,
		Fog:           fog.Params{Start: 100, End: 1000, Density: 0.01, Mode: fog.Off},
		FogColor:      mgl64.Vec3{1, 1, 1},

		DiffuseMapScaleOffset:   texture.IdentityScaleOffset,
		NormalMapScaleOffset:    texture.IdentityScaleOffset,
		SpecularMapScaleOffset:  texture.IdentityScaleOffset,
		EmissionMapScaleOffset:  texture.IdentityScaleOffset,
		AmbientMapScaleOffset:   texture.IdentityScaleOffset,
		OcclusionMapScaleOffset: texture.IdentityScaleOffset,
	}
}

// Features derives the feature set of m. Tangent frames are only needed for
// normal mapping.
func (m *Material) Features() Features {
	var f Features
	if m.DiffuseMap != nil {
		f |= DiffuseMap
	}
	if m.NormalMap != nil {
		f |= NormalMap | Tangent
	}
	if m.SpecularMap != nil {
		f |= SpecularMap
	}
	if m.EmissionMap != nil {
		f |= EmissionMap
	}
	if m.AmbientMap != nil {
		f |= AmbientMap
	}
	if m.OcclusionMap != nil {
		f |= OcclusionMap
	}
	if m.ClipAlpha {
		f |= AlphaClip
	}
	if m.Hemisphere {
		f |= Hemisphere
	}
	if m.Fog.Mode != fog.Off {
		f |= Fog
	}
	if m.VertexColor {
		f |= VertexColor
	}
	return f
}
