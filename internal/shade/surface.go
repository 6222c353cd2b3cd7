package shade

import (
	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

// Surface is the material state of one shaded point.
// Specular.w holds the specular power. Occlusion is the fraction of ambient
// light blocked at the point; zero leaves the ambient term untouched.
type Surface struct {
	Normal    mgl64.Vec3
	Diffuse   mgl64.Vec4
	Specular  mgl64.Vec4
	Emission  mgl64.Vec3
	Occlusion float64
}

// Fragment holds the interpolated vertex outputs of one pixel.
type Fragment struct {
	WorldPosition  mgl64.Vec3
	WorldNormal    mgl64.Vec3
	WorldTangent   mgl64.Vec3
	WorldBitangent mgl64.Vec3
	UV             mgl64.Vec2
	Color          mgl64.Vec4
}

// SurfaceFunc builds the Surface of a fragment. Programs use their material
// by default; terrain and other custom surfaces plug in here.
type SurfaceFunc func(frag Fragment) Surface

// Surface decodes the surface of frag from the program's material.
func (p *Program) Surface(frag Fragment) Surface {
	m := &p.Material
	var s Surface

	if p.Features.Has(DiffuseMap) {
		s.Diffuse = m.DiffuseMap.Sample(m.DiffuseMapScaleOffset.Apply(frag.UV))
		s.Diffuse[3] *= m.Alpha
	} else {
		s.Diffuse = m.DiffuseColor.Vec4(m.Alpha)
	}
	if p.Features.Has(VertexColor) {
		s.Diffuse = mgl64.Vec4{
			s.Diffuse[0] * frag.Color[0],
			s.Diffuse[1] * frag.Color[1],
			s.Diffuse[2] * frag.Color[2],
			s.Diffuse[3],
		}
	}

	if p.Features.Has(SpecularMap) {
		s.Specular = m.SpecularMap.Sample(m.SpecularMapScaleOffset.Apply(frag.UV)).Vec3().Vec4(m.SpecularPower)
	} else {
		s.Specular = m.SpecularColor.Vec4(m.SpecularPower)
	}

	if p.Features.Has(EmissionMap) {
		s.Emission = m.EmissionMap.Sample(m.EmissionMapScaleOffset.Apply(frag.UV)).Vec3()
	} else {
		s.Emission = m.EmissionColor
	}

	if p.Features.Has(OcclusionMap) {
		ao := m.OcclusionMap.Sample(m.OcclusionMapScaleOffset.Apply(frag.UV))[0]
		s.Occlusion = 1 - mathutil.Clamp01(ao)
	}

	s.Normal = p.normal(frag)
	return s
}

func (p *Program) normal(frag Fragment) mgl64.Vec3 {
	n := mathutil.Normalize(frag.WorldNormal)
	if !p.Features.Has(NormalMap | Tangent) {
		return n
	}
	t := frag.WorldTangent
	b := frag.WorldBitangent
	if t == (mgl64.Vec3{}) || b == (mgl64.Vec3{}) {
		return n
	}
	m := &p.Material
	c := m.NormalMap.Sample(m.NormalMapScaleOffset.Apply(frag.UV))
	bump := mathutil.Normalize(mgl64.Vec3{c[0]*2 - 1, c[1]*2 - 1, c[2]*2 - 1})
	tbn := mgl64.Mat3FromCols(t, b, frag.WorldNormal)
	if bent := mathutil.Normalize(tbn.Mul3x1(bump)); bent != (mgl64.Vec3{}) {
		return bent
	}
	return n
}
