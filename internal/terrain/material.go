package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/brdf"
	"glib-shading/internal/mathutil"
	"glib-shading/internal/shade"
	"glib-shading/internal/texture"
)

// Material is a splat-mapped terrain surface. The splat map and slope mask
// span the whole terrain; the layers tile Tiling times across it.
type Material struct {
	Layers    Set
	Splat     texture.Sampler
	SlopeMask texture.Sampler
	Tiling    float64

	Specular      mgl64.Vec3
	SpecularPower float64
}

// Surface implements shade.SurfaceFunc. The terrain is a Y-up height field,
// so the decoded layer normals are used as world normals. Without normal
// layers the interpolated vertex normal is kept.
func (m *Material) Surface(frag shade.Fragment) shade.Surface {
	var splat mgl64.Vec4
	if m.Splat != nil {
		splat = m.Splat.Sample(frag.UV)
	}

	tiling := m.Tiling
	if tiling == 0 {
		tiling = 1
	}
	detail := frag.UV.Mul(tiling)

	n := mathutil.Normalize(frag.WorldNormal)
	slope := BlendSlope(m.SlopeMask, SlopeOf(n), frag.UV)

	diffuse := SplatColor(m.Layers.Diffuse, detail, splat, slope)
	diffuse[3] = 1

	if m.Layers.Normal.Base != nil {
		if bent := SplatNormal(m.Layers.Normal, detail, splat, slope); bent != (mgl64.Vec3{}) {
			n = bent
		}
	}

	return shade.Surface{
		Normal:   n,
		Diffuse:  diffuse,
		Specular: m.Specular.Vec4(m.SpecularPower),
	}
}

// Program wraps m in a shading program. base supplies gamma, ambient and fog.
func (m *Material) Program(base shade.Material, model brdf.Model) *shade.Program {
	p := shade.NewProgram(base, model)
	p.Source = m.Surface
	return p
}
