// Package shade evaluates the per-fragment shading loop: surface decode,
// alpha clip, linear-space lighting over the light list, ambient and
// emission, tone mapping, gamma encoding and fog.
package shade

import (
	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/brdf"
	"glib-shading/internal/fog"
	"glib-shading/internal/light"
	"glib-shading/internal/mathutil"
)

// Program is a material bound to one reflectance model. Build it once with
// NewProgram and share it between goroutines; Shade does not mutate it.
type Program struct {
	Material Material
	Model    brdf.Model
	Features Features

	// Source replaces Surface when set.
	Source SurfaceFunc

	shade brdf.Func
}

// NewProgram binds m to model and fixes the feature set.
func NewProgram(m Material, model brdf.Model) *Program {
	return &Program{
		Material: m,
		Model:    model,
		Features: m.Features(),
		shade:    model.Func(),
	}
}

// Shade computes the color of frag seen from camera. ok is false when the
// fragment is discarded by the alpha clip; the color is then meaningless.
func (p *Program) Shade(frag Fragment, camera mgl64.Vec3, lights light.List) (color mgl64.Vec4, ok bool) {
	var s Surface
	if p.Source != nil {
		s = p.Source(frag)
	} else {
		s = p.Surface(frag)
	}

	if p.Features.Has(AlphaClip) && s.Diffuse[3]-p.Material.AlphaClip <= 0 {
		return mgl64.Vec4{}, false
	}

	gamma := p.gamma()
	albedo := GammaDecode(s.Diffuse.Vec3(), gamma)
	specular := GammaDecode(s.Specular.Vec3(), gamma)

	fn := p.shade
	if fn == nil {
		fn = p.Model.Func()
	}

	view := mathutil.Normalize(camera.Sub(frag.WorldPosition))
	var c mgl64.Vec3
	lights.Each(frag.WorldPosition, func(_ int, in light.Incident) bool {
		c = c.Add(fn(brdf.Input{
			View:      view,
			Normal:    s.Normal,
			Light:     in.Dir,
			Intensity: in.Intensity,
			Albedo:    albedo,
			Specular:  specular,
			Power:     s.Specular[3],
		}))
		return true
	})

	ambient := p.ambient(s.Normal, frag.UV).Mul(1 - s.Occlusion)
	c = c.Add(mathutil.MulVec3(ambient, albedo))
	c = c.Add(s.Emission)
	c = GammaEncode(Tonemap(c), gamma)

	if p.Features.Has(Fog) {
		dist := camera.Sub(frag.WorldPosition).Len()
		c = fog.Apply(c, p.Material.FogColor, p.Material.Fog.Amount(dist))
	}

	return c.Vec4(s.Diffuse[3]), true
}

func (p *Program) gamma() float64 {
	return mathutil.SafeDenom(p.Material.Gamma)
}

func (p *Program) ambient(n mgl64.Vec3, uv mgl64.Vec2) mgl64.Vec3 {
	m := &p.Material
	sky := m.AmbientColor
	if p.Features.Has(AmbientMap) {
		sky = m.AmbientMap.Sample(m.AmbientMapScaleOffset.Apply(uv)).Vec3()
	}
	if !p.Features.Has(Hemisphere) {
		return sky
	}
	return Ambient(sky, m.GroundColor, m.SkyDirection, n)
}

// Ambient blends ground toward sky by 0.5*(1 + dot(n, skyDir)): a normal
// facing the sky gets the sky color, one facing away gets the ground color.
func Ambient(sky, ground, skyDir, n mgl64.Vec3) mgl64.Vec3 {
	w := mathutil.Clamp01(0.5 * (1 + n.Dot(mathutil.Normalize(skyDir))))
	return mathutil.MixVec3(ground, sky, w)
}

// Tonemap compresses HDR radiance with 1 - exp(-c).
func Tonemap(c mgl64.Vec3) mgl64.Vec3 {
	e := mathutil.ExpVec3(c.Mul(-1))
	return mgl64.Vec3{1 - e[0], 1 - e[1], 1 - e[2]}
}

// GammaDecode converts display values to linear space: pow(c, gamma).
func GammaDecode(c mgl64.Vec3, gamma float64) mgl64.Vec3 {
	return mathutil.PowVec3(c, mathutil.SafeDenom(gamma))
}

// GammaEncode converts linear values to display space: pow(c, 1/gamma).
func GammaEncode(c mgl64.Vec3, gamma float64) mgl64.Vec3 {
	return mathutil.PowVec3(c, 1/mathutil.SafeDenom(gamma))
}
