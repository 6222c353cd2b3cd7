package batch

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/brdf"
	"glib-shading/internal/config"
	"glib-shading/internal/fog"
	"glib-shading/internal/light"
	"glib-shading/internal/logging"
	"glib-shading/internal/mathutil"
	"glib-shading/internal/mesh"
	"glib-shading/internal/raster"
	"glib-shading/internal/shade"
	"glib-shading/internal/terrain"
	"glib-shading/internal/texture"
)

// Textures resolves texture names to samplers. A nil result means the
// texture is unavailable and the constant material color is used instead.
type Textures interface {
	Sampler(name string, filter texture.Filter) texture.Sampler
}

// BuildScene turns a scene description into a renderable scene.
func BuildScene(s config.Scene, tex Textures) (*raster.Scene, error) {
	m, err := mesh.ByName(s.Mesh)
	if err != nil {
		return nil, err
	}

	model := brdf.Lambert
	if s.Model != "" {
		if model, err = brdf.ParseModel(s.Model); err != nil {
			return nil, err
		}
	}

	lights, err := buildLights(s.Lights)
	if err != nil {
		return nil, err
	}

	mat, err := buildMaterial(s.Material, tex)
	if err != nil {
		return nil, err
	}

	var prog *shade.Program
	if s.Terrain != nil {
		prog = buildTerrain(s.Terrain, tex, mat.filter).Program(mat.Material, model)
	} else {
		prog = shade.NewProgram(mat.Material, model)
	}

	cull := raster.CullNone
	switch strings.ToLower(s.Mesh) {
	case "", "sphere", "cube":
		cull = raster.CullBack
	}

	return &raster.Scene{
		Camera:     buildCamera(s.Camera),
		Lights:     lights,
		Background: vec4(s.Background, mgl64.Vec4{}),
		Objects: []raster.Object{{
			Mesh:    m,
			World:   mgl64.Ident4(),
			Program: prog,
			Cull:    cull,
		}},
	}, nil
}

func buildCamera(c config.Camera) raster.Camera {
	cam := raster.DefaultCamera()
	cam.Target = vec3(c.Target, cam.Target)
	switch {
	case c.Distance > 0:
		cam.Position = mathutil.Orbit(cam.Target, c.Distance, c.Yaw, c.Pitch)
	case len(c.Position) == 3:
		cam.Position = vec3(c.Position, cam.Position)
	}
	if c.FovY > 0 {
		cam.FovY = c.FovY
	}
	return cam
}

// buildLights fills the light slots in file order. An "off" entry leaves its
// slot empty, which also hides every light after it.
func buildLights(in []config.Light) (light.List, error) {
	var out light.List
	if len(in) > light.MaxLights {
		return out, fmt.Errorf("%d lights, at most %d supported", len(in), light.MaxLights)
	}
	for i, l := range in {
		t, err := light.ParseType(l.Type)
		if err != nil {
			return light.List{}, fmt.Errorf("light %d: %w", i, err)
		}
		color := vec3(l.Color, mgl64.Vec3{1, 1, 1})
		intensity := 1.0
		if l.Intensity != nil {
			intensity = *l.Intensity
		}
		dir := vec3(l.Direction, mgl64.Vec3{0, -1, 0})
		pos := vec3(l.Position, mgl64.Vec3{})

		switch t {
		case light.Directional:
			out[i] = light.NewDirectional(dir, color, intensity)
		case light.Point:
			out[i] = light.NewPoint(pos, color, intensity, l.Range)
		case light.Spot:
			outer := l.Outer
			if outer <= 0 {
				outer = 45
			}
			out[i] = light.NewSpot(pos, dir, color, intensity, l.Range, outer, l.Inner)
		}
	}
	if n := out.Len(); n < len(in) {
		for _, l := range out[n:len(in)] {
			if l.Enabled() {
				logging.Logger().Warn("lights after an off slot are ignored", "active", n, "slots", len(in))
				break
			}
		}
	}
	return out, nil
}

type material struct {
	shade.Material
	filter texture.Filter
}

func buildMaterial(in config.Material, tex Textures) (material, error) {
	m := shade.DefaultMaterial()
	filter, err := texture.ParseFilter(in.Filter)
	if err != nil {
		return material{}, err
	}

	m.DiffuseColor = vec3(in.Diffuse, m.DiffuseColor)
	m.SpecularColor = vec3(in.Specular, m.SpecularColor)
	m.AmbientColor = vec3(in.Ambient, m.AmbientColor)
	m.GroundColor = vec3(in.Ground, m.GroundColor)
	m.SkyDirection = vec3(in.SkyDirection, m.SkyDirection)
	m.EmissionColor = vec3(in.Emission, m.EmissionColor)
	setFloat(&m.Alpha, in.Alpha)
	setFloat(&m.AlphaClip, in.AlphaClip)
	setFloat(&m.SpecularPower, in.SpecularPower)
	setFloat(&m.Gamma, in.Gamma)

	m.Hemisphere = in.Hemisphere
	m.ClipAlpha = in.ClipAlpha
	m.VertexColor = in.VertexColor

	if tex != nil {
		m.DiffuseMap = sampler(tex, in.DiffuseMap, filter)
		m.NormalMap = sampler(tex, in.NormalMap, filter)
		m.SpecularMap = sampler(tex, in.SpecularMap, filter)
		m.EmissionMap = sampler(tex, in.EmissionMap, filter)
		m.AmbientMap = sampler(tex, in.AmbientMap, filter)
		m.OcclusionMap = sampler(tex, in.OcclusionMap, filter)
	}

	so := in.ScaleOffset
	m.DiffuseMapScaleOffset = scaleOffset(so.Diffuse)
	m.NormalMapScaleOffset = scaleOffset(so.Normal)
	m.SpecularMapScaleOffset = scaleOffset(so.Specular)
	m.EmissionMapScaleOffset = scaleOffset(so.Emission)
	m.AmbientMapScaleOffset = scaleOffset(so.Ambient)
	m.OcclusionMapScaleOffset = scaleOffset(so.Occlusion)

	if f := in.Fog; f != nil {
		mode, err := fog.ParseMode(f.Mode)
		if err != nil {
			return material{}, err
		}
		m.Fog.Mode = mode
		if f.Start != 0 || f.End != 0 {
			m.Fog.Start, m.Fog.End = f.Start, f.End
		}
		if f.Density > 0 {
			m.Fog.Density = f.Density
		}
		m.FogColor = vec3(f.Color, m.FogColor)
	}
	return material{Material: m, filter: filter}, nil
}

func buildTerrain(in *config.Terrain, tex Textures, filter texture.Filter) *terrain.Material {
	layers := func(l config.Layers) terrain.Layers {
		return terrain.Layers{
			Base:  sampler(tex, l.Base, filter),
			R:     sampler(tex, l.R, filter),
			G:     sampler(tex, l.G, filter),
			B:     sampler(tex, l.B, filter),
			A:     sampler(tex, l.A, filter),
			Slope: sampler(tex, l.Slope, filter),
		}
	}
	return &terrain.Material{
		Layers:        terrain.Set{Diffuse: layers(in.Diffuse), Normal: layers(in.Normal)},
		Splat:         sampler(tex, in.Splat, texture.LinearClamp),
		SlopeMask:     sampler(tex, in.SlopeMask, filter),
		Tiling:        in.Tiling,
		Specular:      vec3(in.Specular, mgl64.Vec3{}),
		SpecularPower: in.SpecularPower,
	}
}

// sampler returns an untyped nil for missing textures so that callers can
// compare against nil.
func sampler(tex Textures, name string, filter texture.Filter) texture.Sampler {
	if tex == nil || name == "" {
		return nil
	}
	if s := tex.Sampler(name, filter); s != nil {
		return s
	}
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func vec3(v []float64, def mgl64.Vec3) mgl64.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func scaleOffset(v []float64) texture.ScaleOffset {
	return texture.ScaleOffset(vec4(v, mgl64.Vec4(texture.IdentityScaleOffset)))
}

func vec4(v []float64, def mgl64.Vec4) mgl64.Vec4 {
	if len(v) != 4 {
		return def
	}
	return mgl64.Vec4{v[0], v[1], v[2], v[3]}
}
