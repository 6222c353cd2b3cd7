package config

import (
	"errors"
	"fmt"
	"strings"

	"glib-shading/internal/brdf"
	"glib-shading/internal/fog"
	"glib-shading/internal/light"
	"glib-shading/internal/mesh"
	"glib-shading/internal/texture"
)

// Scene is one image to render. Vectors are plain float slices so the three
// file formats read them the same way; an empty slice means "default".
//
// Lights are light slots in order. An "off" entry ends the list and lights
// after it are ignored.
type Scene struct {
	Name       string    `json:"name" yaml:"name" toml:"name"`
	Mesh       string    `json:"mesh" yaml:"mesh" toml:"mesh"`
	Model      string    `json:"model" yaml:"model" toml:"model"`
	Background []float64 `json:"background,omitempty" yaml:"background,omitempty" toml:"background,omitempty"`
	Camera     Camera    `json:"camera" yaml:"camera" toml:"camera"`
	Lights     []Light   `json:"lights" yaml:"lights" toml:"lights"`
	Material   Material  `json:"material" yaml:"material" toml:"material"`
	Terrain    *Terrain  `json:"terrain,omitempty" yaml:"terrain,omitempty" toml:"terrain,omitempty"`
}

// Camera places the camera either explicitly by Position or on an orbit
// around Target when Distance is set.
type Camera struct {
	Position []float64 `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Target   []float64 `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Distance float64   `json:"distance,omitempty" yaml:"distance,omitempty" toml:"distance,omitempty"`
	Yaw      float64   `json:"yaw,omitempty" yaml:"yaw,omitempty" toml:"yaw,omitempty"`
	Pitch    float64   `json:"pitch,omitempty" yaml:"pitch,omitempty" toml:"pitch,omitempty"`
	FovY     float64   `json:"fov,omitempty" yaml:"fov,omitempty" toml:"fov,omitempty"`
}

// Light is one light source. Angles are in degrees.
type Light struct {
	Type      string    `json:"type" yaml:"type" toml:"type"`
	Position  []float64 `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Direction []float64 `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	Color     []float64 `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Intensity *float64  `json:"intensity,omitempty" yaml:"intensity,omitempty" toml:"intensity,omitempty"`
	Range     float64   `json:"range,omitempty" yaml:"range,omitempty" toml:"range,omitempty"`
	Outer     float64   `json:"outer,omitempty" yaml:"outer,omitempty" toml:"outer,omitempty"`
	Inner     float64   `json:"inner,omitempty" yaml:"inner,omitempty" toml:"inner,omitempty"`
}

// Material overrides the library default material.
type Material struct {
	Diffuse       []float64 `json:"diffuse,omitempty" yaml:"diffuse,omitempty" toml:"diffuse,omitempty"`
	Specular      []float64 `json:"specular,omitempty" yaml:"specular,omitempty" toml:"specular,omitempty"`
	Ambient       []float64 `json:"ambient,omitempty" yaml:"ambient,omitempty" toml:"ambient,omitempty"`
	Ground        []float64 `json:"ground,omitempty" yaml:"ground,omitempty" toml:"ground,omitempty"`
	SkyDirection  []float64 `json:"sky_direction,omitempty" yaml:"sky_direction,omitempty" toml:"sky_direction,omitempty"`
	Emission      []float64 `json:"emission,omitempty" yaml:"emission,omitempty" toml:"emission,omitempty"`
	Alpha         *float64  `json:"alpha,omitempty" yaml:"alpha,omitempty" toml:"alpha,omitempty"`
	AlphaClip     *float64  `json:"alpha_clip,omitempty" yaml:"alpha_clip,omitempty" toml:"alpha_clip,omitempty"`
	SpecularPower *float64  `json:"specular_power,omitempty" yaml:"specular_power,omitempty" toml:"specular_power,omitempty"`
	Gamma         *float64  `json:"gamma,omitempty" yaml:"gamma,omitempty" toml:"gamma,omitempty"`

	DiffuseMap  string `json:"diffuse_map,omitempty" yaml:"diffuse_map,omitempty" toml:"diffuse_map,omitempty"`
	NormalMap   string `json:"normal_map,omitempty" yaml:"normal_map,omitempty" toml:"normal_map,omitempty"`
	SpecularMap string `json:"specular_map,omitempty" yaml:"specular_map,omitempty" toml:"specular_map,omitempty"`
	EmissionMap string `json:"emission_map,omitempty" yaml:"emission_map,omitempty" toml:"emission_map,omitempty"`
	Filter      string `json:"filter,omitempty" yaml:"filter,omitempty" toml:"filter,omitempty"`

	AmbientMap   string `json:"ambient_map,omitempty" yaml:"ambient_map,omitempty" toml:"ambient_map,omitempty"`
	OcclusionMap string `json:"occlusion_map,omitempty" yaml:"occlusion_map,omitempty" toml:"occlusion_map,omitempty"`

	ScaleOffset ScaleOffsets `json:"scale_offset" yaml:"scale_offset" toml:"scale_offset"`

	Hemisphere  bool `json:"hemisphere,omitempty" yaml:"hemisphere,omitempty" toml:"hemisphere,omitempty"`
	ClipAlpha   bool `json:"clip_alpha,omitempty" yaml:"clip_alpha,omitempty" toml:"clip_alpha,omitempty"`
	VertexColor bool `json:"vertex_color,omitempty" yaml:"vertex_color,omitempty" toml:"vertex_color,omitempty"`

	Fog *Fog `json:"fog,omitempty" yaml:"fog,omitempty" toml:"fog,omitempty"`
}

// ScaleOffsets holds the texture coordinate transform of each map as
// [scaleU, scaleV, offsetU, offsetV].
type ScaleOffsets struct {
	Diffuse   []float64 `json:"diffuse,omitempty" yaml:"diffuse,omitempty" toml:"diffuse,omitempty"`
	Normal    []float64 `json:"normal,omitempty" yaml:"normal,omitempty" toml:"normal,omitempty"`
	Specular  []float64 `json:"specular,omitempty" yaml:"specular,omitempty" toml:"specular,omitempty"`
	Emission  []float64 `json:"emission,omitempty" yaml:"emission,omitempty" toml:"emission,omitempty"`
	Ambient   []float64 `json:"ambient,omitempty" yaml:"ambient,omitempty" toml:"ambient,omitempty"`
	Occlusion []float64 `json:"occlusion,omitempty" yaml:"occlusion,omitempty" toml:"occlusion,omitempty"`
}

// Fog enables distance fog. Mode is off, exp, exp2, linear or smooth.
type Fog struct {
	Mode    string    `json:"mode" yaml:"mode" toml:"mode"`
	Start   float64   `json:"start,omitempty" yaml:"start,omitempty" toml:"start,omitempty"`
	End     float64   `json:"end,omitempty" yaml:"end,omitempty" toml:"end,omitempty"`
	Density float64   `json:"density,omitempty" yaml:"density,omitempty" toml:"density,omitempty"`
	Color   []float64 `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// Terrain replaces the material surface with splat-mapped layers.
type Terrain struct {
	Splat         string    `json:"splat" yaml:"splat" toml:"splat"`
	SlopeMask     string    `json:"slope_mask,omitempty" yaml:"slope_mask,omitempty" toml:"slope_mask,omitempty"`
	Tiling        float64   `json:"tiling,omitempty" yaml:"tiling,omitempty" toml:"tiling,omitempty"`
	Diffuse       Layers    `json:"diffuse" yaml:"diffuse" toml:"diffuse"`
	Normal        Layers    `json:"normal,omitempty" yaml:"normal,omitempty" toml:"normal,omitempty"`
	Specular      []float64 `json:"specular,omitempty" yaml:"specular,omitempty" toml:"specular,omitempty"`
	SpecularPower float64   `json:"specular_power,omitempty" yaml:"specular_power,omitempty" toml:"specular_power,omitempty"`
}

// Layers names the textures of one terrain layer set.
type Layers struct {
	Base  string `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	R     string `json:"r,omitempty" yaml:"r,omitempty" toml:"r,omitempty"`
	G     string `json:"g,omitempty" yaml:"g,omitempty" toml:"g,omitempty"`
	B     string `json:"b,omitempty" yaml:"b,omitempty" toml:"b,omitempty"`
	A     string `json:"a,omitempty" yaml:"a,omitempty" toml:"a,omitempty"`
	Slope string `json:"slope,omitempty" yaml:"slope,omitempty" toml:"slope,omitempty"`
}

// Formats lists the output image formats.
var Formats = []string{"webp", "png", "jpg"}

// Validate reports every problem in c at once. It expects a resolved config.
func (c *Config) Validate() error {
	var errs []error
	if !contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("config: unknown output format %q", c.Format))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, fmt.Errorf("config: quality %d out of range 1-100", c.Quality))
	}
	if len(c.Scenes) == 0 {
		errs = append(errs, errors.New("config: no scenes"))
	}

	names := map[string]bool{}
	for i := range c.Scenes {
		s := &c.Scenes[i]
		if names[s.Name] {
			errs = append(errs, fmt.Errorf("config: scene %q: duplicate name", s.Name))
		}
		names[s.Name] = true
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("config: scene %q: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scene) validate() error {
	var errs []error
	if _, err := mesh.ByName(s.Mesh); err != nil {
		errs = append(errs, err)
	}
	if s.Model != "" {
		if _, err := brdf.ParseModel(s.Model); err != nil {
			errs = append(errs, err)
		}
	}

	if n := len(s.Lights); n > light.MaxLights {
		errs = append(errs, fmt.Errorf("%d lights, at most %d slots supported", n, light.MaxLights))
	}
	for i, l := range s.Lights {
		t, err := light.ParseType(l.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("light %d: %w", i, err))
			continue
		}
		if t == light.Point || t == light.Spot {
			if l.Range <= 0 {
				errs = append(errs, fmt.Errorf("light %d: %s light needs a positive range", i, t))
			}
		}
	}

	if s.Material.Filter != "" {
		if _, err := texture.ParseFilter(s.Material.Filter); err != nil {
			errs = append(errs, err)
		}
	}
	if f := s.Material.Fog; f != nil {
		if _, err := fog.ParseMode(f.Mode); err != nil {
			errs = append(errs, err)
		}
	}

	vecs := map[string][]float64{
		"background":        s.Background,
		"camera.position":   s.Camera.Position,
		"camera.target":     s.Camera.Target,
		"material.diffuse":  s.Material.Diffuse,
		"material.specular": s.Material.Specular,
		"material.ambient":  s.Material.Ambient,
		"material.ground":   s.Material.Ground,
		"material.emission": s.Material.Emission,
		"material.sky":      s.Material.SkyDirection,

		"material.scale_offset.diffuse":   s.Material.ScaleOffset.Diffuse,
		"material.scale_offset.normal":    s.Material.ScaleOffset.Normal,
		"material.scale_offset.specular":  s.Material.ScaleOffset.Specular,
		"material.scale_offset.emission":  s.Material.ScaleOffset.Emission,
		"material.scale_offset.ambient":   s.Material.ScaleOffset.Ambient,
		"material.scale_offset.occlusion": s.Material.ScaleOffset.Occlusion,
	}
	for name, v := range vecs {
		want := 3
		if name == "background" || strings.HasPrefix(name, "material.scale_offset.") {
			want = 4
		}
		if len(v) != 0 && len(v) != want {
			errs = append(errs, fmt.Errorf("%s: want %d components, got %d", name, want, len(v)))
		}
	}
	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
