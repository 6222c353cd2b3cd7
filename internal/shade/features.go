package shade

import "strings"

// Features records which optional inputs a Program uses. It is fixed when
// the Program is built and replaces the preprocessor switches of a shader
// variant.
type Features uint32

const (
	DiffuseMap Features = 1 << iota
	NormalMap
	SpecularMap
	EmissionMap
	Tangent
	AlphaClip
	Hemisphere
	Fog
	VertexColor
	AmbientMap
	OcclusionMap
)

var featureDefines = []struct {
	f    Features
	name string
}{
	{DiffuseMap, "DIFFUSE_MAP"},
	{NormalMap, "NORMAL_MAP"},
	{SpecularMap, "SPECULAR_MAP"},
	{EmissionMap, "EMISSION_MAP"},
	{AmbientMap, "AMBIENT_MAP"},
	{OcclusionMap, "OCCLUSION_MAP"},
	{Tangent, "TANGENT"},
	{AlphaClip, "ALPHA_CLIP"},
	{Hemisphere, "HEMISPHERE"},
	{Fog, "FOG"},
	{VertexColor, "COLORED"},
}

// Has reports whether every bit of x is set in f.
func (f Features) Has(x Features) bool {
	return f&x == x
}

// Textured reports whether any texture map is sampled.
func (f Features) Textured() bool {
	return f&(DiffuseMap|NormalMap|SpecularMap|EmissionMap|AmbientMap|OcclusionMap) != 0
}

// Defines lists the shader define names of the enabled features, TEXTURED
// included when any map is present.
func (f Features) Defines() []string {
	var out []string
	for _, d := range featureDefines {
		if f.Has(d.f) {
			out = append(out, d.name)
		}
	}
	if f.Textured() {
		out = append(out, "TEXTURED")
	}
	return out
}

func (f Features) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Defines(), "|")
}
