package binding

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glib-shading/internal/shade"
	"glib-shading/internal/texture"
)

const header = `// A free text comment, ignored.

// @binding AmbientColor
// @widget   color
// @default  [0.2, 0.2, 0.2]
uniform vec3 uAmbientColor;

// @binding Gamma
// @widget range(0, 4)
// @default 2.2
uniform highp float uGamma;

uniform float uPlain;

// register : 3
// filter   : PointClamp
uniform sampler2D textureSplat;

// @binding position
attribute vec3 aPosition;

varying vec2 vTexture;

struct P {
  vec4 A; // first
  vec4 B;
};

const int COUNT = 2;

// @binding Items
uniform P uItems[COUNT];

uniform P uSingle;
`

func TestParse(t *testing.T) {
	ref, err := Parse(strings.NewReader(header))
	require.NoError(t, err)

	amb, ok := ref.Uniform("AmbientColor")
	require.True(t, ok)
	assert.Equal(t, "vec3", amb.Type)
	assert.Equal(t, "uAmbientColor", amb.Name)
	assert.Equal(t, "color", amb.Annotation.Widget)
	v, ok := amb.Annotation.Floats()
	require.True(t, ok)
	assert.Equal(t, []float64{0.2, 0.2, 0.2}, v)

	gamma, ok := ref.Uniform("Gamma")
	require.True(t, ok)
	assert.Equal(t, "float", gamma.Type)
	assert.Equal(t, 2.2, gamma.Annotation.Default)
	w, err := ParseWidget(gamma.Annotation.Widget)
	require.NoError(t, err)
	assert.Equal(t, Widget{Kind: WidgetRange, Min: 0, Max: 4}, w)

	plain, ok := ref.Uniform("uPlain")
	require.True(t, ok)
	assert.Equal(t, Annotation{}, plain.Annotation)

	splat, ok := ref.Uniform("textureSplat")
	require.True(t, ok)
	require.NotNil(t, splat.Annotation.Register)
	assert.Equal(t, 3, *splat.Annotation.Register)
	assert.Equal(t, "PointClamp", splat.Annotation.Filter)

	pos, ok := ref.Attribute("position")
	require.True(t, ok)
	assert.Equal(t, "aPosition", pos.Name)

	require.Len(t, ref.Varyings, 1)
	assert.Equal(t, "vTexture", ref.Varyings[0].Name)

	require.Len(t, ref.Constants, 1)
	assert.Equal(t, "2", ref.Constants[0].Value)

	assert.Equal(t, []Member{{"vec4", "A"}, {"vec4", "B"}}, ref.Structs["P"])

	for _, key := range []string{"Items[0].A", "Items[0].B", "Items[1].A", "Items[1].B", "uSingle.A", "uSingle.B"} {
		e, ok := ref.Uniform(key)
		assert.True(t, ok, key)
		assert.Equal(t, "vec4", e.Type, key)
	}
	_, ok = ref.Uniform("Items")
	assert.False(t, ok, "struct uniform itself is replaced by its members")
}

func TestParseBlankLineClearsBlock(t *testing.T) {
	src := "// @binding Lost\n\nuniform float uX;\n"
	ref, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, ref.Uniforms, 1)
	assert.Equal(t, "uX", ref.Uniforms[0].Key())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("// @default [1, 2\nuniform vec3 uX;\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("struct S {\n vec4 A;\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("struct S { vec4 A; };\nuniform S uX[N];\n"))
	assert.Error(t, err)
}

func TestParseKeepsUnknownKeys(t *testing.T) {
	src := "// @binding X\n// @group lighting\nuniform float uX;\n"
	ref, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	e, ok := ref.Uniform("X")
	require.True(t, ok)
	assert.Equal(t, "lighting", e.Annotation.Extra["group"])
}

func TestParseWidget(t *testing.T) {
	tests := []struct {
		in   string
		want Widget
	}{
		{"", Widget{}},
		{"color", Widget{Kind: WidgetColor}},
		{"Direction", Widget{Kind: WidgetDirection}},
		{"number", Widget{Kind: WidgetNumber}},
		{"range(0, 1024)", Widget{Kind: WidgetRange, Max: 1024}},
		{"range(-1,1)", Widget{Kind: WidgetRange, Min: -1, Max: 1}},
	}
	for _, tt := range tests {
		got, err := ParseWidget(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"slider", "range(1)", "range(a, b)", "range(0, 1"} {
		_, err := ParseWidget(bad)
		assert.ErrorIs(t, err, ErrBadWidget, bad)
	}
}

func TestLibrary(t *testing.T) {
	ref, err := Library()
	require.NoError(t, err)

	for _, key := range []string{"position", "normal", "tangent", "bitangent", "texture", "texture2", "color", "indices", "weights"} {
		_, ok := ref.Attribute(key)
		assert.True(t, ok, key)
	}

	for i := range 4 {
		for _, m := range []string{"Position", "Direction", "Color", "Misc"} {
			key := "Lights[" + strconv.Itoa(i) + "]." + m
			_, ok := ref.Uniform(key)
			assert.True(t, ok, key)
		}
	}

	regs := map[string]int{}
	for _, s := range ref.Samplers() {
		require.NotNil(t, s.Annotation.Register, s.Name)
		assert.Equal(t, "LinearWrap", s.Annotation.Filter, s.Name)
		regs[s.Key()] = *s.Annotation.Register
	}
	assert.Equal(t, 0, regs["DiffuseMap"])
	assert.Equal(t, 1, regs["NormalMap"])
	assert.Equal(t, 6, regs["OcclusionMap"])
	assert.Equal(t, 7, regs["AmbientMap"])
	assert.Equal(t, 15, regs["textureNormalSlope"])

	for _, u := range ref.Uniforms {
		if u.Annotation.Widget == "" {
			continue
		}
		_, err := ParseWidget(u.Annotation.Widget)
		assert.NoError(t, err, u.Name)
	}
}

func TestLibraryDefaultsMatchMaterial(t *testing.T) {
	ref, err := Library()
	require.NoError(t, err)
	m := shade.DefaultMaterial()

	vec := func(key string) []float64 {
		e, ok := ref.Uniform(key)
		require.True(t, ok, key)
		v, ok := e.Annotation.Floats()
		require.True(t, ok, key)
		return v
	}

	assert.Equal(t, m.AmbientColor[:], vec("AmbientColor"))
	assert.Equal(t, m.GroundColor[:], vec("GroundColor"))
	assert.Equal(t, m.SkyDirection[:], vec("SkyDirection"))
	assert.Equal(t, m.DiffuseColor[:], vec("DiffuseColor"))
	assert.Equal(t, m.SpecularColor[:], vec("SpecularColor"))
	assert.Equal(t, m.EmissionColor[:], vec("EmissionColor"))
	assert.Equal(t, m.FogColor[:], vec("FogColor"))
	assert.Equal(t, []float64{m.Gamma}, vec("Gamma"))
	assert.Equal(t, []float64{m.Alpha}, vec("Alpha"))
	assert.Equal(t, []float64{m.AlphaClip}, vec("AlphaClip"))
	assert.Equal(t, []float64{m.SpecularPower}, vec("SpecularPower"))
	assert.Equal(t, []float64{m.Fog.Start}, vec("FogStart"))
	assert.Equal(t, []float64{m.Fog.End}, vec("FogEnd"))
	for key, so := range map[string]texture.ScaleOffset{
		"DiffuseMapScaleOffset":   m.DiffuseMapScaleOffset,
		"NormalMapScaleOffset":    m.NormalMapScaleOffset,
		"SpecularMapScaleOffset":  m.SpecularMapScaleOffset,
		"EmissionMapScaleOffset":  m.EmissionMapScaleOffset,
		"AmbientMapScaleOffset":   m.AmbientMapScaleOffset,
		"OcclusionMapScaleOffset": m.OcclusionMapScaleOffset,
	} {
		assert.Equal(t, so[:], vec(key), key)
	}

	defaults := ref.Defaults()
	assert.Contains(t, defaults, "Gamma")
	assert.NotContains(t, defaults, "DiffuseMap")
}

func TestMarshal(t *testing.T) {
	ref, err := Parse(strings.NewReader(header))
	require.NoError(t, err)
	out, err := ref.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "binding: AmbientColor")
	assert.Contains(t, string(out), "Items[1].B")
}
