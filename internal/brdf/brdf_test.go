package brdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allModels = []Model{Lambert, CookTorrance, Szirmay, Optimized, BlinnPhong, Phong}

func randomUnit(r *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{r.Float64()*2 - 1, r.Float64()*2 - 1, r.Float64()*2 - 1}
		if l := v.Len(); l > 1e-3 && l <= 1 {
			return v.Mul(1 / l)
		}
	}
}

func TestModelsAreNonNegative(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, m := range allModels {
		for i := 0; i < 5000; i++ {
			in := Input{
				View:      randomUnit(r),
				Normal:    randomUnit(r),
				Light:     randomUnit(r),
				Intensity: mgl64.Vec3{r.Float64() * 4, r.Float64() * 4, r.Float64() * 4},
				Albedo:    mgl64.Vec3{r.Float64(), r.Float64(), r.Float64()},
				Specular:  mgl64.Vec3{r.Float64(), r.Float64(), r.Float64()},
				Power:     r.Float64() * 256,
			}
			out := Shade(m, in)
			for c := 0; c < 3; c++ {
				require.False(t, math.IsNaN(out[c]) || math.IsInf(out[c], 0), "%v produced %v for %+v", m, out, in)
				require.GreaterOrEqual(t, out[c], 0.0, "%v produced %v for %+v", m, out, in)
			}
		}
	}
}

func TestDegenerateVectors(t *testing.T) {
	n := mgl64.Vec3{0, 1, 0}
	cases := []Input{
		// light exactly opposite the view: V+L is zero
		{View: mgl64.Vec3{1, 0, 0}, Normal: n, Light: mgl64.Vec3{-1, 0, 0}},
		// grazing light and view
		{View: mgl64.Vec3{0, 0, 1}, Normal: n, Light: mgl64.Vec3{1, 0, 0}},
		// zero power
		{View: n, Normal: n, Light: n},
	}
	for _, in := range cases {
		in.Intensity = mgl64.Vec3{1, 1, 1}
		in.Albedo = mgl64.Vec3{0.5, 0.5, 0.5}
		in.Specular = mgl64.Vec3{0.04, 0.04, 0.04}
		for _, m := range allModels {
			out := Shade(m, in)
			for c := 0; c < 3; c++ {
				assert.False(t, math.IsNaN(out[c]) || math.IsInf(out[c], 0), "%v on %+v", m, in)
			}
		}
	}
}

func TestLambert(t *testing.T) {
	in := Input{
		Normal:    mgl64.Vec3{0, 1, 0},
		Light:     mgl64.Vec3{0, 1, 1}.Normalize(),
		View:      mgl64.Vec3{0, 1, 0},
		Intensity: mgl64.Vec3{2, 2, 2},
		Albedo:    mgl64.Vec3{0.5, 0.25, 1},
		Specular:  mgl64.Vec3{1, 1, 1},
		Power:     16,
	}
	out := ShadeLambert(in)
	k := 2 * math.Sqrt(0.5)
	assert.True(t, out.ApproxEqualThreshold(mgl64.Vec3{0.5 * k, 0.25 * k, k}, 1e-12))

	in.Light = mgl64.Vec3{0, -1, 0}
	assert.Equal(t, mgl64.Vec3{}, ShadeLambert(in), "light behind the surface")
}

func TestHeadOnSpecular(t *testing.T) {
	// N = V = L: every dot product is 1 and Fresnel reduces to R.
	n := mgl64.Vec3{0, 0, 1}
	in := Input{
		View: n, Normal: n, Light: n,
		Intensity: mgl64.Vec3{1, 1, 1},
		Albedo:    mgl64.Vec3{0.2, 0.2, 0.2},
		Specular:  mgl64.Vec3{0.5, 0.5, 0.5},
		Power:     32,
	}
	// Cook-Torrance: D=1, F=0.5, G=1 -> BRDF = 0.5/4
	assert.InDelta(t, 0.5/4*0.5+0.2, ShadeCookTorrance(in)[0], 1e-12)
	// Szirmay: D*F/4
	assert.InDelta(t, 0.5/4*0.5+0.2, ShadeSzirmay(in)[0], 1e-12)
	// Optimized: D/4
	assert.InDelta(t, 0.25*0.5+0.2, ShadeOptimized(in)[0], 1e-12)
	assert.InDelta(t, 0.5+0.2, ShadeBlinnPhong(in)[0], 1e-12)
	assert.InDelta(t, 0.5+0.2, ShadePhong(in)[0], 1e-12)
}

func TestFastFresnel(t *testing.T) {
	r := mgl64.Vec3{0.04, 0.5, 0}
	assert.True(t, FastFresnel(r, 1).ApproxEqual(r), "head on")
	assert.True(t, FastFresnel(r, 0).ApproxEqual(mgl64.Vec3{1, 1, 0}), "grazing saturates to min(60R, 1)")
}

func TestParseModel(t *testing.T) {
	tests := map[string]Model{
		"lambert":           Lambert,
		"CookTorrance":      CookTorrance,
		"shadeCookTorrance": CookTorrance,
		"cook-torrance":     CookTorrance,
		"shadeSzirmay":      Szirmay,
		"optimized":         Optimized,
		"shadeBlinn":        BlinnPhong,
		"blinn_phong":       BlinnPhong,
		"phong":             Phong,
	}
	for in, want := range tests {
		got, err := ParseModel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseModel("ggx")
	assert.ErrorIs(t, err, ErrUnknownModel)

	for _, m := range allModels {
		got, err := ParseModel(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestUnknownModelFallsBackToLambert(t *testing.T) {
	in := Input{
		View: mgl64.Vec3{0, 0, 1}, Normal: mgl64.Vec3{0, 0, 1}, Light: mgl64.Vec3{0, 0, 1},
		Intensity: mgl64.Vec3{1, 1, 1}, Albedo: mgl64.Vec3{0.3, 0.3, 0.3}, Specular: mgl64.Vec3{1, 1, 1}, Power: 8,
	}
	assert.Equal(t, ShadeLambert(in), Shade(Model(42), in))
}
