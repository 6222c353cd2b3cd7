package codec

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackFloatRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	values := []float64{0, 1e-9, 0.5, 0.25, 1.0 / 3, 0.999999, math.Nextafter(1, 0)}
	for i := 0; i < 10000; i++ {
		values = append(values, r.Float64())
	}
	for _, v := range values {
		c := PackFloat(v)
		assert.InDelta(t, v, UnpackFloat(c), 1e-6, "v=%v", v)
		for i := range 4 {
			assert.GreaterOrEqual(t, c[i], -1e-12, "v=%v channel %d", v, i)
			assert.Less(t, c[i], 1.0, "v=%v channel %d", v, i)
		}
	}
}

func TestPackRGBA8RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		b := PackRGBA8(v)
		got := UnpackRGBA8(b)
		assert.InDelta(t, v, got, 1e-6)
		assert.LessOrEqual(t, got, v)
		assert.Less(t, v-got, 1.0/(1<<32)+1e-15)
	}
}

func TestPackRGBA8MatchesFloatChannels(t *testing.T) {
	// The three coarse channels of PackFloat are exact multiples of 1/256.
	for _, v := range []float64{0.1, 0.5, 0.73, 0.015625} {
		b := PackRGBA8(v)
		c := PackFloat(v)
		for i := 1; i < 4; i++ {
			assert.InDelta(t, float64(b[i])/256, c[i], 1e-9, "v=%v channel %d", v, i)
		}
	}
}

func TestPackKnownValues(t *testing.T) {
	assert.Equal(t, [4]uint8{0, 0, 0, 128}, PackRGBA8(0.5))
	assert.Equal(t, [4]uint8{0, 0, 0, 0}, PackRGBA8(0))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, PackRGBA8(math.Nextafter(1, 0)))
	assert.Equal(t, mgl64.Vec4{0, 0, 0, 0.5}, PackFloat(0.5))
}

func TestLogLuvRoundTrip(t *testing.T) {
	colors := []mgl64.Vec3{
		{0.5, 0.5, 0.5},
		{10, 2, 0.1},
		{1e-5, 1e-5, 1e-5},
		{1, 0, 0},
		{0.2, 0.9, 0.3},
		{120, 80, 60},
		{0.01, 0.02, 0.5},
	}
	for _, c := range colors {
		got := DecodeLogLuv(EncodeLogLuv(c))
		for i := range 3 {
			assert.GreaterOrEqual(t, got[i], 0.0)
			if c[i] == 0 {
				assert.InDelta(t, 0, got[i], 0.02*c.Len(), "%v -> %v", c, got)
				continue
			}
			assert.InEpsilon(t, c[i], got[i], 0.02, "%v -> %v", c, got)
		}
	}
}

func TestLogLuvRange(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		c := mgl64.Vec3{r.Float64() * 50, r.Float64() * 50, r.Float64() * 50}
		enc := EncodeLogLuv(c)
		require.GreaterOrEqual(t, enc[2], 0.0)
		require.LessOrEqual(t, enc[2], 1.0)
		require.GreaterOrEqual(t, enc[3], 0.0)
		require.Less(t, enc[3], 1.0)

		dec := DecodeLogLuv(enc)
		for j := range 3 {
			require.GreaterOrEqual(t, dec[j], 0.0)
		}
	}
}

func TestLogLuvBlack(t *testing.T) {
	got := DecodeLogLuv(EncodeLogLuv(mgl64.Vec3{}))
	for i := range 3 {
		assert.False(t, math.IsNaN(got[i]))
		assert.Less(t, got[i], 1e-4)
	}
}

func TestLogLuvInverse(t *testing.T) {
	id := LogLuvM.Mul3(LogLuvInverseM)
	want := mgl64.Ident3()
	for i := range id {
		assert.InDelta(t, want[i], id[i], 1e-9, "element %d", i)
	}
}
