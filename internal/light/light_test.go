package light

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, typ := range []Type{Off, Directional, Point, Spot} {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("area")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "Type(9)", Type(9).String())
}

func TestEvaluateOff(t *testing.T) {
	in, ok := Evaluate(Light{Color: mgl64.Vec4{1, 1, 1, 1}}, mgl64.Vec3{})
	assert.False(t, ok)
	assert.Equal(t, mgl64.Vec3{}, in.Intensity)

	_, ok = Evaluate(Light{Type: Type(-1), Color: mgl64.Vec4{1, 1, 1, 1}}, mgl64.Vec3{})
	assert.False(t, ok, "negative types are off")

	in, ok = Evaluate(Light{Type: Type(7), Color: mgl64.Vec4{1, 1, 1, 1}}, mgl64.Vec3{})
	assert.True(t, ok, "unknown types do not end the list")
	assert.Equal(t, mgl64.Vec3{}, in.Intensity)
}

func TestDirectionalIsPositionInvariant(t *testing.T) {
	l := NewDirectional(mgl64.Vec3{-1, -1, 0}, mgl64.Vec3{1, 0.5, 0.25}, 2)
	a, ok := Evaluate(l, mgl64.Vec3{0, 0, 0})
	require.True(t, ok)
	b, _ := Evaluate(l, mgl64.Vec3{100, -40, 7})

	assert.Equal(t, a.Intensity, b.Intensity)
	assert.Equal(t, a.Dir, b.Dir)
	assert.True(t, a.Intensity.ApproxEqual(mgl64.Vec3{2, 1, 0.5}))
	assert.True(t, a.Dir.ApproxEqual(mgl64.Vec3{1, 1, 0}.Normalize()))
}

func TestPointFalloffIsMonotonic(t *testing.T) {
	const rng = 10.0
	l := NewPoint(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 1, 1}, 1, rng)

	prev := math.Inf(1)
	for d := 0.0; d <= 2*rng; d += 0.25 {
		in, ok := Evaluate(l, mgl64.Vec3{d, 5, 0})
		require.True(t, ok)
		m := in.Intensity.Len()
		assert.LessOrEqual(t, m, prev, "distance %v", d)
		if d >= rng {
			assert.Equal(t, 0.0, m, "distance %v", d)
		}
		prev = m
	}

	in, _ := Evaluate(l, mgl64.Vec3{5, 5, 0})
	assert.True(t, in.Intensity.ApproxEqual(mgl64.Vec3{0.5, 0.5, 0.5}))
	assert.True(t, in.Dir.ApproxEqual(mgl64.Vec3{-1, 0, 0}))
}

func TestPointZeroRange(t *testing.T) {
	l := NewPoint(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, 1, 0)
	in, ok := Evaluate(l, mgl64.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{}, in.Intensity)
	for _, c := range in.Dir {
		assert.False(t, math.IsNaN(c))
	}
}

func TestSpotCone(t *testing.T) {
	l := NewSpot(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 1, 1}, 1, 100, 30, 20)

	center, ok := Evaluate(l, mgl64.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 0.9, center.Intensity[0], 1e-9, "inside inner cone only distance falloff applies")

	outside, _ := Evaluate(l, mgl64.Vec3{10, 0, 0})
	assert.Equal(t, 0.0, outside.Intensity[0], "45 degrees is outside the outer cone")

	// 25 degrees sits between the cones.
	x := 10 * math.Tan(25*math.Pi/180)
	edge, _ := Evaluate(l, mgl64.Vec3{x, 0, 0})
	assert.Greater(t, edge.Intensity[0], 0.0)
	assert.Less(t, edge.Intensity[0], center.Intensity[0])

	outer, inner := l.SpotAngles()
	assert.InDelta(t, 30, outer, 1e-9)
	assert.InDelta(t, 20, inner, 1e-9)
}

func TestNewSpotOrdersAngles(t *testing.T) {
	l := NewSpot(mgl64.Vec3{}, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 1, 1}, 1, 10, 10, 40)
	assert.Less(t, l.Misc[1], l.Misc[2], "cos(outer) < cos(inner)")
}

func TestListHaltsAtFirstOff(t *testing.T) {
	dir := NewDirectional(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 1, 1}, 1)
	pt := NewPoint(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 1, 1}, 1, 10)
	spot := NewSpot(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 1, 1}, 1, 10, 30, 20)

	l := List{dir, pt, {}, spot}
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []Light{dir, pt}, l.Active())

	var seen []int
	l.Each(mgl64.Vec3{}, func(i int, in Incident) bool {
		seen = append(seen, i)
		return true
	})
	assert.Equal(t, []int{0, 1}, seen)

	seen = nil
	l.Each(mgl64.Vec3{}, func(i int, in Incident) bool {
		seen = append(seen, i)
		return false
	})
	assert.Equal(t, []int{0}, seen)

	assert.Equal(t, 0, List{}.Len())
	assert.Equal(t, MaxLights, List{dir, dir, dir, dir}.Len())
}

func TestListSkipsUnknownTypes(t *testing.T) {
	dir := NewDirectional(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 1, 1}, 1)
	l := List{dir, {Type: Type(7), Color: mgl64.Vec4{1, 1, 1, 1}}, dir}
	assert.Equal(t, 3, l.Len())

	var seen []int
	l.Each(mgl64.Vec3{}, func(i int, in Incident) bool {
		seen = append(seen, i)
		return true
	})
	assert.Equal(t, []int{0, 2}, seen)
}

func TestNewList(t *testing.T) {
	dir := NewDirectional(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 1, 1}, 1)

	l, err := NewList(dir, Light{}, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len(), "the off slot stays in place")
	assert.Equal(t, dir, l[2])

	l, err = NewList(dir, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
	assert.False(t, l[3].Enabled())

	_, err = NewList(dir, dir, dir, dir, dir)
	assert.Error(t, err)
	_, err = NewList(dir, Light{}, Light{}, Light{}, Light{})
	assert.Error(t, err, "off slots count toward the limit")
}

func TestUniformLayout(t *testing.T) {
	spot := NewSpot(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0.5, 0.25}, 0.75, 12, 40, 30)
	pt := NewPoint(mgl64.Vec3{-1, 0, 4}, mgl64.Vec3{1, 1, 1}, 1, 5)
	l := List{spot, pt}

	buf := l.Uniform()
	require.Len(t, buf, MaxLights*Stride)
	assert.Equal(t, float32(Spot), buf[15])
	assert.Equal(t, float32(Point), buf[Stride+15])
	assert.Equal(t, float32(Off), buf[2*Stride+15])
	assert.Equal(t, float32(12), buf[12])

	back := ReadList(buf)
	assert.Equal(t, Spot, back[0].Type)
	assert.Equal(t, Point, back[1].Type)
	assert.Equal(t, 2, back.Len())
	assert.True(t, back[0].Position.ApproxEqualThreshold(spot.Position, 1e-6))
	assert.True(t, back[0].Misc.ApproxEqualThreshold(spot.Misc, 1e-6))
	assert.True(t, back[1].Color.ApproxEqualThreshold(pt.Color, 1e-6))
}
