// Package mesh builds the indexed preview geometry the renderer draws.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/shade"
)

// Mesh is an indexed triangle list. Every three indices form one
// counter-clockwise triangle.
type Mesh struct {
	Vertices []shade.VertexInput
	Indices  []uint32
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned box of all vertex positions.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		for k := range 3 {
			lo[k] = math.Min(lo[k], v.Position[k])
			hi[k] = math.Max(hi[k], v.Position[k])
		}
	}
	return lo, hi
}

// Sphere is a UV sphere centered at the origin. rings and segments are
// clamped to at least 2 and 3.
func Sphere(radius float64, rings, segments int) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)
	m := &Mesh{}

	for r := 0; r <= rings; r++ {
		v := float64(r) / float64(rings)
		theta := v * math.Pi
		for s := 0; s <= segments; s++ {
			u := float64(s) / float64(segments)
			phi := u * 2 * math.Pi
			n := mgl64.Vec3{
				math.Sin(theta) * math.Sin(phi),
				math.Cos(theta),
				math.Sin(theta) * math.Cos(phi),
			}
			m.Vertices = append(m.Vertices, shade.VertexInput{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       mgl64.Vec2{u, v},
			})
		}
	}

	stride := uint32(segments + 1)
	for r := range uint32(rings) {
		for s := range uint32(segments) {
			a := r*stride + s
			b := a + stride
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}

	ComputeTangents(m)
	return m
}

// Plane is a flat Y-up grid of size x size centered at the origin.
func Plane(size float64, div int) *Mesh {
	return Terrain(size, div, nil)
}

// Terrain is a Y-up height field. height maps world x, z to y; nil gives a
// flat plane. Normals come from central differences of height.
func Terrain(size float64, div int, height func(x, z float64) float64) *Mesh {
	div = max(div, 1)
	if height == nil {
		height = func(x, z float64) float64 { return 0 }
	}
	m := &Mesh{}
	step := size / float64(div)
	half := size / 2

	for j := 0; j <= div; j++ {
		for i := 0; i <= div; i++ {
			x := -half + float64(i)*step
			z := -half + float64(j)*step
			dx := height(x+step, z) - height(x-step, z)
			dz := height(x, z+step) - height(x, z-step)
			n := mgl64.Vec3{-dx, 2 * step, -dz}.Normalize()
			m.Vertices = append(m.Vertices, shade.VertexInput{
				Position: mgl64.Vec3{x, height(x, z), z},
				Normal:   n,
				UV:       mgl64.Vec2{float64(i) / float64(div), float64(j) / float64(div)},
			})
		}
	}

	stride := uint32(div + 1)
	for j := range uint32(div) {
		for i := range uint32(div) {
			a := j*stride + i
			b := a + stride
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}

	ComputeTangents(m)
	return m
}

// Cube is an axis-aligned box with one quad per face.
func Cube(size float64) *Mesh {
	h := size / 2
	faces := [6]struct{ n, u, v mgl64.Vec3 }{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	}
	m := &Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(h)
			m.Vertices = append(m.Vertices, shade.VertexInput{
				Position: p,
				Normal:   f.n,
				UV:       mgl64.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	ComputeTangents(m)
	return m
}

var ErrUnknownMesh = errors.New("mesh: unknown mesh")

// Names lists the meshes ByName knows.
var Names = []string{"sphere", "cube", "plane", "terrain"}

// ByName builds one of the named preview meshes at unit scale. The terrain
// is a gentle sine field.
func ByName(name string) (*Mesh, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sphere":
		return Sphere(1, 32, 64), nil
	case "cube":
		return Cube(1.5), nil
	case "plane":
		return Plane(2, 1), nil
	case "terrain":
		return Terrain(4, 64, Hills), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
}

// Hills is a smooth height function for terrain previews.
func Hills(x, z float64) float64 {
	return 0.35*math.Sin(x*1.7)*math.Cos(z*1.3) + 0.15*math.Sin(x*3.1+z*2.3)
}
