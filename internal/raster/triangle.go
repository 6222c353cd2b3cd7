package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/shade"
)

// Vertex is the output of the vertex stage.
type Vertex struct {
	Clip mgl64.Vec4
	Frag shade.Fragment
}

// FragmentFunc shades one fragment. Returning false discards it.
type FragmentFunc func(frag shade.Fragment) (mgl64.Vec4, bool)

// Cull selects which triangle facing is skipped.
type Cull int

const (
	CullNone Cull = iota
	CullBack
)

// minW rejects triangles touching or behind the eye plane.
const minW = 1e-6

// RasterizeTriangle draws one triangle into fb. Varyings are interpolated
// perspective-correct, pixels are sampled at their centers, and a fragment
// is written only when its depth is strictly less than the stored depth.
// Triangles counter-clockwise in NDC are front facing.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, fs FragmentFunc, cull Cull) {
	rasterizeRows(fb, v, fs, cull, 0, fb.Height)
}

// rasterizeRows restricts RasterizeTriangle to rows [rowLo, rowHi).
//
// This is the HOT PATH: no allocation per pixel.
func rasterizeRows(fb *FrameBuffer, v [3]Vertex, fs FragmentFunc, cull Cull, rowLo, rowHi int) {
	var sx, sy, sz, invW [3]float64
	for i := range v {
		w := v[i].Clip[3]
		if w < minW {
			return
		}
		invW[i] = 1 / w
		sx[i] = (v[i].Clip[0]*invW[i]*0.5 + 0.5) * float64(fb.Width)
		sy[i] = (0.5 - v[i].Clip[1]*invW[i]*0.5) * float64(fb.Height)
		sz[i] = v[i].Clip[2] * invW[i]
	}

	// Screen y points down, so NDC counter-clockwise is negative here.
	area := (sx[1]-sx[0])*(sy[2]-sy[0]) - (sx[2]-sx[0])*(sy[1]-sy[0])
	if math.Abs(area) < 1e-12 {
		return
	}
	if cull == CullBack && area > 0 {
		return
	}
	invArea := 1 / area

	// Bounding box
	minX := max(0, int(math.Floor(min(sx[0], sx[1], sx[2]))))
	maxX := min(fb.Width-1, int(math.Ceil(max(sx[0], sx[1], sx[2]))))
	minY := max(rowLo, int(math.Floor(min(sy[0], sy[1], sy[2]))))
	maxY := min(rowHi-1, int(math.Ceil(max(sy[0], sy[1], sy[2]))))
	if minX > maxX || minY > maxY {
		return
	}

	for py := minY; py <= maxY; py++ {
		cy := float64(py) + 0.5
		rowOff := py * fb.Width
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5

			w0 := ((sx[1]-cx)*(sy[2]-cy) - (sx[2]-cx)*(sy[1]-cy)) * invArea
			w1 := ((sx[2]-cx)*(sy[0]-cy) - (sx[0]-cx)*(sy[2]-cy)) * invArea
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*sz[0] + w1*sz[1] + w2*sz[2]
			if z < -1 || z > 1 {
				continue
			}
			idx := rowOff + px
			if z >= fb.Depth[idx] {
				continue
			}

			// Perspective correction
			p0, p1, p2 := w0*invW[0], w1*invW[1], w2*invW[2]
			s := 1 / (p0 + p1 + p2)
			frag := interpolate(&v, p0*s, p1*s, p2*s)

			c, ok := fs(frag)
			if !ok {
				continue
			}
			fb.Depth[idx] = z
			fb.blend(idx, c)
		}
	}
}

func interpolate(v *[3]Vertex, b0, b1, b2 float64) shade.Fragment {
	a, b, c := &v[0].Frag, &v[1].Frag, &v[2].Frag
	mix3 := func(x, y, z mgl64.Vec3) mgl64.Vec3 {
		return x.Mul(b0).Add(y.Mul(b1)).Add(z.Mul(b2))
	}
	return shade.Fragment{
		WorldPosition:  mix3(a.WorldPosition, b.WorldPosition, c.WorldPosition),
		WorldNormal:    mix3(a.WorldNormal, b.WorldNormal, c.WorldNormal),
		WorldTangent:   mix3(a.WorldTangent, b.WorldTangent, c.WorldTangent),
		WorldBitangent: mix3(a.WorldBitangent, b.WorldBitangent, c.WorldBitangent),
		UV:             a.UV.Mul(b0).Add(b.UV.Mul(b1)).Add(c.UV.Mul(b2)),
		Color:          a.Color.Mul(b0).Add(b.Color.Mul(b1)).Add(c.Color.Mul(b2)),
	}
}
