package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ComputeTangents fills the tangent and bitangent of every vertex from the
// UV gradients of the adjacent triangles. Triangles with a degenerate UV
// area contribute nothing; vertices left without a tangent get an arbitrary
// one perpendicular to the normal.
func ComputeTangents(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Tangent = mgl64.Vec3{}
		m.Vertices[i].Bitangent = mgl64.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		d1 := v1.UV.Sub(v0.UV)
		d2 := v2.UV.Sub(v0.UV)

		denom := d1[0]*d2[1] - d2[0]*d1[1]
		if denom == 0 {
			continue
		}
		r := 1 / denom
		t := e1.Mul(d2[1] * r).Sub(e2.Mul(d1[1] * r))
		b := e2.Mul(d1[0] * r).Sub(e1.Mul(d2[0] * r))

		for _, idx := range [3]uint32{i0, i1, i2} {
			m.Vertices[idx].Tangent = m.Vertices[idx].Tangent.Add(t)
			m.Vertices[idx].Bitangent = m.Vertices[idx].Bitangent.Add(b)
		}
	}

	// Gram-Schmidt against the normal.
	for i := range m.Vertices {
		v := &m.Vertices[i]
		n := v.Normal
		t := v.Tangent.Sub(n.Mul(n.Dot(v.Tangent)))
		if t.LenSqr() < 1e-12 {
			if math.Abs(n[0]) < 0.9 {
				t = mgl64.Vec3{1, 0, 0}.Sub(n.Mul(n[0]))
			} else {
				t = mgl64.Vec3{0, 1, 0}.Sub(n.Mul(n[1]))
			}
		}
		v.Tangent = t.Normalize()

		b := v.Bitangent
		if b.LenSqr() < 1e-12 {
			b = n.Cross(v.Tangent)
		}
		v.Bitangent = b.Normalize()
	}
}
