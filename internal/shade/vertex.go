package shade

import (
	"github.com/go-gl/mathgl/mgl64"
)

// VertexInput holds the attributes of one vertex in object space.
type VertexInput struct {
	Position  mgl64.Vec3
	Normal    mgl64.Vec3
	Tangent   mgl64.Vec3
	Bitangent mgl64.Vec3
	UV        mgl64.Vec2
	Color     mgl64.Vec4
}

// Vertex runs the vertex stage: it transforms in to world space, projects
// it with viewProj and flips the texture V axis. Normals are transformed by
// the upper 3x3 of world, which assumes no non-uniform scale.
func Vertex(world, viewProj mgl64.Mat4, in VertexInput) (clip mgl64.Vec4, frag Fragment) {
	wp := world.Mul4x1(in.Position.Vec4(1))
	nrm := world.Mat3()

	color := in.Color
	if color == (mgl64.Vec4{}) {
		color = mgl64.Vec4{1, 1, 1, 1}
	}

	frag = Fragment{
		WorldPosition:  wp.Vec3(),
		WorldNormal:    nrm.Mul3x1(in.Normal),
		WorldTangent:   nrm.Mul3x1(in.Tangent),
		WorldBitangent: nrm.Mul3x1(in.Bitangent),
		UV:             mgl64.Vec2{in.UV[0], 1 - in.UV[1]},
		Color:          color,
	}
	return viewProj.Mul4x1(wp), frag
}
