// Package raster is a CPU preview renderer that drives the shading programs
// over triangle meshes.
package raster

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/light"
	"glib-shading/internal/mesh"
	"glib-shading/internal/shade"
)

// Camera is a perspective camera. FovY is in degrees.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FovY     float64
	Near     float64
	Far      float64
}

// DefaultCamera looks at the origin from +Z.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 4},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     45,
		Near:     0.1,
		Far:      100,
	}
}

// ViewProjection returns projection * view for the given aspect ratio.
func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	up := c.Up
	if up == (mgl64.Vec3{}) {
		up = mgl64.Vec3{0, 1, 0}
	}
	view := mgl64.LookAtV(c.Position, c.Target, up)
	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
	return proj.Mul4(view)
}

// Object is a mesh placed in the world and shaded by one program.
type Object struct {
	Mesh    *mesh.Mesh
	World   mgl64.Mat4
	Program *shade.Program
	Cull    Cull
}

// Scene is everything Render draws. Programs and lights are read
// concurrently and must not be modified during a render.
type Scene struct {
	Camera     Camera
	Lights     light.List
	Objects    []Object
	Background mgl64.Vec4
}

type triangle struct {
	v    [3]Vertex
	fs   FragmentFunc
	cull Cull
}

// Render draws s into a new width x height buffer. Rows are split into bands
// rasterized by up to workers goroutines; workers <= 0 uses all CPUs.
// Every pixel belongs to exactly one band, so the result does not depend on
// the worker count.
func Render(s *Scene, width, height, workers int) *FrameBuffer {
	if width <= 0 || height <= 0 {
		return NewFrameBuffer(width, height)
	}
	fb := NewFrameBuffer(width, height)
	fb.Clear(s.Background)

	tris := s.vertexStage(float64(width) / float64(height))
	if len(tris) == 0 {
		return fb
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, height)
	band := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < height; lo += band {
		hi := min(lo+band, height)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tris {
				t := &tris[i]
				rasterizeRows(fb, t.v, t.fs, t.cull, lo, hi)
			}
		}()
	}
	wg.Wait()
	return fb
}

// vertexStage transforms every object and assembles its triangles.
func (s *Scene) vertexStage(aspect float64) []triangle {
	viewProj := s.Camera.ViewProjection(aspect)
	camera := s.Camera.Position
	lights := s.Lights

	var tris []triangle
	for _, obj := range s.Objects {
		if obj.Mesh == nil || obj.Program == nil {
			continue
		}
		world := obj.World
		if world == (mgl64.Mat4{}) {
			world = mgl64.Ident4()
		}

		verts := make([]Vertex, len(obj.Mesh.Vertices))
		for i, in := range obj.Mesh.Vertices {
			verts[i].Clip, verts[i].Frag = shade.Vertex(world, viewProj, in)
		}

		p := obj.Program
		fs := func(frag shade.Fragment) (mgl64.Vec4, bool) {
			return p.Shade(frag, camera, lights)
		}
		idx := obj.Mesh.Indices
		for i := 0; i+2 < len(idx); i += 3 {
			tris = append(tris, triangle{
				v:    [3]Vertex{verts[idx[i]], verts[idx[i+1]], verts[idx[i+2]]},
				fs:   fs,
				cull: obj.Cull,
			})
		}
	}
	return tris
}
