// Package models builds scene meshes: procedural primitives and a glTF/GLB
// importer. It is a collaborator of the rasterizer, not part of the pipeline;
// it runs before any frame and delivers immutable meshes.
package models

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// TriangleMesh returns a single triangle in the XY plane, clockwise winding,
// spanning (-0.5,-0.5)..(0.5,0.5).
func TriangleMesh[T math3d.Float]() *scene.Mesh[T] {
	const s = 0.5
	m := &scene.Mesh[T]{
		Name:      "Triangle",
		Transform: math3d.Identity[T](),
		Vertices: []math3d.Vec4[T]{
			{X: -s, Y: -s, Z: 0, W: 1},
			{X: 0, Y: s, Z: 0, W: 1},
			{X: s, Y: -s, Z: 0, W: 1},
		},
		Normals: []math3d.Vec3[T]{
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
		},
		TexCoords: []math3d.Vec2[T]{
			{X: 0, Y: 0},
			{X: 0.5, Y: 1},
			{X: 1, Y: 0},
		},
		Indices: []uint32{0, 1, 2},
	}
	m.ComputeBounds()
	return m
}

// Quad returns a size x size quad in the XY plane facing -Z.
func Quad[T math3d.Float](size T) *scene.Mesh[T] {
	s := size / 2
	m := &scene.Mesh[T]{
		Name:      "Quad",
		Transform: math3d.Identity[T](),
		Vertices: []math3d.Vec4[T]{
			{X: -s, Y: -s, Z: 0, W: 1},
			{X: -s, Y: s, Z: 0, W: 1},
			{X: s, Y: s, Z: 0, W: 1},
			{X: s, Y: -s, Z: 0, W: 1},
		},
		Normals: []math3d.Vec3[T]{
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
		},
		TexCoords: []math3d.Vec2[T]{
			{X: 0, Y: 0},
			{X: 0, Y: 1},
			{X: 1, Y: 1},
			{X: 1, Y: 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.ComputeBounds()
	return m
}

// GroundPlane returns a size x size quad in the XZ plane at the given
// height, facing +Y.
func GroundPlane[T math3d.Float](size, y T) *scene.Mesh[T] {
	s := size / 2
	m := &scene.Mesh[T]{
		Name:      "Ground",
		Transform: math3d.Identity[T](),
		Vertices: []math3d.Vec4[T]{
			{X: -s, Y: y, Z: -s, W: 1},
			{X: s, Y: y, Z: -s, W: 1},
			{X: s, Y: y, Z: s, W: 1},
			{X: -s, Y: y, Z: s, W: 1},
		},
		Normals: []math3d.Vec3[T]{
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		TexCoords: []math3d.Vec2[T]{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
			{X: 0, Y: 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.ComputeBounds()
	return m
}

// Cube returns a size-edged cube centered at the origin, 24 vertices with
// per-face normals and uvs.
func Cube[T math3d.Float](size T) *scene.Mesh[T] {
	s := size / 2

	type face struct {
		normal  math3d.Vec3[T]
		corners [4]math3d.Vec3[T]
	}
	faces := []face{
		{math3d.V3[T](0, 0, 1), [4]math3d.Vec3[T]{{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}},     // front
		{math3d.V3[T](0, 0, -1), [4]math3d.Vec3[T]{{X: s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: -s}, {X: -s, Y: s, Z: -s}, {X: s, Y: s, Z: -s}}}, // back
		{math3d.V3[T](0, 1, 0), [4]math3d.Vec3[T]{{X: -s, Y: s, Z: s}, {X: s, Y: s, Z: s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s}}},      // top
		{math3d.V3[T](0, -1, 0), [4]math3d.Vec3[T]{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: -s, Z: s}, {X: -s, Y: -s, Z: s}}}, // bottom
		{math3d.V3[T](1, 0, 0), [4]math3d.Vec3[T]{{X: s, Y: -s, Z: s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: s, Y: s, Z: s}}},      // right
		{math3d.V3[T](-1, 0, 0), [4]math3d.Vec3[T]{{X: -s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: s}, {X: -s, Y: s, Z: s}, {X: -s, Y: s, Z: -s}}}, // left
	}

	uv := [4]math3d.Vec2[T]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	m := &scene.Mesh[T]{
		Name:      "Cube",
		Transform: math3d.Identity[T](),
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for ci, c := range f.corners {
			m.Vertices = append(m.Vertices, math3d.V4FromV3(c, 1))
			m.Normals = append(m.Normals, f.normal)
			m.TexCoords = append(m.TexCoords, uv[ci])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeBounds()
	return m
}
