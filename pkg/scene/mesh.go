// Package scene defines the immutable scene description consumed by the
// prism rasterizer: meshes, cameras, lights, materials, and textures.
// Scenes are built up front (by an importer or procedurally) and are never
// mutated during rendering.
package scene

import "github.com/taigrr/prism/pkg/math3d"

// Mesh is an indexed triangle soup. Every three consecutive indices form one
// triangle. Vertices may be delivered already in world space (Transform =
// identity) or in object space with Transform carrying the model matrix —
// the vertex stage applies viewProjection · Transform either way.
//
// Bounds must enclose all transformed positions; the frame driver culls the
// whole mesh when it falls outside the view frustum.
type Mesh[T math3d.Float] struct {
	Name          string
	Transform     math3d.Mat4[T]
	Vertices      []math3d.Vec4[T]
	Normals       []math3d.Vec3[T]
	TexCoords     []math3d.Vec2[T]
	Indices       []uint32
	Bounds        BoundingBox[T]
	MaterialIndex uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh[T]) TriangleCount() int {
	return len(m.Indices) / 3
}

// ComputeBounds recalculates the world-space bounding box from the vertices
// and the current transform.
func (m *Mesh[T]) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = BoundingBox[T]{}
		return
	}
	first := m.Transform.MulVec4(m.Vertices[0]).Vec3()
	m.Bounds = BoundingBox[T]{Min: first, Max: first}
	for _, v := range m.Vertices[1:] {
		m.Bounds.Expand(m.Transform.MulVec4(v).Vec3())
	}
}
