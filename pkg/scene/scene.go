package scene

import "github.com/taigrr/prism/pkg/math3d"

// Scene is the complete immutable description handed to the rasterizer:
// a shallow tree of arrays. Meshes reference materials by index into
// Materials; nothing owns anything else, so there are no reference cycles.
// Ownership stays with the caller and nothing here is mutated during a frame.
type Scene[T math3d.Float] struct {
	Meshes    []Mesh[T]
	Cameras   []Camera[T]
	Lights    []Light[T]
	Materials map[uint32]*Material
}

// NewScene returns an empty scene with an initialized material table holding
// the default material at index 0.
func NewScene[T math3d.Float]() *Scene[T] {
	return &Scene[T]{
		Materials: map[uint32]*Material{0: DefaultMaterial()},
	}
}

// MaterialFor returns the material for a mesh, falling back to the default
// material when the index is unmapped.
func (s *Scene[T]) MaterialFor(index uint32) *Material {
	if m, ok := s.Materials[index]; ok {
		return m
	}
	return DefaultMaterial()
}
