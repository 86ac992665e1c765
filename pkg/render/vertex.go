package render

import "github.com/taigrr/prism/pkg/math3d"

// Vertex is a pipeline vertex. During clipping Location holds a homogeneous
// clip-space position (w not yet divided); after perspective divide and
// viewport mapping it holds screen-space x,y in pixels, z in [near, far],
// and the original clip-space w preserved for depth encoding. Normal and
// Coord are world-space / uv attributes carried through clipping by linear
// interpolation.
type Vertex[T math3d.Float] struct {
	Location math3d.Vec4[T]
	Normal   math3d.Vec3[T]
	Coord    math3d.Vec2[T]
}

// Triangle groups three vertices. Winding is assumed clockwise front-face in
// screen space; back-face culling is not performed.
type Triangle[T math3d.Float] struct {
	V0, V1, V2 Vertex[T]
}

// Varyings are the per-fragment interpolated shader inputs.
type Varyings[T math3d.Float] struct {
	FragPos      math3d.Vec4[T]
	FragNormal   math3d.Vec3[T]
	FragTexCoord math3d.Vec2[T]
}

// flatVaryings are the per-triangle shader inputs that do not interpolate.
// Light properties are read straight from the scene; only the world-space
// view position needs to be carried.
type flatVaryings[T math3d.Float] struct {
	ViewPos math3d.Vec3[T]
}
