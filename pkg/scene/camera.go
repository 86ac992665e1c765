package scene

import "github.com/taigrr/prism/pkg/math3d"

// Camera holds the projection parameters and the derived matrices the
// pipeline consumes. Whenever position, orientation, or any projection
// parameter changes, LookAt must be called before rendering so all derived
// matrices stay consistent.
type Camera[T math3d.Float] struct {
	Resolution math3d.UVec2
	FOV        T // full vertical field of view, degrees
	ZNearPlane T
	ZFarPlane  T

	Location math3d.Vec3[T]

	// Derived, recomputed by LookAt.
	ViewMatrix              math3d.Mat4[T]
	ProjectionMatrix        math3d.Mat4[T]
	ViewProjectionMatrix    math3d.Mat4[T]
	InverseViewMatrix       math3d.Mat4[T]
	InverseProjectionMatrix math3d.Mat4[T]
}

// NewCamera creates a camera and points it from location at target.
func NewCamera[T math3d.Float](resolution math3d.UVec2, fov, zNear, zFar T, location, target, up math3d.Vec3[T]) *Camera[T] {
	c := &Camera[T]{
		Resolution: resolution,
		FOV:        fov,
		ZNearPlane: zNear,
		ZFarPlane:  zFar,
	}
	c.LookAt(location, target, up)
	return c
}

// LookAt repositions the camera and recomputes every derived matrix.
func (c *Camera[T]) LookAt(location, target, up math3d.Vec3[T]) {
	c.Location = location
	aspect := T(c.Resolution.X) / T(c.Resolution.Y)
	c.ViewMatrix = math3d.LookAt(location, target, up)
	c.ProjectionMatrix = math3d.Perspective(math3d.Radians(c.FOV), aspect, c.ZNearPlane, c.ZFarPlane)
	c.ViewProjectionMatrix = c.ProjectionMatrix.Mul(c.ViewMatrix)
	c.InverseViewMatrix = c.ViewMatrix.Inverse()
	c.InverseProjectionMatrix = c.ProjectionMatrix.Inverse()
}
