package scene

import "github.com/taigrr/prism/pkg/math3d"

// Plane represents a half-space: a·x + b·y + c·z + distance = 0.
// The normal (a, b, c) points into the "inside" of the frustum.
type Plane[T math3d.Float] struct {
	A, B, C  T
	Distance T
}

// Normalize scales the plane equation so the normal has unit length, making
// DistanceFromPoint a true signed distance in world units.
func (p *Plane[T]) Normalize() {
	l := math3d.V3(p.A, p.B, p.C).Len()
	if l == 0 {
		return
	}
	p.A /= l
	p.B /= l
	p.C /= l
	p.Distance /= l
}

// DistanceFromPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as the normal), negative = behind.
func (p Plane[T]) DistanceFromPoint(pt math3d.Vec3[T]) T {
	return p.A*pt.X + p.B*pt.Y + p.C*pt.Z + p.Distance
}

// Frustum plane indices, in extraction order.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustumPlanes extracts the six frustum planes from a view-projection
// matrix using the Gribb/Hartmann method. Each plane is normalized and its
// normal points inward.
func ExtractFrustumPlanes[T math3d.Float](vp math3d.Mat4[T]) [6]Plane[T] {
	var planes [6]Plane[T]

	// Left: row3 + row0
	planes[FrustumLeft] = Plane[T]{vp[3] + vp[0], vp[7] + vp[4], vp[11] + vp[8], vp[15] + vp[12]}
	// Right: row3 - row0
	planes[FrustumRight] = Plane[T]{vp[3] - vp[0], vp[7] - vp[4], vp[11] - vp[8], vp[15] - vp[12]}
	// Bottom: row3 + row1
	planes[FrustumBottom] = Plane[T]{vp[3] + vp[1], vp[7] + vp[5], vp[11] + vp[9], vp[15] + vp[13]}
	// Top: row3 - row1
	planes[FrustumTop] = Plane[T]{vp[3] - vp[1], vp[7] - vp[5], vp[11] - vp[9], vp[15] - vp[13]}
	// Near: row3 + row2
	planes[FrustumNear] = Plane[T]{vp[3] + vp[2], vp[7] + vp[6], vp[11] + vp[10], vp[15] + vp[14]}
	// Far: row3 - row2
	planes[FrustumFar] = Plane[T]{vp[3] - vp[2], vp[7] - vp[6], vp[11] - vp[10], vp[15] - vp[14]}

	for i := range planes {
		planes[i].Normalize()
	}
	return planes
}

// FrustumTest is the result of testing a bounding box against a frustum.
type FrustumTest int

const (
	FrustumInside FrustumTest = iota
	FrustumOutside
	FrustumIntersecting
)

// BoundingBox is an axis-aligned bounding box in world space.
type BoundingBox[T math3d.Float] struct {
	Min, Max math3d.Vec3[T]
}

// TestFrustum classifies the box against six frustum planes. For each plane
// the positive corner (the one farthest along the plane normal) and the
// negative corner (the closest) are selected per axis by the normal's sign:
// if the positive corner is behind any plane the box is fully outside; if
// only a negative corner is behind, the box intersects.
func (b BoundingBox[T]) TestFrustum(frustum *[6]Plane[T]) FrustumTest {
	fullyInside := true

	for i := 0; i < 6; i++ {
		p := frustum[i]

		var positive, negative math3d.Vec3[T]
		if p.A > 0 {
			positive.X, negative.X = b.Max.X, b.Min.X
		} else {
			positive.X, negative.X = b.Min.X, b.Max.X
		}
		if p.B > 0 {
			positive.Y, negative.Y = b.Max.Y, b.Min.Y
		} else {
			positive.Y, negative.Y = b.Min.Y, b.Max.Y
		}
		if p.C > 0 {
			positive.Z, negative.Z = b.Max.Z, b.Min.Z
		} else {
			positive.Z, negative.Z = b.Min.Z, b.Max.Z
		}

		if p.DistanceFromPoint(positive) < 0 {
			return FrustumOutside
		}
		if p.DistanceFromPoint(negative) < 0 {
			fullyInside = false
		}
	}

	if !fullyInside {
		return FrustumIntersecting
	}
	return FrustumInside
}

// Expand grows the box to contain point p.
func (b *BoundingBox[T]) Expand(p math3d.Vec3[T]) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}
