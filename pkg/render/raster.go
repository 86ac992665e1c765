package render

import (
	"fmt"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// boundingSquare is the pixel-space bounding rectangle a triangle's
// rasterization loop enumerates.
type boundingSquare struct {
	minX, minY int64
	maxX, maxY int64
}

// triangleBoundingSquare computes the screen-space bounding square of a
// triangle, clipped to [0, width) x [0, height).
func triangleBoundingSquare[T math3d.Float](width, height T, v0, v1, v2 math3d.Vec2[T]) boundingSquare {
	return boundingSquare{
		minX: int64(max(T(0), min(v0.X, v1.X, v2.X))),
		maxX: int64(min(width-1, max(v0.X, v1.X, v2.X))),
		minY: int64(max(T(0), min(v0.Y, v1.Y, v2.Y))),
		maxY: int64(min(height-1, max(v0.Y, v1.Y, v2.Y))),
	}
}

// depthZeroToOne encodes a fragment's depth: the clip-space w of the three
// vertices is interpolated with the pixel's screen-space barycentrics, then
// mapped into [0,1] with the inverted-exponential encoding.
func depthZeroToOne[T math3d.Float](bc math3d.Vec3[T], p0, p1, p2 math3d.Vec4[T], zNear, zFar T) T {
	depth := bc.X*p0.W + bc.Y*p1.W + bc.Z*p2.W
	return math3d.LinearToExponentialInvertedZ(depth, zNear, zFar)
}

// interpolateVaryings blends the three per-vertex varyings with the raw
// screen-space barycentric weights. This is intentionally not
// perspective-correct; the fragment normal is re-normalized afterwards.
func interpolateVaryings[T math3d.Float](bc math3d.Vec3[T], in *[3]Varyings[T], out *Varyings[T]) {
	u, v, w := bc.X, bc.Y, bc.Z

	out.FragPos.X = u*in[0].FragPos.X + v*in[1].FragPos.X + w*in[2].FragPos.X
	out.FragPos.Y = u*in[0].FragPos.Y + v*in[1].FragPos.Y + w*in[2].FragPos.Y
	out.FragPos.Z = u*in[0].FragPos.Z + v*in[1].FragPos.Z + w*in[2].FragPos.Z
	out.FragPos.W = u*in[0].FragPos.W + v*in[1].FragPos.W + w*in[2].FragPos.W

	out.FragNormal.X = u*in[0].FragNormal.X + v*in[1].FragNormal.X + w*in[2].FragNormal.X
	out.FragNormal.Y = u*in[0].FragNormal.Y + v*in[1].FragNormal.Y + w*in[2].FragNormal.Y
	out.FragNormal.Z = u*in[0].FragNormal.Z + v*in[1].FragNormal.Z + w*in[2].FragNormal.Z
	out.FragNormal = out.FragNormal.Normalize()

	out.FragTexCoord.X = u*in[0].FragTexCoord.X + v*in[1].FragTexCoord.X + w*in[2].FragTexCoord.X
	out.FragTexCoord.Y = u*in[0].FragTexCoord.Y + v*in[1].FragTexCoord.Y + w*in[2].FragTexCoord.Y
}

// checkDepth aborts on an encoded depth outside [0,1]; that can only come
// from a matrix or encoding bug upstream.
func checkDepth[T math3d.Float](d T) {
	if d < 0 || d > 1 {
		panic(fmt.Errorf("%w: got %v", ErrInvalidDepth, float64(d)))
	}
}

// drawTriangle rasterizes one screen-space triangle for the main pass.
// Pixels inside the triangle whose encoded depth passes the <= test against
// the pre-pass depth buffer are shaded and written to the color plane; the
// depth buffer itself is left untouched (the pre-pass already primed it).
func drawTriangle[T math3d.Float](
	fb *Framebuffer,
	a *Arena,
	sc *scene.Scene[T],
	cam *scene.Camera[T],
	projected *[3]math3d.Vec4[T],
	materialIndex uint32,
	varyings *[3]Varyings[T],
	flat flatVaryings[T],
) {
	area := math3d.EdgeFunction(projected[0].XY(), projected[1].XY(), projected[2].XY())
	if area == 0 {
		return
	}

	bs := triangleBoundingSquare(T(cam.Resolution.X), T(cam.Resolution.Y),
		projected[0].XY(), projected[1].XY(), projected[2].XY())

	material := sc.MaterialFor(materialIndex)

	for y := bs.minY; y <= bs.maxY; y++ {
		for x := bs.minX; x <= bs.maxX; x++ {
			bc := math3d.Barycentric(projected[0].XY(), projected[1].XY(), projected[2].XY(), T(x), T(y))
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			d := depthZeroToOne(bc, projected[0], projected[1], projected[2], cam.ZNearPlane, cam.ZFarPlane)
			checkDepth(d)
			if float32(d) > fb.DepthAt(int(x), int(y)) {
				continue
			}

			frag := Push[Varyings[T]](a)
			interpolateVaryings(bc, varyings, frag)

			r, g, b := fragmentShader(sc, material, frag, flat)
			fb.writeColor(int(x), int(y), r, g, b)

			Pop[Varyings[T]](a)
		}
	}
}

// zDrawTriangle rasterizes one screen-space triangle for the depth pre-pass:
// every covered pixel min-writes its encoded depth.
func zDrawTriangle[T math3d.Float](
	fb *Framebuffer,
	cam *scene.Camera[T],
	projected *[3]math3d.Vec4[T],
) {
	area := math3d.EdgeFunction(projected[0].XY(), projected[1].XY(), projected[2].XY())
	if area == 0 {
		return
	}

	bs := triangleBoundingSquare(T(cam.Resolution.X), T(cam.Resolution.Y),
		projected[0].XY(), projected[1].XY(), projected[2].XY())

	for y := bs.minY; y <= bs.maxY; y++ {
		for x := bs.minX; x <= bs.maxX; x++ {
			bc := math3d.Barycentric(projected[0].XY(), projected[1].XY(), projected[2].XY(), T(x), T(y))
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			d := depthZeroToOne(bc, projected[0], projected[1], projected[2], cam.ZNearPlane, cam.ZFarPlane)
			checkDepth(d)
			fb.writeDepth(int(x), int(y), float32(d))
		}
	}
}
