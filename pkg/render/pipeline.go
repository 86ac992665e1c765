package render

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Render draws every camera of the scene into the framebuffer, sequentially:
// clear depth, z pre-pass, main pass. The color plane is intentionally not
// cleared — the caller may pre-fill it with a background. The arena is owned
// exclusively by the renderer for the duration of the call and is rewound
// between the passes and after the frame.
func Render[T math3d.Float](fb *Framebuffer, arena *Arena, sc *scene.Scene[T]) {
	for ci := range sc.Cameras {
		camera := &sc.Cameras[ci]

		fb.ClearDepth()
		arena.PopAll()
		arena.Zero()

		renderPass(fb, arena, sc, camera, true)
		arena.PopAll()

		renderPass(fb, arena, sc, camera, false)
		arena.PopAll()
	}
}

// renderPass walks the scene once for a camera. With depthOnly it is the
// z pre-pass: positions only, depth writes. Otherwise it is the main pass:
// normals and uvs ride along and covered pixels are shaded. Meshes whose
// bounding box is fully outside the frustum are skipped wholesale.
func renderPass[T math3d.Float](fb *Framebuffer, arena *Arena, sc *scene.Scene[T], camera *scene.Camera[T], depthOnly bool) {
	frustum := scene.ExtractFrustumPlanes(camera.ViewProjectionMatrix)

	for mi := range sc.Meshes {
		mesh := &sc.Meshes[mi]
		if mesh.Bounds.TestFrustum(&frustum) == scene.FrustumOutside {
			Logger().Debug("frustum culled", "mesh", mesh.Name)
			continue
		}

		mvp := camera.ViewProjectionMatrix.Mul(mesh.Transform)
		var normalMatrix math3d.Mat4[T]
		if !depthOnly {
			normalMatrix = mesh.Transform.NormalMatrix()
		}

		for ii := 0; ii+2 < len(mesh.Indices); ii += 3 {
			i0 := mesh.Indices[ii]
			i1 := mesh.Indices[ii+1]
			i2 := mesh.Indices[ii+2]

			projected := Push[Triangle[T]](arena)
			projected.V0.Location = mvp.MulVec4(mesh.Vertices[i0])
			projected.V1.Location = mvp.MulVec4(mesh.Vertices[i1])
			projected.V2.Location = mvp.MulVec4(mesh.Vertices[i2])

			if !depthOnly {
				projected.V0.Normal = normalMatrix.MulVec3Dir(mesh.Normals[i0])
				projected.V1.Normal = normalMatrix.MulVec3Dir(mesh.Normals[i1])
				projected.V2.Normal = normalMatrix.MulVec3Dir(mesh.Normals[i2])
				projected.V0.Coord = mesh.TexCoords[i0]
				projected.V1.Coord = mesh.TexCoords[i1]
				projected.V2.Coord = mesh.TexCoords[i2]
			}

			clipStage(fb, arena, sc, camera, *projected, mesh.MaterialIndex, depthOnly)

			Pop[Triangle[T]](arena)
		}
	}
}

// clipStage clips one clip-space triangle, reconstructs the world-space
// positions of the surviving triangles for lighting, applies the perspective
// divide and viewport mapping, and hands each triangle to the rasterizer.
func clipStage[T math3d.Float](
	fb *Framebuffer,
	arena *Arena,
	sc *scene.Scene[T],
	camera *scene.Camera[T],
	tri Triangle[T],
	materialIndex uint32,
	depthOnly bool,
) {
	clipped := PushSlice[Triangle[T]](arena, maxClippedVertices-2)
	n := clipTriangleFan(arena, tri, clipped)
	if n == 0 {
		PopSlice[Triangle[T]](arena, maxClippedVertices-2)
		return
	}

	worldTriangle := Push[Triangle[T]](arena)
	clipToWorld := camera.InverseViewMatrix.Mul(camera.InverseProjectionMatrix)
	viewPos := camera.InverseViewMatrix.Translation()

	for i := 0; i < n; i++ {
		ct := &clipped[i]

		// World-space positions for the fragment shader, from the untouched
		// clip-space points.
		*worldTriangle = *ct
		worldTriangle.V0.Location = clipToWorld.MulVec4(worldTriangle.V0.Location)
		worldTriangle.V1.Location = clipToWorld.MulVec4(worldTriangle.V1.Location)
		worldTriangle.V2.Location = clipToWorld.MulVec4(worldTriangle.V2.Location)

		viewportTransform(&ct.V0, camera)
		viewportTransform(&ct.V1, camera)
		viewportTransform(&ct.V2, camera)

		projected := [3]math3d.Vec4[T]{ct.V0.Location, ct.V1.Location, ct.V2.Location}

		if depthOnly {
			zDrawTriangle(fb, camera, &projected)
			continue
		}

		varyings := [3]Varyings[T]{
			{FragPos: worldTriangle.V0.Location, FragNormal: worldTriangle.V0.Normal, FragTexCoord: worldTriangle.V0.Coord},
			{FragPos: worldTriangle.V1.Location, FragNormal: worldTriangle.V1.Normal, FragTexCoord: worldTriangle.V1.Coord},
			{FragPos: worldTriangle.V2.Location, FragNormal: worldTriangle.V2.Normal, FragTexCoord: worldTriangle.V2.Coord},
		}
		flat := flatVaryings[T]{ViewPos: viewPos}

		drawTriangle(fb, arena, sc, camera, &projected, materialIndex, &varyings, flat)
	}

	Pop[Triangle[T]](arena)
	PopSlice[Triangle[T]](arena, maxClippedVertices-2)
}

// viewportTransform applies the perspective divide (preserving clip-space w
// for depth encoding) and maps NDC into the camera's viewport: x to pixels,
// y flipped so y=0 is the top scanline, z into [near, far].
func viewportTransform[T math3d.Float](v *Vertex[T], camera *scene.Camera[T]) {
	w := v.Location.W
	v.Location.X /= w
	v.Location.Y /= w
	v.Location.Z /= w

	width := T(camera.Resolution.X)
	height := T(camera.Resolution.Y)
	v.Location.X = (v.Location.X + 1) * 0.5 * width
	v.Location.Y = (1 - v.Location.Y) * 0.5 * height
	v.Location.Z = (v.Location.Z+1)*0.5*(camera.ZFarPlane-camera.ZNearPlane) + camera.ZNearPlane
}
