package render

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// DrawMeshWireframe projects every triangle edge of a mesh and draws it into
// the color plane. A debugging overlay for inspecting clip and viewport
// output; it ignores the depth buffer.
func DrawMeshWireframe[T math3d.Float](fb *Framebuffer, camera *scene.Camera[T], mesh *scene.Mesh[T], r, g, b float32) {
	mvp := camera.ViewProjectionMatrix.Mul(mesh.Transform)

	for ii := 0; ii+2 < len(mesh.Indices); ii += 3 {
		v0 := mesh.Vertices[mesh.Indices[ii]]
		v1 := mesh.Vertices[mesh.Indices[ii+1]]
		v2 := mesh.Vertices[mesh.Indices[ii+2]]

		drawEdge(fb, camera, mvp, v0, v1, r, g, b)
		drawEdge(fb, camera, mvp, v1, v2, r, g, b)
		drawEdge(fb, camera, mvp, v2, v0, r, g, b)
	}
}

// drawEdge projects one world-space segment and Bresenhams it. Segments
// fully behind the camera are skipped; partial ones are drawn from whatever
// projects (no polygon clipping for the debug overlay).
func drawEdge[T math3d.Float](fb *Framebuffer, camera *scene.Camera[T], mvp math3d.Mat4[T], a, b math3d.Vec4[T], cr, cg, cb float32) {
	ca := mvp.MulVec4(a)
	cs := mvp.MulVec4(b)

	if ca.W <= 0 && cs.W <= 0 {
		return
	}
	if ca.W > 0 {
		ca = ca.Scale(1 / ca.W)
	}
	if cs.W > 0 {
		cs = cs.Scale(1 / cs.W)
	}

	width := T(camera.Resolution.X)
	height := T(camera.Resolution.Y)
	x0 := int((ca.X + 1) * 0.5 * width)
	y0 := int((1 - ca.Y) * 0.5 * height)
	x1 := int((cs.X + 1) * 0.5 * width)
	y1 := int((1 - cs.Y) * 0.5 * height)

	fb.DrawLine(x0, y0, x1, y1, cr, cg, cb)
}
