package render

import (
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// The end-to-end scenarios render into a 120x120 framebuffer pre-filled with
// a 5-pixel white/black checkerboard, the embedded reference configuration.

const testSquare = 5

func checkerFramebuffer() *Framebuffer {
	fb := NewFramebuffer(120, 120)
	fb.FillCheckerboard(testSquare)
	fb.ClearDepth()
	return fb
}

func snapshotColor(fb *Framebuffer) []float32 {
	c := make([]float32, len(fb.Color))
	copy(c, fb.Color)
	return c
}

func referenceCamera() scene.Camera[float32] {
	return *scene.NewCamera(
		math3d.UVec2{X: 120, Y: 120},
		float32(90), 0.01, 10,
		math3d.V3[float32](0, 0, 1),
		math3d.V3[float32](0, 0, 0),
		math3d.Up[float32](),
	)
}

func referencePointLight() scene.Light[float32] {
	return &scene.PointLight[float32]{
		Location:             math3d.V3[float32](0, 5, -5),
		Ambient:              math3d.V3[float32](1, 1, 1),
		Diffuse:              math3d.V3[float32](100, 100, 100),
		Specular:             math3d.V3[float32](100, 100, 100),
		Intensity:            0.01,
		AttenuationConstant:  0.1,
		AttenuationLinear:    0.01,
		AttenuationQuadratic: 0.001,
	}
}

// referenceTriangle is the clockwise unlit test triangle: positions
// (-0.5,-0.5,0), (0,0.5,0), (0.5,-0.5,0), normals all (0,0,-1).
func referenceTriangle() scene.Mesh[float32] {
	const s = 0.5
	m := scene.Mesh[float32]{
		Name:      "Triangle",
		Transform: math3d.Identity[float32](),
		Vertices: []math3d.Vec4[float32]{
			{X: -s, Y: -s, Z: 0, W: 1},
			{X: 0, Y: s, Z: 0, W: 1},
			{X: s, Y: -s, Z: 0, W: 1},
		},
		Normals: []math3d.Vec3[float32]{
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
		},
		TexCoords: []math3d.Vec2[float32]{
			{X: 0, Y: 0},
			{X: 0.5, Y: 1},
			{X: 1, Y: 0},
		},
		Indices: []uint32{0, 1, 2},
	}
	m.ComputeBounds()
	return m
}

func TestRenderEmptyScene(t *testing.T) {
	fb := checkerFramebuffer()
	before := snapshotColor(fb)
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	sc.Cameras = []scene.Camera[float32]{referenceCamera()}

	Render(fb, arena, sc)

	for i := range before {
		if fb.Color[i] != before[i] {
			t.Fatalf("color %d changed in empty scene: %v -> %v", i, before[i], fb.Color[i])
		}
	}
	for i, d := range fb.Depth {
		if d != DepthInfinity {
			t.Fatalf("depth %d written in empty scene: %v", i, d)
		}
	}
}

func TestRenderSingleTriangle(t *testing.T) {
	fb := checkerFramebuffer()
	before := snapshotColor(fb)
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	sc.Cameras = []scene.Camera[float32]{referenceCamera()}
	sc.Lights = []scene.Light[float32]{referencePointLight()}
	sc.Meshes = []scene.Mesh[float32]{referenceTriangle()}

	Render(fb, arena, sc)

	// The triangle projects to screen corners (30,90), (60,30), (90,90).
	interior := [][2]int{{60, 60}, {60, 80}, {45, 85}}
	for _, p := range interior {
		x, y := p[0], p[1]
		d := fb.DepthAt(x, y)
		if d <= 0 || d >= 1 {
			t.Errorf("interior depth at (%d,%d) not in (0,1): %v", x, y, d)
		}
		r, _, _ := fb.ColorAt(x, y)
		i := (y*fb.Width + x) * 3
		if r == before[i] {
			t.Errorf("interior pixel (%d,%d) not shaded", x, y)
		}
		if r <= 0 {
			t.Errorf("interior pixel (%d,%d) is black: %v", x, y, r)
		}
	}

	exterior := [][2]int{{5, 5}, {110, 10}, {60, 10}}
	for _, p := range exterior {
		x, y := p[0], p[1]
		if d := fb.DepthAt(x, y); d != DepthInfinity {
			t.Errorf("exterior depth at (%d,%d) written: %v", x, y, d)
		}
		i := (y*fb.Width + x) * 3
		if fb.Color[i] != before[i] {
			t.Errorf("exterior pixel (%d,%d) changed", x, y)
		}
	}
}

func TestRenderFrustumCulledMesh(t *testing.T) {
	fb := checkerFramebuffer()
	before := snapshotColor(fb)
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	sc.Cameras = []scene.Camera[float32]{referenceCamera()}
	sc.Lights = []scene.Light[float32]{referencePointLight()}

	// Translate the triangle fully behind the camera.
	tri := referenceTriangle()
	tri.Transform = math3d.Translate(math3d.V3[float32](0, 0, 5))
	tri.ComputeBounds()
	sc.Meshes = []scene.Mesh[float32]{tri}

	Render(fb, arena, sc)

	for i := range before {
		if fb.Color[i] != before[i] {
			t.Fatalf("color %d changed for culled mesh", i)
		}
	}
	for i, d := range fb.Depth {
		if d != DepthInfinity {
			t.Fatalf("depth %d written for culled mesh: %v", i, d)
		}
	}
}

func TestRenderNearPlaneClip(t *testing.T) {
	fb := checkerFramebuffer()
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	sc.Cameras = []scene.Camera[float32]{referenceCamera()}
	sc.Lights = []scene.Light[float32]{referencePointLight()}

	// One vertex one unit ahead of the camera, two behind it: the clipper
	// must emit the visible portion only. Depth stays in [0,1] throughout
	// (the encoder aborts otherwise).
	tri := scene.Mesh[float32]{
		Name:      "Straddler",
		Transform: math3d.Identity[float32](),
		Vertices: []math3d.Vec4[float32]{
			{X: 0, Y: 0, Z: 0, W: 1},
			{X: -0.5, Y: -0.5, Z: 2, W: 1},
			{X: 0.5, Y: -0.5, Z: 2, W: 1},
		},
		Normals: []math3d.Vec3[float32]{
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: -1},
		},
		TexCoords: make([]math3d.Vec2[float32], 3),
		Indices:   []uint32{0, 1, 2},
	}
	tri.ComputeBounds()
	sc.Meshes = []scene.Mesh[float32]{tri}

	Render(fb, arena, sc)

	covered := 0
	for _, d := range fb.Depth {
		if d == DepthInfinity {
			continue
		}
		covered++
		if d <= 0 || d >= 1 {
			t.Fatalf("clipped fragment depth out of (0,1): %v", d)
		}
	}
	if covered == 0 {
		t.Fatalf("near-plane straddling triangle left no coverage")
	}
}

func TestRenderDepthOrdering(t *testing.T) {
	fb := checkerFramebuffer()
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	sc.Cameras = []scene.Camera[float32]{referenceCamera()}
	sc.Lights = []scene.Light[float32]{referencePointLight()}

	farTri := referenceTriangle()
	farTri.Name = "Far"
	farTri.MaterialIndex = 1

	nearTri := referenceTriangle()
	nearTri.Name = "Near"
	nearTri.MaterialIndex = 2
	// Quarter size, half a unit closer to the camera: its screen footprint
	// sits inside the far triangle's.
	nearTri.Transform = math3d.Translate(math3d.V3[float32](0, 0, 0.5)).
		Mul(math3d.Scale(math3d.V3[float32](0.25, 0.25, 1)))
	nearTri.ComputeBounds()

	sc.Meshes = []scene.Mesh[float32]{farTri, nearTri}
	sc.Materials[1] = &scene.Material{
		Name:           "Green",
		BaseColorValue: math3d.V3[float32](0, 1, 0),
		RoughnessValue: 0.5,
		AOValue:        1,
	}
	sc.Materials[2] = &scene.Material{
		Name:           "Red",
		BaseColorValue: math3d.V3[float32](1, 0, 0),
		RoughnessValue: 0.5,
		AOValue:        1,
	}

	Render(fb, arena, sc)

	// Overlap: the nearer (red) triangle wins.
	r, g, _ := fb.ColorAt(60, 60)
	if r <= 0 || g != 0 {
		t.Errorf("overlap pixel should be red: r=%v g=%v", r, g)
	}

	// Inside the far triangle but outside the near one: green shows.
	r, g, _ = fb.ColorAt(35, 85)
	if g <= 0 || r != 0 {
		t.Errorf("far-only pixel should be green: r=%v g=%v", r, g)
	}

	// The depth at the overlap is the nearer triangle's.
	dOverlap := fb.DepthAt(60, 60)
	dFarOnly := fb.DepthAt(35, 85)
	if dOverlap >= dFarOnly {
		t.Errorf("overlap depth %v not nearer than far-only depth %v", dOverlap, dFarOnly)
	}
}

func TestRenderSpotlightCone(t *testing.T) {
	fb := checkerFramebuffer()
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	cam := *scene.NewCamera(
		math3d.UVec2{X: 120, Y: 120},
		float32(60), 0.1, 50,
		math3d.V3[float32](0, 3, 4),
		math3d.V3[float32](0, 0, 0),
		math3d.Up[float32](),
	)
	sc.Cameras = []scene.Camera[float32]{cam}

	sc.Lights = []scene.Light[float32]{
		&scene.SpotLight[float32]{
			Location:            math3d.V3[float32](0, 2, 0),
			Direction:           math3d.V3[float32](0, -1, 0),
			Ambient:             math3d.V3[float32](0.05, 0.05, 0.05),
			Diffuse:             math3d.V3[float32](80, 80, 80),
			Specular:            math3d.V3[float32](80, 80, 80),
			Intensity:           0.08,
			AttenuationConstant: 2,
			AngleInnerCone:      0.35,
			AngleOuterCone:      0.52,
		},
	}

	// A large ground quad under the light.
	ground := scene.Mesh[float32]{
		Name:      "Ground",
		Transform: math3d.Identity[float32](),
		Vertices: []math3d.Vec4[float32]{
			{X: -5, Y: 0, Z: -5, W: 1},
			{X: 5, Y: 0, Z: -5, W: 1},
			{X: 5, Y: 0, Z: 5, W: 1},
			{X: -5, Y: 0, Z: 5, W: 1},
		},
		Normals: []math3d.Vec3[float32]{
			{X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		},
		TexCoords: make([]math3d.Vec2[float32], 4),
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	ground.ComputeBounds()
	sc.Meshes = []scene.Mesh[float32]{ground}

	Render(fb, arena, sc)

	// The image center looks at the world origin, directly under the light:
	// inside the cone.
	centerR, _, _ := fb.ColorAt(60, 60)
	if fb.DepthAt(60, 60) == DepthInfinity {
		t.Fatalf("ground not covered at image center")
	}

	// Somewhere in the covered region there are ambient-only pixels that
	// are distinctly darker than the lit disc.
	minR := float32(2)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.DepthAt(x, y) == DepthInfinity {
				continue
			}
			r, _, _ := fb.ColorAt(x, y)
			if r < minR {
				minR = r
			}
		}
	}
	if minR >= centerR-0.05 {
		t.Errorf("no ambient-only region found: center=%v darkest=%v", centerR, minR)
	}
}

func TestRenderMultipleCameras(t *testing.T) {
	fb := checkerFramebuffer()
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	sc.Cameras = []scene.Camera[float32]{referenceCamera(), referenceCamera()}
	sc.Lights = []scene.Light[float32]{referencePointLight()}
	sc.Meshes = []scene.Mesh[float32]{referenceTriangle()}

	// Two identical cameras render back to back; the second frame clears
	// depth again, so results match a single render.
	Render(fb, arena, sc)

	if d := fb.DepthAt(60, 60); d <= 0 || d >= 1 {
		t.Errorf("depth after two cameras out of (0,1): %v", d)
	}
}

func BenchmarkRenderSingleTriangle(b *testing.B) {
	fb := checkerFramebuffer()
	arena := NewArena(250 * 1024)

	sc := scene.NewScene[float32]()
	sc.Cameras = []scene.Camera[float32]{referenceCamera()}
	sc.Lights = []scene.Light[float32]{referencePointLight()}
	sc.Meshes = []scene.Mesh[float32]{referenceTriangle()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fb.FillCheckerboard(testSquare)
		Render(fb, arena, sc)
	}
}
