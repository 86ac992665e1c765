package render

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func clipVertex(x, y, z, w float64) Vertex[float64] {
	return Vertex[float64]{Location: math3d.V4(x, y, z, w)}
}

func runClip(t *testing.T, tri Triangle[float64]) []Triangle[float64] {
	t.Helper()
	a := NewArena(64 * 1024)
	dst := make([]Triangle[float64], maxClippedVertices-2)
	n := clipTriangleFan(a, tri, dst)
	if a.top != 0 {
		t.Fatalf("clipper leaked %d arena bytes", a.top)
	}
	return dst[:n]
}

func TestClipFullyInsideReturnsInput(t *testing.T) {
	tri := Triangle[float64]{
		V0: clipVertex(-0.5, -0.5, 0.5, 1),
		V1: clipVertex(0, 0.5, 0.5, 1),
		V2: clipVertex(0.5, -0.5, 0.5, 1),
	}
	out := runClip(t, tri)
	if len(out) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(out))
	}
	if out[0] != tri {
		t.Errorf("clipping changed an inside triangle:\n got %+v\nwant %+v", out[0], tri)
	}
}

func TestClipFullyOutsideCulled(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle[float64]
	}{
		{
			name: "left of x=-w",
			tri: Triangle[float64]{
				V0: clipVertex(-3, 0, 0.5, 1),
				V1: clipVertex(-2, 0.5, 0.5, 1),
				V2: clipVertex(-2, -0.5, 0.5, 1),
			},
		},
		{
			name: "beyond far z=w",
			tri: Triangle[float64]{
				V0: clipVertex(0, 0, 2, 1),
				V1: clipVertex(0.5, 0, 3, 1),
				V2: clipVertex(-0.5, 0, 2.5, 1),
			},
		},
		{
			name: "behind near z=0",
			tri: Triangle[float64]{
				V0: clipVertex(0, 0, -0.5, 1),
				V1: clipVertex(0.5, 0, -1, 1),
				V2: clipVertex(-0.5, 0, -0.25, 1),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if out := runClip(t, tc.tri); len(out) != 0 {
				t.Errorf("expected cull, got %d triangles", len(out))
			}
		})
	}
}

func TestClipOneVertexOutsideYieldsQuad(t *testing.T) {
	// One vertex behind the near plane (z < 0): Sutherland-Hodgman leaves a
	// quad, fan-triangulated into exactly two triangles sharing vertex 0.
	tri := Triangle[float64]{
		V0: clipVertex(-0.5, -0.5, 0.5, 1),
		V1: clipVertex(0, 0.5, -0.5, 1),
		V2: clipVertex(0.5, -0.5, 0.5, 1),
	}
	out := runClip(t, tri)
	if len(out) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(out))
	}
	if out[0].V0 != out[1].V0 {
		t.Errorf("fan triangles do not share the first vertex")
	}

	// Every emitted vertex satisfies z >= 0 (up to rounding).
	for ti, tr := range out {
		for vi, v := range []Vertex[float64]{tr.V0, tr.V1, tr.V2} {
			if v.Location.Z < -1e-12 {
				t.Errorf("triangle %d vertex %d still behind near plane: z=%v", ti, vi, v.Location.Z)
			}
		}
	}
}

func TestClipInterpolatesAttributes(t *testing.T) {
	// An edge from z=-1 to z=1 crosses z=0 at its midpoint; the intersection
	// vertex must carry midpoint-interpolated normal and uv.
	tri := Triangle[float64]{
		V0: Vertex[float64]{
			Location: math3d.V4[float64](0, 0, -1, 1),
			Normal:   math3d.V3[float64](1, 0, 0),
			Coord:    math3d.V2[float64](0, 0),
		},
		V1: Vertex[float64]{
			Location: math3d.V4[float64](0, 0.5, 1, 1),
			Normal:   math3d.V3[float64](0, 1, 0),
			Coord:    math3d.V2[float64](1, 0),
		},
		V2: Vertex[float64]{
			Location: math3d.V4[float64](0.5, 0, 1, 1),
			Normal:   math3d.V3[float64](0, 0, 1),
			Coord:    math3d.V2[float64](1, 1),
		},
	}
	out := runClip(t, tri)
	if len(out) == 0 {
		t.Fatal("triangle was culled")
	}

	// The intersection on edge V0->V1 sits at t=0.5: z=0, normal
	// (0.5, 0.5, 0), uv (0.5, 0).
	found := false
	for _, tr := range out {
		for _, v := range []Vertex[float64]{tr.V0, tr.V1, tr.V2} {
			if math.Abs(v.Location.Z) < 1e-12 && math.Abs(v.Normal.Y-0.5) < 1e-12 {
				if math.Abs(v.Normal.X-0.5) > 1e-12 || v.Normal.Z != 0 ||
					math.Abs(v.Coord.X-0.5) > 1e-12 || v.Coord.Y != 0 {
					t.Errorf("intersection attributes wrong: %+v", v)
				}
				found = true
			}
		}
	}
	if !found {
		t.Errorf("no interpolated intersection vertex found in %+v", out)
	}
}

func TestClipTouchingVertexYieldsOnlyDegenerate(t *testing.T) {
	// A triangle that only touches the near plane with one vertex, the other
	// two behind it, collapses to that vertex: the intersection points
	// coincide with it, so anything emitted has zero area.
	tri := Triangle[float64]{
		V0: clipVertex(0, 0, 0, 1),
		V1: clipVertex(0.5, 0, -1, 1),
		V2: clipVertex(-0.5, 0, -1, 1),
	}
	out := runClip(t, tri)
	for _, tr := range out {
		area := math3d.EdgeFunction(tr.V0.Location.XY(), tr.V1.Location.XY(), tr.V2.Location.XY())
		if area != 0 {
			t.Errorf("expected only degenerate output, got area %v", area)
		}
	}
}
