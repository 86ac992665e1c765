package math3d

import (
	"math"
	"testing"
)

func matsAlmostEqual(a, b Mat4[float64], eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestMat4Identity(t *testing.T) {
	m := Identity[float64]()
	v := V4[float64](1, 2, 3, 1)
	if got := m.MulVec4(v); got != v {
		t.Errorf("identity transform changed vector: %v", got)
	}
}

func TestMat4MulOrder(t *testing.T) {
	// Translate then scale vs scale then translate differ.
	tr := Translate(V3[float64](1, 0, 0))
	sc := Scale(V3[float64](2, 2, 2))

	p := V3[float64](1, 0, 0)
	if got, want := tr.Mul(sc).MulVec3(p), V3[float64](3, 0, 0); got != want {
		t.Errorf("T*S: expected %v, got %v", want, got)
	}
	if got, want := sc.Mul(tr).MulVec3(p), V3[float64](4, 0, 0); got != want {
		t.Errorf("S*T: expected %v, got %v", want, got)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(V3[float64](1, 2, 3)).
		Mul(RotateY(0.7)).
		Mul(Scale(V3[float64](2, 3, 4)))

	if got := m.Mul(m.Inverse()); !matsAlmostEqual(got, Identity[float64](), 1e-12) {
		t.Errorf("m * m^-1 != identity: %v", got)
	}

	// Singular matrices fall back to identity.
	var zero Mat4[float64]
	if got := zero.Inverse(); got != Identity[float64]() {
		t.Errorf("singular inverse: expected identity, got %v", got)
	}
}

func TestMat4Transpose(t *testing.T) {
	m := Translate(V3[float64](1, 2, 3))
	tt := m.Transpose().Transpose()
	if tt != m {
		t.Errorf("double transpose changed matrix")
	}
	if got, want := m.Transpose().Get(3, 0), 1.0; got != want {
		t.Errorf("transpose moved translation to row 3: got %v", got)
	}
}

func TestPerspectiveElements(t *testing.T) {
	// fov 90 deg, square aspect, near 0.01, far 10.
	fov := Radians(90.0)
	m := Perspective(fov, 1, 0.01, 10)

	tanHalf := math.Tan(float64(fov) / 2)
	if got, want := m.Get(0, 0), 1/tanHalf; !almostEqual(got, want, 1e-12) {
		t.Errorf("m00: expected %v, got %v", want, got)
	}
	if got, want := m.Get(1, 1), 1/tanHalf; !almostEqual(got, want, 1e-12) {
		t.Errorf("m11: expected %v, got %v", want, got)
	}
	if got, want := m.Get(2, 2), (10+0.01)/(0.01-10); !almostEqual(got, want, 1e-12) {
		t.Errorf("m22: expected %v, got %v", want, got)
	}
	if got, want := m.Get(3, 2), -1.0; got != want {
		t.Errorf("row3 col2: expected %v, got %v", want, got)
	}
	if got, want := m.Get(2, 3), 2*10*0.01/(0.01-10); !almostEqual(got, want, 1e-12) {
		t.Errorf("m32: expected %v, got %v", want, got)
	}
}

func TestLookAtTransformsEyeToOrigin(t *testing.T) {
	eye := V3[float64](3, 4, 5)
	view := LookAt(eye, V3[float64](0, 0, 0), V3[float64](0, 1, 0))

	if got := view.MulVec3(eye); !almostEqual(got.Len(), 0, 1e-12) {
		t.Errorf("view matrix does not move eye to origin: %v", got)
	}

	// A point straight ahead of the camera lands on -Z.
	ahead := view.MulVec3(V3[float64](0, 0, 0))
	if ahead.Z >= 0 {
		t.Errorf("look target should be on -Z, got %v", ahead)
	}

	// The inverse view matrix carries the eye position in its translation.
	if got := view.Inverse().Translation(); !almostEqual(got.Sub(eye).Len(), 0, 1e-9) {
		t.Errorf("inverse view translation: expected %v, got %v", eye, got)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// Under non-uniform scale, normals need the inverse-transpose.
	m := Scale(V3[float64](2, 1, 1))
	nm := m.NormalMatrix()

	// A normal of a plane x+y=const must stay perpendicular to the
	// transformed tangent.
	tangent := m.MulVec3Dir(V3[float64](1, -1, 0))
	normal := nm.MulVec3Dir(V3[float64](1, 1, 0))
	if dot := tangent.Dot(normal); !almostEqual(dot, 0, 1e-12) {
		t.Errorf("normal not perpendicular after transform: dot = %v", dot)
	}
}
