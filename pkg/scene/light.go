package scene

import "github.com/taigrr/prism/pkg/math3d"

// Light is the sealed union of the three light sources the fragment shader
// understands. Each variant carries exactly the fields its contribution
// needs; the shader dispatches with a type switch.
type Light[T math3d.Float] interface {
	isLight()
}

// DirectionalLight illuminates along a single direction with no falloff.
type DirectionalLight[T math3d.Float] struct {
	Direction math3d.Vec3[T]

	Ambient   math3d.Vec3[T]
	Diffuse   math3d.Vec3[T]
	Specular  math3d.Vec3[T]
	Intensity T
}

// PointLight radiates from a location with distance attenuation
// 1/(kc + kl·d + kq·d²).
type PointLight[T math3d.Float] struct {
	Location math3d.Vec3[T]

	Ambient   math3d.Vec3[T]
	Diffuse   math3d.Vec3[T]
	Specular  math3d.Vec3[T]
	Intensity T

	AttenuationConstant  T
	AttenuationLinear    T
	AttenuationQuadratic T
}

// SpotLight radiates from a location inside a cone around Direction.
// Outside the outer cone only the ambient term contributes; inside, the
// direct term is scaled by ((cosθ-cosOuter)/(1-cosOuter))^AttenuationConstant.
type SpotLight[T math3d.Float] struct {
	Location  math3d.Vec3[T]
	Direction math3d.Vec3[T]

	Ambient   math3d.Vec3[T]
	Diffuse   math3d.Vec3[T]
	Specular  math3d.Vec3[T]
	Intensity T

	// Falloff exponent for the cone edge.
	AttenuationConstant T

	AngleInnerCone float32 // radians
	AngleOuterCone float32 // radians
}

func (*DirectionalLight[T]) isLight() {}
func (*PointLight[T]) isLight()       {}
func (*SpotLight[T]) isLight()        {}
