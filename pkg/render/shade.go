package render

import (
	"fmt"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// brdfEpsilon guards divisions inside the BRDF.
const brdfEpsilon = 0.001

// pbrInputs are the resolved material values for one fragment.
type pbrInputs[T math3d.Float] struct {
	baseColor math3d.Vec3[T]
	normal    math3d.Vec3[T]
	emission  math3d.Vec3[T]
	metallic  T
	roughness T
	ao        T
}

// fetchPBRMaterial resolves each material slot for a fragment: sample the
// texture when present (base color sRGB-decoded, everything else linear;
// metallic/roughness/ao from the red channel; normals remapped 2x-1),
// otherwise fall back to the scalar/vec3 value. The normal falls back to the
// interpolated vertex normal.
func fetchPBRMaterial[T math3d.Float](mat *scene.Material, texCoord math3d.Vec2[T], vertexNormal math3d.Vec3[T]) pbrInputs[T] {
	var in pbrInputs[T]
	u := float32(texCoord.X)
	v := float32(texCoord.Y)

	if mat.BaseColorTexture != nil {
		s := SampleBilinear(mat.BaseColorTexture, u, v, true, true)
		in.baseColor = math3d.V3(T(s.X), T(s.Y), T(s.Z))
	} else {
		in.baseColor = math3d.V3(T(mat.BaseColorValue.X), T(mat.BaseColorValue.Y), T(mat.BaseColorValue.Z))
	}

	if mat.NormalMapTexture != nil {
		s := SampleBilinear(mat.NormalMapTexture, u, v, true, false)
		in.normal = math3d.V3(T(s.X), T(s.Y), T(s.Z)).Scale(2).AddScalar(-1)
	} else {
		in.normal = vertexNormal
	}
	in.normal = in.normal.Normalize()

	if mat.EmissionTexture != nil {
		s := SampleBilinear(mat.EmissionTexture, u, v, true, false)
		in.emission = math3d.V3(T(s.X), T(s.Y), T(s.Z))
	} else {
		in.emission = math3d.V3(T(mat.EmissionColorValue.X), T(mat.EmissionColorValue.Y), T(mat.EmissionColorValue.Z))
	}

	if mat.MetallicTexture != nil {
		in.metallic = T(SampleBilinear(mat.MetallicTexture, u, v, true, false).X)
	} else {
		in.metallic = T(mat.MetallicValue)
	}

	if mat.RoughnessTexture != nil {
		in.roughness = T(SampleBilinear(mat.RoughnessTexture, u, v, true, false).X)
	} else {
		in.roughness = T(mat.RoughnessValue)
	}

	if mat.AOTexture != nil {
		in.ao = T(SampleBilinear(mat.AOTexture, u, v, true, false).X)
	} else {
		in.ao = T(mat.AOValue)
	}

	return in
}

// distributionGGX is the GGX/Trowbridge-Reitz normal distribution term.
func distributionGGX[T math3d.Float](n, h math3d.Vec3[T], roughness T) T {
	a := roughness * roughness
	a2 := a * a
	nDotH := max(n.Dot(h), 0)
	denom := nDotH*nDotH*(a2-1) + 1
	denom = T(3.14159265358979323846) * denom * denom
	return a2 / denom
}

// geometrySchlickGGX is the Schlick-GGX single-direction geometry term.
func geometrySchlickGGX[T math3d.Float](nDotV, roughness T) T {
	r := roughness + 1
	k := (r * r) / 8
	return nDotV / (nDotV*(1-k) + k)
}

// geometrySmith combines the Schlick-GGX terms for view and light.
func geometrySmith[T math3d.Float](n, v, l math3d.Vec3[T], roughness T) T {
	return geometrySchlickGGX(max(n.Dot(v), T(0)), roughness) *
		geometrySchlickGGX(max(n.Dot(l), T(0)), roughness)
}

// fresnelSchlick is the Schlick approximation of the Fresnel term.
func fresnelSchlick[T math3d.Float](cosTheta T, f0 math3d.Vec3[T]) math3d.Vec3[T] {
	f := math3d.Pow(math3d.Clamp(1-cosTheta, 0, 1), 5)
	return math3d.V3(
		f0.X+(1-f0.X)*f,
		f0.Y+(1-f0.Y)*f,
		f0.Z+(1-f0.Z)*f,
	)
}

// calculateRadiance evaluates the Cook-Torrance BRDF for one light sample.
// L is the unit direction toward the light, attenuation the distance factor
// already resolved by the caller (1/d² for positional lights, 1 for
// directional). F0 starts at the 0.04 dielectric baseline and is
// metalness-lerped toward the albedo.
func calculateRadiance[T math3d.Float](
	v, l math3d.Vec3[T],
	attenuation T,
	lightColor math3d.Vec3[T],
	intensity T,
	albedo, n math3d.Vec3[T],
	roughness, metallic, ao T,
) math3d.Vec3[T] {
	h := v.Add(l).Normalize()
	radiance := lightColor.Scale(intensity * attenuation)

	ndf := distributionGGX(n, h, roughness)
	g := geometrySmith(n, v, l, roughness)
	f0 := math3d.V3[T](0.04, 0.04, 0.04).Lerp(albedo, metallic)
	f := fresnelSchlick(max(h.Dot(v), T(0)), f0)

	denominator := max(4*max(n.Dot(v), T(0))*max(n.Dot(l), T(0)), T(brdfEpsilon))
	specular := f.Scale(ndf * g / denominator)

	// kD = (1 - kS)(1 - metallic); kS = F
	kd := math3d.V3(1-f.X, 1-f.Y, 1-f.Z).Scale(1 - metallic)

	nDotL := max(n.Dot(l), T(0))

	return kd.Mul(albedo).Add(specular).Mul(radiance).Scale(nDotL * ao)
}

// pointLightContribution sums ambient, Lambertian diffuse, and Blinn-Phong
// specular with distance attenuation, then feeds the result through the
// Cook-Torrance term.
func pointLightContribution[T math3d.Float](
	v, point, n math3d.Vec3[T],
	light *scene.PointLight[T],
	in pbrInputs[T],
) math3d.Vec3[T] {
	ambient := light.Ambient.Scale(light.Intensity)

	l := light.Location.Sub(point).Normalize()
	diff := max(n.Dot(l), 0)
	diffuse := light.Diffuse.Scale(diff * light.Intensity)

	halfway := l.Add(v).Normalize()
	spec := max(n.Dot(halfway), 0)
	specular := light.Specular.Scale(spec * light.Intensity)

	d := light.Location.Distance(point)
	attenuation := 1 / (light.AttenuationConstant + light.AttenuationLinear*d + light.AttenuationQuadratic*d*d)

	color := ambient.Add(diffuse.Add(specular).Scale(attenuation))

	return calculateRadiance(v, l, 1/(d*d), color, light.Intensity,
		in.baseColor, n, in.roughness, in.metallic, in.ao)
}

// directionalLightContribution is the point variant without attenuation,
// lit along -Direction.
func directionalLightContribution[T math3d.Float](
	v, point, n math3d.Vec3[T],
	light *scene.DirectionalLight[T],
	in pbrInputs[T],
) math3d.Vec3[T] {
	ambient := light.Ambient.Scale(light.Intensity)

	l := light.Direction.Negate().Normalize()
	diff := max(n.Dot(l), 0)
	diffuse := light.Diffuse.Scale(diff * light.Intensity)

	halfway := l.Add(v).Normalize()
	spec := max(n.Dot(halfway), 0)
	specular := light.Specular.Scale(spec * light.Intensity)

	color := ambient.Add(diffuse).Add(specular)

	return calculateRadiance(v, l, 1, color, light.Intensity,
		in.baseColor, n, in.roughness, in.metallic, in.ao)
}

// spotLightContribution: outside the outer cone only the ambient term
// contributes; inside, diffuse+specular is scaled by the cone falloff
// ((cosθ-cosOuter)/(1-cosOuter))^AttenuationConstant before the
// Cook-Torrance term.
func spotLightContribution[T math3d.Float](
	v, point, n math3d.Vec3[T],
	light *scene.SpotLight[T],
	in pbrInputs[T],
) math3d.Vec3[T] {
	l := light.Location.Sub(point).Normalize()
	spotDir := light.Direction.Normalize()

	cosAngle := -l.Dot(spotDir)
	coneCos := math3d.Cos(T(light.AngleOuterCone))

	if cosAngle < coneCos {
		return light.Ambient.Scale(light.Intensity)
	}

	falloff := math3d.Pow((cosAngle-coneCos)/(1-coneCos), light.AttenuationConstant)

	diffuse := light.Diffuse.Scale(max(n.Dot(l), 0))

	reflectDir := n.Scale(2 * n.Dot(l)).Sub(l)
	specular := light.Specular.Scale(max(v.Dot(reflectDir), 0))

	color := diffuse.Add(specular).Scale(falloff)

	d := light.Location.Distance(point)
	return calculateRadiance(v, l, 1/(d*d), color, light.Intensity,
		in.baseColor, n, in.roughness, in.metallic, in.ao)
}

// fragmentShader computes the final RGB for one covered pixel: material
// fetch, per-light Cook-Torrance direct lighting, Reinhard tone map, gamma.
// It is a pure function of its inputs.
func fragmentShader[T math3d.Float](
	sc *scene.Scene[T],
	material *scene.Material,
	frag *Varyings[T],
	flat flatVaryings[T],
) (r, g, b float32) {
	in := fetchPBRMaterial(material, frag.FragTexCoord, frag.FragNormal)

	point := frag.FragPos.Vec3()
	v := flat.ViewPos.Sub(point).Normalize()

	lo := math3d.Vec3[T]{}
	for _, light := range sc.Lights {
		switch light := light.(type) {
		case *scene.SpotLight[T]:
			lo = lo.Add(spotLightContribution(v, point, in.normal, light, in))
		case *scene.PointLight[T]:
			lo = lo.Add(pointLightContribution(v, point, in.normal, light, in))
		case *scene.DirectionalLight[T]:
			lo = lo.Add(directionalLightContribution(v, point, in.normal, light, in))
		default:
			panic(fmt.Errorf("%w: light type %T", ErrUnreachable, light))
		}
	}

	color := math3d.GammaCorrect(math3d.ReinhardToneMap(lo), T(2.2))
	return float32(color.X), float32(color.Y), float32(color.Z)
}
