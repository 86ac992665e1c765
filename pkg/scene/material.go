package scene

import "github.com/taigrr/prism/pkg/math3d"

// Material describes a PBR surface. Each slot is either a texture (non-nil)
// or its scalar/vec3 fallback value. Base color is stored sRGB and decoded
// to linear on sample; normal, metallic, roughness, and ao are sampled
// linear. Metallic, roughness, and ao read the red channel.
//
// Material parameters are always float32, independent of the pipeline's
// scalar type.
type Material struct {
	Name string

	BaseColorTexture *Texture
	NormalMapTexture *Texture
	EmissionTexture  *Texture
	MetallicTexture  *Texture
	RoughnessTexture *Texture
	AOTexture        *Texture

	BaseColorValue     math3d.Vec3[float32]
	EmissionColorValue math3d.Vec3[float32]
	MetallicValue      float32
	RoughnessValue     float32
	AOValue            float32
}

// DefaultMaterial returns a plain white dielectric: base color (1,1,1),
// metallic 0, roughness 0.5, ao 1.
func DefaultMaterial() *Material {
	return &Material{
		Name:           "Default",
		BaseColorValue: math3d.V3[float32](1, 1, 1),
		MetallicValue:  0,
		RoughnessValue: 0.5,
		AOValue:        1,
	}
}
